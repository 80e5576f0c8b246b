package generate_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/GSC-SlotService/internal/domain"
	centerRepo "github.com/m04kA/GSC-SlotService/internal/infra/storage/center"
)

// UseCase use case для генерации расписания слотов
type UseCase struct {
	slotRepo     SlotRepository
	centerRepo   CenterRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	centerRepo CenterRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		centerRepo:   centerRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет генерацию слотов для одного центра.
// Повторный вызов для того же диапазона безопасен: существующие слоты
// не перезаписываются (ON CONFLICT DO NOTHING на уровне репозитория),
// поэтому их загрузка и статусы сохраняются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: center=%d, days=%d", req.CenterID, req.Days)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем дату начала и горизонт генерации
	startDate := uc.timeProvider.Now()
	if req.Date != nil {
		startDate = *req.Date
	}

	days := req.Days
	if days == 0 {
		days = domain.DefaultGenerationDays
	}

	// 3. Получаем центр
	center, err := uc.centerRepo.GetByID(ctx, req.CenterID)
	if err != nil {
		if errors.Is(err, centerRepo.ErrCenterNotFound) {
			uc.logger.Warn("GenerateSlots: center id=%d not found", req.CenterID)
			return nil, ErrCenterNotFound
		}
		uc.logger.Error("GenerateSlots: failed to get center id=%d: %v", req.CenterID, err)
		return nil, fmt.Errorf("%w: failed to get center: %v", ErrInternal, err)
	}

	if !center.IsActive {
		uc.logger.Warn("GenerateSlots: center id=%d is inactive", req.CenterID)
		return nil, ErrCenterInactive
	}

	// 4. Генерируем и сохраняем слоты
	created, err := uc.generateForCenter(ctx, center, startDate, days)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GenerateSlots: center=%d, created %d slots over %d days", center.ID, created, days)

	return &Response{
		CenterID:     center.ID,
		DaysCovered:  days,
		SlotsCreated: created,
	}, nil
}

// GenerateForAllCenters генерирует слоты для всех активных центров.
// Вызывается фоновой задачей в полночь и при старте сервиса.
// Ошибка по одному центру не прерывает обход остальных.
func (uc *UseCase) GenerateForAllCenters(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		days = domain.DefaultGenerationDays
	}

	centers, err := uc.centerRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to list active centers: %v", err)
		return 0, fmt.Errorf("%w: failed to list active centers: %v", ErrInternal, err)
	}

	startDate := uc.timeProvider.Now()

	var total int64
	for _, center := range centers {
		created, err := uc.generateForCenter(ctx, center, startDate, days)
		if err != nil {
			uc.logger.Error("GenerateSlots: center id=%d failed: %v", center.ID, err)
			continue
		}
		total += created
	}

	uc.logger.Info("GenerateSlots: all centers done, created %d slots across %d centers", total, len(centers))

	return total, nil
}

// generateForCenter генерирует слоты центра на days дней от startDate
func (uc *UseCase) generateForCenter(ctx context.Context, center *domain.ServiceCenter, startDate time.Time, days int) (int64, error) {
	slots := make([]*domain.Slot, 0)

	for offset := 0; offset < days; offset++ {
		date := startDate.AddDate(0, 0, offset)
		slots = append(slots, generateSlotsForDate(center, date)...)
	}

	if len(slots) == 0 {
		uc.logger.Info("GenerateSlots: center id=%d has no working days in range", center.ID)
		return 0, nil
	}

	created, err := uc.slotRepo.InsertBatch(ctx, slots)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to insert slots for center id=%d: %v", center.ID, err)
		return 0, fmt.Errorf("%w: failed to insert slots: %v", ErrInternal, err)
	}

	return created, nil
}
