package get_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GSC-SlotService/internal/domain"
	centerRepo "github.com/m04kA/GSC-SlotService/internal/infra/storage/center"
)

// UseCase use case для получения расписания слотов центра на дату
type UseCase struct {
	slotRepo   SlotRepository
	centerRepo CenterRepository
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, centerRepo CenterRepository, logger Logger) *UseCase {
	return &UseCase{
		slotRepo:   slotRepo,
		centerRepo: centerRepo,
		logger:     logger,
	}
}

// Execute возвращает слоты центра на дату с расчетной загрузкой и оценкой ожидания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование центра
	if _, err := uc.centerRepo.GetByID(ctx, req.CenterID); err != nil {
		if errors.Is(err, centerRepo.ErrCenterNotFound) {
			uc.logger.Warn("GetSlots: center id=%d not found", req.CenterID)
			return nil, ErrCenterNotFound
		}
		uc.logger.Error("GetSlots: failed to get center id=%d: %v", req.CenterID, err)
		return nil, fmt.Errorf("%w: failed to get center: %v", ErrInternal, err)
	}

	// 3. Получаем слоты
	slots, err := uc.slotRepo.ListByCenterAndDate(ctx, req.CenterID, req.Date, req.Status)
	if err != nil {
		uc.logger.Error("GetSlots: failed to list slots for center id=%d: %v", req.CenterID, err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	// 4. Декорируем загрузкой и оценкой ожидания
	views := make([]SlotView, 0, len(slots))
	for _, slot := range slots {
		views = append(views, toSlotView(slot))
	}

	uc.logger.Info("GetSlots: center=%d, date=%s, found %d slots",
		req.CenterID, req.Date.Format(domain.DateFormat), len(views))

	return &Response{
		CenterID: req.CenterID,
		Date:     req.Date,
		Slots:    views,
	}, nil
}

func toSlotView(slot *domain.Slot) SlotView {
	return SlotView{
		ID:          slot.ID,
		CenterID:    slot.CenterID,
		SlotDate:    slot.SlotDate,
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		Capacity:    slot.Capacity,
		CurrentLoad: slot.CurrentLoad,
		Status:      string(slot.Status),
		IsActive:    slot.IsActive,
		LoadScore:   slot.LoadScore(),
		Wait:        slot.EstimateWait(),
	}
}
