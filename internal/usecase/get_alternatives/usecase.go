package get_alternatives

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GSC-SlotService/internal/domain"
	slotRepo "github.com/m04kA/GSC-SlotService/internal/infra/storage/slot"
	"github.com/m04kA/GSC-SlotService/pkg/ptr"
)

// UseCase use case для подбора альтернативных слотов
type UseCase struct {
	slotRepo SlotRepository
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, logger Logger) *UseCase {
	return &UseCase{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// Execute подбирает альтернативы для запрошенного слота.
// Кандидаты берутся из того же центра на ту же дату со статусом available.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAlternatives: validation failed: %v", err)
		return nil, err
	}

	limit := req.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	// 2. Получаем запрошенный слот
	requested, err := uc.slotRepo.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("GetAlternatives: slot id=%d not found", req.SlotID)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("GetAlternatives: failed to get slot id=%d: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	// 3. Получаем доступных кандидатов того же центра на ту же дату
	candidates, err := uc.slotRepo.ListByCenterAndDate(
		ctx, requested.CenterID, requested.SlotDate, ptr.Ptr(domain.SlotStatusAvailable))
	if err != nil {
		uc.logger.Error("GetAlternatives: failed to list candidates for center id=%d: %v",
			requested.CenterID, err)
		return nil, fmt.Errorf("%w: failed to list candidate slots: %v", ErrInternal, err)
	}

	// 4. Ранжируем
	alternatives := rankAlternatives(requested, candidates, limit)

	uc.logger.Info("GetAlternatives: slot=%d, status=%s, found %d alternatives",
		requested.ID, requested.Status, len(alternatives))

	return &Response{
		Requested: RequestedSlot{
			SlotID:      requested.ID,
			CenterID:    requested.CenterID,
			SlotDate:    requested.SlotDate,
			StartTime:   requested.StartTime,
			Status:      string(requested.Status),
			Capacity:    requested.Capacity,
			CurrentLoad: requested.CurrentLoad,
			LoadScore:   requested.LoadScore(),
		},
		Alternatives: alternatives,
		Message:      buildMessage(requested, len(alternatives)),
	}, nil
}

// buildMessage формирует пояснение к списку альтернатив
func buildMessage(requested *domain.Slot, found int) string {
	if found == 0 {
		return "no alternative slots available for this date"
	}
	if !requested.IsBookable() {
		return fmt.Sprintf("requested slot is %s, %d alternatives found", requested.Status, found)
	}
	return fmt.Sprintf("%d alternatives found", found)
}
