package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/GSC-SlotService/internal/domain"
	bookingRepo "github.com/m04kA/GSC-SlotService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/GSC-SlotService/internal/infra/storage/slot"
	userRepo "github.com/m04kA/GSC-SlotService/internal/infra/storage/user"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	userRepo     UserRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверки и запись выполняются в одной сериализуемой транзакции:
// слот и пользователь блокируются через FOR UPDATE, поэтому конкурентные
// запросы на последнее место в слоте не могут пройти одновременно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, slot=%d, service=%q", req.UserID, req.SlotID, req.ServiceName)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityNormal
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var result *domain.Booking
	var slot *domain.Slot

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем пользователя с блокировкой (FOR UPDATE)
		user, err := uc.userRepo.GetByID(txCtx, req.UserID)
		if err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				uc.logger.Warn("CreateBooking: user id=%d not found", req.UserID)
				return ErrUserNotFound
			}
			uc.logger.Error("CreateBooking: failed to get user id=%d: %v", req.UserID, err)
			return fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
		}

		// 3.2. Проверяем штраф, истекший снимаем лениво
		if user.IsPenalized {
			if user.PenaltyExpired(now) {
				if err := uc.userRepo.ClearPenalty(txCtx, user.ID); err != nil {
					uc.logger.Error("CreateBooking: failed to clear expired penalty for user id=%d: %v", user.ID, err)
					return fmt.Errorf("%w: failed to clear penalty: %v", ErrInternal, err)
				}
				uc.logger.Info("CreateBooking: expired penalty cleared for user id=%d", user.ID)
			} else {
				uc.logger.Warn("CreateBooking: user id=%d is penalized until %v", user.ID, user.PenaltyEndDate)
				return ErrUserPenalized
			}
		}

		// 3.3. Получаем слот с блокировкой (FOR UPDATE)
		slot, err = uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateBooking: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateBooking: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 3.4. Проверяем доступность слота
		if !slot.IsActive || slot.Status == domain.SlotStatusClosed {
			uc.logger.Warn("CreateBooking: slot id=%d is closed", slot.ID)
			return ErrSlotClosed
		}
		if slot.CurrentLoad >= slot.Capacity {
			uc.logger.Warn("CreateBooking: slot id=%d is full, %d/%d", slot.ID, slot.CurrentLoad, slot.Capacity)
			return ErrSlotFull
		}

		// 3.5. Проверяем, что у пользователя нет активного бронирования в этом слоте
		existing, err := uc.bookingRepo.GetActiveByUserAndSlot(txCtx, req.UserID, req.SlotID)
		if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("CreateBooking: failed to check duplicate for user=%d, slot=%d: %v",
				req.UserID, req.SlotID, err)
			return fmt.Errorf("%w: failed to check duplicate booking: %v", ErrInternal, err)
		}
		if existing != nil {
			uc.logger.Warn("CreateBooking: user id=%d already has booking id=%d in slot id=%d",
				req.UserID, existing.ID, req.SlotID)
			return ErrDuplicateBooking
		}

		// 3.6. Проверяем дневной лимит бронирований (по дате создания)
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		dayEnd := dayStart.AddDate(0, 0, 1)

		count, err := uc.bookingRepo.CountActiveCreatedBetween(txCtx, req.UserID, dayStart, dayEnd)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count daily bookings for user id=%d: %v", req.UserID, err)
			return fmt.Errorf("%w: failed to count daily bookings: %v", ErrInternal, err)
		}
		if count >= domain.MaxBookingsPerDay {
			uc.logger.Warn("CreateBooking: user id=%d reached daily limit of %d bookings",
				req.UserID, domain.MaxBookingsPerDay)
			return ErrDailyLimitExceeded
		}

		// 3.7. Создаем бронирование
		booking := &domain.Booking{
			BookingNumber: generateBookingNumber(now),
			UserID:        req.UserID,
			CenterID:      slot.CenterID,
			SlotID:        slot.ID,
			ServiceName:   req.ServiceName,
			Status:        domain.StatusBooked,
			Priority:      priority,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateBooking) {
				return ErrDuplicateBooking
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 3.8. Увеличиваем загрузку слота и перевычисляем статус
		slot.CurrentLoad++
		slot.RecalculateStatus()

		if err := uc.slotRepo.UpdateLoad(txCtx, slot.ID, slot.CurrentLoad, slot.Status); err != nil {
			uc.logger.Error("CreateBooking: failed to update slot id=%d load: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to update slot load: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d number=%s, slot id=%d load %d/%d",
		result.ID, result.BookingNumber, slot.ID, slot.CurrentLoad, slot.Capacity)

	return &Response{
		ID:            result.ID,
		BookingNumber: result.BookingNumber,
		UserID:        result.UserID,
		CenterID:      result.CenterID,
		SlotID:        result.SlotID,
		ServiceName:   result.ServiceName,
		Status:        string(result.Status),
		Priority:      string(result.Priority),
		SlotDate:      slot.SlotDate,
		StartTime:     slot.StartTime,
		EndTime:       slot.EndTime,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

// generateBookingNumber формирует человекочитаемый номер бронирования
// вида GSC-1735689600-a1b2c3d4
func generateBookingNumber(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("GSC-%d-%s", now.Unix(), suffix)
}
