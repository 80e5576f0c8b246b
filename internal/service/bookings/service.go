package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/GSC-SlotService/internal/domain"
	bookingRepo "github.com/m04kA/GSC-SlotService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/GSC-SlotService/internal/infra/storage/slot"
	userRepo "github.com/m04kA/GSC-SlotService/internal/infra/storage/user"
	"github.com/m04kA/GSC-SlotService/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований
// Все переходы статусов проходят через него, побочные эффекты
// (загрузка слота, штрафы за неявки) выполняются в одной транзакции
// с самим переходом
type Service struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	userRepo     UserRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidStatus)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// CheckIn отмечает прибытие пользователя в центр.
// Допустимо только из статусов booked и confirmed.
func (s *Service) CheckIn(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	s.logger.Info("CheckIn: booking id=%d", bookingID)

	now := s.timeProvider.Now()
	var result *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBookingForUpdate(txCtx, "CheckIn", bookingID)
		if err != nil {
			return err
		}

		if !booking.CanCheckIn() {
			s.logger.Warn("CheckIn: booking id=%d has status=%s", bookingID, booking.Status)
			return fmt.Errorf("%w: cannot check in from status %s", ErrInvalidState, booking.Status)
		}

		if err := s.bookingRepo.SetCheckedIn(txCtx, bookingID, now); err != nil {
			s.logger.Error("CheckIn: failed to update booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: CheckIn - repository error: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusCheckedIn
		booking.CheckInTime = &now
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CheckIn: booking id=%d checked in at %s", bookingID, now.Format(domain.TimestampFormat))
	return models.FromDomainBooking(result), nil
}

// Complete завершает обслуживание по бронированию.
// Допустимо только из статуса checked_in.
func (s *Service) Complete(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	s.logger.Info("Complete: booking id=%d", bookingID)

	now := s.timeProvider.Now()
	var result *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBookingForUpdate(txCtx, "Complete", bookingID)
		if err != nil {
			return err
		}

		if !booking.CanComplete() {
			s.logger.Warn("Complete: booking id=%d has status=%s", bookingID, booking.Status)
			return fmt.Errorf("%w: cannot complete from status %s", ErrInvalidState, booking.Status)
		}

		if err := s.bookingRepo.SetCompleted(txCtx, bookingID, now); err != nil {
			s.logger.Error("Complete: failed to update booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusCompleted
		booking.CompletionTime = &now
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Complete: booking id=%d completed", bookingID)
	return models.FromDomainBooking(result), nil
}

// Cancel отменяет бронирование и освобождает место в слоте.
// Пользователь может отменить только своё бронирование,
// терминальные статусы отмене не подлежат.
func (s *Service) Cancel(ctx context.Context, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: booking id=%d, user=%d", req.BookingID, req.UserID)

	var result *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBookingForUpdate(txCtx, "Cancel", req.BookingID)
		if err != nil {
			return err
		}

		if booking.UserID != req.UserID {
			s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", req.UserID, req.BookingID)
			return ErrAccessDenied
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d has terminal status=%s", req.BookingID, booking.Status)
			return fmt.Errorf("%w: status %s is terminal", ErrCannotCancel, booking.Status)
		}

		if err := s.bookingRepo.Cancel(txCtx, req.BookingID, req.CancellationReason); err != nil {
			s.logger.Error("Cancel: failed to cancel booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if err := s.releaseSlot(txCtx, "Cancel", booking.SlotID); err != nil {
			return err
		}

		booking.Status = domain.StatusCancelled
		booking.CancellationReason = &req.CancellationReason
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: booking id=%d cancelled", req.BookingID)
	return models.FromDomainBooking(result), nil
}

// MarkNoShow помечает бронирование как неявку.
// Освобождает место в слоте и увеличивает счётчик неявок пользователя;
// при достижении порога пользователь штрафуется.
// Вызывается вручную оператором и фоновой проверкой опозданий.
func (s *Service) MarkNoShow(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	s.logger.Info("MarkNoShow: booking id=%d", bookingID)

	now := s.timeProvider.Now()
	var result *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBookingForUpdate(txCtx, "MarkNoShow", bookingID)
		if err != nil {
			return err
		}

		if !booking.CanMarkNoShow() {
			s.logger.Warn("MarkNoShow: booking id=%d has status=%s", bookingID, booking.Status)
			return fmt.Errorf("%w: cannot mark no-show from status %s", ErrInvalidState, booking.Status)
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, domain.StatusNoShow); err != nil {
			s.logger.Error("MarkNoShow: failed to update booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: MarkNoShow - repository error: %v", ErrInternal, err)
		}

		if err := s.releaseSlot(txCtx, "MarkNoShow", booking.SlotID); err != nil {
			return err
		}

		if err := s.applyNoShowPenalty(txCtx, booking.UserID, now); err != nil {
			return err
		}

		booking.Status = domain.StatusNoShow
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("MarkNoShow: booking id=%d marked as no-show", bookingID)
	return models.FromDomainBooking(result), nil
}

// getBookingForUpdate получает бронирование с блокировкой внутри транзакции
func (s *Service) getBookingForUpdate(ctx context.Context, op string, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// releaseSlot уменьшает загрузку слота на единицу и перевычисляет статус.
// Загрузка не опускается ниже нуля.
func (s *Service) releaseSlot(ctx context.Context, op string, slotID int64) error {
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			// Слот мог быть удален retention-очисткой, место освобождать не нужно
			s.logger.Warn("%s: slot id=%d not found, skipping load release", op, slotID)
			return nil
		}
		s.logger.Error("%s: failed to get slot id=%d: %v", op, slotID, err)
		return fmt.Errorf("%w: %s - failed to get slot: %v", ErrInternal, op, err)
	}

	if slot.CurrentLoad > 0 {
		slot.CurrentLoad--
	}
	slot.RecalculateStatus()

	if err := s.slotRepo.UpdateLoad(ctx, slot.ID, slot.CurrentLoad, slot.Status); err != nil {
		s.logger.Error("%s: failed to update slot id=%d load: %v", op, slot.ID, err)
		return fmt.Errorf("%w: %s - failed to update slot load: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: slot id=%d released, load %d/%d", op, slot.ID, slot.CurrentLoad, slot.Capacity)
	return nil
}

// applyNoShowPenalty увеличивает счётчик неявок и при достижении порога
// назначает штраф на PenaltyDurationDays дней
func (s *Service) applyNoShowPenalty(ctx context.Context, userID int64, now time.Time) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("MarkNoShow: user id=%d not found, penalty skipped", userID)
			return nil
		}
		s.logger.Error("MarkNoShow: failed to get user id=%d: %v", userID, err)
		return fmt.Errorf("%w: MarkNoShow - failed to get user: %v", ErrInternal, err)
	}

	noShowCount := user.NoShowCount + 1
	isPenalized := user.IsPenalized
	penaltyEnd := user.PenaltyEndDate

	if noShowCount >= domain.NoShowPenaltyThreshold && !isPenalized {
		isPenalized = true
		end := now.AddDate(0, 0, domain.PenaltyDurationDays)
		penaltyEnd = &end
		s.logger.Warn("MarkNoShow: user id=%d penalized until %s after %d no-shows",
			userID, end.Format(domain.DateFormat), noShowCount)
	}

	if err := s.userRepo.UpdatePenalty(ctx, userID, noShowCount, isPenalized, penaltyEnd); err != nil {
		s.logger.Error("MarkNoShow: failed to update penalty for user id=%d: %v", userID, err)
		return fmt.Errorf("%w: MarkNoShow - failed to update penalty: %v", ErrInternal, err)
	}

	return nil
}
