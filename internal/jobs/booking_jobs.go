package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/GSC-SlotService/internal/domain"
	slotRepo "github.com/m04kA/GSC-SlotService/internal/infra/storage/slot"
	bookingsSvc "github.com/m04kA/GSC-SlotService/internal/service/bookings"
)

// staleCancelReason причина отмены зависших бронирований
const staleCancelReason = "auto-cancelled (expired)"

// BookingJobs обслуживающие задачи над бронированиями
type BookingJobs struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	lifecycle   BookingLifecycle
	reconciler  SlotReconciler
	clock       Clock
	logger      Logger

	graceMinutes int
}

// NewBookingJobs создает задачи обслуживания бронирований
func NewBookingJobs(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	lifecycle BookingLifecycle,
	reconciler SlotReconciler,
	clock Clock,
	logger Logger,
	graceMinutes int,
) *BookingJobs {
	if clock == nil {
		clock = RealClock{}
	}
	if graceMinutes <= 0 {
		graceMinutes = domain.DefaultLateGraceMinutes
	}
	return &BookingJobs{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		lifecycle:    lifecycle,
		reconciler:   reconciler,
		clock:        clock,
		logger:       logger,
		graceMinutes: graceMinutes,
	}
}

// RunLateArrivalCheck переводит опоздавшие бронирования в no_show.
// Бронирование считается опоздавшим, если пользователь не отметился
// в течение льготного периода после начала слота.
// Каждое бронирование обрабатывается в своей транзакции: гонка с
// одновременным check-in разрешается повторной проверкой статуса
// внутри MarkNoShow.
func (j *BookingJobs) RunLateArrivalCheck(ctx context.Context) error {
	now := j.clock.Now()

	pending, err := j.bookingRepo.ListByStatuses(ctx, domain.PendingStatuses)
	if err != nil {
		return fmt.Errorf("late arrival check: failed to list pending bookings: %w", err)
	}

	var converted, skipped int

	for _, booking := range pending {
		slot, err := j.slotRepo.GetByID(ctx, booking.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				j.logger.Warn("late arrival check: booking id=%d references missing slot id=%d",
					booking.ID, booking.SlotID)
				continue
			}
			j.logger.Error("late arrival check: failed to get slot id=%d: %v", booking.SlotID, err)
			continue
		}

		start, err := slot.StartDateTime()
		if err != nil {
			j.logger.Error("late arrival check: slot id=%d has invalid start time: %v", slot.ID, err)
			continue
		}

		// Опоздание - строго после истечения льготного периода
		deadline := start.Add(time.Duration(j.graceMinutes) * time.Minute)
		if !now.After(deadline) {
			continue
		}

		if _, err := j.lifecycle.MarkNoShow(ctx, booking.ID); err != nil {
			// Статус мог измениться между выборкой и обработкой
			if errors.Is(err, bookingsSvc.ErrInvalidState) || errors.Is(err, bookingsSvc.ErrBookingNotFound) {
				skipped++
				continue
			}
			j.logger.Error("late arrival check: failed to mark booking id=%d as no-show: %v", booking.ID, err)
			continue
		}

		converted++
	}

	j.logger.Info("late arrival check: %d pending, %d converted to no-show, %d skipped",
		len(pending), converted, skipped)
	return nil
}

// RunStaleExpiry отменяет бронирования, зависшие в booked/confirmed
// с прошедших дат. Порог - вчерашняя полночь: всё, что создано до неё
// и не дошло до терминального статуса, считается брошенным.
// После массовой отмены загрузка затронутых слотов выравнивается.
func (j *BookingJobs) RunStaleExpiry(ctx context.Context) error {
	now := j.clock.Now()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)

	slotIDs, err := j.bookingRepo.CancelStaleBefore(ctx, cutoff, staleCancelReason)
	if err != nil {
		return fmt.Errorf("stale expiry: failed to cancel stale bookings: %w", err)
	}

	if len(slotIDs) == 0 {
		j.logger.Info("stale expiry: no stale bookings before %s", cutoff.Format(domain.DateFormat))
		return nil
	}

	seen := make(map[int64]struct{}, len(slotIDs))
	var reconciled int

	for _, slotID := range slotIDs {
		if _, ok := seen[slotID]; ok {
			continue
		}
		seen[slotID] = struct{}{}

		if err := j.reconciler.ReconcileLoad(ctx, slotID); err != nil {
			j.logger.Error("stale expiry: failed to reconcile slot id=%d: %v", slotID, err)
			continue
		}
		reconciled++
	}

	j.logger.Info("stale expiry: cancelled %d bookings, reconciled %d slots", len(slotIDs), reconciled)
	return nil
}
