package slots

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/GSC-SlotService/internal/domain"
	slotRepo "github.com/m04kA/GSC-SlotService/internal/infra/storage/slot"
	"github.com/m04kA/GSC-SlotService/internal/service/slots/models"
)

// Пороги загрузки для сводки дня
const (
	peakLoadThreshold  = 0.7
	quietLoadThreshold = 0.3
)

// Service сервис для работы со слотами
type Service struct {
	slotRepo    SlotRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает слот по ID с расчетной загрузкой
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SlotResponse, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("GetByID: slot id=%d not found", id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetByID: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlot(slot), nil
}

// SetActive активирует или деактивирует слот.
// Статус перевычисляется: деактивация переводит слот в closed,
// активация возвращает его в available или full по текущей загрузке.
func (s *Service) SetActive(ctx context.Context, id int64, isActive bool) (*models.SlotResponse, error) {
	s.logger.Info("SetActive: slot id=%d, active=%v", id, isActive)

	var result *domain.Slot

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := s.slotRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				s.logger.Warn("SetActive: slot id=%d not found", id)
				return ErrSlotNotFound
			}
			s.logger.Error("SetActive: repository error for slot id=%d: %v", id, err)
			return fmt.Errorf("%w: SetActive - repository error: %v", ErrInternal, err)
		}

		slot.IsActive = isActive
		slot.RecalculateStatus()

		if err := s.slotRepo.SetActive(txCtx, id, isActive, slot.Status); err != nil {
			s.logger.Error("SetActive: failed to update slot id=%d: %v", id, err)
			return fmt.Errorf("%w: SetActive - failed to update slot: %v", ErrInternal, err)
		}

		result = slot
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("SetActive: slot id=%d now active=%v, status=%s", id, isActive, result.Status)
	return models.FromDomainSlot(result), nil
}

// DaySummary строит сводку загрузки центра на дату:
// количество слотов по статусам, суммарная утилизация,
// пиковые и свободные часы по средней загрузке часа
func (s *Service) DaySummary(ctx context.Context, centerID int64, date time.Time) (*models.DaySummaryResponse, error) {
	if centerID <= 0 {
		return nil, fmt.Errorf("%w: centerID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	allSlots, err := s.slotRepo.ListByCenterAndDate(ctx, centerID, date, nil)
	if err != nil {
		s.logger.Error("DaySummary: failed to list slots for center id=%d: %v", centerID, err)
		return nil, fmt.Errorf("%w: DaySummary - repository error: %v", ErrInternal, err)
	}

	summary := &models.DaySummaryResponse{
		CenterID:   centerID,
		Date:       date.Format(domain.DateFormat),
		TotalSlots: len(allSlots),
		PeakHours:  make([]string, 0),
		QuietHours: make([]string, 0),
	}

	// Загрузка по часам: суммируем коэффициенты слотов каждого часа начала
	type hourLoad struct {
		total float64
		count int
	}
	hourly := make(map[int]*hourLoad)

	var totalScore float64

	for _, slot := range allSlots {
		switch slot.Status {
		case domain.SlotStatusAvailable:
			summary.AvailableSlots++
		case domain.SlotStatusFull:
			summary.FullSlots++
		case domain.SlotStatusClosed:
			summary.ClosedSlots++
		}

		summary.TotalCapacity += slot.Capacity
		summary.TotalLoad += slot.CurrentLoad

		score := slot.LoadScore()
		totalScore += score

		minutes, err := slot.StartTime.Minutes()
		if err != nil {
			s.logger.Warn("DaySummary: slot id=%d has invalid start time %q", slot.ID, slot.StartTime)
			continue
		}
		hour := minutes / 60

		hl, ok := hourly[hour]
		if !ok {
			hl = &hourLoad{}
			hourly[hour] = hl
		}
		hl.total += score
		hl.count++
	}

	if len(allSlots) > 0 {
		summary.AverageLoad = totalScore / float64(len(allSlots))
	}
	if summary.TotalCapacity > 0 {
		summary.UtilizationPct = float64(summary.TotalLoad) / float64(summary.TotalCapacity) * 100
	}

	// Час пиковый или свободный по средней загрузке его слотов
	hours := make([]int, 0, len(hourly))
	for hour := range hourly {
		hours = append(hours, hour)
	}
	sort.Ints(hours)

	for _, hour := range hours {
		hl := hourly[hour]
		avg := hl.total / float64(hl.count)
		label := fmt.Sprintf("%d:00", hour)

		if avg > peakLoadThreshold {
			summary.PeakHours = append(summary.PeakHours, label)
		} else if avg < quietLoadThreshold {
			summary.QuietHours = append(summary.QuietHours, label)
		}
	}

	s.logger.Info("DaySummary: center=%d, date=%s, %d slots, utilization %.1f%%",
		centerID, summary.Date, summary.TotalSlots, summary.UtilizationPct)

	return summary, nil
}

// ReconcileLoad выравнивает загрузку слота по фактическому числу
// активных бронирований. Используется обслуживающими задачами после
// массовых операций над бронированиями.
func (s *Service) ReconcileLoad(ctx context.Context, slotID int64) error {
	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := s.slotRepo.GetByID(txCtx, slotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				s.logger.Warn("ReconcileLoad: slot id=%d not found", slotID)
				return ErrSlotNotFound
			}
			s.logger.Error("ReconcileLoad: repository error for slot id=%d: %v", slotID, err)
			return fmt.Errorf("%w: ReconcileLoad - repository error: %v", ErrInternal, err)
		}

		actual, err := s.bookingRepo.CountActiveBySlot(txCtx, slotID)
		if err != nil {
			s.logger.Error("ReconcileLoad: failed to count bookings for slot id=%d: %v", slotID, err)
			return fmt.Errorf("%w: ReconcileLoad - failed to count bookings: %v", ErrInternal, err)
		}

		if slot.CurrentLoad == actual {
			return nil
		}

		s.logger.Info("ReconcileLoad: slot id=%d load %d -> %d", slotID, slot.CurrentLoad, actual)

		slot.CurrentLoad = actual
		slot.RecalculateStatus()

		if err := s.slotRepo.UpdateLoad(txCtx, slotID, slot.CurrentLoad, slot.Status); err != nil {
			s.logger.Error("ReconcileLoad: failed to update slot id=%d: %v", slotID, err)
			return fmt.Errorf("%w: ReconcileLoad - failed to update slot: %v", ErrInternal, err)
		}

		return nil
	})
}
