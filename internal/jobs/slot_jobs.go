package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/GSC-SlotService/internal/domain"
)

// SlotJobs обслуживающие задачи над расписанием слотов
type SlotJobs struct {
	generator SlotGenerator
	slotRepo  SlotRepository
	clock     Clock
	logger    Logger

	generationDays int
	retentionDays  int
}

// NewSlotJobs создает задачи обслуживания слотов
func NewSlotJobs(
	generator SlotGenerator,
	slotRepo SlotRepository,
	clock Clock,
	logger Logger,
	generationDays int,
	retentionDays int,
) *SlotJobs {
	if clock == nil {
		clock = RealClock{}
	}
	if generationDays <= 0 {
		generationDays = domain.DefaultGenerationDays
	}
	if retentionDays <= 0 {
		retentionDays = domain.DefaultRetentionDays
	}
	return &SlotJobs{
		generator:      generator,
		slotRepo:       slotRepo,
		clock:          clock,
		logger:         logger,
		generationDays: generationDays,
		retentionDays:  retentionDays,
	}
}

// RunInitialGeneration заполняет расписание при старте сервиса.
// Генерация запускается только если на сегодня нет ни одного слота:
// при обычном рестарте календарь уже заполнен полуночной задачей.
func (j *SlotJobs) RunInitialGeneration(ctx context.Context) error {
	now := j.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	count, err := j.slotRepo.CountByDateRange(ctx, today, tomorrow)
	if err != nil {
		return fmt.Errorf("initial slot generation: failed to count today's slots: %w", err)
	}

	if count > 0 {
		j.logger.Info("initial slot generation: %d slots already exist for today, skipping", count)
		return nil
	}

	j.logger.Info("initial slot generation: no slots for today, generating")
	return j.RunGeneration(ctx)
}

// RunGeneration догенерирует слоты для всех активных центров.
// Запускается в полночь: горизонт расписания сдвигается на день вперед.
func (j *SlotJobs) RunGeneration(ctx context.Context) error {
	created, err := j.generator.GenerateForAllCenters(ctx, j.generationDays)
	if err != nil {
		return fmt.Errorf("slot generation: %w", err)
	}

	j.logger.Info("slot generation: created %d slots for %d days ahead", created, j.generationDays)
	return nil
}

// RunCleanup удаляет слоты старше горизонта хранения.
// Бронирования удаляются каскадно вместе со слотом.
func (j *SlotJobs) RunCleanup(ctx context.Context) error {
	cutoff := j.clock.Now().AddDate(0, 0, -j.retentionDays)

	deleted, err := j.slotRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("slot cleanup: %w", err)
	}

	j.logger.Info("slot cleanup: deleted %d slots older than %s",
		deleted, cutoff.Format(domain.DateFormat))
	return nil
}
