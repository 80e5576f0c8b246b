package jobs

import "time"

// Имена зарегистрированных задач
const (
	JobSlotGeneration   = "slot-generation"
	JobSlotCleanup      = "slot-cleanup"
	JobLateArrivalCheck = "late-arrival-check"
	JobStaleExpiry      = "stale-booking-expiry"
)

// Setup регистрирует штатный набор фоновых задач:
// генерация слотов в полночь, отмена зависших бронирований в 01:00,
// очистка старых слотов в 02:00, проверка опозданий по интервалу
func Setup(reg *Registry, slotJobs *SlotJobs, bookingJobs *BookingJobs, lateSweepInterval time.Duration) {
	if lateSweepInterval <= 0 {
		lateSweepInterval = 15 * time.Minute
	}

	reg.Register(JobSlotGeneration, dailyAt(0, 0), slotJobs.RunGeneration)
	reg.Register(JobStaleExpiry, dailyAt(1, 0), bookingJobs.RunStaleExpiry)
	reg.Register(JobSlotCleanup, dailyAt(2, 0), slotJobs.RunCleanup)
	reg.Register(JobLateArrivalCheck, every(lateSweepInterval), bookingJobs.RunLateArrivalCheck)
}
