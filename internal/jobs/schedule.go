package jobs

import (
	"fmt"
	"time"
)

// schedule определяет момент следующего запуска задачи
type schedule interface {
	// next возвращает ближайший момент запуска строго после after
	next(after time.Time) time.Time
	// String описание расписания для статуса и логов
	String() string
}

// dailySchedule запуск раз в сутки в фиксированное локальное время
type dailySchedule struct {
	hour   int
	minute int
}

// dailyAt создает расписание запуска каждый день в hh:mm
func dailyAt(hour, minute int) dailySchedule {
	return dailySchedule{hour: hour, minute: minute}
}

func (s dailySchedule) next(after time.Time) time.Time {
	run := time.Date(after.Year(), after.Month(), after.Day(), s.hour, s.minute, 0, 0, after.Location())
	if !run.After(after) {
		run = run.AddDate(0, 0, 1)
	}
	return run
}

func (s dailySchedule) String() string {
	return fmt.Sprintf("daily at %02d:%02d", s.hour, s.minute)
}

// intervalSchedule запуск с фиксированным интервалом
type intervalSchedule struct {
	interval time.Duration
}

// every создает расписание запуска с интервалом d
func every(d time.Duration) intervalSchedule {
	return intervalSchedule{interval: d}
}

func (s intervalSchedule) next(after time.Time) time.Time {
	return after.Add(s.interval)
}

func (s intervalSchedule) String() string {
	return fmt.Sprintf("every %s", s.interval)
}
