package domain

import (
	"time"

	"github.com/m04kA/GSC-SlotService/pkg/types"
)

// ServiceCenter сервисный центр
// Для ядра это read-only конфигурация: администрирование центров
// выполняется внешним сервисом
type ServiceCenter struct {
	ID                  int64
	Name                string
	City                string
	Address             string
	WorkingDays         []int // дни недели 0 (воскресенье) .. 6 (суббота)
	WorkStart           types.TimeString
	WorkEnd             types.TimeString
	SlotDurationMinutes int
	CapacityPerSlot     int
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsWorkingDay возвращает true, если центр работает в указанный день недели
func (c *ServiceCenter) IsWorkingDay(weekday time.Weekday) bool {
	for _, d := range c.WorkingDays {
		if d == int(weekday) {
			return true
		}
	}
	return false
}
