package domain

import (
	"time"

	"github.com/m04kA/GSC-SlotService/pkg/types"
)

// SlotStatus статус слота
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusFull      SlotStatus = "full"
	SlotStatusClosed    SlotStatus = "closed"
)

// IsValid проверяет, что статус слота является одним из известных значений
func (s SlotStatus) IsValid() bool {
	switch s {
	case SlotStatusAvailable, SlotStatusFull, SlotStatusClosed:
		return true
	}
	return false
}

// Slot временной слот сервисного центра с ограниченной вместимостью
//
// Инвариант идентичности: пара (center_id, slot_date, start_time) уникальна,
// генерация слотов идемпотентна и не создаёт дубликатов.
// Статус всегда выводится из (current_load, capacity, is_active),
// а не задаётся независимо.
type Slot struct {
	ID          int64
	CenterID    int64
	SlotDate    time.Time // дата слота (без времени, локальная полночь)
	StartTime   types.TimeString
	EndTime     types.TimeString
	Capacity    int // копируется из центра при генерации, дальше не меняется
	CurrentLoad int
	Status      SlotStatus
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DeriveStatus вычисляет статус слота из его состояния:
// closed - если слот деактивирован,
// full - если загрузка достигла вместимости,
// available - иначе
func (s *Slot) DeriveStatus() SlotStatus {
	if !s.IsActive {
		return SlotStatusClosed
	}
	if s.CurrentLoad >= s.Capacity {
		return SlotStatusFull
	}
	return SlotStatusAvailable
}

// RecalculateStatus перевычисляет и записывает статус слота
// Вызывается после каждого изменения current_load или is_active
func (s *Slot) RecalculateStatus() {
	s.Status = s.DeriveStatus()
}

// IsBookable возвращает true, если в слоте можно создать бронирование
func (s *Slot) IsBookable() bool {
	return s.IsActive && s.Status != SlotStatusClosed && s.CurrentLoad < s.Capacity
}

// LoadScore возвращает коэффициент загрузки слота в диапазоне [0, 1]
// Вырожденный случай capacity = 0 трактуется как полностью загруженный слот
func (s *Slot) LoadScore() float64 {
	if s.Capacity == 0 {
		return 1
	}
	return float64(s.CurrentLoad) / float64(s.Capacity)
}

// WaitEstimate грубая оценка времени ожидания в минутах
type WaitEstimate struct {
	MinMinutes     int
	MaxMinutes     int
	AverageMinutes int
}

// EstimateWait возвращает оценку ожидания по загрузке слота
// Пороговые значения подобраны эмпирически:
// < 0.5 - свободно, 0.5..0.8 - средняя загрузка, >= 0.8 - высокая
func (s *Slot) EstimateWait() WaitEstimate {
	score := s.LoadScore()

	switch {
	case score < 0.5:
		return WaitEstimate{MinMinutes: 0, MaxMinutes: 10, AverageMinutes: 5}
	case score < 0.8:
		return WaitEstimate{MinMinutes: 10, MaxMinutes: 20, AverageMinutes: 15}
	default:
		return WaitEstimate{MinMinutes: 20, MaxMinutes: 40, AverageMinutes: 30}
	}
}

// StartDateTime возвращает полную временную метку начала слота
func (s *Slot) StartDateTime() (time.Time, error) {
	return s.StartTime.AtDate(s.SlotDate)
}
