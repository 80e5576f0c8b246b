package domain

// Правила штрафов за неявки
const (
	// NoShowPenaltyThreshold количество неявок, после которого пользователь штрафуется
	NoShowPenaltyThreshold = 3

	// PenaltyDurationDays длительность штрафа в днях
	PenaltyDurationDays = 7
)

// Ограничения бронирований
const (
	// MaxBookingsPerDay максимум активных бронирований, созданных пользователем за календарный день
	MaxBookingsPerDay = 2
)

// Параметры фоновых задач по умолчанию
const (
	// DefaultGenerationDays горизонт генерации слотов при инициализации
	DefaultGenerationDays = 7

	// DefaultRetentionDays слоты старше этого горизонта удаляются
	DefaultRetentionDays = 30

	// DefaultLateGraceMinutes льготный период опоздания до перевода в no_show
	DefaultLateGraceMinutes = 15
)

// Форматы даты и времени
const (
	TimeFormat      = "15:04"      // HH:MM
	DateFormat      = "2006-01-02" // YYYY-MM-DD
	TimestampFormat = "2006-01-02T15:04:05Z07:00"
)

// ActiveStatuses статусы бронирований, занимающих место в слоте
var ActiveStatuses = []BookingStatus{
	StatusBooked,
	StatusConfirmed,
	StatusCheckedIn,
}

// TerminalStatuses финальные статусы бронирований
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// PendingStatuses статусы, из которых бронирование может быть переведено
// в no_show фоновой проверкой опозданий
var PendingStatuses = []BookingStatus{
	StatusBooked,
	StatusConfirmed,
}
