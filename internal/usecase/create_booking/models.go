package create_booking

import (
	"time"

	"github.com/m04kA/GSC-SlotService/internal/domain"
	"github.com/m04kA/GSC-SlotService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID      int64                  // ID пользователя
	SlotID      int64                  // ID слота
	ServiceName string                 // название услуги
	Priority    domain.BookingPriority // приоритет обслуживания (опционально, по умолчанию normal)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	BookingNumber string
	UserID        int64
	CenterID      int64
	SlotID        int64
	ServiceName   string
	Status        string
	Priority      string

	// Сведения о слоте на момент бронирования
	SlotDate  time.Time
	StartTime types.TimeString
	EndTime   types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}
