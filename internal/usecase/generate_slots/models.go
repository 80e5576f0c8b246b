package generate_slots

import "time"

// Request модель запроса на генерацию слотов
type Request struct {
	CenterID int64      // ID сервисного центра
	Date     *time.Time // Дата начала генерации (опционально, по умолчанию сегодня)
	Days     int        // Количество дней вперед (опционально, по умолчанию 7)
}

// Response модель ответа с результатом генерации
type Response struct {
	CenterID     int64 // ID сервисного центра
	DaysCovered  int   // Количество обработанных дней
	SlotsCreated int64 // Количество фактически созданных слотов
}
