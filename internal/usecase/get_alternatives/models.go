package get_alternatives

import (
	"time"

	"github.com/m04kA/GSC-SlotService/pkg/types"
)

// DefaultLimit ограничение на количество альтернатив по умолчанию
const DefaultLimit = 5

// Request модель запроса альтернативных слотов
type Request struct {
	SlotID int64 // ID слота, для которого ищутся альтернативы
	Limit  int   // максимум альтернатив (опционально, по умолчанию 5)
}

// Alternative альтернативный слот с расчетным рейтингом
type Alternative struct {
	SlotID         int64
	CenterID       int64
	SlotDate       time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	Capacity       int
	CurrentLoad    int
	LoadScore      float64 // доля занятой емкости, 0.0 .. 1.0
	TimeDiffMin    int     // расстояние по времени от запрошенного слота, минуты
	CombinedScore  float64 // итоговый рейтинг, меньше - лучше
	Recommendation string  // словесная оценка рейтинга
}

// RequestedSlot сведения о запрошенном слоте
type RequestedSlot struct {
	SlotID      int64
	CenterID    int64
	SlotDate    time.Time
	StartTime   types.TimeString
	Status      string
	Capacity    int
	CurrentLoad int
	LoadScore   float64
}

// Response модель ответа со списком альтернатив
type Response struct {
	Requested    RequestedSlot
	Alternatives []Alternative
	Message      string
}
