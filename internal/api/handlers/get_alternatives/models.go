package get_alternatives

import (
	"github.com/m04kA/GSC-SlotService/internal/domain"
	getAlternatives "github.com/m04kA/GSC-SlotService/internal/usecase/get_alternatives"
)

// RequestedSlotResponse сведения о запрошенном слоте
type RequestedSlotResponse struct {
	SlotID      int64   `json:"slotId"`
	CenterID    int64   `json:"centerId"`
	SlotDate    string  `json:"slotDate"`
	StartTime   string  `json:"startTime"`
	Status      string  `json:"status"`
	Capacity    int     `json:"capacity"`
	CurrentLoad int     `json:"currentLoad"`
	LoadScore   float64 `json:"loadScore"`
}

// AlternativeResponse альтернативный слот с рейтингом
type AlternativeResponse struct {
	SlotID         int64   `json:"slotId"`
	CenterID       int64   `json:"centerId"`
	SlotDate       string  `json:"slotDate"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	Capacity       int     `json:"capacity"`
	CurrentLoad    int     `json:"currentLoad"`
	LoadScore      float64 `json:"loadScore"`
	TimeDiffMin    int     `json:"timeDiffMinutes"`
	CombinedScore  float64 `json:"combinedScore"`
	Recommendation string  `json:"recommendation"`
}

// AlternativesResponse HTTP response model
type AlternativesResponse struct {
	Requested    RequestedSlotResponse `json:"requestedSlot"`
	Alternatives []AlternativeResponse `json:"alternatives"`
	Message      string                `json:"message"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAlternatives.Response) *AlternativesResponse {
	alternatives := make([]AlternativeResponse, 0, len(resp.Alternatives))
	for _, a := range resp.Alternatives {
		alternatives = append(alternatives, AlternativeResponse{
			SlotID:         a.SlotID,
			CenterID:       a.CenterID,
			SlotDate:       a.SlotDate.Format(domain.DateFormat),
			StartTime:      a.StartTime.String(),
			EndTime:        a.EndTime.String(),
			Capacity:       a.Capacity,
			CurrentLoad:    a.CurrentLoad,
			LoadScore:      a.LoadScore,
			TimeDiffMin:    a.TimeDiffMin,
			CombinedScore:  a.CombinedScore,
			Recommendation: a.Recommendation,
		})
	}

	return &AlternativesResponse{
		Requested: RequestedSlotResponse{
			SlotID:      resp.Requested.SlotID,
			CenterID:    resp.Requested.CenterID,
			SlotDate:    resp.Requested.SlotDate.Format(domain.DateFormat),
			StartTime:   resp.Requested.StartTime.String(),
			Status:      resp.Requested.Status,
			Capacity:    resp.Requested.Capacity,
			CurrentLoad: resp.Requested.CurrentLoad,
			LoadScore:   resp.Requested.LoadScore,
		},
		Alternatives: alternatives,
		Message:      resp.Message,
	}
}
