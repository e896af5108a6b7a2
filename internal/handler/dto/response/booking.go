package response

import (
	"time"

	"access-scheduler/internal/usecase/commands"
	"access-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID           uuid.UUID `json:"id"`
	Resource     string    `json:"resource"`
	CustomerName string    `json:"customerName"`
	Document     string    `json:"document"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ConflictBookingResponse struct {
	ID       uuid.UUID `json:"id"`
	Resource string    `json:"resource"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type SlotResponse struct {
	Resource string    `json:"resource"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type ConflictResponse struct {
	Message          string                   `json:"message"`
	ConflictWith     *ConflictBookingResponse `json:"conflictWith,omitempty"`
	AlternativeSlots []SlotResponse           `json:"alternativeSlots"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:           view.ID,
		Resource:     view.Resource,
		CustomerName: view.CustomerName,
		Document:     view.Document,
		Start:        view.Start,
		End:          view.End,
		CreatedAt:    view.CreatedAt,
	}
}

func FromConflictResult(result *commands.ConflictResult) *ConflictResponse {
	resp := &ConflictResponse{
		Message:          result.Message,
		AlternativeSlots: FromSlotViews(result.Alternatives),
	}
	if result.ConflictWith != nil {
		resp.ConflictWith = &ConflictBookingResponse{
			ID:       result.ConflictWith.ID,
			Resource: result.ConflictWith.Resource,
			Start:    result.ConflictWith.Start,
			End:      result.ConflictWith.End,
		}
	}
	return resp
}

func FromSlotViews(views []queries.SlotView) []SlotResponse {
	slots := make([]SlotResponse, len(views))
	for i, v := range views {
		slots[i] = SlotResponse{
			Resource: v.Resource,
			Start:    v.Start,
			End:      v.End,
		}
	}
	return slots
}
