package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side). Times are rendered in the caller's
// timezone; storage keeps everything UTC.
type BookingView struct {
	ID           uuid.UUID `json:"id"`
	Resource     string    `json:"resource"`
	CustomerName string    `json:"customer_name"`
	Document     string    `json:"document"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	CreatedAt    time.Time `json:"created_at"`
}

type SlotView struct {
	Resource string    `json:"resource"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}
