//go:build unit || e2e

package builder

import (
	"encoding/base64"
	"time"

	dombooking "access-scheduler/internal/domain/booking"
	reqdto "access-scheduler/internal/handler/dto/request"
	"access-scheduler/internal/usecase/commands"
	"access-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

// TinyJPEG returns a base64 payload carrying the JPEG magic bytes, small
// enough to stay well under the portrait size cap.
func TinyJPEG() string {
	raw := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 64)...)
	return base64.StdEncoding.EncodeToString(raw)
}

// TinyPNG is the PNG counterpart of TinyJPEG.
func TinyPNG() string {
	raw := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)
	return base64.StdEncoding.EncodeToString(raw)
}

type BookingBuilder struct {
	Resource     string
	CustomerName string
	Document     string
	Start        time.Time
	End          time.Time
	Latitude     float64
	Longitude    float64
	Portrait     string
	TimezoneID   string
	Now          time.Time
}

func NewBookingBuilder() *BookingBuilder {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		Resource:     "gate-1",
		CustomerName: "Alice Martins",
		Document:     "12345678900",
		Start:        start,
		End:          start.Add(30 * time.Minute),
		Latitude:     -23.55,
		Longitude:    -46.63,
		Portrait:     TinyJPEG(),
		TimezoneID:   "UTC",
		Now:          start.Add(-24 * time.Hour),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	customer, err := dombooking.NewCustomer(b.CustomerName, b.Document)
	if err != nil {
		return nil, err
	}
	window, err := dombooking.NewTimeWindow(b.Start, b.End)
	if err != nil {
		return nil, err
	}
	return dombooking.NewBooking(b.Now, b.Resource, customer, window)
}

func (b *BookingBuilder) BuildReconstructed() *dombooking.Booking {
	customer, _ := dombooking.NewCustomer(b.CustomerName, b.Document)
	window, _ := dombooking.NewTimeWindow(b.Start, b.End)
	return dombooking.ReconstructBooking(uuid.New(), b.Resource, customer, window, b.Now, uuid.New())
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	const layout = "2006-01-02T15:04:05"
	return reqdto.CreateBookingRequest{
		Resource:     b.Resource,
		CustomerName: b.CustomerName,
		Document:     b.Document,
		Start:        b.Start.Format(layout),
		End:          b.End.Format(layout),
		Portrait:     b.Portrait,
		Latitude:     b.Latitude,
		Longitude:    b.Longitude,
	}
}

func (b *BookingBuilder) BuildCommand() commands.CreateBookingCommand {
	return commands.CreateBookingCommand{
		Resource:     b.Resource,
		CustomerName: b.CustomerName,
		Document:     b.Document,
		Start:        b.Start,
		End:          b.End,
		TimezoneID:   b.TimezoneID,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:           uuid.New(),
		Resource:     b.Resource,
		CustomerName: b.CustomerName,
		Document:     b.Document,
		Start:        b.Start,
		End:          b.End,
		CreatedAt:    b.Now,
	}
}
