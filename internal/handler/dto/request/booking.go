package request

import (
	"encoding/base64"
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrInvalidTimeFormat = errors.New("invalid time format, use YYYY-MM-DDTHH:MM:SS")
	ErrInvalidLatitude   = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude  = errors.New("longitude must be between -180 and 180")
	ErrPortraitRequired  = errors.New("portrait is required")
	ErrPortraitFormat    = errors.New("invalid portrait format")
	ErrPortraitTooLarge  = errors.New("portrait must be at most 1MB")
	ErrPortraitNotImage  = errors.New("unsupported portrait format, use JPEG or PNG")
)

const maxPortraitBytes = 1024 * 1024

var base64Re = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)

// timeLayouts accepted for start/end. Values are wall-clock times in the
// caller's timezone; any offset in the input is ignored.
var timeLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
}

type CreateBookingRequest struct {
	CustomerName string  `json:"customer_name" binding:"required"`
	Document     string  `json:"document" binding:"required"`
	Resource     string  `json:"resource" binding:"required"`
	Start        string  `json:"start" binding:"required"`
	End          string  `json:"end" binding:"required"`
	Portrait     string  `json:"portrait" binding:"required"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

// Times parses the wall-clock start and end.
func (r CreateBookingRequest) Times() (start, end time.Time, err error) {
	start, err = parseWallClock(r.Start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = parseWallClock(r.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// Validate checks the pass-through fields the scheduler never looks at:
// coordinates and the portrait payload. Scheduling fields are validated in
// the domain.
func (r CreateBookingRequest) Validate() error {
	if r.Latitude < -90 || r.Latitude > 90 {
		return ErrInvalidLatitude
	}
	if r.Longitude < -180 || r.Longitude > 180 {
		return ErrInvalidLongitude
	}
	return validatePortrait(r.Portrait)
}

func parseWallClock(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTimeFormat
}

func validatePortrait(portrait string) error {
	if strings.TrimSpace(portrait) == "" {
		return ErrPortraitRequired
	}

	data := portrait
	if strings.HasPrefix(portrait, "data:image") {
		if idx := strings.IndexByte(portrait, ','); idx > 0 {
			data = portrait[idx+1:]
		}
	}

	if !base64Re.MatchString(data) {
		return ErrPortraitFormat
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return ErrPortraitFormat
	}
	if len(raw) > maxPortraitBytes {
		return ErrPortraitTooLarge
	}
	if !isJPEGOrPNG(raw) {
		return ErrPortraitNotImage
	}

	return nil
}

func isJPEGOrPNG(raw []byte) bool {
	if len(raw) < 4 {
		return false
	}
	if raw[0] == 0xFF && raw[1] == 0xD8 && raw[2] == 0xFF {
		return true
	}
	return raw[0] == 0x89 && raw[1] == 0x50 && raw[2] == 0x4E && raw[3] == 0x47
}
