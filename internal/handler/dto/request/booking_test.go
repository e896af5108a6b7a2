//go:build unit

package request_test

import (
	"encoding/base64"
	"testing"
	"time"

	"access-scheduler/internal/handler/dto/request"
	"access-scheduler/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() request.CreateBookingRequest {
	return builder.NewBookingBuilder().BuildCreateRequestDTO()
}

func TestCreateBookingRequest_Times(t *testing.T) {
	t.Run("parses wall-clock format", func(t *testing.T) {
		req := validRequest()
		req.Start = "2026-03-10T10:00:00"
		req.End = "2026-03-10T10:30:00"

		start, end, err := req.Times()
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC), end)
	})

	t.Run("accepts RFC3339 and keeps the wall-clock reading", func(t *testing.T) {
		req := validRequest()
		req.Start = "2026-03-10T10:00:00-03:00"
		req.End = "2026-03-10T10:30:00-03:00"

		start, _, err := req.Times()
		require.NoError(t, err)
		assert.Equal(t, 10, start.Hour())
	})

	t.Run("rejects unparseable times", func(t *testing.T) {
		for _, bad := range []string{"10 o'clock", "2026-03-10", "", "10:00:00"} {
			req := validRequest()
			req.Start = bad
			_, _, err := req.Times()
			assert.ErrorIs(t, err, request.ErrInvalidTimeFormat, "start=%q", bad)
		}
	})

	t.Run("rejects a bad end even when start is fine", func(t *testing.T) {
		req := validRequest()
		req.End = "later"
		_, _, err := req.Times()
		assert.ErrorIs(t, err, request.ErrInvalidTimeFormat)
	})
}

func TestCreateBookingRequest_Validate(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		require.NoError(t, validRequest().Validate())
	})

	t.Run("coordinates", func(t *testing.T) {
		tests := []struct {
			name     string
			lat, lon float64
			wantErr  error
		}{
			{"latitude too low", -90.5, 0, request.ErrInvalidLatitude},
			{"latitude too high", 90.5, 0, request.ErrInvalidLatitude},
			{"longitude too low", 0, -180.5, request.ErrInvalidLongitude},
			{"longitude too high", 0, 180.5, request.ErrInvalidLongitude},
			{"boundary values pass", 90, -180, nil},
			{"zero-zero passes", 0, 0, nil},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := validRequest()
				req.Latitude = tt.lat
				req.Longitude = tt.lon
				err := req.Validate()
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})

	t.Run("portrait", func(t *testing.T) {
		tests := []struct {
			name     string
			portrait string
			wantErr  error
		}{
			{"plain JPEG", builder.TinyJPEG(), nil},
			{"plain PNG", builder.TinyPNG(), nil},
			{"data URI prefix is stripped", "data:image/jpeg;base64," + builder.TinyJPEG(), nil},
			{"empty", "", request.ErrPortraitRequired},
			{"whitespace only", "   ", request.ErrPortraitRequired},
			{"not base64", "!!definitely not base64!!", request.ErrPortraitFormat},
			{"base64 of a text file", base64.StdEncoding.EncodeToString([]byte("hello world")), request.ErrPortraitNotImage},
			{"too short to carry a signature", base64.StdEncoding.EncodeToString([]byte{0xFF}), request.ErrPortraitNotImage},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := validRequest()
				req.Portrait = tt.portrait
				err := req.Validate()
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})

	t.Run("oversized portrait is rejected", func(t *testing.T) {
		// JPEG signature followed by > 1MB of padding.
		payload := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 1024*1024)...)
		req := validRequest()
		req.Portrait = base64.StdEncoding.EncodeToString(payload)
		assert.ErrorIs(t, req.Validate(), request.ErrPortraitTooLarge)
	})

	t.Run("portrait under the size cap passes", func(t *testing.T) {
		payload := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 1024)...)
		req := validRequest()
		req.Portrait = base64.StdEncoding.EncodeToString(payload)
		assert.NoError(t, req.Validate())
	})
}

func TestValidatePortraitDataURI(t *testing.T) {
	// A data URI without a comma falls through to base64 validation of the
	// whole string, which the colon and semicolon fail.
	req := validRequest()
	req.Portrait = "data:image/jpeg;base64"
	assert.ErrorIs(t, req.Validate(), request.ErrPortraitFormat)
}
