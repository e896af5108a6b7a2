package pgconv

import (
	"database/sql"
	"errors"
	"time"

	"access-scheduler/internal/domain/booking"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var ErrInvalidRange = errors.New("invalid tstzrange value")

func TimeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

// WindowToRange renders a TimeWindow as a half-open tstzrange.
func WindowToRange(w booking.TimeWindow) pgtype.Range[pgtype.Timestamptz] {
	return pgtype.Range[pgtype.Timestamptz]{
		Lower:     TimeToPgtype(w.Start()),
		Upper:     TimeToPgtype(w.End()),
		LowerType: pgtype.Inclusive,
		UpperType: pgtype.Exclusive,
		Valid:     true,
	}
}

func WindowFromRange(r pgtype.Range[pgtype.Timestamptz]) (booking.TimeWindow, error) {
	if !r.Valid || !r.Lower.Valid || !r.Upper.Valid {
		return booking.TimeWindow{}, ErrInvalidRange
	}
	w, err := booking.NewTimeWindow(r.Lower.Time, r.Upper.Time)
	if err != nil {
		return booking.TimeWindow{}, errors.Join(ErrInvalidRange, err)
	}
	return w, nil
}

// IsNoRows checks if the error is a "no rows" error from either sql or pgx
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}
