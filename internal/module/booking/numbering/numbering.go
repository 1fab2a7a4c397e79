package numbering

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	PrefixBooking = "BKG"
	PrefixInvoice = "INV"
	PrefixJournal = "JRN"
)

// Issuer hands out human-readable document numbers, unique and monotonic
// per prefix and year.
type Issuer interface {
	Next(ctx context.Context, ext sqlx.ExtContext, prefix string) (string, error)
}

type service struct {
	now func() time.Time
}

func NewService() Issuer {
	return &service{now: time.Now}
}

// Next bumps the per-prefix-per-year counter in a single statement, so
// concurrent callers can never be handed the same value. Counting rows
// and formatting count+1 would race; the upsert is the counter.
func (s *service) Next(ctx context.Context, ext sqlx.ExtContext, prefix string) (string, error) {
	year := s.now().UTC().Year()

	query := `
		INSERT INTO number_sequences (prefix, year, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (prefix, year)
		DO UPDATE SET last_value = number_sequences.last_value + 1
		RETURNING last_value`

	var value int64
	if err := sqlx.GetContext(ctx, ext, &value, query, prefix, year); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%d-%05d", prefix, year, value), nil
}
