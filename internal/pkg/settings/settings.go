package settings

import (
	"context"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// Snapshot is the typed view of the back-office settings table at the
// moment a use case starts. Values outside their allowed range fall back
// to the defaults below instead of failing the request.
type Snapshot struct {
	ServiceFeePercentage   decimal.Decimal
	TaxRate                decimal.Decimal
	MinDepositPercentage   decimal.Decimal
	MaxInstallments        int
	BookingTimeoutMinutes  int
	AutoGenerateInvoice    bool
	AutoCreateJournalEntry bool
}

func Defaults() Snapshot {
	return Snapshot{
		ServiceFeePercentage:   decimal.NewFromFloat(2.5),
		TaxRate:                decimal.NewFromFloat(7.5),
		MinDepositPercentage:   decimal.NewFromInt(30),
		MaxInstallments:        3,
		BookingTimeoutMinutes:  30,
		AutoGenerateInvoice:    true,
		AutoCreateJournalEntry: true,
	}
}

type Reader interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

type store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) Reader {
	return &store{db: db}
}

func (s *store) Snapshot(ctx context.Context) (Snapshot, error) {
	rows := []struct {
		Key   string `db:"key"`
		Value string `db:"value"`
	}{}

	query := `SELECT key, value FROM settings`
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return Snapshot{}, err
	}

	snap := Defaults()
	for _, row := range rows {
		applyValue(&snap, row.Key, row.Value)
	}
	return snap, nil
}

func applyValue(snap *Snapshot, key, value string) {
	switch key {
	case "service_fee_percentage":
		if d, err := decimal.NewFromString(value); err == nil && !d.IsNegative() {
			snap.ServiceFeePercentage = d
		}
	case "tax_rate":
		if d, err := decimal.NewFromString(value); err == nil && !d.IsNegative() {
			snap.TaxRate = d
		}
	case "min_deposit_percentage":
		if d, err := decimal.NewFromString(value); err == nil && !d.IsNegative() {
			snap.MinDepositPercentage = d
		}
	case "max_installments":
		if n, err := strconv.Atoi(value); err == nil && n >= 1 && n <= 12 {
			snap.MaxInstallments = n
		}
	case "booking_timeout_minutes":
		if n, err := strconv.Atoi(value); err == nil && n >= 5 && n <= 60 {
			snap.BookingTimeoutMinutes = n
		}
	case "auto_generate_invoice":
		if b, err := strconv.ParseBool(value); err == nil {
			snap.AutoGenerateInvoice = b
		}
	case "auto_create_journal_entry":
		if b, err := strconv.ParseBool(value); err == nil {
			snap.AutoCreateJournalEntry = b
		}
	}
}
