package entity

import (
	"database/sql"
	"time"

	"backoffice-service/internal/pkg/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPartial  PaymentStatus = "partial"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

type ResourceKind string

const (
	KindHall  ResourceKind = "hall"
	KindEvent ResourceKind = "event"
)

const (
	PaymentTypeFull    = "full"
	PaymentTypePartial = "partial"
)

type HallStatus string

const (
	HallAvailable   HallStatus = "available"
	HallMaintenance HallStatus = "maintenance"
	HallDisabled    HallStatus = "disabled"
)

type Hall struct {
	ID            int64           `db:"id"`
	Name          string          `db:"name"`
	Capacity      int             `db:"capacity"`
	HourlyRate    decimal.Decimal `db:"hourly_rate"`
	DailyRate     decimal.Decimal `db:"daily_rate"`
	WeeklyRate    decimal.Decimal `db:"weekly_rate"`
	MonthlyRate   decimal.Decimal `db:"monthly_rate"`
	Currency      string          `db:"currency"`
	Status        HallStatus      `db:"status"`
	EnableBooking bool            `db:"enable_booking"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     sql.NullTime    `db:"updated_at"`
	DeletedAt     sql.NullTime    `db:"deleted_at"`
}

type TicketClass struct {
	ID                int64           `db:"id"`
	EventID           int64           `db:"event_id"`
	EventName         string          `db:"event_name"`
	EventStarts       time.Time       `db:"event_starts"`
	EventPublished    bool            `db:"event_published"`
	Name              string          `db:"name"`
	UnitPrice         decimal.Decimal `db:"unit_price"`
	Currency          string          `db:"currency"`
	QuantityAvailable int             `db:"quantity_available"`
	QuantitySold      int             `db:"quantity_sold"`
	SaleStarts        sql.NullTime    `db:"sale_starts"`
	SaleEnds          sql.NullTime    `db:"sale_ends"`
	IsActive          bool            `db:"is_active"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         sql.NullTime    `db:"updated_at"`
}

func (t TicketClass) Remaining() int {
	return t.QuantityAvailable - t.QuantitySold
}

type Booking struct {
	ID            uuid.UUID       `db:"id"`
	BookingNumber string          `db:"booking_number"`
	Kind          ResourceKind    `db:"kind"`
	HallID        sql.NullInt64   `db:"hall_id"`
	EventID       sql.NullInt64   `db:"event_id"`
	CustomerID    int64           `db:"customer_id"`
	StartsAt      sql.NullTime    `db:"starts_at"`
	EndsAt        sql.NullTime    `db:"ends_at"`
	Currency      string          `db:"currency"`
	Subtotal      decimal.Decimal `db:"subtotal"`
	ServiceFee    decimal.Decimal `db:"service_fee"`
	TaxAmount     decimal.Decimal `db:"tax_amount"`
	Total         decimal.Decimal `db:"total"`
	AmountPaid    decimal.Decimal `db:"amount_paid"`
	BalanceDue    decimal.Decimal `db:"balance_due"`
	Status        BookingStatus   `db:"status"`
	PaymentStatus PaymentStatus   `db:"payment_status"`
	PaymentType   string          `db:"payment_type"`
	InvoiceID     sql.NullInt64   `db:"invoice_id"`
	ExpireTaskID  sql.NullString  `db:"expire_task_id"`
	CreatedBy     int64           `db:"created_by"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     sql.NullTime    `db:"updated_at"`
	DeletedAt     sql.NullTime    `db:"deleted_at"`
}

// CanTransitionTo is the booking state machine:
// pending -> confirmed | cancelled, confirmed -> completed | cancelled.
func (b Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case BookingPending:
		return next == BookingConfirmed || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingCompleted || next == BookingCancelled
	default:
		return false
	}
}

// ApplyPayment records a received amount, keeping amount_paid <= total
// and balance_due = total - amount_paid. Overpayment is rejected rather
// than clamped.
func (b *Booking) ApplyPayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errors.BadRequest("payment amount must be positive")
	}
	paid := b.AmountPaid.Add(amount)
	if paid.GreaterThan(b.Total) {
		return errors.BadRequest("payment exceeds balance due")
	}

	b.AmountPaid = paid
	b.BalanceDue = b.Total.Sub(paid)

	if b.BalanceDue.LessThanOrEqual(decimal.Zero) {
		b.PaymentStatus = PaymentPaid
	} else {
		b.PaymentStatus = PaymentPartial
	}
	return nil
}

type BookingLineItem struct {
	ID            int64           `db:"id"`
	BookingID     uuid.UUID       `db:"booking_id"`
	TicketClassID sql.NullInt64   `db:"ticket_class_id"`
	Description   string          `db:"description"`
	Quantity      int             `db:"quantity"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
	LineTotal     decimal.Decimal `db:"line_total"`
}

type Payment struct {
	ID        int64           `db:"id"`
	BookingID uuid.UUID       `db:"booking_id"`
	Amount    decimal.Decimal `db:"amount"`
	Currency  string          `db:"currency"`
	Method    string          `db:"method"`
	PaidAt    time.Time       `db:"paid_at"`
	CreatedAt time.Time       `db:"created_at"`
}
