package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	Asset     AccountType = "asset"
	Liability AccountType = "liability"
	Equity    AccountType = "equity"
	Income    AccountType = "income"
	Expense   AccountType = "expense"
)

// Well-known account codes the booking flow posts against.
const (
	CodeCash               = "1000"
	CodeAccountsReceivable = "1100"
	CodeBookingRevenue     = "4000"
)

type Account struct {
	ID             int64           `db:"id"`
	Code           string          `db:"code"`
	Name           string          `db:"name"`
	Type           AccountType     `db:"type"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	IsActive       bool            `db:"is_active"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// BalanceDelta is the signed balance movement a debit/credit pair causes
// for this account's type: asset and expense accounts grow on debit,
// the rest grow on credit.
func (a Account) BalanceDelta(debit, credit decimal.Decimal) decimal.Decimal {
	if a.Type == Asset || a.Type == Expense {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

type JournalEntry struct {
	ID            int64     `db:"id"`
	JournalNumber string    `db:"journal_number"`
	EntryDate     time.Time `db:"entry_date"`
	Description   string    `db:"description"`
	ReferenceType string    `db:"reference_type"`
	ReferenceID   string    `db:"reference_id"`
	CreatedBy     int64     `db:"created_by"`
	CreatedAt     time.Time `db:"created_at"`
}

type JournalLine struct {
	ID             int64           `db:"id"`
	JournalEntryID int64           `db:"journal_entry_id"`
	AccountID      int64           `db:"account_id"`
	Debit          decimal.Decimal `db:"debit"`
	Credit         decimal.Decimal `db:"credit"`
	Description    string          `db:"description"`
	Position       int             `db:"position"`
}

type InvoiceStatus string

const (
	InvoiceSent    InvoiceStatus = "sent"
	InvoicePartial InvoiceStatus = "partial"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

type Invoice struct {
	ID            int64           `db:"id"`
	InvoiceNumber string          `db:"invoice_number"`
	BookingID     string          `db:"booking_id"`
	CustomerID    int64           `db:"customer_id"`
	IssueDate     time.Time       `db:"issue_date"`
	DueDate       time.Time       `db:"due_date"`
	Description   string          `db:"description"`
	Subtotal      decimal.Decimal `db:"subtotal"`
	TaxAmount     decimal.Decimal `db:"tax_amount"`
	Total         decimal.Decimal `db:"total"`
	AmountPaid    decimal.Decimal `db:"amount_paid"`
	Status        InvoiceStatus   `db:"status"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// RecomputeStatus derives the invoice status from payments received and
// the due date; called every time a payment lands.
func (i *Invoice) RecomputeStatus(now time.Time) {
	switch {
	case i.AmountPaid.GreaterThanOrEqual(i.Total):
		i.Status = InvoicePaid
	case i.AmountPaid.IsPositive():
		i.Status = InvoicePartial
	case now.After(i.DueDate):
		i.Status = InvoiceOverdue
	default:
		i.Status = InvoiceSent
	}
}
