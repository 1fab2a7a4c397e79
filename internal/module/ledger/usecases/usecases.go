package usecases

import (
	"context"
	"fmt"
	"sort"
	"time"

	"backoffice-service/internal/module/booking/numbering"
	"backoffice-service/internal/module/ledger/models/entity"
	"backoffice-service/internal/module/ledger/models/response"
	"backoffice-service/internal/module/ledger/repositories"
	"backoffice-service/internal/pkg/errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

const invoiceDueDays = 14

type LineInput struct {
	AccountID   int64
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
}

type PostInput struct {
	Date          time.Time
	Description   string
	ReferenceType string
	ReferenceID   string
	CreatedBy     int64
	Lines         []LineInput
}

type InvoiceInput struct {
	BookingID     string
	BookingNumber string
	CustomerID    int64
	IssueDate     time.Time
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	Total         decimal.Decimal
}

type usecase struct {
	repo      repositories.Repositories
	numbering numbering.Issuer
	log       *otelzap.Logger
}

type Usecase interface {
	// posting
	Post(ctx context.Context, input PostInput) (int64, error)
	PostTx(ctx context.Context, tx *sqlx.Tx, input PostInput) (int64, error)
	PostBookingRevenueTx(ctx context.Context, tx *sqlx.Tx, input InvoiceInput, createdBy int64) (int64, error)
	PostPaymentReceiptTx(ctx context.Context, tx *sqlx.Tx, bookingID, bookingNumber string, amount decimal.Decimal, date time.Time, createdBy int64) (int64, error)
	PostBookingReversalTx(ctx context.Context, tx *sqlx.Tx, bookingID, bookingNumber string, total decimal.Decimal, date time.Time, createdBy int64) (int64, error)
	// invoices
	GenerateInvoiceTx(ctx context.Context, tx *sqlx.Tx, input InvoiceInput) (entity.Invoice, error)
	ApplyInvoicePaymentTx(ctx context.Context, tx *sqlx.Tx, invoiceID int64, amount decimal.Decimal, now time.Time) (entity.Invoice, error)
	// reads
	GetJournalEntry(ctx context.Context, id int64) (response.JournalEntryDetail, error)
	ListAccounts(ctx context.Context) ([]response.AccountBalance, error)
	GetInvoice(ctx context.Context, id int64) (response.InvoiceDetail, error)
}

func New(repo repositories.Repositories, issuer numbering.Issuer, log *otelzap.Logger) Usecase {
	return &usecase{
		repo:      repo,
		numbering: issuer,
		log:       log,
	}
}

// validateBalanced enforces the double-entry invariant before anything
// touches the database: every line carries a non-negative debit or
// credit (never both), and the sums are equal. Callers pass lines
// already rounded to storage precision, so the invariant holds for
// exactly the values that get persisted.
func validateBalanced(lines []LineInput) error {
	if len(lines) < 2 {
		return errors.UnprocessableEntity("journal entry needs at least two lines")
	}

	sumDebit := decimal.Zero
	sumCredit := decimal.Zero
	for _, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return errors.UnprocessableEntity("journal line amounts must not be negative")
		}
		if line.Debit.IsPositive() && line.Credit.IsPositive() {
			return errors.UnprocessableEntity("journal line cannot carry both a debit and a credit")
		}
		sumDebit = sumDebit.Add(line.Debit)
		sumCredit = sumCredit.Add(line.Credit)
	}

	if !sumDebit.Equal(sumCredit) {
		return errors.UnprocessableEntity(fmt.Sprintf(
			"journal entry is not balanced: debit %s, credit %s",
			sumDebit, sumCredit))
	}
	if sumDebit.IsZero() {
		return errors.UnprocessableEntity("journal entry must move a nonzero amount")
	}
	return nil
}

// Post implements Usecase.
func (u *usecase) Post(ctx context.Context, input PostInput) (int64, error) {
	var entryID int64
	err := u.repo.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		id, err := u.PostTx(ctx, tx, input)
		if err != nil {
			return err
		}
		entryID = id
		return nil
	})
	return entryID, err
}

// PostTx writes the journal header and balanced lines inside the
// caller's transaction and rolls each referenced account's balance
// forward by the sign convention of its type.
func (u *usecase) PostTx(ctx context.Context, tx *sqlx.Tx, input PostInput) (int64, error) {
	// round every line to 2dp first: sub-cent inputs that balance only
	// before rounding must not survive as an unbalanced persisted entry
	rounded := make([]LineInput, len(input.Lines))
	for i, line := range input.Lines {
		line.Debit = line.Debit.Round(2)
		line.Credit = line.Credit.Round(2)
		rounded[i] = line
	}
	if err := validateBalanced(rounded); err != nil {
		return 0, err
	}

	ids := make([]int64, 0, len(rounded))
	seen := make(map[int64]bool, len(rounded))
	for _, line := range rounded {
		if !seen[line.AccountID] {
			seen[line.AccountID] = true
			ids = append(ids, line.AccountID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	accounts, err := u.repo.LockAccounts(ctx, tx, ids)
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		if !accounts[id].IsActive {
			return 0, errors.UnprocessableEntity(fmt.Sprintf("account %s is inactive", accounts[id].Code))
		}
	}

	journalNumber, err := u.numbering.Next(ctx, tx, numbering.PrefixJournal)
	if err != nil {
		return 0, errors.InternalServerError("error issue journal number")
	}

	entry := entity.JournalEntry{
		JournalNumber: journalNumber,
		EntryDate:     input.Date,
		Description:   input.Description,
		ReferenceType: input.ReferenceType,
		ReferenceID:   input.ReferenceID,
		CreatedBy:     input.CreatedBy,
	}
	if err := u.repo.InsertJournalEntry(ctx, tx, &entry); err != nil {
		return 0, err
	}

	lines := make([]entity.JournalLine, 0, len(rounded))
	for i, line := range rounded {
		lines = append(lines, entity.JournalLine{
			JournalEntryID: entry.ID,
			AccountID:      line.AccountID,
			Debit:          line.Debit,
			Credit:         line.Credit,
			Description:    line.Description,
			Position:       i + 1,
		})
	}
	if err := u.repo.InsertJournalLines(ctx, tx, lines); err != nil {
		return 0, err
	}

	balances := make(map[int64]decimal.Decimal, len(accounts))
	for id, account := range accounts {
		balances[id] = account.CurrentBalance
	}
	for _, line := range lines {
		account := accounts[line.AccountID]
		balances[line.AccountID] = balances[line.AccountID].Add(account.BalanceDelta(line.Debit, line.Credit))
	}
	for _, id := range ids {
		if err := u.repo.UpdateAccountBalance(ctx, tx, id, balances[id]); err != nil {
			return 0, err
		}
	}

	return entry.ID, nil
}

// PostBookingRevenueTx posts the canonical booking entry: debit
// accounts receivable, credit booking revenue for the total.
func (u *usecase) PostBookingRevenueTx(ctx context.Context, tx *sqlx.Tx, input InvoiceInput, createdBy int64) (int64, error) {
	receivable, err := u.repo.FindAccountByCode(ctx, tx, entity.CodeAccountsReceivable)
	if err != nil {
		return 0, err
	}
	revenue, err := u.repo.FindAccountByCode(ctx, tx, entity.CodeBookingRevenue)
	if err != nil {
		return 0, err
	}

	return u.PostTx(ctx, tx, PostInput{
		Date:          input.IssueDate,
		Description:   fmt.Sprintf("booking %s revenue", input.BookingNumber),
		ReferenceType: "booking",
		ReferenceID:   input.BookingID,
		CreatedBy:     createdBy,
		Lines: []LineInput{
			{AccountID: receivable.ID, Debit: input.Total, Description: "receivable for " + input.BookingNumber},
			{AccountID: revenue.ID, Credit: input.Total, Description: "revenue for " + input.BookingNumber},
		},
	})
}

// PostPaymentReceiptTx posts a received payment: debit cash, credit
// accounts receivable.
func (u *usecase) PostPaymentReceiptTx(ctx context.Context, tx *sqlx.Tx, bookingID, bookingNumber string, amount decimal.Decimal, date time.Time, createdBy int64) (int64, error) {
	cash, err := u.repo.FindAccountByCode(ctx, tx, entity.CodeCash)
	if err != nil {
		return 0, err
	}
	receivable, err := u.repo.FindAccountByCode(ctx, tx, entity.CodeAccountsReceivable)
	if err != nil {
		return 0, err
	}

	return u.PostTx(ctx, tx, PostInput{
		Date:          date,
		Description:   fmt.Sprintf("payment for booking %s", bookingNumber),
		ReferenceType: "payment",
		ReferenceID:   bookingID,
		CreatedBy:     createdBy,
		Lines: []LineInput{
			{AccountID: cash.ID, Debit: amount, Description: "cash received"},
			{AccountID: receivable.ID, Credit: amount, Description: "receivable settled"},
		},
	})
}

// PostBookingReversalTx reverses the booking revenue entry on
// cancellation: debit revenue, credit accounts receivable.
func (u *usecase) PostBookingReversalTx(ctx context.Context, tx *sqlx.Tx, bookingID, bookingNumber string, total decimal.Decimal, date time.Time, createdBy int64) (int64, error) {
	receivable, err := u.repo.FindAccountByCode(ctx, tx, entity.CodeAccountsReceivable)
	if err != nil {
		return 0, err
	}
	revenue, err := u.repo.FindAccountByCode(ctx, tx, entity.CodeBookingRevenue)
	if err != nil {
		return 0, err
	}

	return u.PostTx(ctx, tx, PostInput{
		Date:          date,
		Description:   fmt.Sprintf("booking %s cancelled", bookingNumber),
		ReferenceType: "booking",
		ReferenceID:   bookingID,
		CreatedBy:     createdBy,
		Lines: []LineInput{
			{AccountID: revenue.ID, Debit: total, Description: "revenue reversed"},
			{AccountID: receivable.ID, Credit: total, Description: "receivable reversed"},
		},
	})
}

// GenerateInvoiceTx creates the single-line invoice mirroring the
// booking totals at creation time.
func (u *usecase) GenerateInvoiceTx(ctx context.Context, tx *sqlx.Tx, input InvoiceInput) (entity.Invoice, error) {
	invoiceNumber, err := u.numbering.Next(ctx, tx, numbering.PrefixInvoice)
	if err != nil {
		return entity.Invoice{}, errors.InternalServerError("error issue invoice number")
	}

	invoice := entity.Invoice{
		InvoiceNumber: invoiceNumber,
		BookingID:     input.BookingID,
		CustomerID:    input.CustomerID,
		IssueDate:     input.IssueDate,
		DueDate:       input.IssueDate.AddDate(0, 0, invoiceDueDays),
		Description:   fmt.Sprintf("booking %s", input.BookingNumber),
		Subtotal:      input.Subtotal,
		TaxAmount:     input.TaxAmount,
		Total:         input.Total,
		AmountPaid:    decimal.Zero,
		Status:        entity.InvoiceSent,
	}
	if err := u.repo.InsertInvoice(ctx, tx, &invoice); err != nil {
		return entity.Invoice{}, err
	}
	return invoice, nil
}

// ApplyInvoicePaymentTx adds a received amount to the invoice and
// recomputes its status.
func (u *usecase) ApplyInvoicePaymentTx(ctx context.Context, tx *sqlx.Tx, invoiceID int64, amount decimal.Decimal, now time.Time) (entity.Invoice, error) {
	invoice, err := u.repo.FindInvoiceForUpdate(ctx, tx, invoiceID)
	if err != nil {
		return entity.Invoice{}, err
	}

	invoice.AmountPaid = invoice.AmountPaid.Add(amount)
	invoice.RecomputeStatus(now)

	if err := u.repo.UpdateInvoice(ctx, tx, &invoice); err != nil {
		return entity.Invoice{}, err
	}
	return invoice, nil
}

// GetJournalEntry implements Usecase.
func (u *usecase) GetJournalEntry(ctx context.Context, id int64) (response.JournalEntryDetail, error) {
	entry, lines, err := u.repo.FindJournalEntryByID(ctx, id)
	if err != nil {
		return response.JournalEntryDetail{}, err
	}

	detail := response.JournalEntryDetail{
		ID:            entry.ID,
		JournalNumber: entry.JournalNumber,
		EntryDate:     entry.EntryDate.Format("2006-01-02"),
		Description:   entry.Description,
		ReferenceType: entry.ReferenceType,
		ReferenceID:   entry.ReferenceID,
	}
	for _, line := range lines {
		detail.Lines = append(detail.Lines, response.JournalLineDetail{
			AccountID:   line.AccountID,
			Debit:       line.Debit.StringFixed(2),
			Credit:      line.Credit.StringFixed(2),
			Description: line.Description,
		})
	}
	return detail, nil
}

// ListAccounts implements Usecase.
func (u *usecase) ListAccounts(ctx context.Context) ([]response.AccountBalance, error) {
	accounts, err := u.repo.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]response.AccountBalance, 0, len(accounts))
	for _, account := range accounts {
		resp = append(resp, response.AccountBalance{
			ID:             account.ID,
			Code:           account.Code,
			Name:           account.Name,
			Type:           string(account.Type),
			CurrentBalance: account.CurrentBalance.StringFixed(2),
		})
	}
	return resp, nil
}

// GetInvoice implements Usecase.
func (u *usecase) GetInvoice(ctx context.Context, id int64) (response.InvoiceDetail, error) {
	invoice, err := u.repo.FindInvoiceByID(ctx, id)
	if err != nil {
		return response.InvoiceDetail{}, err
	}

	return response.InvoiceDetail{
		ID:            invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		BookingID:     invoice.BookingID,
		IssueDate:     invoice.IssueDate.Format("2006-01-02"),
		DueDate:       invoice.DueDate.Format("2006-01-02"),
		Subtotal:      invoice.Subtotal.StringFixed(2),
		TaxAmount:     invoice.TaxAmount.StringFixed(2),
		Total:         invoice.Total.StringFixed(2),
		AmountPaid:    invoice.AmountPaid.StringFixed(2),
		Status:        string(invoice.Status),
	}, nil
}
