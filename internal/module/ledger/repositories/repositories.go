package repositories

import (
	"context"
	"database/sql"

	"backoffice-service/internal/module/ledger/models/entity"
	"backoffice-service/internal/pkg/errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type repositories struct {
	db  *sqlx.DB
	log *otelzap.Logger
}

type Repositories interface {
	WithTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	// accounts
	FindAccountByCode(ctx context.Context, ext sqlx.ExtContext, code string) (entity.Account, error)
	LockAccounts(ctx context.Context, tx *sqlx.Tx, ids []int64) (map[int64]entity.Account, error)
	UpdateAccountBalance(ctx context.Context, tx *sqlx.Tx, accountID int64, balance decimal.Decimal) error
	ListAccounts(ctx context.Context) ([]entity.Account, error)
	// journal
	InsertJournalEntry(ctx context.Context, tx *sqlx.Tx, entry *entity.JournalEntry) error
	InsertJournalLines(ctx context.Context, tx *sqlx.Tx, lines []entity.JournalLine) error
	FindJournalEntryByID(ctx context.Context, id int64) (entity.JournalEntry, []entity.JournalLine, error)
	// invoices
	InsertInvoice(ctx context.Context, tx *sqlx.Tx, invoice *entity.Invoice) error
	FindInvoiceForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (entity.Invoice, error)
	UpdateInvoice(ctx context.Context, ext sqlx.ExtContext, invoice *entity.Invoice) error
	FindInvoiceByID(ctx context.Context, id int64) (entity.Invoice, error)
}

func New(db *sqlx.DB, log *otelzap.Logger) Repositories {
	return &repositories{db: db, log: log}
}

// WithTransaction implements Repositories.
func (r *repositories) WithTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.InternalServerError("error starting transaction")
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.InternalServerError("error committing transaction")
	}
	return nil
}

// FindAccountByCode implements Repositories.
func (r *repositories) FindAccountByCode(ctx context.Context, ext sqlx.ExtContext, code string) (entity.Account, error) {
	query := `SELECT id, code, name, type, current_balance, is_active, created_at, updated_at
		FROM accounts WHERE code = $1`
	var account entity.Account
	err := sqlx.GetContext(ctx, ext, &account, query, code)
	if err == sql.ErrNoRows {
		return entity.Account{}, errors.NotFound("account not found")
	}
	if err != nil {
		return entity.Account{}, errors.InternalServerError("error find account by code")
	}
	return account, nil
}

// LockAccounts locks the referenced accounts in ascending id order so
// concurrent postings touching the same accounts cannot deadlock.
func (r *repositories) LockAccounts(ctx context.Context, tx *sqlx.Tx, ids []int64) (map[int64]entity.Account, error) {
	accounts := make(map[int64]entity.Account, len(ids))
	query := `SELECT id, code, name, type, current_balance, is_active, created_at, updated_at
		FROM accounts WHERE id = $1 FOR UPDATE`

	for _, id := range ids {
		var account entity.Account
		err := tx.GetContext(ctx, &account, query, id)
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("account not found")
		}
		if err != nil {
			return nil, errors.InternalServerError("error locking account")
		}
		accounts[account.ID] = account
	}
	return accounts, nil
}

// UpdateAccountBalance implements Repositories.
func (r *repositories) UpdateAccountBalance(ctx context.Context, tx *sqlx.Tx, accountID int64, balance decimal.Decimal) error {
	query := `UPDATE accounts SET current_balance = $1, updated_at = NOW() WHERE id = $2`
	if _, err := tx.ExecContext(ctx, query, balance, accountID); err != nil {
		return errors.InternalServerError("error update account balance")
	}
	return nil
}

// ListAccounts implements Repositories.
func (r *repositories) ListAccounts(ctx context.Context) ([]entity.Account, error) {
	query := `SELECT id, code, name, type, current_balance, is_active, created_at, updated_at
		FROM accounts ORDER BY code`
	var accounts []entity.Account
	if err := r.db.SelectContext(ctx, &accounts, query); err != nil {
		return nil, errors.InternalServerError("error list accounts")
	}
	return accounts, nil
}

// InsertJournalEntry implements Repositories.
func (r *repositories) InsertJournalEntry(ctx context.Context, tx *sqlx.Tx, entry *entity.JournalEntry) error {
	query := `INSERT INTO journal_entries (journal_number, entry_date, description, reference_type, reference_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id`
	err := tx.GetContext(ctx, &entry.ID, query,
		entry.JournalNumber, entry.EntryDate, entry.Description,
		entry.ReferenceType, entry.ReferenceID, entry.CreatedBy)
	if err != nil {
		return errors.InternalServerError("error insert journal entry")
	}
	return nil
}

// InsertJournalLines implements Repositories.
func (r *repositories) InsertJournalLines(ctx context.Context, tx *sqlx.Tx, lines []entity.JournalLine) error {
	query := `INSERT INTO journal_lines (journal_entry_id, account_id, debit, credit, description, position)
		VALUES (:journal_entry_id, :account_id, :debit, :credit, :description, :position)`
	for i := range lines {
		if _, err := tx.NamedExecContext(ctx, query, lines[i]); err != nil {
			return errors.InternalServerError("error insert journal line")
		}
	}
	return nil
}

// FindJournalEntryByID implements Repositories.
func (r *repositories) FindJournalEntryByID(ctx context.Context, id int64) (entity.JournalEntry, []entity.JournalLine, error) {
	entryQuery := `SELECT id, journal_number, entry_date, description, reference_type, reference_id, created_by, created_at
		FROM journal_entries WHERE id = $1`
	var entry entity.JournalEntry
	err := r.db.GetContext(ctx, &entry, entryQuery, id)
	if err == sql.ErrNoRows {
		return entity.JournalEntry{}, nil, errors.NotFound("journal entry not found")
	}
	if err != nil {
		return entity.JournalEntry{}, nil, errors.InternalServerError("error find journal entry")
	}

	linesQuery := `SELECT id, journal_entry_id, account_id, debit, credit, description, position
		FROM journal_lines WHERE journal_entry_id = $1 ORDER BY position`
	var lines []entity.JournalLine
	if err := r.db.SelectContext(ctx, &lines, linesQuery, id); err != nil {
		return entity.JournalEntry{}, nil, errors.InternalServerError("error find journal lines")
	}
	return entry, lines, nil
}

// InsertInvoice implements Repositories.
func (r *repositories) InsertInvoice(ctx context.Context, tx *sqlx.Tx, invoice *entity.Invoice) error {
	query := `INSERT INTO invoices (invoice_number, booking_id, customer_id, issue_date, due_date, description, subtotal, tax_amount, total, amount_paid, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id`
	err := tx.GetContext(ctx, &invoice.ID, query,
		invoice.InvoiceNumber, invoice.BookingID, invoice.CustomerID,
		invoice.IssueDate, invoice.DueDate, invoice.Description,
		invoice.Subtotal, invoice.TaxAmount, invoice.Total,
		invoice.AmountPaid, invoice.Status)
	if err != nil {
		return errors.InternalServerError("error insert invoice")
	}
	return nil
}

// FindInvoiceForUpdate implements Repositories.
func (r *repositories) FindInvoiceForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (entity.Invoice, error) {
	query := `SELECT id, invoice_number, booking_id, customer_id, issue_date, due_date, description, subtotal, tax_amount, total, amount_paid, status, created_at, updated_at
		FROM invoices WHERE id = $1 FOR UPDATE`
	var invoice entity.Invoice
	err := tx.GetContext(ctx, &invoice, query, id)
	if err == sql.ErrNoRows {
		return entity.Invoice{}, errors.NotFound("invoice not found")
	}
	if err != nil {
		return entity.Invoice{}, errors.InternalServerError("error locking invoice")
	}
	return invoice, nil
}

// UpdateInvoice implements Repositories.
func (r *repositories) UpdateInvoice(ctx context.Context, ext sqlx.ExtContext, invoice *entity.Invoice) error {
	query := `UPDATE invoices SET amount_paid = $1, status = $2, updated_at = NOW() WHERE id = $3`
	if _, err := ext.ExecContext(ctx, query, invoice.AmountPaid, invoice.Status, invoice.ID); err != nil {
		return errors.InternalServerError("error update invoice")
	}
	return nil
}

// FindInvoiceByID implements Repositories.
func (r *repositories) FindInvoiceByID(ctx context.Context, id int64) (entity.Invoice, error) {
	query := `SELECT id, invoice_number, booking_id, customer_id, issue_date, due_date, description, subtotal, tax_amount, total, amount_paid, status, created_at, updated_at
		FROM invoices WHERE id = $1`
	var invoice entity.Invoice
	err := r.db.GetContext(ctx, &invoice, query, id)
	if err == sql.ErrNoRows {
		return entity.Invoice{}, errors.NotFound("invoice not found")
	}
	if err != nil {
		return entity.Invoice{}, errors.InternalServerError("error find invoice by id")
	}
	return invoice, nil
}
