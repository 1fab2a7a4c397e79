package usecases_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	ledgermocks "backoffice-service/internal/module/ledger/mocks"
	"backoffice-service/internal/module/ledger/models/entity"
	"backoffice-service/internal/module/ledger/usecases"
	"backoffice-service/internal/pkg/errors"
	log_internal "backoffice-service/internal/pkg/log"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var (
	uc       usecases.Usecase
	repoMock *ledgermocks.Repositories
)

type issuerStub struct{}

func (issuerStub) Next(ctx context.Context, ext sqlx.ExtContext, prefix string) (string, error) {
	return fmt.Sprintf("%s-2026-00001", prefix), nil
}

func setup() {
	repoMock = new(ledgermocks.Repositories)
	logger := log_internal.Setup()
	uc = usecases.New(repoMock, issuerStub{}, logger)
}

func teardown() {
	repoMock = nil
	uc = nil
}

func cashAccount() entity.Account {
	return entity.Account{ID: 1, Code: entity.CodeCash, Name: "Cash", Type: entity.Asset, CurrentBalance: decimal.Zero, IsActive: true}
}

func receivableAccount() entity.Account {
	return entity.Account{ID: 2, Code: entity.CodeAccountsReceivable, Name: "Accounts Receivable", Type: entity.Asset, CurrentBalance: decimal.Zero, IsActive: true}
}

func revenueAccount() entity.Account {
	return entity.Account{ID: 3, Code: entity.CodeBookingRevenue, Name: "Booking Revenue", Type: entity.Income, CurrentBalance: decimal.Zero, IsActive: true}
}

func amountEq(expected decimal.Decimal) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(expected) })
}

func TestPostTx(t *testing.T) {
	setup()
	defer teardown()
	ctx := context.Background()
	entryDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("balanced entry rolls account balances by type", func(t *testing.T) {
		accounts := map[int64]entity.Account{2: receivableAccount(), 3: revenueAccount()}

		repoMock.On("LockAccounts", ctx, (*sqlx.Tx)(nil), []int64{2, 3}).Return(accounts, nil)
		repoMock.On("InsertJournalEntry", ctx, (*sqlx.Tx)(nil), mock.AnythingOfType("*entity.JournalEntry")).
			Run(func(args mock.Arguments) {
				entry := args.Get(2).(*entity.JournalEntry)
				entry.ID = 11
			}).Return(nil)
		repoMock.On("InsertJournalLines", ctx, (*sqlx.Tx)(nil), mock.Anything).Return(nil)
		// receivable is an asset: debit 100 moves it +100
		repoMock.On("UpdateAccountBalance", ctx, (*sqlx.Tx)(nil), int64(2), amountEq(decimal.NewFromInt(100))).Return(nil)
		// revenue is income: credit 100 moves it +100
		repoMock.On("UpdateAccountBalance", ctx, (*sqlx.Tx)(nil), int64(3), amountEq(decimal.NewFromInt(100))).Return(nil)

		id, err := uc.PostTx(ctx, nil, usecases.PostInput{
			Date:          entryDate,
			Description:   "booking BKG-2026-00001 revenue",
			ReferenceType: "booking",
			ReferenceID:   "abc",
			CreatedBy:     3,
			Lines: []usecases.LineInput{
				{AccountID: 2, Debit: decimal.NewFromInt(100)},
				{AccountID: 3, Credit: decimal.NewFromInt(100)},
			},
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(11), id)
		repoMock.AssertExpectations(t)
	})

	t.Run("unbalanced entry never reaches the database", func(t *testing.T) {
		setup()
		_, err := uc.PostTx(ctx, nil, usecases.PostInput{
			Date: entryDate,
			Lines: []usecases.LineInput{
				{AccountID: 2, Debit: decimal.NewFromInt(100)},
				{AccountID: 3, Credit: decimal.NewFromInt(99)},
			},
		})

		assert.Error(t, err)
		resp := errors.FromError(err)
		assert.Equal(t, 422, resp.Code)
		repoMock.AssertNotCalled(t, "InsertJournalEntry", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lines that only balance before rounding are rejected", func(t *testing.T) {
		setup()
		// 0.004 + 0.004 vs 0.008 balances exactly, but per-line
		// rounding persists debit 0.00 + 0.00 against credit 0.01
		_, err := uc.PostTx(ctx, nil, usecases.PostInput{
			Date: entryDate,
			Lines: []usecases.LineInput{
				{AccountID: 2, Debit: decimal.RequireFromString("0.004")},
				{AccountID: 2, Debit: decimal.RequireFromString("0.004")},
				{AccountID: 3, Credit: decimal.RequireFromString("0.008")},
			},
		})

		assert.Error(t, err)
		resp := errors.FromError(err)
		assert.Equal(t, 422, resp.Code)
		repoMock.AssertNotCalled(t, "InsertJournalEntry", mock.Anything, mock.Anything, mock.Anything)
		repoMock.AssertNotCalled(t, "InsertJournalLines", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("sub-cent drift inside rounding tolerance balances", func(t *testing.T) {
		setup()
		accounts := map[int64]entity.Account{2: receivableAccount(), 3: revenueAccount()}

		repoMock.On("LockAccounts", ctx, (*sqlx.Tx)(nil), []int64{2, 3}).Return(accounts, nil)
		repoMock.On("InsertJournalEntry", ctx, (*sqlx.Tx)(nil), mock.AnythingOfType("*entity.JournalEntry")).
			Run(func(args mock.Arguments) {
				args.Get(2).(*entity.JournalEntry).ID = 12
			}).Return(nil)
		repoMock.On("InsertJournalLines", ctx, (*sqlx.Tx)(nil), mock.Anything).Return(nil)
		repoMock.On("UpdateAccountBalance", ctx, (*sqlx.Tx)(nil), mock.Anything, mock.Anything).Return(nil)

		_, err := uc.PostTx(ctx, nil, usecases.PostInput{
			Date: entryDate,
			Lines: []usecases.LineInput{
				{AccountID: 2, Debit: decimal.RequireFromString("33.335")},
				{AccountID: 3, Credit: decimal.RequireFromString("33.34")},
			},
		})

		assert.NoError(t, err)
	})

	t.Run("single line is rejected", func(t *testing.T) {
		setup()
		_, err := uc.PostTx(ctx, nil, usecases.PostInput{
			Date:  entryDate,
			Lines: []usecases.LineInput{{AccountID: 2, Debit: decimal.NewFromInt(100)}},
		})

		assert.Equal(t, errors.UnprocessableEntity("journal entry needs at least two lines"), err)
	})

	t.Run("line with both sides is rejected", func(t *testing.T) {
		setup()
		_, err := uc.PostTx(ctx, nil, usecases.PostInput{
			Date: entryDate,
			Lines: []usecases.LineInput{
				{AccountID: 2, Debit: decimal.NewFromInt(50), Credit: decimal.NewFromInt(50)},
				{AccountID: 3, Credit: decimal.Zero},
			},
		})

		assert.Equal(t, errors.UnprocessableEntity("journal line cannot carry both a debit and a credit"), err)
	})

	t.Run("inactive account is rejected", func(t *testing.T) {
		setup()
		dormant := revenueAccount()
		dormant.IsActive = false
		accounts := map[int64]entity.Account{2: receivableAccount(), 3: dormant}

		repoMock.On("LockAccounts", ctx, (*sqlx.Tx)(nil), []int64{2, 3}).Return(accounts, nil)

		_, err := uc.PostTx(ctx, nil, usecases.PostInput{
			Date: entryDate,
			Lines: []usecases.LineInput{
				{AccountID: 2, Debit: decimal.NewFromInt(100)},
				{AccountID: 3, Credit: decimal.NewFromInt(100)},
			},
		})

		assert.Error(t, err)
		repoMock.AssertNotCalled(t, "InsertJournalEntry", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPostPaymentReceiptTx(t *testing.T) {
	setup()
	defer teardown()
	ctx := context.Background()
	paidAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	repoMock.On("FindAccountByCode", ctx, mock.Anything, entity.CodeCash).Return(cashAccount(), nil)
	repoMock.On("FindAccountByCode", ctx, mock.Anything, entity.CodeAccountsReceivable).Return(receivableAccount(), nil)
	repoMock.On("LockAccounts", ctx, (*sqlx.Tx)(nil), []int64{1, 2}).
		Return(map[int64]entity.Account{1: cashAccount(), 2: receivableAccount()}, nil)
	repoMock.On("InsertJournalEntry", ctx, (*sqlx.Tx)(nil), mock.AnythingOfType("*entity.JournalEntry")).
		Run(func(args mock.Arguments) {
			args.Get(2).(*entity.JournalEntry).ID = 21
		}).Return(nil)
	repoMock.On("InsertJournalLines", ctx, (*sqlx.Tx)(nil), mock.Anything).Return(nil)
	// cash up by the receipt, receivable down by the same amount
	repoMock.On("UpdateAccountBalance", ctx, (*sqlx.Tx)(nil), int64(1), amountEq(decimal.NewFromInt(300))).Return(nil)
	repoMock.On("UpdateAccountBalance", ctx, (*sqlx.Tx)(nil), int64(2), amountEq(decimal.NewFromInt(-300))).Return(nil)

	id, err := uc.PostPaymentReceiptTx(ctx, nil, "abc", "BKG-2026-00001", decimal.NewFromInt(300), paidAt, 3)

	assert.NoError(t, err)
	assert.Equal(t, int64(21), id)
	repoMock.AssertExpectations(t)
}

func TestGenerateInvoiceTx(t *testing.T) {
	setup()
	defer teardown()
	ctx := context.Background()
	issueDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	repoMock.On("InsertInvoice", ctx, (*sqlx.Tx)(nil), mock.AnythingOfType("*entity.Invoice")).
		Run(func(args mock.Arguments) {
			args.Get(2).(*entity.Invoice).ID = 5
		}).Return(nil)

	invoice, err := uc.GenerateInvoiceTx(ctx, nil, usecases.InvoiceInput{
		BookingID:     "abc",
		BookingNumber: "BKG-2026-00001",
		CustomerID:    9,
		IssueDate:     issueDate,
		Subtotal:      decimal.NewFromInt(10000),
		TaxAmount:     decimal.RequireFromString("768.75"),
		Total:         decimal.RequireFromString("11018.75"),
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(5), invoice.ID)
	assert.Equal(t, "INV-2026-00001", invoice.InvoiceNumber)
	assert.Equal(t, entity.InvoiceSent, invoice.Status)
	assert.Equal(t, issueDate.AddDate(0, 0, 14), invoice.DueDate)
}

func TestApplyInvoicePaymentTx(t *testing.T) {
	setup()
	defer teardown()
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	base := entity.Invoice{
		ID:         5,
		Total:      decimal.NewFromInt(1000),
		AmountPaid: decimal.Zero,
		DueDate:    now.AddDate(0, 0, 13),
		Status:     entity.InvoiceSent,
	}

	t.Run("partial payment", func(t *testing.T) {
		repoMock.On("FindInvoiceForUpdate", ctx, (*sqlx.Tx)(nil), int64(5)).Return(base, nil)
		repoMock.On("UpdateInvoice", ctx, (*sqlx.Tx)(nil), mock.AnythingOfType("*entity.Invoice")).Return(nil)

		invoice, err := uc.ApplyInvoicePaymentTx(ctx, nil, 5, decimal.NewFromInt(300), now)

		assert.NoError(t, err)
		assert.Equal(t, entity.InvoicePartial, invoice.Status)
		assert.True(t, invoice.AmountPaid.Equal(decimal.NewFromInt(300)))
	})

	t.Run("full payment", func(t *testing.T) {
		setup()
		repoMock.On("FindInvoiceForUpdate", ctx, (*sqlx.Tx)(nil), int64(5)).Return(base, nil)
		repoMock.On("UpdateInvoice", ctx, (*sqlx.Tx)(nil), mock.AnythingOfType("*entity.Invoice")).Return(nil)

		invoice, err := uc.ApplyInvoicePaymentTx(ctx, nil, 5, decimal.NewFromInt(1000), now)

		assert.NoError(t, err)
		assert.Equal(t, entity.InvoicePaid, invoice.Status)
	})
}
