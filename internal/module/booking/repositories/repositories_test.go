package repositories_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	log_internal "backoffice-service/internal/pkg/log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	sqlxmock "github.com/zhashkevych/go-sqlxmock"

	"backoffice-service/internal/module/booking/models/entity"
	"backoffice-service/internal/module/booking/repositories"
	"backoffice-service/internal/pkg/errors"
)

var (
	mock    sqlxmock.Sqlmock
	dbx     *sqlx.DB
	logMock *otelzap.Logger
)

func setup() {
	dbx, mock, _ = sqlxmock.Newx()
	logMock = log_internal.Setup()
}

func TestFindHallByID(t *testing.T) {
	setup()
	repo := repositories.New(dbx, logMock, nil, nil, nil, nil, nil, nil)

	t.Run("hall found", func(t *testing.T) {
		rows := sqlxmock.NewRows([]string{
			"id", "name", "capacity", "hourly_rate", "daily_rate", "weekly_rate", "monthly_rate",
			"currency", "status", "enable_booking", "created_at", "updated_at", "deleted_at",
		}).AddRow(int64(1), "Grand Hall", 200, "5000", "30000", "150000", "400000",
			"IDR", "available", true, time.Time{}, nil, nil)

		mock.ExpectQuery(regexp.QuoteMeta("FROM halls WHERE id = $1 AND deleted_at IS NULL")).
			WithArgs(int64(1)).
			WillReturnRows(rows)

		hall, err := repo.FindHallByID(context.Background(), nil, 1)

		assert.NoError(t, err)
		assert.Equal(t, "Grand Hall", hall.Name)
		assert.True(t, hall.HourlyRate.Equal(decimal.NewFromInt(5000)))
		assert.Equal(t, entity.HallAvailable, hall.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("hall not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM halls WHERE id = $1 AND deleted_at IS NULL")).
			WithArgs(int64(99)).
			WillReturnRows(sqlxmock.NewRows([]string{"id"}))

		_, err := repo.FindHallByID(context.Background(), nil, 99)

		assert.Equal(t, errors.NotFound("hall not found"), err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAddTicketsSold(t *testing.T) {
	setup()
	repo := repositories.New(dbx, logMock, nil, nil, nil, nil, nil, nil)
	ctx := context.Background()

	t.Run("enough inventory", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("SET quantity_sold = quantity_sold + $1")).
			WithArgs(5, int64(7)).
			WillReturnResult(sqlxmock.NewResult(0, 1))

		tx, err := dbx.BeginTxx(ctx, nil)
		assert.NoError(t, err)

		err = repo.AddTicketsSold(ctx, tx, 7, 5)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inventory guard rejects oversell", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("SET quantity_sold = quantity_sold + $1")).
			WithArgs(10, int64(7)).
			WillReturnResult(sqlxmock.NewResult(0, 0))

		tx, err := dbx.BeginTxx(ctx, nil)
		assert.NoError(t, err)

		err = repo.AddTicketsSold(ctx, tx, 7, 10)
		assert.Equal(t, errors.Conflict("not enough tickets remaining"), err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestReleaseTicketsSold(t *testing.T) {
	setup()
	repo := repositories.New(dbx, logMock, nil, nil, nil, nil, nil, nil)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET quantity_sold = GREATEST(quantity_sold - $1, 0)")).
		WithArgs(3, int64(7)).
		WillReturnResult(sqlxmock.NewResult(0, 1))

	tx, err := dbx.BeginTxx(ctx, nil)
	assert.NoError(t, err)

	err = repo.ReleaseTicketsSold(ctx, tx, 7, 3)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindConflictingBookings(t *testing.T) {
	setup()
	repo := repositories.New(dbx, logMock, nil, nil, nil, nil, nil, nil)

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("no conflicts", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("AND starts_at < $3")).
			WithArgs(int64(1), uuid.Nil, end, start).
			WillReturnRows(sqlxmock.NewRows([]string{"id"}))

		bookings, err := repo.FindConflictingBookings(context.Background(), nil, 1, start, end, uuid.Nil)

		assert.NoError(t, err)
		assert.Empty(t, bookings)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFindLineItemsByBookingID(t *testing.T) {
	setup()
	repo := repositories.New(dbx, logMock, nil, nil, nil, nil, nil, nil)

	bookingID := uuid.New()

	rows := sqlxmock.NewRows([]string{
		"id", "booking_id", "ticket_class_id", "description", "quantity", "unit_price", "line_total",
	}).AddRow(int64(1), bookingID, int64(7), "Early Bird", 2, "250", "500")

	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_line_items WHERE booking_id = $1")).
		WithArgs(bookingID).
		WillReturnRows(rows)

	items, err := repo.FindLineItemsByBookingID(context.Background(), nil, bookingID)

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "Early Bird", items[0].Description)
	assert.True(t, items[0].LineTotal.Equal(decimal.NewFromInt(500)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertPayment(t *testing.T) {
	setup()
	repo := repositories.New(dbx, logMock, nil, nil, nil, nil, nil, nil)
	ctx := context.Background()

	payment := entity.Payment{
		BookingID: uuid.New(),
		Amount:    decimal.NewFromInt(1000),
		Currency:  "IDR",
		Method:    "bank_transfer",
		PaidAt:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments")).
		WithArgs(payment.BookingID, payment.Amount, payment.Currency, payment.Method, payment.PaidAt).
		WillReturnRows(sqlxmock.NewRows([]string{"id"}).AddRow(int64(42)))

	tx, err := dbx.BeginTxx(ctx, nil)
	assert.NoError(t, err)

	err = repo.InsertPayment(ctx, tx, &payment)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), payment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
