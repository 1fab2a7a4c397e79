package repositories

import (
	"backoffice-service/config"
	"backoffice-service/internal/module/booking/models/entity"
	"backoffice-service/internal/module/booking/models/request"
	"backoffice-service/internal/module/booking/models/response"
	"backoffice-service/internal/pkg/errors"
	"backoffice-service/internal/pkg/helpers"
	"backoffice-service/internal/pkg/scheduler"
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	circuit "github.com/rubyist/circuitbreaker"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

const bookingColumns = `id, booking_number, kind, hall_id, event_id, customer_id, starts_at, ends_at,
	currency, subtotal, service_fee, tax_amount, total, amount_paid, balance_due,
	status, payment_status, payment_type, invoice_id, expire_task_id,
	created_by, created_at, updated_at, deleted_at`

type repositories struct {
	db              *sqlx.DB
	log             *otelzap.Logger
	httpClient      *circuit.HTTPClient
	cfgUserService  *config.UserServiceConfig
	cfgNotification *config.NotificationServiceConfig
	redisClient     *redis.Client
	asynqClient     *asynq.Client
	asynqInspector  *asynq.Inspector
}

type Repositories interface {
	// http
	ValidateToken(ctx context.Context, token string) (response.UserServiceValidate, error)
	SendBookingConfirmation(ctx context.Context, payload *request.BookingNotification) error
	// redis
	GetStockMirror(ctx context.Context, ticketClassID int64) (int64, error)
	SyncStockMirror(ctx context.Context, ticketClassID int64, remaining int) error
	// tx
	WithTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	// halls & ticket classes
	FindHallByID(ctx context.Context, ext sqlx.ExtContext, id int64) (entity.Hall, error)
	LockHall(ctx context.Context, tx *sqlx.Tx, id int64) (entity.Hall, error)
	FindTicketClassByID(ctx context.Context, ext sqlx.ExtContext, id int64) (entity.TicketClass, error)
	LockTicketClass(ctx context.Context, tx *sqlx.Tx, id int64) (entity.TicketClass, error)
	AddTicketsSold(ctx context.Context, tx *sqlx.Tx, classID int64, quantity int) error
	ReleaseTicketsSold(ctx context.Context, tx *sqlx.Tx, classID int64, quantity int) error
	// bookings
	FindConflictingBookings(ctx context.Context, ext sqlx.ExtContext, hallID int64, start, end time.Time, excludeID uuid.UUID) ([]entity.Booking, error)
	InsertBooking(ctx context.Context, tx *sqlx.Tx, booking *entity.Booking) error
	InsertLineItems(ctx context.Context, tx *sqlx.Tx, items []entity.BookingLineItem) error
	UpdateBooking(ctx context.Context, ext sqlx.ExtContext, booking *entity.Booking) error
	LockBooking(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (entity.Booking, error)
	FindBookingByID(ctx context.Context, id uuid.UUID) (entity.Booking, error)
	FindBookingsByCustomerID(ctx context.Context, customerID int64) ([]entity.Booking, error)
	FindLineItemsByBookingID(ctx context.Context, ext sqlx.ExtContext, bookingID uuid.UUID) ([]entity.BookingLineItem, error)
	InsertPayment(ctx context.Context, tx *sqlx.Tx, payment *entity.Payment) error
	// scheduler
	SetTaskScheduler(ctx context.Context, runAt time.Time, payload []byte) (string, error)
	DeleteTaskScheduler(ctx context.Context, taskID string) error
}

func New(
	db *sqlx.DB,
	log *otelzap.Logger,
	httpClient *circuit.HTTPClient,
	cfgUserService *config.UserServiceConfig,
	cfgNotification *config.NotificationServiceConfig,
	redisClient *redis.Client,
	asynqClient *asynq.Client,
	asynqInspector *asynq.Inspector,
) Repositories {
	return &repositories{
		db:              db,
		log:             log,
		httpClient:      httpClient,
		cfgUserService:  cfgUserService,
		cfgNotification: cfgNotification,
		redisClient:     redisClient,
		asynqClient:     asynqClient,
		asynqInspector:  asynqInspector,
	}
}

// ext resolves the executor a read/write should run on: the caller's
// transaction when one is passed, the pool otherwise.
func (r *repositories) ext(ext sqlx.ExtContext) sqlx.ExtContext {
	if ext == nil {
		return r.db
	}
	return ext
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

// FindHallByID implements Repositories.
func (r *repositories) FindHallByID(ctx context.Context, ext sqlx.ExtContext, id int64) (entity.Hall, error) {
	query := `SELECT id, name, capacity, hourly_rate, daily_rate, weekly_rate, monthly_rate, currency, status, enable_booking, created_at, updated_at, deleted_at
		FROM halls WHERE id = $1 AND deleted_at IS NULL`
	var hall entity.Hall
	err := sqlx.GetContext(ctx, r.ext(ext), &hall, query, id)
	if err == sql.ErrNoRows {
		return entity.Hall{}, errors.NotFound("hall not found")
	}
	if err != nil {
		return entity.Hall{}, errors.InternalServerError("error find hall by id")
	}
	return hall, nil
}

// LockHall takes the hall row lock that serializes concurrent booking
// attempts against the same hall for the rest of the transaction.
func (r *repositories) LockHall(ctx context.Context, tx *sqlx.Tx, id int64) (entity.Hall, error) {
	query := `SELECT id, name, capacity, hourly_rate, daily_rate, weekly_rate, monthly_rate, currency, status, enable_booking, created_at, updated_at, deleted_at
		FROM halls WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`
	var hall entity.Hall
	err := tx.GetContext(ctx, &hall, query, id)
	if err == sql.ErrNoRows {
		return entity.Hall{}, errors.NotFound("hall not found")
	}
	if err != nil {
		return entity.Hall{}, errors.InternalServerError("error locking hall")
	}
	return hall, nil
}

// FindTicketClassByID implements Repositories.
func (r *repositories) FindTicketClassByID(ctx context.Context, ext sqlx.ExtContext, id int64) (entity.TicketClass, error) {
	query := ticketClassQuery("")
	var class entity.TicketClass
	err := sqlx.GetContext(ctx, r.ext(ext), &class, query, id)
	if err == sql.ErrNoRows {
		return entity.TicketClass{}, errors.NotFound("ticket class not found")
	}
	if err != nil {
		return entity.TicketClass{}, errors.InternalServerError("error find ticket class by id")
	}
	return class, nil
}

// LockTicketClass implements Repositories.
func (r *repositories) LockTicketClass(ctx context.Context, tx *sqlx.Tx, id int64) (entity.TicketClass, error) {
	query := ticketClassQuery("FOR UPDATE OF tc")
	var class entity.TicketClass
	err := tx.GetContext(ctx, &class, query, id)
	if err == sql.ErrNoRows {
		return entity.TicketClass{}, errors.NotFound("ticket class not found")
	}
	if err != nil {
		return entity.TicketClass{}, errors.InternalServerError("error locking ticket class")
	}
	return class, nil
}

func ticketClassQuery(suffix string) string {
	return fmt.Sprintf(`SELECT tc.id, tc.event_id, e.name AS event_name, e.starts_at AS event_starts, e.is_published AS event_published,
		tc.name, tc.unit_price, tc.currency, tc.quantity_available, tc.quantity_sold,
		tc.sale_starts, tc.sale_ends, tc.is_active, tc.created_at, tc.updated_at
		FROM ticket_classes tc
		JOIN events e ON e.id = tc.event_id
		WHERE tc.id = $1 %s`, suffix)
}

// AddTicketsSold bumps quantity_sold with the inventory guard in the
// WHERE clause; zero affected rows means another transaction took the
// remaining inventory first.
func (r *repositories) AddTicketsSold(ctx context.Context, tx *sqlx.Tx, classID int64, quantity int) error {
	query := `UPDATE ticket_classes
		SET quantity_sold = quantity_sold + $1, updated_at = NOW()
		WHERE id = $2 AND quantity_sold + $1 <= quantity_available`
	result, err := tx.ExecContext(ctx, query, quantity, classID)
	if err != nil {
		return errors.InternalServerError("error increment tickets sold")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.InternalServerError("error increment tickets sold")
	}
	if affected == 0 {
		return errors.Conflict("not enough tickets remaining")
	}
	return nil
}

// ReleaseTicketsSold implements Repositories.
func (r *repositories) ReleaseTicketsSold(ctx context.Context, tx *sqlx.Tx, classID int64, quantity int) error {
	query := `UPDATE ticket_classes
		SET quantity_sold = GREATEST(quantity_sold - $1, 0), updated_at = NOW()
		WHERE id = $2`
	if _, err := tx.ExecContext(ctx, query, quantity, classID); err != nil {
		return errors.InternalServerError("error release tickets sold")
	}
	return nil
}

// FindConflictingBookings returns non-cancelled bookings on the hall
// whose [starts_at, ends_at) window intersects the requested one.
func (r *repositories) FindConflictingBookings(ctx context.Context, ext sqlx.ExtContext, hallID int64, start, end time.Time, excludeID uuid.UUID) ([]entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE hall_id = $1
		  AND status <> 'cancelled'
		  AND deleted_at IS NULL
		  AND id <> $2
		  AND starts_at < $3
		  AND ends_at > $4
		ORDER BY starts_at`
	var bookings []entity.Booking
	if err := sqlx.SelectContext(ctx, r.ext(ext), &bookings, query, hallID, excludeID, end, start); err != nil {
		return nil, errors.InternalServerError("error find conflicting bookings")
	}
	return bookings, nil
}

// InsertBooking implements Repositories.
func (r *repositories) InsertBooking(ctx context.Context, tx *sqlx.Tx, booking *entity.Booking) error {
	query := `INSERT INTO bookings (id, booking_number, kind, hall_id, event_id, customer_id, starts_at, ends_at,
			currency, subtotal, service_fee, tax_amount, total, amount_paid, balance_due,
			status, payment_status, payment_type, invoice_id, expire_task_id, created_by, created_at)
		VALUES (:id, :booking_number, :kind, :hall_id, :event_id, :customer_id, :starts_at, :ends_at,
			:currency, :subtotal, :service_fee, :tax_amount, :total, :amount_paid, :balance_due,
			:status, :payment_status, :payment_type, :invoice_id, :expire_task_id, :created_by, :created_at)`
	if _, err := tx.NamedExecContext(ctx, query, booking); err != nil {
		return errors.InternalServerError("error insert booking")
	}
	return nil
}

// InsertLineItems implements Repositories.
func (r *repositories) InsertLineItems(ctx context.Context, tx *sqlx.Tx, items []entity.BookingLineItem) error {
	query := `INSERT INTO booking_line_items (booking_id, ticket_class_id, description, quantity, unit_price, line_total)
		VALUES (:booking_id, :ticket_class_id, :description, :quantity, :unit_price, :line_total)`
	for i := range items {
		if _, err := tx.NamedExecContext(ctx, query, items[i]); err != nil {
			return errors.InternalServerError("error insert booking line item")
		}
	}
	return nil
}

// UpdateBooking implements Repositories.
func (r *repositories) UpdateBooking(ctx context.Context, ext sqlx.ExtContext, booking *entity.Booking) error {
	query := `UPDATE bookings
		SET amount_paid = :amount_paid, balance_due = :balance_due,
			status = :status, payment_status = :payment_status,
			invoice_id = :invoice_id, expire_task_id = :expire_task_id,
			updated_at = NOW()
		WHERE id = :id`
	if _, err := sqlx.NamedExecContext(ctx, r.ext(ext), query, booking); err != nil {
		return errors.InternalServerError("error update booking")
	}
	return nil
}

// LockBooking implements Repositories.
func (r *repositories) LockBooking(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`
	var booking entity.Booking
	err := tx.GetContext(ctx, &booking, query, id)
	if err == sql.ErrNoRows {
		return entity.Booking{}, errors.NotFound("booking not found")
	}
	if err != nil {
		return entity.Booking{}, errors.InternalServerError("error locking booking")
	}
	return booking, nil
}

// FindBookingByID implements Repositories.
func (r *repositories) FindBookingByID(ctx context.Context, id uuid.UUID) (entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 AND deleted_at IS NULL`
	var booking entity.Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if err == sql.ErrNoRows {
		return entity.Booking{}, errors.NotFound("booking not found")
	}
	if err != nil {
		return entity.Booking{}, errors.InternalServerError("error find booking by id")
	}
	return booking, nil
}

// FindBookingsByCustomerID implements Repositories.
func (r *repositories) FindBookingsByCustomerID(ctx context.Context, customerID int64) ([]entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE customer_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC`
	var bookings []entity.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, customerID); err != nil {
		return nil, errors.InternalServerError("error find bookings by customer id")
	}
	return bookings, nil
}

// FindLineItemsByBookingID implements Repositories.
func (r *repositories) FindLineItemsByBookingID(ctx context.Context, ext sqlx.ExtContext, bookingID uuid.UUID) ([]entity.BookingLineItem, error) {
	query := `SELECT id, booking_id, ticket_class_id, description, quantity, unit_price, line_total
		FROM booking_line_items WHERE booking_id = $1 ORDER BY id`
	var items []entity.BookingLineItem
	if err := sqlx.SelectContext(ctx, r.ext(ext), &items, query, bookingID); err != nil {
		return nil, errors.InternalServerError("error find booking line items")
	}
	return items, nil
}

// InsertPayment implements Repositories.
func (r *repositories) InsertPayment(ctx context.Context, tx *sqlx.Tx, payment *entity.Payment) error {
	query := `INSERT INTO payments (booking_id, amount, currency, method, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id`
	err := tx.GetContext(ctx, &payment.ID, query,
		payment.BookingID, payment.Amount, payment.Currency, payment.Method, payment.PaidAt)
	if err != nil {
		return errors.InternalServerError("error insert payment")
	}
	return nil
}

// GetStockMirror implements Repositories.
func (r *repositories) GetStockMirror(ctx context.Context, ticketClassID int64) (int64, error) {
	key := fmt.Sprintf("ticket_stock:%d", ticketClassID)
	data, err := r.redisClient.Get(ctx, key).Result()
	if err != nil {
		return 0, errors.InternalServerError("error get stock mirror")
	}
	remaining, err := strconv.ParseInt(data, 10, 64)
	if err != nil {
		return 0, errors.InternalServerError("error parse stock mirror")
	}
	return remaining, nil
}

// SyncStockMirror implements Repositories.
func (r *repositories) SyncStockMirror(ctx context.Context, ticketClassID int64, remaining int) error {
	key := fmt.Sprintf("ticket_stock:%d", ticketClassID)
	if err := r.redisClient.Set(ctx, key, remaining, 0).Err(); err != nil {
		return errors.InternalServerError("error sync stock mirror")
	}
	return nil
}

// SetTaskScheduler enqueues the booking-expiry task to run at runAt and
// returns the task id so the booking can be unscheduled later. A runAt
// already in the past runs immediately.
func (r *repositories) SetTaskScheduler(ctx context.Context, runAt time.Time, payload []byte) (string, error) {
	task := asynq.NewTask(scheduler.TypeExpireBooking, payload)
	info, err := r.asynqClient.EnqueueContext(ctx, task, asynq.ProcessIn(helpers.DurationCalculation(runAt)))
	if err != nil {
		return "", errors.InternalServerError("error schedule expiry task")
	}
	return info.ID, nil
}

// DeleteTaskScheduler implements Repositories.
func (r *repositories) DeleteTaskScheduler(ctx context.Context, taskID string) error {
	if err := r.asynqInspector.DeleteTask("default", taskID); err != nil {
		return errors.InternalServerError("error delete expiry task")
	}
	return nil
}

// ValidateToken implements Repositories.
func (r *repositories) ValidateToken(ctx context.Context, token string) (response.UserServiceValidate, error) {
	url := fmt.Sprintf("http://%s:%s/api/private/token/validate?token=%s", r.cfgUserService.Host, r.cfgUserService.Port, token)
	resp, err := r.httpClient.Get(url)
	if err != nil {
		return response.UserServiceValidate{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		r.log.Ctx(ctx).Error(fmt.Sprintf("invalid token: status %d", resp.StatusCode))
		return response.UserServiceValidate{}, errors.UnauthorizedError("invalid token")
	}

	var respData response.UserServiceValidate
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&respData); err != nil {
		return response.UserServiceValidate{}, err
	}

	if !respData.IsValid {
		return response.UserServiceValidate{}, errors.UnauthorizedError("invalid token")
	}
	return respData, nil
}

// SendBookingConfirmation implements Repositories.
func (r *repositories) SendBookingConfirmation(ctx context.Context, payload *request.BookingNotification) error {
	url := fmt.Sprintf("http://%s:%s/api/private/notifications/booking", r.cfgNotification.Host, r.cfgNotification.Port)

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.InternalServerError("error marshal notification payload")
	}

	resp, err := r.httpClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return errors.InternalServerError(fmt.Sprintf("notification service returned status %d", resp.StatusCode))
	}
	return nil
}
