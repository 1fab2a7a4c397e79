package usecases

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"backoffice-service/internal/module/booking/availability"
	"backoffice-service/internal/module/booking/models/entity"
	"backoffice-service/internal/module/booking/models/request"
	"backoffice-service/internal/module/booking/models/response"
	"backoffice-service/internal/module/booking/numbering"
	"backoffice-service/internal/module/booking/pricing"
	"backoffice-service/internal/module/booking/repositories"
	ledgerusecases "backoffice-service/internal/module/ledger/usecases"
	"backoffice-service/internal/pkg/errors"
	internalredis "backoffice-service/internal/pkg/redis"
	"backoffice-service/internal/pkg/settings"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

const (
	TopicBookingConfirmation = "booking_confirmation"
	TopicPaymentReceipt      = "payment_receipt"
	TopicBookingCancellation = "booking_cancellation"
)

type usecase struct {
	repo      repositories.Repositories
	ledger    ledgerusecases.Usecase
	settings  settings.Reader
	numbering numbering.Issuer
	locker    internalredis.Locker
	publisher message.Publisher
	log       *otelzap.Logger
	now       func() time.Time
}

type Usecase interface {
	// http
	CheckAvailability(ctx context.Context, payload *request.CheckAvailability) (response.Availability, error)
	Quote(ctx context.Context, payload *request.Quote) (response.Quote, error)
	CreateBooking(ctx context.Context, payload *request.CreateBooking, createdBy int64, emailUser string) (response.CreatedBooking, error)
	ShowBookings(ctx context.Context, customerID int64) ([]response.BookingSummary, error)
	RecordPayment(ctx context.Context, payload *request.RecordPayment, emailUser string) (response.PaymentResult, error)
	CancelBooking(ctx context.Context, payload *request.CancelBooking, emailUser string) error
	// scheduler
	ExpireBooking(ctx context.Context, payload *request.BookingExpiration) error
	// message stream
	SendBookingNotification(ctx context.Context, payload *request.BookingNotification) error
}

func New(
	repo repositories.Repositories,
	ledger ledgerusecases.Usecase,
	settingsReader settings.Reader,
	issuer numbering.Issuer,
	locker internalredis.Locker,
	publisher message.Publisher,
	log *otelzap.Logger,
) Usecase {
	return &usecase{
		repo:      repo,
		ledger:    ledger,
		settings:  settingsReader,
		numbering: issuer,
		locker:    locker,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

func parseWindow(startAt, endAt string) (availability.Window, error) {
	start, err := time.Parse(time.RFC3339, startAt)
	if err != nil {
		return availability.Window{}, errors.BadRequest("error parse start_at, expected RFC3339")
	}
	end, err := time.Parse(time.RFC3339, endAt)
	if err != nil {
		return availability.Window{}, errors.BadRequest("error parse end_at, expected RFC3339")
	}
	window := availability.Window{Start: start, End: end}
	if !window.Valid() {
		return availability.Window{}, errors.BadRequest("booking window end must be after start")
	}
	return window, nil
}

func conflictResponses(conflicts []entity.Booking) []response.ConflictingBooking {
	resp := make([]response.ConflictingBooking, 0, len(conflicts))
	for _, c := range conflicts {
		resp = append(resp, response.ConflictingBooking{
			BookingNumber: c.BookingNumber,
			StartAt:       c.StartsAt.Time.Format(time.RFC3339),
			EndAt:         c.EndsAt.Time.Format(time.RFC3339),
			Status:        string(c.Status),
		})
	}
	return resp
}

// CheckAvailability is the read-only pre-flight check. CreateBooking
// re-runs the same checks under row locks inside its transaction, so a
// positive answer here is advisory only.
func (u *usecase) CheckAvailability(ctx context.Context, payload *request.CheckAvailability) (response.Availability, error) {
	switch entity.ResourceKind(payload.Kind) {
	case entity.KindHall:
		window, err := parseWindow(payload.StartAt, payload.EndAt)
		if err != nil {
			return response.Availability{}, err
		}

		hall, err := u.repo.FindHallByID(ctx, nil, payload.HallID)
		if err != nil {
			return response.Availability{}, err
		}

		reasons := availability.HallBookable(hall)
		conflicts, err := u.repo.FindConflictingBookings(ctx, nil, hall.ID, window.Start, window.End, uuid.Nil)
		if err != nil {
			return response.Availability{}, err
		}
		if len(conflicts) > 0 {
			reasons = append(reasons, "requested window overlaps an existing booking")
		}

		return response.Availability{
			Available: len(reasons) == 0,
			Reasons:   reasons,
			Conflicts: conflictResponses(conflicts),
		}, nil

	case entity.KindEvent:
		now := u.now()
		var reasons []string
		for _, line := range payload.Tickets {
			// the redis mirror answers sold-out classes without a
			// database round trip; it only short-circuits the negative
			// case, a hit with enough stock still reads the
			// authoritative row
			if remaining, err := u.repo.GetStockMirror(ctx, line.TicketClassID); err == nil && remaining < int64(line.Quantity) {
				reasons = append(reasons, fmt.Sprintf("ticket class %d has %d remaining, %d requested", line.TicketClassID, remaining, line.Quantity))
				continue
			}

			class, err := u.repo.FindTicketClassByID(ctx, nil, line.TicketClassID)
			if err != nil {
				return response.Availability{}, err
			}
			reasons = append(reasons, availability.TicketsSellable(class, line.Quantity, now)...)

			if err := u.repo.SyncStockMirror(ctx, class.ID, class.Remaining()); err != nil {
				u.log.Ctx(ctx).Warn(fmt.Sprintf("error sync stock mirror: %v", err))
			}
		}
		return response.Availability{
			Available: len(reasons) == 0,
			Reasons:   reasons,
		}, nil

	default:
		return response.Availability{}, errors.BadRequest("unknown resource kind")
	}
}

// Quote implements Usecase.
func (u *usecase) Quote(ctx context.Context, payload *request.Quote) (response.Quote, error) {
	snap, err := u.settings.Snapshot(ctx)
	if err != nil {
		return response.Quote{}, errors.InternalServerError("error load settings")
	}

	pricer, currency, err := u.buildPricer(ctx, nil, payload.Kind, payload.HallID, payload.StartAt, payload.EndAt, payload.Extras, payload.Tickets)
	if err != nil {
		return response.Quote{}, err
	}

	quote, err := pricing.BuildQuote(pricer, snap.ServiceFeePercentage, snap.TaxRate)
	if err != nil {
		return response.Quote{}, err
	}

	return response.Quote{
		Subtotal:   quote.Subtotal.StringFixed(2),
		ServiceFee: quote.ServiceFee.StringFixed(2),
		TaxAmount:  quote.TaxAmount.StringFixed(2),
		Total:      quote.Total.StringFixed(2),
		Currency:   currency,
	}, nil
}

// buildPricer assembles the pricing variant for the requested resource.
// With a non-nil tx the rate lookups run against rows the caller has
// already locked.
func (u *usecase) buildPricer(ctx context.Context, tx *sqlx.Tx, kind string, hallID int64, startAt, endAt string, extras []request.ExtraLine, tickets []request.TicketLine) (pricing.Pricer, string, error) {
	switch entity.ResourceKind(kind) {
	case entity.KindHall:
		window, err := parseWindow(startAt, endAt)
		if err != nil {
			return nil, "", err
		}
		var hall entity.Hall
		if tx != nil {
			hall, err = u.repo.LockHall(ctx, tx, hallID)
		} else {
			hall, err = u.repo.FindHallByID(ctx, nil, hallID)
		}
		if err != nil {
			return nil, "", err
		}

		extraLines := make([]pricing.Line, 0, len(extras))
		for _, extra := range extras {
			extraLines = append(extraLines, pricing.Line{
				Quantity:  extra.Quantity,
				UnitPrice: decimal.NewFromFloat(extra.UnitPrice),
			})
		}

		return pricing.HallPricer{
			Rates: pricing.HallRates{
				Hourly:  hall.HourlyRate,
				Daily:   hall.DailyRate,
				Weekly:  hall.WeeklyRate,
				Monthly: hall.MonthlyRate,
			},
			Start:  window.Start,
			End:    window.End,
			Extras: extraLines,
		}, hall.Currency, nil

	case entity.KindEvent:
		lines := make([]pricing.Line, 0, len(tickets))
		currency := ""
		for _, ticket := range tickets {
			var class entity.TicketClass
			var err error
			if tx != nil {
				class, err = u.repo.LockTicketClass(ctx, tx, ticket.TicketClassID)
			} else {
				class, err = u.repo.FindTicketClassByID(ctx, nil, ticket.TicketClassID)
			}
			if err != nil {
				return nil, "", err
			}
			currency = class.Currency
			lines = append(lines, pricing.Line{Quantity: ticket.Quantity, UnitPrice: class.UnitPrice})
		}
		return pricing.TicketPricer{Lines: lines}, currency, nil

	default:
		return nil, "", errors.BadRequest("unknown resource kind")
	}
}

// CreateBooking runs the whole booking as one atomic unit of work:
// availability re-check under row locks, pricing, booking and line
// items, inventory counters, invoice and journal posting. Only expiry
// scheduling and the confirmation message happen after commit, and
// neither can fail the booking.
func (u *usecase) CreateBooking(ctx context.Context, payload *request.CreateBooking, createdBy int64, emailUser string) (response.CreatedBooking, error) {
	snap, err := u.settings.Snapshot(ctx)
	if err != nil {
		return response.CreatedBooking{}, errors.InternalServerError("error load settings")
	}

	lockName := fmt.Sprintf("booking:hall:%d", payload.HallID)
	if entity.ResourceKind(payload.Kind) == entity.KindEvent && len(payload.Tickets) > 0 {
		lockName = fmt.Sprintf("booking:ticket_class:%d", payload.Tickets[0].TicketClassID)
	}
	release, err := u.locker.Acquire(ctx, lockName)
	if err != nil {
		return response.CreatedBooking{}, errors.InternalServerError("error acquire booking lock")
	}
	defer func() {
		if err := release(); err != nil {
			u.log.Ctx(ctx).Warn(fmt.Sprintf("error release booking lock: %v", err))
		}
	}()

	now := u.now()
	booking := entity.Booking{
		ID:            uuid.New(),
		Kind:          entity.ResourceKind(payload.Kind),
		CustomerID:    payload.CustomerID,
		Status:        entity.BookingPending,
		PaymentStatus: entity.PaymentPending,
		PaymentType:   payload.PaymentType,
		AmountPaid:    decimal.Zero,
		CreatedBy:     createdBy,
		CreatedAt:     now,
	}
	var invoiceNumber string
	var lineItems []entity.BookingLineItem
	currency := ""

	err = u.repo.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		switch booking.Kind {
		case entity.KindHall:
			window, err := parseWindow(payload.StartAt, payload.EndAt)
			if err != nil {
				return err
			}

			hall, err := u.repo.LockHall(ctx, tx, payload.HallID)
			if err != nil {
				return err
			}
			currency = hall.Currency

			reasons := availability.HallBookable(hall)
			conflicts, err := u.repo.FindConflictingBookings(ctx, tx, hall.ID, window.Start, window.End, uuid.Nil)
			if err != nil {
				return err
			}
			if len(conflicts) > 0 {
				reasons = append(reasons, "requested window overlaps an existing booking")
			}
			if len(reasons) > 0 {
				return errors.Conflict("hall is not available", reasons...)
			}

			booking.HallID = sql.NullInt64{Int64: hall.ID, Valid: true}
			booking.StartsAt = sql.NullTime{Time: window.Start, Valid: true}
			booking.EndsAt = sql.NullTime{Time: window.End, Valid: true}

			for _, extra := range payload.Extras {
				unitPrice := decimal.NewFromFloat(extra.UnitPrice)
				lineItems = append(lineItems, entity.BookingLineItem{
					BookingID:   booking.ID,
					Description: extra.Description,
					Quantity:    extra.Quantity,
					UnitPrice:   unitPrice,
					LineTotal:   unitPrice.Mul(decimal.NewFromInt(int64(extra.Quantity))).Round(2),
				})
			}

		case entity.KindEvent:
			var reasons []string
			for _, ticket := range payload.Tickets {
				class, err := u.repo.LockTicketClass(ctx, tx, ticket.TicketClassID)
				if err != nil {
					return err
				}
				currency = class.Currency

				gate := availability.TicketsSellable(class, ticket.Quantity, now)
				if len(gate) > 0 {
					reasons = append(reasons, gate...)
					continue
				}

				if err := u.repo.AddTicketsSold(ctx, tx, class.ID, ticket.Quantity); err != nil {
					return err
				}

				booking.EventID = sql.NullInt64{Int64: class.EventID, Valid: true}
				lineItems = append(lineItems, entity.BookingLineItem{
					BookingID:     booking.ID,
					TicketClassID: sql.NullInt64{Int64: class.ID, Valid: true},
					Description:   class.Name,
					Quantity:      ticket.Quantity,
					UnitPrice:     class.UnitPrice,
					LineTotal:     class.UnitPrice.Mul(decimal.NewFromInt(int64(ticket.Quantity))).Round(2),
				})
			}
			if len(reasons) > 0 {
				return errors.Conflict("tickets are not available", reasons...)
			}

		default:
			return errors.BadRequest("unknown resource kind")
		}

		booking.Currency = currency

		pricer, _, err := u.buildPricer(ctx, tx, payload.Kind, payload.HallID, payload.StartAt, payload.EndAt, payload.Extras, payload.Tickets)
		if err != nil {
			return err
		}
		quote, err := pricing.BuildQuote(pricer, snap.ServiceFeePercentage, snap.TaxRate)
		if err != nil {
			return err
		}
		booking.Subtotal = quote.Subtotal
		booking.ServiceFee = quote.ServiceFee
		booking.TaxAmount = quote.TaxAmount
		booking.Total = quote.Total
		booking.BalanceDue = quote.Total

		number, err := u.numbering.Next(ctx, tx, numbering.PrefixBooking)
		if err != nil {
			return errors.InternalServerError("error issue booking number")
		}
		booking.BookingNumber = number

		if err := u.repo.InsertBooking(ctx, tx, &booking); err != nil {
			return err
		}
		if err := u.repo.InsertLineItems(ctx, tx, lineItems); err != nil {
			return err
		}

		invoiceInput := ledgerusecases.InvoiceInput{
			BookingID:     booking.ID.String(),
			BookingNumber: booking.BookingNumber,
			CustomerID:    booking.CustomerID,
			IssueDate:     now,
			Subtotal:      booking.Subtotal,
			TaxAmount:     booking.TaxAmount,
			Total:         booking.Total,
		}

		if snap.AutoGenerateInvoice {
			invoice, err := u.ledger.GenerateInvoiceTx(ctx, tx, invoiceInput)
			if err != nil {
				return err
			}
			booking.InvoiceID = sql.NullInt64{Int64: invoice.ID, Valid: true}
			invoiceNumber = invoice.InvoiceNumber
			if err := u.repo.UpdateBooking(ctx, tx, &booking); err != nil {
				return err
			}
		}

		if snap.AutoCreateJournalEntry {
			if _, err := u.ledger.PostBookingRevenueTx(ctx, tx, invoiceInput, createdBy); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return response.CreatedBooking{}, err
	}

	u.scheduleExpiry(ctx, &booking, snap.BookingTimeoutMinutes)
	u.refreshStockMirrors(ctx, lineItems)

	u.publishNotification(ctx, TopicBookingConfirmation, &request.BookingNotification{
		BookingID:      booking.ID.String(),
		BookingNumber:  booking.BookingNumber,
		Message:        fmt.Sprintf("booking %s created, total %s %s", booking.BookingNumber, booking.Total.StringFixed(2), currency),
		EmailRecipient: emailUser,
	})

	return response.CreatedBooking{
		BookingID:     booking.ID.String(),
		BookingNumber: booking.BookingNumber,
		Status:        string(booking.Status),
		Total:         booking.Total.StringFixed(2),
		BalanceDue:    booking.BalanceDue.StringFixed(2),
		InvoiceNumber: invoiceNumber,
	}, nil
}

// scheduleExpiry registers the expiry sweep for a pending booking.
// Best effort: a booking without an expiry task is still valid.
func (u *usecase) scheduleExpiry(ctx context.Context, booking *entity.Booking, timeoutMinutes int) {
	payload, err := json.Marshal(request.BookingExpiration{BookingID: booking.ID.String()})
	if err != nil {
		u.log.Ctx(ctx).Warn(fmt.Sprintf("error marshal expiry payload: %v", err))
		return
	}

	runAt := u.now().Add(time.Duration(timeoutMinutes) * time.Minute)
	taskID, err := u.repo.SetTaskScheduler(ctx, runAt, payload)
	if err != nil {
		u.log.Ctx(ctx).Warn(fmt.Sprintf("error schedule booking expiry: %v", err))
		return
	}

	booking.ExpireTaskID = sql.NullString{String: taskID, Valid: true}
	if err := u.repo.UpdateBooking(ctx, nil, booking); err != nil {
		u.log.Ctx(ctx).Warn(fmt.Sprintf("error store expiry task id: %v", err))
	}
}

func (u *usecase) refreshStockMirrors(ctx context.Context, items []entity.BookingLineItem) {
	for _, item := range items {
		if !item.TicketClassID.Valid {
			continue
		}
		class, err := u.repo.FindTicketClassByID(ctx, nil, item.TicketClassID.Int64)
		if err != nil {
			continue
		}
		if err := u.repo.SyncStockMirror(ctx, class.ID, class.Remaining()); err != nil {
			u.log.Ctx(ctx).Warn(fmt.Sprintf("error sync stock mirror: %v", err))
		}
	}
}

func (u *usecase) publishNotification(ctx context.Context, topic string, payload *request.BookingNotification) {
	body, err := json.Marshal(payload)
	if err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error marshal notification: %v", err))
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	if err := u.publisher.Publish(topic, msg); err != nil {
		// notification failure never fails the booking
		u.log.Ctx(ctx).Error(fmt.Sprintf("error publish notification: %v", err))
	}
}

// ShowBookings implements Usecase.
func (u *usecase) ShowBookings(ctx context.Context, customerID int64) ([]response.BookingSummary, error) {
	bookings, err := u.repo.FindBookingsByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]response.BookingSummary, 0, len(bookings))
	for _, booking := range bookings {
		summary := response.BookingSummary{
			BookingID:     booking.ID.String(),
			BookingNumber: booking.BookingNumber,
			Kind:          string(booking.Kind),
			Total:         booking.Total.StringFixed(2),
			AmountPaid:    booking.AmountPaid.StringFixed(2),
			BalanceDue:    booking.BalanceDue.StringFixed(2),
			Status:        string(booking.Status),
			PaymentStatus: string(booking.PaymentStatus),
		}
		if booking.StartsAt.Valid {
			summary.StartAt = booking.StartsAt.Time.Format(time.RFC3339)
		}
		if booking.EndsAt.Valid {
			summary.EndAt = booking.EndsAt.Time.Format(time.RFC3339)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// RecordPayment applies a received amount to the booking, posts the
// cash receipt, rolls the invoice status forward, and promotes the
// booking to confirmed once the payment policy is satisfied.
func (u *usecase) RecordPayment(ctx context.Context, payload *request.RecordPayment, emailUser string) (response.PaymentResult, error) {
	snap, err := u.settings.Snapshot(ctx)
	if err != nil {
		return response.PaymentResult{}, errors.InternalServerError("error load settings")
	}

	bookingID, err := uuid.Parse(payload.BookingID)
	if err != nil {
		return response.PaymentResult{}, errors.BadRequest("error parse booking id")
	}
	amount := decimal.NewFromFloat(payload.Amount).Round(2)
	if !amount.IsPositive() {
		return response.PaymentResult{}, errors.BadRequest("payment amount must be positive")
	}

	paidAt := u.now()
	if payload.PaidAt != "" {
		parsed, err := time.Parse(time.RFC3339, payload.PaidAt)
		if err != nil {
			return response.PaymentResult{}, errors.BadRequest("error parse paid_at, expected RFC3339")
		}
		paidAt = parsed
	}

	var booking entity.Booking
	var payment entity.Payment
	err = u.repo.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		booking, err = u.repo.LockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if booking.Status == entity.BookingCancelled {
			return errors.Conflict("booking is cancelled")
		}

		if err := booking.ApplyPayment(amount); err != nil {
			return err
		}

		payment = entity.Payment{
			BookingID: booking.ID,
			Amount:    amount,
			Currency:  booking.Currency,
			Method:    payload.Method,
			PaidAt:    paidAt,
		}
		if err := u.repo.InsertPayment(ctx, tx, &payment); err != nil {
			return err
		}

		if booking.Status == entity.BookingPending && u.confirmable(&booking, snap) {
			booking.Status = entity.BookingConfirmed
		}
		if err := u.repo.UpdateBooking(ctx, tx, &booking); err != nil {
			return err
		}

		if booking.InvoiceID.Valid {
			if _, err := u.ledger.ApplyInvoicePaymentTx(ctx, tx, booking.InvoiceID.Int64, amount, paidAt); err != nil {
				return err
			}
		}
		if snap.AutoCreateJournalEntry {
			if _, err := u.ledger.PostPaymentReceiptTx(ctx, tx, booking.ID.String(), booking.BookingNumber, amount, paidAt, booking.CustomerID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return response.PaymentResult{}, err
	}

	if booking.Status == entity.BookingConfirmed && booking.ExpireTaskID.Valid {
		if err := u.repo.DeleteTaskScheduler(ctx, booking.ExpireTaskID.String); err != nil {
			u.log.Ctx(ctx).Warn(fmt.Sprintf("error delete expiry task: %v", err))
		}
	}

	u.publishNotification(ctx, TopicPaymentReceipt, &request.BookingNotification{
		BookingID:      booking.ID.String(),
		BookingNumber:  booking.BookingNumber,
		Message:        fmt.Sprintf("payment of %s received for booking %s", amount.StringFixed(2), booking.BookingNumber),
		EmailRecipient: emailUser,
	})

	return response.PaymentResult{
		PaymentID:     payment.ID,
		BookingID:     booking.ID.String(),
		AmountPaid:    booking.AmountPaid.StringFixed(2),
		BalanceDue:    booking.BalanceDue.StringFixed(2),
		PaymentStatus: string(booking.PaymentStatus),
		BookingStatus: string(booking.Status),
	}, nil
}

// confirmable is the confirmation policy: full payment confirms once
// everything is paid, partial payment confirms once the deposit
// threshold is reached.
func (u *usecase) confirmable(booking *entity.Booking, snap settings.Snapshot) bool {
	if booking.PaymentStatus == entity.PaymentPaid {
		return true
	}
	if booking.PaymentType != entity.PaymentTypePartial {
		return false
	}
	deposit := booking.Total.Mul(snap.MinDepositPercentage).Div(decimal.NewFromInt(100))
	return booking.AmountPaid.GreaterThanOrEqual(deposit)
}

// CancelBooking implements Usecase.
func (u *usecase) CancelBooking(ctx context.Context, payload *request.CancelBooking, emailUser string) error {
	bookingID, err := uuid.Parse(payload.BookingID)
	if err != nil {
		return errors.BadRequest("error parse booking id")
	}
	return u.cancel(ctx, bookingID, payload.Reason, emailUser, false)
}

// cancel is the transactional cancellation shared by the user path and
// the expiry sweep: release inventory, reverse the revenue posting,
// then drop the expiry task. With expireOnly set, a booking that is no
// longer pending-and-unpaid by the time its row lock is taken is left
// untouched instead of cancelled.
func (u *usecase) cancel(ctx context.Context, bookingID uuid.UUID, reason, emailUser string, expireOnly bool) error {
	snap, err := u.settings.Snapshot(ctx)
	if err != nil {
		return errors.InternalServerError("error load settings")
	}

	var booking entity.Booking
	var items []entity.BookingLineItem
	var skipped bool
	err = u.repo.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		booking, err = u.repo.LockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if expireOnly && (booking.Status != entity.BookingPending || booking.AmountPaid.IsPositive()) {
			// a payment landed between the sweep's read and this lock
			skipped = true
			return nil
		}
		if !booking.CanTransitionTo(entity.BookingCancelled) {
			return errors.Conflict(fmt.Sprintf("booking in status %s cannot be cancelled", booking.Status))
		}

		booking.Status = entity.BookingCancelled
		if booking.AmountPaid.IsPositive() {
			// refund settlement happens outside this service
			booking.PaymentStatus = entity.PaymentRefunded
		}

		if booking.Kind == entity.KindEvent {
			items, err = u.repo.FindLineItemsByBookingID(ctx, tx, booking.ID)
			if err != nil {
				return err
			}
			for _, item := range items {
				if !item.TicketClassID.Valid {
					continue
				}
				if err := u.repo.ReleaseTicketsSold(ctx, tx, item.TicketClassID.Int64, item.Quantity); err != nil {
					return err
				}
			}
		}

		if snap.AutoCreateJournalEntry {
			if _, err := u.ledger.PostBookingReversalTx(ctx, tx, booking.ID.String(), booking.BookingNumber, booking.Total, u.now(), booking.CustomerID); err != nil {
				return err
			}
		}

		return u.repo.UpdateBooking(ctx, tx, &booking)
	})
	if err != nil {
		return err
	}
	if skipped {
		return nil
	}

	if booking.ExpireTaskID.Valid {
		if err := u.repo.DeleteTaskScheduler(ctx, booking.ExpireTaskID.String); err != nil {
			u.log.Ctx(ctx).Warn(fmt.Sprintf("error delete expiry task: %v", err))
		}
	}
	u.refreshStockMirrors(ctx, items)

	u.publishNotification(ctx, TopicBookingCancellation, &request.BookingNotification{
		BookingID:      booking.ID.String(),
		BookingNumber:  booking.BookingNumber,
		Message:        fmt.Sprintf("booking %s cancelled: %s", booking.BookingNumber, reason),
		EmailRecipient: emailUser,
	})
	return nil
}

// ExpireBooking is the scheduler sweep handler: cancel a booking that
// is still pending and unpaid once its timeout has passed.
func (u *usecase) ExpireBooking(ctx context.Context, payload *request.BookingExpiration) error {
	bookingID, err := uuid.Parse(payload.BookingID)
	if err != nil {
		return errors.BadRequest("error parse booking id")
	}

	booking, err := u.repo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.Status != entity.BookingPending || booking.AmountPaid.IsPositive() {
		// paid or already moved on, nothing to expire
		return nil
	}

	// the cheap read above is advisory; cancel re-checks the same
	// condition under the row lock
	return u.cancel(ctx, bookingID, "booking timeout elapsed", "", true)
}

// SendBookingNotification forwards a consumed notification message to
// the external notification collaborator.
func (u *usecase) SendBookingNotification(ctx context.Context, payload *request.BookingNotification) error {
	if payload.EmailRecipient == "" {
		return nil
	}
	return u.repo.SendBookingConfirmation(ctx, payload)
}
