package handler_test

import (
	"context"
	"testing"

	"backoffice-service/internal/module/booking/handler"
	"backoffice-service/internal/module/booking/mocks"
	"backoffice-service/internal/module/booking/models/request"
	"backoffice-service/internal/module/booking/models/response"
	log_internal "backoffice-service/internal/pkg/log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

var (
	h             *handler.BookingHandler
	ucm           *mocks.Usecase
	app           *fiber.App
	validatorTest *validator.Validate
)

type mockPublisher struct{}

// Close implements message.Publisher.
func (m *mockPublisher) Close() error {
	return nil
}

// Publish implements message.Publisher.
func (m *mockPublisher) Publish(topic string, messages ...*message.Message) error {
	return nil
}

func setup() {
	ucm = &mocks.Usecase{}
	logMock := log_internal.Setup()
	validatorTest = validator.New()
	h = &handler.BookingHandler{
		Log:       logMock,
		Validator: validatorTest,
		Usecase:   ucm,
		Publish:   &mockPublisher{},
	}
	app = fiber.New()
}

func teardown() {
	ucm = nil
	validatorTest = nil
	h = nil
	app = nil
}

func postCtx(uri string, body interface{}) *fiber.Ctx {
	jsonData, _ := json.Marshal(body)

	ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
	ctx.Request().SetRequestURI(uri)
	ctx.Request().Header.SetContentType("application/json")
	ctx.Request().Header.SetMethod("POST")
	ctx.Request().SetBody(jsonData)
	return ctx
}

func TestCheckAvailability(t *testing.T) {
	setup()
	defer teardown()
	t.Run("success", func(t *testing.T) {
		payload := request.CheckAvailability{
			Kind:    "hall",
			HallID:  1,
			StartAt: "2026-03-01T10:00:00Z",
			EndAt:   "2026-03-01T12:00:00Z",
		}

		ctx := postCtx("/api/v1/availability", payload)

		ucm.On("CheckAvailability", ctx.UserContext(), &payload).
			Return(response.Availability{Available: true}, nil)

		err := h.CheckAvailability(ctx)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, ctx.Response().StatusCode())
	})

	t.Run("invalid kind is rejected before the usecase", func(t *testing.T) {
		setup()
		payload := request.CheckAvailability{Kind: "boat"}

		ctx := postCtx("/api/v1/availability", payload)

		err := h.CheckAvailability(ctx)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, ctx.Response().StatusCode())
		ucm.AssertNotCalled(t, "CheckAvailability", ctx.UserContext(), &payload)
	})
}

func TestQuote(t *testing.T) {
	setup()
	defer teardown()
	t.Run("success", func(t *testing.T) {
		payload := request.Quote{
			Kind:    "hall",
			HallID:  1,
			StartAt: "2026-03-01T10:00:00Z",
			EndAt:   "2026-03-01T12:00:00Z",
		}

		ctx := postCtx("/api/v1/quote", payload)

		ucm.On("Quote", ctx.UserContext(), &payload).
			Return(response.Quote{Subtotal: "10000.00", Total: "11018.75"}, nil)

		err := h.Quote(ctx)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, ctx.Response().StatusCode())
	})
}

func TestCreateBooking(t *testing.T) {
	setup()
	defer teardown()
	t.Run("success", func(t *testing.T) {
		payload := request.CreateBooking{
			Kind:        "hall",
			HallID:      1,
			StartAt:     "2026-03-01T10:00:00Z",
			EndAt:       "2026-03-01T12:00:00Z",
			CustomerID:  9,
			PaymentType: "full",
		}

		ctx := postCtx("/api/v1/bookings", payload)
		ctx.Locals("user_id", int64(3))
		ctx.Locals("email_user", "test@test.com")

		ucm.On("CreateBooking", ctx.UserContext(), &payload, int64(3), "test@test.com").
			Return(response.CreatedBooking{BookingNumber: "BKG-2026-00001", Status: "pending"}, nil)

		err := h.CreateBooking(ctx)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, ctx.Response().StatusCode())
	})
}

func TestShowBookings(t *testing.T) {
	setup()
	defer teardown()
	t.Run("success", func(t *testing.T) {
		ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
		ctx.Request().SetRequestURI("/api/v1/bookings")
		ctx.Request().Header.SetMethod("GET")
		ctx.Locals("user_id", int64(9))

		ucm.On("ShowBookings", ctx.UserContext(), int64(9)).
			Return([]response.BookingSummary{{BookingNumber: "BKG-2026-00001"}}, nil)

		err := h.ShowBookings(ctx)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, ctx.Response().StatusCode())
	})
}

func TestRecordPayment(t *testing.T) {
	setup()
	defer teardown()
	t.Run("success", func(t *testing.T) {
		payload := request.RecordPayment{
			BookingID: "7f9c24e5-2f86-4f9a-93f0-1f6a2f7b8c9d",
			Amount:    1000,
			Method:    "bank_transfer",
		}

		ctx := postCtx("/api/v1/payments", payload)
		ctx.Locals("email_user", "test@test.com")

		ucm.On("RecordPayment", ctx.UserContext(), &payload, "test@test.com").
			Return(response.PaymentResult{PaymentStatus: "paid", BookingStatus: "confirmed"}, nil)

		err := h.RecordPayment(ctx)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, ctx.Response().StatusCode())
	})
}

func TestCancelBooking(t *testing.T) {
	setup()
	defer teardown()
	t.Run("success", func(t *testing.T) {
		payload := request.CancelBooking{
			BookingID: "7f9c24e5-2f86-4f9a-93f0-1f6a2f7b8c9d",
			Reason:    "customer request",
		}

		ctx := postCtx("/api/v1/bookings/cancel", payload)
		ctx.Locals("email_user", "test@test.com")

		ucm.On("CancelBooking", ctx.UserContext(), &payload, "test@test.com").Return(nil)

		err := h.CancelBooking(ctx)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, ctx.Response().StatusCode())
	})
}

func TestConsumeNotificationQueue(t *testing.T) {
	setup()
	defer teardown()

	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		payload := request.BookingNotification{
			BookingID:      "7f9c24e5-2f86-4f9a-93f0-1f6a2f7b8c9d",
			BookingNumber:  "BKG-2026-00001",
			Message:        "booking created",
			EmailRecipient: "test@test.com",
		}

		jsonData, _ := json.Marshal(payload)
		msg := message.NewMessage("123", jsonData)

		ucm.On("SendBookingNotification", ctx, &payload).Return(nil)

		err := h.ConsumeNotificationQueue(msg)

		assert.NoError(t, err)
	})
}

func TestExpireBooking(t *testing.T) {
	setup()
	defer teardown()

	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		payload := request.BookingExpiration{
			BookingID: "7f9c24e5-2f86-4f9a-93f0-1f6a2f7b8c9d",
		}

		ucm.On("ExpireBooking", ctx, &payload).Return(nil)
		task := asynq.NewTask("booking:expire", []byte(`{"booking_id":"7f9c24e5-2f86-4f9a-93f0-1f6a2f7b8c9d"}`))

		err := h.ExpireBooking(ctx, task)

		assert.NoError(t, err)
	})
}
