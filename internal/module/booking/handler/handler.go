package handler

import (
	"context"
	"fmt"

	"backoffice-service/internal/module/booking/models/request"
	"backoffice-service/internal/module/booking/usecases"
	"backoffice-service/internal/pkg/errors"
	"backoffice-service/internal/pkg/helpers"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type BookingHandler struct {
	Log       *otelzap.Logger
	Validator *validator.Validate
	Usecase   usecases.Usecase
	Publish   message.Publisher
}

func (h *BookingHandler) CheckAvailability(ctx *fiber.Ctx) error {
	var req request.CheckAvailability
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	resp, err := h.Usecase.CheckAvailability(ctx.UserContext(), &req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error check availability: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success check availability")
}

func (h *BookingHandler) Quote(ctx *fiber.Ctx) error {
	var req request.Quote
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	resp, err := h.Usecase.Quote(ctx.UserContext(), &req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error quote booking: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success quote booking")
}

func (h *BookingHandler) CreateBooking(ctx *fiber.Ctx) error {
	var req request.CreateBooking
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	userID := ctx.Locals("user_id").(int64)
	emailUser := ctx.Locals("email_user").(string)

	resp, err := h.Usecase.CreateBooking(ctx.UserContext(), &req, userID, emailUser)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error create booking: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success create booking")
}

func (h *BookingHandler) ShowBookings(ctx *fiber.Ctx) error {
	userID := ctx.Locals("user_id").(int64)

	resp, err := h.Usecase.ShowBookings(ctx.UserContext(), userID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error show bookings: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success show bookings")
}

func (h *BookingHandler) RecordPayment(ctx *fiber.Ctx) error {
	var req request.RecordPayment
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	emailUser := ctx.Locals("email_user").(string)

	resp, err := h.Usecase.RecordPayment(ctx.UserContext(), &req, emailUser)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error record payment: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success record payment")
}

func (h *BookingHandler) CancelBooking(ctx *fiber.Ctx) error {
	var req request.CancelBooking
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	emailUser := ctx.Locals("email_user").(string)

	if err := h.Usecase.CancelBooking(ctx.UserContext(), &req, emailUser); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error cancel booking: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, nil, "success cancel booking")
}

// ConsumeNotificationQueue delivers notification messages published
// after booking commits. Undeliverable messages go to the poison queue
// so the stream keeps moving.
func (h *BookingHandler) ConsumeNotificationQueue(msg *message.Message) error {
	msg.Ack()
	var req request.BookingNotification
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error unmarshal message: %v", err))
		h.publishPoisoned(msg, err)
		return err
	}

	ctx := context.Background()

	if err := h.Usecase.SendBookingNotification(ctx, &req); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error send booking notification: %v", err))
		h.publishPoisoned(msg, err)
		return err
	}

	return nil
}

func (h *BookingHandler) publishPoisoned(msg *message.Message, cause error) {
	reqPoisoned := request.PoisonedQueue{
		TopicTarget: usecases.TopicBookingConfirmation,
		ErrorMsg:    cause.Error(),
		Payload:     msg.Payload,
	}

	jsonPayload, _ := json.Marshal(reqPoisoned)

	if err := h.Publish.Publish("poisoned_queue", message.NewMessage(watermill.NewUUID(), jsonPayload)); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error publish to poison queue: %v", err))
	}
}

// ExpireBooking is the asynq task handler for the booking timeout sweep.
func (h *BookingHandler) ExpireBooking(ctx context.Context, t *asynq.Task) error {
	var req request.BookingExpiration
	if err := json.Unmarshal(t.Payload(), &req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error unmarshal payload: %v", err))
		return err
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error validate payload: %v", err))
		return err
	}

	if err := h.Usecase.ExpireBooking(ctx, &req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error expire booking: %v", err))
		return err
	}

	return nil
}
