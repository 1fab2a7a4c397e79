package helpers

import (
	"backoffice-service/internal/pkg/errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Issues  []string    `json:"issues,omitempty"`
}

func RespSuccess(ctx *fiber.Ctx, log *otelzap.Logger, data interface{}, message string) error {
	return ctx.Status(fiber.StatusOK).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func RespError(ctx *fiber.Ctx, log *otelzap.Logger, err error) error {
	resp := errors.FromError(err)
	return ctx.Status(resp.Code).JSON(Response{
		Success: false,
		Message: resp.Message,
		Issues:  resp.Issues,
	})
}

// DurationCalculation returns how long from now until t, floored at zero
// so schedulers never receive a negative delay.
func DurationCalculation(t time.Time) time.Duration {
	d := time.Until(t)
	if d < 0 {
		return 0
	}
	return d
}
