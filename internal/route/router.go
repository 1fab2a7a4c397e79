package router

import (
	bookinghandler "backoffice-service/internal/module/booking/handler"
	ledgerhandler "backoffice-service/internal/module/ledger/handler"
	"backoffice-service/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
)

func Initialize(app *fiber.App, handlerBooking *bookinghandler.BookingHandler, handlerLedger *ledgerhandler.LedgerHandler, m *middleware.Middleware) *fiber.App {

	// health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("OK")
	})

	Api := app.Group("/api")

	v1 := Api.Group("/v1")
	v1.Post("/availability", m.ValidateToken, handlerBooking.CheckAvailability)
	v1.Post("/quote", m.ValidateToken, handlerBooking.Quote)
	v1.Get("/bookings", m.ValidateToken, handlerBooking.ShowBookings)
	v1.Post("/bookings", m.ValidateToken, handlerBooking.CreateBooking)
	v1.Post("/bookings/cancel", m.ValidateToken, handlerBooking.CancelBooking)
	v1.Post("/payments", m.ValidateToken, handlerBooking.RecordPayment)

	v1.Get("/ledger/accounts", m.ValidateToken, handlerLedger.ShowAccounts)
	v1.Get("/ledger/journal-entries/:id", m.ValidateToken, handlerLedger.ShowJournalEntry)
	v1.Get("/invoices/:id", m.ValidateToken, handlerLedger.ShowInvoice)

	return app

}
