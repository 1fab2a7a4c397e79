package handler

import (
	"fmt"
	"strconv"

	"backoffice-service/internal/module/ledger/usecases"
	"backoffice-service/internal/pkg/errors"
	"backoffice-service/internal/pkg/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type LedgerHandler struct {
	Log       *otelzap.Logger
	Validator *validator.Validate
	Usecase   usecases.Usecase
}

func (h *LedgerHandler) ShowAccounts(ctx *fiber.Ctx) error {
	resp, err := h.Usecase.ListAccounts(ctx.UserContext())
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error show accounts: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success show accounts")
}

func (h *LedgerHandler) ShowJournalEntry(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse journal entry id: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse journal entry id"))
	}

	resp, err := h.Usecase.GetJournalEntry(ctx.UserContext(), id)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error show journal entry: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success show journal entry")
}

func (h *LedgerHandler) ShowInvoice(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse invoice id: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse invoice id"))
	}

	resp, err := h.Usecase.GetInvoice(ctx.UserContext(), id)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error show invoice: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success show invoice")
}
