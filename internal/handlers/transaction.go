package handlers

import (
	"github.com/gofiber/fiber/v2"

	"ctlpay/internal/services/transaction"
	"ctlpay/internal/utils"
)

type TransactionHandler struct {
	service transaction.Service
}

func NewTransactionHandler(service transaction.Service) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// Load fetches a transaction by ID and makes it the current one.
func (h *TransactionHandler) Load(c *fiber.Ctx) error {
	var input struct {
		ID string `json:"transactionId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "format de requête invalide")
	}

	snap, err := h.service.Load(c.Context(), input.ID)
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, snap)
}

// Pay settles the currently loaded transaction.
func (h *TransactionHandler) Pay(c *fiber.Ctx) error {
	snap, err := h.service.Pay(c.Context())
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, snap)
}

// Cancel discards the current transaction.
func (h *TransactionHandler) Cancel(c *fiber.Ctx) error {
	return utils.Success(c, h.service.Cancel())
}

// Acknowledge closes a confirmed payment and returns to idle.
func (h *TransactionHandler) Acknowledge(c *fiber.Ctx) error {
	return utils.Success(c, h.service.Acknowledge())
}

// Current reports the present purchase state.
func (h *TransactionHandler) Current(c *fiber.Ctx) error {
	return utils.Success(c, h.service.Current())
}
