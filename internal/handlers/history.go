package handlers

import (
	"github.com/gofiber/fiber/v2"

	"ctlpay/internal/services/history"
	"ctlpay/internal/utils"
)

type HistoryHandler struct {
	ledger *history.Ledger
}

func NewHistoryHandler(ledger *history.Ledger) *HistoryHandler {
	return &HistoryHandler{ledger: ledger}
}

// List returns the retained payments, newest first, with their total.
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	entries, err := h.ledger.List(c.Context())
	if err != nil {
		return utils.FromError(c, err)
	}

	var total int64
	for _, entry := range entries {
		total += entry.Transaction.Amount
	}

	return utils.Success(c, fiber.Map{
		"paiements": entries,
		"total":     total,
		"limite":    h.ledger.Limit(),
	})
}

// Clear empties the journal.
func (h *HistoryHandler) Clear(c *fiber.Ctx) error {
	if err := h.ledger.Clear(c.Context()); err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.Map{"paiements": []struct{}{}})
}
