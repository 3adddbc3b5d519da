package handlers

import (
	"github.com/gofiber/fiber/v2"

	"ctlpay/internal/services/wallet"
	"ctlpay/internal/utils"
)

type WalletHandler struct {
	service wallet.Service
}

func NewWalletHandler(service wallet.Service) *WalletHandler {
	return &WalletHandler{service: service}
}

// GetBalance returns the cached balance without a network round-trip.
func (h *WalletHandler) GetBalance(c *fiber.Ctx) error {
	return utils.Success(c, fiber.Map{"solde": h.service.Balance()})
}

// RefreshBalance re-reads the balance from the server.
func (h *WalletHandler) RefreshBalance(c *fiber.Ctx) error {
	balance, err := h.service.RefreshBalance(c.Context())
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.Map{"solde": balance})
}

// TopUp credits the wallet through a mobile-money operator.
func (h *WalletHandler) TopUp(c *fiber.Ctx) error {
	var input struct {
		Amount   int64  `json:"montant"`
		Operator string `json:"operateur"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "format de requête invalide")
	}

	result, err := h.service.TopUp(c.Context(), input.Amount, input.Operator)
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, result)
}

// Quote previews the operator fee for an amount without moving money.
func (h *WalletHandler) Quote(c *fiber.Ctx) error {
	amount := int64(c.QueryInt("montant"))
	operator := c.Query("operateur")

	quote, err := h.service.Quote(amount, operator)
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, quote)
}

// Operators lists the supported mobile-money operators.
func (h *WalletHandler) Operators(c *fiber.Ctx) error {
	return utils.Success(c, h.service.Operators())
}
