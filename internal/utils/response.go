// Package utils holds shared HTTP helpers for the handler layer.
package utils

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"

	"ctlpay/internal/errors"
)

// Success writes the standard success envelope.
func Success(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// Error writes the standard error envelope with an explicit status.
func Error(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"code":    code,
		"error":   message,
	})
}

// BadRequest writes a 400 with a validation code.
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, errors.ErrValidationFailed.Code, message)
}

// FromError maps a domain error to its HTTP status and envelope. Unknown
// errors become an opaque 500 so internals never leak to the display.
func FromError(c *fiber.Ctx, err error) error {
	var domain *errors.DomainError
	if !stderrors.As(err, &domain) {
		return Error(c, fiber.StatusInternalServerError, "INTERNAL", "erreur interne")
	}

	status := fiber.StatusInternalServerError
	switch domain.Code {
	case errors.ErrValidationFailed.Code,
		errors.ErrInvalidAmount.Code,
		errors.ErrOperatorRequired.Code:
		status = fiber.StatusBadRequest
	case errors.ErrInsufficientBalance.Code:
		status = fiber.StatusPaymentRequired
	case errors.ErrPaymentInFlight.Code,
		errors.ErrTransactionNotPayable.Code,
		errors.ErrNoTransaction.Code:
		status = fiber.StatusConflict
	case errors.ErrServerRejected.Code:
		status = fiber.StatusBadGateway
	case errors.ErrServerUnreachable.Code,
		errors.ErrDeviceUnavailable.Code:
		status = fiber.StatusServiceUnavailable
	}
	return Error(c, status, domain.Code, domain.Message)
}
