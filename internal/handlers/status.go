// Package handlers binds the services to the local HTTP API consumed by
// the vending-machine display.
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"ctlpay/internal/services/connectivity"
	"ctlpay/internal/utils"
)

type StatusHandler struct {
	monitor *connectivity.Monitor
}

func NewStatusHandler(monitor *connectivity.Monitor) *StatusHandler {
	return &StatusHandler{monitor: monitor}
}

// GetStatus reports the last known connectivity state without probing.
func (h *StatusHandler) GetStatus(c *fiber.Ctx) error {
	return utils.Success(c, h.monitor.State())
}

// Probe forces an immediate health check and reports the fresh state.
func (h *StatusHandler) Probe(c *fiber.Ctx) error {
	return utils.Success(c, h.monitor.Probe(c.Context()))
}
