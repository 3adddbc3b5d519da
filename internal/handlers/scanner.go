package handlers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"ctlpay/internal/services/scanner"
	"ctlpay/internal/services/transaction"
	"ctlpay/internal/utils"
)

const scanLoadTimeout = 10 * time.Second

type ScannerHandler struct {
	scanner      *scanner.Scanner
	hub          *scanner.Hub
	transactions transaction.Service
}

func NewScannerHandler(sc *scanner.Scanner, hub *scanner.Hub, transactions transaction.Service) *ScannerHandler {
	return &ScannerHandler{scanner: sc, hub: hub, transactions: transactions}
}

// Start begins a scan session. The first frame carrying a usable CTL
// identifier loads that transaction and ends the session.
func (h *ScannerHandler) Start(c *fiber.Ctx) error {
	err := h.scanner.Start(func(id string) {
		ctx, cancel := context.WithTimeout(context.Background(), scanLoadTimeout)
		defer cancel()
		if _, err := h.transactions.Load(ctx, id); err != nil {
			log.Printf("scanner: échec de chargement de %s: %v", id, err)
		}
	})
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.Map{"actif": true})
}

// Stop ends the current scan session.
func (h *ScannerHandler) Stop(c *fiber.Ctx) error {
	h.scanner.Stop()
	return utils.Success(c, fiber.Map{"actif": false})
}

// Status reports whether a scan session is active.
func (h *ScannerHandler) Status(c *fiber.Ctx) error {
	return utils.Success(c, fiber.Map{"actif": h.scanner.Running()})
}

// Frame relays one decoded QR frame from the display device to the
// current session. The raw body is the frame content.
func (h *ScannerHandler) Frame(c *fiber.Ctx) error {
	frame := c.Body()
	if len(frame) == 0 {
		return utils.BadRequest(c, "frame vide")
	}

	// Body buffers are reused by fasthttp once the handler returns.
	copied := make([]byte, len(frame))
	copy(copied, frame)

	accepted := h.hub.Offer(copied)
	return utils.Success(c, fiber.Map{"accepte": accepted})
}
