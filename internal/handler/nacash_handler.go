package handler

import (
	"bytes"

	"go-boutique-ws/internal/apierror"
	"go-boutique-ws/internal/service"
	"go-boutique-ws/internal/sms"

	"github.com/gofiber/fiber/v2"
)

type NaCashHandler struct {
	ledger service.LedgerService
	drive  *sms.DriveSource
}

// NewNaCashHandler builds the ledger handler. drive may be nil when no
// remote backup is configured.
func NewNaCashHandler(ledger service.LedgerService, drive *sms.DriveSource) *NaCashHandler {
	return &NaCashHandler{ledger: ledger, drive: drive}
}

// GetTransactions lists ledger entries
// Query params: unused (true to hide redeemed codes)
func (h *NaCashHandler) GetTransactions(c *fiber.Ctx) error {
	list, err := h.ledger.List(c.UserContext(), c.QueryBool("unused", false))
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(list)
}

func (h *NaCashHandler) GetTransaction(c *fiber.Ctx) error {
	rec, err := h.ledger.Get(c.UserContext(), c.Params("code"))
	if err != nil {
		return apierror.Respond(c, err)
	}
	if rec == nil {
		return apierror.Respond(c, service.ErrInvalidCode)
	}
	return c.JSON(rec)
}

// Import ingests an SMS backup. The XML body is used when present, otherwise
// the configured Drive file is downloaded.
// POST /api/v1/natcash/import
func (h *NaCashHandler) Import(c *fiber.Ctx) error {
	var (
		msgs []sms.Message
		err  error
	)

	switch {
	case len(c.Body()) > 0:
		msgs, err = sms.ReadBackup(bytes.NewReader(c.Body()))
		if err != nil {
			return apierror.BadRequest(c, "Invalid SMS backup")
		}
	case h.drive != nil && h.drive.Ready():
		msgs, err = h.drive.Fetch(c.UserContext())
		if err != nil {
			return apierror.Respond(c, err)
		}
	default:
		return apierror.BadRequest(c, "SMS backup body is required")
	}

	report, err := h.ledger.Ingest(c.UserContext(), msgs)
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(report)
}
