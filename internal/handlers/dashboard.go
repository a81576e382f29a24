package handlers

import (
	"errors"

	apperrors "fraudshield/internal/errors"
	"fraudshield/internal/middleware"
	"fraudshield/internal/models"
	"fraudshield/internal/services/dashboard"
	"fraudshield/internal/services/ledger"
	"fraudshield/internal/utils/response"
	"fraudshield/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service     *dashboard.Service
	recentLimit int
}

func NewDashboardHandler(service *dashboard.Service, recentLimit int) *DashboardHandler {
	if recentLimit <= 0 {
		recentLimit = ledger.DefaultRecentLimit
	}
	return &DashboardHandler{service: service, recentLimit: recentLimit}
}

type verifyRequest struct {
	OTP string `json:"otp"`
}

// SubmitTransaction scores a simulated transaction for the session.
func (h *DashboardHandler) SubmitTransaction(c *fiber.Ctx) error {
	var in models.TransactionInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	out, err := h.service.Submit(c.UserContext(), middleware.SessionID(c), in)
	if err != nil {
		return handleError(c, err)
	}

	if out.VerificationRequired {
		return c.Status(fiber.StatusAccepted).JSON(out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// VerifyTransaction checks the OTP of a pending transaction. A wrong code
// is answered with 403 and the recorded BLOCK outcome.
func (h *DashboardHandler) VerifyTransaction(c *fiber.Ctx) error {
	var req verifyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	v := validation.New()
	v.OTP(req.OTP)
	if err := v.Err(); err != nil {
		return handleError(c, err)
	}

	out, err := h.service.Verify(c.UserContext(), middleware.SessionID(c), c.Params("id"), req.OTP)
	if errors.Is(err, apperrors.ErrOtpMismatch) && out != nil {
		return response.CodedError(c, fiber.StatusForbidden, apperrors.ErrOtpMismatch.Code, err.Error(), fiber.Map{
			"outcome": out,
		})
	}
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// PendingVerification shows the state of a transaction awaiting its code.
func (h *DashboardHandler) PendingVerification(c *fiber.Ctx) error {
	out, err := h.service.Pending(c.UserContext(), middleware.SessionID(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// RecentTransactions lists the latest ledger entries, oldest first.
func (h *DashboardHandler) RecentTransactions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", h.recentLimit)
	if limit <= 0 {
		limit = h.recentLimit
	}

	entries, err := h.service.Recent(c.UserContext(), middleware.SessionID(c), limit)
	if err != nil {
		return handleError(c, err)
	}
	if entries == nil {
		entries = []models.LedgerEntry{}
	}
	return response.Success(c, "recent transactions", entries)
}

// Monitoring returns the session aggregates and risk trend.
func (h *DashboardHandler) Monitoring(c *fiber.Ctx) error {
	agg, err := h.service.Summary(c.UserContext(), middleware.SessionID(c))
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "monitoring", agg)
}
