package account

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/banco-digital/banco_core/internal/ledger"
)

// Handler exposes account HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an account HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type amountRequest struct {
	Amount int64 `json:"amount"`
}

type transferRequest struct {
	RecipientNationalID string `json:"recipient_national_id"`
	Amount              int64  `json:"amount"`
}

type entryResponse struct {
	Seq         int64     `json:"seq"`
	Amount      int64     `json:"amount"`
	Kind        string    `json:"kind"`
	Description string    `json:"description,omitempty"`
	TransferID  string    `json:"transfer_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Deposit credits the authenticated user's account.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(int64)
	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	entry, err := h.service.Deposit(c.UserContext(), userID, req.Amount)
	if err != nil {
		return mapMoneyError(err)
	}
	return c.Status(http.StatusCreated).JSON(toEntryResponse(entry))
}

// Withdraw debits the authenticated user's account.
func (h *Handler) Withdraw(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(int64)
	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	entry, err := h.service.Withdraw(c.UserContext(), userID, req.Amount)
	if err != nil {
		return mapMoneyError(err)
	}
	return c.Status(http.StatusCreated).JSON(toEntryResponse(entry))
}

// Transfer moves funds to another user identified by national ID.
func (h *Handler) Transfer(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(int64)
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	res, err := h.service.Transfer(c.UserContext(), userID, req.RecipientNationalID, req.Amount)
	if err != nil {
		return mapMoneyError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"transfer_id":  res.TransferID,
		"from_balance": res.FromBalance,
		"to_balance":   res.ToBalance,
		"debit":        toEntryResponse(res.Debit),
		"credit":       toEntryResponse(res.Credit),
	})
}

// Balance returns the authenticated user's balance.
func (h *Handler) Balance(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(int64)
	balance, err := h.service.Balance(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"user_id":   userID,
		"balance":   balance,
		"timestamp": time.Now().UTC(),
	})
}

// Statement returns the authenticated user's most recent entries.
func (h *Handler) Statement(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(int64)
	entries, err := h.service.Statement(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"user_id": userID, "entries": out})
}

func mapMoneyError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrRecipientNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrInsufficientBalance):
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}

func toEntryResponse(e ledger.Entry) entryResponse {
	return entryResponse{
		Seq:         e.Seq,
		Amount:      e.Amount,
		Kind:        e.Kind,
		Description: e.Description,
		TransferID:  e.TransferID,
		CreatedAt:   e.CreatedAt,
	}
}
