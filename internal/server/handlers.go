package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/tirasundara/ledger-service/internal/domain"
)

// Request Models
type CreateUserRequest struct {
	UserID string `json:"userId" validate:"required,max=64"`
}

type AmountRequest struct {
	Currency string      `json:"currency" validate:"required,len=3"`
	Amount   json.Number `json:"amount" validate:"required,numeric"`
}

type SendRequest struct {
	Currency   string      `json:"currency" validate:"required,len=3"`
	Amount     json.Number `json:"amount" validate:"required,numeric"`
	ReceiverID string      `json:"receiverId" validate:"required"`
}

type ExchangeRequest struct {
	Base   string      `json:"base" validate:"required,len=3"`
	Target string      `json:"target" validate:"required,len=3"`
	Amount json.Number `json:"amount" validate:"required,numeric"`
}

func (h *Handler) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := h.parse(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.Ledger.NewUser(req.UserID); err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"userId": req.UserID})
}

func (h *Handler) ListUsers(c *fiber.Ctx) error {
	users := h.Ledger.ListUsers()
	if users == nil {
		users = []string{}
	}
	return c.JSON(fiber.Map{"users": users})
}

func (h *Handler) GetBalance(c *fiber.Ctx) error {
	userID := c.Params("id")

	balances, err := h.Ledger.GetAccountBalance(userID)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{"userId": userID, "balances": balances})
}

// GetHistory accepts optional currency, type, from and to query parameters.
// from and to are RFC 3339 timestamps and are inclusive.
func (h *Handler) GetHistory(c *fiber.Ctx) error {
	userID := c.Params("id")

	q, err := historyQuery(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	txns, err := h.Ledger.GetAccountHistory(userID, q)
	if err != nil {
		return h.fail(c, err)
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}

	return c.JSON(fiber.Map{"userId": userID, "transactions": txns})
}

func (h *Handler) Deposit(c *fiber.Ctx) error {
	return h.amountOperation(c, h.Ledger.DepositFunds)
}

func (h *Handler) Withdraw(c *fiber.Ctx) error {
	return h.amountOperation(c, h.Ledger.WithdrawFunds)
}

func (h *Handler) Send(c *fiber.Ctx) error {
	userID := c.Params("id")

	var req SendRequest
	if err := h.parse(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		return h.fail(c, err)
	}
	amount, err := decimal.NewFromString(req.Amount.String())
	if err != nil {
		return badRequest(c, "invalid amount")
	}

	if err := h.Ledger.SendFunds(currency, amount, userID, req.ReceiverID); err != nil {
		return h.fail(c, err)
	}

	return h.balanceResponse(c, userID)
}

func (h *Handler) Exchange(c *fiber.Ctx) error {
	userID := c.Params("id")

	var req ExchangeRequest
	if err := h.parse(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	base, err := domain.ParseCurrency(req.Base)
	if err != nil {
		return h.fail(c, err)
	}
	target, err := domain.ParseCurrency(req.Target)
	if err != nil {
		return h.fail(c, err)
	}
	amount, err := decimal.NewFromString(req.Amount.String())
	if err != nil {
		return badRequest(c, "invalid amount")
	}

	if err := h.Ledger.ExchangeCurrency(base, target, amount, userID); err != nil {
		return h.fail(c, err)
	}

	return h.balanceResponse(c, userID)
}

func (h *Handler) amountOperation(c *fiber.Ctx, op func(domain.Currency, decimal.Decimal, string) error) error {
	userID := c.Params("id")

	var req AmountRequest
	if err := h.parse(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		return h.fail(c, err)
	}
	amount, err := decimal.NewFromString(req.Amount.String())
	if err != nil {
		return badRequest(c, "invalid amount")
	}

	if err := op(currency, amount, userID); err != nil {
		return h.fail(c, err)
	}

	return h.balanceResponse(c, userID)
}

func (h *Handler) balanceResponse(c *fiber.Ctx, userID string) error {
	balances, err := h.Ledger.GetAccountBalance(userID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "userId": userID, "balances": balances})
}

// parse decodes the request body into req and validates its tags
func (h *Handler) parse(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return fmt.Errorf("invalid body")
	}
	if err := h.validate.Struct(req); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	return nil
}

func historyQuery(c *fiber.Ctx) (domain.HistoryQuery, error) {
	var q domain.HistoryQuery

	if code := c.Query("currency"); code != "" {
		currency, err := domain.ParseCurrency(code)
		if err != nil {
			return q, err
		}
		q.Currency = &currency
	}

	if name := c.Query("type"); name != "" {
		txType, ok := domain.ParseTransactionType(name)
		if !ok {
			return q, fmt.Errorf("unknown transaction type %q", name)
		}
		q.Type = &txType
	}

	for _, bound := range []struct {
		param  string
		target **time.Time
	}{
		{"from", &q.Start},
		{"to", &q.End},
	} {
		value := c.Query(bound.param)
		if value == "" {
			continue
		}
		at, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return q, fmt.Errorf("invalid %s timestamp %q", bound.param, value)
		}
		*bound.target = &at
	}

	return q, nil
}
