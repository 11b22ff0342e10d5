package server

import (
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	"github.com/tirasundara/ledger-service/internal/domain"
	"github.com/tirasundara/ledger-service/internal/repository"
)

// Ledger is the set of ledger operations exposed over HTTP
type Ledger interface {
	NewUser(userID string) error
	DepositFunds(currency domain.Currency, amount decimal.Decimal, userID string) error
	WithdrawFunds(currency domain.Currency, amount decimal.Decimal, userID string) error
	SendFunds(currency domain.Currency, amount decimal.Decimal, senderID, receiverID string) error
	ExchangeCurrency(base, target domain.Currency, amount decimal.Decimal, userID string) error
	GetAccountHistory(userID string, q domain.HistoryQuery) ([]domain.Transaction, error)
	GetAccountBalance(userID string) (map[domain.Currency]decimal.Decimal, error)
	ListUsers() []string
}

// RateLister exposes the loaded exchange rate table
type RateLister interface {
	Rates() repository.Rates
}

// Handler serves the ledger HTTP API
type Handler struct {
	Ledger   Ledger
	Rates    RateLister
	Logger   *slog.Logger
	validate *validator.Validate
}

// New builds a fiber application with every ledger route registered
func New(ledger Ledger, rates RateLister, logger *slog.Logger) *fiber.App {
	h := &Handler{
		Ledger:   ledger,
		Rates:    rates,
		Logger:   logger,
		validate: validator.New(),
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		// user ids from the path are kept in transaction records
		Immutable:    true,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})
	app.Use(recover.New())

	h.Register(app)
	return app
}

// Register mounts the routes on router
func (h *Handler) Register(router fiber.Router) {
	router.Get("/health", h.Health)

	api := router.Group("/v1")
	api.Get("/rates", h.ListRates)

	api.Post("/users", h.CreateUser)
	api.Get("/users", h.ListUsers)
	api.Get("/users/:id/balance", h.GetBalance)
	api.Get("/users/:id/history", h.GetHistory)
	api.Post("/users/:id/deposit", h.Deposit)
	api.Post("/users/:id/withdraw", h.Withdraw)
	api.Post("/users/:id/send", h.Send)
	api.Post("/users/:id/exchange", h.Exchange)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) ListRates(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"rates": h.Rates.Rates()})
}

// statusFor maps a ledger error onto an HTTP status code
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateUser), errors.Is(err, domain.ErrDuplicateAccount):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrInvalidExchange),
		errors.Is(err, domain.ErrRateNotFound):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrUnsupportedCurrency),
		errors.Is(err, domain.ErrInvalidUser):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		h.Logger.Error("Request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}
