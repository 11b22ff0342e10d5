package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tirasundara/ledger-service/internal/domain"
	"github.com/tirasundara/ledger-service/internal/report"
)

// Ledger is the set of ledger operations the console drives
type Ledger interface {
	NewUser(userID string) error
	DepositFunds(currency domain.Currency, amount decimal.Decimal, userID string) error
	WithdrawFunds(currency domain.Currency, amount decimal.Decimal, userID string) error
	SendFunds(currency domain.Currency, amount decimal.Decimal, senderID, receiverID string) error
	ExchangeCurrency(base, target domain.Currency, amount decimal.Decimal, userID string) error
	GetAccountHistory(userID string, q domain.HistoryQuery) ([]domain.Transaction, error)
	GetAccountBalance(userID string) (map[domain.Currency]decimal.Decimal, error)
}

const (
	userPrompt     = "enter command: create|login userId"
	accountPrompt  = "enter command: balance|history [CUR] [TYPE]|deposit|withdraw|send|exchange|quit"
	amountPrompt   = "enter command: PLN|EUR|USD amount"
	sendPrompt     = "enter command: PLN|EUR|USD amount receiverId"
	exchangePrompt = "enter command: (base currency)PLN|EUR|USD (target currency)PLN|EUR|USD amount"
)

var errQuit = errors.New("quit")

// Session is an interactive line-oriented front end over a Ledger. It reads
// commands from in and writes prompts, results and errors to out.
type Session struct {
	ledger    Ledger
	formatter report.Formatter
	in        *bufio.Scanner
	out       io.Writer
}

// NewSession creates a Session that renders balances and history with formatter
func NewSession(ledger Ledger, formatter report.Formatter, in io.Reader, out io.Writer) *Session {
	return &Session{
		ledger:    ledger,
		formatter: formatter,
		in:        bufio.NewScanner(in),
		out:       out,
	}
}

// Run processes commands until the input is exhausted. Command errors are
// printed and never end the session.
func (s *Session) Run() error {
	for {
		userID, err := s.selectUser()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := s.accountLoop(userID); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// selectUser loops on the outer prompt until a user is created or logged in
func (s *Session) selectUser() (string, error) {
	for {
		fields, err := s.prompt(userPrompt, "")
		if err != nil {
			return "", err
		}

		if len(fields) != 2 {
			s.printError(errors.New("invalid command"))
			continue
		}

		userID := fields[1]
		switch fields[0] {
		case "create":
			err = s.ledger.NewUser(userID)
		case "login":
			_, err = s.ledger.GetAccountBalance(userID)
		default:
			err = fmt.Errorf("invalid command: %s", fields[0])
		}
		if err != nil {
			s.printError(err)
			continue
		}

		return userID, nil
	}
}

func (s *Session) accountLoop(userID string) error {
	for {
		fields, err := s.prompt(accountPrompt, userID)
		if err != nil {
			return err
		}
		if len(fields) == 0 {
			continue
		}

		err = s.dispatch(userID, fields)
		if errors.Is(err, errQuit) {
			return nil
		}
		if errors.Is(err, io.EOF) {
			return err
		}
		if err != nil {
			s.printError(err)
		}
	}
}

func (s *Session) dispatch(userID string, fields []string) error {
	switch fields[0] {
	case "quit":
		return errQuit
	case "balance":
		return s.balance(userID)
	case "history":
		return s.history(userID, fields[1:])
	case "deposit":
		return s.amountCommand(userID, "deposit", s.ledger.DepositFunds)
	case "withdraw":
		return s.amountCommand(userID, "withdraw", s.ledger.WithdrawFunds)
	case "send":
		return s.send(userID)
	case "exchange":
		return s.exchange(userID)
	default:
		return fmt.Errorf("invalid command: %s", strings.Join(fields, " "))
	}
}

func (s *Session) balance(userID string) error {
	balances, err := s.ledger.GetAccountBalance(userID)
	if err != nil {
		return err
	}

	output, err := s.formatter.FormatBalances(userID, balances)
	if err != nil {
		return fmt.Errorf("formatting balances: %w", err)
	}
	_, err = s.out.Write(output)
	return err
}

// history accepts optional currency and transaction type filters in any order
func (s *Session) history(userID string, args []string) error {
	var q domain.HistoryQuery

	for _, arg := range args {
		if txType, ok := domain.ParseTransactionType(arg); ok {
			q.Type = &txType
			continue
		}
		currency, err := domain.ParseCurrency(arg)
		if err != nil {
			return fmt.Errorf("invalid history filter %q: %w", arg, err)
		}
		q.Currency = &currency
	}

	txns, err := s.ledger.GetAccountHistory(userID, q)
	if err != nil {
		return err
	}

	output, err := s.formatter.FormatHistory(userID, txns)
	if err != nil {
		return fmt.Errorf("formatting history: %w", err)
	}
	_, err = s.out.Write(output)
	return err
}

func (s *Session) amountCommand(userID, name string, op func(domain.Currency, decimal.Decimal, string) error) error {
	fields, err := s.prompt(amountPrompt, userID)
	if err != nil {
		return err
	}
	if len(fields) != 2 {
		return fmt.Errorf("invalid %s command", name)
	}

	currency, err := domain.ParseCurrency(fields[0])
	if err != nil {
		return err
	}
	amount, err := parseAmount(fields[1])
	if err != nil {
		return err
	}

	return op(currency, amount, userID)
}

func (s *Session) send(userID string) error {
	fields, err := s.prompt(sendPrompt, userID)
	if err != nil {
		return err
	}
	if len(fields) != 3 {
		return errors.New("invalid send command")
	}

	currency, err := domain.ParseCurrency(fields[0])
	if err != nil {
		return err
	}
	amount, err := parseAmount(fields[1])
	if err != nil {
		return err
	}

	return s.ledger.SendFunds(currency, amount, userID, fields[2])
}

func (s *Session) exchange(userID string) error {
	fields, err := s.prompt(exchangePrompt, userID)
	if err != nil {
		return err
	}
	if len(fields) != 3 {
		return errors.New("invalid exchange command")
	}

	base, err := domain.ParseCurrency(fields[0])
	if err != nil {
		return err
	}
	target, err := domain.ParseCurrency(fields[1])
	if err != nil {
		return err
	}
	amount, err := parseAmount(fields[2])
	if err != nil {
		return err
	}

	return s.ledger.ExchangeCurrency(base, target, amount, userID)
}

// prompt prints message and the "user> " marker, then reads one line split
// on whitespace. It returns io.EOF once the input is exhausted.
func (s *Session) prompt(message, userID string) ([]string, error) {
	fmt.Fprintln(s.out, message)
	fmt.Fprintf(s.out, "%s> ", userID)

	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return nil, fmt.Errorf("reading command: %w", err)
		}
		return nil, io.EOF
	}

	return strings.Fields(s.in.Text()), nil
}

func (s *Session) printError(err error) {
	fmt.Fprintf(s.out, "error: %v\n", err)
}

func parseAmount(text string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", text, domain.ErrInvalidAmount)
	}
	return amount, nil
}
