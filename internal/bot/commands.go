package bot

import (
	"context"
	"fmt"
	"strings"

	"cbrbot/internal/domain"
	"cbrbot/internal/metrics"
	"cbrbot/internal/rate"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	CommandExchange = "exchange"
	CommandRates    = "rates"

	ExchangeErrorReply = "Ошибка при выполнении обмена. Проверьте правильность команды."
	RatesErrorReply    = "Ошибка при получении курсов валют."
)

type RateQuerier interface {
	Convert(ctx context.Context, from, to string, amount decimal.Decimal) (decimal.Decimal, error)
	ListRates(ctx context.Context) (domain.RateListing, error)
}

// Commands turns command text into reply text. Every call yields exactly one reply.
type Commands struct {
	service RateQuerier
}

// Exchange answers "/exchange FROM TO AMOUNT".
func (c *Commands) Exchange(ctx context.Context, text string) string {
	reply, err := c.exchange(ctx, text)
	metrics.ObserveCommand(CommandExchange, err)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"command": CommandExchange, "text": text}).Warn("exchange command failed")
		return ExchangeErrorReply
	}
	return reply
}

func (c *Commands) exchange(ctx context.Context, text string) (string, error) {
	tokens := strings.Fields(text)
	if len(tokens) != 4 {
		return "", fmt.Errorf("%w: want FROM TO AMOUNT, got %d arguments", domain.ErrCommandFormat, len(tokens)-1)
	}

	from, err := rate.NormalizeCode(tokens[1])
	if err != nil {
		return "", fmt.Errorf("%w: source %q: %w", domain.ErrCommandFormat, tokens[1], err)
	}
	to, err := rate.NormalizeCode(tokens[2])
	if err != nil {
		return "", fmt.Errorf("%w: target %q: %w", domain.ErrCommandFormat, tokens[2], err)
	}
	amount, err := rate.ParseAmount(tokens[3])
	if err != nil {
		return "", fmt.Errorf("%w: amount %q: %w", domain.ErrCommandFormat, tokens[3], err)
	}

	result, err := c.service.Convert(ctx, from, to, amount)
	if err != nil {
		return "", err
	}
	return FormatExchangeReply(amount, from, result, to), nil
}

// Rates answers "/rates".
func (c *Commands) Rates(ctx context.Context) string {
	listing, err := c.service.ListRates(ctx)
	metrics.ObserveCommand(CommandRates, err)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"command": CommandRates}).Warn("rates command failed")
		return RatesErrorReply
	}
	return FormatRatesReply(listing)
}

// FormatExchangeReply echoes the amount as a float literal, so 10 reads "10.0".
func FormatExchangeReply(amount decimal.Decimal, from string, result decimal.Decimal, to string) string {
	return fmt.Sprintf("%s %s = %s %s", rate.WithFraction(amount.String()), from, result.StringFixed(5), to)
}

func FormatRatesReply(listing domain.RateListing) string {
	lines := make([]string, 0, len(listing.Rates))
	for _, cr := range listing.Rates {
		lines = append(lines, cr.Code+": "+cr.Value)
	}
	return fmt.Sprintf("Курсы валют на %s:\n%s", listing.Date, strings.Join(lines, "\n"))
}

func NewCommands(service RateQuerier) *Commands {
	return &Commands{service: service}
}
