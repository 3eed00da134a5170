// Package trade holds the price list and the two calculations the main window
// offers: currency conversion through Exalted Orbs, and buy/sell profit.
package trade

import (
	"errors"
	"fmt"
	"time"
)

// Currency is a tradeable item priced in Exalted Orbs.
type Currency struct {
	Name         string    `yaml:"name"`
	ShortName    string    `yaml:"short_name"`
	ExaltedValue float64   `yaml:"exalted_value"`
	LastUpdated  time.Time `yaml:"last_updated,omitempty"`
}

var (
	ErrInvalidAmount   = errors.New("amount must be greater than 0")
	ErrUnknownCurrency = errors.New("currency not found")
	ErrUnpriced        = errors.New("currency has no price")
)

// Rates looks currencies up by short name.
type Rates interface {
	Currency(shortName string) (Currency, bool)
}

// Conversion is the outcome of one Convert call.
type Conversion struct {
	From         string
	To           string
	Amount       float64
	Result       float64
	FromPrice    float64
	ToPrice      float64
	ExchangeRate float64 // units of To per one From
}

// Convert turns amount of from into to. Every conversion goes through the
// Exalted Orb value of both sides.
func Convert(rates Rates, from, to string, amount float64) (*Conversion, error) {
	if !(amount > 0) {
		return nil, ErrInvalidAmount
	}

	src, ok := rates.Currency(from)
	if !ok {
		return nil, fmt.Errorf("source currency %q: %w", from, ErrUnknownCurrency)
	}
	dst, ok := rates.Currency(to)
	if !ok {
		return nil, fmt.Errorf("target currency %q: %w", to, ErrUnknownCurrency)
	}
	if src.ExaltedValue <= 0 {
		return nil, fmt.Errorf("source currency %q: %w", from, ErrUnpriced)
	}
	if dst.ExaltedValue <= 0 {
		return nil, fmt.Errorf("target currency %q: %w", to, ErrUnpriced)
	}

	inExalted := amount * src.ExaltedValue
	return &Conversion{
		From:         src.ShortName,
		To:           dst.ShortName,
		Amount:       amount,
		Result:       inExalted / dst.ExaltedValue,
		FromPrice:    src.ExaltedValue,
		ToPrice:      dst.ExaltedValue,
		ExchangeRate: src.ExaltedValue / dst.ExaltedValue,
	}, nil
}

func (c *Conversion) String() string {
	return fmt.Sprintf("%s %s = %s %s (1 %s = %s %s)",
		FormatAmount(c.Amount), c.From, FormatAmount(c.Result), c.To,
		c.From, FormatAmount(c.ExchangeRate), c.To)
}
