package trade

import (
	"strconv"
	"strings"
)

// Unit is the label every price and total is shown in.
const Unit = "Exalted Orbs"

// Status classifies the outcome of a trade.
type Status string

const (
	StatusProfit  Status = "profit"
	StatusLoss    Status = "loss"
	StatusNeutral Status = "neutral"
)

func StatusOf(profit float64) Status {
	switch {
	case profit > 0:
		return StatusProfit
	case profit < 0:
		return StatusLoss
	}
	return StatusNeutral
}

// Indicator is the short banner shown next to the result.
func (s Status) Indicator() string {
	switch s {
	case StatusProfit:
		return "PROFIT"
	case StatusLoss:
		return "LOSS"
	}
	return "BREAK EVEN"
}

// Pricer returns the unit price of an item by display name.
type Pricer interface {
	Price(name string) (float64, bool)
}

// Leg is one side of a trade: what is sold or what is bought.
type Leg struct {
	Item     string
	Quantity int
}

// Profit is the calculator's result for a sell leg against a buy leg.
type Profit struct {
	SellUnit  float64
	BuyUnit   float64
	SellTotal float64
	BuyTotal  float64
	Amount    float64
	Status    Status
	// Empty is set when neither leg has a priced item and a positive
	// quantity; there is nothing to show yet.
	Empty bool
}

// Calculate prices both legs. A leg with no item, an unpriced item or a
// quantity below one contributes zero.
func Calculate(prices Pricer, sell, buy Leg) Profit {
	var p Profit
	p.SellUnit, p.SellTotal = legTotal(prices, sell)
	p.BuyUnit, p.BuyTotal = legTotal(prices, buy)
	if p.SellTotal == 0 && p.BuyTotal == 0 {
		p.Empty = true
		p.Status = StatusNeutral
		return p
	}
	p.Amount = p.SellTotal - p.BuyTotal
	p.Status = StatusOf(p.Amount)
	return p
}

func legTotal(prices Pricer, l Leg) (unit, total float64) {
	if l.Item == "" || prices == nil {
		return 0, 0
	}
	unit, ok := prices.Price(l.Item)
	if !ok {
		return 0, 0
	}
	if l.Quantity <= 0 {
		return unit, 0
	}
	return unit, unit * float64(l.Quantity)
}

// Signed renders the profit amount with an explicit plus for gains.
func (p Profit) Signed() string {
	s := FormatAmount(p.Amount)
	if p.Amount > 0 {
		s = "+" + s
	}
	return s + " " + Unit
}

// FormatAmount trims trailing zeros and caps output at four decimals.
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// ParseQuantity reads a quantity field; anything unparsable counts as zero.
func ParseQuantity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
