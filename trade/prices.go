package trade

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"
)

// MaxSuggestions caps Search results.
const MaxSuggestions = 10

var ErrInvalidPrice = errors.New("price must be a non-negative number")

// Defaults is the price list used until the user saves their own.
func Defaults() []Currency {
	return []Currency{
		{Name: "Chaos Orb", ShortName: "chaos", ExaltedValue: 0.5},
		{Name: "Divine Orb", ShortName: "divine", ExaltedValue: 400},
		{Name: "Exalted Orb", ShortName: "exalt", ExaltedValue: 1},
	}
}

// PriceList is the user's set of currencies, kept sorted by name. It is safe
// for concurrent use.
type PriceList struct {
	mu         sync.RWMutex
	currencies []Currency
}

func NewPriceList(cs []Currency) (*PriceList, error) {
	p := &PriceList{}
	if err := p.Replace(cs); err != nil {
		return nil, err
	}
	return p, nil
}

// ShortNameFor derives a lookup key from a display name: "Divine Orb"
// becomes "divine", "Orb of Alchemy" becomes "alchemy".
func ShortNameFor(name string) string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(name)) {
		if w == "orb" || w == "orbs" || w == "of" {
			continue
		}
		words = append(words, w)
	}
	if len(words) == 0 {
		return strings.Join(strings.Fields(strings.ToLower(name)), "-")
	}
	return strings.Join(words, "-")
}

func validPrice(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// normalize validates cs and returns a sorted copy with short names filled in.
func normalize(cs []Currency) ([]Currency, error) {
	out := make([]Currency, 0, len(cs))
	names := make(map[string]bool, len(cs))
	shorts := make(map[string]bool, len(cs))
	for _, c := range cs {
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			return nil, errors.New("currency name must not be empty")
		}
		if !validPrice(c.ExaltedValue) {
			return nil, fmt.Errorf("%s: %w", c.Name, ErrInvalidPrice)
		}
		c.ShortName = strings.ToLower(strings.TrimSpace(c.ShortName))
		if c.ShortName == "" {
			c.ShortName = ShortNameFor(c.Name)
		}
		key := strings.ToLower(c.Name)
		if names[key] {
			return nil, fmt.Errorf("duplicate currency %q", c.Name)
		}
		if shorts[c.ShortName] {
			return nil, fmt.Errorf("duplicate short name %q", c.ShortName)
		}
		names[key] = true
		shorts[c.ShortName] = true
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Replace swaps in a whole new list. Nothing changes if any entry is invalid.
func (p *PriceList) Replace(cs []Currency) error {
	out, err := normalize(cs)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.currencies = out
	p.mu.Unlock()
	return nil
}

// Currencies returns a copy of the list, sorted by name.
func (p *PriceList) Currencies() []Currency {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]Currency(nil), p.currencies...)
}

func (p *PriceList) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, len(p.currencies))
	for i, c := range p.currencies {
		names[i] = c.Name
	}
	return names
}

func (p *PriceList) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.currencies)
}

// Currency finds an entry by short name, ignoring case.
func (p *PriceList) Currency(shortName string) (Currency, bool) {
	key := strings.ToLower(strings.TrimSpace(shortName))
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, c := range p.currencies {
		if c.ShortName == key {
			return c, true
		}
	}
	return Currency{}, false
}

// Price returns the unit price of the named item. Items priced at zero
// report false, the same as unknown ones.
func (p *PriceList) Price(name string) (float64, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, c := range p.currencies {
		if c.Name == name {
			return c.ExaltedValue, c.ExaltedValue > 0
		}
	}
	return 0, false
}

// SetPrice updates the named item, adding it if it is new.
func (p *PriceList) SetPrice(name string, value float64) error {
	if !validPrice(value) {
		return fmt.Errorf("%s: %w", name, ErrInvalidPrice)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.currencies {
		if p.currencies[i].Name == name {
			p.currencies[i].ExaltedValue = value
			p.currencies[i].LastUpdated = time.Now()
			return nil
		}
	}
	next, err := normalize(append(append([]Currency(nil), p.currencies...),
		Currency{Name: name, ExaltedValue: value, LastUpdated: time.Now()}))
	if err != nil {
		return err
	}
	p.currencies = next
	return nil
}

// Search returns up to max entries whose name contains query, ignoring case.
func (p *PriceList) Search(query string, max int) []Currency {
	if max <= 0 {
		max = MaxSuggestions
	}
	q := strings.ToLower(strings.TrimSpace(query))
	p.mu.RLock()
	defer p.mu.RUnlock()
	var out []Currency
	for _, c := range p.currencies {
		if len(out) == max {
			break
		}
		if strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c)
		}
	}
	return out
}
