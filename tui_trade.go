package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tradetools/log"
	"tradetools/trade"
)

type termTab int

const (
	tabProfit termTab = iota
	tabConvert
	tabPrices
	tabCount
)

func (t termTab) String() string {
	switch t {
	case tabConvert:
		return "Convert"
	case tabPrices:
		return "Prices"
	}
	return "Profit"
}

var (
	tuiTabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	tuiActiveTabStyle = tuiTabStyle.Bold(true).Foreground(lipgloss.Color("220")).Underline(true)
	tuiFieldStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	tuiCursorStyle    = lipgloss.NewStyle().Reverse(true)
	tuiLabelStyle     = lipgloss.NewStyle().Width(10).Foreground(lipgloss.Color("245"))
	tuiStatusStyles   = map[trade.Status]lipgloss.Style{
		trade.StatusProfit:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		trade.StatusLoss:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		trade.StatusNeutral: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
	}
)

// termTrade is the terminal rendition of the trade panel. Fields are
// selected with up/down; item pickers cycle with left/right.
type termTrade struct {
	prices *trade.PriceList
	path   string

	tab   termTab
	field int
	names []string

	sell, buy       int // index into names, -1 when nothing is picked
	sellQty, buyQty string

	from, to int
	amount   string

	edit       []string // price editor text, parallel to names
	importPath string
	status     string
}

func newTermTrade(prices *trade.PriceList, path string) *termTrade {
	t := &termTrade{
		prices:  prices,
		path:    path,
		sell:    -1,
		buy:     -1,
		from:    -1,
		to:      -1,
		sellQty: "1",
		buyQty:  "1",
	}
	t.reload()
	return t
}

// reload rereads the price list, keeping picks whose item still exists.
func (t *termTrade) reload() {
	sell, buy, from, to := t.name(t.sell), t.name(t.buy), t.name(t.from), t.name(t.to)

	t.names = t.prices.Names()
	t.sell, t.buy, t.from, t.to = t.index(sell), t.index(buy), t.index(from), t.index(to)

	t.edit = t.edit[:0]
	for _, c := range t.prices.Currencies() {
		t.edit = append(t.edit, trade.FormatAmount(c.ExaltedValue))
	}
	if t.tab == tabPrices && t.field > len(t.names) {
		t.field = len(t.names)
	}
}

func (t *termTrade) name(i int) string {
	if i < 0 || i >= len(t.names) {
		return ""
	}
	return t.names[i]
}

func (t *termTrade) index(name string) int {
	for i, n := range t.names {
		if n == name {
			return i
		}
	}
	return -1
}

func (t *termTrade) fieldCount() int {
	switch t.tab {
	case tabConvert:
		return 3
	case tabPrices:
		return len(t.names) + 1
	}
	return 4
}

// editingPath reports whether keystrokes go to the free-text import field.
func (t *termTrade) editingPath() bool {
	return t.tab == tabPrices && t.field == len(t.names)
}

func (t *termTrade) profit() trade.Profit {
	return trade.Calculate(t.prices,
		trade.Leg{Item: t.name(t.sell), Quantity: trade.ParseQuantity(t.sellQty)},
		trade.Leg{Item: t.name(t.buy), Quantity: trade.ParseQuantity(t.buyQty)},
	)
}

func (t *termTrade) shortName(i int) string {
	name := t.name(i)
	for _, c := range t.prices.Currencies() {
		if c.Name == name {
			return c.ShortName
		}
	}
	return ""
}

func (t *termTrade) conversion() string {
	if t.from < 0 || t.to < 0 || strings.TrimSpace(t.amount) == "" {
		return ""
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(t.amount), 64)
	if err != nil {
		return "amount must be a number"
	}
	res, err := trade.Convert(t.prices, t.shortName(t.from), t.shortName(t.to), amount)
	if err != nil {
		return err.Error()
	}
	return res.String()
}

// save applies the editor text to the list and writes the price file.
func (t *termTrade) save() error {
	cs := t.prices.Currencies()
	now := time.Now()
	for i := range cs {
		if i >= len(t.edit) {
			break
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(t.edit[i]), 64)
		if err != nil || v < 0 {
			err = fmt.Errorf("%s: %w", cs[i].Name, trade.ErrInvalidPrice)
			t.status = err.Error()
			return err
		}
		if v != cs[i].ExaltedValue {
			cs[i].ExaltedValue = v
			cs[i].LastUpdated = now
		}
	}
	if err := t.prices.Replace(cs); err != nil {
		t.status = err.Error()
		return err
	}
	if err := t.prices.Save(t.path); err != nil {
		log.Errorf("saving prices: %v", err)
		t.status = "could not save: " + err.Error()
		return err
	}
	t.status = "prices saved"
	t.reload()
	return nil
}

func (t *termTrade) importFile() error {
	n, err := t.prices.Import(strings.TrimSpace(t.importPath))
	if err != nil {
		log.Warnf("price import failed: %v", err)
		t.status = "import failed: " + err.Error()
		return err
	}
	if err := t.prices.Save(t.path); err != nil {
		log.Errorf("saving prices: %v", err)
		t.status = "could not save: " + err.Error()
		return err
	}
	t.status = fmt.Sprintf("imported %d prices", n)
	t.importPath = ""
	t.reload()
	return nil
}

// text returns the editable string behind the focused field, or nil for
// pickers.
func (t *termTrade) text() *string {
	switch t.tab {
	case tabProfit:
		switch t.field {
		case 1:
			return &t.sellQty
		case 3:
			return &t.buyQty
		}
	case tabConvert:
		if t.field == 2 {
			return &t.amount
		}
	case tabPrices:
		if t.field < len(t.edit) {
			return &t.edit[t.field]
		}
		return &t.importPath
	}
	return nil
}

// picker returns the selection index behind the focused field, or nil.
func (t *termTrade) picker() *int {
	switch t.tab {
	case tabProfit:
		switch t.field {
		case 0:
			return &t.sell
		case 2:
			return &t.buy
		}
	case tabConvert:
		switch t.field {
		case 0:
			return &t.from
		case 1:
			return &t.to
		}
	}
	return nil
}

func (t *termTrade) cycle(p *int, step int) {
	n := len(t.names)
	if n == 0 {
		return
	}
	if *p < 0 {
		if step > 0 {
			*p = 0
		} else {
			*p = n - 1
		}
		return
	}
	*p = (*p + step + n) % n
}

// handleKey applies k and reports whether it was consumed.
func (t *termTrade) handleKey(k tea.KeyMsg) bool {
	switch k.String() {
	case "tab":
		t.tab = (t.tab + 1) % tabCount
		t.field = 0
		return true
	case "shift+tab":
		t.tab = (t.tab + tabCount - 1) % tabCount
		t.field = 0
		return true
	case "up":
		t.field = (t.field + t.fieldCount() - 1) % t.fieldCount()
		return true
	case "down":
		t.field = (t.field + 1) % t.fieldCount()
		return true
	case "left", "right":
		if p := t.picker(); p != nil {
			step := 1
			if k.String() == "left" {
				step = -1
			}
			t.cycle(p, step)
			return true
		}
		return false
	case "ctrl+s":
		if t.tab == tabPrices {
			t.save()
			return true
		}
		return false
	case "enter":
		if t.editingPath() {
			t.importFile()
			return true
		}
		return false
	case "backspace":
		if s := t.text(); s != nil && len(*s) > 0 {
			r := []rune(*s)
			*s = string(r[:len(r)-1])
			return true
		}
		return false
	}

	if k.Type == tea.KeySpace && t.editingPath() {
		t.importPath += " "
		return true
	}
	if k.Type != tea.KeyRunes {
		return false
	}
	s := t.text()
	if s == nil {
		return false
	}
	if !t.editingPath() {
		for _, r := range k.Runes {
			if (r < '0' || r > '9') && r != '.' {
				return false
			}
		}
	}
	*s += string(k.Runes)
	return true
}

func (t *termTrade) render(field func(i int, s string) string) string {
	var b strings.Builder
	for tab := termTab(0); tab < tabCount; tab++ {
		style := tuiTabStyle
		if tab == t.tab {
			style = tuiActiveTabStyle
		}
		b.WriteString(style.Render(tab.String()))
	}
	b.WriteString("\n\n")

	switch t.tab {
	case tabProfit:
		p := t.profit()
		row := func(label string, pick, qty int, item, count string, unit, total float64) {
			b.WriteString(tuiLabelStyle.Render(label))
			b.WriteString(field(pick, "< "+orDash(item)+" >"))
			b.WriteString(" x ")
			b.WriteString(field(qty, count))
			b.WriteString("\n")
			b.WriteString(tuiLabelStyle.Render(""))
			b.WriteString(tuiDimStyle.Render(fmt.Sprintf("unit %s  total %s %s", unitOrDash(unit), trade.FormatAmount(total), trade.Unit)))
			b.WriteString("\n")
		}
		row("Sell", 0, 1, t.name(t.sell), t.sellQty, p.SellUnit, p.SellTotal)
		row("Buy", 2, 3, t.name(t.buy), t.buyQty, p.BuyUnit, p.BuyTotal)
		b.WriteString("\n")
		if p.Empty {
			b.WriteString(tuiDimStyle.Render("Select items to calculate"))
		} else {
			style := tuiStatusStyles[p.Status]
			b.WriteString(style.Render(p.Signed() + "  " + p.Status.Indicator()))
		}

	case tabConvert:
		b.WriteString(tuiLabelStyle.Render("From"))
		b.WriteString(field(0, "< "+orDash(t.name(t.from))+" >"))
		b.WriteString("\n")
		b.WriteString(tuiLabelStyle.Render("To"))
		b.WriteString(field(1, "< "+orDash(t.name(t.to))+" >"))
		b.WriteString("\n")
		b.WriteString(tuiLabelStyle.Render("Amount"))
		b.WriteString(field(2, t.amount))
		b.WriteString("\n\n")
		b.WriteString(tuiTitleStyle.Render(t.conversion()))

	case tabPrices:
		for i, name := range t.names {
			b.WriteString(lipgloss.NewStyle().Width(20).Render(name))
			b.WriteString(field(i, t.edit[i]))
			b.WriteString(" " + tuiDimStyle.Render(trade.Unit))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(tuiLabelStyle.Render("Import"))
		b.WriteString(field(len(t.names), t.importPath))
		b.WriteString("\n")
		b.WriteString(tuiDimStyle.Render("ctrl+s save, enter on import loads a file"))
	}

	if t.status != "" {
		b.WriteString("\n")
		b.WriteString(tuiHintStyle.Render(t.status))
	}
	return b.String()
}

// View renders the panel with the focused field highlighted.
func (t *termTrade) View() string {
	return t.render(func(i int, s string) string {
		if i == t.field {
			return tuiCursorStyle.Render(s + " ")
		}
		return tuiFieldStyle.Render(s)
	})
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func unitOrDash(v float64) string {
	if v <= 0 {
		return "-"
	}
	return trade.FormatAmount(v) + " " + trade.Unit
}
