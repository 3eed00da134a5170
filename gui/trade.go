//go:build gui

package gui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"tradetools/log"
	"tradetools/trade"
)

// tradeView is the main window content: profit calculator, currency
// converter and price editor over one shared price list. Callbacks run on
// the fyne goroutine.
type tradeView struct {
	prices *trade.PriceList
	path   string
	win    fyne.Window

	sellItem, buyItem   *widget.Select
	sellQty, buyQty     *widget.Entry
	sellUnit, buyUnit   *widget.Label
	sellTotal, buyTotal *widget.Label
	result, indicator   *widget.Label

	from, to  *widget.Select
	amount    *widget.Entry
	converted *widget.Label

	rows    *fyne.Container
	editors map[string]*widget.Entry
	saveBtn *widget.Button
	status  *widget.Label
}

func newTradeView(prices *trade.PriceList, path string) *tradeView {
	v := &tradeView{prices: prices, path: path, editors: map[string]*widget.Entry{}}

	names := prices.Names()
	v.sellItem = widget.NewSelect(names, func(string) { v.recalc() })
	v.buyItem = widget.NewSelect(names, func(string) { v.recalc() })
	v.sellItem.PlaceHolder = "Item sold"
	v.buyItem.PlaceHolder = "Item bought"
	v.sellQty = quantityEntry(v.recalc)
	v.buyQty = quantityEntry(v.recalc)
	v.sellUnit = widget.NewLabel("-")
	v.buyUnit = widget.NewLabel("-")
	v.sellTotal = widget.NewLabel("")
	v.buyTotal = widget.NewLabel("")
	v.result = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	v.indicator = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})

	v.from = widget.NewSelect(names, func(string) { v.convert() })
	v.to = widget.NewSelect(names, func(string) { v.convert() })
	v.from.PlaceHolder = "From"
	v.to.PlaceHolder = "To"
	v.amount = widget.NewEntry()
	v.amount.SetPlaceHolder("Amount")
	v.amount.OnChanged = func(string) { v.convert() }
	v.converted = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	v.rows = container.NewVBox()
	v.status = widget.NewLabel("")
	v.saveBtn = widget.NewButton("Save", func() { v.save() })

	v.rebuildEditor()
	v.recalc()
	return v
}

func quantityEntry(onChange func()) *widget.Entry {
	e := widget.NewEntry()
	e.SetText("1")
	e.OnChanged = func(string) { onChange() }
	return e
}

func (v *tradeView) content(hint string) fyne.CanvasObject {
	profit := container.NewVBox(
		widget.NewLabelWithStyle("Sell", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewGridWithColumns(2, v.sellItem, v.sellQty),
		container.NewGridWithColumns(2, v.sellUnit, v.sellTotal),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Buy", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewGridWithColumns(2, v.buyItem, v.buyQty),
		container.NewGridWithColumns(2, v.buyUnit, v.buyTotal),
		widget.NewSeparator(),
		v.result,
		v.indicator,
	)
	convert := container.NewVBox(
		container.NewGridWithColumns(2, v.from, v.to),
		v.amount,
		v.converted,
	)
	editor := container.NewBorder(nil,
		container.NewVBox(
			container.NewGridWithColumns(2, v.saveBtn, widget.NewButton("Import", v.chooseImport)),
			v.status,
		),
		nil, nil,
		container.NewVScroll(v.rows),
	)

	tabs := container.NewAppTabs(
		container.NewTabItem("Profit", profit),
		container.NewTabItem("Convert", convert),
		container.NewTabItem("Prices", editor),
	)
	return container.NewBorder(nil,
		widget.NewLabelWithStyle(hint, fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
		nil, nil, tabs)
}

func unitText(v float64) string {
	return trade.FormatAmount(v) + " " + trade.Unit
}

func (v *tradeView) recalc() {
	p := trade.Calculate(v.prices,
		trade.Leg{Item: v.sellItem.Selected, Quantity: trade.ParseQuantity(v.sellQty.Text)},
		trade.Leg{Item: v.buyItem.Selected, Quantity: trade.ParseQuantity(v.buyQty.Text)},
	)

	v.sellUnit.SetText(unitOrDash(p.SellUnit))
	v.buyUnit.SetText(unitOrDash(p.BuyUnit))
	v.sellTotal.SetText(unitText(p.SellTotal))
	v.buyTotal.SetText(unitText(p.BuyTotal))

	if p.Empty {
		v.result.SetText("Select items to calculate")
		v.indicator.SetText("")
		return
	}
	v.result.SetText(p.Signed())
	switch p.Status {
	case trade.StatusProfit:
		v.indicator.Importance = widget.SuccessImportance
	case trade.StatusLoss:
		v.indicator.Importance = widget.DangerImportance
	default:
		v.indicator.Importance = widget.WarningImportance
	}
	v.indicator.SetText(p.Status.Indicator())
}

func unitOrDash(v float64) string {
	if v <= 0 {
		return "-"
	}
	return unitText(v)
}

func (v *tradeView) shortName(name string) string {
	for _, c := range v.prices.Currencies() {
		if c.Name == name {
			return c.ShortName
		}
	}
	return ""
}

func (v *tradeView) convert() {
	if v.from.Selected == "" || v.to.Selected == "" || strings.TrimSpace(v.amount.Text) == "" {
		v.converted.SetText("")
		return
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(v.amount.Text), 64)
	if err != nil {
		v.converted.SetText("amount must be a number")
		return
	}
	res, err := trade.Convert(v.prices, v.shortName(v.from.Selected), v.shortName(v.to.Selected), amount)
	if err != nil {
		v.converted.SetText(err.Error())
		return
	}
	log.Conversion(res.From, res.To, res.Amount, res.Result)
	v.converted.SetText(res.String())
}

func (v *tradeView) rebuildEditor() {
	v.rows.RemoveAll()
	v.editors = map[string]*widget.Entry{}
	for _, c := range v.prices.Currencies() {
		e := widget.NewEntry()
		e.SetText(trade.FormatAmount(c.ExaltedValue))
		v.editors[c.Name] = e
		v.rows.Add(container.NewGridWithColumns(2, widget.NewLabel(c.Name), e))
	}
	v.rows.Refresh()
}

// refresh pushes a changed price list into every widget.
func (v *tradeView) refresh() {
	names := v.prices.Names()
	for _, s := range []*widget.Select{v.sellItem, v.buyItem, v.from, v.to} {
		s.Options = names
		s.Refresh()
		if !contains(names, s.Selected) {
			s.ClearSelected()
		}
	}
	v.rebuildEditor()
	v.recalc()
	v.convert()
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// save applies the editor fields and writes the price file. Nothing is
// applied if any field is invalid.
func (v *tradeView) save() error {
	cs := v.prices.Currencies()
	now := time.Now()
	for i, c := range cs {
		e, ok := v.editors[c.Name]
		if !ok {
			continue
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(e.Text), 64)
		if err != nil || val < 0 {
			err = fmt.Errorf("%s: %w", c.Name, trade.ErrInvalidPrice)
			v.status.SetText(err.Error())
			return err
		}
		if val != c.ExaltedValue {
			cs[i].ExaltedValue = val
			cs[i].LastUpdated = now
		}
	}
	if err := v.prices.Replace(cs); err != nil {
		v.status.SetText(err.Error())
		return err
	}
	if err := v.prices.Save(v.path); err != nil {
		log.Errorf("saving prices: %v", err)
		v.status.SetText("could not save: " + err.Error())
		return err
	}
	v.status.SetText("Prices saved")
	v.refresh()
	return nil
}

func (v *tradeView) chooseImport() {
	if v.win == nil {
		return
	}
	dialog.ShowFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		path := r.URI().Path()
		r.Close()
		v.importFile(path)
	}, v.win)
}

// importFile replaces the list from file and persists it.
func (v *tradeView) importFile(file string) error {
	n, err := v.prices.Import(file)
	if err != nil {
		log.Warnf("price import failed: %v", err)
		v.status.SetText("import failed: " + err.Error())
		return err
	}
	if err := v.prices.Save(v.path); err != nil {
		log.Errorf("saving prices: %v", err)
		v.status.SetText("could not save: " + err.Error())
		return err
	}
	v.status.SetText(fmt.Sprintf("Imported %d prices", n))
	v.refresh()
	return nil
}
