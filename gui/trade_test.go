//go:build gui

package gui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"

	"tradetools/trade"
)

func newTestView(t *testing.T) *tradeView {
	t.Helper()
	test.NewTempApp(t)
	prices, err := trade.NewPriceList(trade.Defaults())
	if err != nil {
		t.Fatal(err)
	}
	return newTradeView(prices, filepath.Join(t.TempDir(), "prices.yaml"))
}

func TestTradeViewProfit(t *testing.T) {
	v := newTestView(t)
	if v.result.Text != "Select items to calculate" {
		t.Fatalf("initial result = %q", v.result.Text)
	}

	v.sellItem.SetSelected("Divine Orb")
	v.sellQty.SetText("2")
	v.buyItem.SetSelected("Chaos Orb")
	v.buyQty.SetText("1000")

	if v.sellTotal.Text != "800 Exalted Orbs" || v.buyTotal.Text != "500 Exalted Orbs" {
		t.Errorf("totals = %q / %q", v.sellTotal.Text, v.buyTotal.Text)
	}
	if v.result.Text != "+300 Exalted Orbs" || v.indicator.Text != "PROFIT" {
		t.Errorf("result = %q %q", v.result.Text, v.indicator.Text)
	}

	v.buyQty.SetText("2000")
	if v.result.Text != "-200 Exalted Orbs" || v.indicator.Text != "LOSS" {
		t.Errorf("loss result = %q %q", v.result.Text, v.indicator.Text)
	}
}

func TestTradeViewConvert(t *testing.T) {
	v := newTestView(t)

	v.from.SetSelected("Divine Orb")
	v.to.SetSelected("Chaos Orb")
	v.amount.SetText("3")
	if !strings.Contains(v.converted.Text, "3 divine = 2400 chaos") {
		t.Errorf("converted = %q", v.converted.Text)
	}

	v.amount.SetText("0")
	if v.converted.Text != trade.ErrInvalidAmount.Error() {
		t.Errorf("zero amount = %q", v.converted.Text)
	}
}

func TestTradeViewSave(t *testing.T) {
	v := newTestView(t)

	v.editors["Divine Orb"].SetText("410")
	test.Tap(v.saveBtn)

	if v.status.Text != "Prices saved" {
		t.Fatalf("status = %q", v.status.Text)
	}
	loaded, err := trade.Load(v.path)
	if err != nil {
		t.Fatal(err)
	}
	if p, _ := loaded.Price("Divine Orb"); p != 410 {
		t.Errorf("saved divine = %v", p)
	}
}

func TestTradeViewSaveRejectsBadPrice(t *testing.T) {
	v := newTestView(t)

	v.editors["Chaos Orb"].SetText("-3")
	if err := v.save(); err == nil {
		t.Fatal("expected an error")
	}
	if _, err := os.Stat(v.path); !os.IsNotExist(err) {
		t.Error("nothing should be written on a bad price")
	}
	if p, _ := v.prices.Price("Chaos Orb"); p != 0.5 {
		t.Errorf("chaos = %v, want unchanged 0.5", p)
	}
}

func TestTradeViewImport(t *testing.T) {
	v := newTestView(t)
	v.sellItem.SetSelected("Chaos Orb")
	file := filepath.Join(t.TempDir(), "export.json")
	if err := os.WriteFile(file, []byte(`{"Divine Orb": 390, "Regal Orb": 0.1}`), 0644); err != nil {
		t.Fatal(err)
	}

	if err := v.importFile(file); err != nil {
		t.Fatal(err)
	}
	if v.status.Text != "Imported 2 prices" {
		t.Errorf("status = %q", v.status.Text)
	}
	if len(v.sellItem.Options) != 2 || len(v.editors) != 2 {
		t.Errorf("options=%v editors=%d", v.sellItem.Options, len(v.editors))
	}
	if v.sellItem.Selected != "" {
		t.Errorf("removed item still selected: %q", v.sellItem.Selected)
	}
}
