package trade

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"tradetools/log"
)

var ErrEmptyImport = errors.New("import contains no prices")

type priceFile struct {
	Currencies []Currency `yaml:"currencies"`
}

// ResolvePath picks the price file: the configured path, then
// TRADETOOLS_PRICES, then <user config dir>/tradetools/prices.yaml.
func ResolvePath(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	if env := os.Getenv("TRADETOOLS_PRICES"); env != "" {
		return env, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "tradetools", "prices.yaml"), nil
}

// Load reads the price file. A missing file yields the default list.
func Load(path string) (*PriceList, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewPriceList(Defaults())
	}
	if err != nil {
		return nil, fmt.Errorf("reading prices: %w", err)
	}
	cs, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("prices %s: %w", path, err)
	}
	return NewPriceList(cs)
}

// Decode accepts either the saved form (a currencies list) or a flat mapping
// of item name to price, which also covers JSON exports.
func Decode(data []byte) ([]Currency, error) {
	var f priceFile
	if err := yaml.Unmarshal(data, &f); err == nil && len(f.Currencies) > 0 {
		return f.Currencies, nil
	}

	var flat map[string]float64
	if err := yaml.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("invalid price data: %w", err)
	}
	if len(flat) == 0 {
		return nil, ErrEmptyImport
	}
	cs := make([]Currency, 0, len(flat))
	for name, v := range flat {
		cs = append(cs, Currency{Name: name, ExaltedValue: v})
	}
	sort.Slice(cs, func(i, j int) bool { return cs[i].Name < cs[j].Name })
	return cs, nil
}

// Save writes the list to path, creating the parent directory. The file is
// replaced atomically.
func (p *PriceList) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	cs := p.Currencies()
	data, err := yaml.Marshal(priceFile{Currencies: cs})
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	log.PricesSaved(path, len(cs))
	return nil
}

// Import replaces the list with the contents of file. On error the current
// list is kept.
func (p *PriceList) Import(file string) (int, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return 0, fmt.Errorf("reading import: %w", err)
	}
	cs, err := Decode(data)
	if err != nil {
		return 0, err
	}
	if err := p.Replace(cs); err != nil {
		return 0, err
	}
	log.Info(fmt.Sprintf("prices_imported: %d from %s", len(cs), file))
	return len(cs), nil
}
