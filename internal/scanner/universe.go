package scanner

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// builtinUniverses are available without a universe file
var builtinUniverses = map[string][]string{
	"dow30": {
		"AAPL", "AMGN", "AMZN", "AXP", "BA", "CAT", "CRM", "CSCO", "CVX", "DIS",
		"GS", "HD", "HON", "IBM", "JNJ", "JPM", "KO", "MCD", "MMM", "MRK",
		"MSFT", "NKE", "NVDA", "PG", "SHW", "TRV", "UNH", "V", "VZ", "WMT",
	},
	"megacap": {
		"AAPL", "MSFT", "NVDA", "AMZN", "GOOGL", "META", "BRK-B", "AVGO", "TSLA", "LLY",
		"JPM", "V", "WMT", "XOM", "UNH",
	},
	"semis": {
		"NVDA", "AVGO", "AMD", "QCOM", "TXN", "INTC", "MU", "AMAT", "LRCX", "KLAC",
		"ADI", "MRVL", "NXPI", "MCHP", "ON",
	},
	"etfs": {
		"SPY", "QQQ", "IWM", "DIA", "XLK", "XLF", "XLE", "XLV", "XLI", "XLY",
		"XLP", "XLU", "XLB", "XLRE", "XLC", "GLD", "TLT",
	},
}

// universeFile is the YAML layout of a universe file:
//
//	universes:
//	  watchlist:
//	    description: my names
//	    symbols: [AAPL, MSFT]
type universeFile struct {
	Universes map[string]struct {
		Description string   `yaml:"description"`
		Symbols     []string `yaml:"symbols"`
	} `yaml:"universes"`
}

// Universes is a set of named symbol lists
type Universes struct {
	sets map[string][]string
}

// DefaultUniverses returns the built-in universes
func DefaultUniverses() *Universes {
	u := &Universes{sets: make(map[string][]string, len(builtinUniverses))}
	for name, symbols := range builtinUniverses {
		u.sets[name] = append([]string(nil), symbols...)
	}
	return u
}

// LoadUniverses returns the built-in universes overlaid with the ones defined
// in path. An empty path returns the built-ins only.
func LoadUniverses(path string) (*Universes, error) {
	u := DefaultUniverses()
	if path == "" {
		return u, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read universe file: %w", err)
	}
	if err := u.merge(raw); err != nil {
		return nil, fmt.Errorf("failed to parse universe file %s: %w", path, err)
	}
	return u, nil
}

func (u *Universes) merge(raw []byte) error {
	var file universeFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return err
	}
	for name, def := range file.Universes {
		symbols := normalizeSymbols(def.Symbols)
		if len(symbols) == 0 {
			return fmt.Errorf("universe %q has no symbols", name)
		}
		u.sets[strings.ToLower(name)] = symbols
	}
	return nil
}

// Get returns a copy of the named universe
func (u *Universes) Get(name string) ([]string, error) {
	symbols, ok := u.sets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown universe %q (available: %s)", name, strings.Join(u.Names(), ", "))
	}
	return append([]string(nil), symbols...), nil
}

// Names returns the sorted universe names
func (u *Universes) Names() []string {
	names := make([]string, 0, len(u.sets))
	for name := range u.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Limit returns the first n symbols; n <= 0 returns all of them
func Limit(symbols []string, n int) []string {
	if n <= 0 || n >= len(symbols) {
		return symbols
	}
	return symbols[:n]
}

// normalizeSymbols upper-cases, trims and de-duplicates symbols, keeping first occurrence order
func normalizeSymbols(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// ParseSymbols splits a comma separated symbol list
func ParseSymbols(list string) []string {
	return normalizeSymbols(strings.Split(list, ","))
}
