package indicator

import (
	"sort"
)

// Kind identifies a built-in indicator.
// Adding an indicator means adding a Kind, its entry in specs and its case in Compute.
type Kind int

const (
	KindPrice Kind = iota
	KindOpen
	KindHigh
	KindLow
	KindVolume
	KindRSI
	KindMACD
	KindMACDSignal
	KindSMA
	KindEMA
	KindChangePct
	KindBBUpper
	KindBBMiddle
	KindBBLower
	KindATR
	KindOBV

	numKinds
)

// spec describes the DSL surface of one indicator kind
type spec struct {
	name     string
	result   ValueKind
	required int
	defaults []string // defaults for the optional params that follow the required ones
}

var specs = [numKinds]spec{
	KindPrice:      {name: "price", result: Numeric},
	KindOpen:       {name: "open", result: Numeric},
	KindHigh:       {name: "high", result: Numeric},
	KindLow:        {name: "low", result: Numeric},
	KindVolume:     {name: "volume", result: Numeric},
	KindRSI:        {name: "rsi", result: Numeric, defaults: []string{"14"}},
	KindMACD:       {name: "macd", result: Numeric, defaults: []string{"12", "26"}},
	KindMACDSignal: {name: "macd_signal", result: Text, defaults: []string{"12", "26", "9"}},
	KindSMA:        {name: "sma", result: Numeric, required: 1},
	KindEMA:        {name: "ema", result: Numeric, required: 1},
	KindChangePct:  {name: "change_pct", result: Numeric, defaults: []string{"1d"}},
	KindBBUpper:    {name: "bb_upper", result: Numeric, defaults: []string{"20", "2"}},
	KindBBMiddle:   {name: "bb_middle", result: Numeric, defaults: []string{"20"}},
	KindBBLower:    {name: "bb_lower", result: Numeric, defaults: []string{"20", "2"}},
	KindATR:        {name: "atr", result: Numeric, defaults: []string{"14"}},
	KindOBV:        {name: "obv", result: Numeric},
}

var byName = func() map[string]Kind {
	m := make(map[string]Kind, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		m[specs[k].name] = k
	}
	return m
}()

// Lookup resolves an indicator name to its Kind
func Lookup(name string) (Kind, error) {
	kind, ok := byName[name]
	if !ok {
		return 0, &UnknownIndicatorError{Name: name}
	}
	return kind, nil
}

// Kinds returns every built-in kind in declaration order
func Kinds() []Kind {
	kinds := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Names returns the sorted names of all built-in indicators
func Names() []string {
	names := make([]string, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		names = append(names, specs[k].name)
	}
	sort.Strings(names)
	return names
}

// String returns the DSL name of the kind
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "unknown"
	}
	return specs[k].name
}

// Result returns the static type produced by the kind
func (k Kind) Result() ValueKind {
	return specs[k].result
}

// MinParams returns the number of parameters the kind requires
func (k Kind) MinParams() int {
	return specs[k].required
}

// MaxParams returns the number of parameters the kind accepts
func (k Kind) MaxParams() int {
	return specs[k].required + len(specs[k].defaults)
}

// Defaults returns a copy of the default values of the optional params
func (k Kind) Defaults() []string {
	return append([]string(nil), specs[k].defaults...)
}
