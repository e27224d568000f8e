package indicator

import (
	"fmt"
	"strings"

	"github.com/mohamedkhairy/stock-alerts/internal/models"
)

// Call is one indicator invocation: a kind, its raw parameter tokens and
// the bar offset counted back from the most recent bar (0 = current bar)
type Call struct {
	Kind   Kind
	Params []string
	Offset int
}

// NewCall resolves name and checks the parameter list against the kind
func NewCall(name string, params []string) (Call, error) {
	kind, err := Lookup(name)
	if err != nil {
		return Call{}, err
	}

	call := Call{Kind: kind, Params: params}
	if err := call.Validate(); err != nil {
		return Call{}, err
	}
	return call, nil
}

// At returns a copy of the call evaluated at another offset
func (c Call) At(offset int) Call {
	c.Offset = offset
	return c
}

// Validate checks parameter count and parses every parameter once
func (c Call) Validate() error {
	_, err := c.check()
	return err
}

// check validates the call and returns its parsed parameters
func (c Call) check() (args, error) {
	if c.Kind < 0 || c.Kind >= numKinds {
		return args{}, &UnknownIndicatorError{Name: fmt.Sprintf("kind(%d)", int(c.Kind))}
	}
	if c.Offset < 0 {
		return args{}, fmt.Errorf("%s: offset must be non-negative, got %d: %w", c.Kind, c.Offset, ErrInvalidParam)
	}
	if len(c.Params) < c.Kind.MinParams() {
		return args{}, fmt.Errorf("%s requires %d parameter(s), got %d: %w", c.Kind, c.Kind.MinParams(), len(c.Params), ErrInvalidParam)
	}
	if len(c.Params) > c.Kind.MaxParams() {
		return args{}, fmt.Errorf("%s accepts at most %d parameter(s), got %d: %w", c.Kind, c.Kind.MaxParams(), len(c.Params), ErrInvalidParam)
	}
	return c.resolve()
}

// effectiveParams returns the given params followed by defaults for the missing ones
func (c Call) effectiveParams() []string {
	params := append([]string(nil), c.Params...)
	defaults := specs[c.Kind].defaults
	if skip := len(params) - c.Kind.MinParams(); skip < len(defaults) {
		if skip < 0 {
			skip = 0
		}
		params = append(params, defaults[skip:]...)
	}
	return params
}

// Label renders the call with defaults applied, e.g. "rsi(14)"
func (c Call) Label() string {
	params := c.effectiveParams()
	if len(params) == 0 {
		return c.Kind.String()
	}
	for i, p := range params {
		params[i] = unquote(strings.TrimSpace(p))
	}
	return fmt.Sprintf("%s(%s)", c.Kind, strings.Join(params, ","))
}

// args holds the parsed parameters of a call
type args struct {
	periods []int
	factor  float64
}

func (c Call) resolve() (args, error) {
	params := c.effectiveParams()
	var a args

	switch c.Kind {
	case KindChangePct:
		days, err := ParsePeriod(params[0])
		if err != nil {
			return a, err
		}
		a.periods = []int{days}
	case KindBBUpper, KindBBLower:
		period, err := parseWindow(params[0])
		if err != nil {
			return a, err
		}
		factor, err := ParseValue(unquote(strings.TrimSpace(params[1])))
		if err != nil {
			return a, err
		}
		if !factor.IsNumeric() || factor.Num < 0 {
			return a, fmt.Errorf("%s: stddev multiplier must be a non-negative number: %w", c.Kind, ErrInvalidParam)
		}
		if period < 2 {
			return a, fmt.Errorf("%s: period must be at least 2: %w", c.Kind, ErrInvalidParam)
		}
		a.periods = []int{period}
		a.factor = factor.Num
	default:
		for _, p := range params {
			period, err := parseWindow(p)
			if err != nil {
				return a, err
			}
			a.periods = append(a.periods, period)
		}
	}

	return a, nil
}

// Compute evaluates the call against bars (oldest first)
func Compute(bars []models.Bar, c Call) (Value, error) {
	a, err := c.check()
	if err != nil {
		return Value{}, err
	}

	name := c.Label()
	switch c.Kind {
	case KindPrice:
		return barField(bars, c.Offset, name, func(b models.Bar) float64 { return b.Close })
	case KindOpen:
		return barField(bars, c.Offset, name, func(b models.Bar) float64 { return b.Open })
	case KindHigh:
		return barField(bars, c.Offset, name, func(b models.Bar) float64 { return b.High })
	case KindLow:
		return barField(bars, c.Offset, name, func(b models.Bar) float64 { return b.Low })
	case KindVolume:
		return barField(bars, c.Offset, name, func(b models.Bar) float64 { return b.Volume })
	case KindRSI:
		return numeric(RSI(closes(bars), a.periods[0], c.Offset, name))
	case KindMACD:
		return numeric(MACD(closes(bars), a.periods[0], a.periods[1], c.Offset, name))
	case KindMACDSignal:
		trend, err := MACDSignal(closes(bars), a.periods[0], a.periods[1], a.periods[2], c.Offset, name)
		if err != nil {
			return Value{}, err
		}
		return String(trend), nil
	case KindSMA:
		return numeric(SMA(bars, a.periods[0], c.Offset, name))
	case KindEMA:
		return numeric(EMA(closes(bars), a.periods[0], c.Offset, name))
	case KindChangePct:
		return numeric(ChangePct(closes(bars), a.periods[0], c.Offset, name))
	case KindBBUpper:
		return numeric(BollingerBand(closes(bars), a.periods[0], a.factor, c.Offset, name))
	case KindBBMiddle:
		return numeric(BollingerBand(closes(bars), a.periods[0], 0, c.Offset, name))
	case KindBBLower:
		return numeric(BollingerBand(closes(bars), a.periods[0], -a.factor, c.Offset, name))
	case KindATR:
		return numeric(ATR(bars, a.periods[0], c.Offset, name))
	case KindOBV:
		return numeric(OBV(bars, c.Offset, name))
	}

	return Value{}, &UnknownIndicatorError{Name: c.Kind.String()}
}

func numeric(f float64, err error) (Value, error) {
	if err != nil {
		return Value{}, err
	}
	return Number(f), nil
}

func barField(bars []models.Bar, offset int, name string, field func(models.Bar) float64) (Value, error) {
	end, err := endIndex(len(bars), offset, 1, name)
	if err != nil {
		return Value{}, err
	}
	return Number(field(bars[end])), nil
}
