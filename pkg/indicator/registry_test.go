package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	kind, err := Lookup("rsi")
	require.NoError(t, err)
	assert.Equal(t, KindRSI, kind)
	assert.Equal(t, "rsi", kind.String())

	_, err = Lookup("stochastic")
	var unknown *UnknownIndicatorError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "stochastic", unknown.Name)
}

func TestRegistry_EveryKindHasSpec(t *testing.T) {
	seen := make(map[string]bool)
	for _, kind := range Kinds() {
		name := kind.String()
		assert.NotEmpty(t, name, "kind %d has no name", int(kind))
		assert.False(t, seen[name], "duplicate name %q", name)
		seen[name] = true

		back, err := Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, kind, back)
		assert.GreaterOrEqual(t, kind.MaxParams(), kind.MinParams())
	}
	assert.Len(t, Names(), len(Kinds()))
}

func TestRegistry_ResultTypes(t *testing.T) {
	assert.Equal(t, Text, KindMACDSignal.Result())
	for _, kind := range Kinds() {
		if kind != KindMACDSignal {
			assert.Equal(t, Numeric, kind.Result(), kind.String())
		}
	}
}

// TestCompute_EveryKind guards the Compute switch: a new Kind without a case fails here.
func TestCompute_EveryKind(t *testing.T) {
	bars := barsFromCloses(linearCloses(120, 100, 0.5)...)
	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			var params []string
			for i := 0; i < kind.MinParams(); i++ {
				params = append(params, "10")
			}
			call, err := NewCall(kind.String(), params)
			require.NoError(t, err)

			v, err := Compute(bars, call)
			require.NoError(t, err)
			assert.Equal(t, kind.Result(), v.Kind)
		})
	}
}

func TestNewCall_ParamCounts(t *testing.T) {
	_, err := NewCall("sma", nil)
	assert.ErrorIs(t, err, ErrInvalidParam)

	_, err = NewCall("rsi", []string{"14", "2"})
	assert.ErrorIs(t, err, ErrInvalidParam)

	_, err = NewCall("obv", []string{"1"})
	assert.ErrorIs(t, err, ErrInvalidParam)

	_, err = NewCall("sma", []string{"abc"})
	var parseErr *ValueParseError
	assert.ErrorAs(t, err, &parseErr)

	_, err = NewCall("sma", []string{"0"})
	assert.ErrorIs(t, err, ErrInvalidParam)

	_, err = NewCall("bb_upper", []string{"20", `"wide"`})
	assert.Error(t, err)

	call, err := NewCall("macd", []string{"5"})
	require.NoError(t, err)
	assert.Equal(t, "macd(5,26)", call.Label())
}

func TestCall_Label(t *testing.T) {
	tests := []struct {
		name   string
		params []string
		want   string
	}{
		{"price", nil, "price"},
		{"rsi", nil, "rsi(14)"},
		{"rsi", []string{"7"}, "rsi(7)"},
		{"sma", []string{"50"}, "sma(50)"},
		{"change_pct", []string{`"5d"`}, "change_pct(5d)"},
		{"change_pct", nil, "change_pct(1d)"},
		{"bb_lower", []string{"10"}, "bb_lower(10,2)"},
		{"macd_signal", nil, "macd_signal(12,26,9)"},
	}

	for _, tt := range tests {
		call, err := NewCall(tt.name, tt.params)
		require.NoError(t, err)
		assert.Equal(t, tt.want, call.Label())
	}
}

func TestCompute_BarFields(t *testing.T) {
	bars := barsFromCloses(10, 11, 12)
	bars[2].Volume = 4200

	for _, tc := range []struct {
		name   string
		offset int
		want   float64
	}{
		{"price", 0, 12},
		{"price", 2, 10},
		{"high", 0, 13},
		{"low", 1, 10},
		{"open", 0, 12},
		{"volume", 0, 4200},
	} {
		call, err := NewCall(tc.name, nil)
		require.NoError(t, err)

		v, err := Compute(bars, call.At(tc.offset))
		require.NoError(t, err)
		assert.Equal(t, tc.want, v.Num, "%s@%d", tc.name, tc.offset)
	}

	call, _ := NewCall("price", nil)
	_, err := Compute(bars, call.At(3))
	var insufficient *InsufficientDataError
	assert.ErrorAs(t, err, &insufficient)
}

func TestCompute_RejectsInvalidCalls(t *testing.T) {
	bars := barsFromCloses(linearCloses(60, 100, 1)...)

	tests := []struct {
		name string
		call Call
		want error
	}{
		{name: "negative offset", call: Call{Kind: KindSMA, Params: []string{"5"}, Offset: -1}, want: ErrInvalidParam},
		{name: "missing period", call: Call{Kind: KindSMA}, want: ErrInvalidParam},
		{name: "too many params", call: Call{Kind: KindRSI, Params: []string{"14", "2"}}, want: ErrInvalidParam},
		{name: "malformed period", call: Call{Kind: KindEMA, Params: []string{"abc"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(bars, tt.call)
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
			assert.EqualError(t, tt.call.Validate(), err.Error())
		})
	}

	_, err := Compute(bars, Call{Kind: numKinds})
	var unknown *UnknownIndicatorError
	assert.ErrorAs(t, err, &unknown)
}
