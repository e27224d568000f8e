package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangePct(t *testing.T) {
	closes := []float64{90, 95, 98, 99, 100, 104, 106, 103, 108, 110}

	got, err := ChangePct(closes, 5, 0, "change_pct(5d)")
	require.NoError(t, err)
	assert.Equal(t, 10.0, got)

	got, err = ChangePct(closes, 1, 0, "change_pct(1d)")
	require.NoError(t, err)
	assert.InDelta(t, (110.0-108.0)*100/108.0, got, 1e-9)

	got, err = ChangePct(closes, 1, 1, "change_pct(1d)")
	require.NoError(t, err)
	assert.InDelta(t, (108.0-103.0)*100/103.0, got, 1e-9)
}

func TestChangePct_ViaCall(t *testing.T) {
	bars := barsFromCloses(90, 95, 98, 99, 100, 104, 106, 103, 108, 110)

	call, err := NewCall("change_pct", []string{`"5d"`})
	require.NoError(t, err)

	v, err := Compute(bars, call)
	require.NoError(t, err)
	assert.Equal(t, 10.0, v.Num)
}

func TestChangePct_InsufficientData(t *testing.T) {
	_, err := ChangePct([]float64{1, 2, 3}, 3, 0, "change_pct(3d)")
	var insufficient *InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 4, insufficient.Need)
}

func TestChangePct_ZeroBase(t *testing.T) {
	_, err := ChangePct([]float64{0, 5}, 1, 0, "change_pct(1d)")
	assert.ErrorIs(t, err, ErrInvalidParam)
}
