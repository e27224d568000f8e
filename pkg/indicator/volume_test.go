package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOBV(t *testing.T) {
	bars := barsFromCloses(10, 11, 11, 9, 12)
	for i, v := range []float64{100, 200, 300, 400, 500} {
		bars[i].Volume = v
	}

	// +200 (up), 0 (flat), -400 (down), +500 (up)
	got, err := OBV(bars, 0, "obv")
	require.NoError(t, err)
	assert.Equal(t, 300.0, got)

	got, err = OBV(bars, 1, "obv")
	require.NoError(t, err)
	assert.Equal(t, -200.0, got)

	got, err = OBV(bars, 4, "obv")
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	_, err = OBV(bars, 5, "obv")
	var insufficient *InsufficientDataError
	assert.ErrorAs(t, err, &insufficient)
}
