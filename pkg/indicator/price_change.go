package indicator

import (
	"fmt"
)

// ChangePct returns the percent change of close between offset and offset+days
func ChangePct(closes []float64, days, offset int, name string) (float64, error) {
	end, err := endIndex(len(closes), offset, days+1, name)
	if err != nil {
		return 0, err
	}

	base := closes[end-days]
	if base == 0 {
		return 0, fmt.Errorf("%s: base close is zero: %w", name, ErrInvalidParam)
	}

	return (closes[end] - base) * 100 / base, nil
}
