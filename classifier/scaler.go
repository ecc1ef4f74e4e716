package classifier

import (
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

// scaler maps each feature onto [0,1] using the range seen in training.
// Constant features map to 0.
type scaler struct {
	Min []float64
	Max []float64
}

func fitScaler(x [][]float64) (*scaler, error) {
	if len(x) == 0 {
		return nil, errors.New("no vectors to fit scaler on")
	}

	width := len(x[0])
	sc := &scaler{
		Min: make([]float64, width),
		Max: make([]float64, width),
	}
	column := make(stats.Float64Data, len(x))
	for j := 0; j < width; j++ {
		for i, row := range x {
			if len(row) != width {
				return nil, errors.Errorf("vector %d has %d features, expected %d", i, len(row), width)
			}
			column[i] = row[j]
		}

		var err error
		if sc.Min[j], err = stats.Min(column); err != nil {
			return nil, errors.Wrapf(err, "feature %d", j)
		}
		if sc.Max[j], err = stats.Max(column); err != nil {
			return nil, errors.Wrapf(err, "feature %d", j)
		}
	}

	return sc, nil
}

func (sc *scaler) apply(v []float64) []float64 {
	out := make([]float64, len(v))
	for j, f := range v {
		span := sc.Max[j] - sc.Min[j]
		if span == 0 {
			continue
		}
		out[j] = (f - sc.Min[j]) / span
	}
	return out
}
