// Package evaluator scores a session's per-sample classifications over
// trailing windows.
//
// For a window size w, sample i is eligible once i > w, and its window is the
// w predictions at indices (i-w, i]. None of these functions mutate their
// inputs.
package evaluator

import (
	"context"

	"github.com/jbeshir/expertise-predictor/data"
	"github.com/jbeshir/moonbird-auth-frontend/ctxlogrus"
	"github.com/pkg/errors"
)

var (
	// ErrDivisionUndefined is returned by WindowedAccuracy when the session
	// has no eligible index for the window size.
	ErrDivisionUndefined = errors.New("windowed accuracy undefined: no sample has a full window")
	ErrInvalidWindow     = errors.New("window size must be at least 1")
	ErrLengthMismatch    = errors.New("predictions are not aligned with session samples")
)

// Point is one sample of an accuracy curve.
type Point struct {
	Time  float64
	Ratio float64
}

type Curve struct {
	WindowSize int
	Points     []Point
}

// Interval is emitted by CorrectnessIntervals whenever windowed correctness
// flips, and once more for the final sample.
type Interval struct {
	// Duration is the time elapsed since the previous interval for the same
	// window size, or the absolute time for the first one.
	Duration    float64
	Correct     bool
	WindowIndex int
	WindowSize  int
	Index       int
}

// SegmentCorrect reports whether the stretch of time ending at this interval
// was correctly classified. Intervals record the state being entered, so the
// segment they close carries the opposite flag.
func (iv Interval) SegmentCorrect() bool {
	return !iv.Correct
}

// WindowedAccuracy returns the fraction of eligible samples whose window
// contains at least minSupport matching predictions. Each window is compared
// against the ground truth of the sample it ends on, not the session's
// expected class.
func WindowedAccuracy(predictions []data.Expertise, session *data.Session, windowSize int, minSupport float64) (float64, error) {
	if err := check(predictions, session, windowSize); err != nil {
		return 0, err
	}

	total := session.Len() - windowSize - 1
	if total <= 0 {
		return 0, errors.Wrapf(ErrDivisionUndefined, "window size %d, session length %d", windowSize, session.Len())
	}

	correct := 0
	for i := windowSize + 1; i < session.Len(); i++ {
		support := float64(countInWindow(predictions, i, windowSize, session.Samples[i].Class)) / float64(windowSize)
		if support >= minSupport {
			correct++
		}
	}

	return float64(correct) / float64(total), nil
}

// AccuracyCurve returns, per window size, the share of each eligible window
// matching the session's expected class against relative modeling time.
// Samples without a numeric relative time are logged and left out.
func AccuracyCurve(ctx context.Context, predictions []data.Expertise, session *data.Session, windowSizes []int) ([]Curve, error) {
	l := ctxlogrus.Get(ctx)

	for _, ws := range windowSizes {
		if err := check(predictions, session, ws); err != nil {
			return nil, err
		}
	}

	expected := session.SampleClass()
	curves := make([]Curve, 0, len(windowSizes))
	for _, ws := range windowSizes {
		curve := Curve{WindowSize: ws}
		for i := ws + 1; i < session.Len(); i++ {
			t, err := session.Samples[i].RelativeTime()
			if err != nil {
				l.Warnf("Skipping sample %d of %s: %s", i, session.ModelID, err)
				continue
			}
			curve.Points = append(curve.Points, Point{
				Time:  t,
				Ratio: float64(countInWindow(predictions, i, ws, expected)) / float64(ws),
			})
		}
		curves = append(curves, curve)
	}

	return curves, nil
}

// CorrectnessIntervals walks each window size's eligible samples and emits
// an Interval whenever windowed correctness against the session's expected
// class changes. The last eligible sample always emits, with its flag forced
// to the opposite of the previous interval so the closing segment keeps the
// previous state.
func CorrectnessIntervals(ctx context.Context, predictions []data.Expertise, session *data.Session, windowSizes []int, minSupport float64) ([]Interval, error) {
	l := ctxlogrus.Get(ctx)

	for _, ws := range windowSizes {
		if err := check(predictions, session, ws); err != nil {
			return nil, err
		}
	}

	expected := session.SampleClass()
	last := session.Len() - 1

	var intervals []Interval
	for wi, ws := range windowSizes {
		var previousTime *float64
		previousCorrect := false

		for i := ws + 1; i < session.Len(); i++ {
			t, err := session.Samples[i].RelativeTime()
			if err != nil {
				l.Warnf("Skipping sample %d of %s: %s", i, session.ModelID, err)
				continue
			}

			support := float64(countInWindow(predictions, i, ws, expected)) / float64(ws)
			correct := support >= minSupport
			if correct == previousCorrect && i != last {
				continue
			}
			if i == last {
				correct = !previousCorrect
			}

			duration := t
			if previousTime != nil {
				duration = t - *previousTime
			}
			intervals = append(intervals, Interval{
				Duration:    duration,
				Correct:     correct,
				WindowIndex: wi,
				WindowSize:  ws,
				Index:       i,
			})

			previousTime = &t
			previousCorrect = correct
		}
	}

	return intervals, nil
}

func check(predictions []data.Expertise, session *data.Session, windowSize int) error {
	if windowSize < 1 {
		return errors.Wrapf(ErrInvalidWindow, "got %d", windowSize)
	}
	if len(predictions) != session.Len() {
		return errors.Wrapf(ErrLengthMismatch, "%d predictions for %d samples", len(predictions), session.Len())
	}
	return nil
}

func countInWindow(predictions []data.Expertise, i, windowSize int, target data.Expertise) int {
	n := 0
	for j := i; j > i-windowSize; j-- {
		if predictions[j] == target {
			n++
		}
	}
	return n
}
