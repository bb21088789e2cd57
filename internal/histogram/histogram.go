// Package histogram turns an ordered gating decision sequence into the
// per-threshold duty-cycle and shutter-rate table consumed by plotting and
// the DB ingester.
package histogram

import (
	"errors"

	"github.com/mwgeurts/viewray-decisionlogs/internal/gating"
)

// ErrNoDecisions is returned when the collector produced nothing to
// aggregate, either because no logs matched or the time window excluded
// every record.
var ErrNoDecisions = errors.New("no gating decisions to aggregate")

// NumBins covers every integer ROI threshold from 0 to 100 percent.
const NumBins = 101

// DefaultSamplingHz is the gating subsystem's decision reporting frequency.
// The shutter rate formula scales the per-sequence transition count by this
// constant; override it via Options if the hardware reports differently.
const DefaultSamplingHz = 4.0

// Bin is one row of the output table.
type Bin struct {
	Threshold     int     `json:"threshold_pct"`
	DutyCyclePct  float64 `json:"duty_cycle_pct"`
	ShutterPerMin float64 `json:"shutter_per_min"`
}

type Options struct {
	SamplingHz float64 // <= 0 -> DefaultSamplingHz
}

// Compute builds the 101-bin table. For each threshold t, DutyCyclePct is the
// percentage of decisions whose fraction-out (on the 0..100 scale) is at most
// t, and ShutterPerMin estimates beam-shutter closing transitions per minute
// were the gating boundary set at t. The decision sequence is treated as
// circular, so the transition count is rotation invariant; input order must
// therefore already be the order the caller wants counted.
func Compute(decisions []gating.Decision, opt Options) ([]Bin, error) {
	n := len(decisions)
	if n == 0 {
		return nil, ErrNoDecisions
	}
	hz := opt.SamplingHz
	if hz <= 0 {
		hz = DefaultSamplingHz
	}

	pct := make([]float64, n)
	for i, d := range decisions {
		pct[i] = d.FractionOut * 100
	}

	bins := make([]Bin, NumBins)
	for t := 0; t < NumBins; t++ {
		ft := float64(t)
		var within, closing int
		for i := 0; i < n; i++ {
			if pct[i] <= ft {
				within++
			}
			// A closing edge: fraction above threshold here, at or below it
			// at the next position, wrapping at the end of the sequence.
			next := pct[(i+1)%n]
			if pct[i] > ft && next <= ft {
				closing++
			}
		}
		bins[t] = Bin{
			Threshold:     t,
			DutyCyclePct:  100 * float64(within) / float64(n),
			ShutterPerMin: float64(closing) * hz * 60 / float64(n),
		}
	}
	return bins, nil
}
