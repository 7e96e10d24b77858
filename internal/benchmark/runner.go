package benchmark

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pedigraph/internal/ancestry"
)

// Subject is one named traversal backend under measurement.
type Subject struct {
	Name      string
	Traverser ancestry.Traverser
}

// Case is one measurement: a root cat, a depth bound, and how many times
// to repeat the query.
type Case struct {
	RootID     int64 `json:"cat_id"`
	Depth      int   `json:"depth"`
	Iterations int   `json:"iterations"`
}

// Stats summarizes one subject's execution times. Min, max, avg, and
// median are computed on the outlier-trimmed sample; Times keeps the raw
// measurements in seconds.
type Stats struct {
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
	Avg    float64   `json:"avg"`
	Median float64   `json:"median"`
	Times  []float64 `json:"times"`
}

// Comparison is the outcome of running one case against two subjects.
type Comparison struct {
	RunID     string           `json:"run_id"`
	Timestamp time.Time        `json:"timestamp"`
	Case      Case             `json:"params"`
	Results   map[string]Stats `json:"results"`
	Winner    string           `json:"winner"`
	Factor    float64          `json:"factor"`
}

// DefaultCases mirrors the standard depth tiers: shallow depths run often,
// pathological depths only a couple of times.
func DefaultCases(rootID int64) []Case {
	tiers := []struct {
		depths     []int
		iterations int
	}{
		{[]int{1, 2, 3, 4, 5}, 50},
		{[]int{6, 7, 8, 9, 10}, 25},
		{[]int{20, 50}, 10},
		{[]int{100, 500, 1000}, 2},
	}

	var cases []Case
	for _, tier := range tiers {
		for _, depth := range tier.depths {
			cases = append(cases, Case{RootID: rootID, Depth: depth, Iterations: tier.iterations})
		}
	}
	return cases
}

// Runner times ancestry queries across backends.
type Runner struct {
	log *zap.Logger
}

// NewRunner creates a runner.
func NewRunner(log *zap.Logger) *Runner {
	return &Runner{log: log}
}

// Compare runs one case against both subjects and reports per-subject
// statistics plus which one won and by what factor.
func (r *Runner) Compare(ctx context.Context, a, b Subject, c Case) (Comparison, error) {
	timesA, err := r.time(ctx, a, c)
	if err != nil {
		return Comparison{}, fmt.Errorf("time %s: %w", a.Name, err)
	}
	timesB, err := r.time(ctx, b, c)
	if err != nil {
		return Comparison{}, fmt.Errorf("time %s: %w", b.Name, err)
	}

	statsA := Summarize(timesA)
	statsB := Summarize(timesB)

	winner, factor := pickWinner(a.Name, statsA.Avg, b.Name, statsB.Avg)

	r.log.Info("benchmark case finished",
		zap.Int64("root_id", c.RootID),
		zap.Int("depth", c.Depth),
		zap.String("winner", winner),
		zap.Float64("factor", factor))

	return Comparison{
		RunID:     uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Case:      c,
		Results: map[string]Stats{
			a.Name: statsA,
			b.Name: statsB,
		},
		Winner: winner,
		Factor: factor,
	}, nil
}

func (r *Runner) time(ctx context.Context, subject Subject, c Case) ([]time.Duration, error) {
	times := make([]time.Duration, 0, c.Iterations)
	for i := 0; i < c.Iterations; i++ {
		start := time.Now()
		if _, err := subject.Traverser.Ancestors(ctx, c.RootID, c.Depth); err != nil {
			return nil, fmt.Errorf("iteration %d: %w", i+1, err)
		}
		times = append(times, time.Since(start))
	}
	return times, nil
}

func pickWinner(nameA string, avgA float64, nameB string, avgB float64) (string, float64) {
	if avgA <= 0 || avgB <= 0 {
		return "", 0
	}
	if avgA < avgB {
		return nameA, avgB / avgA
	}
	return nameB, avgA / avgB
}

// TrimOutliers returns a sorted copy of times with the extremes removed:
// ceil(10%) from each end for ten or more samples, one from each end for
// five to nine samples, nothing below that.
func TrimOutliers(times []time.Duration) []time.Duration {
	sorted := make([]time.Duration, len(times))
	copy(sorted, times)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	switch {
	case len(sorted) >= 10:
		remove := int(math.Ceil(float64(len(sorted)) * 0.1))
		return sorted[remove : len(sorted)-remove]
	case len(sorted) >= 5:
		return sorted[1 : len(sorted)-1]
	default:
		return sorted
	}
}

// Summarize computes trimmed statistics over the raw measurements.
func Summarize(times []time.Duration) Stats {
	if len(times) == 0 {
		return Stats{Times: []float64{}}
	}

	trimmed := TrimOutliers(times)

	var sum float64
	for _, t := range trimmed {
		sum += t.Seconds()
	}

	var median float64
	mid := len(trimmed) / 2
	if len(trimmed)%2 == 0 {
		median = (trimmed[mid-1].Seconds() + trimmed[mid].Seconds()) / 2
	} else {
		median = trimmed[mid].Seconds()
	}

	raw := make([]float64, len(times))
	for i, t := range times {
		raw[i] = t.Seconds()
	}

	return Stats{
		Min:    trimmed[0].Seconds(),
		Max:    trimmed[len(trimmed)-1].Seconds(),
		Avg:    sum / float64(len(trimmed)),
		Median: median,
		Times:  raw,
	}
}
