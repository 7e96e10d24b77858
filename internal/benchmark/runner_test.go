package benchmark

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pedigraph/internal/ancestry"
	"pedigraph/internal/domain"
	"pedigraph/pkg/logger"
)

func durations(ms ...int) []time.Duration {
	out := make([]time.Duration, len(ms))
	for i, m := range ms {
		out[i] = time.Duration(m) * time.Millisecond
	}
	return out
}

func TestTrimOutliersSmallSampleKeptWhole(t *testing.T) {
	trimmed := TrimOutliers(durations(5, 1, 3))
	require.Equal(t, durations(1, 3, 5), trimmed)
}

func TestTrimOutliersMidSampleDropsOneEachSide(t *testing.T) {
	trimmed := TrimOutliers(durations(9, 1, 5, 3, 7))
	require.Equal(t, durations(3, 5, 7), trimmed)
}

func TestTrimOutliersLargeSampleDropsTenPercent(t *testing.T) {
	// 12 samples: ceil(1.2) = 2 removed from each end.
	trimmed := TrimOutliers(durations(12, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11))
	require.Len(t, trimmed, 8)
	require.Equal(t, durations(3, 4, 5, 6, 7, 8, 9, 10), trimmed)
}

func TestTrimOutliersBoundaryAtTen(t *testing.T) {
	// Exactly 10 samples: ceil(1.0) = 1 removed from each end.
	trimmed := TrimOutliers(durations(10, 1, 2, 3, 4, 5, 6, 7, 8, 9))
	require.Len(t, trimmed, 8)
	require.Equal(t, time.Duration(2)*time.Millisecond, trimmed[0])
	require.Equal(t, time.Duration(9)*time.Millisecond, trimmed[len(trimmed)-1])
}

func TestSummarizeStats(t *testing.T) {
	stats := Summarize(durations(1000, 2000, 3000, 4000))

	require.InDelta(t, 1.0, stats.Min, 1e-9)
	require.InDelta(t, 4.0, stats.Max, 1e-9)
	require.InDelta(t, 2.5, stats.Avg, 1e-9)
	require.InDelta(t, 2.5, stats.Median, 1e-9)
	require.Len(t, stats.Times, 4)
}

func TestSummarizeEmpty(t *testing.T) {
	stats := Summarize(nil)
	require.Empty(t, stats.Times)
	require.Zero(t, stats.Avg)
}

func TestPickWinner(t *testing.T) {
	winner, factor := pickWinner("postgres", 0.2, "neo4j", 0.1)
	require.Equal(t, "neo4j", winner)
	require.InDelta(t, 2.0, factor, 1e-9)

	winner, factor = pickWinner("postgres", 0.1, "neo4j", 0.3)
	require.Equal(t, "postgres", winner)
	require.InDelta(t, 3.0, factor, 1e-9)
}

func TestCompareAgainstMemoryBackends(t *testing.T) {
	require.NoError(t, logger.Init("test"))

	pedigree := []domain.Cat{
		{ID: 1, Father: domain.RefFromStorage(2), Mother: domain.RefFromStorage(3)},
		{ID: 2}, {ID: 3},
	}
	trav := ancestry.NewMemoryTraverser(pedigree)

	runner := NewRunner(logger.Get())
	comparison, err := runner.Compare(context.Background(),
		Subject{Name: "postgres", Traverser: trav},
		Subject{Name: "neo4j", Traverser: trav},
		Case{RootID: 1, Depth: 3, Iterations: 5},
	)
	require.NoError(t, err)

	require.NotEmpty(t, comparison.RunID)
	require.Len(t, comparison.Results, 2)
	require.Len(t, comparison.Results["postgres"].Times, 5)
	require.Contains(t, []string{"postgres", "neo4j"}, comparison.Winner)
	require.GreaterOrEqual(t, comparison.Factor, 1.0)
}

func TestDefaultCasesTiers(t *testing.T) {
	cases := DefaultCases(2)

	require.Len(t, cases, 13)
	require.Equal(t, Case{RootID: 2, Depth: 1, Iterations: 50}, cases[0])
	require.Equal(t, Case{RootID: 2, Depth: 1000, Iterations: 2}, cases[len(cases)-1])
}

func TestResultsLoggerRoundTrip(t *testing.T) {
	base := t.TempDir()
	resLogger, err := NewResultsLogger(base)
	require.NoError(t, err)

	comparison := Comparison{
		RunID:  "run-1",
		Case:   Case{RootID: 2, Depth: 5, Iterations: 10},
		Winner: "neo4j",
		Factor: 1.8,
		Results: map[string]Stats{
			"postgres": {Avg: 0.2, Times: []float64{0.2}},
			"neo4j":    {Avg: 0.1, Times: []float64{0.1}},
		},
	}
	require.NoError(t, resLogger.Save(comparison))
	require.NoError(t, resLogger.SaveSummary())

	var loaded Comparison
	payload, err := os.ReadFile(filepath.Join(resLogger.Dir(), "cat2_depth5.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(payload, &loaded))
	require.Equal(t, comparison.Winner, loaded.Winner)
	require.Equal(t, comparison.Case, loaded.Case)

	var summary []map[string]any
	payload, err = os.ReadFile(filepath.Join(resLogger.Dir(), "summary.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(payload, &summary))
	require.Len(t, summary, 1)
	require.Equal(t, "neo4j", summary[0]["winner"])
}
