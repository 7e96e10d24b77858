package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ResultsLogger persists comparisons under a timestamped directory: one
// JSON file per case plus a summary of the whole run.
type ResultsLogger struct {
	dir       string
	summaries []summaryEntry
}

type summaryEntry struct {
	RootID     int64   `json:"cat_id"`
	Depth      int     `json:"depth"`
	Iterations int     `json:"iterations"`
	Winner     string  `json:"winner"`
	Factor     float64 `json:"speed_factor"`
}

// NewResultsLogger creates the output directory for this run.
func NewResultsLogger(baseDir string) (*ResultsLogger, error) {
	dir := filepath.Join(baseDir, "benchmark_"+time.Now().Format("2006-01-02_15-04-05"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create results directory: %w", err)
	}
	return &ResultsLogger{dir: dir}, nil
}

// Dir returns the run's output directory.
func (l *ResultsLogger) Dir() string {
	return l.dir
}

// Save writes one comparison to its own file and records it for the
// summary.
func (l *ResultsLogger) Save(comparison Comparison) error {
	name := fmt.Sprintf("cat%d_depth%d.json", comparison.Case.RootID, comparison.Case.Depth)
	if err := writeJSON(filepath.Join(l.dir, name), comparison); err != nil {
		return fmt.Errorf("save comparison: %w", err)
	}

	l.summaries = append(l.summaries, summaryEntry{
		RootID:     comparison.Case.RootID,
		Depth:      comparison.Case.Depth,
		Iterations: comparison.Case.Iterations,
		Winner:     comparison.Winner,
		Factor:     comparison.Factor,
	})
	return nil
}

// SaveSummary writes the per-case digest for the whole run.
func (l *ResultsLogger) SaveSummary() error {
	if err := writeJSON(filepath.Join(l.dir, "summary.json"), l.summaries); err != nil {
		return fmt.Errorf("save summary: %w", err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
