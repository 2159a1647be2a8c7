package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/kickoff/config"
)

// OutputManager writes match telemetry to a run directory: match.csv,
// perf.csv and a snapshot of the config the run used. A nil manager is
// valid and discards everything.
type OutputManager struct {
	dir       string
	matchFile *os.File
	perfFile  *os.File

	matchHeaderWritten bool
	perfHeaderWritten  bool
}

// NewOutputManager creates the output directory and its files. An empty
// dir disables output and returns nil.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "match.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating match.csv: %w", err)
	}
	om.matchFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.matchFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the run's configuration snapshot.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteMatch appends a window stats row to match.csv.
func (om *OutputManager) WriteMatch(stats WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{stats}
	if !om.matchHeaderWritten {
		if err := gocsv.Marshal(records, om.matchFile); err != nil {
			return fmt.Errorf("writing match stats: %w", err)
		}
		om.matchHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.matchFile); err != nil {
		return fmt.Errorf("writing match stats: %w", err)
	}
	return nil
}

// WritePerf appends a perf row to perf.csv.
func (om *OutputManager) WritePerf(stats *PerfStats, tick int32) error {
	if om == nil {
		return nil
	}

	records := []PerfStatsCSV{stats.ToCSV(tick)}
	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf stats: %w", err)
		}
		om.perfHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
		return fmt.Errorf("writing perf stats: %w", err)
	}
	return nil
}

// Dir returns the output directory.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes the output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	if om.matchFile != nil {
		if err := om.matchFile.Close(); err != nil {
			firstErr = err
		}
	}
	if om.perfFile != nil {
		if err := om.perfFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
