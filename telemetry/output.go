package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
)

// OutputManager writes windowed stats to CSV under a per-run directory.
type OutputManager struct {
	dir   string
	runID uuid.UUID

	statsFile     *os.File
	headerWritten bool
}

// NewOutputManager creates the run directory and opens the stats file.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	runID := uuid.New()
	runDir := filepath.Join(dir, runID.String())
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(runDir, "stats.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating stats.csv: %w", err)
	}

	return &OutputManager{dir: runDir, runID: runID, statsFile: f}, nil
}

// RunID returns the run's unique identifier.
func (om *OutputManager) RunID() uuid.UUID { return om.runID }

// Dir returns the per-run output directory.
func (om *OutputManager) Dir() string { return om.dir }

// WriteStats appends one window's stats row, emitting the header first.
func (om *OutputManager) WriteStats(ws WindowStats) error {
	rows := []WindowStats{ws}
	if !om.headerWritten {
		if err := gocsv.MarshalFile(&rows, om.statsFile); err != nil {
			return fmt.Errorf("writing stats header: %w", err)
		}
		om.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(&rows, om.statsFile); err != nil {
		return fmt.Errorf("appending stats: %w", err)
	}
	return nil
}

// Close flushes and closes the output files.
func (om *OutputManager) Close() error {
	if om.statsFile != nil {
		return om.statsFile.Close()
	}
	return nil
}
