// Package metadata provides run provenance information attached to every
// consolidated dataset and summary report.
package metadata

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EngineVersion is stamped into every output so datasets can be traced back
// to the engine build that produced them.
const EngineVersion = "1.2.0"

// RunInfo identifies one consolidation run.
type RunInfo struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Engine      string    `json:"engine"`
	Version     string    `json:"version"`
}

// NewRun creates provenance info for a fresh run.
func NewRun() *RunInfo {
	return &RunInfo{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Engine:      "foreclosed-consolidator",
		Version:     EngineVersion,
	}
}

// String returns a one-line human readable form for log output.
func (r *RunInfo) String() string {
	return fmt.Sprintf("run %s (%s %s, %s)",
		r.RunID, r.Engine, r.Version, r.GeneratedAt.Format(time.RFC3339))
}
