package organizer

import "time"

// Outcome is what happened to a file during a run.
type Outcome string

const (
	OutcomeMoved   Outcome = "moved"
	OutcomePlanned Outcome = "planned"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// ItemResult records the handling of a single file.
type ItemResult struct {
	Name        string   `json:"name"`
	Size        int64    `json:"size"`
	Decision    Decision `json:"decision"`
	Outcome     Outcome  `json:"outcome"`
	CrossDevice bool     `json:"cross_device,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// Summary aggregates the outcomes of a run.
type Summary struct {
	Moved   int   `json:"moved"`
	Planned int   `json:"planned"`
	Skipped int   `json:"skipped"`
	Failed  int   `json:"failed"`
	Bytes   int64 `json:"bytes"`
}

// Report describes one organizer run.
type Report struct {
	RunID      string       `json:"run_id"`
	Source     string       `json:"source"`
	DryRun     bool         `json:"dry_run"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Items      []ItemResult `json:"items"`
	Summary    Summary      `json:"summary"`
}

// HasFailures reports whether any file failed.
func (r *Report) HasFailures() bool {
	return r != nil && r.Summary.Failed > 0
}

// Duration returns the wall time of the run.
func (r *Report) Duration() time.Duration {
	if r == nil || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

func (r *Report) add(item ItemResult) {
	r.Items = append(r.Items, item)
	switch item.Outcome {
	case OutcomeMoved:
		r.Summary.Moved++
		r.Summary.Bytes += item.Size
	case OutcomePlanned:
		r.Summary.Planned++
		r.Summary.Bytes += item.Size
	case OutcomeSkipped:
		r.Summary.Skipped++
	case OutcomeFailed:
		r.Summary.Failed++
	}
}

func (r *Report) finish() {
	r.FinishedAt = time.Now().UTC()
}
