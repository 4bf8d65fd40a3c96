package metrics

import "time"

// Outcome enumerates how a generation run ended.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeDryRun  Outcome = "dry_run"
	OutcomeEmpty   Outcome = "empty"
	OutcomeAborted Outcome = "aborted"
	OutcomeFailed  Outcome = "failed"
)

// Stage names used with ObserveStageDuration.
const (
	StagePlan  = "plan"
	StageWrite = "write"
	StageClone = "clone"
)

// Recorder defines the observability hooks of a generation run.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveRunDuration(d time.Duration)
	SetFilesDiscovered(n int)
	SetNamespaces(n int)
	AddPagesRendered(n int)
	AddPagesWritten(n int)
	IncRunOutcome(outcome Outcome)
	IncCloneResult(success bool)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)           {}
func (NoopRecorder) SetFilesDiscovered(int)                     {}
func (NoopRecorder) SetNamespaces(int)                          {}
func (NoopRecorder) AddPagesRendered(int)                       {}
func (NoopRecorder) AddPagesWritten(int)                        {}
func (NoopRecorder) IncRunOutcome(Outcome)                      {}
func (NoopRecorder) IncCloneResult(bool)                        {}
