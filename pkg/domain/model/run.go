package model

import "time"

// StepName identifies one of the ordered pipeline steps.
type StepName string

const (
	StepCheckout StepName = "checkout"
	StepRuntime  StepName = "runtime"
	StepTools    StepName = "tools"
	StepBuild    StepName = "build"
	StepUpload   StepName = "upload"
)

// StepOrder returns the pipeline steps in execution order.
func StepOrder() []StepName {
	return []StepName{StepCheckout, StepRuntime, StepTools, StepBuild, StepUpload}
}

// StepStatus represents the outcome of a single step.
type StepStatus string

const (
	StepSucceeded StepStatus = "succeeded"
	StepFailed    StepStatus = "failed"
)

// StepResult records one executed step. Steps after a failed step are never
// executed and therefore have no record.
type StepResult struct {
	Step       StepName
	Status     StepStatus
	StartedAt  time.Time
	FinishedAt time.Time
	Error      string // Empty unless Status is StepFailed
}

// RunStatus is the terminal state of a publish run.
type RunStatus string

const (
	RunPublished RunStatus = "published"
	RunAborted   RunStatus = "aborted"
)

// PublishRun is the in-memory record of one pipeline execution. Nothing is
// persisted; the run exists only for logging and notification.
type PublishRun struct {
	ID         string
	Request    *ReleaseRequest
	Steps      []StepResult
	Status     RunStatus
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewPublishRun creates a run record for the given request.
func NewPublishRun(id string, req *ReleaseRequest) *PublishRun {
	return &PublishRun{
		ID:        id,
		Request:   req,
		StartedAt: time.Now(),
	}
}

// RecordStep appends the outcome of a step.
func (r *PublishRun) RecordStep(step StepName, startedAt time.Time, err error) {
	result := StepResult{
		Step:       step,
		Status:     StepSucceeded,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
	}
	if err != nil {
		result.Status = StepFailed
		result.Error = err.Error()
	}
	r.Steps = append(r.Steps, result)
}

// Finish marks the run terminal: published on nil error, aborted otherwise.
func (r *PublishRun) Finish(err error) {
	r.FinishedAt = time.Now()
	if err != nil {
		r.Status = RunAborted
	} else {
		r.Status = RunPublished
	}
}

// FailedStep returns the failed step record, or nil for published runs.
func (r *PublishRun) FailedStep() *StepResult {
	for i := range r.Steps {
		if r.Steps[i].Status == StepFailed {
			return &r.Steps[i]
		}
	}
	return nil
}
