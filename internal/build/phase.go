package build

import "fmt"

// Phase identifies one step of the build lifecycle.
type Phase int

const (
	PhaseGenerate Phase = iota
	PhaseConfigure
	PhaseBuild
	PhaseInstall
)

func (p Phase) String() string {
	switch p {
	case PhaseGenerate:
		return "generate"
	case PhaseConfigure:
		return "configure"
	case PhaseBuild:
		return "build"
	case PhaseInstall:
		return "install"
	}
	return "unknown"
}

// Status is the outcome of a single phase.
type Status int

const (
	Succeeded Status = iota
	Failed
	Skipped
)

func (s Status) String() string {
	switch s {
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	}
	return "unknown"
}

// PhaseResult records the outcome of one phase.
type PhaseResult struct {
	Phase   Phase
	Status  Status
	Message string
}

// PhaseError reports which phase failed and why. Every phase failure
// is fatal to the invocation: nothing after it runs, and nothing is
// retried or rolled back.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }
