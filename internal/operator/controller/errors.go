package controller

import "fmt"

// Phase names the stage of a reconcile pass that failed.
type Phase string

const (
	PhaseAddFinalizer    Phase = "AddFinalizer"
	PhaseResolveInputs   Phase = "ResolveInputs"
	PhaseResolveTargets  Phase = "ResolveTargets"
	PhaseBuildTemplates  Phase = "BuildTemplates"
	PhaseRemoveTemplates Phase = "RemoveTemplates"
	PhaseWriteBack       Phase = "WriteBack"
	PhaseRemoveFinalizer Phase = "RemoveFinalizer"
)

// OrchestrationError wraps a failure from any stage of a reconcile pass.
// The wrapped error keeps its own type, so callers can still match
// materialize errors with errors.As.
type OrchestrationError struct {
	Phase Phase
	Err   error
}

func (e *OrchestrationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Phase, e.Err)
}

func (e *OrchestrationError) Unwrap() error { return e.Err }
