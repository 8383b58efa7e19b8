package domain

// ExecutionOutcome is what the process runner observed. Success iff ExitStatus == 0.
type ExecutionOutcome struct {
	ExitStatus int
	Output     string
	Success    bool
	DurationMS int64
}

// NewExecutionOutcome builds an outcome keeping Success consistent with the exit status.
func NewExecutionOutcome(exitStatus int, output string) ExecutionOutcome {
	return ExecutionOutcome{
		ExitStatus: exitStatus,
		Output:     output,
		Success:    exitStatus == 0,
	}
}

// ConfirmationState is a step of the per-run confirmation state machine.
type ConfirmationState string

const (
	StateProposed             ConfirmationState = "proposed"
	StateAwaitingConfirmation ConfirmationState = "awaiting_confirmation"
	StateConfirmed            ConfirmationState = "confirmed"
	StateExecuted             ConfirmationState = "executed"
	StateCancelled            ConfirmationState = "cancelled"
)

// OutcomeKind is the terminal result of one pipeline run.
type OutcomeKind string

const (
	OutcomeExecuted        OutcomeKind = "executed"
	OutcomeCancelled       OutcomeKind = "cancelled"
	OutcomeClassifierVoid  OutcomeKind = "classifier_void"
	OutcomeParseFailed     OutcomeKind = "parse_failed"
	OutcomeTransportFailed OutcomeKind = "transport_failed"
)

// Outcome records how a proposed command was resolved.
type Outcome struct {
	Kind      OutcomeKind
	State     ConfirmationState
	Trail     []ConfirmationState
	Answer    string
	Execution *ExecutionOutcome
}

// Err maps the outcome to the error a caller should report, nil on success.
func (o Outcome) Err() error {
	switch o.Kind {
	case OutcomeCancelled:
		return ErrUserCancelled
	case OutcomeClassifierVoid:
		return ErrClassifierVoid
	case OutcomeParseFailed:
		return ErrNoSafeCommand
	case OutcomeExecuted:
		if o.Execution != nil && !o.Execution.Success {
			return &ExecutionFailedError{ExitStatus: o.Execution.ExitStatus, Output: o.Execution.Output}
		}
	}
	return nil
}

// Advance moves the outcome to state and records it in the trail.
func (o *Outcome) Advance(state ConfirmationState) {
	o.State = state
	o.Trail = append(o.Trail, state)
}

// Cancel moves the outcome to the terminal Cancelled state.
func (o *Outcome) Cancel() {
	o.Advance(StateCancelled)
	o.Kind = OutcomeCancelled
}
