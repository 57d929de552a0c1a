package entities

const (
	exitCodeSuccess = 0
	exitCodeFailure = 1
)

// WorkflowOutcome is the terminal value of an update run.
type WorkflowOutcome struct {
	ExitCode int
	Message  string
}

// Success returns a successful outcome without a message.
func Success() WorkflowOutcome {
	return WorkflowOutcome{ExitCode: exitCodeSuccess}
}

// SuccessWith returns a successful outcome carrying an informational message.
func SuccessWith(message string) WorkflowOutcome {
	return WorkflowOutcome{ExitCode: exitCodeSuccess, Message: message}
}

// Failure returns a fatal outcome with the given message.
func Failure(message string) WorkflowOutcome {
	return WorkflowOutcome{ExitCode: exitCodeFailure, Message: message}
}

// Failed reports whether the run ended with a non-zero exit code.
func (o WorkflowOutcome) Failed() bool {
	return o.ExitCode != exitCodeSuccess
}
