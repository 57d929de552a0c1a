package entities

// ToolInvocationResult is the outcome of one external process run.
// Succeeded is true only when the process exited with code zero.
type ToolInvocationResult struct {
	Succeeded bool
	Output    string
}
