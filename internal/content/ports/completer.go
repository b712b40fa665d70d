package ports

import "context"

// CompletionRequest is a single-prompt request to the generative-text backend.
type CompletionRequest struct {
	Prompt string
	// ForceJSON asks the backend for its constrained structured-JSON output
	// mode where supported.
	ForceJSON bool
}

// CompletionResult carries the generated text plus the backend's token
// accounting, which feeds the local daily budget.
type CompletionResult struct {
	Text       string
	TokensUsed int
}

// Completer is the generative-text backend capability.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResult, error)
}
