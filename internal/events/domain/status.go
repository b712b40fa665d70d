package domain

// ContentStatus represents where an event sits in the publishing pipeline
type ContentStatus string

const (
	StatusPending    ContentStatus = "pending"
	StatusProcessing ContentStatus = "processing"
	StatusProcessed  ContentStatus = "processed"
	StatusFailed     ContentStatus = "failed"
)

// IsValid checks if the status is a valid value
func (s ContentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusProcessed, StatusFailed:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a status transition is allowed
func (s ContentStatus) CanTransitionTo(target ContentStatus) bool {
	if s.IsTerminal() {
		return false
	}
	switch s {
	case StatusPending:
		// Pending can only be claimed
		return target == StatusProcessing
	case StatusProcessing:
		// Processing resolves to a terminal state, or reverts to pending
		// so a later run retries the event
		return target == StatusProcessed || target == StatusFailed || target == StatusPending
	default:
		return false
	}
}

// IsTerminal reports whether the pipeline will never touch the event again
func (s ContentStatus) IsTerminal() bool {
	return s == StatusProcessed || s == StatusFailed
}
