package domain

import "unicode/utf8"

// completionReserve is the number of tokens assumed for the completion when
// pre-checking a request against the budget. A 300-400 word post plus meta
// fields stays comfortably under this.
const completionReserve = 1024

// TokenBudget tracks daily generative-backend consumption. It is a value
// threaded through the generator call and returned updated, never a
// process-wide counter, so tests and callers can inject arbitrary usage.
type TokenBudget struct {
	Limit int
	Used  int
}

// NewTokenBudget creates a fresh budget with nothing consumed
func NewTokenBudget(limit int) TokenBudget {
	return TokenBudget{Limit: limit}
}

// EstimateTokens approximates the token count of a prompt. Four characters
// per token is the backend's own rule of thumb for Latin-script text.
func EstimateTokens(prompt string) int {
	return utf8.RuneCountInString(prompt)/4 + completionReserve
}

// Allows reports whether a request of the estimated size fits the remaining
// budget. A zero limit disables enforcement.
func (b TokenBudget) Allows(estimate int) bool {
	if b.Limit <= 0 {
		return true
	}
	return b.Used+estimate <= b.Limit
}

// Charge records actual usage reported by the backend and returns the
// updated budget
func (b TokenBudget) Charge(tokens int) TokenBudget {
	b.Used += tokens
	return b
}

// Remaining returns the unconsumed portion of the budget
func (b TokenBudget) Remaining() int {
	if b.Limit <= 0 {
		return 0
	}
	if b.Used >= b.Limit {
		return 0
	}
	return b.Limit - b.Used
}
