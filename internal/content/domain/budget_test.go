package domain_test

import (
	"strings"
	"testing"

	"github.com/afland/duende-publisher/internal/content/domain"
	"github.com/stretchr/testify/assert"
)

func TestTokenBudget_Allows(t *testing.T) {
	b := domain.NewTokenBudget(1000)

	assert.True(t, b.Allows(1000))
	assert.False(t, b.Allows(1001))

	b = b.Charge(600)
	assert.True(t, b.Allows(400))
	assert.False(t, b.Allows(401))
}

func TestTokenBudget_ZeroLimitDisablesEnforcement(t *testing.T) {
	b := domain.NewTokenBudget(0)
	assert.True(t, b.Allows(1_000_000))
}

func TestTokenBudget_Charge_IsValueSemantics(t *testing.T) {
	original := domain.NewTokenBudget(500)
	charged := original.Charge(100)

	assert.Equal(t, 0, original.Used)
	assert.Equal(t, 100, charged.Used)
}

func TestTokenBudget_Remaining(t *testing.T) {
	b := domain.NewTokenBudget(500).Charge(200)
	assert.Equal(t, 300, b.Remaining())

	exhausted := b.Charge(400)
	assert.Equal(t, 0, exhausted.Remaining())
}

func TestEstimateTokens(t *testing.T) {
	short := domain.EstimateTokens("hola")
	long := domain.EstimateTokens(strings.Repeat("palabra ", 200))

	assert.Greater(t, long, short)
	// The estimate always reserves room for the completion.
	assert.GreaterOrEqual(t, short, 1024)
}
