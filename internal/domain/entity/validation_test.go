package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationResult(t *testing.T) {
	r := NewValidationResult()
	assert.True(t, r.Valid)

	r.AddWarning(NearDailyLimit(28, 30, "karma"))
	assert.True(t, r.Valid, "warnings must not invalidate a transfer")

	r.AddError(MsgInsufficientBalance)
	r.AddError(AmountOutOfRange(5, 20, "karma"))
	assert.False(t, r.Valid)
	assert.Equal(t, []string{"Insufficient balance", "Amount must be between 5 and 20 karma"}, r.Errors)
	assert.Len(t, r.Warnings, 1)
}

func TestRuleMessages(t *testing.T) {
	assert.Equal(t, "Daily limit exceeded: 10 karma remaining today", DailyLimitExceeded(10, "karma"))
	assert.Equal(t, "Message must be at most 500 characters", MessageTooLong(500))
}
