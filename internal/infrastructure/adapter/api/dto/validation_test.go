package dto

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func TestValidationMessages(t *testing.T) {
	RegisterJSONFieldNames()

	testCases := []struct {
		name     string
		obj      any
		expected []string
	}{
		{
			name:     "missing receiver",
			obj:      &SendRequest{Amount: 5},
			expected: []string{"receiverId is required"},
		},
		{
			name:     "non numeric receiver",
			obj:      &ValidateRequest{ReceiverID: "bob", Amount: 5},
			expected: []string{"receiverId must be a numeric id"},
		},
		{
			name:     "unknown reset type",
			obj:      &ResetRequest{Type: "weekly"},
			expected: []string{"type must be one of: workspace, all, cron"},
		},
		{
			name:     "bad workspace id",
			obj:      &ResetRequest{Type: ResetTypeWorkspace, WorkspaceID: "1a"},
			expected: []string{"workspaceId must be a numeric id"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tc.obj)
			assert.Equal(t, tc.expected, ValidationMessages(err))
		})
	}

	assert.Equal(t, []string{"Invalid request body"}, ValidationMessages(errors.New("unexpected EOF")))
	assert.NoError(t, binding.Validator.ValidateStruct(&ResetRequest{Type: ResetTypeAll}))
}
