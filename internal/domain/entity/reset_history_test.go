package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthKey(t *testing.T) {
	// 1 Nov 00:30 at UTC+1 is still October in UTC
	assert.Equal(t, "2026-10", MonthKey(time.Date(2026, 11, 1, 0, 30, 0, 0, time.FixedZone("CET", 3600))))
	assert.Equal(t, "2026-01", MonthKey(time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC)))
}

func TestResetHistoryComplete(t *testing.T) {
	h := NewResetHistory(1, 10, "2026-10", TriggerCron, nil, time.Now())
	assert.Equal(t, ResetInProgress, h.Status)

	h.Complete(3, 300, nil)
	assert.Equal(t, ResetCompleted, h.Status)
	assert.Equal(t, []string{}, h.Errors)

	h.Complete(2, 200, []string{"member 7: boom"})
	assert.Equal(t, ResetCompletedWithErrors, h.Status)
}

func TestSummarize(t *testing.T) {
	summary := Summarize([]ResetResult{
		{WorkspaceID: 1, ProfilesReset: 3, TotalAllowanceAdded: 300, Errors: []string{}},
		{WorkspaceID: 2, Skipped: true, Errors: []string{}},
		{WorkspaceID: 3, Errors: []string{"settings missing"}},
		{WorkspaceID: 4, ProfilesReset: 1, TotalAllowanceAdded: 50, Errors: []string{"member 9 failed"}},
	})

	assert.Equal(t, ResetSummary{
		Workspaces:          4,
		Reset:               2,
		Skipped:             1,
		Failed:              1,
		ProfilesReset:       4,
		TotalAllowanceAdded: 350,
	}, summary)
}

func TestIsValidResetTrigger(t *testing.T) {
	assert.True(t, IsValidResetTrigger("cron"))
	assert.True(t, IsValidResetTrigger("all"))
	assert.False(t, IsValidResetTrigger("workspace"))
}
