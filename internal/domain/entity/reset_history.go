package entity

import (
	"time"
)

// MonthLayout formats reset months
const MonthLayout = "2006-01"

// MonthKey returns the UTC calendar month of t as YYYY-MM
func MonthKey(t time.Time) string {
	return t.UTC().Format(MonthLayout)
}

// ResetTrigger records what started a reset
type ResetTrigger string

// Reset triggers
const (
	TriggerCron     ResetTrigger = "cron"     // external scheduler via /cron/monthly-reset
	TriggerSchedule ResetTrigger = "schedule" // in-process daily timer
	TriggerManual   ResetTrigger = "manual"   // admin of one workspace
	TriggerAll      ResetTrigger = "all"      // super admin, every workspace
)

// IsValidResetTrigger checks if trigger is a known trigger
func IsValidResetTrigger(trigger string) bool {
	switch ResetTrigger(trigger) {
	case TriggerCron, TriggerSchedule, TriggerManual, TriggerAll:
		return true
	}
	return false
}

// ResetStatus is the state of a reset history record
type ResetStatus string

// Reset statuses
const (
	ResetInProgress          ResetStatus = "in_progress"
	ResetCompleted           ResetStatus = "completed"
	ResetCompletedWithErrors ResetStatus = "completed_with_errors"
)

// ResetHistory records the monthly top-up of one workspace.
// At most one record exists per (WorkspaceID, ResetMonth).
type ResetHistory struct {
	ID                  int64
	WorkspaceID         int64
	ResetMonth          string
	Trigger             ResetTrigger
	TriggeredBy         *int64 // Profile id for manual resets
	ProfilesReset       int
	TotalAllowanceAdded int64
	Errors              []string
	Status              ResetStatus
	ExecutedAt          time.Time
}

// NewResetHistory claims resetMonth for a workspace
func NewResetHistory(id, workspaceID int64, resetMonth string, trigger ResetTrigger, triggeredBy *int64, executedAt time.Time) *ResetHistory {
	return &ResetHistory{
		ID:          id,
		WorkspaceID: workspaceID,
		ResetMonth:  resetMonth,
		Trigger:     trigger,
		TriggeredBy: triggeredBy,
		Errors:      []string{},
		Status:      ResetInProgress,
		ExecutedAt:  executedAt.UTC(),
	}
}

// Complete stores the outcome of the reset
func (h *ResetHistory) Complete(profilesReset int, totalAdded int64, errors []string) {
	h.ProfilesReset = profilesReset
	h.TotalAllowanceAdded = totalAdded
	if errors == nil {
		errors = []string{}
	}
	h.Errors = errors
	h.Status = ResetCompleted
	if len(errors) > 0 {
		h.Status = ResetCompletedWithErrors
	}
}

// ResetResult is the per-workspace outcome returned to callers
type ResetResult struct {
	WorkspaceID         int64    `json:"workspaceId,string"`
	WorkspaceName       string   `json:"workspaceName"`
	ResetMonth          string   `json:"resetMonth"`
	ProfilesReset       int      `json:"profilesReset"`
	TotalAllowanceAdded int64    `json:"totalAllowanceAdded"`
	Errors              []string `json:"errors"`
	Skipped             bool     `json:"skipped"`
}

// ResetSummary aggregates a batch of results
type ResetSummary struct {
	Workspaces          int   `json:"workspaces"`
	Reset               int   `json:"reset"`
	Skipped             int   `json:"skipped"`
	Failed              int   `json:"failed"`
	ProfilesReset       int   `json:"profilesReset"`
	TotalAllowanceAdded int64 `json:"totalAllowanceAdded"`
}

// Summarize folds results into a summary. A workspace with errors and no
// reset members counts as failed.
func Summarize(results []ResetResult) ResetSummary {
	summary := ResetSummary{Workspaces: len(results)}
	for _, r := range results {
		switch {
		case r.Skipped:
			summary.Skipped++
		case len(r.Errors) > 0 && r.ProfilesReset == 0:
			summary.Failed++
		default:
			summary.Reset++
		}
		summary.ProfilesReset += r.ProfilesReset
		summary.TotalAllowanceAdded += r.TotalAllowanceAdded
	}
	return summary
}
