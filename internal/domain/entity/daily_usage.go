package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayLayout formats usage days
const DayLayout = "2006-01-02"

// UsageDay truncates t to the start of its UTC calendar day.
// Every daily limit computation goes through this function.
func UsageDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DailyUsage is the running total a member has sent on one UTC day
type DailyUsage struct {
	ProfileID  int64
	UsageDate  time.Time // UTC midnight
	AmountSent int64
	UpdatedAt  time.Time
}

// DailyLimitInfo summarizes how much of today's cap a member has used
type DailyLimitInfo struct {
	DailyLimit      int64           `json:"dailyLimit"`
	AmountSentToday int64           `json:"amountSentToday"`
	RemainingLimit  int64           `json:"remainingLimit"`
	PercentageUsed  decimal.Decimal `json:"percentageUsed"`
	Date            string          `json:"date"`
}

// NewDailyLimitInfo computes the remaining allowance and percentage used, rounded to 2 places
func NewDailyLimitInfo(dailyLimit, sentToday int64, day time.Time) *DailyLimitInfo {
	remaining := dailyLimit - sentToday
	if remaining < 0 {
		remaining = 0
	}

	percentage := decimal.Zero
	switch {
	case dailyLimit > 0:
		percentage = decimal.NewFromInt(sentToday).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(dailyLimit)).
			Round(2)
	case sentToday > 0:
		percentage = decimal.NewFromInt(100)
	}

	return &DailyLimitInfo{
		DailyLimit:      dailyLimit,
		AmountSentToday: sentToday,
		RemainingLimit:  remaining,
		PercentageUsed:  percentage,
		Date:            UsageDay(day).Format(DayLayout),
	}
}
