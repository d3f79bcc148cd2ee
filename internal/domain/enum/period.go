package enum

import "fmt"

// Period is a projection horizon. Revenue, cost, tax and discount figures
// scale linearly with the period multiplier; operating expenses are monthly
// figures normalized through a daily rate instead.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Multiplier returns the number of days the period spans.
func (p Period) Multiplier() float64 {
	switch p {
	case PeriodWeekly:
		return 7
	case PeriodMonthly:
		return 30
	default:
		return 1
	}
}

// ParsePeriod validates a period name from user input.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return Period(s), nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}
