package domain

import "time"

// FiscalPeriodStatus mirrors the status column of the fiscal periods table.
type FiscalPeriodStatus string

const (
	FiscalPeriodOpen   FiscalPeriodStatus = "open"
	FiscalPeriodClosed FiscalPeriodStatus = "closed"
)

// FiscalPeriod is a bounded accounting window entries are filed under.
type FiscalPeriod struct {
	FiscalPeriodID string             `json:"fiscalPeriodID"`
	Name           string             `json:"name"`
	StartDate      time.Time          `json:"startDate"`
	EndDate        time.Time          `json:"endDate"`
	Status         FiscalPeriodStatus `json:"status"`
	IsClosed       bool               `json:"isClosed"`
}

// AcceptsPostings reports whether new postings may land in the period.
func (p FiscalPeriod) AcceptsPostings() bool {
	return !p.IsClosed && p.Status != FiscalPeriodClosed
}
