package billing

import (
	"time"

	"github.com/spendship/spendship/internal/model"
)

// UsageReport carries the budget and spend figures for one billing period.
// This is the shape the shipper consumes; how the figures were computed is
// the data source's concern.
type UsageReport struct {
	BudgetAmount  float64 `json:"budgetAmount"`
	BillingPeriod string  `json:"billingPeriod"`
	Day           string  `json:"day"`
	Spend         float64 `json:"spend"`
}

// Record returns the report as an ordered telemetry record.
func (u UsageReport) Record() *model.Record {
	rec := model.NewRecord()
	rec.Set("Budget", u.BudgetAmount)
	rec.Set("Day", u.Day)
	rec.Set("Period", u.BillingPeriod)
	rec.Set("Spend", u.Spend)
	return rec
}

// Period returns the billing period containing t, rendered as YYYYMM in UTC.
func Period(t time.Time) string {
	return t.UTC().Format("200601")
}

// Day renders t as the MM-DD-YYYY day string used in spend records.
func Day(t time.Time) string {
	return t.UTC().Format("01-02-2006")
}
