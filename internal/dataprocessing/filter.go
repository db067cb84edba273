package dataprocessing

import (
	"time"

	"wagelens/pkg/contracts/domain"
)

// AllValues is the sentinel for categorical selectors meaning "no filter".
const AllValues = "All"

// Filter narrows the loaded dataset. The zero value selects every record.
// All predicates compose by conjunction and act on disjoint columns, so
// their order never affects the result.
type Filter struct {
	// From and To bound the month bucket inclusively. Zero times mean
	// the bound is open.
	From time.Time
	To   time.Time

	// Employees is a set-membership filter on employee name. Empty means
	// no restriction.
	Employees []string

	// Single-value equality filters. Empty or "All" means no restriction.
	JobTitle    string
	JobFunction string
	JobCategory string
	ClientName  string
}

// Matches reports whether the record survives every predicate.
func (f Filter) Matches(r *domain.PayrollRecord) bool {
	if !f.From.IsZero() && r.MonthBucket.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && r.MonthBucket.After(f.To) {
		return false
	}

	if len(f.Employees) > 0 && !containsString(f.Employees, r.EmployeeName) {
		return false
	}

	if !matchesSelector(f.JobTitle, r.JobTitle) {
		return false
	}
	if !matchesSelector(f.JobFunction, r.JobFunction) {
		return false
	}
	if !matchesSelector(f.JobCategory, r.JobCategory) {
		return false
	}
	if !matchesSelector(f.ClientName, r.InsperityClient) {
		return false
	}

	return true
}

// Apply returns the records surviving the filter, preserving order.
func (f Filter) Apply(records []domain.PayrollRecord) []domain.PayrollRecord {
	out := make([]domain.PayrollRecord, 0, len(records))
	for i := range records {
		if f.Matches(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

// matchesSelector applies a single-value equality filter with the "All"
// sentinel treated as no constraint.
func matchesSelector(selected, value string) bool {
	return selected == "" || selected == AllValues || selected == value
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
