package dataprocessing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wagelens/pkg/contracts/domain"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func record(name string, bucket time.Time, cost float64) domain.PayrollRecord {
	end := bucket.AddDate(0, 0, 14)
	return domain.PayrollRecord{
		EmployeeName:      name,
		PayrollType:       domain.PayrollTypeRegular,
		JobTitle:          "Analyst",
		JobFunction:       "Finance",
		JobCategory:       "Professional",
		InsperityClient:   "Acme Corp",
		PeriodEnd:         end,
		MonthBucket:       bucket,
		PayrollCostAmount: decimal.NewFromFloat(cost),
		GrossPayAmount:    decimal.NewFromFloat(cost * 0.8),
	}
}

func sampleRecords() []domain.PayrollRecord {
	r1 := record("Ada Diaz", month(2024, time.January), 100)
	r2 := record("Bo Chen", month(2024, time.February), 200)
	r2.JobTitle = "Engineer"
	r3 := record("Ada Diaz", month(2024, time.March), 300)
	r3.InsperityClient = "Globex"
	return []domain.PayrollRecord{r1, r2, r3}
}

func names(records []domain.PayrollRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.EmployeeName
	}
	return out
}

func TestFilterZeroValueSelectsEverything(t *testing.T) {
	records := sampleRecords()

	got := Filter{}.Apply(records)

	assert.Len(t, got, len(records))
}

func TestFilterDateRangeInclusive(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"both bounds on data months", month(2024, time.January), month(2024, time.March), 3},
		{"from equals a bucket", month(2024, time.February), time.Time{}, 2},
		{"to equals a bucket", time.Time{}, month(2024, time.February), 2},
		{"single month window", month(2024, time.February), month(2024, time.February), 1},
		{"window before data", month(2023, time.January), month(2023, time.June), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Filter{From: tt.from, To: tt.to}
			assert.Len(t, f.Apply(records), tt.want)
		})
	}
}

func TestFilterEmployees(t *testing.T) {
	records := sampleRecords()

	got := Filter{Employees: []string{"Ada Diaz"}}.Apply(records)

	require.Len(t, got, 2)
	assert.Equal(t, []string{"Ada Diaz", "Ada Diaz"}, names(got))
}

func TestFilterAllSentinelMeansNoConstraint(t *testing.T) {
	records := sampleRecords()

	unfiltered := Filter{}.Apply(records)
	allSelected := Filter{
		JobTitle:    AllValues,
		JobFunction: AllValues,
		JobCategory: AllValues,
		ClientName:  AllValues,
	}.Apply(records)

	assert.Equal(t, unfiltered, allSelected)
}

func TestFilterCategoricalSelectors(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"job title", Filter{JobTitle: "Engineer"}, []string{"Bo Chen"}},
		{"client name", Filter{ClientName: "Globex"}, []string{"Ada Diaz"}},
		{"no match", Filter{JobTitle: "Director"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(tt.filter.Apply(records)))
		})
	}
}

func TestFilterPredicatesCompose(t *testing.T) {
	records := sampleRecords()

	f := Filter{
		From:      month(2024, time.January),
		To:        month(2024, time.February),
		Employees: []string{"Ada Diaz", "Bo Chen"},
		JobTitle:  "Analyst",
	}

	got := f.Apply(records)

	require.Len(t, got, 1)
	assert.Equal(t, "Ada Diaz", got[0].EmployeeName)
	assert.Equal(t, month(2024, time.January), got[0].MonthBucket)
}

func TestFilterPreservesOrder(t *testing.T) {
	records := sampleRecords()

	got := Filter{Employees: []string{"Ada Diaz", "Bo Chen"}}.Apply(records)

	assert.Equal(t, []string{"Ada Diaz", "Bo Chen", "Ada Diaz"}, names(got))
}
