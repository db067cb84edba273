package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wagelens/internal/dataprocessing"
	"wagelens/pkg/contracts/domain"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func testRecord(name, title, client string, bucket time.Time, cost float64) domain.PayrollRecord {
	return domain.PayrollRecord{
		EmployeeName:      name,
		PayrollType:       domain.PayrollTypeRegular,
		JobTitle:          title,
		JobFunction:       "Finance",
		JobCategory:       "Professional",
		InsperityClient:   client,
		PeriodEnd:         bucket.AddDate(0, 0, 14),
		MonthBucket:       bucket,
		PayrollCostAmount: decimal.NewFromFloat(cost),
		GrossPayAmount:    decimal.NewFromFloat(cost * 0.8),
	}
}

func testService(t *testing.T) *DashboardService {
	t.Helper()
	records := []domain.PayrollRecord{
		testRecord("Ada Diaz", "Analyst", "Acme Corp", month(2024, time.January), 100),
		testRecord("Bo Chen", "Engineer", "Acme Corp", month(2024, time.January), 200),
		testRecord("Ada Diaz", "Analyst", "Globex", month(2024, time.February), 300),
	}
	stats := &dataprocessing.ParseStats{DataRows: 3, Loaded: 3}
	return newDashboardService(records, stats, nil)
}

func TestGetSeries(t *testing.T) {
	svc := testService(t)

	series, err := svc.GetSeries(context.Background(), dataprocessing.Filter{}, domain.MetricPayrollCost)
	require.NoError(t, err)

	assert.Equal(t, "payroll_cost", series.Metric)
	assert.Equal(t, "Payroll Cost Amount", series.MetricLabel)
	assert.Equal(t, 3, series.RecordCount)

	require.Len(t, series.Points, 2)
	assert.Equal(t, "Jan-2024", series.Points[0].Label)
	assert.Equal(t, 150.0, series.Points[0].Average)
	assert.Equal(t, "Feb-2024", series.Points[1].Label)
	assert.Equal(t, 300.0, series.Points[1].Average)

	// Bounds come from the full dataset, not the subset.
	assert.Equal(t, 100.0, series.Bounds.Min)
	assert.Equal(t, 300.0, series.Bounds.Max)
}

func TestGetSeriesBoundsIgnoreFilter(t *testing.T) {
	svc := testService(t)

	filter := dataprocessing.Filter{Employees: []string{"Bo Chen"}}
	series, err := svc.GetSeries(context.Background(), filter, domain.MetricPayrollCost)
	require.NoError(t, err)

	assert.Equal(t, 1, series.RecordCount)
	assert.Equal(t, 100.0, series.Bounds.Min, "bounds must stay pinned to the full dataset")
	assert.Equal(t, 300.0, series.Bounds.Max)
}

func TestGetSeriesEmptySelection(t *testing.T) {
	svc := testService(t)

	filter := dataprocessing.Filter{Employees: []string{"Nobody"}}
	_, err := svc.GetSeries(context.Background(), filter, domain.MetricPayrollCost)

	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestGetSeriesUnknownMetric(t *testing.T) {
	svc := testService(t)

	_, err := svc.GetSeries(context.Background(), dataprocessing.Filter{}, domain.Metric("bogus"))

	assert.ErrorIs(t, err, ErrUnknownMetric)
}

func TestGetSeriesCancelledContext(t *testing.T) {
	svc := testService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.GetSeries(ctx, dataprocessing.Filter{}, domain.MetricPayrollCost)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetOptions(t *testing.T) {
	svc := testService(t)

	opts, err := svc.GetOptions(context.Background(), dataprocessing.Filter{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Ada Diaz", "Bo Chen"}, opts.Employees)
	assert.Equal(t, []string{"Analyst", "Engineer"}, opts.JobTitles)
	assert.Equal(t, []string{"Acme Corp", "Globex"}, opts.ClientNames)
	assert.Equal(t, month(2024, time.January), opts.MinMonth)
	assert.Equal(t, month(2024, time.February), opts.MaxMonth)

	require.Len(t, opts.Metrics, 7)
	var defaults int
	for _, m := range opts.Metrics {
		if m.Default {
			defaults++
			assert.Equal(t, string(domain.DefaultMetric), m.Key)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestGetOptionsNarrowsCategoricals(t *testing.T) {
	svc := testService(t)

	filter := dataprocessing.Filter{Employees: []string{"Bo Chen"}}
	opts, err := svc.GetOptions(context.Background(), filter)
	require.NoError(t, err)

	// The employee list always shows the full roster; the categorical
	// selectors narrow to the chosen employees.
	assert.Equal(t, []string{"Ada Diaz", "Bo Chen"}, opts.Employees)
	assert.Equal(t, []string{"Engineer"}, opts.JobTitles)
	assert.Equal(t, []string{"Acme Corp"}, opts.ClientNames)
}

func TestGetOptionsNoData(t *testing.T) {
	svc := newDashboardService(nil, &dataprocessing.ParseStats{}, nil)

	_, err := svc.GetOptions(context.Background(), dataprocessing.Filter{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestGetSummary(t *testing.T) {
	svc := testService(t)

	summary, err := svc.GetSummary(context.Background(), dataprocessing.Filter{}, domain.MetricPayrollCost)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Stats.Count)
	assert.InDelta(t, 200.0, summary.Stats.Mean, 1e-9)
	assert.Equal(t, 2, summary.Months)
}

func TestGetSummaryEmptySelection(t *testing.T) {
	svc := testService(t)

	filter := dataprocessing.Filter{From: month(2030, time.January)}
	_, err := svc.GetSummary(context.Background(), filter, domain.MetricPayrollCost)

	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestExportSeries(t *testing.T) {
	svc := testService(t)

	var buf bytes.Buffer
	err := svc.ExportSeries(context.Background(), &buf, dataprocessing.Filter{}, domain.MetricPayrollCost)
	require.NoError(t, err)

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}), "export must start with a UTF-8 BOM")

	body := string(out[3:])
	assert.Contains(t, body, "Period,Average Payroll Cost Amount")
	assert.Contains(t, body, "Jan-2024,150.00")
	assert.Contains(t, body, "Feb-2024,300.00")
}

func TestExportSeriesEmptySelection(t *testing.T) {
	svc := testService(t)

	var buf bytes.Buffer
	filter := dataprocessing.Filter{Employees: []string{"Nobody"}}
	err := svc.ExportSeries(context.Background(), &buf, filter, domain.MetricPayrollCost)

	assert.ErrorIs(t, err, ErrEmptySelection)
	assert.Zero(t, buf.Len(), "no bytes may be written on an empty selection")
}

func TestGlobalBoundsUnknownMetric(t *testing.T) {
	svc := testService(t)

	_, err := svc.GlobalBounds(domain.Metric("bogus"))
	assert.ErrorIs(t, err, ErrUnknownMetric)
}

func TestExportFileName(t *testing.T) {
	at := time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)

	got := ExportFileName(domain.MetricGrossPay, at)

	assert.Equal(t, "wage_series_gross_pay_20240305_093000.csv", got)
}

func TestParseStatsCopied(t *testing.T) {
	svc := testService(t)

	stats := svc.ParseStats()
	assert.Equal(t, 3, stats.Loaded)
	assert.Equal(t, 3, svc.RecordCount())
}
