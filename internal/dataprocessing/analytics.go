package dataprocessing

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"

	"wagelens/pkg/contracts/domain"
)

// MonthlyAverages groups records by month bucket and averages the metric
// per month. Months with no records are absent, not zero-filled. The
// series is sorted ascending by period; an empty input yields an empty
// series rather than an error.
func MonthlyAverages(records []domain.PayrollRecord, metric domain.Metric) []domain.MonthlyAverage {
	type bucket struct {
		sum   decimal.Decimal
		count int64
	}

	buckets := make(map[time.Time]*bucket)
	for i := range records {
		b, ok := buckets[records[i].MonthBucket]
		if !ok {
			b = &bucket{}
			buckets[records[i].MonthBucket] = b
		}
		b.sum = b.sum.Add(metric.Value(&records[i]))
		b.count++
	}

	series := make([]domain.MonthlyAverage, 0, len(buckets))
	for period, b := range buckets {
		avg, _ := b.sum.Div(decimal.NewFromInt(b.count)).Float64()
		series = append(series, domain.MonthlyAverage{
			Period:  period,
			Label:   period.Format(domain.PeriodLabelFormat),
			Average: avg,
		})
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Period.Before(series[j].Period)
	})

	return series
}

// GlobalBounds computes the min/max of a metric across the full dataset.
// The chart pins its y-axis to these bounds so the visual scale does not
// jump as filters narrow the data.
func GlobalBounds(records []domain.PayrollRecord, metric domain.Metric) domain.MetricBounds {
	if len(records) == 0 {
		return domain.MetricBounds{}
	}

	min := metric.Value(&records[0])
	max := min
	for i := 1; i < len(records); i++ {
		v := metric.Value(&records[i])
		if v.LessThan(min) {
			min = v
		}
		if v.GreaterThan(max) {
			max = v
		}
	}

	minF, _ := min.Float64()
	maxF, _ := max.Float64()
	return domain.MetricBounds{Min: minF, Max: maxF}
}

// DateRange returns the earliest and latest month buckets present.
func DateRange(records []domain.PayrollRecord) (time.Time, time.Time) {
	if len(records) == 0 {
		return time.Time{}, time.Time{}
	}

	min := records[0].MonthBucket
	max := min
	for i := 1; i < len(records); i++ {
		if records[i].MonthBucket.Before(min) {
			min = records[i].MonthBucket
		}
		if records[i].MonthBucket.After(max) {
			max = records[i].MonthBucket
		}
	}
	return min, max
}

// MetricSummary holds descriptive statistics for a metric over a subset.
type MetricSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Describe computes descriptive statistics for a metric over the given
// records. An empty subset yields a zero summary.
func Describe(records []domain.PayrollRecord, metric domain.Metric) MetricSummary {
	if len(records) == 0 {
		return MetricSummary{}
	}

	values := make([]float64, len(records))
	for i := range records {
		values[i], _ = metric.Value(&records[i]).Float64()
	}

	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	stdDev, _ := stats.StandardDeviation(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)

	return MetricSummary{
		Count:  len(values),
		Mean:   mean,
		Median: median,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
	}
}

// DistinctValues returns the sorted unique values produced by get over the
// records, skipping blanks. Used to build the selector option lists.
func DistinctValues(records []domain.PayrollRecord, get func(*domain.PayrollRecord) string) []string {
	seen := make(map[string]struct{})
	for i := range records {
		v := get(&records[i])
		if v == "" {
			continue
		}
		seen[v] = struct{}{}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
