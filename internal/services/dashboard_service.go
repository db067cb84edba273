package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"wagelens/internal/config"
	"wagelens/internal/dataprocessing"
	"wagelens/internal/exporter"
	"wagelens/pkg/contracts/domain"

	"github.com/shopspring/decimal"
)

// DashboardService loads the wage report once and serves filtered views of
// it. Records are immutable after load; every request works on transient
// subsets, so no locking is needed.
type DashboardService struct {
	logger  *slog.Logger
	records []domain.PayrollRecord
	stats   *dataprocessing.ParseStats
	bounds  map[domain.Metric]domain.MetricBounds

	minMonth time.Time
	maxMonth time.Time
}

// NewDashboardService parses the configured workbook and precomputes the
// per-metric global bounds and the observed date range.
func NewDashboardService(cfg *config.Config, logger *slog.Logger) (*DashboardService, error) {
	layout := dataprocessing.Layout{
		Sheet:       cfg.Workbook.Sheet,
		HeaderStart: cfg.Workbook.HeaderStart,
		HeaderRows:  cfg.Workbook.HeaderRows,
		DataStart:   cfg.Workbook.DataStart,
		TrailerRows: cfg.Workbook.TrailerRows,
	}

	records, stats, err := dataprocessing.ParseWorkbook(cfg.Workbook.Path, layout)
	if err != nil {
		return nil, fmt.Errorf("failed to load wage report %s: %w", cfg.Workbook.Path, err)
	}

	return newDashboardService(records, stats, logger), nil
}

// newDashboardService wires a service around already-loaded records. Tests
// use this to skip the workbook round trip.
func newDashboardService(records []domain.PayrollRecord, stats *dataprocessing.ParseStats, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}

	bounds := make(map[domain.Metric]domain.MetricBounds, len(domain.Metrics()))
	for _, metric := range domain.Metrics() {
		bounds[metric] = dataprocessing.GlobalBounds(records, metric)
	}

	minMonth, maxMonth := dataprocessing.DateRange(records)

	return &DashboardService{
		logger:   logger.With(slog.String("component", "dashboard_service")),
		records:  records,
		stats:    stats,
		bounds:   bounds,
		minMonth: minMonth,
		maxMonth: maxMonth,
	}
}

// RecordCount returns the number of Regular payroll records held in memory.
func (s *DashboardService) RecordCount() int {
	return len(s.records)
}

// ParseStats returns the load statistics captured when the workbook was read.
func (s *DashboardService) ParseStats() dataprocessing.ParseStats {
	if s.stats == nil {
		return dataprocessing.ParseStats{}
	}
	return *s.stats
}

// MetricOption describes one chartable metric for the UI.
type MetricOption struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Default bool   `json:"default"`
}

// Options is the control-population payload: selector values, the observed
// date range and the metric catalogue.
type Options struct {
	Employees     []string       `json:"employees"`
	JobTitles     []string       `json:"job_titles"`
	JobFunctions  []string       `json:"job_functions"`
	JobCategories []string       `json:"job_categories"`
	ClientNames   []string       `json:"client_names"`
	MinMonth      time.Time      `json:"min_month"`
	MaxMonth      time.Time      `json:"max_month"`
	Metrics       []MetricOption `json:"metrics"`
}

// GetOptions returns selector options. Employee names come from the full
// dataset; the categorical options reflect the date and employee narrowing
// already applied, so the selects only ever offer reachable values.
func (s *DashboardService) GetOptions(ctx context.Context, filter dataprocessing.Filter) (*Options, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.records) == 0 {
		return nil, ErrNoData
	}

	narrowed := dataprocessing.Filter{
		From:      filter.From,
		To:        filter.To,
		Employees: filter.Employees,
	}
	subset := narrowed.Apply(s.records)

	metrics := make([]MetricOption, 0, len(domain.Metrics()))
	for _, m := range domain.Metrics() {
		metrics = append(metrics, MetricOption{
			Key:     string(m),
			Label:   m.Label(),
			Default: m == domain.DefaultMetric,
		})
	}

	return &Options{
		Employees:     dataprocessing.DistinctValues(s.records, func(r *domain.PayrollRecord) string { return r.EmployeeName }),
		JobTitles:     dataprocessing.DistinctValues(subset, func(r *domain.PayrollRecord) string { return r.JobTitle }),
		JobFunctions:  dataprocessing.DistinctValues(subset, func(r *domain.PayrollRecord) string { return r.JobFunction }),
		JobCategories: dataprocessing.DistinctValues(subset, func(r *domain.PayrollRecord) string { return r.JobCategory }),
		ClientNames:   dataprocessing.DistinctValues(subset, func(r *domain.PayrollRecord) string { return r.InsperityClient }),
		MinMonth:      s.minMonth,
		MaxMonth:      s.maxMonth,
		Metrics:       metrics,
	}, nil
}

// Series is the chart payload: the aggregated monthly averages plus the
// global y-axis bounds for the metric.
type Series struct {
	Metric      string                  `json:"metric"`
	MetricLabel string                  `json:"metric_label"`
	Points      []domain.MonthlyAverage `json:"points"`
	Bounds      domain.MetricBounds     `json:"bounds"`
	RecordCount int                     `json:"record_count"`
}

// GetSeries filters the dataset, aggregates the metric by month and returns
// the chartable series. An empty selection returns ErrEmptySelection so the
// caller can present an explicit empty state.
func (s *DashboardService) GetSeries(ctx context.Context, filter dataprocessing.Filter, metric domain.Metric) (*Series, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !metric.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
	if len(s.records) == 0 {
		return nil, ErrNoData
	}

	subset := filter.Apply(s.records)
	if len(subset) == 0 {
		return nil, ErrEmptySelection
	}

	points := dataprocessing.MonthlyAverages(subset, metric)

	s.logger.DebugContext(ctx, "series computed",
		slog.String("metric", string(metric)),
		slog.Int("records", len(subset)),
		slog.Int("months", len(points)))

	return &Series{
		Metric:      string(metric),
		MetricLabel: metric.Label(),
		Points:      points,
		Bounds:      s.bounds[metric],
		RecordCount: len(subset),
	}, nil
}

// Summary holds descriptive statistics for the metric over the filtered
// subset alongside the monthly spread.
type Summary struct {
	Metric      string                       `json:"metric"`
	MetricLabel string                       `json:"metric_label"`
	Stats       dataprocessing.MetricSummary `json:"stats"`
	Months      int                          `json:"months"`
}

// GetSummary computes descriptive statistics for the filtered subset.
func (s *DashboardService) GetSummary(ctx context.Context, filter dataprocessing.Filter, metric domain.Metric) (*Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !metric.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}

	subset := filter.Apply(s.records)
	if len(subset) == 0 {
		return nil, ErrEmptySelection
	}

	months := make(map[time.Time]struct{})
	for i := range subset {
		months[subset[i].MonthBucket] = struct{}{}
	}

	return &Summary{
		Metric:      string(metric),
		MetricLabel: metric.Label(),
		Stats:       dataprocessing.Describe(subset, metric),
		Months:      len(months),
	}, nil
}

// ExportSeries writes the aggregated series as CSV. The file carries a
// UTF-8 BOM so Excel opens it cleanly.
func (s *DashboardService) ExportSeries(ctx context.Context, w io.Writer, filter dataprocessing.Filter, metric domain.Metric) error {
	series, err := s.GetSeries(ctx, filter, metric)
	if err != nil {
		return err
	}

	records := make([][]string, 0, len(series.Points))
	for _, p := range series.Points {
		records = append(records, []string{
			p.Label,
			decimal.NewFromFloat(p.Average).StringFixed(2),
		})
	}

	return exporter.Write(w, exporter.WriteOptions{
		Headers:   []string{"Period", "Average " + series.MetricLabel},
		Records:   records,
		BOMPrefix: true,
	})
}

// GlobalBounds exposes the precomputed y-axis bounds for a metric.
func (s *DashboardService) GlobalBounds(metric domain.Metric) (domain.MetricBounds, error) {
	if !metric.Valid() {
		return domain.MetricBounds{}, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
	return s.bounds[metric], nil
}

// ExportFileName suggests a download name for a series export.
func ExportFileName(metric domain.Metric, at time.Time) string {
	return "wage_series_" + string(metric) + "_" + at.Format("20060102_150405") + ".csv"
}
