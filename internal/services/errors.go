package services

import "errors"

// Dashboard service errors
var (
	// ErrEmptySelection means the active filters matched no records. The
	// UI shows an informative empty state for this instead of a chart.
	ErrEmptySelection = errors.New("no records match the current selection")

	// ErrUnknownMetric means the requested metric key is not one of the
	// seven chartable monetary columns.
	ErrUnknownMetric = errors.New("unknown metric")

	// ErrNoData means the workbook loaded zero Regular payroll records.
	ErrNoData = errors.New("no payroll records loaded")
)
