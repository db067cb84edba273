package http

import (
	"context"
	"io"

	"wagelens/internal/dataprocessing"
	"wagelens/internal/services"
	"wagelens/pkg/contracts/domain"
)

// DashboardServiceInterface defines what the handlers need from the
// dashboard service. Defined transport-side so tests can substitute fakes.
type DashboardServiceInterface interface {
	GetOptions(ctx context.Context, filter dataprocessing.Filter) (*services.Options, error)
	GetSeries(ctx context.Context, filter dataprocessing.Filter, metric domain.Metric) (*services.Series, error)
	GetSummary(ctx context.Context, filter dataprocessing.Filter, metric domain.Metric) (*services.Summary, error)
	ExportSeries(ctx context.Context, w io.Writer, filter dataprocessing.Filter, metric domain.Metric) error
	RecordCount() int
	ParseStats() dataprocessing.ParseStats
}
