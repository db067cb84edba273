package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"wagelens/internal/dataprocessing"
	apierrors "wagelens/internal/errors"
	"wagelens/internal/services"
	"wagelens/pkg/contracts/domain"
)

// DashboardHandler serves the dashboard API: selector options, the
// aggregated series, descriptive statistics and CSV export.
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the dashboard routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/options", h.GetOptions)
	r.Get("/series", h.GetSeries)
	r.Get("/summary", h.GetSummary)
	r.Get("/export", h.ExportSeries)

	return r
}

// queryParams is the decoded and validated query string shared by the
// dashboard endpoints. Dates are month-granular, matching the UI slider.
type queryParams struct {
	Metric      string `validate:"omitempty,oneof=net_pay gross_pay overhead payroll_cost return_deduction fees amount_due"`
	From        string `validate:"omitempty,datetime=2006-01"`
	To          string `validate:"omitempty,datetime=2006-01"`
	Employees   []string
	JobTitle    string
	JobFunction string
	JobCategory string
	ClientName  string
}

// decodeParams parses the query string into a filter and metric. The metric
// defaults to payroll cost, every filter to its pass-through state.
func (h *DashboardHandler) decodeParams(values url.Values) (dataprocessing.Filter, domain.Metric, error) {
	params := queryParams{
		Metric:      values.Get("metric"),
		From:        values.Get("from"),
		To:          values.Get("to"),
		Employees:   values["employee"],
		JobTitle:    values.Get("job_title"),
		JobFunction: values.Get("job_function"),
		JobCategory: values.Get("job_category"),
		ClientName:  values.Get("client_name"),
	}

	if err := h.validate.Struct(&params); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]apierrors.ValidationError, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, apierrors.ValidationError{
					Field:   fe.Field(),
					Message: fmt.Sprintf("failed %s validation", fe.Tag()),
				})
			}
			return dataprocessing.Filter{}, "", apierrors.NewValidationErrors(fields)
		}
		return dataprocessing.Filter{}, "", apierrors.InvalidRequestWithError(err)
	}

	filter := dataprocessing.Filter{
		Employees:   params.Employees,
		JobTitle:    params.JobTitle,
		JobFunction: params.JobFunction,
		JobCategory: params.JobCategory,
		ClientName:  params.ClientName,
	}

	if params.From != "" {
		from, err := time.Parse("2006-01", params.From)
		if err != nil {
			return dataprocessing.Filter{}, "", apierrors.ErrValidation("from", "must be a YYYY-MM month")
		}
		filter.From = domain.MonthStart(from)
	}
	if params.To != "" {
		to, err := time.Parse("2006-01", params.To)
		if err != nil {
			return dataprocessing.Filter{}, "", apierrors.ErrValidation("to", "must be a YYYY-MM month")
		}
		filter.To = domain.MonthStart(to)
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return dataprocessing.Filter{}, "", apierrors.ErrValidation("to", "must not be before from")
	}

	metric := domain.DefaultMetric
	if params.Metric != "" {
		metric = domain.Metric(params.Metric)
	}

	return filter, metric, nil
}

// GetOptions handles GET /api/dashboard/options
func (h *DashboardHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	filter, _, err := h.decodeParams(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	options, err := h.service.GetOptions(r.Context(), filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   options,
	})
}

// GetSeries handles GET /api/dashboard/series
func (h *DashboardHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	filter, metric, err := h.decodeParams(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	series, err := h.service.GetSeries(r.Context(), filter, metric)
	if err != nil {
		// An empty selection is a reportable state, not a fault: the UI
		// shows a message instead of a chart.
		if errors.Is(err, services.ErrEmptySelection) {
			render.JSON(w, r, map[string]interface{}{
				"status": "empty",
				"data": map[string]interface{}{
					"metric":       string(metric),
					"metric_label": metric.Label(),
					"points":       []domain.MonthlyAverage{},
				},
			})
			return
		}
		if errors.Is(err, services.ErrUnknownMetric) {
			h.errorHandler.HandleError(w, r, apierrors.New(
				http.StatusBadRequest,
				"UNKNOWN_METRIC",
				fmt.Sprintf("unknown metric %q", metric),
			))
			return
		}

		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   series,
	})
}

// GetSummary handles GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	filter, metric, err := h.decodeParams(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	summary, err := h.service.GetSummary(r.Context(), filter, metric)
	if err != nil {
		if errors.Is(err, services.ErrEmptySelection) {
			render.JSON(w, r, map[string]interface{}{
				"status": "empty",
				"data": map[string]interface{}{
					"metric":       string(metric),
					"metric_label": metric.Label(),
				},
			})
			return
		}

		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}

// ExportSeries handles GET /api/dashboard/export, streaming the aggregated
// series as a CSV download.
func (h *DashboardHandler) ExportSeries(w http.ResponseWriter, r *http.Request) {
	filter, metric, err := h.decodeParams(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	filename := services.ExportFileName(metric, time.Now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.service.ExportSeries(r.Context(), w, filter, metric); err != nil {
		if errors.Is(err, services.ErrEmptySelection) {
			w.Header().Del("Content-Disposition")
			h.errorHandler.HandleError(w, r, apierrors.New(
				http.StatusNotFound,
				"EMPTY_SELECTION",
				"no records match the current selection",
			))
			return
		}

		h.logger.ErrorContext(r.Context(), "series export failed",
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
	}
}
