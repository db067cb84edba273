// Package services implements the business logic layer of the wage
// dashboard, sitting between the HTTP handlers and the data pipeline.
//
// The central type is DashboardService. It parses the wage report once at
// startup and holds the Regular payroll records immutably in memory;
// every request then filters and aggregates transient subsets, so the
// service needs no locking. Precomputed per-metric global bounds keep the
// chart's y-axis stable while filters narrow the data.
//
// Sentinel errors communicate reportable states to the transport layer:
// ErrEmptySelection when a filter combination matches no records,
// ErrUnknownMetric for a metric key outside the catalogue, and ErrNoData
// when the workbook yielded no Regular records at all.
package services
