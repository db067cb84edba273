// Package exporter provides CSV export for the aggregated wage series.
//
// Write streams CSV to any io.Writer; WriteFile wraps it with directory
// creation for the offline inspect command. Exports carry a UTF-8 BOM by
// default so Excel opens them without mangling non-ASCII employee names.
package exporter
