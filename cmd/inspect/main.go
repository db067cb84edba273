// Command inspect parses a wage report workbook offline and prints load
// statistics, the observed date range and per-metric bounds. With -out it
// also writes the monthly series for a metric to CSV.
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"wagelens/internal/dataprocessing"
	"wagelens/internal/exporter"
	"wagelens/pkg/contracts/domain"
)

func main() {
	var (
		path        = flag.String("file", "wage_report.xlsx", "path to the wage report workbook")
		sheet       = flag.String("sheet", "", "sheet name (default: first sheet)")
		metricKey   = flag.String("metric", string(domain.DefaultMetric), "metric for the -out series")
		out         = flag.String("out", "", "write the monthly series to this CSV file")
		headerStart = flag.Int("header-start", 6, "0-based index of the first header row")
		headerRows  = flag.Int("header-rows", 4, "stacked rows per header label")
		dataStart   = flag.Int("data-start", 12, "0-based index of the first data row")
		trailerRows = flag.Int("trailer-rows", 4, "summary rows to drop from the bottom")
	)
	flag.Parse()

	metric := domain.Metric(*metricKey)
	if !metric.Valid() {
		fmt.Fprintf(os.Stderr, "unknown metric %q\n", *metricKey)
		os.Exit(2)
	}

	layout := dataprocessing.Layout{
		Sheet:       *sheet,
		HeaderStart: *headerStart,
		HeaderRows:  *headerRows,
		DataStart:   *dataStart,
		TrailerRows: *trailerRows,
	}

	records, stats, err := dataprocessing.ParseWorkbook(*path, layout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse failed: %v\n", err)
		os.Exit(1)
	}

	minMonth, maxMonth := dataprocessing.DateRange(records)

	fmt.Printf("Workbook: %s\n", *path)
	fmt.Printf("Data rows: %d  loaded: %d  bad dates: %d  non-regular: %d  empty: %d\n",
		stats.DataRows, stats.Loaded, stats.DroppedBadDate, stats.DroppedNonRegular, stats.DroppedEmpty)
	if len(records) > 0 {
		fmt.Printf("Range: %s to %s\n",
			minMonth.Format(domain.PeriodLabelFormat),
			maxMonth.Format(domain.PeriodLabelFormat))
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tMIN\tMAX")
	for _, m := range domain.Metrics() {
		bounds := dataprocessing.GlobalBounds(records, m)
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\n", m.Label(), bounds.Min, bounds.Max)
	}
	tw.Flush()

	if *out == "" {
		return
	}

	series := dataprocessing.MonthlyAverages(records, metric)
	rows := make([][]string, 0, len(series))
	for _, p := range series {
		rows = append(rows, []string{p.Label, decimal.NewFromFloat(p.Average).StringFixed(2)})
	}

	err = exporter.WriteFile(*out, exporter.WriteOptions{
		Headers:   []string{"Period", "Average " + metric.Label()},
		Records:   rows,
		BOMPrefix: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d rows to %s\n", len(rows), *out)
}
