package dataprocessing

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"wagelens/pkg/contracts/domain"
)

// Layout is the physical placement of the wage report's header block and
// data region. The Insperity export wraps each column label across four
// stacked rows and closes the sheet with summary rows that are not records.
type Layout struct {
	Sheet       string
	HeaderStart int
	HeaderRows  int
	DataStart   int
	TrailerRows int
}

// DefaultLayout matches the observed export: header rows 7-10, data from
// row 13, four trailing summary rows.
func DefaultLayout() Layout {
	return Layout{
		HeaderStart: 6,
		HeaderRows:  4,
		DataStart:   12,
		TrailerRows: 4,
	}
}

// ParseStats reports what the loader kept and what it discarded. Dropped
// rows used to vanish silently; surfacing the counts makes data loss visible.
type ParseStats struct {
	DataRows          int `json:"data_rows"`
	Loaded            int `json:"loaded"`
	DroppedBadDate    int `json:"dropped_bad_date"`
	DroppedNonRegular int `json:"dropped_non_regular"`
	DroppedEmpty      int `json:"dropped_empty"`
}

// MissingColumnError reports projected columns absent from the
// reconstructed header.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("wage report is missing required columns: %s", strings.Join(e.Columns, ", "))
}

// ColumnCountError reports a data row wider than the reconstructed header,
// which means the assumed layout does not match the sheet.
type ColumnCountError struct {
	Row         int
	Width       int
	HeaderWidth int
}

func (e *ColumnCountError) Error() string {
	return fmt.Sprintf("row %d has %d columns but the header defines %d", e.Row+1, e.Width, e.HeaderWidth)
}

// LayoutError reports a sheet too short for the configured offsets.
type LayoutError struct {
	Rows     int
	Required int
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("sheet has %d rows but the layout requires at least %d", e.Rows, e.Required)
}

// projectedColumns are the reconstructed header labels the pipeline needs,
// matching the wage report export. Everything else on the sheet is ignored.
var projectedColumns = []string{
	"Employee Name", "Employee ID", "Job Title", "Check Number",
	"Classification", "Client Hire Date", "Client ID", "Client Name",
	"Default Annual Pay", "Default Pay Amount", "Default Pay Rate",
	"Department Name", "Department Number", "Employee Status",
	"Insperity Client Name", "Insperity Hire Date", "Job Category",
	"Job Function", "Pay Date", "Pay Frequency", "Payroll Type",
	"Period Begin Date", "Period End Date", "Supervisor Name",
	"TOTALS Net Pay Portion", "Gross Pay Amount", "Overhead Portion",
	"Payroll Cost Amount", "Return to Client Ded Portion",
	"Invoice Charges & Fees Portion", "Amount Due Portion",
}

// ParseWorkbook reads a wage report workbook and returns the Regular
// payroll records plus load statistics.
func ParseWorkbook(path string, layout Layout) ([]domain.PayrollRecord, *ParseStats, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := layout.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	return parseRows(rows, layout)
}

// parseRows runs the pipeline over raw sheet rows. Split from the file
// handling so tests can drive it with in-memory data.
func parseRows(rows [][]string, layout Layout) ([]domain.PayrollRecord, *ParseStats, error) {
	if len(rows) < layout.DataStart {
		return nil, nil, &LayoutError{Rows: len(rows), Required: layout.DataStart}
	}

	headers := ReconstructHeaders(rows[layout.HeaderStart : layout.HeaderStart+layout.HeaderRows])

	columns := make(map[string]int, len(headers))
	for i, label := range headers {
		if label == "" {
			continue
		}
		if _, seen := columns[label]; !seen {
			columns[label] = i
		}
	}

	var missing []string
	for _, name := range projectedColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, nil, &MissingColumnError{Columns: missing}
	}

	data := rows[layout.DataStart:]
	if layout.TrailerRows > 0 {
		if len(data) <= layout.TrailerRows {
			data = nil
		} else {
			data = data[:len(data)-layout.TrailerRows]
		}
	}

	stats := &ParseStats{DataRows: len(data)}
	records := make([]domain.PayrollRecord, 0, len(data))

	for i, row := range data {
		if len(row) > len(headers) {
			return nil, nil, &ColumnCountError{
				Row:         layout.DataStart + i,
				Width:       len(row),
				HeaderWidth: len(headers),
			}
		}

		cell := func(name string) string {
			idx := columns[name]
			if idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}

		if rowEmpty(row) {
			stats.DroppedEmpty++
			continue
		}

		periodEnd, err := ParseCellDate(cell("Period End Date"))
		if err != nil {
			stats.DroppedBadDate++
			slog.Debug("dropping row with unparseable period end date",
				slog.Int("row", layout.DataStart+i),
				slog.String("value", cell("Period End Date")))
			continue
		}

		payrollType := cell("Payroll Type")
		if payrollType != domain.PayrollTypeRegular {
			stats.DroppedNonRegular++
			continue
		}

		records = append(records, domain.PayrollRecord{
			EmployeeName:      cell("Employee Name"),
			EmployeeID:        cell("Employee ID"),
			JobTitle:          cell("Job Title"),
			JobFunction:       cell("Job Function"),
			JobCategory:       cell("Job Category"),
			Classification:    cell("Classification"),
			CheckNumber:       cell("Check Number"),
			ClientHireDate:    cell("Client Hire Date"),
			ClientID:          cell("Client ID"),
			ClientName:        cell("Client Name"),
			InsperityClient:   cell("Insperity Client Name"),
			InsperityHireDate: cell("Insperity Hire Date"),
			DefaultAnnualPay:  cell("Default Annual Pay"),
			DefaultPayAmount:  cell("Default Pay Amount"),
			DefaultPayRate:    cell("Default Pay Rate"),
			DepartmentName:    cell("Department Name"),
			DepartmentNumber:  cell("Department Number"),
			EmployeeStatus:    cell("Employee Status"),
			SupervisorName:    cell("Supervisor Name"),
			PayDate:           cell("Pay Date"),
			PayFrequency:      cell("Pay Frequency"),
			PayrollType:       payrollType,
			PeriodBegin:       cell("Period Begin Date"),
			PeriodEnd:         periodEnd,
			MonthBucket:       domain.MonthStart(periodEnd),
			NetPayPortion:     ParseMoney(cell("TOTALS Net Pay Portion")),
			GrossPayAmount:    ParseMoney(cell("Gross Pay Amount")),
			OverheadPortion:   ParseMoney(cell("Overhead Portion")),
			PayrollCostAmount: ParseMoney(cell("Payroll Cost Amount")),
			ReturnDedPortion:  ParseMoney(cell("Return to Client Ded Portion")),
			FeesPortion:       ParseMoney(cell("Invoice Charges & Fees Portion")),
			AmountDuePortion:  ParseMoney(cell("Amount Due Portion")),
		})
		stats.Loaded++
	}

	slog.Info("wage report loaded",
		slog.Int("data_rows", stats.DataRows),
		slog.Int("loaded", stats.Loaded),
		slog.Int("dropped_bad_date", stats.DroppedBadDate),
		slog.Int("dropped_non_regular", stats.DroppedNonRegular),
		slog.Int("dropped_empty", stats.DroppedEmpty))

	return records, stats, nil
}

// ReconstructHeaders merges stacked header rows into one label per column.
// Blank cells contribute nothing; runs of whitespace collapse to a single
// space and labels carry no leading or trailing whitespace.
func ReconstructHeaders(headerRows [][]string) []string {
	width := 0
	for _, row := range headerRows {
		if len(row) > width {
			width = len(row)
		}
	}

	headers := make([]string, width)
	for col := 0; col < width; col++ {
		parts := make([]string, 0, len(headerRows))
		for _, row := range headerRows {
			if col < len(row) {
				parts = append(parts, row[col])
			}
		}
		headers[col] = strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
	}

	return headers
}

// dateLayouts are the cell formats Period End Date shows up in, depending
// on the cell style of the export.
var dateLayouts = []string{
	"01-02-06",
	"1-2-06",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"Jan 2, 2006",
	"2-Jan-06",
}

// ParseCellDate parses a date cell. Cells may hold a formatted date string
// or a raw Excel serial number when the column carries no date style.
func ParseCellDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date cell")
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid excel date serial %q: %w", value, err)
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// ParseMoney parses a monetary cell into a decimal. Thousands separators,
// currency signs and accounting-style parentheses are tolerated; anything
// unparseable is treated as zero, matching how the export leaves blank
// cells for zero amounts.
func ParseMoney(value string) decimal.Decimal {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero
	}

	negative := false
	if strings.HasPrefix(value, "(") && strings.HasSuffix(value, ")") {
		negative = true
		value = value[1 : len(value)-1]
	}

	value = strings.ReplaceAll(value, ",", "")
	value = strings.TrimPrefix(value, "$")

	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		return d.Neg()
	}
	return d
}

// rowEmpty reports whether every cell in the row is blank.
func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
