package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollTypeRegular is the payroll type analyzed by the dashboard. Off-cycle
// and adjustment runs carry other values and are excluded at load time.
const PayrollTypeRegular = "Regular"

// PayrollRecord is one row of the wage report after header reconstruction and
// column projection. Identifier-like fields (Employee ID, Check Number,
// Client ID, Department Number) stay strings: some exports zero-pad them and
// a numeric type would destroy that.
type PayrollRecord struct {
	EmployeeName string `json:"employee_name"`
	EmployeeID   string `json:"employee_id"`

	JobTitle       string `json:"job_title"`
	JobFunction    string `json:"job_function"`
	JobCategory    string `json:"job_category"`
	Classification string `json:"classification"`

	CheckNumber string `json:"check_number"`

	ClientHireDate    string `json:"client_hire_date"`
	ClientID          string `json:"client_id"`
	ClientName        string `json:"client_name"`
	InsperityClient   string `json:"insperity_client_name"`
	InsperityHireDate string `json:"insperity_hire_date"`
	DefaultAnnualPay  string `json:"default_annual_pay"`
	DefaultPayAmount  string `json:"default_pay_amount"`
	DefaultPayRate    string `json:"default_pay_rate"`
	DepartmentName    string `json:"department_name"`
	DepartmentNumber  string `json:"department_number"`
	EmployeeStatus    string `json:"employee_status"`
	SupervisorName    string `json:"supervisor_name"`

	PayDate      string    `json:"pay_date"`
	PayFrequency string    `json:"pay_frequency"`
	PayrollType  string    `json:"payroll_type"`
	PeriodBegin  string    `json:"period_begin_date"`
	PeriodEnd    time.Time `json:"period_end_date"`

	// MonthBucket is the first calendar day of PeriodEnd's month (UTC
	// midnight). It is the grouping key for the time series.
	MonthBucket time.Time `json:"month_bucket"`

	NetPayPortion     decimal.Decimal `json:"net_pay_portion"`
	GrossPayAmount    decimal.Decimal `json:"gross_pay_amount"`
	OverheadPortion   decimal.Decimal `json:"overhead_portion"`
	PayrollCostAmount decimal.Decimal `json:"payroll_cost_amount"`
	ReturnDedPortion  decimal.Decimal `json:"return_to_client_ded_portion"`
	FeesPortion       decimal.Decimal `json:"invoice_charges_fees_portion"`
	AmountDuePortion  decimal.Decimal `json:"amount_due_portion"`
}

// Metric identifies one of the seven monetary columns available for charting.
type Metric string

const (
	MetricNetPay          Metric = "net_pay"
	MetricGrossPay        Metric = "gross_pay"
	MetricOverhead        Metric = "overhead"
	MetricPayrollCost     Metric = "payroll_cost"
	MetricReturnDeduction Metric = "return_deduction"
	MetricFees            Metric = "fees"
	MetricAmountDue       Metric = "amount_due"
)

// DefaultMetric is the metric selected when the UI first loads.
const DefaultMetric = MetricPayrollCost

// Metrics lists the chartable metrics in their display order.
func Metrics() []Metric {
	return []Metric{
		MetricNetPay,
		MetricGrossPay,
		MetricOverhead,
		MetricPayrollCost,
		MetricReturnDeduction,
		MetricFees,
		MetricAmountDue,
	}
}

// metricLabels maps metrics to the wage report column names they average.
var metricLabels = map[Metric]string{
	MetricNetPay:          "TOTALS Net Pay Portion",
	MetricGrossPay:        "Gross Pay Amount",
	MetricOverhead:        "Overhead Portion",
	MetricPayrollCost:     "Payroll Cost Amount",
	MetricReturnDeduction: "Return to Client Ded Portion",
	MetricFees:            "Invoice Charges & Fees Portion",
	MetricAmountDue:       "Amount Due Portion",
}

// Valid reports whether m is one of the seven chartable metrics.
func (m Metric) Valid() bool {
	_, ok := metricLabels[m]
	return ok
}

// Label returns the wage report column name for the metric.
func (m Metric) Label() string {
	return metricLabels[m]
}

// Value returns the record's value for the metric. Unknown metrics return
// zero; callers validate the metric key at the API boundary.
func (m Metric) Value(r *PayrollRecord) decimal.Decimal {
	switch m {
	case MetricNetPay:
		return r.NetPayPortion
	case MetricGrossPay:
		return r.GrossPayAmount
	case MetricOverhead:
		return r.OverheadPortion
	case MetricPayrollCost:
		return r.PayrollCostAmount
	case MetricReturnDeduction:
		return r.ReturnDedPortion
	case MetricFees:
		return r.FeesPortion
	case MetricAmountDue:
		return r.AmountDuePortion
	}
	return decimal.Zero
}

// PeriodLabelFormat renders month buckets for display, e.g. "Jan-2024".
const PeriodLabelFormat = "Jan-2006"

// MonthlyAverage is one point of the aggregated series.
type MonthlyAverage struct {
	Period  time.Time `json:"period"`
	Label   string    `json:"label"`
	Average float64   `json:"average"`
}

// MetricBounds is the global min/max of a metric over the full Regular
// dataset. The chart pins its y-axis to these so the scale stays stable
// while filters narrow the data.
type MetricBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// MonthStart truncates t to the first day of its month in UTC.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
