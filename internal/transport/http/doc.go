// Package http implements the HTTP handlers for the wage dashboard API.
// Handlers stay thin: they decode and validate the query string, delegate
// to the dashboard service, and translate service errors into responses.
//
// # Endpoints
//
//	GET /options  - selector values, date range and metric catalogue
//	GET /series   - monthly averages for the filtered selection
//	GET /summary  - descriptive statistics for the filtered selection
//	GET /export   - the series as a CSV download
//
// All endpoints share one query-string contract: from/to as YYYY-MM
// months, repeated employee params, the four categorical selectors and a
// metric key. An empty selection renders as status "empty" with HTTP 200
// on the JSON endpoints; only the CSV export treats it as 404, since
// there is no meaningful empty download. Faults render as RFC 7807
// problem documents.
package http
