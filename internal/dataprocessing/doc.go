// Package dataprocessing implements the wage report pipeline: header
// reconstruction, record loading and projection, filtering, and monthly
// aggregation. The package is pure data plumbing; it holds no state and
// does no I/O beyond reading the workbook.
package dataprocessing
