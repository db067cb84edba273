// Package config provides centralized configuration management for the
// wage dashboard. It loads settings from the environment and an optional
// YAML file, validates them, and exposes a typed Config to the rest of
// the application.
//
// # Configuration Sources
//
// Configuration is loaded in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. config.yaml or configs/config.yaml
//	3. Struct defaults (lowest priority)
//
// # Environment Variables
//
// All variables are namespaced under WAGELENS_*:
//
//	WAGELENS_SERVER_PORT=8080
//	WAGELENS_WORKBOOK_PATH=wage_report.xlsx
//	WAGELENS_WORKBOOK_SHEET=Sheet1
//	WAGELENS_LOGGING_LEVEL=info
//	WAGELENS_SECURITY_ENABLE_CORS=true
//
// # Workbook Layout
//
// The workbook section declares the positional contract of the wage
// report export: where the stacked header block starts, how many rows it
// spans, where data begins and how many trailing summary rows to drop.
// Validation rejects offsets where the data region would overlap the
// header block, so a misdeclared layout fails at startup rather than
// producing garbage records.
package config
