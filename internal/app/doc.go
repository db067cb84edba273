// Package app provides application initialization and lifecycle
// management for the wage dashboard server.
//
// # Initialization Flow
//
//	1. Load and validate configuration
//	2. Initialize structured logging
//	3. Validate and parse the wage report workbook
//	4. Create the Prometheus metrics bundle
//	5. Wire the router: middleware, API routes, embedded frontend
//	6. Start the HTTP server with graceful shutdown on SIGINT/SIGTERM
//
// The workbook is loaded exactly once; a workbook that cannot be parsed
// is a startup failure, not a degraded runtime state.
package app
