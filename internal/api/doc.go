// Package api implements the HTTP REST API of the sizing service.
//
// This package provides:
//   - POST /api/v1/sizing to size a posted building document
//   - GET /api/v1/runs and /api/v1/runs/{id} to read recorded runs
//   - GET /api/v1/health with per-dependency status
//   - Middleware stack (request ID, logging, recovery, CORS, body limit)
//
// # Error Mapping
//
// Malformed documents are 400. Invalid buildings and sizing failures
// (swh.ErrData, swh.ErrDomain) are 422. Unknown run IDs are 404.
//
// # Graceful Degradation
//
// The server operates without a run store: sizing still works and the runs
// endpoints return 503.
package api
