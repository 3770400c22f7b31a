// Package runs records sizing runs in the sizing_runs table.
//
// Every building sized by the batch runner, the HTTP API or an MQTT request
// gets one row. A run starts as running and ends as succeeded, with the
// JSON sizing result, or failed, with the error text.
package runs
