// Package batch sizes buildings concurrently and records the results.
//
// A Runner owns the full life of one sizing: create the run record, size
// the building, apply the zone HVAC control rules, write the JSON artifact,
// complete or fail the run, then publish the result to MQTT and InfluxDB
// when those are wired. Run fans a list of building files out over a
// worker pool; SizeBuilding does the same for one in-memory document and
// is what the HTTP API and MQTT request intake call.
package batch
