// Package influxdb writes sizing metrics to InfluxDB v2.
//
// It wraps the official influxdb-client-go v2 library. Two measurements
// are written:
//   - swh_demand: hourly design flow per building, day type and hour
//   - swh_sizing: tank volume, heater capacity and pump head per building
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if errors.Is(err, influxdb.ErrDisabled) {
//	    // metrics are optional
//	}
//	defer client.Close()
//
//	client.WriteSizing(result)
//	client.WriteDemandProfile(result.Building, result.Profile)
//
// Writes are non-blocking and batched according to config.yaml settings
// (batch_size, flush_interval). Async write errors are delivered to the
// SetOnError callback.
package influxdb
