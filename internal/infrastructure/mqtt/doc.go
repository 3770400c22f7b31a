// Package mqtt connects the sizing service to an MQTT broker.
//
// The client announces the service on a retained status topic, with a will
// that flips it to offline if the process dies. The status carries the
// service version and the size of the loaded standards tables.
//
// # Topics
//
//	graylogic/swh/status              retained online/offline service status
//	graylogic/swh/sizing/{building}   retained latest sizing result
//	graylogic/swh/failure/{building}  error of a failed sizing
//	graylogic/swh/request/{id}        building document to size
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT, mqtt.ServiceInfo{
//	    Version:    version,
//	    SpaceTypes: tables.SpaceTypeCount(),
//	    Schedules:  tables.ScheduleCount(),
//	})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.SubscribeRequests(func(requestID string, payload []byte) error {
//	    return sizeRequest(requestID, payload)
//	})
//
//	client.PublishSizing(report.Result.Building, report)
//
// # Security Considerations
//
//   - Enable TLS for anything beyond local development (cfg.Broker.TLS=true)
//   - Credentials are validated against the broker ACL
package mqtt
