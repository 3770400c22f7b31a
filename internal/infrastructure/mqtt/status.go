package mqtt

import (
	"encoding/json"
	"time"
)

// Service status values.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// Offline reasons.
const (
	ReasonShutdown             = "graceful_shutdown"
	ReasonUnexpectedDisconnect = "unexpected_disconnect"
)

// ServiceInfo identifies the running sizing service in status messages.
type ServiceInfo struct {
	Version    string `json:"version"`
	SpaceTypes int    `json:"space_types"`
	Schedules  int    `json:"schedules"`
}

// StatusPayload is the retained message on Topics{}.Status().
//
// RequestTopic is set only while the service is online and subscribed to
// sizing requests, so a sender can tell a publishing-only batch run from a
// service that accepts work.
type StatusPayload struct {
	Status       string `json:"status"`
	ClientID     string `json:"client_id"`
	Reason       string `json:"reason,omitempty"`
	RequestTopic string `json:"request_topic,omitempty"`
	Timestamp    string `json:"timestamp"`
	ServiceInfo
}

func (c *Client) statusPayload(status, reason string) []byte {
	p := StatusPayload{
		Status:      status,
		ClientID:    c.cfg.Broker.ClientID,
		Reason:      reason,
		Timestamp:   c.now().UTC().Format(time.RFC3339),
		ServiceInfo: c.info,
	}
	if status == StatusOnline && c.requestHandler() != nil {
		p.RequestTopic = Topics{}.AllSizingRequests()
	}

	payload, _ := json.Marshal(p)
	return payload
}
