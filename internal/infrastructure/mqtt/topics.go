package mqtt

import (
	"fmt"
	"strings"
)

// TopicPrefix is the base for all sizing service topics.
const TopicPrefix = "graylogic/swh"

// Topics provides builders for the sizing service MQTT topics.
//
//	topics := mqtt.Topics{}
//	topics.SizingResult("Clinic North")
//	// Returns: "graylogic/swh/sizing/Clinic North"
type Topics struct{}

// Status returns the retained online/offline status topic.
//
// Example: graylogic/swh/status
func (Topics) Status() string {
	return TopicPrefix + "/status"
}

// SizingResult returns the retained topic carrying the latest sizing result
// of a building.
//
// Example: graylogic/swh/sizing/clinic-north
func (Topics) SizingResult(building string) string {
	return fmt.Sprintf("%s/sizing/%s", TopicPrefix, topicSegment(building))
}

// SizingFailure returns the topic carrying the error of a failed sizing.
//
// Example: graylogic/swh/failure/clinic-north
func (Topics) SizingFailure(building string) string {
	return fmt.Sprintf("%s/failure/%s", TopicPrefix, topicSegment(building))
}

// SizingRequest returns the topic a building document is published to for
// sizing. The final segment is a caller-chosen request ID.
//
// Example: graylogic/swh/request/req-abc123
func (Topics) SizingRequest(requestID string) string {
	return fmt.Sprintf("%s/request/%s", TopicPrefix, topicSegment(requestID))
}

// AllSizingRequests returns a wildcard matching every sizing request.
//
// Pattern: graylogic/swh/request/+
func (Topics) AllSizingRequests() string {
	return TopicPrefix + "/request/+"
}

// AllSizingResults returns a wildcard matching every sizing result.
//
// Pattern: graylogic/swh/sizing/+
func (Topics) AllSizingResults() string {
	return TopicPrefix + "/sizing/+"
}

// RequestID extracts the request ID from a sizing request topic.
// It returns false if topic is not a sizing request topic.
func (Topics) RequestID(topic string) (string, bool) {
	id, ok := strings.CutPrefix(topic, TopicPrefix+"/request/")
	if !ok || id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

// topicSegment makes s safe to use as a single topic level. Wildcard and
// separator characters are replaced with '_'.
func topicSegment(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '+', '#', 0:
			return '_'
		}
		return r
	}, s)
}
