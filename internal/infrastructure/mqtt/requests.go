package mqtt

import (
	"fmt"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

// SubscribeRequests starts receiving sizing requests on
// Topics{}.AllSizingRequests(). The subscription is renewed after every
// reconnect and the online status is republished with the request topic.
//
// Messages on topics that carry no request ID are logged and dropped.
//
// Returns:
//   - error: ErrNotConnected, or ErrSubscribeFailed if the broker rejects it
func (c *Client) SubscribeRequests(handler RequestHandler) error {
	if handler == nil {
		return fmt.Errorf("%w: handler cannot be nil", ErrSubscribeFailed)
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}

	c.mu.Lock()
	c.requests = handler
	c.mu.Unlock()

	token := c.client.Subscribe(Topics{}.AllSizingRequests(), byte(c.cfg.QoS), c.wrapRequests(handler))
	if err := wait(token, operationTimeout); err != nil {
		c.mu.Lock()
		c.requests = nil
		c.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrSubscribeFailed, err)
	}

	c.publishStatus(StatusOnline, "")
	return nil
}

// wrapRequests adapts a RequestHandler to paho, extracting the request ID
// and recovering handler panics.
func (c *Client) wrapRequests(handler RequestHandler) pahomqtt.MessageHandler {
	return func(_ pahomqtt.Client, msg pahomqtt.Message) {
		logger := c.getLogger()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("sizing request handler panic recovered", "topic", msg.Topic(), "panic", r)
			}
		}()

		requestID, ok := Topics{}.RequestID(msg.Topic())
		if !ok {
			logger.Warn("dropping message on unexpected request topic", "topic", msg.Topic())
			return
		}
		if err := handler(requestID, msg.Payload()); err != nil {
			logger.Warn("sizing request failed", "request_id", requestID, "error", err)
		}
	}
}
