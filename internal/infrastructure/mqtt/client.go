package mqtt

import (
	"context"
	"crypto/tls"
	"fmt"
	"sync"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nerrad567/gray-logic-swh/internal/infrastructure/config"
)

const (
	connectTimeout    = 10 * time.Second
	operationTimeout  = 5 * time.Second
	disconnectQuiesce = 1000 // milliseconds
	keepAlive         = 60 * time.Second
	maxQoS            = 2
)

// Logger is the logging interface used by the Client.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Error(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}

// RequestHandler sizes one building document received on a request topic.
//
// Handlers are invoked on paho's goroutines. A returned error is logged;
// the runner publishes the failure itself.
//
// Parameters:
//   - requestID: Last level of the request topic
//   - payload: JSON building document
type RequestHandler func(requestID string, payload []byte) error

// Client connects the sizing service to the broker. It publishes sizing
// results and failures, receives sizing requests and keeps a retained
// service status on Topics{}.Status().
//
// All methods are safe for concurrent use.
type Client struct {
	client pahomqtt.Client
	cfg    config.MQTTConfig
	info   ServiceInfo
	now    func() time.Time

	mu        sync.RWMutex
	connected bool
	requests  RequestHandler
	logger    Logger
}

// Connect connects to the broker and announces the service as online.
//
// The will is a retained offline status carrying the same service info, so
// request senders see the service disappear if the connection drops without
// Close. After a reconnect the request subscription is renewed and the
// online status republished.
//
// Parameters:
//   - cfg: MQTT configuration from config.yaml
//   - info: Version and standards table counts announced in status messages
//
// Returns:
//   - *Client: Connected client
//   - error: ErrConnectionFailed if the broker is not reached within 10s
func Connect(cfg config.MQTTConfig, info ServiceInfo) (*Client, error) {
	c := &Client{
		cfg:    cfg,
		info:   info,
		now:    time.Now,
		logger: noopLogger{},
	}

	c.client = pahomqtt.NewClient(c.clientOptions())
	token := c.client.Connect()
	if err := wait(token, connectTimeout); err != nil {
		// Stop the background connect retry.
		c.client.Disconnect(0)
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	// The OnConnectHandler runs asynchronously and may not have executed yet.
	c.setConnected(true)
	return c, nil
}

// clientOptions builds the paho options: broker URL, credentials, TLS,
// reconnect backoff, the offline will and the connection callbacks.
func (c *Client) clientOptions() *pahomqtt.ClientOptions {
	broker := c.cfg.Broker
	scheme := "tcp"
	if broker.TLS {
		scheme = "ssl"
	}

	opts := pahomqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("%s://%s:%d", scheme, broker.Host, broker.Port)).
		SetClientID(broker.ClientID).
		SetCleanSession(true).
		SetKeepAlive(keepAlive).
		SetConnectTimeout(connectTimeout).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(time.Duration(c.cfg.Reconnect.InitialDelay) * time.Second).
		SetMaxReconnectInterval(time.Duration(c.cfg.Reconnect.MaxDelay) * time.Second).
		SetBinaryWill(Topics{}.Status(), c.statusPayload(StatusOffline, ReasonUnexpectedDisconnect), 1, true)

	if c.cfg.Auth.Username != "" {
		opts.SetUsername(c.cfg.Auth.Username)
		opts.SetPassword(c.cfg.Auth.Password)
	}
	if broker.TLS {
		opts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	opts.SetOnConnectHandler(func(pahomqtt.Client) { c.handleConnect() })
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		c.setConnected(false)
		c.getLogger().Warn("MQTT connection lost", "broker", broker.Host, "error", err)
	})
	opts.SetReconnectingHandler(func(pahomqtt.Client, *pahomqtt.ClientOptions) {
		c.getLogger().Warn("MQTT reconnecting", "broker", broker.Host)
	})
	return opts
}

// handleConnect runs on the initial connection and on every reconnect.
func (c *Client) handleConnect() {
	c.setConnected(true)

	if handler := c.requestHandler(); handler != nil {
		// Clean sessions drop subscriptions on the broker side.
		c.client.Subscribe(Topics{}.AllSizingRequests(), byte(c.cfg.QoS), c.wrapRequests(handler))
	}
	c.publishStatus(StatusOnline, "")
}

// publishStatus publishes a retained service status without waiting.
func (c *Client) publishStatus(status, reason string) pahomqtt.Token {
	return c.client.Publish(Topics{}.Status(), byte(c.cfg.QoS), true, c.statusPayload(status, reason))
}

// Close publishes a graceful offline status and disconnects.
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}

	if c.IsConnected() {
		c.publishStatus(StatusOffline, ReasonShutdown).WaitTimeout(operationTimeout)
	}
	c.client.Disconnect(disconnectQuiesce)
	c.setConnected(false)
	return nil
}

// HealthCheck reports ErrNotConnected while the broker connection is down.
func (c *Client) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("mqtt health check: %w", err)
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}
	return nil
}

// IsConnected returns the last known connection state.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected && c.client != nil && c.client.IsConnected()
}

// SetLogger sets the logger for connection events and request errors.
func (c *Client) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	c.mu.Lock()
	c.logger = logger
	c.mu.Unlock()
}

func (c *Client) getLogger() Logger {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.logger == nil {
		return noopLogger{}
	}
	return c.logger
}

func (c *Client) setConnected(v bool) {
	c.mu.Lock()
	c.connected = v
	c.mu.Unlock()
}

func (c *Client) requestHandler() RequestHandler {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.requests
}

// wait blocks until token completes or timeout elapses.
func wait(token pahomqtt.Token, timeout time.Duration) error {
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("timeout after %v", timeout)
	}
	return token.Error()
}
