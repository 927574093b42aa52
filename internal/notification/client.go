package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// NotificationLevel represents the severity level of a notification
type NotificationLevel string

const (
	LevelInfo    NotificationLevel = "info"
	LevelWarning NotificationLevel = "warning"
)

// EventType names the change an employee went through
type EventType string

const (
	EventEmployeeCreated EventType = "employee.created"
	EventEmployeeUpdated EventType = "employee.updated"
	EventEmployeeDeleted EventType = "employee.deleted"
)

const userAgent = "employee-api/1.0"

// errPermanent marks failures that a retry cannot fix
var errPermanent = errors.New("permanent notification failure")

// Notifier is an interface for sending notifications with context support
type Notifier interface {
	SendNotificationWithContext(ctx context.Context, notification Notification) error
	IsHealthy(ctx context.Context) bool
}

// NotificationConfig holds configuration for the notification client
type NotificationConfig struct {
	URL            string
	Timeout        time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
	MaxPayloadSize int64
}

// DefaultConfig returns a default configuration for the notification client
func DefaultConfig(url string) NotificationConfig {
	return NotificationConfig{
		URL:            url,
		Timeout:        10 * time.Second,
		RetryAttempts:  3,
		RetryDelay:     time.Second,
		MaxPayloadSize: 1024 * 1024, // 1MB
	}
}

// Client posts notifications to a webhook
type Client struct {
	config NotificationConfig
	client *http.Client
	logger zerolog.Logger
}

// NewNotifierWithConfig creates a new webhook client with custom configuration
func NewNotifierWithConfig(config NotificationConfig, logger zerolog.Logger) *Client {
	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger.With().Str("component", "notification").Logger(),
	}
}

// Notification represents the payload for the webhook
type Notification struct {
	Event      EventType         `json:"event"`
	Level      NotificationLevel `json:"level"`
	EmployeeID int64             `json:"employeeId"`
	Message    string            `json:"message"`
	Timestamp  time.Time         `json:"timestamp,omitempty"`
	Source     string            `json:"source,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Validate checks if the notification is valid
func (n *Notification) Validate() error {
	switch n.Event {
	case EventEmployeeCreated, EventEmployeeUpdated, EventEmployeeDeleted:
	case "":
		return fmt.Errorf("notification event is required")
	default:
		return fmt.Errorf("invalid notification event: %s", n.Event)
	}

	if n.Level != LevelInfo && n.Level != LevelWarning {
		return fmt.Errorf("invalid notification level: %q", n.Level)
	}
	if n.EmployeeID <= 0 {
		return fmt.Errorf("notification employee id must be positive")
	}
	if n.Message == "" {
		return fmt.Errorf("notification message is required")
	}
	if len(n.Message) > 1000 {
		return fmt.Errorf("notification message too long (max 1000 characters)")
	}
	return nil
}

// SendNotificationWithContext sends a notification, retrying transient failures
func (c *Client) SendNotificationWithContext(ctx context.Context, notification Notification) error {
	if err := notification.Validate(); err != nil {
		return fmt.Errorf("invalid notification: %w", err)
	}

	if notification.Timestamp.IsZero() {
		notification.Timestamp = time.Now().UTC()
	}
	if notification.Source == "" {
		notification.Source = "employee-api"
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.RetryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.config.RetryDelay * time.Duration(attempt)):
			}
			c.logger.Debug().Int("attempt", attempt+1).Int("max_attempts", c.config.RetryAttempts+1).Msg("retrying notification")
		}

		err := c.send(ctx, notification)
		if err == nil {
			return nil
		}

		lastErr = err
		c.logger.Warn().Err(err).Int("attempt", attempt+1).Str("event", string(notification.Event)).Msg("notification attempt failed")

		if errors.Is(err, errPermanent) {
			return err
		}
	}

	return fmt.Errorf("failed to send notification after %d attempts: %w", c.config.RetryAttempts+1, lastErr)
}

// send performs a single notification attempt
func (c *Client) send(ctx context.Context, notification Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal notification: %v", errPermanent, err)
	}

	if int64(len(payload)) > c.config.MaxPayloadSize {
		return fmt.Errorf("%w: payload too large: %d bytes (max %d)", errPermanent, len(payload), c.config.MaxPayloadSize)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", errPermanent, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	switch {
	case resp.StatusCode >= 500:
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(body))
	case resp.StatusCode >= 400:
		return fmt.Errorf("%w: webhook returned status %d: %s", errPermanent, resp.StatusCode, string(body))
	}

	return nil
}

// IsHealthy checks if the webhook endpoint is reachable
func (c *Client) IsHealthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.config.URL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode < 500
}
