package notification

import (
	"context"
	"log/slog"
	"time"
)

// Actions carried by transaction change events.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Message describes a transaction change event. Consumers fetch the full row
// themselves; the event only identifies it.
type Message struct {
	Action        string    `json:"action"`
	TransactionID int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Timestamp     time.Time `json:"timestamp"`
}

// Notifier delivers transaction events to downstream systems.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier writes events to the structured logger. It is the default
// when no broker is configured.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("transaction event",
		"action", message.Action,
		"transaction_id", message.TransactionID,
		"user_id", message.UserID,
	)
	return nil
}
