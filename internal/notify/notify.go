// Package notify implements the real-time notification subsystem: a registry
// of live WebSocket connections, the origin admission policy applied before a
// connection is accepted, and the dispatcher that fans notifications out to
// one or all of them.
package notify

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Request is the client-supplied payload of a send_notification message.
type Request struct {
	Title    string  `json:"title"`
	Message  string  `json:"message"`
	AppName  *string `json:"app_name,omitempty"`
	Duration *int    `json:"duration,omitempty"`
	// TargetID addresses a single connection; empty means broadcast to all.
	TargetID string `json:"target_id,omitempty"`
}

var (
	ErrMissingTitle   = errors.New("notification title is required")
	ErrMissingMessage = errors.New("notification message is required")
)

// Validate checks the required fields before a Request reaches the dispatcher.
func (r Request) Validate() error {
	if r.Title == "" {
		return ErrMissingTitle
	}
	if r.Message == "" {
		return ErrMissingMessage
	}
	return nil
}

// Notification is the wire record delivered to clients. Immutable once built,
// never persisted.
type Notification struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	AppName   *string `json:"app_name"`
	Timestamp int64   `json:"timestamp"`
}

// NewNotification builds a Notification from a validated request with a fresh
// id and wall-clock millisecond timestamp.
func NewNotification(req Request) Notification {
	return Notification{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Message:   req.Message,
		AppName:   req.AppName,
		Timestamp: time.Now().UnixMilli(),
	}
}

// Connection is a live client as the registry sees it. Send abstracts over the
// transport handle so this package never imports the websocket library.
type Connection struct {
	ID   string
	Send func(v any) error
}
