package models

import "time"

// TimestampLayout is the wall-clock format recorded on every log entry.
const TimestampLayout = "2006-01-02 15:04:05"

// Severity classifies a description by keyword content.
type Severity string

const (
	SeverityNormal   Severity = "normal"
	SeverityAlert    Severity = "alert"
	SeverityCritical Severity = "critical"
)

// String returns the string representation of Severity
func (s Severity) String() string {
	return string(s)
}

// Frame represents a single decoded frame from the video source
type Frame struct {
	Data      []byte // BGR pixel data
	Width     int
	Height    int
	Timestamp time.Time
	Format    string
}

// LogEntry is one frame's analysis result. Entries are immutable once
// created; the store only appends and evicts them.
type LogEntry struct {
	FrameNumber int64  `json:"frame_number"`
	Timestamp   string `json:"timestamp"`
	Description string `json:"description"`
}

// AlertEvent is the payload published to NATS for non-normal entries.
type AlertEvent struct {
	SourceURL   string `json:"source_url"`
	FrameNumber int64  `json:"frame_number"`
	Timestamp   string `json:"timestamp"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// MessagePublisher abstracts the messaging layer for alert publishing
type MessagePublisher interface {
	Publish(subject string, data interface{}) error
	IsConnected() bool
}
