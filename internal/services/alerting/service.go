// Package alerting publishes non-normal log entries to NATS. Severity
// is derived from the same description keywords the dashboard colors
// by; the dashboard's own classification stays client-side.
package alerting

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"argus-monitor-go/internal/config"
	"argus-monitor-go/internal/models"
)

var (
	criticalKeywords = []string{"critical", "emergency"}
	alertKeywords    = []string{"alert", "warning", "error"}
)

// Classify maps a description to a severity by keyword presence.
// Critical keywords win over alert keywords.
func Classify(description string) models.Severity {
	lowered := strings.ToLower(description)
	for _, kw := range criticalKeywords {
		if strings.Contains(lowered, kw) {
			return models.SeverityCritical
		}
	}
	for _, kw := range alertKeywords {
		if strings.Contains(lowered, kw) {
			return models.SeverityAlert
		}
	}
	return models.SeverityNormal
}

// Service publishes alert events with a per-severity cooldown so a
// stuck scene does not flood the subject.
type Service struct {
	cfg       *config.Config
	publisher models.MessagePublisher

	mu       sync.Mutex
	lastSent map[models.Severity]time.Time
	now      func() time.Time
}

func NewService(cfg *config.Config, publisher models.MessagePublisher) *Service {
	s := &Service{
		cfg:       cfg,
		publisher: publisher,
		lastSent:  make(map[models.Severity]time.Time),
		now:       time.Now,
	}

	log.Info().
		Str("subject", cfg.AlertsSubject).
		Dur("cooldown", cfg.AlertsCooldown).
		Msg("Alerting service initialized")

	return s
}

// ProcessEntry classifies entry and publishes it when it is not normal
// and the severity is off cooldown. Failures are logged only; alerting
// never disturbs the surveillance loop.
func (s *Service) ProcessEntry(entry models.LogEntry) models.Severity {
	severity := Classify(entry.Description)
	if severity == models.SeverityNormal {
		return severity
	}

	if !s.checkCooldown(severity) {
		log.Debug().
			Int64("frame_number", entry.FrameNumber).
			Str("severity", severity.String()).
			Msg("Alert blocked by cooldown")
		return severity
	}

	event := models.AlertEvent{
		SourceURL:   s.cfg.CameraURL,
		FrameNumber: entry.FrameNumber,
		Timestamp:   entry.Timestamp,
		Description: entry.Description,
		Severity:    severity.String(),
	}

	if err := s.publisher.Publish(s.cfg.AlertsSubject, event); err != nil {
		log.Warn().
			Err(err).
			Int64("frame_number", entry.FrameNumber).
			Msg("Failed to publish alert")
		return severity
	}

	s.updateCooldown(severity)
	log.Info().
		Int64("frame_number", entry.FrameNumber).
		Str("severity", severity.String()).
		Msg("Alert published")

	return severity
}

func (s *Service) checkCooldown(severity models.Severity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	last, ok := s.lastSent[severity]
	return !ok || s.now().Sub(last) >= s.cfg.AlertsCooldown
}

func (s *Service) updateCooldown(severity models.Severity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSent[severity] = s.now()
}
