package alerting

import (
	"testing"
	"time"

	"argus-monitor-go/internal/config"
	"argus-monitor-go/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		description string
		want        models.Severity
	}{
		{"Everything looks normal.", models.SeverityNormal},
		{"A person walks through the lobby", models.SeverityNormal},
		{"CRITICAL: fire visible near the exit", models.SeverityCritical},
		{"emergency services arriving", models.SeverityCritical},
		{"Possible warning: unattended bag", models.SeverityAlert},
		{"Alert raised by guard", models.SeverityAlert},
		{"decode error artifacts on screen", models.SeverityAlert},
		{"critical alert in progress", models.SeverityCritical}, // critical wins
	}

	for _, tt := range tests {
		if got := Classify(tt.description); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.description, got, tt.want)
		}
	}
}

type fakePublisher struct {
	published []string
	err       error
}

func (f *fakePublisher) Publish(subject string, data interface{}) error {
	if f.err != nil {
		return f.err
	}
	event := data.(models.AlertEvent)
	f.published = append(f.published, event.Severity)
	return nil
}

func (f *fakePublisher) IsConnected() bool { return true }

func testConfig() *config.Config {
	return &config.Config{
		CameraURL:      "test.mp4",
		AlertsSubject:  "surveillance.alerts",
		AlertsCooldown: 10 * time.Second,
	}
}

func TestProcessEntrySkipsNormal(t *testing.T) {
	pub := &fakePublisher{}
	s := NewService(testConfig(), pub)

	severity := s.ProcessEntry(models.LogEntry{FrameNumber: 1, Description: "quiet street"})
	if severity != models.SeverityNormal {
		t.Errorf("Expected normal severity, got %s", severity)
	}
	if len(pub.published) != 0 {
		t.Errorf("Normal entry should not publish, got %d events", len(pub.published))
	}
}

func TestProcessEntryPublishesAndCoolsDown(t *testing.T) {
	pub := &fakePublisher{}
	s := NewService(testConfig(), pub)

	now := time.Unix(1000, 0)
	s.now = func() time.Time { return now }

	s.ProcessEntry(models.LogEntry{FrameNumber: 1, Description: "warning: intruder"})
	s.ProcessEntry(models.LogEntry{FrameNumber: 2, Description: "warning: intruder"})

	if len(pub.published) != 1 {
		t.Fatalf("Expected 1 published event during cooldown, got %d", len(pub.published))
	}
	if pub.published[0] != "alert" {
		t.Errorf("Expected alert severity, got %s", pub.published[0])
	}

	// Different severity has its own cooldown window.
	s.ProcessEntry(models.LogEntry{FrameNumber: 3, Description: "critical smoke"})
	if len(pub.published) != 2 {
		t.Fatalf("Expected critical event to bypass alert cooldown, got %d events", len(pub.published))
	}

	// Past the cooldown the same severity publishes again.
	now = now.Add(11 * time.Second)
	s.ProcessEntry(models.LogEntry{FrameNumber: 4, Description: "warning again"})
	if len(pub.published) != 3 {
		t.Errorf("Expected publish after cooldown expiry, got %d events", len(pub.published))
	}
}

func TestProcessEntryPublishFailureDoesNotCoolDown(t *testing.T) {
	pub := &fakePublisher{err: errFake}
	s := NewService(testConfig(), pub)

	severity := s.ProcessEntry(models.LogEntry{FrameNumber: 1, Description: "warning"})
	if severity != models.SeverityAlert {
		t.Errorf("Expected alert severity despite publish failure, got %s", severity)
	}

	// Failure must not consume the cooldown window.
	pub.err = nil
	s.ProcessEntry(models.LogEntry{FrameNumber: 2, Description: "warning"})
	if len(pub.published) != 1 {
		t.Errorf("Expected retry to publish, got %d events", len(pub.published))
	}
}

var errFake = &publishError{}

type publishError struct{}

func (*publishError) Error() string { return "nats down" }
