package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != 5001 {
		t.Errorf("Expected default port 5001, got %d", cfg.Port)
	}
	if cfg.CameraURL != "cctv_tg.mp4" {
		t.Errorf("Expected default camera URL cctv_tg.mp4, got %s", cfg.CameraURL)
	}
	if cfg.ModelName != "moondream" {
		t.Errorf("Expected default model moondream, got %s", cfg.ModelName)
	}
	if cfg.LogCapacity != 100 {
		t.Errorf("Expected default log capacity 100, got %d", cfg.LogCapacity)
	}
	if cfg.ReconnectDelay != time.Second {
		t.Errorf("Expected default reconnect delay 1s, got %s", cfg.ReconnectDelay)
	}
	if cfg.AlertsEnabled {
		t.Error("Expected alerts disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CAMERA_URL", "rtsp://example.com/stream")
	t.Setenv("LOG_CAPACITY", "25")
	t.Setenv("RECONNECT_DELAY", "500ms")
	t.Setenv("ALERTS_ENABLED", "true")

	cfg := Load()

	if cfg.Port != 9000 {
		t.Errorf("Expected port 9000, got %d", cfg.Port)
	}
	if cfg.CameraURL != "rtsp://example.com/stream" {
		t.Errorf("Unexpected camera URL: %s", cfg.CameraURL)
	}
	if cfg.LogCapacity != 25 {
		t.Errorf("Expected log capacity 25, got %d", cfg.LogCapacity)
	}
	if cfg.ReconnectDelay != 500*time.Millisecond {
		t.Errorf("Expected reconnect delay 500ms, got %s", cfg.ReconnectDelay)
	}
	if !cfg.AlertsEnabled {
		t.Error("Expected alerts enabled")
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("RECONNECT_DELAY", "soon")
	t.Setenv("ALERTS_ENABLED", "maybe")

	cfg := Load()

	if cfg.Port != 5001 {
		t.Errorf("Expected fallback port 5001, got %d", cfg.Port)
	}
	if cfg.ReconnectDelay != time.Second {
		t.Errorf("Expected fallback reconnect delay 1s, got %s", cfg.ReconnectDelay)
	}
	if cfg.AlertsEnabled {
		t.Error("Expected fallback alerts disabled")
	}
}
