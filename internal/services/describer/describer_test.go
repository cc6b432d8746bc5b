package describer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"argus-monitor-go/internal/models"
)

func testService(baseURL string) *Service {
	return &Service{
		baseURL: baseURL,
		model:   "moondream",
		client:  &http.Client{Timeout: 2 * time.Second},
		encode: func(frame models.Frame) ([]byte, error) {
			return []byte{0xFF, 0xD8, 0xFF}, nil
		},
	}
}

func testFrame() models.Frame {
	return models.Frame{Data: []byte{1, 2, 3}, Width: 1, Height: 1, Format: "BGR24"}
}

func TestDescribeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Bad request body: %v", err)
		}
		if req.Model != "moondream" {
			t.Errorf("Expected model moondream, got %s", req.Model)
		}
		if req.Stream {
			t.Error("Expected stream=false")
		}
		if len(req.Messages) != 1 || len(req.Messages[0].Images) != 1 {
			t.Fatalf("Expected one message with one image, got %+v", req.Messages)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": map[string]string{"role": "assistant", "content": "  A person walks by.  "},
			"done":    true,
		})
	}))
	defer srv.Close()

	got := testService(srv.URL).Describe(context.Background(), testFrame(), 7)
	if got != "A person walks by." {
		t.Errorf("Expected trimmed description, got %q", got)
	}
}

func TestDescribeFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "http error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "model not found", http.StatusNotFound)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
		{
			name: "error field set",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]string{"error": "out of memory"})
			},
		},
		{
			name: "empty content",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]interface{}{
					"message": map[string]string{"role": "assistant", "content": "   "},
					"done":    true,
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			got := testService(srv.URL).Describe(context.Background(), testFrame(), 1)
			if got != FallbackDescription {
				t.Errorf("Expected fallback description, got %q", got)
			}
		})
	}
}

func TestDescribeFallbackOnUnreachableService(t *testing.T) {
	got := testService("http://127.0.0.1:1").Describe(context.Background(), testFrame(), 1)
	if got != FallbackDescription {
		t.Errorf("Expected fallback description, got %q", got)
	}
}

func TestDescribeFallbackOnEncodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Request should not be sent when encoding fails")
	}))
	defer srv.Close()

	s := testService(srv.URL)
	s.encode = func(frame models.Frame) ([]byte, error) {
		return nil, errors.New("bad frame")
	}

	got := s.Describe(context.Background(), testFrame(), 1)
	if got != FallbackDescription {
		t.Errorf("Expected fallback description, got %q", got)
	}
}
