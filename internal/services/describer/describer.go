// Package describer turns frames into natural-language descriptions via
// the Ollama chat API.
package describer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"argus-monitor-go/internal/config"
	"argus-monitor-go/internal/helpers"
	"argus-monitor-go/internal/models"
)

// FallbackDescription is substituted whenever the inference call fails
// or returns no usable content.
const FallbackDescription = "Everything looks normal."

const promptTemplate = `You are monitoring a live CCTV frame. Analyze and provide a concise, actionable description.
Frame number: %d`

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatMessage struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

type chatResponse struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done  bool   `json:"done"`
	Error string `json:"error,omitempty"`
}

// Service issues synchronous describe requests against Ollama. One
// request is in flight at a time; the caller's loop is throttled by
// this round-trip on purpose.
type Service struct {
	baseURL string
	model   string
	client  *http.Client
	encode  func(models.Frame) ([]byte, error)
}

// NewService creates a describer bound to the configured Ollama
// endpoint and model.
func NewService(cfg *config.Config) *Service {
	quality := cfg.FrameJPEGQuality
	return &Service{
		baseURL: strings.TrimRight(cfg.OllamaURL, "/"),
		model:   cfg.ModelName,
		client:  &http.Client{Timeout: cfg.DescribeTimeout},
		encode: func(frame models.Frame) ([]byte, error) {
			return helpers.EncodeFrameJPEG(frame, quality)
		},
	}
}

// Describe returns a description for frame. It never fails: any error
// from encoding, transport or the model is logged and mapped to
// FallbackDescription here, at the single fallible call site.
func (s *Service) Describe(ctx context.Context, frame models.Frame, frameNumber int64) string {
	description, err := s.describe(ctx, frame, frameNumber)
	if err != nil {
		log.Warn().
			Err(err).
			Int64("frame_number", frameNumber).
			Str("model", s.model).
			Msg("Describe failed, using fallback description")
		return FallbackDescription
	}
	return description
}

func (s *Service) describe(ctx context.Context, frame models.Frame, frameNumber int64) (string, error) {
	jpeg, err := s.encode(frame)
	if err != nil {
		return "", fmt.Errorf("failed to encode frame: %w", err)
	}

	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{{
			Role:    "user",
			Content: fmt.Sprintf(promptTemplate, frameNumber),
			Images:  []string{base64.StdEncoding.EncodeToString(jpeg)},
		}},
		Stream: false,
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/chat", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach Ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama API error (%d): %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("malformed Ollama response: %w", err)
	}
	if chatResp.Error != "" {
		return "", fmt.Errorf("ollama error: %s", chatResp.Error)
	}

	content := strings.TrimSpace(chatResp.Message.Content)
	if content == "" {
		return "", fmt.Errorf("model returned empty description")
	}
	return content, nil
}
