// Package surveillance drives the capture-and-describe cycle: read a
// frame, obtain a description, append the result to the shared log.
package surveillance

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"argus-monitor-go/internal/config"
	"argus-monitor-go/internal/logstore"
	"argus-monitor-go/internal/models"
	"argus-monitor-go/internal/services/framesource"
)

// FrameReader is the loop's view of the video source.
type FrameReader interface {
	ReadFrame() (models.Frame, bool)
	Close()
}

// Describer turns a frame into a description string. Implementations
// must not fail; degraded output is a string, never an error.
type Describer interface {
	Describe(ctx context.Context, frame models.Frame, frameNumber int64) string
}

// Alerter inspects finished entries for alert-worthy content.
type Alerter interface {
	ProcessEntry(entry models.LogEntry) models.Severity
}

// Loop owns the video source and is the only writer to the log store.
// It runs on a single goroutine; HTTP readers only ever touch the
// store's snapshots.
type Loop struct {
	cfg       *config.Config
	store     *logstore.Store
	describer Describer
	alerter   Alerter

	openSource func() (FrameReader, error)
	now        func() time.Time
	done       chan struct{}
}

// New wires a loop against the real gocv-backed frame source. alerter
// may be nil when alerting is disabled.
func New(cfg *config.Config, store *logstore.Store, describer Describer, alerter Alerter) *Loop {
	return &Loop{
		cfg:       cfg,
		store:     store,
		describer: describer,
		alerter:   alerter,
		openSource: func() (FrameReader, error) {
			return framesource.Open(cfg.CameraURL, cfg.ReconnectDelay)
		},
		now:  time.Now,
		done: make(chan struct{}),
	}
}

// Run executes the loop until ctx is cancelled. The only error it can
// return is a startup failure to open the video source; every later
// failure is absorbed as a skipped cycle or a fallback description.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	log.Info().
		Str("source_url", l.cfg.CameraURL).
		Str("model", l.cfg.ModelName).
		Msg("Surveillance monitor started")

	source, err := l.openSource()
	if err != nil {
		return fmt.Errorf("cannot start surveillance: %w", err)
	}
	defer source.Close()

	var frameCount int64

	for {
		select {
		case <-ctx.Done():
			log.Info().Int64("frames_analyzed", frameCount).Msg("Surveillance monitor stopped")
			return nil
		default:
		}

		frame, ok := source.ReadFrame()
		if !ok {
			// Transient read failure: skip this cycle, counter untouched.
			continue
		}

		frameCount++
		description := l.describer.Describe(ctx, frame, frameCount)

		// A cancellation mid-describe must not append a trailing entry.
		if ctx.Err() != nil {
			log.Info().Int64("frames_analyzed", frameCount).Msg("Surveillance monitor stopped")
			return nil
		}

		entry := models.LogEntry{
			FrameNumber: frameCount,
			Timestamp:   l.now().Format(models.TimestampLayout),
			Description: description,
		}
		l.store.Append(entry)

		severity := models.SeverityNormal
		if l.alerter != nil {
			severity = l.alerter.ProcessEntry(entry)
		}

		log.Info().
			Int64("frame_number", frameCount).
			Str("severity", severity.String()).
			Str("description", description).
			Msg("Frame analyzed")
	}
}

// Done is closed once Run has released the source and returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
