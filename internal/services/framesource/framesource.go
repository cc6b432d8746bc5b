// Package framesource wraps the video input and hides reconnect churn
// from the surveillance loop.
package framesource

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gocv.io/x/gocv"

	"argus-monitor-go/internal/models"
)

// ErrSourceUnavailable reports that the source could not be opened at
// all. This is fatal for the loop: there is nothing to monitor.
var ErrSourceUnavailable = errors.New("video source unavailable")

// capture abstracts a single open video handle.
type capture interface {
	grab() (models.Frame, bool)
	release()
}

type openFunc func(url string) (capture, error)

// Source produces frames from a file path or stream URL. A failed read
// triggers one release/pause/reopen cycle before the read is declared
// lost; the handle persists across cycles otherwise.
type Source struct {
	url            string
	reconnectDelay time.Duration
	open           openFunc
	cap            capture
}

// Open binds a source to url. The FFmpeg backend is used, matching the
// behavior expected from RTSP streams and container files alike.
func Open(url string, reconnectDelay time.Duration) (*Source, error) {
	return openWith(url, reconnectDelay, openGocv)
}

func openWith(url string, reconnectDelay time.Duration, open openFunc) (*Source, error) {
	cap, err := open(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, url, err)
	}

	log.Info().Str("source_url", url).Msg("Video source opened")

	return &Source{
		url:            url,
		reconnectDelay: reconnectDelay,
		open:           open,
		cap:            cap,
	}, nil
}

// ReadFrame attempts one read. On failure it releases the handle,
// pauses to avoid a hot reconnect spin, reopens the source and retries
// exactly once. Returns false when no frame could be produced this
// cycle; the caller skips the cycle and tries again later.
func (s *Source) ReadFrame() (models.Frame, bool) {
	if frame, ok := s.cap.grab(); ok {
		return frame, true
	}

	log.Warn().Str("source_url", s.url).Msg("Frame read failed, reconnecting camera")
	s.cap.release()
	time.Sleep(s.reconnectDelay)

	fresh, err := s.open(s.url)
	if err != nil {
		log.Warn().Err(err).Str("source_url", s.url).Msg("Reconnect failed")
		s.cap = deadCapture{}
		return models.Frame{}, false
	}
	s.cap = fresh

	return s.cap.grab()
}

// Close releases the underlying handle.
func (s *Source) Close() {
	s.cap.release()
}

// deadCapture stands in after a failed reopen so the next cycle goes
// straight back into the reconnect path.
type deadCapture struct{}

func (deadCapture) grab() (models.Frame, bool) { return models.Frame{}, false }
func (deadCapture) release()                   {}

type gocvCapture struct {
	vc  *gocv.VideoCapture
	img gocv.Mat
}

func openGocv(url string) (capture, error) {
	vc, err := gocv.OpenVideoCaptureWithAPI(url, gocv.VideoCaptureFFmpeg)
	if err != nil {
		return nil, err
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("video capture is not opened for %s", url)
	}
	return &gocvCapture{vc: vc, img: gocv.NewMat()}, nil
}

func (c *gocvCapture) grab() (models.Frame, bool) {
	if ok := c.vc.Read(&c.img); !ok || c.img.Empty() {
		return models.Frame{}, false
	}
	return models.Frame{
		Data:      c.img.ToBytes(),
		Width:     c.img.Cols(),
		Height:    c.img.Rows(),
		Timestamp: time.Now(),
		Format:    "BGR24",
	}, true
}

func (c *gocvCapture) release() {
	c.img.Close()
	c.vc.Close()
}
