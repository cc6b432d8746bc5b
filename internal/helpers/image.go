package helpers

import (
	"fmt"

	"gocv.io/x/gocv"

	"argus-monitor-go/internal/models"
)

// EncodeFrameJPEG converts a BGR frame into a JPEG payload suitable for
// the inference request.
func EncodeFrameJPEG(frame models.Frame, quality int) ([]byte, error) {
	if len(frame.Data) == 0 {
		return nil, fmt.Errorf("empty frame data")
	}
	if frame.Width <= 0 || frame.Height <= 0 || frame.Width*frame.Height*3 != len(frame.Data) {
		return nil, fmt.Errorf("frame dimensions %dx%d do not match BGR length %d",
			frame.Width, frame.Height, len(frame.Data))
	}

	mat, err := gocv.NewMatFromBytes(frame.Height, frame.Width, gocv.MatTypeCV8UC3, frame.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to create Mat from BGR data: %w", err)
	}
	defer mat.Close()

	jpegBuf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, mat, []int{gocv.IMWriteJpegQuality, quality})
	if err != nil {
		return nil, fmt.Errorf("failed to encode frame as JPEG: %w", err)
	}
	defer jpegBuf.Close()

	// GetBytes returns a view into the native buffer; copy before Close.
	data := jpegBuf.GetBytes()
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
