// Package gesture turns hand-landmark detections into the explosion target.
//
// The camera and the landmark model are external collaborators reached through
// the Camera, Stream and Detector interfaces. Loop owns their lifetime: it
// acquires them in order, releases everything it acquired on every exit path,
// and feeds each new camera frame through an Extractor.
package gesture

import (
	"context"
	"errors"
	"image"
	"time"
)

var (
	// ErrDeviceUnavailable: the camera or the detector could not be started,
	// or the camera stream failed. The gesture input stays inert.
	ErrDeviceUnavailable = errors.New("gesture device unavailable")
	// ErrDetectorFrame: a single detection failed or returned malformed data.
	// The frame counts as "no hands".
	ErrDetectorFrame = errors.New("gesture detection failed for frame")
)

// Landmark is a hand keypoint in normalized image coordinates ([0,1]²).
type Landmark struct {
	X, Y, Z float32
}

// WristLandmark is the landmark index of the wrist in a hand.
const WristLandmark = 0

// Hand is the landmark list of one detected hand.
type Hand []Landmark

// Detection is the detector output for one frame.
type Detection struct {
	Hands []Hand
}

// Frame is one camera frame. Time is the stream's presentation time and is
// used to recognise a frame that was sampled twice.
type Frame struct {
	Image image.Image
	Time  time.Duration
}

type Detector interface {
	Detect(frame image.Image, timestampMs int64) (Detection, error)
	Close() error
}

// InputSizer is implemented by detectors that want frames scaled to a fixed
// input size before Detect.
type InputSizer interface {
	InputSize() image.Point
}

// DetectorFactory creates the detector; failure means the model is unavailable.
type DetectorFactory func(ctx context.Context) (Detector, error)

// CameraRequest describes the requested video stream.
type CameraRequest struct {
	Width, Height int
	Facing        string
}

// DefaultCameraRequest asks for the user-facing camera at 640x480.
var DefaultCameraRequest = CameraRequest{Width: 640, Height: 480, Facing: "user"}

type Camera interface {
	Open(ctx context.Context, req CameraRequest) (Stream, error)
}

// Stream delivers frames. Next blocks until a frame is available, the context
// is done, or the stream ends (io.EOF).
type Stream interface {
	Next(ctx context.Context) (Frame, error)
	Close() error
}

// Sink receives the target value (explosion.Target satisfies it).
type Sink interface {
	Set(v float32)
}

type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}
