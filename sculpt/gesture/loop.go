package gesture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Status is the externally visible state of the detection loop.
type Status int

const (
	StatusInitializing Status = iota
	StatusActive
	StatusUnavailable
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "Initializing Vision..."
	case StatusActive:
		return "Gesture Active"
	case StatusUnavailable:
		return "Gesture Unavailable"
	case StatusStopped:
		return "Gesture Stopped"
	}
	return "unknown"
}

// Loop is the detection loop: camera frame -> detector -> target.
type Loop struct {
	Camera    Camera
	Detectors DetectorFactory
	Request   CameraRequest
	Target    Sink
	Log       Logger

	// OnStatus, if set, is called from the loop goroutine on every status change.
	OnStatus func(Status)

	// now is replaceable in tests.
	now func() time.Time
}

func (l *Loop) setStatus(s Status) {
	if l.OnStatus != nil {
		l.OnStatus(s)
	}
}

// Run acquires the detector and the camera stream, then processes frames until
// ctx is done or the stream ends. Acquisition failures and stream failures
// return an error wrapping ErrDeviceUnavailable; in every case the target is
// left at 0 and whatever was acquired is released before Run returns.
func (l *Loop) Run(ctx context.Context) (err error) {
	log := l.Log
	if log == nil {
		log = nopLogger{}
	}
	now := l.now
	if now == nil {
		now = time.Now
	}
	req := l.Request
	if req.Width == 0 || req.Height == 0 {
		req = DefaultCameraRequest
	}

	sink := l.Target
	if sink == nil {
		sink = discardSink{}
	}

	l.setStatus(StatusInitializing)
	defer func() {
		sink.Set(0)
		if err != nil {
			l.setStatus(StatusUnavailable)
		} else {
			l.setStatus(StatusStopped)
		}
	}()

	if l.Detectors == nil || l.Camera == nil {
		err = fmt.Errorf("no camera or detector configured: %w", ErrDeviceUnavailable)
		log.Errorf("Error initializing hand tracking: %v", err)
		return err
	}

	detector, derr := l.Detectors(ctx)
	if derr != nil {
		err = fmt.Errorf("detector: %w: %v", ErrDeviceUnavailable, derr)
		log.Errorf("Error initializing hand tracking: %v", err)
		return err
	}
	defer func() {
		if cerr := detector.Close(); cerr != nil {
			log.Warnf("closing detector: %v", cerr)
		}
	}()

	stream, serr := l.Camera.Open(ctx, req)
	if serr != nil {
		err = fmt.Errorf("camera %dx%d (%s): %w: %v", req.Width, req.Height, req.Facing, ErrDeviceUnavailable, serr)
		log.Errorf("Error initializing hand tracking: %v", err)
		return err
	}
	defer func() {
		if cerr := stream.Close(); cerr != nil {
			log.Warnf("closing camera stream: %v", cerr)
		}
	}()

	extractor := NewExtractor(detector, log)
	start := now()
	l.setStatus(StatusActive)
	log.Infof("hand tracking active (%dx%d, %s)", req.Width, req.Height, req.Facing)

	for {
		frame, ferr := stream.Next(ctx)
		if ferr != nil {
			switch {
			case ctx.Err() != nil, errors.Is(ferr, context.Canceled), errors.Is(ferr, context.DeadlineExceeded):
				return nil
			case errors.Is(ferr, io.EOF):
				log.Infof("camera stream ended")
				return nil
			default:
				err = fmt.Errorf("camera stream: %w: %v", ErrDeviceUnavailable, ferr)
				log.Errorf("%v", err)
				return err
			}
		}

		target, processed := extractor.Process(frame, now().Sub(start).Milliseconds())
		if processed {
			sink.Set(target)
		}
	}
}

type discardSink struct{}

func (discardSink) Set(float32) {}
