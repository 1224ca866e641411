package gesture

import (
	"context"
	"errors"
	"image"
	"io"
	"sync"
	"time"
)

// ScriptStep is one scripted frame: the frame time and the detection the
// scripted detector returns for it (Err makes Detect fail instead).
type ScriptStep struct {
	Time      time.Duration
	Detection Detection
	Err       error
}

// Script is an in-memory camera + detector pair that replays a fixed list of
// steps, then ends the stream. It records how resources were used so callers
// can check that Loop released them.
type Script struct {
	Steps []ScriptStep
	// Interval paces Next; zero replays as fast as possible.
	Interval time.Duration

	OpenErr     error
	DetectorErr error

	mu             sync.Mutex
	next           int
	detectCalls    int
	detectorClosed bool
	streamClosed   bool
	streamOpened   bool
}

func (s *Script) Open(ctx context.Context, req CameraRequest) (Stream, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.OpenErr != nil {
		return nil, s.OpenErr
	}
	s.streamOpened = true
	return scriptStream{s}, nil
}

// Detectors returns a factory that hands out the scripted detector.
func (s *Script) Detectors() DetectorFactory {
	return func(ctx context.Context) (Detector, error) {
		if s.DetectorErr != nil {
			return nil, s.DetectorErr
		}
		return scriptDetector{s}, nil
	}
}

func (s *Script) DetectCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detectCalls
}

// Released reports whether everything that was acquired has been closed.
func (s *Script) Released() (detectorClosed, streamClosed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detectorClosed, s.streamClosed
}

func (s *Script) StreamOpened() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streamOpened
}

type scriptStream struct{ s *Script }

var blankFrame = image.NewGray(image.Rect(0, 0, 4, 3))

func (st scriptStream) Next(ctx context.Context) (Frame, error) {
	if st.s.Interval > 0 {
		select {
		case <-ctx.Done():
			return Frame{}, ctx.Err()
		case <-time.After(st.s.Interval):
		}
	} else if err := ctx.Err(); err != nil {
		return Frame{}, err
	}

	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	if st.s.next >= len(st.s.Steps) {
		return Frame{}, io.EOF
	}
	step := st.s.Steps[st.s.next]
	st.s.next++
	return Frame{Image: blankFrame, Time: step.Time}, nil
}

func (st scriptStream) Close() error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	st.s.streamClosed = true
	return nil
}

type scriptDetector struct{ s *Script }

var errScriptNoStep = errors.New("script: detect called without a current step")

func (d scriptDetector) Detect(frame image.Image, timestampMs int64) (Detection, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	d.s.detectCalls++
	if d.s.next == 0 {
		return Detection{}, errScriptNoStep
	}
	step := d.s.Steps[d.s.next-1]
	if step.Err != nil {
		return Detection{}, step.Err
	}
	return step.Detection, nil
}

func (d scriptDetector) Close() error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	d.s.detectorClosed = true
	return nil
}

// TwoHands builds a detection with two wrists at the given points.
func TwoHands(ax, ay, bx, by float32) Detection {
	return Detection{Hands: []Hand{
		{{X: ax, Y: ay}},
		{{X: bx, Y: by}},
	}}
}
