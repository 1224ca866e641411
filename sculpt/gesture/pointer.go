package gesture

import (
	"context"
	"image"
	"sync"
	"time"
)

// PointerState is a pointer sample in window pixels.
type PointerState struct {
	X, Y          float64
	Width, Height int
	Pressed       bool
}

// PointerHands simulates the camera and the hand model with a pointer. While
// the pointer is pressed, two virtual wrists sit mirrored around the window
// centre, as far apart as the pointer is from the centre horizontally.
// Released, no hands are reported.
//
// Sample is called from the detection goroutine; it must be safe for that.
type PointerHands struct {
	Sample    func() PointerState
	FrameRate float64

	mu    sync.Mutex
	state PointerState
}

func (p *PointerHands) Open(ctx context.Context, req CameraRequest) (Stream, error) {
	rate := p.FrameRate
	if rate <= 0 {
		rate = 30
	}
	return &pointerStream{p: p, interval: time.Duration(float64(time.Second) / rate), start: time.Now()}, nil
}

func (p *PointerHands) Detectors() DetectorFactory {
	return func(ctx context.Context) (Detector, error) {
		return pointerDetector{p}, nil
	}
}

// Hands converts a pointer sample to a detection.
func (s PointerState) Hands() Detection {
	if !s.Pressed || s.Width <= 0 || s.Height <= 0 {
		return Detection{}
	}
	cx := float32(0.5)
	off := float32(s.X/float64(s.Width)) - cx
	if off < 0 {
		off = -off
	}
	y := float32(s.Y / float64(s.Height))
	return TwoHands(cx-off, y, cx+off, y)
}

type pointerStream struct {
	p        *PointerHands
	interval time.Duration
	start    time.Time
	frame    *image.Gray
}

func (st *pointerStream) Next(ctx context.Context) (Frame, error) {
	select {
	case <-ctx.Done():
		return Frame{}, ctx.Err()
	case <-time.After(st.interval):
	}
	var state PointerState
	if st.p.Sample != nil {
		state = st.p.Sample()
	}
	st.p.mu.Lock()
	st.p.state = state
	st.p.mu.Unlock()

	if st.frame == nil {
		st.frame = image.NewGray(image.Rect(0, 0, 1, 1))
	}
	return Frame{Image: st.frame, Time: time.Since(st.start)}, nil
}

func (st *pointerStream) Close() error { return nil }

type pointerDetector struct{ p *PointerHands }

func (d pointerDetector) Detect(frame image.Image, timestampMs int64) (Detection, error) {
	d.p.mu.Lock()
	defer d.p.mu.Unlock()
	return d.p.state.Hands(), nil
}

func (d pointerDetector) Close() error { return nil }
