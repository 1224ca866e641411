package gesture

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetFromDistance(t *testing.T) {
	tests := []struct {
		distance float32
		want     float32
	}{
		{0.0, 0},
		{0.1, 0},
		{0.2, 0},
		{0.4, 0.5},
		{0.6, 1},
		{0.9, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, TargetFromDistance(tt.distance), 1e-5, "distance %v", tt.distance)
	}
	assert.GreaterOrEqual(t, TargetFromDistance(0), float32(0), "must clamp, not go negative")
}

func TestTargetFromDetection(t *testing.T) {
	tests := []struct {
		name string
		det  Detection
		want float32
	}{
		{"no hands", Detection{}, 0},
		{"one hand", Detection{Hands: []Hand{{{X: 0.1, Y: 0.5}}}}, 0},
		{"two hands apart", TwoHands(0.2, 0.5, 0.8, 0.5), 1},
		{"two hands close", TwoHands(0.45, 0.5, 0.55, 0.5), 0},
		{"two hands halfway", TwoHands(0.3, 0.5, 0.7, 0.5), 0.5},
		{"diagonal", TwoHands(0.5, 0.5, 0.5+0.24, 0.5+0.32), 0.5},
		{"hand without landmarks", Detection{Hands: []Hand{{}, {{X: 0.9}}}}, 0},
		{"three hands", Detection{Hands: []Hand{{{X: 0}}, {{X: 1}}, {{X: 0.5}}}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TargetFromDetection(tt.det), 1e-5)
		})
	}
}

func TestWristDistance(t *testing.T) {
	d := TwoHands(0.1, 0.2, 0.4, 0.6)
	assert.InDelta(t, 0.5, WristDistance(d.Hands[0], d.Hands[1]), 1e-6)
	assert.Equal(t, WristDistance(d.Hands[0], d.Hands[1]), WristDistance(d.Hands[1], d.Hands[0]))
	assert.Zero(t, WristDistance(d.Hands[0], d.Hands[0]))
}

func TestTargetFromDetection_OrderIndependent(t *testing.T) {
	a := TwoHands(0.1, 0.2, 0.6, 0.7)
	b := Detection{Hands: []Hand{a.Hands[1], a.Hands[0]}}
	assert.Equal(t, TargetFromDetection(a), TargetFromDetection(b))
}

type countingDetector struct {
	calls int
	det   Detection
	err   error
	size  image.Point
	seen  image.Rectangle
}

func (d *countingDetector) Detect(frame image.Image, ts int64) (Detection, error) {
	d.calls++
	if frame != nil {
		d.seen = frame.Bounds()
	}
	return d.det, d.err
}
func (d *countingDetector) Close() error           { return nil }
func (d *countingDetector) InputSize() image.Point { return d.size }

func TestExtractor_DedupByFrameTime(t *testing.T) {
	det := &countingDetector{det: TwoHands(0.2, 0.5, 0.8, 0.5)}
	ex := NewExtractor(det, nil)

	frame := Frame{Image: image.NewGray(image.Rect(0, 0, 8, 6)), Time: 40 * time.Millisecond}

	target, processed := ex.Process(frame, 1)
	require.True(t, processed)
	assert.Equal(t, float32(1), target)

	_, processed = ex.Process(frame, 2)
	assert.False(t, processed, "same frame sampled twice must be skipped")
	assert.Equal(t, 1, det.calls)

	frame.Time = 80 * time.Millisecond
	_, processed = ex.Process(frame, 3)
	assert.True(t, processed)
	assert.Equal(t, 2, det.calls)
}

func TestExtractor_FirstFrameAtZeroIsProcessed(t *testing.T) {
	det := &countingDetector{}
	ex := NewExtractor(det, nil)
	_, processed := ex.Process(Frame{Time: 0}, 0)
	assert.True(t, processed)
}

func TestExtractor_DetectorErrorMeansNoHands(t *testing.T) {
	det := &countingDetector{det: TwoHands(0, 0, 1, 1), err: errors.New("model crashed")}
	ex := NewExtractor(det, nil)

	target, processed := ex.Process(Frame{Time: time.Second}, 0)
	assert.True(t, processed)
	assert.Equal(t, float32(0), target)
}

func TestExtractor_DownscalesToDetectorInput(t *testing.T) {
	det := &countingDetector{size: image.Pt(32, 24)}
	ex := NewExtractor(det, nil)

	ex.Process(Frame{Image: image.NewRGBA(image.Rect(0, 0, 640, 480)), Time: time.Millisecond}, 0)
	assert.Equal(t, image.Rect(0, 0, 32, 24), det.seen)
}

func TestPointerState_Hands(t *testing.T) {
	released := PointerState{X: 10, Y: 10, Width: 100, Height: 100}
	assert.Empty(t, released.Hands().Hands)

	centre := PointerState{X: 50, Y: 40, Width: 100, Height: 100, Pressed: true}
	assert.Equal(t, float32(0), TargetFromDetection(centre.Hands()))

	edge := PointerState{X: 100, Y: 40, Width: 100, Height: 100, Pressed: true}
	assert.Equal(t, float32(1), TargetFromDetection(edge.Hands()))

	left := PointerState{X: 20, Y: 40, Width: 100, Height: 100, Pressed: true}
	assert.InDelta(t, 1, TargetFromDetection(left.Hands()), 1e-5)
}
