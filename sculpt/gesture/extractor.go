package gesture

import (
	"fmt"
	"image"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// CombinedDistance and below maps to 0 (tree form).
	CombinedDistance = 0.2
	// ExplodedDistance and above maps to 1.
	ExplodedDistance = 0.6

	distanceGain = 1 / (ExplodedDistance - CombinedDistance)
)

// TargetFromDistance maps the wrist distance linearly onto [0,1].
func TargetFromDistance(d float32) float32 {
	t := (d - CombinedDistance) * distanceGain
	if t != t || t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// WristDistance is the Euclidean distance between the wrists of two hands.
func WristDistance(a, b Hand) float32 {
	wa := mgl32.Vec2{a[WristLandmark].X, a[WristLandmark].Y}
	wb := mgl32.Vec2{b[WristLandmark].X, b[WristLandmark].Y}
	return wa.Sub(wb).Len()
}

// TargetFromDetection reduces a detection to the explosion target. Anything
// other than exactly two hands with a wrist landmark each maps to 0. The
// result does not depend on hand order.
func TargetFromDetection(d Detection) float32 {
	if len(d.Hands) != 2 {
		return 0
	}
	a, b := d.Hands[0], d.Hands[1]
	if len(a) <= WristLandmark || len(b) <= WristLandmark {
		return 0
	}
	return TargetFromDistance(WristDistance(a, b))
}

// Extractor processes camera frames one at a time. It is not safe for
// concurrent use; the detection loop owns it.
type Extractor struct {
	detector  Detector
	inputSize image.Point
	log       Logger

	lastFrame time.Duration
	hasLast   bool
}

func NewExtractor(detector Detector, log Logger) *Extractor {
	if log == nil {
		log = nopLogger{}
	}
	e := &Extractor{detector: detector, log: log}
	if sizer, ok := detector.(InputSizer); ok {
		e.inputSize = sizer.InputSize()
	}
	return e
}

// Process runs detection on frame unless it carries the same timestamp as the
// previous processed frame. processed reports whether the detector ran.
func (e *Extractor) Process(frame Frame, timestampMs int64) (target float32, processed bool) {
	if e.hasLast && frame.Time == e.lastFrame {
		return 0, false
	}
	e.lastFrame = frame.Time
	e.hasLast = true

	img := frame.Image
	if img != nil && e.inputSize.X > 0 && e.inputSize.Y > 0 {
		img = Downscale(img, e.inputSize)
	}

	det, err := e.detector.Detect(img, timestampMs)
	if err != nil {
		e.log.Debugf("%v", fmt.Errorf("frame at %v: %w: %v", frame.Time, ErrDetectorFrame, err))
		return 0, true
	}
	return TargetFromDetection(det), true
}
