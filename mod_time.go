package blossom

import (
	"time"
)

type Time struct {
	Time    time.Time
	Dt      time.Duration
	Elapsed time.Duration
	Frame   uint64
}

// DtSeconds is the last frame's duration in seconds.
func (t *Time) DtSeconds() float32 { return float32(t.Dt.Seconds()) }

// ElapsedSeconds is the time since the first frame in seconds.
func (t *Time) ElapsedSeconds() float32 { return float32(t.Elapsed.Seconds()) }

// TimeModule advances Time once per frame. With FixedStep set the clock
// advances by exactly that much per frame instead of wall time.
type TimeModule struct {
	FixedStep time.Duration
}

type timeSource struct {
	fixed time.Duration
	now   func() time.Time
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	src := &timeSource{fixed: mod.FixedStep, now: time.Now}
	cmd.AddResources(&Time{Time: src.now()}, src)
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude),
	)
}

func timeSystem(t *Time, src *timeSource) {
	var now time.Time
	if src.fixed > 0 {
		now = t.Time.Add(src.fixed)
	} else {
		now = src.now()
	}
	if t.Frame > 0 {
		t.Dt = now.Sub(t.Time)
		t.Elapsed += t.Dt
	}
	t.Time = now
	t.Frame++
}
