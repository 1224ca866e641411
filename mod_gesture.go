package blossom

import (
	"context"
	"sync"

	"github.com/gekko3d/blossom/sculpt/gesture"
)

// GestureModule runs the hand-tracking loop on its own goroutine while the app
// is running and feeds its target into the Sculpture. The render loop never
// waits on it.
type GestureModule struct {
	Camera    gesture.Camera
	Detectors gesture.DetectorFactory
	Request   gesture.CameraRequest
}

// gestureState owns the detection goroutine.
type gestureState struct {
	loop   *gesture.Loop
	cancel context.CancelFunc
	wg     sync.WaitGroup
	err    error
}

func (mod GestureModule) Install(app *App, cmd *Commands) {
	req := mod.Request
	if req.Width == 0 || req.Height == 0 {
		req = gesture.DefaultCameraRequest
	}
	cmd.AddResources(&gestureState{
		loop: &gesture.Loop{
			Camera:    mod.Camera,
			Detectors: mod.Detectors,
			Request:   req,
			Log:       app.Logger(),
		},
	})

	app.UseSystem(
		System(startGestureSystem).
			InStage(Prelude).
			InState(OnEnter(StateRunning)),
	)
	app.UseSystem(
		System(stopGestureSystem).
			InStage(Finale).
			InState(OnExit(StateRunning)),
	)
}

func startGestureSystem(g *gestureState, s *Sculpture) {
	if g.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	g.loop.Target = s.Target
	g.loop.OnStatus = s.SetGestureStatus

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		g.err = g.loop.Run(ctx)
	}()
}

// stopGestureSystem cancels the loop and waits until it has released the
// camera and the detector.
func stopGestureSystem(g *gestureState, log Logger) {
	if g.cancel == nil {
		return
	}
	g.cancel()
	g.wg.Wait()
	g.cancel = nil
	if g.err != nil {
		log.Debugf("gesture loop ended: %v", g.err)
	}
}
