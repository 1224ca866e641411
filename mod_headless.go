package blossom

// HeadlessModule runs the simulation without a window for a fixed number of
// frames, then exits. Pair it with a fixed-step TimeModule for reproducible runs.
type HeadlessModule struct {
	Frames int
}

type headlessState struct {
	limit  int
	frames int
}

func (mod HeadlessModule) Install(app *App, cmd *Commands) {
	limit := mod.Frames
	if limit <= 0 {
		limit = 1
	}
	cmd.AddResources(&headlessState{limit: limit})

	app.UseSystem(
		System(headlessFrameSystem).
			InStage(Finale).
			InState(OnExecute(StateRunning)),
	)
	app.UseSystem(
		System(headlessReportSystem).
			InStage(Finale).
			InState(OnExit(StateRunning)),
	)
}

func headlessFrameSystem(h *headlessState, cmd *Commands) {
	h.frames++
	if h.frames >= h.limit {
		cmd.ChangeState(StateExit)
	}
}

func headlessReportSystem(h *headlessState, t *Time, s *Sculpture, cmd *Commands, log Logger) {
	total := 0
	for _, ps := range ParticleSystems(cmd) {
		total += len(ps.Instances)
	}
	log.Infof("headless run: %d frames, %.2fs simulated, %d particles, explosion %.3f, gesture %s",
		h.frames, t.Elapsed.Seconds(), total, s.Explosion(), s.GestureStatus())
}
