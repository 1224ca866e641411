package blossom

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/blossom/sculpt/core"
	"github.com/gekko3d/blossom/sculpt/gpu"
)

// ClientModule opens the window and draws the sculpture with WebGPU.
type ClientModule struct {
	WindowWidth  int
	WindowHeight int
	WindowTitle  string
}

type clientState struct {
	points    *gpu.PointsRenderPass
	baseTitle string
	order     []string
}

func (mod ClientModule) Install(app *App, cmd *Commands) {
	ws, err := createWindowState(mod.WindowWidth, mod.WindowHeight, mod.WindowTitle)
	if err != nil {
		panic(err)
	}
	gs, err := createGpuState(ws)
	if err != nil {
		panic(err)
	}
	points, err := gpu.NewPointsRenderPass(gs.device, gs.surfaceConfig.Format)
	if err != nil {
		panic(fmt.Errorf("points pipeline: %w", err))
	}
	app.Logger().Infof("window %dx%d ready", mod.WindowWidth, mod.WindowHeight)

	cmd.AddResources(ws, gs, &clientState{points: points, baseTitle: mod.WindowTitle})

	app.UseSystem(
		System(windowCloseSystem).
			InStage(Update).
			InState(OnExecute(StateRunning)),
	)
	app.UseSystem(
		System(windowTitleSystem).
			InStage(PostUpdate),
	)
	app.UseSystem(
		System(resizeSystem).
			InStage(PostUpdate),
	)
	app.UseSystem(
		System(renderSystem).
			InStage(Render).
			InState(OnExecute(StateRunning)),
	)
	app.UseSystem(
		System(releaseClientSystem).
			InStage(Finale).
			InState(OnExit(StateExit)),
	)
}

// windowCloseSystem leaves the running state on Esc or when the window is closed.
func windowCloseSystem(ws *WindowState, input *Input, cmd *Commands) {
	if ws.ShouldClose() || input.JustPressed[KeyEscape] {
		cmd.ChangeState(StateExit)
	}
}

func windowTitleSystem(ws *WindowState, client *clientState, s *Sculpture) {
	ws.SetTitle(fmt.Sprintf("%s - %s", client.baseTitle, s.GestureStatus()))
}

func resizeSystem(ws *WindowState, gs *GpuState) {
	width, height := ws.windowGlfw.GetFramebufferSize()
	if gs.resize(width, height) {
		ws.WindowWidth, ws.WindowHeight = width, height
	}
}

func renderSystem(gs *GpuState, client *clientState, s *Sculpture, camera *core.OrbitCameraState, cmd *Commands, log Logger) {
	width, height := int(gs.surfaceConfig.Width), int(gs.surfaceConfig.Height)
	viewProj := camera.GetProjectionMatrix(float32(width) / float32(height)).Mul4(camera.GetViewMatrix())

	client.order = client.order[:0]
	for _, ps := range ParticleSystems(cmd) {
		id := ps.ID.String()
		u := gpu.NewPointsUniforms(viewProj, width, height, ps.Program.Falloff())
		if err := client.points.Update(gs.queue, id, u, ps.Instances); err != nil {
			log.Errorf("upload %s: %v", ps.Motif, err)
			continue
		}
		client.order = append(client.order, id)
	}

	nextTexture, err := gs.surface.GetCurrentTexture()
	if err != nil {
		// outdated or lost surfaces recover after the next resize
		log.Warnf("acquire surface texture: %v", err)
		return
	}
	view, err := nextTexture.CreateView(nil)
	if err != nil {
		log.Errorf("surface view: %v", err)
		return
	}
	defer view.Release()

	encoder, err := gs.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "SculptureEncoder"})
	if err != nil {
		log.Errorf("command encoder: %v", err)
		return
	}
	defer encoder.Release()

	bg := s.Background
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: float64(bg.X()), G: float64(bg.Y()), B: float64(bg.Z()), A: 1},
			},
		},
	})
	defer pass.Release()

	client.points.Draw(pass, client.order)
	if err := pass.End(); err != nil {
		log.Errorf("end render pass: %v", err)
		return
	}

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		log.Errorf("finish encoder: %v", err)
		return
	}
	defer cmdBuffer.Release()

	gs.queue.Submit(cmdBuffer)
	gs.surface.Present()
}

func releaseClientSystem(client *clientState, gs *GpuState, ws *WindowState) {
	client.points.Release()
	gs.release()
	ws.destroy()
}
