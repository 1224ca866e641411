package blossom

import (
	"sync"

	"github.com/gekko3d/blossom/sculpt/gesture"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyEscape int = iota
	KeySpace
	KeyQ
	MouseButtonLeft
	MouseButtonRight
	inputSlots
)

type InputModule struct {
	// Pointer, if set, receives the cursor every frame for a PointerHands source.
	Pointer *PointerCell
}

type Input struct {
	Pressed      [inputSlots]bool
	JustPressed  [inputSlots]bool
	JustReleased [inputSlots]bool

	MouseX, MouseY            float64
	WindowWidth, WindowHeight int
}

// PointerCell hands the latest cursor sample from the render thread to the
// detection goroutine.
type PointerCell struct {
	mu    sync.Mutex
	state gesture.PointerState
}

func (c *PointerCell) Store(s gesture.PointerState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *PointerCell) Load() gesture.PointerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

type inputState struct {
	pointer *PointerCell
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{}, &inputState{pointer: mod.Pointer})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate),
	)
}

var keyToGlfw = map[int]glfw.Key{
	KeyEscape: glfw.KeyEscape,
	KeySpace:  glfw.KeySpace,
	KeyQ:      glfw.KeyQ,
}

var buttonToGlfw = map[int]glfw.MouseButton{
	MouseButtonLeft:  glfw.MouseButtonLeft,
	MouseButtonRight: glfw.MouseButtonRight,
}

func (input *Input) track(slot int, down bool) {
	input.JustPressed[slot] = down && !input.Pressed[slot]
	input.JustReleased[slot] = !down && input.Pressed[slot]
	input.Pressed[slot] = down
}

func inputSystem(s *WindowState, input *Input, st *inputState) {
	glfw.PollEvents()

	for key, glfwKey := range keyToGlfw {
		input.track(key, s.windowGlfw.GetKey(glfwKey) == glfw.Press)
	}
	for btn, glfwBtn := range buttonToGlfw {
		input.track(btn, s.windowGlfw.GetMouseButton(glfwBtn) == glfw.Press)
	}

	input.MouseX, input.MouseY = s.windowGlfw.GetCursorPos()
	input.WindowWidth, input.WindowHeight = s.windowGlfw.GetSize()

	if st.pointer != nil {
		st.pointer.Store(input.Pointer())
	}
}

// Pointer is the cursor as a gesture pointer sample; the left button holds
// the virtual hands.
func (input *Input) Pointer() gesture.PointerState {
	return gesture.PointerState{
		X:       input.MouseX,
		Y:       input.MouseY,
		Width:   input.WindowWidth,
		Height:  input.WindowHeight,
		Pressed: input.Pressed[MouseButtonLeft],
	}
}
