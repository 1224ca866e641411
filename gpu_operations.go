package blossom

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string
}

func (s *WindowState) SetTitle(title string) {
	if title == s.windowTitle {
		return
	}
	s.windowTitle = title
	s.windowGlfw.SetTitle(title)
}

func (s *WindowState) ShouldClose() bool { return s.windowGlfw.ShouldClose() }

type GpuState struct {
	surface       *wgpu.Surface
	adapter       *wgpu.Adapter
	device        *wgpu.Device
	queue         *wgpu.Queue
	surfaceConfig *wgpu.SurfaceConfiguration
}

// createWindowState opens a GLFW window without a client API. GLFW calls must
// stay on the main OS thread, so the calling goroutine is locked to it.
func createWindowState(width, height int, title string) (*WindowState, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	return &WindowState{
		windowGlfw:   win,
		WindowWidth:  width,
		WindowHeight: height,
		windowTitle:  title,
	}, nil
}

func createGpuState(s *WindowState) (*GpuState, error) {
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(s.windowGlfw))
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}

	caps := surface.GetCapabilities(adapter)
	width, height := s.windowGlfw.GetFramebufferSize()
	surfaceConfig := wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(max(width, 1)),
		Height:      uint32(max(height, 1)),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(adapter, device, &surfaceConfig)

	return &GpuState{
		surface:       surface,
		adapter:       adapter,
		device:        device,
		queue:         device.GetQueue(),
		surfaceConfig: &surfaceConfig,
	}, nil
}

// resize reconfigures the swapchain; zero sizes (minimised) are ignored.
func (g *GpuState) resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if uint32(width) == g.surfaceConfig.Width && uint32(height) == g.surfaceConfig.Height {
		return false
	}
	g.surfaceConfig.Width = uint32(width)
	g.surfaceConfig.Height = uint32(height)
	g.surface.Configure(g.adapter, g.device, g.surfaceConfig)
	return true
}

func (g *GpuState) release() {
	g.queue.Release()
	g.device.Release()
	g.adapter.Release()
	g.surface.Release()
}

func (s *WindowState) destroy() {
	s.windowGlfw.Destroy()
	glfw.Terminate()
}
