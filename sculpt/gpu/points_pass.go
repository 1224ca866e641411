package gpu

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/blossom/sculpt/core"
	"github.com/gekko3d/blossom/sculpt/deform"
	"github.com/gekko3d/blossom/sculpt/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

// PointsUniforms matches the WGSL Globals struct (96 bytes with tail padding).
type PointsUniforms struct {
	ViewProj    mgl32.Mat4
	Viewport    [2]float32
	FalloffKind uint32
	Exponent    float32
	Opacity     float32
	_           [3]float32
}

const (
	pointsUniformSize  = uint64(unsafe.Sizeof(PointsUniforms{}))
	pointsInstanceSize = uint64(unsafe.Sizeof(core.ParticleInstance{}))
	quadVertices       = 6
)

func NewPointsUniforms(viewProj mgl32.Mat4, width, height int, f deform.Falloff) PointsUniforms {
	return PointsUniforms{
		ViewProj:    viewProj,
		Viewport:    [2]float32{float32(max(width, 1)), float32(max(height, 1))},
		FalloffKind: uint32(f.Kind),
		Exponent:    f.Exponent,
		Opacity:     f.Opacity,
	}
}

// pointsBatch is the GPU side of one particle system.
type pointsBatch struct {
	label          string
	instanceBuffer *wgpu.Buffer
	instanceCap    uint32
	count          uint32
	uniformBuffer  *wgpu.Buffer
	bindGroup      *wgpu.BindGroup
}

// PointsRenderPass draws every particle system as additive point sprites.
// There is no depth attachment; draw order is the caller's.
type PointsRenderPass struct {
	Device   *wgpu.Device
	Pipeline *wgpu.RenderPipeline
	batches  map[string]*pointsBatch
}

func NewPointsRenderPass(device *wgpu.Device, format wgpu.TextureFormat) (*PointsRenderPass, error) {
	shaderModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "PointsShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.PointsWGSL},
	})
	if err != nil {
		return nil, err
	}
	defer shaderModule.Release()

	bgl, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "PointsGlobalsBGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: pointsUniformSize,
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}
	defer bgl.Release()

	pipelineLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		BindGroupLayouts: []*wgpu.BindGroupLayout{bgl},
	})
	if err != nil {
		return nil, err
	}
	defer pipelineLayout.Release()

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "PointsPipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: pointsInstanceSize,
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32, Offset: 12, ShaderLocation: 1},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					WriteMask: wgpu.ColorWriteMaskAll,
					// additive: src*alpha + dst
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorSrcAlpha,
							DstFactor: wgpu.BlendFactorOne,
						},
						Alpha: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOne,
						},
					},
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: nil,
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, err
	}

	return &PointsRenderPass{
		Device:   device,
		Pipeline: pipeline,
		batches:  make(map[string]*pointsBatch),
	}, nil
}

// Update uploads the instances and uniforms of the system id, growing its
// buffers when needed.
func (p *PointsRenderPass) Update(queue *wgpu.Queue, id string, u PointsUniforms, instances []core.ParticleInstance) error {
	b, ok := p.batches[id]
	if !ok {
		uniformBuffer, err := p.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "PointsUniforms-" + id,
			Size:  pointsUniformSize,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("points %s: uniform buffer: %w", id, err)
		}
		bindGroup, err := p.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  "PointsGlobalsBG-" + id,
			Layout: p.Pipeline.GetBindGroupLayout(0),
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: uniformBuffer, Size: pointsUniformSize},
			},
		})
		if err != nil {
			uniformBuffer.Release()
			return fmt.Errorf("points %s: bind group: %w", id, err)
		}
		b = &pointsBatch{label: id, uniformBuffer: uniformBuffer, bindGroup: bindGroup}
		p.batches[id] = b
	}

	if err := queue.WriteBuffer(b.uniformBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&u)), pointsUniformSize)); err != nil {
		return fmt.Errorf("points %s: write uniforms: %w", id, err)
	}

	b.count = uint32(len(instances))
	if b.count == 0 {
		return nil
	}
	if b.instanceBuffer == nil || b.instanceCap < b.count {
		if b.instanceBuffer != nil {
			b.instanceBuffer.Release()
		}
		buf, err := p.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "PointsInstances-" + id,
			Size:  uint64(b.count) * pointsInstanceSize,
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			b.instanceBuffer, b.instanceCap, b.count = nil, 0, 0
			return fmt.Errorf("points %s: instance buffer: %w", id, err)
		}
		b.instanceBuffer, b.instanceCap = buf, b.count
	}
	size := uint64(b.count) * pointsInstanceSize
	if err := queue.WriteBuffer(b.instanceBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&instances[0])), size)); err != nil {
		return fmt.Errorf("points %s: write instances: %w", id, err)
	}
	return nil
}

// Draw issues one instanced quad draw per system, in the order given.
func (p *PointsRenderPass) Draw(pass *wgpu.RenderPassEncoder, order []string) {
	pass.SetPipeline(p.Pipeline)
	for _, id := range order {
		b, ok := p.batches[id]
		if !ok || b.count == 0 || b.instanceBuffer == nil {
			continue
		}
		pass.SetBindGroup(0, b.bindGroup, nil)
		pass.SetVertexBuffer(0, b.instanceBuffer, 0, uint64(b.count)*pointsInstanceSize)
		pass.Draw(quadVertices, b.count, 0, 0)
	}
}

func (p *PointsRenderPass) Release() {
	for id, b := range p.batches {
		if b.instanceBuffer != nil {
			b.instanceBuffer.Release()
		}
		b.bindGroup.Release()
		b.uniformBuffer.Release()
		delete(p.batches, id)
	}
	if p.Pipeline != nil {
		p.Pipeline.Release()
		p.Pipeline = nil
	}
}
