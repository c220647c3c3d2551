package gpu

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/bubbles"
	"github.com/gekko3d/bubbles/bubble"
	"github.com/gekko3d/bubbles/shaders"
)

const bubbleRendererName = "bubbles-wgpu"

// bubbleVerticesPerInstance is one camera-facing quad as two triangles.
const bubbleVerticesPerInstance = 6

// BubbleClientModule draws the bubble field with one instanced draw call per
// frame. It uploads the engine's instance buffer whenever it is dirty and
// commits it afterwards. Requires PlatformWindowModule and BubblesModule.
type BubbleClientModule struct {
	Camera     bubbles.Camera
	Colors     bubbles.ColorProvider
	ClearColor wgpu.Color
}

type bubbleUniform struct {
	ViewProj mgl32.Mat4
	Tint     mgl32.Vec4
	Size     float32
	Opacity  float32
	Aspect   float32
	Pad0     float32
}

type bubbleRenderState struct {
	camera     bubbles.Camera
	colors     bubbles.ColorProvider
	clearColor wgpu.Color

	pipeline      *wgpu.RenderPipeline
	bindGroup     *wgpu.BindGroup
	uniformBuffer *wgpu.Buffer
	instances     *wgpu.Buffer
	instanceCap   int
	uniform       bubbleUniform
}

func (mod BubbleClientModule) Install(app *bubbles.App, cmd *bubbles.Commands) {
	bubbles.ClaimRenderer(app, bubbleRendererName)

	windowState, ok := bubbles.Resource[WindowState](app)
	if !ok {
		panic("BubbleClientModule requires PlatformWindowModule")
	}
	if _, ok := bubbles.Resource[bubbles.BubbleField](app); !ok {
		panic("BubbleClientModule requires BubblesModule")
	}

	gpuState := createGpuState(windowState)
	rs := createBubbleRenderState(mod, gpuState)

	app.UseSystem(
		bubbles.System(bubbleUniformSystem).
			InStage(bubbles.PreRender).
			RunAlways(),
	)
	app.UseSystem(
		bubbles.System(bubbleRenderSystem).
			InStage(bubbles.Render).
			RunAlways(),
	)
	cmd.AddResources(gpuState, rs)
	cmd.OnTeardown(func() {
		rs.release()
		gpuState.release()
	})
}

func createBubbleRenderState(mod BubbleClientModule, gpuState *GpuState) *bubbleRenderState {
	camera := mod.Camera
	if camera == (bubbles.Camera{}) {
		camera = bubbles.NewCamera()
	}
	colors := mod.Colors
	if colors == nil {
		colors = bubbles.StaticColor{0.75, 0.9, 1, 1}
	}
	clearColor := mod.ClearColor
	if clearColor == (wgpu.Color{}) {
		clearColor = wgpu.Color{R: 0.02, G: 0.05, B: 0.1, A: 1.0}
	}

	shader := createShaderModule("bubbles", shaders.BubblesWGSL, gpuState.device)
	defer shader.Release()

	pipeline, err := gpuState.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "BubblePipeline",
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: bubble.InstanceStride,
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 1},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 2},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 3},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    gpuState.surfaceConfig.Format,
					WriteMask: wgpu.ColorWriteMaskAll,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorSrcAlpha,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						},
						Alpha: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
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
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		panic(err)
	}

	uniformBuffer := createBuffer("BubbleCamera", uint64(unsafe.Sizeof(bubbleUniform{})),
		wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst, gpuState.device)

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	defer bindGroupLayout.Release()
	bindGroup, err := gpuState.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "BubbleCameraBG",
		Layout: bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  uniformBuffer,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		panic(err)
	}

	return &bubbleRenderState{
		camera:        camera,
		colors:        colors,
		clearColor:    clearColor,
		pipeline:      pipeline,
		bindGroup:     bindGroup,
		uniformBuffer: uniformBuffer,
	}
}

// ensureInstanceCapacity grows the GPU instance buffer to hold count
// transforms. The field is rebuilt wholesale on reconfiguration, so the
// buffer may have to grow between frames.
func (rs *bubbleRenderState) ensureInstanceCapacity(count int, device *wgpu.Device) {
	if rs.instances != nil && rs.instanceCap >= count {
		return
	}
	if rs.instances != nil {
		rs.instances.Release()
	}
	rs.instanceCap = count
	rs.instances = createBuffer("BubbleInstances", uint64(count)*bubble.InstanceStride,
		wgpu.BufferUsageVertex|wgpu.BufferUsageCopyDst, device)
}

func (rs *bubbleRenderState) release() {
	if rs.instances != nil {
		rs.instances.Release()
	}
	rs.bindGroup.Release()
	rs.uniformBuffer.Release()
	rs.pipeline.Release()
}

// buildBubbleUniform samples the ambient color and folds the camera focal
// length into the bubble size so the shader can offset in clip space.
func buildBubbleUniform(camera bubbles.Camera, colors bubbles.ColorProvider, cfg bubble.Config, aspect float32) bubbleUniform {
	return bubbleUniform{
		ViewProj: camera.ViewProj(aspect),
		Tint:     colors.AmbientColor(),
		Size:     cfg.BubbleSize * camera.Focal(),
		Opacity:  cfg.Opacity,
		Aspect:   aspect,
	}
}

func bubbleUniformSystem(rs *bubbleRenderState, field *bubbles.BubbleField, window *WindowState) {
	rs.uniform = buildBubbleUniform(rs.camera, rs.colors, field.Engine.Config(), window.Aspect())
}

func bubbleRenderSystem(rs *bubbleRenderState, gpuState *GpuState, window *WindowState, field *bubbles.BubbleField) {
	gpuState.resize(window.WindowWidth, window.WindowHeight)

	buf := field.Engine.Buffer()
	count := 0
	if buf != nil {
		count = buf.Len()
		rs.ensureInstanceCapacity(count, gpuState.device)
		if buf.NeedsUpload() {
			if err := gpuState.queue.WriteBuffer(rs.instances, 0, buf.Bytes()); err != nil {
				panic(err)
			}
			buf.Commit()
		}
	}
	if err := gpuState.queue.WriteBuffer(rs.uniformBuffer, 0, wgpu.ToBytes([]bubbleUniform{rs.uniform})); err != nil {
		panic(err)
	}

	nextTexture, err := gpuState.surface.GetCurrentTexture()
	if err != nil {
		panic(err)
	}
	view, err := nextTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}
	defer view.Release()

	encoder, err := gpuState.device.CreateCommandEncoder(nil)
	if err != nil {
		panic(err)
	}
	defer encoder.Release()

	renderPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: rs.clearColor,
			},
		},
	})
	defer renderPass.Release()

	if count > 0 {
		renderPass.SetPipeline(rs.pipeline)
		renderPass.SetBindGroup(0, rs.bindGroup, nil)
		renderPass.SetVertexBuffer(0, rs.instances, 0, uint64(count)*bubble.InstanceStride)
		renderPass.Draw(bubbleVerticesPerInstance, uint32(count), 0, 0)
	}

	if err := renderPass.End(); err != nil {
		panic(err)
	}

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		panic(err)
	}
	defer cmdBuffer.Release()

	gpuState.queue.Submit(cmdBuffer)
	gpuState.surface.Present()
}
