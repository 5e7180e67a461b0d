package render

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/stage"
	"github.com/gogpu/stage/mesh"
	"github.com/gogpu/stage/shader"
	"github.com/gogpu/stage/texture"
	"github.com/gogpu/wgpu/hal"
)

// gpuMesh holds the GPU-resident form of one uploaded mesh.
type gpuMesh struct {
	vertex     hal.Buffer
	index      hal.Buffer
	indexCount int
	topology   mesh.Topology
}

// gpuProgram holds the shader modules of one uploaded program.
type gpuProgram struct {
	vertex   hal.ShaderModule
	fragment hal.ShaderModule
}

// gpuTexture holds a sampled texture and its staged pixel data.
type gpuTexture struct {
	texture hal.Texture
	view    hal.TextureView
	pixels  []byte
	width   int
	height  int
	wrap    texture.WrapMode
}

// StagedDraw is a frame draw call resolved to HAL resources, including
// the byte offset of its uniform block in UniformData. The presenting
// host encodes these against its own surface and render pass.
type StagedDraw struct {
	Call          DrawCall
	VertexBuffer  hal.Buffer
	IndexBuffer   hal.Buffer
	IndexCount    int
	Topology      mesh.Topology
	VertexModule  hal.ShaderModule
	FragModule    hal.ShaderModule
	UniformOffset uint64
}

// GPUDevice is a Device backed by a wgpu/hal device. It owns vertex,
// index and uniform buffers plus shader modules; surfaces and render
// passes belong to the embedding host.
type GPUDevice struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	external bool // true when the device is shared; don't destroy it

	meshes   map[MeshID]*gpuMesh
	programs map[ProgramID]*gpuProgram
	textures map[TextureID]*gpuTexture
	nextID   uint64

	uniforms    hal.Buffer
	uniformCap  uint64
	staged      []StagedDraw
	uniformData []byte

	closed bool
}

var _ Device = (*GPUDevice)(nil)

// NewGPUDevice opens the first usable GPU adapter, preferring discrete
// and integrated devices, and wraps it in a GPUDevice.
func NewGPUDevice() (*GPUDevice, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("%w: vulkan backend not registered", ErrNoGPU)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("%w: create instance: %v", ErrNoGPU, err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("%w: no adapters found", ErrNoGPU)
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("%w: open device: %v", ErrNoGPU, err)
	}

	stage.Logger().Info("GPU device opened", "adapter", selected.Info.Name)
	return newGPUDevice(instance, openDev.Device, openDev.Queue, false), nil
}

// NewSharedDevice wraps a GPU device owned by an external provider
// (for example a gogpu application), so the engine and its host share
// one device instead of opening two. The provider must also expose HAL
// types via HalDevice and HalQueue.
func NewSharedDevice(provider gpucontext.DeviceProvider) (*GPUDevice, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("render: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("render: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("render: provider HalQueue is not hal.Queue")
	}
	stage.Logger().Info("GPU device shared from host provider")
	return newGPUDevice(nil, device, queue, true), nil
}

func newGPUDevice(instance hal.Instance, device hal.Device, queue hal.Queue, external bool) *GPUDevice {
	return &GPUDevice{
		instance: instance,
		device:   device,
		queue:    queue,
		external: external,
		meshes:   make(map[MeshID]*gpuMesh),
		programs: make(map[ProgramID]*gpuProgram),
		textures: make(map[TextureID]*gpuTexture),
		nextID:   1,
	}
}

// UploadMesh creates vertex and index buffers for m and writes the
// interleaved data through the queue.
func (d *GPUDevice) UploadMesh(m *mesh.Mesh) (MeshID, error) {
	if d.closed {
		return InvalidID, ErrDeviceClosed
	}
	if m == nil {
		return InvalidID, ErrNilResource
	}
	if err := m.Validate(); err != nil {
		return InvalidID, err
	}

	vertexData := InterleaveVertices(m)
	vbuf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: m.Name + "_vertices",
		Size:  uint64(len(vertexData)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return InvalidID, fmt.Errorf("render: create vertex buffer for %q: %w", m.Name, err)
	}
	d.queue.WriteBuffer(vbuf, 0, vertexData)

	indexData := PackIndices(m.Indices)
	ibuf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: m.Name + "_indices",
		Size:  uint64(len(indexData)),
		Usage: gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		d.device.DestroyBuffer(vbuf)
		return InvalidID, fmt.Errorf("render: create index buffer for %q: %w", m.Name, err)
	}
	d.queue.WriteBuffer(ibuf, 0, indexData)

	id := MeshID(d.nextID)
	d.nextID++
	d.meshes[id] = &gpuMesh{
		vertex:     vbuf,
		index:      ibuf,
		indexCount: len(m.Indices),
		topology:   m.Topology,
	}
	stage.Logger().Debug("mesh uploaded", "name", m.Name,
		"vertexBytes", len(vertexData), "indices", len(m.Indices))
	return id, nil
}

// UploadProgram creates HAL shader modules from the program's SPIR-V.
func (d *GPUDevice) UploadProgram(p *shader.Program) (ProgramID, error) {
	if d.closed {
		return InvalidID, ErrDeviceClosed
	}
	if p == nil {
		return InvalidID, ErrNilResource
	}

	vert, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  p.Name + "_vert",
		Source: hal.ShaderSource{SPIRV: p.Vertex},
	})
	if err != nil {
		return InvalidID, fmt.Errorf("render: create vertex module for %q: %w", p.Name, err)
	}
	frag, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  p.Name + "_frag",
		Source: hal.ShaderSource{SPIRV: p.Fragment},
	})
	if err != nil {
		d.device.DestroyShaderModule(vert)
		return InvalidID, fmt.Errorf("render: create fragment module for %q: %w", p.Name, err)
	}

	id := ProgramID(d.nextID)
	d.nextID++
	d.programs[id] = &gpuProgram{vertex: vert, fragment: frag}
	return id, nil
}

// UploadTexture creates a sampled 2D texture and retains the pixel data
// for the host's encoder.
//
// TODO: write texels through the queue once wgpu exposes WriteTexture
// at the HAL layer; until then the host copies t's staged pixels during
// its first render pass.
func (d *GPUDevice) UploadTexture(t *texture.Texture) (TextureID, error) {
	if d.closed {
		return InvalidID, ErrDeviceClosed
	}
	if t == nil {
		return InvalidID, ErrNilResource
	}

	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label: "stage_texture",
		Size: hal.Extent3D{
			Width:              uint32(t.Width),
			Height:             uint32(t.Height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return InvalidID, fmt.Errorf("render: create texture: %w", err)
	}
	view, err := d.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "stage_texture_view",
	})
	if err != nil {
		d.device.DestroyTexture(tex)
		return InvalidID, fmt.Errorf("render: create texture view: %w", err)
	}

	id := TextureID(d.nextID)
	d.nextID++
	d.textures[id] = &gpuTexture{
		texture: tex,
		view:    view,
		pixels:  append([]byte(nil), t.Pixels...),
		width:   t.Width,
		height:  t.Height,
		wrap:    t.Wrap,
	}
	return id, nil
}

// Draw validates the call and stages it with resolved HAL resources.
func (d *GPUDevice) Draw(call DrawCall) error {
	if d.closed {
		return ErrDeviceClosed
	}
	gm, ok := d.meshes[call.Mesh]
	if !ok {
		return &UnknownHandleError{Kind: "mesh", ID: uint64(call.Mesh)}
	}
	gp, ok := d.programs[call.Program]
	if !ok {
		return &UnknownHandleError{Kind: "program", ID: uint64(call.Program)}
	}
	if call.Texture != InvalidID {
		if _, ok := d.textures[call.Texture]; !ok {
			return &UnknownHandleError{Kind: "texture", ID: uint64(call.Texture)}
		}
	}

	d.staged = append(d.staged, StagedDraw{
		Call:          call,
		VertexBuffer:  gm.vertex,
		IndexBuffer:   gm.index,
		IndexCount:    gm.indexCount,
		Topology:      gm.topology,
		VertexModule:  gp.vertex,
		FragModule:    gp.fragment,
		UniformOffset: uint64(len(d.uniformData)),
	})
	d.uniformData = append(d.uniformData, PackDrawUniform(call.ModelToNDC, call.Tint)...)
	return nil
}

// Flush writes the frame's packed uniform blocks to the uniform buffer,
// growing it when the frame needs more room, and clears the staging
// list. StagedDraws handed out earlier keep their offsets into the
// freshly written buffer.
func (d *GPUDevice) Flush() error {
	if d.closed {
		return ErrDeviceClosed
	}
	if len(d.uniformData) > 0 {
		if err := d.ensureUniformCapacity(uint64(len(d.uniformData))); err != nil {
			return err
		}
		d.queue.WriteBuffer(d.uniforms, 0, d.uniformData)
	}
	d.staged = d.staged[:0]
	d.uniformData = d.uniformData[:0]
	return nil
}

// FrameDraws returns the draws staged since the last Flush, in draw
// order, for the presenting host to encode.
func (d *GPUDevice) FrameDraws() []StagedDraw {
	return d.staged
}

// UniformBuffer returns the device's per-draw uniform buffer, valid
// after the first Flush of a non-empty frame.
func (d *GPUDevice) UniformBuffer() hal.Buffer {
	return d.uniforms
}

// TexturePixels returns the staged pixel data for an uploaded texture,
// for hosts that perform the texel copy themselves.
func (d *GPUDevice) TexturePixels(id TextureID) ([]byte, bool) {
	t, ok := d.textures[id]
	if !ok {
		return nil, false
	}
	return t.pixels, true
}

// Close destroys every owned resource. A shared device and queue are
// left alive for their owner.
func (d *GPUDevice) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	for id, m := range d.meshes {
		d.device.DestroyBuffer(m.vertex)
		d.device.DestroyBuffer(m.index)
		delete(d.meshes, id)
	}
	for id, p := range d.programs {
		d.device.DestroyShaderModule(p.vertex)
		d.device.DestroyShaderModule(p.fragment)
		delete(d.programs, id)
	}
	for id, t := range d.textures {
		d.device.DestroyTextureView(t.view)
		d.device.DestroyTexture(t.texture)
		delete(d.textures, id)
	}
	if d.uniforms != nil {
		d.device.DestroyBuffer(d.uniforms)
		d.uniforms = nil
	}

	if !d.external {
		if d.device != nil {
			d.device.Destroy()
		}
		if d.instance != nil {
			d.instance.Destroy()
		}
	}
	d.device = nil
	d.queue = nil
	d.instance = nil
	return nil
}

func (d *GPUDevice) ensureUniformCapacity(size uint64) error {
	if d.uniforms != nil && d.uniformCap >= size {
		return nil
	}
	if d.uniforms != nil {
		d.device.DestroyBuffer(d.uniforms)
		d.uniforms = nil
	}
	// Grow in whole-block multiples to avoid churn on small population
	// changes.
	capacity := d.uniformCap
	if capacity == 0 {
		capacity = 64 * UniformSize
	}
	for capacity < size {
		capacity *= 2
	}
	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "stage_uniforms",
		Size:  capacity,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("render: create uniform buffer: %w", err)
	}
	d.uniforms = buf
	d.uniformCap = capacity
	return nil
}
