package render

import (
	"github.com/gogpu/stage/mesh"
	"github.com/gogpu/stage/shader"
	"github.com/gogpu/stage/texture"
)

// Headless is a Device that keeps resources in host memory and records
// draw calls instead of submitting them. It backs tests and batch runs
// where no GPU (or no display) exists, with the same handle semantics
// as GPUDevice.
type Headless struct {
	meshes   map[MeshID]*mesh.Mesh
	programs map[ProgramID]*shader.Program
	textures map[TextureID]*texture.Texture

	nextID uint64
	staged []DrawCall
	frames [][]DrawCall
	closed bool
}

var _ Device = (*Headless)(nil)

// NewHeadless creates an empty headless device.
func NewHeadless() *Headless {
	return &Headless{
		meshes:   make(map[MeshID]*mesh.Mesh),
		programs: make(map[ProgramID]*shader.Program),
		textures: make(map[TextureID]*texture.Texture),
		nextID:   1,
	}
}

// UploadMesh validates m and registers it.
func (d *Headless) UploadMesh(m *mesh.Mesh) (MeshID, error) {
	if d.closed {
		return InvalidID, ErrDeviceClosed
	}
	if m == nil {
		return InvalidID, ErrNilResource
	}
	if err := m.Validate(); err != nil {
		return InvalidID, err
	}
	id := MeshID(d.nextID)
	d.nextID++
	d.meshes[id] = m
	return id, nil
}

// UploadProgram registers a compiled program.
func (d *Headless) UploadProgram(p *shader.Program) (ProgramID, error) {
	if d.closed {
		return InvalidID, ErrDeviceClosed
	}
	if p == nil {
		return InvalidID, ErrNilResource
	}
	id := ProgramID(d.nextID)
	d.nextID++
	d.programs[id] = p
	return id, nil
}

// UploadTexture registers a decoded texture.
func (d *Headless) UploadTexture(t *texture.Texture) (TextureID, error) {
	if d.closed {
		return InvalidID, ErrDeviceClosed
	}
	if t == nil {
		return InvalidID, ErrNilResource
	}
	id := TextureID(d.nextID)
	d.nextID++
	d.textures[id] = t
	return id, nil
}

// Draw validates the call's handles and stages it for the frame.
func (d *Headless) Draw(call DrawCall) error {
	if d.closed {
		return ErrDeviceClosed
	}
	if _, ok := d.meshes[call.Mesh]; !ok {
		return &UnknownHandleError{Kind: "mesh", ID: uint64(call.Mesh)}
	}
	if _, ok := d.programs[call.Program]; !ok {
		return &UnknownHandleError{Kind: "program", ID: uint64(call.Program)}
	}
	if call.Texture != InvalidID {
		if _, ok := d.textures[call.Texture]; !ok {
			return &UnknownHandleError{Kind: "texture", ID: uint64(call.Texture)}
		}
	}
	d.staged = append(d.staged, call)
	return nil
}

// Flush closes out the frame, moving staged calls into the recorded
// frame history.
func (d *Headless) Flush() error {
	if d.closed {
		return ErrDeviceClosed
	}
	frame := make([]DrawCall, len(d.staged))
	copy(frame, d.staged)
	d.frames = append(d.frames, frame)
	d.staged = d.staged[:0]
	return nil
}

// Close releases all resources.
func (d *Headless) Close() error {
	d.closed = true
	d.meshes = nil
	d.programs = nil
	d.textures = nil
	d.staged = nil
	return nil
}

// MeshCount returns the number of live mesh resources.
func (d *Headless) MeshCount() int { return len(d.meshes) }

// ProgramCount returns the number of live program resources.
func (d *Headless) ProgramCount() int { return len(d.programs) }

// TextureCount returns the number of live texture resources.
func (d *Headless) TextureCount() int { return len(d.textures) }

// Texture returns an uploaded texture by handle.
func (d *Headless) Texture(id TextureID) (*texture.Texture, bool) {
	t, ok := d.textures[id]
	return t, ok
}

// Frames returns the recorded per-frame draw calls, oldest first.
func (d *Headless) Frames() [][]DrawCall { return d.frames }

// LastFrame returns the most recently flushed frame, or nil.
func (d *Headless) LastFrame() []DrawCall {
	if len(d.frames) == 0 {
		return nil
	}
	return d.frames[len(d.frames)-1]
}
