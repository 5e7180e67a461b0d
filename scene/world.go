// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"fmt"
	"io/fs"
	"math/rand"
	"path"

	"github.com/gogpu/stage"
	"github.com/gogpu/stage/mesh"
	"github.com/gogpu/stage/render"
	"github.com/gogpu/stage/shader"
)

// World owns the live objects and the model and shader registries they
// resolve against. All lookups are memoized: a mesh file is parsed and
// uploaded once per model name, a shader pair is compiled and uploaded
// once per program name, no matter how many records reference them.
//
// A World is not safe for concurrent use. The expected shape is one
// goroutine driving Update and Draw, matching the single-threaded frame
// loop the render device assumes.
type World struct {
	fsys    fs.FS
	device  render.Device
	shaders *shader.Registry

	meshDir string
	rng     *rand.Rand

	models     map[string]*Model
	modelNames []string // registration order, for deterministic spawn picks
	programIDs map[string]render.ProgramID

	objects map[string]*Object
	order   []*Object // insertion order, oldest first

	spawned int // monotonic counter for generated object names
}

// Option configures a World at construction time.
type Option func(*World)

// WithMeshDir sets the directory mesh files are resolved in. Model
// names map to <dir>/<name>.msh. The default is "meshes".
func WithMeshDir(dir string) Option {
	return func(w *World) { w.meshDir = dir }
}

// WithRand sets the random source used for spawning. The default is a
// source seeded from the global generator; tests pass a fixed seed.
func WithRand(rng *rand.Rand) Option {
	return func(w *World) { w.rng = rng }
}

// WithCompiler overrides the shader compiler, mainly so tests can stub
// compilation out.
func WithCompiler(c shader.Compiler) Option {
	return func(w *World) { w.shaders = shader.NewRegistry(w.fsys, c) }
}

// NewWorld creates an empty world reading assets from fsys and
// uploading them to device.
func NewWorld(fsys fs.FS, device render.Device, opts ...Option) *World {
	w := &World{
		fsys:       fsys,
		device:     device,
		shaders:    shader.NewRegistry(fsys, nil),
		meshDir:    "meshes",
		rng:        rand.New(rand.NewSource(rand.Int63())),
		models:     make(map[string]*Model),
		programIDs: make(map[string]render.ProgramID),
		objects:    make(map[string]*Object),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// RegisterModel uploads a procedural mesh and makes it available under
// its mesh name. Registering a name twice returns the existing model.
func (w *World) RegisterModel(m *mesh.Mesh) (*Model, error) {
	if mdl, ok := w.models[m.Name]; ok {
		return mdl, nil
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return w.addModel(m)
}

// Model returns the model for name, loading and uploading its mesh file
// on first use.
func (w *World) Model(name string) (*Model, error) {
	if mdl, ok := w.models[name]; ok {
		return mdl, nil
	}
	p := path.Join(w.meshDir, name+".msh")
	m, err := mesh.Load(w.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnknownModel, name, err)
	}
	m.Name = name
	return w.addModel(m)
}

func (w *World) addModel(m *mesh.Mesh) (*Model, error) {
	id, err := w.device.UploadMesh(m)
	if err != nil {
		return nil, err
	}
	mdl := &Model{Name: m.Name, Mesh: m, ID: id}
	w.models[m.Name] = mdl
	w.modelNames = append(w.modelNames, m.Name)
	stage.Logger().Debug("model ready", "name", m.Name, "vertices", len(m.Positions))
	return mdl, nil
}

// Program compiles and uploads the named shader pair on first use and
// returns the cached handles afterwards. Later calls with the same name
// ignore the paths, matching the registry's memoization.
func (w *World) Program(name, vertPath, fragPath string) (*shader.Program, render.ProgramID, error) {
	prog, err := w.shaders.Load(name, vertPath, fragPath)
	if err != nil {
		return nil, render.InvalidID, err
	}
	if id, ok := w.programIDs[name]; ok {
		return prog, id, nil
	}
	id, err := w.device.UploadProgram(prog)
	if err != nil {
		return nil, render.InvalidID, err
	}
	w.programIDs[name] = id
	return prog, id, nil
}

// Add inserts an object under policy. Reject returns a
// DuplicateObjectError for a live name, Overwrite replaces the object
// in place keeping its insertion slot, Rename stores the newcomer under
// a derived unique name.
func (w *World) Add(o *Object, policy DuplicatePolicy) error {
	old, exists := w.objects[o.Name]
	if !exists {
		w.objects[o.Name] = o
		w.order = append(w.order, o)
		return nil
	}
	switch policy {
	case Overwrite:
		for i, live := range w.order {
			if live == old {
				w.order[i] = o
				break
			}
		}
		w.objects[o.Name] = o
		return nil
	case Rename:
		base := o.Name
		for n := 2; ; n++ {
			o.Name = fmt.Sprintf("%s#%d", base, n)
			if _, taken := w.objects[o.Name]; !taken {
				break
			}
		}
		w.objects[o.Name] = o
		w.order = append(w.order, o)
		return nil
	default:
		return &DuplicateObjectError{Name: o.Name}
	}
}

// Object returns the live object with the given name.
func (w *World) Object(name string) (*Object, error) {
	o, ok := w.objects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownObject, name)
	}
	return o, nil
}

// Len is the number of live objects.
func (w *World) Len() int { return len(w.order) }

// Objects calls fn for every live object in insertion order, oldest
// first. fn must not add or remove objects.
func (w *World) Objects(fn func(*Object)) {
	for _, o := range w.order {
		fn(o)
	}
}

// ModelCounts returns how many live objects use each model name.
func (w *World) ModelCounts() map[string]int {
	counts := make(map[string]int, len(w.models))
	for _, o := range w.order {
		counts[o.ModelName]++
	}
	return counts
}

// Update advances every live object except exclude, which the camera
// drives itself. Pass nil to update everything.
func (w *World) Update(dt float32, exclude *Object) {
	for _, o := range w.order {
		if o == exclude {
			continue
		}
		o.Update(dt)
	}
}

// Project recomputes every object's NDC and minimap matrices for the
// frame. The camera-bound object is projected too; it is drawn on the
// minimap even when hidden from the main view.
func (w *World) Project(worldToNDC, worldToMinimap stage.Mat3) {
	for _, o := range w.order {
		o.Project(worldToNDC, worldToMinimap)
	}
}

// Draw submits one draw call per live object in insertion order using
// the main-view matrices.
func (w *World) Draw(fill render.FillMode) error {
	for _, o := range w.order {
		if err := w.drawObject(o, o.ModelToNDC, fill); err != nil {
			return err
		}
	}
	return nil
}

// DrawMinimap submits the same objects using the minimap matrices.
func (w *World) DrawMinimap(fill render.FillMode) error {
	for _, o := range w.order {
		if err := w.drawObject(o, o.ModelToMinimap, fill); err != nil {
			return err
		}
	}
	return nil
}

func (w *World) drawObject(o *Object, mdlToNDC stage.Mat3, fill render.FillMode) error {
	return w.device.Draw(render.DrawCall{
		Mesh:       o.Model.ID,
		Program:    o.ProgramID,
		Texture:    o.TextureID,
		ModelToNDC: mdlToNDC,
		Tint:       o.Color,
		Fill:       fill,
	})
}

// removeOldest evicts the n oldest objects, skipping protect so the
// camera's entity survives shrinking.
func (w *World) removeOldest(n int, protect *Object) {
	kept := w.order[:0]
	for _, o := range w.order {
		if n > 0 && o != protect {
			delete(w.objects, o.Name)
			n--
			continue
		}
		kept = append(kept, o)
	}
	w.order = kept
}
