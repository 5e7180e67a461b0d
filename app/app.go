// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package app runs the frame loop: it owns the world, the camera, the
// population controller and the clock, and turns per-frame input into
// updates and draw submissions. The window, surface and input polling
// live outside; the host feeds Input and calls Update and Draw once per
// frame.
package app

import (
	"fmt"
	"io/fs"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/gogpu/stage"
	"github.com/gogpu/stage/camera"
	"github.com/gogpu/stage/config"
	"github.com/gogpu/stage/mesh"
	"github.com/gogpu/stage/render"
	"github.com/gogpu/stage/scene"
	"github.com/gogpu/stage/shader"
	"github.com/gogpu/stage/texture"
)

// App is the per-run state. Create with New, call Init once, then
// Update and Draw each frame, and Close at teardown.
type App struct {
	cfg    *config.Config
	fsys   fs.FS
	device render.Device

	world *scene.World
	cam   *camera.Camera
	pop   *scene.Population
	clock *stage.Clock
	input stage.Input

	camObj *scene.Object
	fill   render.FillMode
	rng    *rand.Rand

	width  int
	height int
	frames uint64
}

// Option configures an App at construction time.
type Option func(*App, *[]scene.Option)

// WithRand seeds all randomness (procedural meshes and spawning) for
// reproducible runs.
func WithRand(rng *rand.Rand) Option {
	return func(a *App, wopts *[]scene.Option) {
		a.rng = rng
		*wopts = append(*wopts, scene.WithRand(rng))
	}
}

// WithCompiler overrides the shader compiler.
func WithCompiler(c shader.Compiler) Option {
	return func(a *App, wopts *[]scene.Option) {
		*wopts = append(*wopts, scene.WithCompiler(c))
	}
}

// New wires an App over the given assets and render device. The device
// is borrowed, not owned; Close leaves it to the caller.
func New(cfg *config.Config, fsys fs.FS, device render.Device, opts ...Option) *App {
	a := &App{
		cfg:    cfg,
		fsys:   fsys,
		device: device,
		clock:  stage.NewClock(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
	}
	wopts := []scene.Option{scene.WithMeshDir(cfg.Assets.MeshDir)}
	for _, opt := range opts {
		opt(a, &wopts)
	}
	a.world = scene.NewWorld(fsys, device, wopts...)
	return a
}

// Init registers the built-in procedural models, loads the configured
// scene and binds the camera to its named object. A scene without that
// object still runs; the camera just has nothing to track.
func (a *App) Init() error {
	if _, err := a.world.RegisterModel(mesh.Box(a.rng)); err != nil {
		return fmt.Errorf("app: register box: %w", err)
	}
	if _, err := a.world.RegisterModel(mesh.Mystery(a.rng)); err != nil {
		return fmt.Errorf("app: register mystery: %w", err)
	}
	if _, err := a.world.RegisterModel(mesh.TexturedQuad()); err != nil {
		return fmt.Errorf("app: register quad: %w", err)
	}

	policy, err := a.cfg.DuplicatePolicy()
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := a.world.LoadScene(a.cfg.Assets.Scene, &scene.LoadOptions{OnDuplicate: policy}); err != nil {
		return err
	}

	if a.cfg.Assets.Texture != "" {
		if err := a.applyTexture(a.cfg.Assets.Texture); err != nil {
			return err
		}
	}

	if obj, err := a.world.Object(a.cfg.Assets.CameraObject); err == nil {
		a.camObj = obj
	} else {
		stage.Logger().Warn("camera object not in scene", "name", a.cfg.Assets.CameraObject)
	}
	a.cam = camera.New(a.camObj)
	a.cam.Height = a.cfg.Camera.Height
	a.cam.MinZoom = a.cfg.Camera.MinHeight
	a.cam.MaxZoom = a.cfg.Camera.MaxHeight
	a.cam.Step = a.cfg.Camera.Step
	a.cam.MinimapHeight = a.cfg.Camera.MinimapHeight

	a.pop = scene.NewPopulation(a.cfg.Population.Min, a.cfg.Population.Max)
	a.pop.Extent = a.cfg.Population.Extent
	a.pop.ScaleMin = a.cfg.Population.ScaleMin
	a.pop.ScaleMax = a.cfg.Population.ScaleMax
	a.pop.MaxAngle = a.cfg.Population.MaxAngle
	a.pop.MaxSpeed = a.cfg.Population.MaxSpeed
	a.pop.Protect(a.camObj)

	stage.Logger().Info("app ready",
		"objects", a.world.Len(),
		"scene", a.cfg.Assets.Scene)
	return nil
}

// Input exposes the per-frame input state for the host to write into.
func (a *App) Input() *stage.Input { return &a.input }

// World exposes the live world, mainly for tests and stats readers.
func (a *App) World() *scene.World { return a.world }

// Camera exposes the view state.
func (a *App) Camera() *camera.Camera { return a.cam }

// Population exposes the spawn controller.
func (a *App) Population() *scene.Population { return a.pop }

// SetViewport records a framebuffer resize; the next Update picks up
// the new aspect ratio.
func (a *App) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		a.width, a.height = width, height
	}
}

// Update advances one frame: consume edge-triggered inputs, step the
// simulation by the clock's delta, then rebuild every projection.
func (a *App) Update() error {
	return a.Tick(a.clock.Tick())
}

// Tick is Update with an explicit delta, bypassing the wall clock so
// tests and offline rendering can step deterministically.
func (a *App) Tick(dt float32) error {
	if a.input.Pressed(stage.ActionTogglePopulation) {
		if err := a.pop.Step(a.world); err != nil {
			return err
		}
	}
	if a.input.Pressed(stage.ActionCycleFillMode) {
		a.fill = a.fill.Cycle()
	}

	a.world.Update(dt, a.camObj)
	a.cam.Update(&a.input, dt, a.aspect())
	a.world.Project(a.cam.WorldToNDC(), a.cam.WorldToMinimap())
	a.frames++
	return nil
}

// Draw submits the frame: the main view, then the minimap pass, then a
// flush to close the frame out.
func (a *App) Draw() error {
	if err := a.world.Draw(a.fill); err != nil {
		return err
	}
	if err := a.world.DrawMinimap(a.fill); err != nil {
		return err
	}
	return a.device.Flush()
}

// Fill reports the current fill mode.
func (a *App) Fill() render.FillMode { return a.fill }

// Close releases nothing itself; the render device is owned by the
// caller. It exists so hosts have a single teardown hook.
func (a *App) Close() error { return nil }

// applyTexture loads the configured texture with the configured wrap
// mode, uploads it once and tags every object with its handle. Objects
// without texture coordinates are left untextured.
func (a *App) applyTexture(path string) error {
	tex, err := texture.Load(a.fsys, path)
	if err != nil {
		return err
	}
	tex.Wrap, err = a.cfg.TextureWrapMode()
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	id, err := a.device.UploadTexture(tex)
	if err != nil {
		return err
	}
	a.world.Objects(func(o *scene.Object) {
		if len(o.Model.Mesh.TexCoords) > 0 {
			o.TextureID = id
		}
	})
	return nil
}

func (a *App) aspect() float32 {
	return float32(a.width) / float32(a.height)
}

// Stats is a snapshot of the run for a window title or log line.
type Stats struct {
	Frames      uint64
	Objects     int
	FPS         float64
	CameraMode  camera.Mode
	CameraZoom  float32
	Fill        render.FillMode
	ModelCounts map[string]int
}

// Stats samples the current frame statistics.
func (a *App) Stats() Stats {
	return Stats{
		Frames:      a.frames,
		Objects:     a.world.Len(),
		FPS:         a.clock.FPS(),
		CameraMode:  a.cam.Mode(),
		CameraZoom:  a.cam.Height,
		Fill:        a.fill,
		ModelCounts: a.world.ModelCounts(),
	}
}

// Title renders the stats the way the demo titles its window: name,
// live object count with a per-model breakdown in name order, camera
// state and frame rate.
func (s Stats) Title(name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s | objects: %d", name, s.Objects)

	models := make([]string, 0, len(s.ModelCounts))
	for m := range s.ModelCounts {
		models = append(models, m)
	}
	sort.Strings(models)
	for _, m := range models {
		fmt.Fprintf(&b, " | %s: %d", m, s.ModelCounts[m])
	}

	fmt.Fprintf(&b, " | camera: %s %.0f | fill: %s | fps: %.1f",
		s.CameraMode, s.CameraZoom, s.Fill, s.FPS)
	return b.String()
}
