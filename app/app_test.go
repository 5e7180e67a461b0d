// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import (
	"math/rand"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/chewxy/math32"

	"github.com/gogpu/stage"
	"github.com/gogpu/stage/camera"
	"github.com/gogpu/stage/config"
	"github.com/gogpu/stage/render"
	"github.com/gogpu/stage/scene"
	"github.com/gogpu/stage/texture"
)

const mainScene = `2
box
Camera
basic shaders/basic.vert shaders/basic.frag
1 1 1
100 100
0 0
0 0
mystery
rotor
basic shaders/basic.vert shaders/basic.frag
1 0 0
200 200
0 30
500 0
`

type stubCompiler struct{}

func (stubCompiler) Compile(string) ([]uint32, error) {
	return []uint32{0x07230203}, nil
}

func testApp(t *testing.T) (*App, *render.Headless) {
	t.Helper()
	fsys := fstest.MapFS{
		"scenes/main.scn":    {Data: []byte(mainScene)},
		"shaders/basic.vert": {Data: []byte("// vert")},
		"shaders/basic.frag": {Data: []byte("// frag")},
	}
	cfg := config.Default()
	cfg.Assets.Scene = "scenes/main.scn"
	cfg.Population.Max = 4

	dev := render.NewHeadless()
	a := New(cfg, fsys, dev,
		WithRand(rand.New(rand.NewSource(11))),
		WithCompiler(stubCompiler{}))
	if err := a.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return a, dev
}

func TestInit(t *testing.T) {
	a, dev := testApp(t)

	if got := a.World().Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	if a.Camera().Target() == nil || a.Camera().Target().Name != "Camera" {
		t.Error("camera is not bound to the Camera object")
	}
	// The three procedural models are uploaded once each at Init.
	if got := dev.MeshCount(); got != 3 {
		t.Errorf("MeshCount() = %d, want 3", got)
	}
	if a.Camera().Height != 1000 {
		t.Errorf("camera height = %g, want 1000", a.Camera().Height)
	}
}

func TestTickAdvancesObjects(t *testing.T) {
	a, _ := testApp(t)
	rotor, err := a.World().Object("rotor")
	if err != nil {
		t.Fatal(err)
	}

	if err := a.Tick(0.5); err != nil {
		t.Fatal(err)
	}
	if err := a.Tick(0.5); err != nil {
		t.Fatal(err)
	}

	if math32.Abs(rotor.Angle-30) > 1e-4 {
		t.Errorf("rotor.Angle = %g, want 30", rotor.Angle)
	}

	// The camera's entity is driven by input, not by the world update.
	cam, _ := a.World().Object("Camera")
	if cam.Angle != 0 {
		t.Errorf("Camera.Angle = %g, want 0", cam.Angle)
	}
}

func TestPopulationInput(t *testing.T) {
	a, _ := testApp(t)
	in := a.Input()

	grow := func() {
		t.Helper()
		in.Press(stage.ActionTogglePopulation)
		if err := a.Tick(0.016); err != nil {
			t.Fatal(err)
		}
		in.Release(stage.ActionTogglePopulation)
	}

	// First press: the edge fires once, 2 doubles to 4. The key stays
	// held for two more frames; without a fresh edge nothing steps.
	in.Press(stage.ActionTogglePopulation)
	if err := a.Tick(0.016); err != nil {
		t.Fatal(err)
	}
	if got := a.World().Len(); got != 4 {
		t.Fatalf("Len() = %d, want 4", got)
	}
	if err := a.Tick(0.016); err != nil {
		t.Fatal(err)
	}
	if err := a.Tick(0.016); err != nil {
		t.Fatal(err)
	}
	if got := a.World().Len(); got != 4 {
		t.Fatalf("Len() = %d after held key, want 4", got)
	}
	if a.Population().Mode() != scene.Growing {
		t.Fatalf("Mode() = %v after held key, want Growing", a.Population().Mode())
	}
	in.Release(stage.ActionTogglePopulation)

	grow() // at the ceiling: flip only
	if got := a.World().Len(); got != 4 {
		t.Fatalf("Len() = %d, want 4", got)
	}

	grow() // shrink to 2; the camera object is protected
	if got := a.World().Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	if _, err := a.World().Object("Camera"); err != nil {
		t.Errorf("camera object was evicted: %v", err)
	}
}

func TestFillModeCycles(t *testing.T) {
	a, _ := testApp(t)
	in := a.Input()

	cycle := func(want render.FillMode) {
		t.Helper()
		in.Press(stage.ActionCycleFillMode)
		if err := a.Tick(0.016); err != nil {
			t.Fatal(err)
		}
		in.Release(stage.ActionCycleFillMode)
		if a.Fill() != want {
			t.Fatalf("Fill() = %v, want %v", a.Fill(), want)
		}
	}

	cycle(render.FillLine)
	cycle(render.FillPoint)
	cycle(render.FillSolid)
}

func TestDraw(t *testing.T) {
	a, dev := testApp(t)
	if err := a.Tick(0.016); err != nil {
		t.Fatal(err)
	}
	if err := a.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	// Each object is drawn twice: main view plus minimap.
	if got := len(dev.LastFrame()); got != 4 {
		t.Fatalf("frame has %d draws, want 4", got)
	}
}

func TestAppliesTexture(t *testing.T) {
	quadScene := `2
quad
screen
basic shaders/basic.vert shaders/basic.frag
1 1 1
1000 1000
0 0
0 0
box
plain
basic shaders/basic.vert shaders/basic.frag
1 1 1
100 100
0 0
0 0
`
	raw := make([]byte, 256*256*4)
	for i := range raw {
		raw[i] = byte(i)
	}
	fsys := fstest.MapFS{
		"scenes/quad.scn":    {Data: []byte(quadScene)},
		"shaders/basic.vert": {Data: []byte("// vert")},
		"shaders/basic.frag": {Data: []byte("// frag")},
		"images/duck.tex":    {Data: raw},
	}
	cfg := config.Default()
	cfg.Assets.Scene = "scenes/quad.scn"
	cfg.Assets.Texture = "images/duck.tex"
	cfg.Assets.TextureWrap = "clamp-to-edge"

	dev := render.NewHeadless()
	a := New(cfg, fsys, dev,
		WithRand(rand.New(rand.NewSource(5))),
		WithCompiler(stubCompiler{}))
	if err := a.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if got := dev.TextureCount(); got != 1 {
		t.Fatalf("TextureCount() = %d, want 1", got)
	}
	screen, _ := a.World().Object("screen")
	if screen.TextureID == render.InvalidID {
		t.Error("quad object should carry the texture handle")
	}
	tex, ok := dev.Texture(screen.TextureID)
	if !ok {
		t.Fatal("uploaded texture not registered on the device")
	}
	if tex.Wrap != texture.ClampToEdge {
		t.Errorf("uploaded texture wrap = %v, want clamp-to-edge", tex.Wrap)
	}
	plain, _ := a.World().Object("plain")
	if plain.TextureID != render.InvalidID {
		t.Error("object without texcoords should stay untextured")
	}
}

func TestStatsTitle(t *testing.T) {
	s := Stats{
		Objects:     5,
		FPS:         60,
		CameraMode:  camera.Free,
		CameraZoom:  1000,
		Fill:        render.FillSolid,
		ModelCounts: map[string]int{"mystery": 3, "box": 2},
	}
	title := s.Title("stage")

	want := "stage | objects: 5 | box: 2 | mystery: 3 | camera: free 1000 | fill: solid | fps: 60.0"
	if title != want {
		t.Fatalf("Title() = %q, want %q", title, want)
	}
}

func TestStatsFromApp(t *testing.T) {
	a, _ := testApp(t)
	if err := a.Tick(0.016); err != nil {
		t.Fatal(err)
	}

	s := a.Stats()
	if s.Objects != 2 || s.Frames != 1 {
		t.Errorf("Stats = %+v", s)
	}
	if s.ModelCounts["box"] != 1 || s.ModelCounts["mystery"] != 1 {
		t.Errorf("ModelCounts = %v", s.ModelCounts)
	}
	if !strings.Contains(s.Title("stage"), "objects: 2") {
		t.Errorf("Title() = %q", s.Title("stage"))
	}
}
