// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"math/rand"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gogpu/stage/render"
)

const oneObjectScene = `1
square
seed
basic shaders/basic.vert shaders/basic.frag
1 1 1
100 100
0 0
0 0
`

func newSpawnWorld(t *testing.T, seed int64) *World {
	t.Helper()
	fsys := testFS()
	fsys["scenes/one.scn"] = &fstest.MapFile{Data: []byte(oneObjectScene)}
	w := NewWorld(fsys, render.NewHeadless(),
		WithCompiler(&stubCompiler{}),
		WithRand(rand.New(rand.NewSource(seed))))
	if err := w.LoadScene("scenes/one.scn", nil); err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	// Give the spawner a second model to pick from.
	if _, err := w.Model("tri"); err != nil {
		t.Fatalf("Model(tri): %v", err)
	}
	return w
}

func TestPopulationSequence(t *testing.T) {
	w := newSpawnWorld(t, 42)
	p := NewPopulation(1, 4)

	step := func(want int, mode PopulationMode) {
		t.Helper()
		if err := p.Step(w); err != nil {
			t.Fatalf("Step: %v", err)
		}
		if w.Len() != want {
			t.Fatalf("Len() = %d, want %d", w.Len(), want)
		}
		if p.Mode() != mode {
			t.Fatalf("Mode() = %v, want %v", p.Mode(), mode)
		}
	}

	step(2, Growing)   // 1 doubles to 2
	step(4, Growing)   // 2 doubles to 4
	step(4, Shrinking) // at the ceiling: flip only
	step(2, Shrinking) // 4 halves to 2
	step(1, Shrinking) // 2 halves to the floor
	step(1, Growing)   // at the floor: flip only
	step(2, Growing)   // growing again
}

func TestPopulationEvictsOldest(t *testing.T) {
	w := newSpawnWorld(t, 7)
	p := NewPopulation(1, 8)

	// Grow 1 -> 2 -> 4. The seed object is oldest.
	for i := 0; i < 2; i++ {
		if err := p.Step(w); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	var before []string
	w.Objects(func(o *Object) { before = append(before, o.Name) })

	// Force a shrink.
	p.mode = Shrinking
	if err := p.Step(w); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if w.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", w.Len())
	}

	// The two oldest (the seed and the first spawn) are gone, the two
	// newest survive.
	var after []string
	w.Objects(func(o *Object) { after = append(after, o.Name) })
	for i, name := range after {
		if name != before[2+i] {
			t.Fatalf("survivors = %v, want %v", after, before[2:])
		}
	}
	if _, err := w.Object("seed"); err == nil {
		t.Error("oldest object should have been evicted")
	}
}

func TestPopulationProtects(t *testing.T) {
	w := newSpawnWorld(t, 3)
	p := NewPopulation(1, 8)
	cam, _ := w.Object("seed")
	p.Protect(cam)

	for i := 0; i < 3; i++ {
		if err := p.Step(w); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	p.mode = Shrinking
	if err := p.Step(w); err != nil {
		t.Fatalf("Step: %v", err)
	}

	if _, err := w.Object("seed"); err != nil {
		t.Fatalf("protected object was evicted: %v", err)
	}
}

func TestSpawnRandomRanges(t *testing.T) {
	w := newSpawnWorld(t, 99)
	p := NewPopulation(1, 1024)

	for i := 0; i < 200; i++ {
		o, err := w.SpawnRandom(p)
		if err != nil {
			t.Fatalf("SpawnRandom: %v", err)
		}
		if o.Position.X < -p.Extent || o.Position.X > p.Extent ||
			o.Position.Y < -p.Extent || o.Position.Y > p.Extent {
			t.Fatalf("position %v outside ±%g", o.Position, p.Extent)
		}
		if o.Scale.X < p.ScaleMin || o.Scale.X > p.ScaleMax ||
			o.Scale.Y < p.ScaleMin || o.Scale.Y > p.ScaleMax {
			t.Fatalf("scale %v outside [%g, %g]", o.Scale, p.ScaleMin, p.ScaleMax)
		}
		if o.Angle < -p.MaxAngle || o.Angle > p.MaxAngle {
			t.Fatalf("angle %g outside ±%g", o.Angle, p.MaxAngle)
		}
		if o.AngularSpeed < -p.MaxSpeed || o.AngularSpeed > p.MaxSpeed {
			t.Fatalf("speed %g outside ±%g", o.AngularSpeed, p.MaxSpeed)
		}
		if o.Model == nil || o.ProgramID == render.InvalidID {
			t.Fatal("spawned object has unresolved references")
		}
		if !strings.HasPrefix(o.Name, "spawn-") {
			t.Fatalf("name = %q", o.Name)
		}
	}
}

func TestSpawnDeterministic(t *testing.T) {
	a := newSpawnWorld(t, 1234)
	b := newSpawnWorld(t, 1234)
	p := NewPopulation(1, 64)

	for i := 0; i < 16; i++ {
		oa, err := a.SpawnRandom(p)
		if err != nil {
			t.Fatalf("SpawnRandom: %v", err)
		}
		ob, err := b.SpawnRandom(p)
		if err != nil {
			t.Fatalf("SpawnRandom: %v", err)
		}
		if oa.Position != ob.Position || oa.Angle != ob.Angle ||
			oa.ModelName != ob.ModelName || oa.Color != ob.Color {
			t.Fatalf("spawn %d diverged: %+v vs %+v", i, oa, ob)
		}
	}
}
