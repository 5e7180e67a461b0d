// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"fmt"

	"github.com/gogpu/stage"
)

// PopulationMode is the direction the population controller is moving.
type PopulationMode int

const (
	Growing PopulationMode = iota
	Shrinking
)

func (m PopulationMode) String() string {
	if m == Shrinking {
		return "shrinking"
	}
	return "growing"
}

// Population doubles or halves the world's object count on each step,
// reversing direction at its bounds. A step at the ceiling while
// growing only flips the mode; the next step shrinks. The same
// hysteresis applies at the floor, so repeated steps ping-pong between
// Min and Max without overshooting.
type Population struct {
	Min int
	Max int

	// Spawn parameter ranges. Positions are drawn from ±Extent on each
	// axis, scales from [ScaleMin, ScaleMax], orientation angle from
	// ±MaxAngle and angular speed from ±MaxSpeed, both in degrees.
	Extent   float32
	ScaleMin float32
	ScaleMax float32
	MaxAngle float32
	MaxSpeed float32

	mode    PopulationMode
	protect *Object
}

// NewPopulation returns a controller with the stock spawn ranges:
// positions within ±5000, scales in [50, 400], angles within ±360 and
// angular speeds within ±30 degrees per second.
func NewPopulation(min, max int) *Population {
	return &Population{
		Min:      min,
		Max:      max,
		Extent:   5000,
		ScaleMin: 50,
		ScaleMax: 400,
		MaxAngle: 360,
		MaxSpeed: 30,
	}
}

// Mode reports the controller's current direction.
func (p *Population) Mode() PopulationMode { return p.mode }

// Protect marks o as exempt from eviction while shrinking. The camera's
// entity is protected so zoom and pan survive population swings.
func (p *Population) Protect(o *Object) { p.protect = o }

// Step applies one population tick to w. While growing it doubles the
// object count, clamped to Max; at the ceiling it flips to shrinking
// without changing anything. While shrinking it evicts the oldest half,
// clamped to Min; at the floor it flips back to growing.
func (p *Population) Step(w *World) error {
	n := w.Len()
	switch p.mode {
	case Growing:
		if n >= p.Max {
			p.mode = Shrinking
			return nil
		}
		add := n
		if n+add > p.Max {
			add = p.Max - n
		}
		for i := 0; i < add; i++ {
			if _, err := w.SpawnRandom(p); err != nil {
				return err
			}
		}
		stage.Logger().Debug("population grew", "from", n, "to", w.Len())
	case Shrinking:
		if n <= p.Min {
			p.mode = Growing
			return nil
		}
		evict := n / 2
		if n-evict < p.Min {
			evict = n - p.Min
		}
		w.removeOldest(evict, p.protect)
		stage.Logger().Debug("population shrank", "from", n, "to", w.Len())
	}
	return nil
}

// SpawnRandom adds one object with random pose, color and model drawn
// from p's ranges. The shader is borrowed from the oldest live object,
// so the world must not be empty.
func (w *World) SpawnRandom(p *Population) (*Object, error) {
	if len(w.modelNames) == 0 {
		return nil, ErrNoModels
	}
	if len(w.order) == 0 {
		return nil, fmt.Errorf("scene: spawn needs a live object to share a shader with")
	}
	tmpl := w.order[0]
	mdl := w.models[w.modelNames[w.rng.Intn(len(w.modelNames))]]

	symmetric := func(extent float32) float32 {
		return (w.rng.Float32()*2 - 1) * extent
	}
	span := func(lo, hi float32) float32 {
		return lo + w.rng.Float32()*(hi-lo)
	}

	w.spawned++
	o := &Object{
		Name:         fmt.Sprintf("spawn-%d", w.spawned),
		ModelName:    mdl.Name,
		ShaderName:   tmpl.ShaderName,
		Model:        mdl,
		Program:      tmpl.Program,
		ProgramID:    tmpl.ProgramID,
		Color:        stage.Color{R: w.rng.Float32(), G: w.rng.Float32(), B: w.rng.Float32()},
		Position:     stage.V2(symmetric(p.Extent), symmetric(p.Extent)),
		Scale:        stage.V2(span(p.ScaleMin, p.ScaleMax), span(p.ScaleMin, p.ScaleMax)),
		Angle:        symmetric(p.MaxAngle),
		AngularSpeed: symmetric(p.MaxSpeed),
	}
	o.computeWorld()
	if err := w.Add(o, Rename); err != nil {
		return nil, err
	}
	return o, nil
}
