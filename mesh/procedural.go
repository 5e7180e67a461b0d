package mesh

import (
	"math/rand"

	"github.com/gogpu/stage"
)

// randColor draws an RGB color with components in [0, 1).
func randColor(rng *rand.Rand) stage.Color {
	return stage.RGB(rng.Float32(), rng.Float32(), rng.Float32())
}

// Box returns a unit square centered on the origin with a random color
// per vertex. If rng is nil the shared package source is used.
func Box(rng *rand.Rand) *Mesh {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	m := &Mesh{
		Name: "box",
		Positions: []stage.Vec2{
			stage.V2(0.5, -0.5), stage.V2(0.5, 0.5),
			stage.V2(-0.5, 0.5), stage.V2(-0.5, -0.5),
		},
		Indices:  []uint16{0, 1, 2, 2, 3, 0},
		Topology: Triangles,
	}
	m.Colors = make([]stage.Color, len(m.Positions))
	for i := range m.Colors {
		m.Colors[i] = randColor(rng)
	}
	return m
}

// Mystery returns an irregular seven-vertex shape with a random color
// per vertex. If rng is nil the shared package source is used.
func Mystery(rng *rand.Rand) *Mesh {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	m := &Mesh{
		Name: "mystery",
		Positions: []stage.Vec2{
			stage.V2(-0.25, -0.5), stage.V2(0.3, 0.1),
			stage.V2(-0.1, -0.1), stage.V2(0, 0.1),
			stage.V2(-0.3, -0.1), stage.V2(0.2, 0.5),
			stage.V2(-0.1, 0.5),
		},
		Indices:  []uint16{0, 1, 2, 2, 1, 3, 3, 5, 6, 6, 4, 3, 3, 4, 2},
		Topology: Triangles,
	}
	m.Colors = make([]stage.Color, len(m.Positions))
	for i := range m.Colors {
		m.Colors[i] = randColor(rng)
	}
	return m
}

// TexturedQuad returns a full-viewport quad with fixed vertex colors and
// texture coordinates, used by texture sampling demos.
func TexturedQuad() *Mesh {
	return &Mesh{
		Name: "quad",
		Positions: []stage.Vec2{
			stage.V2(1, -1), stage.V2(1, 1),
			stage.V2(-1, 1), stage.V2(-1, -1),
		},
		Colors: []stage.Color{
			stage.RGB(1, 0, 0), stage.RGB(0, 1, 0),
			stage.RGB(0, 0, 1), stage.RGB(1, 0, 1),
		},
		TexCoords: []stage.Vec2{
			stage.V2(1, 0), stage.V2(1, 1),
			stage.V2(0, 1), stage.V2(0, 0),
		},
		Indices:  []uint16{0, 1, 2, 2, 3, 0},
		Topology: Triangles,
	}
}
