// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package stage provides the core value types for a small 2D scene engine:
// float32 vectors and 3x3 affine matrices, RGB colors, a frame clock and a
// sampled input surface.
//
// The engine is organized leaf to root:
//
//   - mesh:    line-oriented mesh file parsing into geometry
//   - shader:  WGSL program compilation (via naga) and a memoizing registry
//   - texture: raw .tex and image-decoder based texture loading
//   - render:  device abstraction over wgpu/hal, GPU buffer and module upload
//   - scene:   world state, object instances, scene file loading, population
//   - camera:  2D camera bound to a tracked object, main and minimap views
//   - config:  TOML runtime configuration
//   - app:     the init/update/draw/cleanup frame lifecycle tying it together
//
// Everything is single-threaded and frame-stepped: one goroutine drives
// initialize, then update/draw per frame, then cleanup. Packages in this
// module do not lock except where the underlying GPU wrappers require it.
//
// Coordinate conventions: right-handed 2D, counter-clockwise positive
// rotation, angles stored in degrees and converted to radians immediately
// before trigonometric evaluation. Matrices are column-major and multiply
// column vectors, so composed transforms read right to left.
package stage
