// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package shader compiles WGSL shader programs and keeps them in a
// name-keyed registry. A program is compiled on first reference and
// reused on every later one; compilation failures carry the compiler
// log so the caller can print a diagnostic before deciding to abort.
package shader

import (
	"fmt"

	"github.com/gogpu/naga"
)

// Program is a compiled shader program: one vertex and one fragment
// stage as SPIR-V words, plus the compiler log. A program is immutable
// once it enters a registry.
type Program struct {
	Name     string
	Vertex   []uint32
	Fragment []uint32
	Log      string
}

// Compiler translates WGSL source into SPIR-V words. The production
// implementation is NagaCompiler; tests substitute stubs so registry
// behavior can be exercised without a real shader pipeline.
type Compiler interface {
	Compile(source string) ([]uint32, error)
}

// NagaCompiler compiles WGSL through the naga translator.
type NagaCompiler struct{}

// Compile translates WGSL source to SPIR-V.
func (NagaCompiler) Compile(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("shader: compile: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}
