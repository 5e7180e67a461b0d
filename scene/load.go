// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/stage"
)

// DuplicatePolicy decides what happens when a scene record names an
// object that is already live.
type DuplicatePolicy int

const (
	// Reject fails the load with a DuplicateObjectError.
	Reject DuplicatePolicy = iota
	// Overwrite replaces the existing object, keeping its age for
	// eviction ordering.
	Overwrite
	// Rename keeps both, storing the newcomer under a derived name.
	Rename
)

// LoadOptions tunes scene loading. The zero value rejects duplicates.
type LoadOptions struct {
	OnDuplicate DuplicatePolicy
}

// LoadScene reads a scene file from the world's filesystem and
// instantiates its objects. The file starts with the object count
// followed by one seven-line record per object: model name, object
// name, shader name with its two source paths, color, scale,
// orientation (angle and angular speed in degrees), and position.
//
// Model and shader references are resolved while loading, so each mesh
// file and shader pair is read once regardless of how many records
// share it. On error the world keeps the objects added so far.
func (w *World) LoadScene(path string, opts *LoadOptions) error {
	f, err := w.fsys.Open(path)
	if err != nil {
		return fmt.Errorf("scene: open %s: %w", path, err)
	}
	defer f.Close()
	if opts == nil {
		opts = &LoadOptions{}
	}
	if err := w.loadScene(f, opts); err != nil {
		return fmt.Errorf("scene: load %s: %w", path, err)
	}
	return nil
}

type sceneScanner struct {
	sc   *bufio.Scanner
	line int
}

// next returns the next non-blank line, trimmed.
func (s *sceneScanner) next() (string, bool) {
	for s.sc.Scan() {
		s.line++
		line := strings.TrimSpace(s.sc.Text())
		if line == "" {
			continue
		}
		return line, true
	}
	return "", false
}

func (w *World) loadScene(r io.Reader, opts *LoadOptions) error {
	s := &sceneScanner{sc: bufio.NewScanner(r)}

	head, ok := s.next()
	if !ok {
		if err := s.sc.Err(); err != nil {
			return err
		}
		return &ParseError{Line: s.line + 1, Msg: "missing object count"}
	}
	count, err := strconv.Atoi(head)
	if err != nil || count < 0 {
		return &ParseError{Line: s.line, Msg: fmt.Sprintf("bad object count %q", head)}
	}

	for i := 0; i < count; i++ {
		o, err := w.readRecord(s)
		if err != nil {
			return err
		}
		if err := w.Add(o, opts.OnDuplicate); err != nil {
			return err
		}
	}
	if err := s.sc.Err(); err != nil {
		return err
	}
	stage.Logger().Info("scene loaded", "objects", count, "models", len(w.models))
	return nil
}

func (w *World) readRecord(s *sceneScanner) (*Object, error) {
	modelName, err := s.word("model name")
	if err != nil {
		return nil, err
	}
	objectName, err := s.word("object name")
	if err != nil {
		return nil, err
	}

	line, ok := s.next()
	if !ok {
		return nil, &ParseError{Line: s.line + 1, Msg: "missing shader line"}
	}
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return nil, &ParseError{Line: s.line, Msg: "shader line needs name and two paths"}
	}
	shaderName, vertPath, fragPath := fields[0], fields[1], fields[2]

	color, err := s.floats("color", 3)
	if err != nil {
		return nil, err
	}
	scale, err := s.floats("scale", 2)
	if err != nil {
		return nil, err
	}
	orient, err := s.floats("orientation", 2)
	if err != nil {
		return nil, err
	}
	pos, err := s.floats("position", 2)
	if err != nil {
		return nil, err
	}

	mdl, err := w.Model(modelName)
	if err != nil {
		return nil, &RecordError{Object: objectName, Err: err}
	}
	prog, progID, err := w.Program(shaderName, vertPath, fragPath)
	if err != nil {
		return nil, &RecordError{Object: objectName, Err: err}
	}

	o := &Object{
		Name:         objectName,
		ModelName:    modelName,
		ShaderName:   shaderName,
		Model:        mdl,
		Program:      prog,
		ProgramID:    progID,
		Color:        stage.Color{R: color[0], G: color[1], B: color[2]},
		Position:     stage.V2(pos[0], pos[1]),
		Scale:        stage.V2(scale[0], scale[1]),
		Angle:        orient[0],
		AngularSpeed: orient[1],
	}
	o.computeWorld()
	return o, nil
}

// word reads a line expected to hold a single token.
func (s *sceneScanner) word(what string) (string, error) {
	line, ok := s.next()
	if !ok {
		return "", &ParseError{Line: s.line + 1, Msg: "missing " + what}
	}
	if len(strings.Fields(line)) != 1 {
		return "", &ParseError{Line: s.line, Msg: what + " must be a single token"}
	}
	return line, nil
}

// floats reads a line of exactly n float fields.
func (s *sceneScanner) floats(what string, n int) ([]float32, error) {
	line, ok := s.next()
	if !ok {
		return nil, &ParseError{Line: s.line + 1, Msg: "missing " + what}
	}
	fields := strings.Fields(line)
	if len(fields) != n {
		return nil, &ParseError{Line: s.line, Msg: fmt.Sprintf("%s needs %d values", what, n)}
	}
	vals := make([]float32, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, &ParseError{Line: s.line, Msg: fmt.Sprintf("bad %s value %q", what, f)}
		}
		vals[i] = float32(v)
	}
	return vals, nil
}
