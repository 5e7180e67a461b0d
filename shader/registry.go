package shader

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/gogpu/stage"
)

// ErrUnknownProgram is returned by Get for a name never loaded.
var ErrUnknownProgram = errors.New("shader: unknown program")

// CompileError reports a failed build of one shader stage. Log holds the
// compiler output for the diagnostic the top-level boundary prints.
type CompileError struct {
	Program string
	Stage   string
	Log     string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader: program %q: %s stage failed: %v", e.Program, e.Stage, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// Registry owns compiled programs keyed by name. Loading is memoized: a
// name seen twice is never recompiled, matching the scene loader's
// lazy-population contract.
//
// Registry is not safe for concurrent use; the engine is frame-stepped
// on a single goroutine.
type Registry struct {
	fsys     fs.FS
	compiler Compiler
	programs map[string]*Program
}

// NewRegistry creates a registry reading shader sources from fsys.
// A nil compiler defaults to NagaCompiler.
func NewRegistry(fsys fs.FS, c Compiler) *Registry {
	if c == nil {
		c = NagaCompiler{}
	}
	return &Registry{
		fsys:     fsys,
		compiler: c,
		programs: make(map[string]*Program),
	}
}

// Load returns the program registered under name, compiling it from the
// given vertex and fragment source paths on first reference. Later calls
// with the same name ignore the paths and return the cached program.
func (r *Registry) Load(name, vertPath, fragPath string) (*Program, error) {
	if p, ok := r.programs[name]; ok {
		stage.Logger().Debug("shader cache hit", "program", name)
		return p, nil
	}

	vert, err := r.compileStage(name, "vertex", vertPath)
	if err != nil {
		return nil, err
	}
	frag, err := r.compileStage(name, "fragment", fragPath)
	if err != nil {
		return nil, err
	}

	p := &Program{
		Name:     name,
		Vertex:   vert,
		Fragment: frag,
	}
	r.programs[name] = p
	stage.Logger().Info("shader program compiled", "program", name,
		"vertex", vertPath, "fragment", fragPath)
	return p, nil
}

// Get returns the program registered under name.
func (r *Registry) Get(name string) (*Program, error) {
	p, ok := r.programs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProgram, name)
	}
	return p, nil
}

// Len returns the number of compiled programs.
func (r *Registry) Len() int {
	return len(r.programs)
}

// Names returns the registered program names in unspecified order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.programs))
	for n := range r.programs {
		names = append(names, n)
	}
	return names
}

func (r *Registry) compileStage(program, stageName, path string) ([]uint32, error) {
	src, err := fs.ReadFile(r.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("shader: program %q: open %s stage %s: %w",
			program, stageName, path, err)
	}
	words, err := r.compiler.Compile(string(src))
	if err != nil {
		return nil, &CompileError{
			Program: program,
			Stage:   stageName,
			Log:     err.Error(),
			Err:     err,
		}
	}
	return words, nil
}
