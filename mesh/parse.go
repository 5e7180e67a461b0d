package mesh

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/gogpu/stage"
)

// Parse reads a mesh description from r. Topology is inferred from the
// index directives: a t record forces Triangles, an f record forces
// TriangleFan. The first f record in a mesh with no indices yet must
// carry three indices to seed the fan; every later f record appends a
// single index.
//
// The returned mesh is validated; a dangling index or a missing name is
// an error here, not at draw time.
func Parse(r io.Reader) (*Mesh, error) {
	m := &Mesh{}
	sc := bufio.NewScanner(r)

	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			x, y, err := parsePair(fields[1:])
			if err != nil {
				return nil, &ParseError{Line: line, Msg: fmt.Sprintf("vertex: %v", err)}
			}
			m.Positions = append(m.Positions, stage.V2(x, y))

		case "t":
			idx, err := parseIndices(fields[1:], 3)
			if err != nil {
				return nil, &ParseError{Line: line, Msg: fmt.Sprintf("triangle: %v", err)}
			}
			m.Topology = Triangles
			m.Indices = append(m.Indices, idx...)

		case "f":
			m.Topology = TriangleFan
			want := 1
			if len(m.Indices) == 0 {
				want = 3
			}
			idx, err := parseIndices(fields[1:], want)
			if err != nil {
				return nil, &ParseError{Line: line, Msg: fmt.Sprintf("fan: %v", err)}
			}
			m.Indices = append(m.Indices, idx...)

		case "n":
			if len(fields) < 2 {
				return nil, &ParseError{Line: line, Msg: "name: missing token"}
			}
			m.Name = fields[1]

		default:
			// Unknown directives are skipped, matching the permissive
			// line format.
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("mesh: read: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Load opens path in fsys and parses it. The open failure is wrapped so
// callers can distinguish a missing file from a malformed one.
func Load(fsys fs.FS, path string) (*Mesh, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: open %s: %w", path, err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w (in %s)", err, path)
	}
	stage.Logger().Debug("mesh loaded", "path", path, "name", m.Name,
		"vertices", len(m.Positions), "indices", len(m.Indices))
	return m, nil
}

func parsePair(fields []string) (x, y float32, err error) {
	if len(fields) < 2 {
		return 0, 0, fmt.Errorf("want 2 coordinates, got %d", len(fields))
	}
	xv, err := strconv.ParseFloat(fields[0], 32)
	if err != nil {
		return 0, 0, err
	}
	yv, err := strconv.ParseFloat(fields[1], 32)
	if err != nil {
		return 0, 0, err
	}
	return float32(xv), float32(yv), nil
}

func parseIndices(fields []string, want int) ([]uint16, error) {
	if len(fields) < want {
		return nil, fmt.Errorf("want %d indices, got %d", want, len(fields))
	}
	out := make([]uint16, want)
	for i := 0; i < want; i++ {
		v, err := strconv.ParseUint(fields[i], 10, 16)
		if err != nil {
			return nil, err
		}
		out[i] = uint16(v)
	}
	return out, nil
}
