package ngon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/resurfacer/pkg/math"
)

// LoadOBJ reads an n-gon mesh from a Wavefront OBJ file. Faces keep their
// full vertex count; nothing is triangulated.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening OBJ: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parsing OBJ %s: %w", path, err)
	}
	return mesh, nil
}

// ParseOBJ reads OBJ data from r. Supported records: v, vn, vt, and f with
// the v, v/vt, v//vn, and v/vt/vn index forms. Everything else is skipped.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	mesh := &Mesh{}
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			p, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			mesh.Positions = append(mesh.Positions, p)

		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			mesh.Normals = append(mesh.Normals, n.Normalize())

		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: texcoord needs 2 components", lineNo)
			}
			u, err1 := parseFloat(fields[1])
			v, err2 := parseFloat(fields[2])
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("line %d: bad texcoord %q", lineNo, line)
			}
			mesh.TexCoords = append(mesh.TexCoords, math.Vec2{X: u, Y: v})

		case "f":
			indices := make([]uint32, 0, len(fields)-1)
			for _, token := range fields[1:] {
				idx, err := parseFaceVertex(token)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				if idx < 1 || int(idx) > len(mesh.Positions) {
					return nil, fmt.Errorf("line %d: vertex index %d out of range", lineNo, idx)
				}
				// OBJ is 1-based.
				indices = append(indices, uint32(idx-1))
			}
			if err := mesh.AddFace(indices); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	mesh.FillDefaults()
	return mesh, nil
}

// parseFaceVertex extracts the position index from one face token,
// ignoring any texcoord/normal indices after the first slash.
func parseFaceVertex(token string) (int, error) {
	v := token
	if slash := strings.IndexByte(token, '/'); slash >= 0 {
		v = token[:slash]
	}
	idx, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("bad face vertex %q", token)
	}
	return idx, nil
}

func parseVec3(fields []string) (math.Vec3, error) {
	if len(fields) < 3 {
		return math.Vec3{}, fmt.Errorf("need 3 components, got %d", len(fields))
	}
	x, err1 := parseFloat(fields[0])
	y, err2 := parseFloat(fields[1])
	z, err3 := parseFloat(fields[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return math.Vec3{}, fmt.Errorf("bad components %v", fields[:3])
	}
	return math.Vec3{X: x, Y: y, Z: z}, nil
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	return float32(f), err
}
