package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedOBJ is returned for OBJ lines that cannot be parsed and for
// faces that reference missing vertex data.
var ErrMalformedOBJ = errors.New("malformed OBJ")

// OBJIndex references one corner of a face. Indices are zero-based;
// VT and VN are -1 when the corner has no texcoord or normal.
type OBJIndex struct {
	V  int
	VT int
	VN int
}

// OBJ holds the geometry of a Wavefront OBJ file. Polygons are fan
// triangulated on load. Materials, groups and smoothing are ignored.
type OBJ struct {
	Positions [][3]float32
	Normals   [][3]float32
	TexCoords [][2]float32
	Triangles [][3]OBJIndex
}

// HasNormals reports whether every triangle corner carries a normal.
func (o *OBJ) HasNormals() bool {
	return o.allCorners(func(i OBJIndex) bool { return i.VN >= 0 })
}

// HasTexCoords reports whether every triangle corner carries a texcoord.
func (o *OBJ) HasTexCoords() bool {
	return o.allCorners(func(i OBJIndex) bool { return i.VT >= 0 })
}

func (o *OBJ) allCorners(ok func(OBJIndex) bool) bool {
	if len(o.Triangles) == 0 {
		return false
	}
	for _, tri := range o.Triangles {
		for _, c := range tri {
			if !ok(c) {
				return false
			}
		}
	}
	return true
}

// ParseOBJ parses OBJ text.
func ParseOBJ(data []byte) (*OBJ, error) {
	obj := &OBJ{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			var v [3]float32
			err = parseFloats(fields[1:], v[:])
			obj.Positions = append(obj.Positions, v)
		case "vn":
			var n [3]float32
			err = parseFloats(fields[1:], n[:])
			obj.Normals = append(obj.Normals, n)
		case "vt":
			var t [2]float32
			err = parseFloats(fields[1:], t[:])
			obj.TexCoords = append(obj.TexCoords, t)
		case "f":
			err = obj.parseFace(fields[1:])
		default:
			// o, g, s, usemtl, mtllib and friends carry no geometry.
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedOBJ, line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read OBJ: %w", err)
	}

	if err := obj.validate(); err != nil {
		return nil, err
	}
	return obj, nil
}

func parseFloats(fields []string, out []float32) error {
	if len(fields) < len(out) {
		return fmt.Errorf("want %d values, got %d", len(out), len(fields))
	}
	for i := range out {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return err
		}
		out[i] = float32(v)
	}
	return nil
}

// parseFace reads "f v[/vt][/vn] ..." and appends a triangle fan.
func (o *OBJ) parseFace(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("face needs 3 corners, got %d", len(fields))
	}

	corners := make([]OBJIndex, len(fields))
	for i, f := range fields {
		parts := strings.Split(f, "/")
		if len(parts) > 3 {
			return fmt.Errorf("bad face corner %q", f)
		}

		var err error
		c := OBJIndex{VT: -1, VN: -1}
		if c.V, err = resolveIndex(parts[0], len(o.Positions)); err != nil {
			return err
		}
		if len(parts) > 1 && parts[1] != "" {
			if c.VT, err = resolveIndex(parts[1], len(o.TexCoords)); err != nil {
				return err
			}
		}
		if len(parts) > 2 && parts[2] != "" {
			if c.VN, err = resolveIndex(parts[2], len(o.Normals)); err != nil {
				return err
			}
		}
		corners[i] = c
	}

	for i := 1; i+1 < len(corners); i++ {
		o.Triangles = append(o.Triangles, [3]OBJIndex{corners[0], corners[i], corners[i+1]})
	}
	return nil
}

// resolveIndex converts a one-based or negative (relative) OBJ index.
func resolveIndex(s string, count int) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case v > 0:
		return v - 1, nil
	case v < 0:
		if count+v < 0 {
			return 0, fmt.Errorf("relative index %d before start", v)
		}
		return count + v, nil
	default:
		return 0, errors.New("index 0 is not valid")
	}
}

func (o *OBJ) validate() error {
	check := func(idx, n int, what string) error {
		if idx < 0 || idx >= n {
			return fmt.Errorf("%w: %s index %d out of range (%d defined)", ErrMalformedOBJ, what, idx+1, n)
		}
		return nil
	}

	for _, tri := range o.Triangles {
		for _, c := range tri {
			if err := check(c.V, len(o.Positions), "position"); err != nil {
				return err
			}
			if c.VT != -1 {
				if err := check(c.VT, len(o.TexCoords), "texcoord"); err != nil {
					return err
				}
			}
			if c.VN != -1 {
				if err := check(c.VN, len(o.Normals), "normal"); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
