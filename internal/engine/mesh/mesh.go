// Package mesh turns parsed OBJ geometry into interleaved vertex data.
package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/subdive/pkg/formats"
)

// ErrMissingAttribute is returned when a requested attribute is not present
// on every face of the source geometry.
var ErrMissingAttribute = errors.New("mesh attribute missing")

// Options selects which attributes to interleave after the position.
// Tangents imply bitangents and need texcoords.
type Options struct {
	Normals   bool
	TexCoords bool
	Tangents  bool
}

// Layout describes an interleaved vertex. Sizes and offsets are counted in
// float components, not bytes. Absent attributes have offset -1.
type Layout struct {
	Stride          int
	NormalOffset    int
	TexCoordOffset  int
	TangentOffset   int
	BitangentOffset int
}

func (l Layout) HasNormals() bool    { return l.NormalOffset >= 0 }
func (l Layout) HasTexCoords() bool  { return l.TexCoordOffset >= 0 }
func (l Layout) HasTangents() bool   { return l.TangentOffset >= 0 }
func (l Layout) HasBitangents() bool { return l.BitangentOffset >= 0 }

// NewLayout computes the layout for the given options.
func NewLayout(opts Options) Layout {
	l := Layout{
		Stride:          3,
		NormalOffset:    -1,
		TexCoordOffset:  -1,
		TangentOffset:   -1,
		BitangentOffset: -1,
	}
	if opts.Normals {
		l.NormalOffset = l.Stride
		l.Stride += 3
	}
	if opts.TexCoords {
		l.TexCoordOffset = l.Stride
		l.Stride += 2
	}
	if opts.Tangents {
		l.TangentOffset = l.Stride
		l.BitangentOffset = l.Stride + 3
		l.Stride += 6
	}
	return l
}

// Data is interleaved, non-indexed triangle data.
type Data struct {
	Vertices []float32
	Layout   Layout
}

// VertexCount returns the number of vertices in Vertices.
func (d *Data) VertexCount() int {
	if d.Layout.Stride == 0 {
		return 0
	}
	return len(d.Vertices) / d.Layout.Stride
}

// Build expands every triangle corner into an interleaved vertex.
func Build(obj *formats.OBJ, opts Options) (*Data, error) {
	if opts.Normals && !obj.HasNormals() {
		return nil, fmt.Errorf("%w: normals", ErrMissingAttribute)
	}
	if (opts.TexCoords || opts.Tangents) && !obj.HasTexCoords() {
		return nil, fmt.Errorf("%w: texcoords", ErrMissingAttribute)
	}

	layout := NewLayout(opts)
	out := make([]float32, 0, len(obj.Triangles)*3*layout.Stride)

	for _, tri := range obj.Triangles {
		var tangent, bitangent mgl32.Vec3
		if opts.Tangents {
			tangent, bitangent = triangleTangents(obj, tri)
		}

		for _, c := range tri {
			p := obj.Positions[c.V]
			out = append(out, p[0], p[1], p[2])
			if opts.Normals {
				n := obj.Normals[c.VN]
				out = append(out, n[0], n[1], n[2])
			}
			if opts.TexCoords {
				uv := obj.TexCoords[c.VT]
				out = append(out, uv[0], uv[1])
			}
			if opts.Tangents {
				out = append(out, tangent[0], tangent[1], tangent[2])
				out = append(out, bitangent[0], bitangent[1], bitangent[2])
			}
		}
	}

	return &Data{Vertices: out, Layout: layout}, nil
}

// triangleTangents derives the tangent and bitangent of a triangle from its
// edge vectors and UV deltas. Degenerate UVs fall back to the X and Y axes.
func triangleTangents(obj *formats.OBJ, tri [3]formats.OBJIndex) (mgl32.Vec3, mgl32.Vec3) {
	p0 := mgl32.Vec3(obj.Positions[tri[0].V])
	p1 := mgl32.Vec3(obj.Positions[tri[1].V])
	p2 := mgl32.Vec3(obj.Positions[tri[2].V])
	uv0 := mgl32.Vec2(obj.TexCoords[tri[0].VT])
	uv1 := mgl32.Vec2(obj.TexCoords[tri[1].VT])
	uv2 := mgl32.Vec2(obj.TexCoords[tri[2].VT])

	e1, e2 := p1.Sub(p0), p2.Sub(p0)
	d1, d2 := uv1.Sub(uv0), uv2.Sub(uv0)

	det := d1.X()*d2.Y() - d2.X()*d1.Y()
	if mgl32.Abs(det) < 1e-8 {
		return mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}
	}
	f := 1 / det

	tangent := e1.Mul(d2.Y()).Sub(e2.Mul(d1.Y())).Mul(f)
	bitangent := e2.Mul(d1.X()).Sub(e1.Mul(d2.X())).Mul(f)
	return tangent.Normalize(), bitangent.Normalize()
}
