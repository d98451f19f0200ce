package mesh

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/subdive/pkg/formats"
)

const triangle = `v 0 0 0
v 2 0 0
v 0 2 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
`

func parse(t *testing.T, src string) *formats.OBJ {
	t.Helper()
	obj, err := formats.ParseOBJ([]byte(src))
	require.NoError(t, err)
	return obj
}

func TestNewLayout(t *testing.T) {
	tests := []struct {
		name   string
		opts   Options
		stride int
		normal int
		uv     int
		tan    int
		bitan  int
	}{
		{"position only", Options{}, 3, -1, -1, -1, -1},
		{"normals", Options{Normals: true}, 6, 3, -1, -1, -1},
		{"normals uv", Options{Normals: true, TexCoords: true}, 8, 3, 6, -1, -1},
		{"uv only", Options{TexCoords: true}, 5, -1, 3, -1, -1},
		{"full", Options{Normals: true, TexCoords: true, Tangents: true}, 14, 3, 6, 8, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLayout(tt.opts)
			assert.Equal(t, tt.stride, l.Stride)
			assert.Equal(t, tt.normal, l.NormalOffset)
			assert.Equal(t, tt.uv, l.TexCoordOffset)
			assert.Equal(t, tt.tan, l.TangentOffset)
			assert.Equal(t, tt.bitan, l.BitangentOffset)
			assert.Equal(t, tt.opts.Tangents, l.HasBitangents())
		})
	}
}

func TestBuildInterleaves(t *testing.T) {
	data, err := Build(parse(t, triangle), Options{Normals: true, TexCoords: true})
	require.NoError(t, err)

	require.Equal(t, 3, data.VertexCount())
	// Second vertex: position (2,0,0), normal (0,0,1), uv (1,0).
	v := data.Vertices[8:16]
	assert.Equal(t, []float32{2, 0, 0, 0, 0, 1, 1, 0}, v)
}

func TestBuildTangents(t *testing.T) {
	data, err := Build(parse(t, triangle), Options{Normals: true, TexCoords: true, Tangents: true})
	require.NoError(t, err)

	l := data.Layout
	for i := 0; i < data.VertexCount(); i++ {
		base := i * l.Stride
		tan := data.Vertices[base+l.TangentOffset : base+l.TangentOffset+3]
		bitan := data.Vertices[base+l.BitangentOffset : base+l.BitangentOffset+3]
		// U runs along +X and V along +Y in this triangle.
		assert.InDeltaSlice(t, []float32{1, 0, 0}, tan, 1e-5)
		assert.InDeltaSlice(t, []float32{0, 1, 0}, bitan, 1e-5)
	}
}

func TestBuildMissingAttributes(t *testing.T) {
	bare := parse(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")

	_, err := Build(bare, Options{Normals: true})
	assert.True(t, errors.Is(err, ErrMissingAttribute))

	_, err = Build(bare, Options{Tangents: true})
	assert.True(t, errors.Is(err, ErrMissingAttribute))

	data, err := Build(bare, Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, data.VertexCount())
}
