package renderer

import (
	"errors"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/subdive/internal/engine/mesh"
)

// Attribute locations shared with model.vert.
const (
	LocPosition  = 0
	LocNormal    = 1
	LocTexCoord  = 2
	LocTangent   = 3
	LocBitangent = 4
)

const floatSize = 4

// ErrEmptyMesh is returned when uploading a mesh with no vertices.
var ErrEmptyMesh = errors.New("mesh has no vertices")

type attribute struct {
	location uint32
	size     int32
	offset   int // in floats
}

// attributes lists the vertex attributes present in layout.
func attributes(l mesh.Layout) []attribute {
	attrs := []attribute{{LocPosition, 3, 0}}
	if l.HasNormals() {
		attrs = append(attrs, attribute{LocNormal, 3, l.NormalOffset})
	}
	if l.HasTexCoords() {
		attrs = append(attrs, attribute{LocTexCoord, 2, l.TexCoordOffset})
	}
	if l.HasTangents() {
		attrs = append(attrs, attribute{LocTangent, 3, l.TangentOffset})
	}
	if l.HasBitangents() {
		attrs = append(attrs, attribute{LocBitangent, 3, l.BitangentOffset})
	}
	return attrs
}

// GPUMesh is a vertex array drawn as non-indexed triangles.
type GPUMesh struct {
	vao   uint32
	vbo   uint32
	count int32
}

// UploadMesh copies interleaved vertex data to the GPU.
func UploadMesh(data *mesh.Data) (*GPUMesh, error) {
	if data == nil || data.VertexCount() == 0 {
		return nil, ErrEmptyMesh
	}

	m := &GPUMesh{count: int32(data.VertexCount())}
	stride := int32(data.Layout.Stride * floatSize)

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data.Vertices)*floatSize, gl.Ptr(data.Vertices), gl.STATIC_DRAW)

	for _, a := range attributes(data.Layout) {
		gl.VertexAttribPointerWithOffset(a.location, a.size, gl.FLOAT, false, stride, uintptr(a.offset*floatSize))
		gl.EnableVertexAttribArray(a.location)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return m, nil
}

// VertexCount returns the number of vertices drawn.
func (m *GPUMesh) VertexCount() int32 { return m.count }

// Draw issues the draw call with whatever program is current.
func (m *GPUMesh) Draw() {
	if m.vao == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	gl.BindVertexArray(0)
}

// Release frees the GPU buffers. Later calls are no-ops.
func (m *GPUMesh) Release() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
}
