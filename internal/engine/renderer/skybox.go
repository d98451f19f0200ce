package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/subdive/internal/engine/shader"
)

// cubeVertices is a unit cube as 36 positions, wound to face inwards.
var cubeVertices = []float32{
	-1, 1, -1, -1, -1, -1, 1, -1, -1,
	1, -1, -1, 1, 1, -1, -1, 1, -1,

	-1, -1, 1, -1, -1, -1, -1, 1, -1,
	-1, 1, -1, -1, 1, 1, -1, -1, 1,

	1, -1, -1, 1, -1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, -1, 1, -1, -1,

	-1, -1, 1, -1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, -1, 1, -1, -1, 1,

	-1, 1, -1, 1, 1, -1, 1, 1, 1,
	1, 1, 1, -1, 1, 1, -1, 1, -1,

	-1, -1, -1, -1, -1, 1, 1, -1, -1,
	1, -1, -1, -1, -1, 1, 1, -1, 1,
}

// Skybox draws a cubemap on a cube that follows the camera.
type Skybox struct {
	program *shader.Program
	cubemap *Cubemap
	vao     uint32
	vbo     uint32
}

// NewSkybox builds the cube geometry. The skybox takes ownership of program
// and cubemap.
func NewSkybox(program *shader.Program, cubemap *Cubemap) *Skybox {
	s := &Skybox{program: program, cubemap: cubemap}

	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)
	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeVertices)*floatSize, gl.Ptr(cubeVertices), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(LocPosition, 3, gl.FLOAT, false, 3*floatSize, 0)
	gl.EnableVertexAttribArray(LocPosition)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return s
}

// Draw renders the cube behind everything else. Depth writes are disabled so
// scene geometry drawn afterwards always wins.
func (s *Skybox) Draw(view, projection, model mgl32.Mat4) {
	gl.DepthMask(false)
	gl.DepthFunc(gl.LEQUAL)

	s.program.Use()
	s.program.SetMat4("view", view)
	s.program.SetMat4("projection", projection)
	s.program.SetMat4("model", model)
	s.program.SetInt("skybox", 0)
	s.cubemap.Bind(0)

	gl.BindVertexArray(s.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(cubeVertices)/3))
	gl.BindVertexArray(0)

	gl.DepthFunc(gl.LESS)
	gl.DepthMask(true)
}

// Delete releases the cube, cubemap and program.
func (s *Skybox) Delete() {
	if s.vao != 0 {
		gl.DeleteVertexArrays(1, &s.vao)
		s.vao = 0
	}
	if s.vbo != 0 {
		gl.DeleteBuffers(1, &s.vbo)
		s.vbo = 0
	}
	s.cubemap.Delete()
	s.program.Delete()
}
