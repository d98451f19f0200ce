// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// ModelVertexShader is the vertex shader for lit, textured meshes.
//
//go:embed model.vert
var ModelVertexShader string

// ModelFragmentShader is the fragment shader for lit, textured meshes.
//
//go:embed model.frag
var ModelFragmentShader string

// SkyboxVertexShader is the vertex shader for the environment cube.
//
//go:embed skybox.vert
var SkyboxVertexShader string

// SkyboxFragmentShader is the fragment shader for the environment cube.
//
//go:embed skybox.frag
var SkyboxFragmentShader string
