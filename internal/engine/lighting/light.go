// Package lighting implements the scene's directional and point lights and
// the uniform uploads that feed the lit model shader.
package lighting

import "github.com/go-gl/mathgl/mgl32"

// Uniforms is the subset of a shader program the lights write to.
type Uniforms interface {
	SetFloat(name string, v float32)
	SetVec3(name string, v mgl32.Vec3)
}

// Kind identifies a light variant.
type Kind uint8

const (
	KindDirectional Kind = iota
	KindPoint
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindDirectional:
		return "directional"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Light is implemented by every light variant.
type Light interface {
	Kind() Kind
	// ApplyShared uploads the fields common to every light plus the viewer
	// position used for specular highlights.
	ApplyShared(viewer mgl32.Vec3, u Uniforms)
	// ApplyVariant uploads the fields specific to this kind.
	ApplyVariant(u Uniforms)
}

// Base holds the fields shared by all light kinds.
type Base struct {
	Color           mgl32.Vec3
	AmbientStrength float32
	AmbientColor    mgl32.Vec3
	SpecStrength    float32
	SpecPhong       float32
	Intensity       float32
}

// DefaultBase returns a white light with a faint ambient term.
func DefaultBase() Base {
	return Base{
		Color:           mgl32.Vec3{1, 1, 1},
		AmbientStrength: 0.2,
		AmbientColor:    mgl32.Vec3{1, 1, 1},
		SpecStrength:    0.5,
		SpecPhong:       16,
		Intensity:       1,
	}
}

func (b *Base) applyShared(prefix string, viewer mgl32.Vec3, u Uniforms) {
	u.SetVec3(prefix+"color", b.Color)
	u.SetFloat(prefix+"ambientStr", b.AmbientStrength)
	u.SetVec3(prefix+"ambientColor", b.AmbientColor)
	u.SetFloat(prefix+"specStr", b.SpecStrength)
	u.SetFloat(prefix+"specPhong", b.SpecPhong)
	u.SetVec3("cameraPos", viewer)
}
