package lighting

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/subdive/internal/engine/input"
)

const pointPrefix = "pointLight."

// IntensityLevels is the cycle a point light steps through, brightest first.
var IntensityLevels = [...]float32{1.5, 0.55, 0.15}

// Point is a positional light with distance attenuation.
type Point struct {
	Base
	Position  mgl32.Vec3
	Constant  float32
	Linear    float32
	Quadratic float32

	level int
	latch input.Latch
}

// NewPoint creates a point light at pos with the brightest intensity level.
func NewPoint(pos mgl32.Vec3) *Point {
	p := &Point{
		Base:      DefaultBase(),
		Position:  pos,
		Constant:  1.0,
		Linear:    0.09,
		Quadratic: 0.032,
	}
	p.Intensity = IntensityLevels[0]
	return p
}

func (p *Point) Kind() Kind { return KindPoint }

func (p *Point) ApplyShared(viewer mgl32.Vec3, u Uniforms) {
	p.applyShared(pointPrefix, viewer, u)
}

func (p *Point) ApplyVariant(u Uniforms) {
	u.SetVec3(pointPrefix+"position", p.Position)
	u.SetFloat(pointPrefix+"constant", p.Constant)
	u.SetFloat(pointPrefix+"linear", p.Linear)
	u.SetFloat(pointPrefix+"quadratic", p.Quadratic)
	u.SetFloat(pointPrefix+"intensity", p.Intensity)
}

// SetPosition moves the light.
func (p *Point) SetPosition(pos mgl32.Vec3) {
	p.Position = pos
}

// CycleIntensity advances to the next intensity level on the key-down edge
// only. Holding the key does not keep cycling. Reports whether it stepped.
func (p *Point) CycleIntensity(pressed bool) bool {
	if !p.latch.Rising(pressed) {
		return false
	}
	p.level = (p.level + 1) % len(IntensityLevels)
	p.Intensity = IntensityLevels[p.level]
	return true
}
