package lighting

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// SunDirection converts an azimuth (rotation around Y, 0-360) and an
// elevation above the horizon (0-90) into the direction light travels,
// i.e. pointing away from the sun. Both angles are in degrees.
func SunDirection(azimuth, elevation float32) mgl32.Vec3 {
	az := float64(mgl32.DegToRad(azimuth))
	el := float64(mgl32.DegToRad(elevation))

	toSun := mgl32.Vec3{
		float32(gomath.Cos(el) * gomath.Sin(az)),
		float32(gomath.Sin(el)),
		float32(gomath.Cos(el) * gomath.Cos(az)),
	}
	return toSun.Mul(-1).Normalize()
}
