package scene

import (
	"math"

	"github.com/achilleasa/go-restir/asset/texture"
	"github.com/achilleasa/go-restir/types"
)

// The Environment type describes radiance arriving from infinitely far away.
// It is either a constant color or a lat-long image modulated by Radiance.
type Environment struct {
	// Constant radiance, or the tint applied to Map texels.
	Radiance types.Vec3

	// Optional lat-long map. +Y is up; the map center looks down -Z.
	Map *texture.Texture

	avgLuminance float32
}

// Create an environment that emits the same radiance in every direction.
func NewConstantEnvironment(radiance types.Vec3) *Environment {
	return &Environment{
		Radiance:     radiance,
		avgLuminance: radiance.Luminance(),
	}
}

// Create an environment from a lat-long texture. The texel values are
// multiplied by scale.
func NewMapEnvironment(tex *texture.Texture, scale types.Vec3) *Environment {
	env := &Environment{
		Radiance: scale,
		Map:      tex,
	}

	// Solid-angle weighted mean; each texel row covers sin(theta) of the sphere
	var sum, weightSum float64
	for y := uint32(0); y < tex.Height; y++ {
		sinTheta := math.Sin(math.Pi * (float64(y) + 0.5) / float64(tex.Height))
		for x := uint32(0); x < tex.Width; x++ {
			sum += sinTheta * float64(tex.Texel(int(x), int(y)).MulVec(scale).Luminance())
			weightSum += sinTheta
		}
	}
	if weightSum > 0 {
		env.avgLuminance = float32(sum / weightSum)
	}
	return env
}

// Get the radiance arriving along the reverse of dir (dir points away from
// the receiver, towards the sky).
func (e *Environment) Lookup(dir types.Vec3) types.Vec3 {
	if e.Map == nil {
		return e.Radiance
	}

	dir = dir.Normalize()
	u := 0.5 + math.Atan2(float64(dir[0]), float64(-dir[2]))/(2*math.Pi)
	v := math.Acos(math.Max(-1, math.Min(1, float64(dir[1])))) / math.Pi
	return e.Map.Sample(float32(u), float32(v)).MulVec(e.Radiance)
}

// Get the solid-angle averaged luminance of the environment.
func (e *Environment) AverageLuminance() float32 {
	return e.avgLuminance
}

// Get the light selection weight of the environment: the luminance of the
// irradiance it delivers to an unoccluded upward facing surface.
func (e *Environment) Power() float32 {
	return math.Pi * e.avgLuminance
}

// Map two uniform numbers in [0, 1) to a cosine-distributed direction around
// normal. Returns the direction and its solid angle pdf (cos / pi).
func SampleCosineHemisphere(normal types.Vec3, u1, u2 float32) (types.Vec3, float32) {
	phi := 2.0 * math.Pi * float64(u1)
	r := math.Sqrt(float64(u2))
	cosTheta := math.Sqrt(1.0 - float64(u2))

	tangent, bitangent := types.OrthoBasis(normal)
	dir := tangent.Mul(float32(r * math.Cos(phi))).
		Add(bitangent.Mul(float32(r * math.Sin(phi)))).
		Add(normal.Mul(float32(cosTheta)))
	return dir.Normalize(), float32(cosTheta / math.Pi)
}
