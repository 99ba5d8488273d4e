package scene

import (
	"math"

	"github.com/achilleasa/go-restir/types"
)

type LightType uint8

const (
	PointLight LightType = iota
	QuadLight
)

func (lt LightType) String() string {
	switch lt {
	case PointLight:
		return "point"
	case QuadLight:
		return "quad"
	}
	return "unknown"
}

// Defines an explicit scene emitter.
type Light struct {
	Type LightType

	// Point light position or quad corner.
	Position types.Vec3

	// Quad edges. The emitting side faces Edge1 x Edge2.
	Edge1 types.Vec3
	Edge2 types.Vec3

	// Radiant intensity for point lights; emitted radiance for quads.
	Intensity types.Vec3
}

// Create a point light.
func NewPointLight(pos, intensity types.Vec3) *Light {
	return &Light{
		Type:      PointLight,
		Position:  pos,
		Intensity: intensity,
	}
}

// Create a one-sided quad area light.
func NewQuadLight(corner, edge1, edge2, radiance types.Vec3) *Light {
	return &Light{
		Type:      QuadLight,
		Position:  corner,
		Edge1:     edge1,
		Edge2:     edge2,
		Intensity: radiance,
	}
}

// Get the unit normal of the emitting side. Point lights return the zero vector.
func (l *Light) Normal() types.Vec3 {
	if l.Type != QuadLight {
		return types.Vec3{}
	}
	return l.Edge1.Cross(l.Edge2).Normalize()
}

// Get the light surface area. Point lights have zero area.
func (l *Light) Area() float32 {
	if l.Type != QuadLight {
		return 0
	}
	return l.Edge1.Cross(l.Edge2).Len()
}

// Get the luminance of the total emitted power. This is the weight used for
// light selection.
func (l *Light) Power() float32 {
	switch l.Type {
	case PointLight:
		return 4 * math.Pi * l.Intensity.Luminance()
	case QuadLight:
		return math.Pi * l.Area() * l.Intensity.Luminance()
	}
	return 0
}

// Map two uniform numbers in [0, 1) to a point on the light. Point lights
// always return their position.
func (l *Light) SamplePoint(u1, u2 float32) types.Vec3 {
	if l.Type != QuadLight {
		return l.Position
	}
	return l.Position.Add(l.Edge1.Mul(u1)).Add(l.Edge2.Mul(u2))
}

// Get the quad center. Point lights return their position.
func (l *Light) Center() types.Vec3 {
	return l.SamplePoint(0.5, 0.5)
}
