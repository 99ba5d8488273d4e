package restir

import (
	"math"

	"github.com/achilleasa/go-restir/gbuffer"
	"github.com/achilleasa/go-restir/scene"
	"github.com/achilleasa/go-restir/types"
)

type Kind uint8

const (
	NoLight Kind = iota
	PointSample
	AreaSample
	EnvironmentSample
)

func (k Kind) String() string {
	switch k {
	case PointSample:
		return "point"
	case AreaSample:
		return "area"
	case EnvironmentSample:
		return "environment"
	}
	return "none"
}

// LightSample is a candidate point (or direction) on an emitter.
type LightSample struct {
	Kind Kind

	// Index of the emitter in the scene light distribution.
	Light int32

	// Sampled point (point and area samples).
	Position types.Vec3

	// Emitter normal (area samples).
	Normal types.Vec3

	// Direction towards the sky (environment samples).
	Direction types.Vec3

	// Intensity for point samples; radiance otherwise.
	Radiance types.Vec3

	// Source pdf: selection probability times the area or solid angle pdf.
	Pdf float32
}

// Surface is the receiving point of a pixel.
type Surface struct {
	Position types.Vec3
	Normal   types.Vec3
	Albedo   types.Vec3
}

// Get the surface stored at pixel index i of a geometry buffer.
func SurfaceAt(gb *gbuffer.Buffer, i int) Surface {
	return Surface{
		Position: gb.Position[i],
		Normal:   gb.Normal[i],
		Albedo:   gb.Albedo[i],
	}
}

// Get the unshadowed light arriving at the surface from the sample, projected
// onto the surface normal.
func (s LightSample) Contribution(surf Surface) types.Vec3 {
	switch s.Kind {
	case PointSample, AreaSample:
		toLight := s.Position.Sub(surf.Position)
		distSq := toLight.LenSq()
		if distSq == 0 {
			return types.Vec3{}
		}
		toLight = toLight.Mul(1.0 / float32(math.Sqrt(float64(distSq))))
		cos := surf.Normal.Dot(toLight)
		if cos <= 0 {
			return types.Vec3{}
		}
		if s.Kind == PointSample {
			return s.Radiance.Mul(cos / distSq)
		}
		cosLight := -s.Normal.Dot(toLight)
		if cosLight <= 0 {
			return types.Vec3{}
		}
		return s.Radiance.Mul(cos * cosLight / distSq)
	case EnvironmentSample:
		cos := surf.Normal.Dot(s.Direction)
		if cos <= 0 {
			return types.Vec3{}
		}
		return s.Radiance.Mul(cos)
	}
	return types.Vec3{}
}

// Evaluate the resampling target function of the surface:
// luminance(albedo * contribution) / pi.
func (surf Surface) TargetPdf(s LightSample) float32 {
	return surf.Albedo.MulVec(s.Contribution(surf)).Luminance() / math.Pi
}

// Get the reflected radiance for the sample, ignoring visibility.
func (surf Surface) Reflected(s LightSample) types.Vec3 {
	return surf.Albedo.Mul(1.0 / math.Pi).MulVec(s.Contribution(surf))
}

// Cast a shadow ray from the surface towards the sample. Returns false for
// empty samples.
func Visible(sc *scene.Scene, surf Surface, s LightSample) bool {
	origin := surf.Position.Add(surf.Normal.Mul(scene.RayEpsilon))
	switch s.Kind {
	case PointSample, AreaSample:
		return !sc.Occluded(origin, s.Position)
	case EnvironmentSample:
		return !sc.OccludedDir(origin, s.Direction)
	}
	return false
}
