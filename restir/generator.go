package restir

import "github.com/achilleasa/go-restir/scene"

// Generator draws light candidates from a scene light distribution.
type Generator struct {
	dist *scene.LightDistribution

	// The number of candidates (M) drawn per reservoir.
	Candidates uint32
}

// Create a generator that draws candidates candidates per surface.
func NewGenerator(sc *scene.Scene, candidates uint32) *Generator {
	return &Generator{
		dist:       sc.LightDistribution(),
		Candidates: candidates,
	}
}

// Returns true if the scene has no emitters at all.
func (g *Generator) Empty() bool {
	return g.dist.Len() == 0
}

// Draw a single candidate for the surface. Each call consumes exactly three
// random numbers. Returns a NoLight sample if the scene has no emitters.
func (g *Generator) Sample(surf Surface, rng *RNG) LightSample {
	uSel, u1, u2 := rng.Float32(), rng.Float32(), rng.Float32()

	index, selPdf := g.dist.Sample(uSel)
	if index < 0 || selPdf <= 0 {
		return LightSample{}
	}

	if index == g.dist.EnvironmentIndex() {
		dir, dirPdf := scene.SampleCosineHemisphere(surf.Normal, u1, u2)
		return LightSample{
			Kind:      EnvironmentSample,
			Light:     int32(index),
			Direction: dir,
			Radiance:  g.dist.Environment().Lookup(dir),
			Pdf:       selPdf * dirPdf,
		}
	}

	light := g.dist.Light(index)
	switch light.Type {
	case scene.PointLight:
		return LightSample{
			Kind:     PointSample,
			Light:    int32(index),
			Position: light.Position,
			Radiance: light.Intensity,
			Pdf:      selPdf,
		}
	case scene.QuadLight:
		return LightSample{
			Kind:     AreaSample,
			Light:    int32(index),
			Position: light.SamplePoint(u1, u2),
			Normal:   light.Normal(),
			Radiance: light.Intensity,
			Pdf:      selPdf / light.Area(),
		}
	}
	return LightSample{}
}
