package restir

import (
	"github.com/achilleasa/go-restir/scene"
	"github.com/achilleasa/go-restir/types"
)

// Compute emissive + W * (albedo / pi) * contribution for the reservoir's
// sample. If shadowTest is set the sample is shadow tested first; stages
// that already applied visibility reuse skip it.
func Shade(sc *scene.Scene, surf Surface, emissive types.Vec3, r Reservoir, shadowTest bool) types.Vec3 {
	if r.FinalWeight <= 0 {
		return emissive
	}
	if shadowTest && !Visible(sc, surf, r.Selected) {
		return emissive
	}
	return emissive.Add(surf.Reflected(r.Selected).Mul(r.FinalWeight))
}

// Estimate direct lighting with plain Monte Carlo over the generator's
// candidates, shadow testing each one. This is the reference estimator used
// when reservoir resampling is disabled.
func EstimateDirect(gen *Generator, sc *scene.Scene, surf Surface, rng *RNG) types.Vec3 {
	if gen.Candidates == 0 {
		return types.Vec3{}
	}

	var sum types.Vec3
	for i := uint32(0); i < gen.Candidates; i++ {
		sample := gen.Sample(surf, rng)
		if sample.Pdf <= 0 {
			continue
		}
		f := surf.Reflected(sample)
		if f.IsZero() || !Visible(sc, surf, sample) {
			continue
		}
		sum = sum.Add(f.Mul(1.0 / sample.Pdf))
	}
	return sum.Mul(1.0 / float32(gen.Candidates))
}
