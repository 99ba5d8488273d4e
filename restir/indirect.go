package restir

import (
	"math"

	"github.com/achilleasa/go-restir/scene"
	"github.com/achilleasa/go-restir/types"
)

// The number of candidates resampled for next event estimation at secondary
// vertices.
const IndirectCandidates = 4

// Trace up to maxDepth cosine-sampled bounces from surf and gather direct
// light at every secondary vertex with a small RIS reservoir. Emitters hit
// by bounce rays add nothing since next event estimation already accounts
// for them.
func TraceIndirect(gen *Generator, sc *scene.Scene, surf Surface, maxDepth uint32, rng *RNG) types.Vec3 {
	var radiance types.Vec3
	throughput := types.XYZ(1, 1, 1)
	nee := &Generator{dist: gen.dist, Candidates: IndirectCandidates}

	for depth := uint32(0); depth < maxDepth; depth++ {
		// Lambertian BRDF (albedo / pi) over the cosine pdf leaves the albedo
		throughput = throughput.MulVec(surf.Albedo)
		if throughput.MaxComponent() <= 0 {
			break
		}

		dir, _ := scene.SampleCosineHemisphere(surf.Normal, rng.Float32(), rng.Float32())
		origin := surf.Position.Add(surf.Normal.Mul(scene.RayEpsilon))
		hit, ok := sc.Intersect(origin, dir, math.MaxFloat32)
		if !ok {
			break
		}

		surf = Surface{
			Position: hit.Position,
			Normal:   hit.Normal,
			Albedo:   hit.Primitive.Material.Albedo,
		}
		r := BuildReservoir(nee, surf, rng)
		radiance = radiance.Add(throughput.MulVec(Shade(sc, surf, types.Vec3{}, r, true)))
	}
	return radiance
}
