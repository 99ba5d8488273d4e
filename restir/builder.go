package restir

import "github.com/achilleasa/go-restir/scene"

// Stream the generator's candidates for surf through a fresh reservoir using
// resampling weights targetPdf / sourcePdf and finalize it.
func BuildReservoir(gen *Generator, surf Surface, rng *RNG) Reservoir {
	var r Reservoir
	for i := uint32(0); i < gen.Candidates; i++ {
		sample := gen.Sample(surf, rng)

		var w float32
		if sample.Pdf > 0 {
			w = surf.TargetPdf(sample) / sample.Pdf
		}
		r.Update(sample, w, rng.Float32())
	}
	r.Finalize(surf.TargetPdf(r.Selected))
	return r
}

// Cast one shadow ray towards the selected sample and zero W if it is
// blocked. WeightSum and M are kept.
func ApplyVisibility(r *Reservoir, sc *scene.Scene, surf Surface) {
	if r.FinalWeight > 0 && !Visible(sc, surf, r.Selected) {
		r.FinalWeight = 0
	}
}
