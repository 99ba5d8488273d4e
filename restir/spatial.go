package restir

import (
	"math"

	"github.com/achilleasa/go-restir/gbuffer"
	"github.com/achilleasa/go-restir/scene"
)

// Neighbor rejection thresholds.
var (
	maxNormalCos       = float32(math.Cos(25 * math.Pi / 180))
	maxDepthDifference = float32(0.1)
)

// SpatialParams controls neighbor reuse.
type SpatialParams struct {
	// Number of neighbor probes (K).
	Neighbors uint32

	// Disk radius in pixels.
	Radius float32

	// Convert neighbors to generalized RIS weights before merging.
	Reweight bool

	// Shadow test the winner from the receiving pixel.
	Visibility bool

	// The merged reservoir is capped to SampleCap samples; 0 disables the cap.
	SampleCap uint32
}

// Returns true if the surface at pixel j is similar enough to the one at i
// for its reservoir to be reused at i.
func Compatible(gb *gbuffer.Buffer, i, j int) bool {
	if !gb.Valid[i] || !gb.Valid[j] {
		return false
	}
	if gb.Normal[i].Dot(gb.Normal[j]) < maxNormalCos {
		return false
	}
	depth := gb.Depth[i]
	return float32(math.Abs(float64(gb.Depth[j]-depth))) <= maxDepthDifference*depth
}

// Combine the reservoir of pixel (x, y) in src with up to K compatible
// neighbors picked uniformly from a disk around it.
func SpatialReuse(x, y uint32, gb *gbuffer.Buffer, src *Buffer, sc *scene.Scene, params SpatialParams, rng *RNG) Reservoir {
	i := gb.Index(x, y)
	if !gb.Valid[i] {
		return Reservoir{}
	}

	surf := SurfaceAt(gb, i)
	r := src.Reservoirs[i]
	for k := uint32(0); k < params.Neighbors; k++ {
		u1, u2, u3 := rng.Float32(), rng.Float32(), rng.Float32()

		radius := float64(params.Radius) * math.Sqrt(float64(u1))
		theta := 2 * math.Pi * float64(u2)
		nx := int(x) + int(math.Round(radius*math.Cos(theta)))
		ny := int(y) + int(math.Round(radius*math.Sin(theta)))
		if nx < 0 || ny < 0 || nx >= int(gb.Width) || ny >= int(gb.Height) || (nx == int(x) && ny == int(y)) {
			continue
		}

		j := gb.Index(uint32(nx), uint32(ny))
		if !Compatible(gb, i, j) {
			continue
		}

		neighbor := src.Reservoirs[j]
		if params.Reweight {
			neighbor = neighbor.Retarget(surf.TargetPdf)
		}
		r = Combine(r, neighbor, u3, surf.TargetPdf)
	}
	if params.SampleCap > 0 {
		r = r.Capped(params.SampleCap)
	}

	if params.Visibility {
		ApplyVisibility(&r, sc, surf)
	}
	return r
}
