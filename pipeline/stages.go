package pipeline

import (
	"fmt"

	"github.com/achilleasa/go-restir/restir"
)

// Fill the geometry buffer from the frame camera.
type rasterizeStage struct{}

// Create a stage that rasterizes the frame scene into the geometry buffer.
func Rasterize() Stage {
	return &rasterizeStage{}
}

func (s *rasterizeStage) Name() string { return "gbuffer" }
func (s *rasterizeStage) Configure(_ Params) {}

func (s *rasterizeStage) Run(f *Frame) error {
	return f.Exec.Dispatch(s.Name(), f.Height, func(blockY, blockH uint32) error {
		f.GBuffer.Rasterize(f.Scene, f.Camera, blockY, blockH)
		return nil
	})
}

// Build a reservoir per pixel and merge it with the pixel's history.
type candidateStage struct {
	params Params
}

func (s *candidateStage) Name() string { return "candidates" }
func (s *candidateStage) Configure(p Params) { s.params = p }
func (s *candidateStage) temporal() restir.TemporalParams {
	return restir.TemporalParams{
		CapMultiplier: s.params.TemporalHistoryCap,
		Reweight:      s.params.ReweightNeighbors,
	}
}

func (s *candidateStage) Run(f *Frame) error {
	gb := f.GBuffer
	gen := restir.NewGenerator(f.Scene, s.params.LightSamples)
	temporal := s.temporal()
	visibility := s.params.EnableVisibilityReuse

	history := f.History
	if !s.params.EnableTemporalReuse {
		history = restir.NoHistory
	}

	return f.Exec.Dispatch(s.Name(), f.Height, func(blockY, blockH uint32) error {
		for y := blockY; y < blockY+blockH && y < f.Height; y++ {
			for x := uint32(0); x < f.Width; x++ {
				i := gb.Index(x, y)
				if !gb.Valid[i] {
					f.Reservoirs.Reservoirs[i] = restir.Reservoir{}
					continue
				}

				surf := restir.SurfaceAt(gb, i)
				rng := restir.NewRNG(x, y, f.Index, restir.SaltCandidates)
				r := restir.BuildReservoir(gen, surf, &rng)
				if visibility {
					restir.ApplyVisibility(&r, f.Scene, surf)
				}

				prev := f.PrevReservoirs.Reservoirs[i]
				if history == restir.ValidHistory && prev.SampleCount > 0 {
					trng := restir.NewRNG(x, y, f.Index, restir.SaltTemporal)
					r = restir.TemporalReuse(r, prev, history, temporal, surf, trng.Float32())
					if visibility {
						restir.ApplyVisibility(&r, f.Scene, surf)
					}
				}

				f.Reservoirs.Reservoirs[i] = r
			}
		}
		return nil
	})
}

// One spatial reuse pass. Passes ping-pong between the frame reservoirs and
// a scratch buffer so that no pixel observes a partially updated neighbor.
type spatialStage struct {
	params    Params
	iteration uint32
	total     uint32
}

func (s *spatialStage) Name() string { return fmt.Sprintf("spatial(%d, %d)", s.iteration, s.total) }
func (s *spatialStage) Configure(p Params) { s.params = p }

func (s *spatialStage) Run(f *Frame) error {
	gb := f.GBuffer
	src, dst := f.Reservoirs, f.spatialScratch
	params := restir.SpatialParams{
		Neighbors:  s.params.SpatialNeighbors,
		Radius:     s.params.SpatialRadius,
		Reweight:   s.params.ReweightNeighbors,
		Visibility: s.params.EnableVisibilityReuse,
		SampleCap:  s.params.SampleCap(),
	}
	salt := restir.SaltSpatial + s.iteration

	err := f.Exec.Dispatch(s.Name(), f.Height, func(blockY, blockH uint32) error {
		for y := blockY; y < blockY+blockH && y < f.Height; y++ {
			for x := uint32(0); x < f.Width; x++ {
				rng := restir.NewRNG(x, y, f.Index, salt)
				dst.Reservoirs[gb.Index(x, y)] = restir.SpatialReuse(x, y, gb, src, f.Scene, params, &rng)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	f.Reservoirs, f.spatialScratch = dst, src
	return nil
}

// Evaluate direct lighting for each pixel into the radiance buffer.
type shadeStage struct {
	params Params
}

func (s *shadeStage) Name() string { return "shade" }
func (s *shadeStage) Configure(p Params) { s.params = p }

func (s *shadeStage) Run(f *Frame) error {
	gb := f.GBuffer
	gen := restir.NewGenerator(f.Scene, s.params.LightSamples)
	shadowTest := !s.params.EnableVisibilityReuse

	return f.Exec.Dispatch(s.Name(), f.Height, func(blockY, blockH uint32) error {
		for y := blockY; y < blockY+blockH && y < f.Height; y++ {
			for x := uint32(0); x < f.Width; x++ {
				i := gb.Index(x, y)
				if !gb.Valid[i] {
					f.Radiance.Set(i, gb.Emissive[i])
					continue
				}

				surf := restir.SurfaceAt(gb, i)
				if s.params.EnableReSTIR {
					f.Radiance.Set(i, restir.Shade(f.Scene, surf, gb.Emissive[i], f.Reservoirs.Reservoirs[i], shadowTest))
					continue
				}

				rng := restir.NewRNG(x, y, f.Index, restir.SaltShade)
				f.Radiance.Set(i, gb.Emissive[i].Add(restir.EstimateDirect(gen, f.Scene, surf, &rng)))
			}
		}
		return nil
	})
}

// Add indirect illumination to the radiance buffer.
type indirectStage struct {
	params Params
}

func (s *indirectStage) Name() string { return "indirect" }
func (s *indirectStage) Configure(p Params) { s.params = p }

func (s *indirectStage) Run(f *Frame) error {
	gb := f.GBuffer
	gen := restir.NewGenerator(f.Scene, s.params.LightSamples)

	return f.Exec.Dispatch(s.Name(), f.Height, func(blockY, blockH uint32) error {
		for y := blockY; y < blockY+blockH && y < f.Height; y++ {
			for x := uint32(0); x < f.Width; x++ {
				i := gb.Index(x, y)
				if !gb.Valid[i] {
					continue
				}

				rng := restir.NewRNG(x, y, f.Index, restir.SaltIndirect)
				indirect := restir.TraceIndirect(gen, f.Scene, restir.SurfaceAt(gb, i), s.params.MaxRayDepth, &rng)
				f.Radiance.Set(i, f.Radiance.At(i).Add(indirect))
			}
		}
		return nil
	})
}
