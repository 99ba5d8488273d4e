package pipeline

import (
	"fmt"

	"github.com/achilleasa/go-restir/denoise"
	"github.com/lucasb-eyer/go-colorful"
)

// One A-Trous iteration. The first iteration reads the radiance buffer and
// every iteration feeds the next one.
type denoiseStage struct {
	pass      denoise.Pass
	iteration uint32
	total     uint32
}

func (s *denoiseStage) Name() string { return fmt.Sprintf("denoise(%d, %d)", s.iteration, s.total) }

func (s *denoiseStage) Configure(p Params) {
	s.pass = denoise.Pass{
		Iteration:   s.iteration,
		Total:       s.total,
		ColorPhi:    p.ColorPhi,
		NormalPhi:   p.NormalPhi,
		PositionPhi: p.PositionPhi,
	}
}

func (s *denoiseStage) Run(f *Frame) error {
	src, dst := f.Denoised, f.denoiseTarget()
	err := f.Exec.Dispatch(s.Name(), f.Height, func(blockY, blockH uint32) error {
		s.pass.Apply(src, dst, f.GBuffer, blockY, blockH)
		return nil
	})
	if err != nil {
		return err
	}

	f.Denoised = dst
	return nil
}

// Keep a running average of the denoised frames; camera motion restarts it.
type accumulateStage struct{}

func (s *accumulateStage) Name() string { return "accumulate" }
func (s *accumulateStage) Configure(_ Params) {}

func (s *accumulateStage) Run(f *Frame) error {
	if f.CameraMoved {
		f.AccumCount = 0
	}

	n := float32(f.AccumCount)
	err := f.Exec.Dispatch(s.Name(), f.Height, func(blockY, blockH uint32) error {
		for y := blockY; y < blockY+blockH && y < f.Height; y++ {
			for x := uint32(0); x < f.Width; x++ {
				i := f.Accumulated.Index(x, y)
				cur := f.Denoised.At(i)
				if n == 0 {
					f.Accumulated.Set(i, cur)
					continue
				}
				f.Accumulated.Set(i, f.Accumulated.At(i).Mul(n).Add(cur).Mul(1.0/(n+1)))
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	f.AccumCount++
	return nil
}

// Map the HDR result to 8-bit sRGB.
type tonemapStage struct {
	params Params
}

func (s *tonemapStage) Name() string { return "tonemap" }
func (s *tonemapStage) Configure(p Params) { s.params = p }

func (s *tonemapStage) Run(f *Frame) error {
	src := f.Denoised
	if s.params.EnableAccumulation {
		src = f.Accumulated
	}
	exposure := s.params.Exposure
	reinhard := s.params.Tonemapper == ReinhardTonemap

	return f.Exec.Dispatch(s.Name(), f.Height, func(blockY, blockH uint32) error {
		for y := blockY; y < blockY+blockH && y < f.Height; y++ {
			for x := uint32(0); x < f.Width; x++ {
				i := src.Index(x, y)
				c := src.At(i).Mul(exposure)
				if reinhard {
					for k := range c {
						c[k] = c[k] / (1 + c[k])
					}
				}

				r, g, b := colorful.LinearRgb(float64(c[0]), float64(c[1]), float64(c[2])).Clamped().RGB255()
				off := f.Output.PixOffset(int(x), int(y))
				f.Output.Pix[off] = r
				f.Output.Pix[off+1] = g
				f.Output.Pix[off+2] = b
				f.Output.Pix[off+3] = 255
			}
		}
		return nil
	})
}
