package denoise

import (
	"math"
	"testing"

	"github.com/achilleasa/go-restir/frame"
	"github.com/achilleasa/go-restir/gbuffer"
	"github.com/achilleasa/go-restir/types"
)

func flatGBuffer(w, h uint32) *gbuffer.Buffer {
	gb := gbuffer.New(w, h)
	for y := uint32(0); y < h; y++ {
		for x := uint32(0); x < w; x++ {
			i := gb.Index(x, y)
			gb.Position[i] = types.XYZ(float32(x)*0.01, 0, float32(y)*0.01)
			gb.Normal[i] = types.XYZ(0, 1, 0)
			gb.Albedo[i] = types.XYZ(1, 1, 1)
			gb.Depth[i] = 1
			gb.Valid[i] = true
		}
	}
	return gb
}

func defaultPasses() []Pass {
	total := Iterations(DefaultFilterSize)
	passes := make([]Pass, total)
	for i := range passes {
		passes[i] = Pass{
			Iteration:   uint32(i),
			Total:       total,
			ColorPhi:    DefaultColorPhi,
			NormalPhi:   DefaultNormalPhi,
			PositionPhi: DefaultPositionPhi,
		}
	}
	return passes
}

func run(passes []Pass, img *frame.HDR, gb *gbuffer.Buffer) *frame.HDR {
	src, dst := img, frame.NewHDR(img.Width, img.Height)
	for _, pass := range passes {
		pass.Apply(src, dst, gb, 0, img.Height)
		src, dst = dst, src
	}
	return src
}

func TestIterations(t *testing.T) {
	type spec struct {
		footprint float32
		exp       uint32
	}
	specs := []spec{
		{0, 0},
		{9, 0},
		{10, 1},
		{20, 2},
		{80, 4},
		{512, 6},
	}
	for specIndex, s := range specs {
		if got := Iterations(s.footprint); got != s.exp {
			t.Fatalf("[spec %d] expected %d iterations for footprint %f; got %d", specIndex, s.exp, s.footprint, got)
		}
	}
}

func TestFlatInputIdempotence(t *testing.T) {
	gb := flatGBuffer(32, 32)
	img := frame.NewHDR(32, 32)
	for i := 0; i < gb.Len(); i++ {
		img.Set(i, types.XYZ(0.25, 0.5, 0.75))
	}

	out := run(defaultPasses(), img, gb)
	for i := 0; i < gb.Len(); i++ {
		if !types.ApproxEqual(out.At(i), types.XYZ(0.25, 0.5, 0.75), 1e-5) {
			t.Fatalf("[pixel %d] expected flat color to survive filtering; got %v", i, out.At(i))
		}
	}
}

func TestEdgePreservation(t *testing.T) {
	const size = 32

	type spec struct {
		left, right float32
		rightNormal types.Vec3
		colorPhi    float32
		preserved   bool
	}
	specs := []spec{
		// A color step on top of a normal discontinuity.
		{0, 1, types.XYZ(1, 0, 0), DefaultColorPhi, true},
		// Close colors; the normal term alone keeps the edge.
		{0.4, 0.6, types.XYZ(1, 0, 0), 1e9, true},
		// Close colors on a flat surface blur together.
		{0.4, 0.6, types.XYZ(0, 1, 0), 1e9, false},
	}
	for specIndex, s := range specs {
		gb := flatGBuffer(size, size)
		img := frame.NewHDR(size, size)
		for y := uint32(0); y < size; y++ {
			for x := uint32(0); x < size; x++ {
				i := img.Index(x, y)
				if x >= size/2 {
					gb.Normal[i] = s.rightNormal
					img.Set(i, types.XYZ(s.right, s.right, s.right))
				} else {
					img.Set(i, types.XYZ(s.left, s.left, s.left))
				}
			}
		}

		passes := defaultPasses()
		for i := range passes {
			passes[i].ColorPhi = s.colorPhi
		}

		out := run(passes, img, gb)
		minContrast := 0.9 * (s.right - s.left)
		for y := uint32(0); y < size; y++ {
			left := out.At(out.Index(size/2-1, y)).Luminance()
			right := out.At(out.Index(size/2, y)).Luminance()
			if preserved := right-left >= minContrast; preserved != s.preserved {
				t.Fatalf("[spec %d] expected edge preservation %t at row %d; got contrast %f", specIndex, s.preserved, y, right-left)
			}
		}
	}
}

func TestValidityBoundary(t *testing.T) {
	gb := flatGBuffer(16, 1)
	img := frame.NewHDR(16, 1)
	for x := uint32(0); x < 16; x++ {
		c := types.XYZ(1, 1, 1)
		if x >= 8 {
			gb.Valid[x] = false
			c = types.XYZ(5, 5, 5)
		}
		img.Set(int(x), c)
	}

	// A huge color phi would blend everything if validity did not separate the taps.
	pass := Pass{Iteration: 0, Total: 1, ColorPhi: 1e9, NormalPhi: 1e9, PositionPhi: 1e9}
	out := frame.NewHDR(16, 1)
	pass.Apply(img, out, gb, 0, 1)

	for x := 0; x < 16; x++ {
		exp := img.At(x)
		if !types.ApproxEqual(out.At(x), exp, 1e-5) {
			t.Fatalf("[pixel %d] expected %v; got %v", x, exp, out.At(x))
		}
	}
}

func TestNoisyInputVarianceDrops(t *testing.T) {
	gb := flatGBuffer(32, 32)
	img := frame.NewHDR(32, 32)
	for i := 0; i < gb.Len(); i++ {
		// checkerboard noise around 0.5
		v := float32(0.45)
		if (i+i/32)%2 == 0 {
			v = 0.55
		}
		img.Set(i, types.XYZ(v, v, v))
	}

	out := run(defaultPasses(), img, gb)
	var maxDev float64
	for i := 0; i < gb.Len(); i++ {
		maxDev = math.Max(maxDev, math.Abs(float64(out.At(i).Luminance())-0.5))
	}
	if maxDev >= 0.05 {
		t.Fatalf("expected filtering to reduce checkerboard deviation below 0.05; got %f", maxDev)
	}
}
