package restir

import (
	"math"
	"testing"
)

func unitTarget(LightSample) float32 { return 1 }

func TestReservoirSelectionFrequency(t *testing.T) {
	weights := []float32{1, 2, 3, 4}
	counts := make([]int, len(weights))

	const trials = 200000
	rng := NewRNG(1, 2, 3, SaltCandidates)
	for trial := 0; trial < trials; trial++ {
		var r Reservoir
		for i, w := range weights {
			r.Update(LightSample{Kind: PointSample, Light: int32(i)}, w, rng.Float32())
		}
		counts[r.Selected.Light]++
	}

	for i, w := range weights {
		exp := float64(w) / 10
		got := float64(counts[i]) / trials
		if math.Abs(got-exp) > 0.01 {
			t.Fatalf("[candidate %d] expected selection frequency %f; got %f", i, exp, got)
		}
	}
}

func TestReservoirUpdate(t *testing.T) {
	var r Reservoir
	r.Update(LightSample{Kind: PointSample, Light: 7}, 0, 0)
	if r.SampleCount != 1 || r.WeightSum != 0 || r.Selected.Kind != NoLight {
		t.Fatalf("expected zero weight candidate to only bump M; got %+v", r)
	}

	// the first positive candidate always wins
	r.Update(LightSample{Kind: PointSample, Light: 3}, 0.5, 0.999)
	if r.SampleCount != 2 || r.WeightSum != 0.5 || r.Selected.Light != 3 {
		t.Fatalf("expected candidate 3 to be selected; got %+v", r)
	}

	r.Finalize(0.25)
	if r.FinalWeight != 1 {
		t.Fatalf("expected W = 0.5 / (2 * 0.25) = 1; got %f", r.FinalWeight)
	}
}

func TestReservoirFinalizeDegenerate(t *testing.T) {
	type spec struct {
		r         Reservoir
		targetPdf float32
	}
	specs := []spec{
		{Reservoir{}, 1},
		{Reservoir{Selected: LightSample{Kind: PointSample}, WeightSum: 1, SampleCount: 4}, 0},
		{Reservoir{SampleCount: 4}, 1},
	}
	for specIndex, s := range specs {
		s.r.Finalize(s.targetPdf)
		if s.r.FinalWeight != 0 {
			t.Fatalf("[spec %d] expected W to be 0; got %f", specIndex, s.r.FinalWeight)
		}
	}
}

func TestCombineAssociativity(t *testing.T) {
	sample := LightSample{Kind: PointSample}
	a := Reservoir{Selected: sample, WeightSum: 0.5, SampleCount: 3}
	b := Reservoir{Selected: sample, WeightSum: 1.25, SampleCount: 5}
	c := Reservoir{Selected: sample, WeightSum: 2.75, SampleCount: 7}

	left := Combine(Combine(a, b, 0.3, unitTarget), c, 0.6, unitTarget)
	right := Combine(a, Combine(b, c, 0.1, unitTarget), 0.8, unitTarget)

	if left.WeightSum != right.WeightSum || left.WeightSum != 4.5 {
		t.Fatalf("expected weight sums to match (4.5); got %f and %f", left.WeightSum, right.WeightSum)
	}
	if left.SampleCount != right.SampleCount || left.SampleCount != 15 {
		t.Fatalf("expected sample counts to match (15); got %d and %d", left.SampleCount, right.SampleCount)
	}
}

func TestCombineSelection(t *testing.T) {
	a := Reservoir{Selected: LightSample{Kind: PointSample, Light: 1}, WeightSum: 1, SampleCount: 1}
	b := Reservoir{Selected: LightSample{Kind: PointSample, Light: 2}, WeightSum: 3, SampleCount: 1}

	type spec struct {
		u        float32
		expLight int32
	}
	specs := []spec{
		{0, 1},
		{0.24, 1},
		{0.25, 2},
		{0.9, 2},
	}
	for specIndex, s := range specs {
		c := Combine(a, b, s.u, unitTarget)
		if c.Selected.Light != s.expLight {
			t.Fatalf("[spec %d] expected light %d to be selected; got %d", specIndex, s.expLight, c.Selected.Light)
		}
		if c.FinalWeight != 2 {
			t.Fatalf("[spec %d] expected W = 4 / (2 * 1) = 2; got %f", specIndex, c.FinalWeight)
		}
	}

	empty := Combine(Reservoir{}, Reservoir{}, 0.5, unitTarget)
	if empty.SampleCount != 0 || empty.FinalWeight != 0 || empty.Selected.Kind != NoLight {
		t.Fatalf("expected combining empty reservoirs to stay empty; got %+v", empty)
	}
}

func TestReservoirCapAndRetarget(t *testing.T) {
	r := Reservoir{Selected: LightSample{Kind: PointSample}, WeightSum: 8, SampleCount: 64, FinalWeight: 0.5}

	capped := r.Capped(16)
	if capped.SampleCount != 16 || capped.WeightSum != 2 {
		t.Fatalf("expected capped reservoir (M=16, wSum=2); got (M=%d, wSum=%f)", capped.SampleCount, capped.WeightSum)
	}
	if same := r.Capped(100); same != r {
		t.Fatalf("expected reservoir below the cap to be unchanged; got %+v", same)
	}
	if zero := r.Capped(0); zero.SampleCount != 0 || zero.WeightSum != 0 {
		t.Fatalf("expected zero cap to empty the reservoir; got %+v", zero)
	}

	retargeted := r.Retarget(func(LightSample) float32 { return 0.25 })
	if retargeted.WeightSum != 8 {
		t.Fatalf("expected wSum = 0.25 * 0.5 * 64 = 8; got %f", retargeted.WeightSum)
	}
}

func TestRNG(t *testing.T) {
	a := NewRNG(10, 20, 3, SaltSpatial)
	b := NewRNG(10, 20, 3, SaltSpatial)
	c := NewRNG(11, 20, 3, SaltSpatial)

	var sum float64
	differs := false
	for i := 0; i < 10000; i++ {
		va, vb, vc := a.Float32(), b.Float32(), c.Float32()
		if va != vb {
			t.Fatalf("[draw %d] expected identical streams for identical seeds", i)
		}
		if va < 0 || va >= 1 {
			t.Fatalf("[draw %d] expected value in [0, 1); got %f", i, va)
		}
		if va != vc {
			differs = true
		}
		sum += float64(va)
	}
	if !differs {
		t.Fatal("expected neighboring pixels to get different streams")
	}
	if mean := sum / 10000; math.Abs(mean-0.5) > 0.02 {
		t.Fatalf("expected mean close to 0.5; got %f", mean)
	}
}
