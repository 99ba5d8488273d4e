package restir

import (
	"math"
	"testing"

	"github.com/achilleasa/go-restir/gbuffer"
	"github.com/achilleasa/go-restir/scene"
	"github.com/achilleasa/go-restir/types"
)

func TestTemporalReuse(t *testing.T) {
	sc := pointLightScene(t, false)
	gen := NewGenerator(sc, 32)
	surf := floorSurface(1)

	rng := NewRNG(4, 4, 1, SaltCandidates)
	cur := BuildReservoir(gen, surf, &rng)
	prev := cur
	prev.WeightSum *= 5000.0 / 32
	prev.SampleCount = 5000

	params := TemporalParams{CapMultiplier: 20}

	reset := TemporalReuse(cur, prev, NoHistory, params, surf, 0.5)
	if reset.SampleCount != cur.SampleCount || reset.WeightSum != cur.WeightSum {
		t.Fatalf("expected camera motion to drop history (M=%d); got M=%d", cur.SampleCount, reset.SampleCount)
	}

	merged := TemporalReuse(cur, prev, ValidHistory, params, surf, 0.5)
	if exp := uint32(32 + 20*32); merged.SampleCount != exp {
		t.Fatalf("expected capped history to give M=%d; got %d", exp, merged.SampleCount)
	}
	if math.Abs(float64(merged.FinalWeight-1)) > 1e-3 {
		t.Fatalf("expected W to stay 1 for a single point light; got %f", merged.FinalWeight)
	}

	empty := TemporalReuse(cur, Reservoir{}, ValidHistory, params, surf, 0.5)
	if empty.SampleCount != cur.SampleCount {
		t.Fatalf("expected empty history to be ignored; got M=%d", empty.SampleCount)
	}
}

func flatGBuffer(w, h uint32) *gbuffer.Buffer {
	gb := gbuffer.New(w, h)
	for i := 0; i < gb.Len(); i++ {
		gb.Position[i] = types.XYZ(float32(i%int(w))*0.01, 0, float32(i/int(w))*0.01)
		gb.Normal[i] = types.XYZ(0, 1, 0)
		gb.Albedo[i] = types.XYZ(1, 1, 1)
		gb.Depth[i] = 1
		gb.Valid[i] = true
	}
	return gb
}

func TestCompatibleNeighbors(t *testing.T) {
	tilt := func(deg float64) types.Vec3 {
		rad := deg * math.Pi / 180
		return types.XYZ(float32(math.Sin(rad)), float32(math.Cos(rad)), 0)
	}

	type spec struct {
		normal types.Vec3
		depth  float32
		valid  bool
		exp    bool
	}
	specs := []spec{
		{tilt(0), 1, true, true},
		{tilt(20), 1, true, true},
		{tilt(30), 1, true, false},
		{tilt(0), 1.05, true, true},
		{tilt(0), 0.95, true, true},
		{tilt(0), 1.2, true, false},
		{tilt(0), 1, false, false},
	}
	for specIndex, s := range specs {
		gb := flatGBuffer(2, 1)
		gb.Normal[1] = s.normal
		gb.Depth[1] = s.depth
		gb.Valid[1] = s.valid
		if got := Compatible(gb, 0, 1); got != s.exp {
			t.Fatalf("[spec %d] expected compatibility %t; got %t", specIndex, s.exp, got)
		}
	}
}

func TestSpatialReuse(t *testing.T) {
	sc := pointLightScene(t, false)
	gb := flatGBuffer(9, 9)
	src := NewBuffer(9, 9)
	gen := NewGenerator(sc, 2)
	for i := range src.Reservoirs {
		rng := NewRNG(uint32(i), 0, 0, SaltCandidates)
		src.Reservoirs[i] = BuildReservoir(gen, SurfaceAt(gb, i), &rng)
	}
	params := SpatialParams{Neighbors: 20, Radius: 3, Visibility: true}

	rng := NewRNG(4, 4, 0, SaltSpatial)
	r := SpatialReuse(4, 4, gb, src, sc, params, &rng)
	if r.SampleCount <= 2 || r.SampleCount > 42 || r.SampleCount%2 != 0 {
		t.Fatalf("expected neighbors to add to M; got %d", r.SampleCount)
	}
	if r.FinalWeight <= 0 || r.Selected.Kind != PointSample {
		t.Fatalf("expected a visible point sample; got %+v", r)
	}

	// Neighbors with a different orientation are rejected
	for i := range gb.Normal {
		if i != gb.Index(4, 4) {
			gb.Normal[i] = types.XYZ(1, 0, 0)
		}
	}
	rng = NewRNG(4, 4, 0, SaltSpatial)
	if r = SpatialReuse(4, 4, gb, src, sc, params, &rng); r.SampleCount != 2 {
		t.Fatalf("expected incompatible neighbors to be skipped; got M=%d", r.SampleCount)
	}

	gb.Valid[gb.Index(4, 4)] = false
	rng = NewRNG(4, 4, 0, SaltSpatial)
	if r = SpatialReuse(4, 4, gb, src, sc, params, &rng); r.SampleCount != 0 {
		t.Fatalf("expected invalid pixel to get an empty reservoir; got M=%d", r.SampleCount)
	}
}

func TestSpatialReuseReweighted(t *testing.T) {
	sc := pointLightScene(t, false)
	gb := flatGBuffer(9, 9)
	src := NewBuffer(9, 9)
	gen := NewGenerator(sc, 4)
	for i := range src.Reservoirs {
		rng := NewRNG(uint32(i), 0, 0, SaltCandidates)
		src.Reservoirs[i] = BuildReservoir(gen, SurfaceAt(gb, i), &rng)
	}

	// With generalized RIS weights a single point light keeps W = 1 / pdf.
	rng := NewRNG(2, 6, 0, SaltSpatial)
	r := SpatialReuse(2, 6, gb, src, sc, SpatialParams{Neighbors: 20, Radius: 4, Reweight: true}, &rng)
	if math.Abs(float64(r.FinalWeight-1)) > 1e-3 {
		t.Fatalf("expected W = 1; got %f", r.FinalWeight)
	}
}

func TestSpatialReuseSampleCap(t *testing.T) {
	sc := pointLightScene(t, false)
	gb := flatGBuffer(9, 9)
	src := NewBuffer(9, 9)
	gen := NewGenerator(sc, 32)
	for i := range src.Reservoirs {
		rng := NewRNG(uint32(i), 0, 0, SaltCandidates)
		r := BuildReservoir(gen, SurfaceAt(gb, i), &rng)
		r.WeightSum *= 20
		r.SampleCount *= 20
		src.Reservoirs[i] = r
	}

	type spec struct {
		sampleCap  uint32
		minM, maxM uint32
	}
	specs := []spec{
		{640, 640, 640},
		{100, 100, 100},
		// Without a cap every accepted neighbor adds its full count.
		{0, 2 * 640, 21 * 640},
	}
	for specIndex, s := range specs {
		params := SpatialParams{Neighbors: 20, Radius: 3, Reweight: true, SampleCap: s.sampleCap}
		rng := NewRNG(4, 4, 0, SaltSpatial)
		r := SpatialReuse(4, 4, gb, src, sc, params, &rng)
		if r.SampleCount < s.minM || r.SampleCount > s.maxM {
			t.Fatalf("[spec %d] expected M in [%d, %d]; got %d", specIndex, s.minM, s.maxM, r.SampleCount)
		}
		if math.Abs(float64(r.FinalWeight-1)) > 1e-3 {
			t.Fatalf("[spec %d] expected capping to keep W = 1; got %f", specIndex, r.FinalWeight)
		}
	}
}

func TestEstimateDirect(t *testing.T) {
	surf := floorSurface(0.5)
	exp := float32(0.5 / math.Pi * 10 / 4)

	type spec struct {
		occluded bool
		exp      float32
	}
	specs := []spec{
		{false, exp},
		{true, 0},
	}
	for specIndex, s := range specs {
		sc := pointLightScene(t, s.occluded)
		rng := NewRNG(0, 0, 0, SaltShade)
		got := EstimateDirect(NewGenerator(sc, 16), sc, surf, &rng)
		if !types.ApproxEqual(got, types.XYZ(s.exp, s.exp, s.exp), 1e-4) {
			t.Fatalf("[spec %d] expected radiance %f; got %v", specIndex, s.exp, got)
		}
	}
}

func TestTraceIndirect(t *testing.T) {
	// Light reaches a downward facing surface only by bouncing off the floor.
	sc := pointLightScene(t, false)
	if err := sc.AddPrimitive(scene.NewPlane(types.XYZ(0, 0, 0), types.XYZ(0, 1, 0), scene.Diffuse(types.XYZ(1, 1, 1)))); err != nil {
		t.Fatal(err)
	}
	gen := NewGenerator(sc, 8)
	ceiling := Surface{Position: types.XYZ(0, 3, 0), Normal: types.XYZ(0, -1, 0), Albedo: types.XYZ(1, 1, 1)}

	rng := NewRNG(0, 0, 0, SaltIndirect)
	if got := TraceIndirect(gen, sc, ceiling, 0, &rng); !got.IsZero() {
		t.Fatalf("expected no indirect light with depth 0; got %v", got)
	}

	var sum float32
	for trial := uint32(0); trial < 256; trial++ {
		rng = NewRNG(trial, 0, 0, SaltIndirect)
		sum += TraceIndirect(gen, sc, ceiling, 1, &rng).Luminance()
	}
	if sum <= 0 {
		t.Fatal("expected the lit floor to bounce light to the ceiling")
	}
}
