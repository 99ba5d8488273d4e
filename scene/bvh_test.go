package scene

import (
	"math/rand/v2"
	"testing"

	"github.com/achilleasa/go-restir/types"
)

func randomScene(t *testing.T, rng *rand.Rand, count int) *Scene {
	sc := NewScene("random")
	mat := Diffuse(types.XYZ(0.5, 0.5, 0.5))
	if err := sc.AddPrimitive(NewPlane(types.XYZ(0, -6, 0), types.XYZ(0, 1, 0), mat)); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < count; i++ {
		pos := types.XYZ(rng.Float32()*10-5, rng.Float32()*10-5, rng.Float32()*10-5)
		var prim *Primitive
		if i%2 == 0 {
			prim = NewSphere(pos, 0.1+rng.Float32()*0.4, mat)
		} else {
			prim = NewQuad(pos, types.XYZ(rng.Float32(), 0, 0), types.XYZ(0, rng.Float32(), rng.Float32()), mat)
		}
		if err := sc.AddPrimitive(prim); err != nil {
			t.Fatal(err)
		}
	}
	return sc
}

func TestBvhCoversAllPrimitives(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	sc := randomScene(t, rng, 60)
	bvh := sc.BuildBVH()

	seen := make(map[*Primitive]int)
	for _, node := range bvh.Nodes {
		if !node.IsLeaf() {
			continue
		}
		for _, prim := range bvh.Items[node.First : node.First+node.Count] {
			seen[prim]++
			box := prim.BBox()
			for axis := 0; axis < 3; axis++ {
				if box[0][axis] < node.Min[axis] || box[1][axis] > node.Max[axis] {
					t.Fatalf("expected leaf bbox to enclose primitive bbox %v; got [%v, %v]", box, node.Min, node.Max)
				}
			}
		}
	}

	if len(seen) != 60 {
		t.Fatalf("expected all 60 bounded primitives in the leafs; got %d", len(seen))
	}
	for prim, count := range seen {
		if count != 1 {
			t.Fatalf("expected %s to appear in exactly one leaf; got %d", prim.Type, count)
		}
	}
	if bvh.Leafs < 2 {
		t.Fatalf("expected the builder to split the primitives; got %d leafs", bvh.Leafs)
	}
}

func TestBvhMatchesLinearIntersection(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	linear := randomScene(t, rand.New(rand.NewPCG(5, 6)), 80)
	accel := randomScene(t, rand.New(rand.NewPCG(5, 6)), 80)
	accel.BuildBVH()

	for i := 0; i < 2000; i++ {
		origin := types.XYZ(rng.Float32()*12-6, rng.Float32()*12-6, rng.Float32()*12-6)
		dir := types.XYZ(rng.Float32()*2-1, rng.Float32()*2-1, rng.Float32()*2-1).Normalize()
		if dir.IsZero() {
			continue
		}

		expHit, expOk := linear.Intersect(origin, dir, 100)
		hit, ok := accel.Intersect(origin, dir, 100)
		if ok != expOk || (ok && hit.T != expHit.T) {
			t.Fatalf("[ray %d] expected hit %t at t=%f; got %t at t=%f", i, expOk, expHit.T, ok, hit.T)
		}

		to := origin.Add(dir.Mul(3))
		if exp, got := linear.Occluded(origin, to), accel.Occluded(origin, to); exp != got {
			t.Fatalf("[ray %d] expected occluded = %t; got %t", i, exp, got)
		}
	}
}

func TestAddPrimitiveInvalidatesBvh(t *testing.T) {
	sc := NewScene("bvh")
	mat := Diffuse(types.XYZ(1, 1, 1))
	if err := sc.AddPrimitive(NewSphere(types.XYZ(0, 0, -5), 1, mat)); err != nil {
		t.Fatal(err)
	}
	sc.BuildBVH()

	if err := sc.AddPrimitive(NewSphere(types.XYZ(0, 0, -2), 0.5, mat)); err != nil {
		t.Fatal(err)
	}
	hit, ok := sc.Intersect(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1), 100)
	if !ok || hit.T < 1.49 || hit.T > 1.51 {
		t.Fatalf("expected to hit the sphere added after the build at t=1.5; got %t at t=%f", ok, hit.T)
	}
}
