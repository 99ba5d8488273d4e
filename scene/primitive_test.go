package scene

import (
	"testing"

	"github.com/achilleasa/go-restir/types"
)

func TestPrimitiveIntersection(t *testing.T) {
	mat := Diffuse(types.XYZ(1, 1, 1))
	quad := NewQuad(types.XYZ(-1, -1, -2), types.XYZ(2, 0, 0), types.XYZ(0, 2, 0), mat)

	type spec struct {
		prim      *Primitive
		origin    types.Vec3
		dir       types.Vec3
		expHit    bool
		expT      float32
		expNormal types.Vec3
		expFront  bool
	}

	specs := []spec{
		{NewSphere(types.XYZ(0, 0, -5), 1, mat), types.XYZ(0, 0, 0), types.XYZ(0, 0, -1), true, 4, types.XYZ(0, 0, 1), true},
		{NewSphere(types.XYZ(0, 0, -5), 1, mat), types.XYZ(0, 0, -5), types.XYZ(0, 0, -1), true, 1, types.XYZ(0, 0, 1), false},
		{NewSphere(types.XYZ(0, 0, -5), 1, mat), types.XYZ(0, 0, 0), types.XYZ(0, 1, 0), false, 0, types.Vec3{}, false},
		{NewPlane(types.XYZ(0, -1, 0), types.XYZ(0, 2, 0), mat), types.XYZ(0, 0, 0), types.XYZ(0, -1, 0), true, 1, types.XYZ(0, 1, 0), true},
		{NewPlane(types.XYZ(0, -1, 0), types.XYZ(0, 1, 0), mat), types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), false, 0, types.Vec3{}, false},
		{quad, types.XYZ(0, 0, 0), types.XYZ(0, 0, -1), true, 2, types.XYZ(0, 0, 1), true},
		{quad, types.XYZ(3, 0, 0), types.XYZ(0, 0, -1), false, 0, types.Vec3{}, false},
		{quad, types.XYZ(0, 0, -4), types.XYZ(0, 0, 1), true, 2, types.XYZ(0, 0, -1), false},
	}

	for specIndex, s := range specs {
		hit, ok := s.prim.Intersect(s.origin, s.dir, RayEpsilon, 100)
		if ok != s.expHit {
			t.Fatalf("[spec %d] expected hit to be %t; got %t", specIndex, s.expHit, ok)
		}
		if !ok {
			continue
		}
		if hit.T < s.expT-1e-4 || hit.T > s.expT+1e-4 {
			t.Fatalf("[spec %d] expected t to be %f; got %f", specIndex, s.expT, hit.T)
		}
		if !types.ApproxEqual(hit.Normal, s.expNormal, 1e-4) {
			t.Fatalf("[spec %d] expected normal to be %v; got %v", specIndex, s.expNormal, hit.Normal)
		}
		if hit.FrontFace != s.expFront {
			t.Fatalf("[spec %d] expected front face to be %t; got %t", specIndex, s.expFront, hit.FrontFace)
		}
	}
}

func TestPrimitiveIntersectionRange(t *testing.T) {
	sphere := NewSphere(types.XYZ(0, 0, -5), 1, Diffuse(types.XYZ(1, 1, 1)))
	if _, ok := sphere.Intersect(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1), RayEpsilon, 3.5); ok {
		t.Fatal("expected hits beyond tMax to be ignored")
	}
}
