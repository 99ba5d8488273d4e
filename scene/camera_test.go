package scene

import (
	"testing"

	"github.com/achilleasa/go-restir/types"
)

func TestCameraRays(t *testing.T) {
	cam := NewCamera(90)
	cam.SetupProjection(1)

	type spec struct {
		px, py float32
		exp    types.Vec3
	}
	specs := []spec{
		{50, 50, types.XYZ(0, 0, -1)},
		{0, 0, types.XYZ(-1, 1, -1).Normalize()},
		{100, 100, types.XYZ(1, -1, -1).Normalize()},
	}
	for specIndex, s := range specs {
		if got := cam.RayDir(s.px, s.py, 100, 100); !types.ApproxEqual(got, s.exp, 1e-3) {
			t.Fatalf("[spec %d] expected ray dir %v; got %v", specIndex, s.exp, got)
		}
	}

	if depth := cam.Depth(types.XYZ(1, 2, -5)); !approx(depth, 5, 1e-5) {
		t.Fatalf("expected depth 5; got %f", depth)
	}
}

func TestCameraOrbit(t *testing.T) {
	cam := NewCamera(45)
	cam.Position = types.XYZ(0, 0, 3)
	cam.LookAt = types.XYZ(0, 0, 0)
	cam.SetupProjection(1)

	before := cam.ViewProjMat()
	cam.Orbit(180)

	if !types.ApproxEqual(cam.Position, types.XYZ(0, 0, -3), 1e-4) {
		t.Fatalf("expected camera to orbit to (0, 0, -3); got %v", cam.Position)
	}
	if cam.ViewProjMat() == before {
		t.Fatal("expected view-projection matrix to change after orbiting")
	}
}
