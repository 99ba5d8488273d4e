package scene

import (
	"fmt"
	"sort"

	"github.com/achilleasa/go-restir/types"
)

var builtinScenes = map[string]func() (*Scene, error){
	"point-light": newPointLightScene,
	"cornell":     newCornellScene,
	"sky":         newSkyScene,
	"many-lights": newManyLightsScene,
}

// Get the sorted list of built-in scene names.
func Builtins() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create a built-in scene by name.
func Builtin(name string) (*Scene, error) {
	ctor, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return ctor()
}

func newCameraAt(pos, lookAt types.Vec3, fov float32) *Camera {
	cam := NewCamera(fov)
	cam.Position = pos
	cam.LookAt = lookAt
	cam.SetupProjection(1)
	return cam
}

// A diffuse floor lit by a single point light.
func newPointLightScene() (*Scene, error) {
	s := NewScene("point-light")
	s.SetCamera(newCameraAt(types.XYZ(0, 1.5, 3), types.XYZ(0, 0, 0), 45))

	if err := s.AddPrimitive(NewPlane(types.XYZ(0, 0, 0), types.XYZ(0, 1, 0), Diffuse(types.XYZ(0.8, 0.8, 0.8)))); err != nil {
		return nil, err
	}
	if err := s.AddLight(NewPointLight(types.XYZ(0, 2, 0), types.XYZ(10, 10, 10))); err != nil {
		return nil, err
	}
	return s, nil
}

// A classic Cornell box (2 units wide) with a ceiling area light.
func newCornellScene() (*Scene, error) {
	s := NewScene("cornell")
	s.SetCamera(newCameraAt(types.XYZ(0, 1, 3.8), types.XYZ(0, 1, 0), 40))

	white := Diffuse(types.XYZ(0.73, 0.73, 0.73))
	red := Diffuse(types.XYZ(0.65, 0.05, 0.05))
	green := Diffuse(types.XYZ(0.12, 0.45, 0.15))

	prims := []*Primitive{
		// floor, ceiling, back, left, right
		NewQuad(types.XYZ(-1, 0, -1), types.XYZ(0, 0, 2), types.XYZ(2, 0, 0), white),
		NewQuad(types.XYZ(-1, 2, -1), types.XYZ(2, 0, 0), types.XYZ(0, 0, 2), white),
		NewQuad(types.XYZ(-1, 0, -1), types.XYZ(2, 0, 0), types.XYZ(0, 2, 0), white),
		NewQuad(types.XYZ(-1, 0, -1), types.XYZ(0, 2, 0), types.XYZ(0, 0, 2), red),
		NewQuad(types.XYZ(1, 0, -1), types.XYZ(0, 0, 2), types.XYZ(0, 2, 0), green),
		NewSphere(types.XYZ(-0.4, 0.35, -0.3), 0.35, white),
		NewSphere(types.XYZ(0.45, 0.3, 0.3), 0.3, white),
	}
	for _, prim := range prims {
		if err := s.AddPrimitive(prim); err != nil {
			return nil, err
		}
	}

	err := s.AddQuadLight(types.XYZ(-0.25, 1.98, -0.25), types.XYZ(0.5, 0, 0), types.XYZ(0, 0, 0.5), types.XYZ(15, 15, 15))
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Spheres on a floor under a constant sky and a warm key light.
func newSkyScene() (*Scene, error) {
	s := NewScene("sky")
	s.SetCamera(newCameraAt(types.XYZ(0, 1.2, 4), types.XYZ(0, 0.5, 0), 50))
	s.SetEnvironment(NewConstantEnvironment(types.XYZ(0.5, 0.6, 0.8)))

	prims := []*Primitive{
		NewPlane(types.XYZ(0, 0, 0), types.XYZ(0, 1, 0), Diffuse(types.XYZ(0.6, 0.6, 0.6))),
		NewSphere(types.XYZ(-1.1, 0.5, 0), 0.5, Diffuse(types.XYZ(0.8, 0.3, 0.3))),
		NewSphere(types.XYZ(0, 0.5, -0.5), 0.5, Diffuse(types.XYZ(0.3, 0.8, 0.3))),
		NewSphere(types.XYZ(1.1, 0.5, 0), 0.5, Diffuse(types.XYZ(0.3, 0.3, 0.8))),
	}
	for _, prim := range prims {
		if err := s.AddPrimitive(prim); err != nil {
			return nil, err
		}
	}
	if err := s.AddLight(NewPointLight(types.XYZ(3, 4, 2), types.XYZ(30, 27, 22))); err != nil {
		return nil, err
	}
	return s, nil
}

// A floor lit by a grid of small colored point lights.
func newManyLightsScene() (*Scene, error) {
	s := NewScene("many-lights")
	s.SetCamera(newCameraAt(types.XYZ(0, 3, 6), types.XYZ(0, 0, 0), 45))

	if err := s.AddPrimitive(NewPlane(types.XYZ(0, 0, 0), types.XYZ(0, 1, 0), Diffuse(types.XYZ(0.7, 0.7, 0.7)))); err != nil {
		return nil, err
	}
	for i := 0; i < 3; i++ {
		sphere := NewSphere(types.XYZ(float32(i-1)*1.5, 0.6, 0), 0.6, Diffuse(types.XYZ(0.75, 0.75, 0.75)))
		if err := s.AddPrimitive(sphere); err != nil {
			return nil, err
		}
	}

	palette := []types.Vec3{
		{1, 0.2, 0.2}, {0.2, 1, 0.2}, {0.2, 0.2, 1}, {1, 1, 0.2},
	}
	for z := 0; z < 8; z++ {
		for x := 0; x < 8; x++ {
			pos := types.XYZ(float32(x)-3.5, 0.25, float32(z)-4)
			intensity := palette[(x+z)%len(palette)].Mul(0.6)
			if err := s.AddLight(NewPointLight(pos, intensity)); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}
