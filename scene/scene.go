package scene

import (
	"bytes"
	"fmt"
	"math"

	"github.com/achilleasa/go-restir/types"
	"github.com/olekukonko/tablewriter"
)

// Offset used to keep secondary and shadow rays from hitting the surface
// they start from.
const RayEpsilon float32 = 1e-3

// The Scene type groups the camera, the emitters and the analytic occluders.
// Scenes must not be modified while a frame is rendering.
type Scene struct {
	Name string

	Camera *Camera

	Lights      []*Light
	Environment *Environment
	Primitives  []*Primitive

	distribution *LightDistribution

	// Acceleration structure over bounded primitives. When nil all
	// primitives are tested linearly.
	bvh       *Bvh
	unbounded []*Primitive
}

// Create an empty scene.
func NewScene(name string) *Scene {
	s := &Scene{
		Name:       name,
		Lights:     make([]*Light, 0),
		Primitives: make([]*Primitive, 0),
	}
	s.distribution = NewLightDistribution(nil, nil)
	return s
}

// Attach a camera to the scene.
func (s *Scene) SetCamera(camera *Camera) {
	s.Camera = camera
}

// Set the environment (nil removes it).
func (s *Scene) SetEnvironment(env *Environment) {
	s.Environment = env
	s.distribution = NewLightDistribution(s.Lights, s.Environment)
}

// Add a primitive to the scene.
func (s *Scene) AddPrimitive(primitive *Primitive) error {
	if primitive.Material == nil {
		return ErrNoMaterial
	}
	s.Primitives = append(s.Primitives, primitive)
	s.bvh = nil
	return nil
}

// Build a BVH over the bounded primitives. It must be rebuilt after adding
// primitives; until then rays are tested against every primitive.
func (s *Scene) BuildBVH() *Bvh {
	var bounded []*Primitive
	s.unbounded = s.unbounded[:0]
	for _, prim := range s.Primitives {
		if prim.Bounded() {
			bounded = append(bounded, prim)
		} else {
			s.unbounded = append(s.unbounded, prim)
		}
	}
	s.bvh = BuildBVH(bounded, bvhMinLeafItems)
	return s.bvh
}

// Add an emitter to the scene. Lights are not visible to camera or
// secondary rays; see AddQuadLight for visible area lights.
func (s *Scene) AddLight(light *Light) error {
	if light.Type == QuadLight && light.Area() == 0 {
		return ErrDegenerateLight
	}
	s.Lights = append(s.Lights, light)
	s.distribution = NewLightDistribution(s.Lights, s.Environment)
	return nil
}

// Add a quad area light together with an emissive quad primitive covering the
// same surface so the light shows up in the geometry buffer.
func (s *Scene) AddQuadLight(corner, edge1, edge2, radiance types.Vec3) error {
	if err := s.AddLight(NewQuadLight(corner, edge1, edge2, radiance)); err != nil {
		return err
	}
	return s.AddPrimitive(NewQuad(corner, edge1, edge2, Emitter(radiance)))
}

// Get the power-proportional light selection distribution.
func (s *Scene) LightDistribution() *LightDistribution {
	return s.distribution
}

// Find the closest primitive hit along a ray with t in (RayEpsilon, tMax).
func (s *Scene) Intersect(origin, dir types.Vec3, tMax float32) (Hit, bool) {
	var (
		closest Hit
		found   bool
	)
	prims := s.Primitives
	if s.bvh != nil {
		prims = s.unbounded
	}
	for _, prim := range prims {
		if hit, ok := prim.Intersect(origin, dir, RayEpsilon, tMax); ok {
			closest, found = hit, true
			tMax = hit.T
		}
	}

	if s.bvh != nil {
		if hit, ok := s.bvh.Intersect(origin, dir, RayEpsilon, tMax); ok {
			closest, found = hit, true
		}
	}
	return closest, found
}

// Returns true if any primitive blocks the segment between from and to.
func (s *Scene) Occluded(from, to types.Vec3) bool {
	delta := to.Sub(from)
	dist := delta.Len()
	if dist <= 2*RayEpsilon {
		return false
	}
	dir := delta.Mul(1.0 / dist)
	return s.anyHit(from, dir, dist-RayEpsilon)
}

// Returns true if any primitive blocks the ray leaving from along dir.
func (s *Scene) OccludedDir(from, dir types.Vec3) bool {
	return s.anyHit(from, dir.Normalize(), math.MaxFloat32)
}

func (s *Scene) anyHit(origin, dir types.Vec3, tMax float32) bool {
	prims := s.Primitives
	if s.bvh != nil {
		prims = s.unbounded
	}
	for _, prim := range prims {
		if _, ok := prim.Intersect(origin, dir, RayEpsilon, tMax); ok {
			return true
		}
	}
	return s.bvh != nil && s.bvh.AnyHit(origin, dir, RayEpsilon, tMax)
}

// Generate a table with scene statistics.
func (s *Scene) Stats() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Asset Type", "Count", "Details"})

	primCount := make(map[PrimitiveType]int)
	for _, prim := range s.Primitives {
		primCount[prim.Type]++
	}
	table.Append([]string{"Primitives", fmt.Sprint(len(s.Primitives)),
		fmt.Sprintf("%d planes, %d spheres, %d quads", primCount[PlanePrimitive], primCount[SpherePrimitive], primCount[QuadPrimitive]),
	})

	var totalPower float32
	lightCount := make(map[LightType]int)
	for _, l := range s.Lights {
		lightCount[l.Type]++
		totalPower += l.Power()
	}
	table.Append([]string{"Lights", fmt.Sprint(len(s.Lights)),
		fmt.Sprintf("%d point, %d quad, power %.2f", lightCount[PointLight], lightCount[QuadLight], totalPower),
	})

	envCount, envDetails := 0, "none"
	if s.Environment != nil {
		envCount = 1
		envDetails = fmt.Sprintf("constant, avg luminance %.3f", s.Environment.AverageLuminance())
		if s.Environment.Map != nil {
			envDetails = fmt.Sprintf("%dx%d map, avg luminance %.3f", s.Environment.Map.Width, s.Environment.Map.Height, s.Environment.AverageLuminance())
		}
	}
	table.Append([]string{"Environment", fmt.Sprint(envCount), envDetails})

	if s.bvh != nil {
		table.Append([]string{"BVH nodes", fmt.Sprint(len(s.bvh.Nodes)),
			fmt.Sprintf("%d leafs, max depth %d, %d unbounded", s.bvh.Leafs, s.bvh.MaxDepth, len(s.unbounded)),
		})
	}

	table.SetFooter([]string{"", "", s.Name})
	table.Render()
	return buf.String()
}
