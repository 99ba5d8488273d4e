package scene

import (
	"math"

	"github.com/achilleasa/go-restir/types"
)

type PrimitiveType uint32

const (
	PlanePrimitive PrimitiveType = iota
	SpherePrimitive
	QuadPrimitive
)

func (pt PrimitiveType) String() string {
	switch pt {
	case PlanePrimitive:
		return "plane"
	case SpherePrimitive:
		return "sphere"
	case QuadPrimitive:
		return "quad"
	}
	return "unknown"
}

// Defines a scene primitive.
type Primitive struct {
	// The primitive type.
	Type PrimitiveType

	// Plane: a point on the plane. Sphere: the center. Quad: the corner
	// shared by both edges.
	Origin types.Vec3

	// Plane normal. Quads derive it from their edges.
	Normal types.Vec3

	// Sphere radius.
	Radius float32

	// Quad edges.
	Edge1 types.Vec3
	Edge2 types.Vec3

	// The primitive material.
	Material *Material
}

// Describes a ray/primitive intersection.
type Hit struct {
	// Distance along the ray.
	T float32

	// Hit point.
	Position types.Vec3

	// Geometric normal, flipped to face the incoming ray.
	Normal types.Vec3

	// True if the ray hit the side the geometric normal points to.
	FrontFace bool

	Primitive *Primitive
}

// Create new plane primitive.
func NewPlane(origin, normal types.Vec3, material *Material) *Primitive {
	return &Primitive{
		Type:     PlanePrimitive,
		Origin:   origin,
		Normal:   normal.Normalize(),
		Material: material,
	}
}

// Create new sphere primitive.
func NewSphere(origin types.Vec3, radius float32, material *Material) *Primitive {
	return &Primitive{
		Type:     SpherePrimitive,
		Origin:   origin,
		Radius:   radius,
		Material: material,
	}
}

// Create new quad (parallelogram) primitive spanned by two edges. The front
// face points along edge1 x edge2.
func NewQuad(corner, edge1, edge2 types.Vec3, material *Material) *Primitive {
	return &Primitive{
		Type:     QuadPrimitive,
		Origin:   corner,
		Normal:   edge1.Cross(edge2).Normalize(),
		Edge1:    edge1,
		Edge2:    edge2,
		Material: material,
	}
}

// Intersect a ray with the primitive. Only hits with tMin < t < tMax are
// reported.
func (p *Primitive) Intersect(origin, dir types.Vec3, tMin, tMax float32) (Hit, bool) {
	var (
		t      float32
		normal types.Vec3
	)

	switch p.Type {
	case PlanePrimitive, QuadPrimitive:
		denom := dir.Dot(p.Normal)
		if float32(math.Abs(float64(denom))) < 1e-8 {
			return Hit{}, false
		}
		t = p.Origin.Sub(origin).Dot(p.Normal) / denom
		if t <= tMin || t >= tMax {
			return Hit{}, false
		}
		normal = p.Normal

		if p.Type == QuadPrimitive {
			// Project the hit on the edge basis (works for any parallelogram)
			n := p.Edge1.Cross(p.Edge2)
			w := n.Mul(1.0 / n.Dot(n))
			planar := origin.Add(dir.Mul(t)).Sub(p.Origin)
			alpha := w.Dot(planar.Cross(p.Edge2))
			beta := w.Dot(p.Edge1.Cross(planar))
			if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
				return Hit{}, false
			}
		}
	case SpherePrimitive:
		oc := origin.Sub(p.Origin)
		a := dir.Dot(dir)
		halfB := oc.Dot(dir)
		c := oc.Dot(oc) - p.Radius*p.Radius
		disc := halfB*halfB - a*c
		if disc < 0 {
			return Hit{}, false
		}
		sqrtDisc := float32(math.Sqrt(float64(disc)))
		t = (-halfB - sqrtDisc) / a
		if t <= tMin || t >= tMax {
			t = (-halfB + sqrtDisc) / a
			if t <= tMin || t >= tMax {
				return Hit{}, false
			}
		}
		normal = origin.Add(dir.Mul(t)).Sub(p.Origin).Mul(1.0 / p.Radius)
	default:
		return Hit{}, false
	}

	hit := Hit{
		T:         t,
		Position:  origin.Add(dir.Mul(t)),
		Normal:    normal,
		FrontFace: dir.Dot(normal) < 0,
		Primitive: p,
	}
	if !hit.FrontFace {
		hit.Normal = normal.Mul(-1)
	}
	return hit, true
}

// Returns true if the primitive has a finite bounding box.
func (p *Primitive) Bounded() bool {
	return p.Type != PlanePrimitive
}

// Get the primitive bounding box. Planes report an empty box.
func (p *Primitive) BBox() [2]types.Vec3 {
	switch p.Type {
	case SpherePrimitive:
		r := types.XYZ(p.Radius, p.Radius, p.Radius)
		return [2]types.Vec3{p.Origin.Sub(r), p.Origin.Add(r)}
	case QuadPrimitive:
		min, max := p.Origin, p.Origin
		for _, corner := range []types.Vec3{p.Origin.Add(p.Edge1), p.Origin.Add(p.Edge2), p.Origin.Add(p.Edge1).Add(p.Edge2)} {
			min = types.MinVec3(min, corner)
			max = types.MaxVec3(max, corner)
		}
		// Pad flat boxes
		pad := types.XYZ(RayEpsilon, RayEpsilon, RayEpsilon)
		return [2]types.Vec3{min.Sub(pad), max.Add(pad)}
	}
	return [2]types.Vec3{}
}

// Get the center of the primitive bounding box.
func (p *Primitive) Center() types.Vec3 {
	if p.Type == QuadPrimitive {
		return p.Origin.Add(p.Edge1.Add(p.Edge2).Mul(0.5))
	}
	return p.Origin
}
