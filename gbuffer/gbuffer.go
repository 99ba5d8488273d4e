package gbuffer

import (
	"math"

	"github.com/achilleasa/go-restir/scene"
	"github.com/achilleasa/go-restir/types"
)

// Buffer holds the per-pixel surface attributes seen by the camera.
// Pixels that see no geometry are flagged invalid and carry the environment
// radiance (if any) in Emissive.
type Buffer struct {
	Width  uint32
	Height uint32

	Position []types.Vec3
	Normal   []types.Vec3
	Albedo   []types.Vec3
	Emissive []types.Vec3

	// View-space depth of Position.
	Depth []float32

	Valid []bool
}

// Create a buffer for a width x height frame.
func New(width, height uint32) *Buffer {
	count := width * height
	return &Buffer{
		Width:    width,
		Height:   height,
		Position: make([]types.Vec3, count),
		Normal:   make([]types.Vec3, count),
		Albedo:   make([]types.Vec3, count),
		Emissive: make([]types.Vec3, count),
		Depth:    make([]float32, count),
		Valid:    make([]bool, count),
	}
}

// Get the pixel index for (x, y).
func (b *Buffer) Index(x, y uint32) int {
	return int(y*b.Width + x)
}

// Get the number of pixels.
func (b *Buffer) Len() int {
	return len(b.Valid)
}

// Fill rows [blockY, blockY+blockH) by casting one ray per pixel center.
func (b *Buffer) Rasterize(sc *scene.Scene, cam *scene.Camera, blockY, blockH uint32) {
	for y := blockY; y < blockY+blockH && y < b.Height; y++ {
		for x := uint32(0); x < b.Width; x++ {
			b.trace(sc, cam, x, y)
		}
	}
}

func (b *Buffer) trace(sc *scene.Scene, cam *scene.Camera, x, y uint32) {
	i := b.Index(x, y)
	dir := cam.RayDir(float32(x)+0.5, float32(y)+0.5, b.Width, b.Height)

	hit, ok := sc.Intersect(cam.Position, dir, math.MaxFloat32)
	if !ok {
		b.Position[i] = types.Vec3{}
		b.Normal[i] = types.Vec3{}
		b.Albedo[i] = types.Vec3{}
		b.Depth[i] = 0
		b.Valid[i] = false
		b.Emissive[i] = types.Vec3{}
		if sc.Environment != nil {
			b.Emissive[i] = sc.Environment.Lookup(dir)
		}
		return
	}

	mat := hit.Primitive.Material
	b.Position[i] = hit.Position
	b.Normal[i] = hit.Normal
	b.Albedo[i] = mat.Albedo
	b.Emissive[i] = types.Vec3{}
	if hit.FrontFace {
		b.Emissive[i] = mat.Emissive
	}
	b.Depth[i] = cam.Depth(hit.Position)
	b.Valid[i] = true
}
