package pipeline

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/achilleasa/go-restir/restir"
	"github.com/achilleasa/go-restir/scene"
	"github.com/achilleasa/go-restir/types"
)

// Debug flags.
type DebugFlag uint16

const (
	Off        DebugFlag = 0
	DebugDepth DebugFlag = 1 << iota
	DebugNormals
	DebugReservoirWeights
	DebugRadiance
	DebugDenoised
	DebugAmbientOcclusion
)

// Ambient occlusion debug settings.
const (
	aoRays uint32 = 8
	aoSalt uint32 = 0xa0
)

var debugFlagNames = map[string]DebugFlag{
	"depth":     DebugDepth,
	"normals":   DebugNormals,
	"reservoir": DebugReservoirWeights,
	"radiance":  DebugRadiance,
	"denoised":  DebugDenoised,
	"ao":        DebugAmbientOcclusion,
}

// Parse a comma separated list of debug buffer names.
func ParseDebugFlags(list string) (DebugFlag, error) {
	flags := Off
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		flag, ok := debugFlagNames[name]
		if !ok {
			return Off, fmt.Errorf("pipeline: unknown debug buffer %q", name)
		}
		flags |= flag
	}
	return flags, nil
}

// A stage that writes a visualization of a frame buffer to a PNG file.
type debugStage struct {
	name string
	dir  string

	// Get the pixel mapping function for a frame.
	shader func(f *Frame) func(i int) types.Vec3
}

func (s *debugStage) Name() string { return "debug-" + s.name }
func (s *debugStage) Configure(p Params) { s.dir = p.DebugDir }

func (s *debugStage) Run(f *Frame) error {
	im := image.NewRGBA(image.Rect(0, 0, int(f.Width), int(f.Height)))
	pixel := s.shader(f)
	for i := 0; i < int(f.Width*f.Height); i++ {
		c := pixel(i)
		for k := 0; k < 3; k++ {
			im.Pix[4*i+k] = uint8(255 * math.Max(0, math.Min(1, float64(c[k]))))
		}
		im.Pix[4*i+3] = 255
	}

	return dumpDebugImage(im, filepath.Join(s.dir, fmt.Sprintf("debug-%s-%03d.png", s.name, f.Index)))
}

// Visualize view depth normalized by the farthest visible surface.
func debugDepth() Stage {
	return &debugStage{
		name: "depth",
		shader: func(f *Frame) func(i int) types.Vec3 {
			var maxDepth float32
			for j, valid := range f.GBuffer.Valid {
				if valid && f.GBuffer.Depth[j] > maxDepth {
					maxDepth = f.GBuffer.Depth[j]
				}
			}
			return func(i int) types.Vec3 {
				if !f.GBuffer.Valid[i] || maxDepth == 0 {
					return types.Vec3{}
				}
				d := 1 - f.GBuffer.Depth[i]/maxDepth
				return types.XYZ(d, d, d)
			}
		},
	}
}

// Visualize normals mapped to [0, 1].
func debugNormals() Stage {
	return &debugStage{
		name: "normals",
		shader: func(f *Frame) func(i int) types.Vec3 {
			return func(i int) types.Vec3 {
				if !f.GBuffer.Valid[i] {
					return types.Vec3{}
				}
				return f.GBuffer.Normal[i].Mul(0.5).Add(types.XYZ(0.5, 0.5, 0.5))
			}
		},
	}
}

// Visualize the fraction of cosine distributed rays that escape within an
// occlusion radius of max(0.5, 5% of the visible scene extent).
func debugAmbientOcclusion() Stage {
	return &debugStage{
		name: "ao",
		shader: func(f *Frame) func(i int) types.Vec3 {
			gb := f.GBuffer
			radius := aoRadius(f)
			return func(i int) types.Vec3 {
				if !gb.Valid[i] {
					return types.Vec3{}
				}

				x, y := uint32(i)%f.Width, uint32(i)/f.Width
				rng := restir.NewRNG(x, y, f.Index, aoSalt)
				var open float32
				for r := uint32(0); r < aoRays; r++ {
					dir, _ := scene.SampleCosineHemisphere(gb.Normal[i], rng.Float32(), rng.Float32())
					if !f.Scene.Occluded(gb.Position[i], gb.Position[i].Add(dir.Mul(radius))) {
						open++
					}
				}
				ao := open / float32(aoRays)
				return types.XYZ(ao, ao, ao)
			}
		},
	}
}

// Get the occlusion radius from the bounds of the visible surfaces.
func aoRadius(f *Frame) float32 {
	var (
		lo, hi types.Vec3
		found  bool
	)
	for i, valid := range f.GBuffer.Valid {
		if !valid {
			continue
		}
		if !found {
			lo, hi, found = f.GBuffer.Position[i], f.GBuffer.Position[i], true
			continue
		}
		lo = types.MinVec3(lo, f.GBuffer.Position[i])
		hi = types.MaxVec3(hi, f.GBuffer.Position[i])
	}

	radius := 0.05 * 0.5 * hi.Sub(lo).Len()
	if radius < 0.5 {
		radius = 0.5
	}
	return radius
}

// Visualize the final reservoir weight W as W / (1 + W).
func debugReservoirWeights() Stage {
	return &debugStage{
		name: "reservoir",
		shader: func(f *Frame) func(i int) types.Vec3 {
			return func(i int) types.Vec3 {
				w := f.Reservoirs.Reservoirs[i].FinalWeight
				w = w / (1 + w)
				return types.XYZ(w, w, w)
			}
		},
	}
}

func debugRadiance() Stage {
	return &debugStage{
		name:   "radiance",
		shader: func(f *Frame) func(i int) types.Vec3 { return f.Radiance.At },
	}
}

func debugDenoised() Stage {
	return &debugStage{
		name:   "denoised",
		shader: func(f *Frame) func(i int) types.Vec3 { return f.Denoised.At },
	}
}

// Encode im as a PNG file.
func dumpDebugImage(im image.Image, imgFile string) error {
	f, err := os.Create(imgFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, im)
}
