package texture

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/achilleasa/go-restir/asset"
	"github.com/achilleasa/go-restir/types"
	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// A decoded texture holding linear RGB texels in row-major order.
type Texture struct {
	Format Format

	Width  uint32
	Height uint32

	Data []types.Vec3
}

// Create a new texture from a Resource. 8-bit images are assumed to be sRGB
// encoded and are converted to linear RGB.
func New(res *asset.Resource) (*Texture, error) {
	img, _, err := image.Decode(res)
	if err != nil {
		return nil, fmt.Errorf("texture: could not decode %s: %s", res.Path(), err.Error())
	}

	return FromImage(img, formatFor(img)), nil
}

// Convert an already decoded image into a texture.
func FromImage(img image.Image, texFmt Format) *Texture {
	bounds := img.Bounds()
	tex := &Texture{
		Format: texFmt,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
		Data:   make([]types.Vec3, bounds.Dx()*bounds.Dy()),
	}

	wOffset := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			tex.Data[wOffset] = linearize(img.At(x, y))
			wOffset++
		}
	}

	return tex
}

// Get texel at integer coords. X wraps around and Y is clamped, which is
// what lat-long lookups need.
func (t *Texture) Texel(x, y int) types.Vec3 {
	w, h := int(t.Width), int(t.Height)
	x %= w
	if x < 0 {
		x += w
	}
	if y < 0 {
		y = 0
	} else if y >= h {
		y = h - 1
	}
	return t.Data[y*w+x]
}

// Bilinearly sample the texture at normalized (u, v) coordinates.
func (t *Texture) Sample(u, v float32) types.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		return types.Vec3{}
	}

	fx := u*float32(t.Width) - 0.5
	fy := v*float32(t.Height) - 0.5
	x0 := int(math.Floor(float64(fx)))
	y0 := int(math.Floor(float64(fy)))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	top := t.Texel(x0, y0).Mul(1 - tx).Add(t.Texel(x0+1, y0).Mul(tx))
	bottom := t.Texel(x0, y0+1).Mul(1 - tx).Add(t.Texel(x0+1, y0+1).Mul(tx))
	return top.Mul(1 - ty).Add(bottom.Mul(ty))
}

func formatFor(img image.Image) Format {
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return Luminance8
	case color.RGBA64Model, color.NRGBA64Model:
		return Rgba16
	}
	return Rgba8
}

func linearize(c color.Color) types.Vec3 {
	col, ok := colorful.MakeColor(c)
	if !ok {
		// fully transparent texels carry no radiance
		return types.Vec3{}
	}

	r, g, b := col.LinearRgb()
	return types.Vec3{float32(r), float32(g), float32(b)}
}
