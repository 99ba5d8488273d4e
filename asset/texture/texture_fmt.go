package texture

type Format uint32

const (
	Luminance8 Format = iota
	Rgba8
	Rgba16
)

func (f Format) String() string {
	switch f {
	case Luminance8:
		return "Luminance8"
	case Rgba8:
		return "Rgba8"
	case Rgba16:
		return "Rgba16"
	}
	return "unknown"
}
