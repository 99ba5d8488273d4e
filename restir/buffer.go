package restir

// Buffer holds one reservoir per pixel.
type Buffer struct {
	Width      uint32
	Height     uint32
	Reservoirs []Reservoir
}

// Create a buffer of empty reservoirs.
func NewBuffer(width, height uint32) *Buffer {
	return &Buffer{
		Width:      width,
		Height:     height,
		Reservoirs: make([]Reservoir, width*height),
	}
}

// Get the reservoir index for (x, y).
func (b *Buffer) Index(x, y uint32) int {
	return int(y*b.Width + x)
}

// Reset every reservoir.
func (b *Buffer) Clear() {
	for i := range b.Reservoirs {
		b.Reservoirs[i] = Reservoir{}
	}
}
