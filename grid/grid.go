// Package grid provides a flat row-major buffer shared by the weave and
// jacquard models.
package grid

// Buffer is a W×H grid stored row-major in a single slice,
// len(Cells) == W*H.
type Buffer[T int | int8 | uint8 | int32 | uint32 | float32 | float64] struct {
	W, H  int
	Cells []T
}

func New[T int | int8 | uint8 | int32 | uint32 | float32 | float64](w, h int) Buffer[T] {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Buffer[T]{W: w, H: h, Cells: make([]T, w*h)}
}

func (b Buffer[T]) Index(x, y int) int {
	return y*b.W + x
}

func (b Buffer[T]) At(x, y int) T {
	return b.Cells[y*b.W+x]
}

func (b *Buffer[T]) Set(x, y int, v T) {
	b.Cells[y*b.W+x] = v
}

// InBounds reports whether (x, y) addresses a cell of the buffer.
func (b Buffer[T]) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

func (b *Buffer[T]) Fill(v T) {
	for i := range b.Cells {
		b.Cells[i] = v
	}
}

// Clone returns a deep copy; the result never aliases the receiver.
func (b Buffer[T]) Clone() Buffer[T] {
	out := Buffer[T]{W: b.W, H: b.H, Cells: make([]T, len(b.Cells))}
	copy(out.Cells, b.Cells)
	return out
}
