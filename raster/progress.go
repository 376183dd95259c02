package raster

// Progress is the one-way advisory channel from a long-running operation
// to its caller: a percentage in [0, 100] and a short message. It is not
// part of any correctness contract and may be nil.
type Progress func(pct int, msg string)

func (p Progress) emit(pct int, msg string) {
	if p != nil {
		p(pct, msg)
	}
}
