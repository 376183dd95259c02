package weave

// Parametric draft builders. Each mutates the receiver's threading,
// treadling or tie-up in place and is fully determined by the draft's
// counts: calling one twice leaves the draft unchanged after the first
// call.

// StraightDraw resets threading and treadling to i mod count. Used as the
// "clear pattern" operation.
func (d *Draft) StraightDraw() {
	for i := range d.Threading {
		d.Threading[i] = uint8(i % d.HarnessCount)
	}
	for i := range d.Treadling {
		d.Treadling[i] = uint8(i % d.TreadleCount)
	}
}

// PlainWeaveTieUp sets the diagonal tie-up: harness i lifts on treadle i.
func (d *Draft) PlainWeaveTieUp() {
	clear(d.TieUp)
	n := min(d.HarnessCount, d.TreadleCount)
	for i := range n {
		d.TieUp[i*d.TreadleCount+i] = 1
	}
}

// Twill2x2TieUp sets a 2/2 twill: harness h lifts on treadle t when
// (h+t) mod HarnessCount < 2.
func (d *Draft) Twill2x2TieUp() {
	d.twillTieUp(2)
}

// Twill3x1TieUp sets a 3/1 twill with the same shift rule and a lift run
// of three.
func (d *Draft) Twill3x1TieUp() {
	d.twillTieUp(3)
}

func (d *Draft) twillTieUp(run int) {
	for h := range d.HarnessCount {
		for t := range d.TreadleCount {
			if (h+t)%d.HarnessCount < run {
				d.TieUp[h*d.TreadleCount+t] = 1
			} else {
				d.TieUp[h*d.TreadleCount+t] = 0
			}
		}
	}
}

// SatinTieUp sets a single skip-stepped lift per treadle:
// harness (t*skip) mod HarnessCount lifts on treadle t. A skip coprime
// with the harness count gives the classic scattered satin interlacing.
func (d *Draft) SatinTieUp(skip int) {
	clear(d.TieUp)
	for t := range d.TreadleCount {
		h := (t * skip) % d.HarnessCount
		d.TieUp[h*d.TreadleCount+t] = 1
	}
}

// BasketWeave groups threading and treadling in pairs and resets the
// tie-up to the plain-weave diagonal.
func (d *Draft) BasketWeave() {
	for i := range d.Threading {
		d.Threading[i] = uint8((i / 2) % d.HarnessCount)
	}
	for i := range d.Treadling {
		d.Treadling[i] = uint8((i / 2) % d.TreadleCount)
	}
	d.PlainWeaveTieUp()
}

// Herringbone threads a point draw (ascend then descend, period
// 2*HarnessCount-2) over a 2/2 twill tie-up.
func (d *Draft) Herringbone() {
	for i := range d.Threading {
		d.Threading[i] = pointValue(i, d.HarnessCount)
	}
	d.Twill2x2TieUp()
}

// Diamond applies the point draw to both threading and treadling,
// independently sized, over a 2/2 twill tie-up.
func (d *Draft) Diamond() {
	for i := range d.Threading {
		d.Threading[i] = pointValue(i, d.HarnessCount)
	}
	for i := range d.Treadling {
		d.Treadling[i] = pointValue(i, d.TreadleCount)
	}
	d.Twill2x2TieUp()
}

// pointValue is the sawtooth 0..n-1..1 with period 2n-2.
func pointValue(i, n int) uint8 {
	if n < 2 {
		return 0
	}
	period := 2*n - 2
	v := i % period
	if v >= n {
		v = period - v
	}
	return uint8(v)
}
