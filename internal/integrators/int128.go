package integrators

import (
	"math"
	"math/bits"
)

// int128 is a signed 128-bit accumulator in two's complement, wide enough to
// hold the lattice forcing term before it is narrowed to storage width.
type int128 struct {
	hi, lo uint64
}

func int128FromInt64(v int64) int128 {
	var hi uint64
	if v < 0 {
		hi = ^uint64(0)
	}
	return int128{hi: hi, lo: uint64(v)}
}

// int128FromFloat truncates f toward zero. Values beyond the 128-bit range
// saturate; NaN maps to zero.
func int128FromFloat(f float64) int128 {
	f = math.Trunc(f)
	if math.IsNaN(f) {
		return int128{}
	}
	neg := math.Signbit(f)
	f = math.Abs(f)

	lim := math.Ldexp(1, 127)
	if f >= lim {
		if neg {
			return int128{hi: 1 << 63, lo: 0}
		}
		return int128{hi: 1<<63 - 1, lo: ^uint64(0)}
	}

	two64 := math.Ldexp(1, 64)
	hiF := math.Floor(f / two64)
	v := int128{hi: uint64(hiF), lo: uint64(f - hiF*two64)}
	if neg {
		v = v.neg()
	}
	return v
}

func (a int128) add(b int128) int128 {
	lo, carry := bits.Add64(a.lo, b.lo, 0)
	hi, _ := bits.Add64(a.hi, b.hi, carry)
	return int128{hi: hi, lo: lo}
}

func (a int128) neg() int128 {
	lo, carry := bits.Add64(^a.lo, 1, 0)
	hi, _ := bits.Add64(^a.hi, 0, carry)
	return int128{hi: hi, lo: lo}
}

// low64 narrows to storage width, discarding the high limb.
func (a int128) low64() int64 {
	return int64(a.lo)
}
