package integrators

import (
	"math"
	"testing"
)

func TestInt128FromFloatTruncates(t *testing.T) {
	cases := []struct {
		in   float64
		want int64
	}{
		{0, 0},
		{0.9, 0},
		{-0.9, 0},
		{123.9, 123},
		{-123.9, -123},
		{1e15, 1000000000000000},
		{-1e15, -1000000000000000},
	}
	for _, c := range cases {
		if got := int128FromFloat(c.in).low64(); got != c.want {
			t.Errorf("int128FromFloat(%g).low64() = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestInt128FromFloatWide(t *testing.T) {
	// 2^70 has an empty low limb
	v := int128FromFloat(math.Ldexp(1, 70))
	if v.lo != 0 || v.hi != 1<<6 {
		t.Errorf("2^70 = {hi: %d, lo: %d}, want {64, 0}", v.hi, v.lo)
	}

	// beyond int64 but inside uint64: the low limb wraps on narrowing
	v = int128FromFloat(1.5e19)
	if v.hi != 0 {
		t.Errorf("1.5e19 hi = %d, want 0", v.hi)
	}
	if got := v.low64(); got != -3446744073709551616 {
		t.Errorf("1.5e19 low64 = %d", got)
	}
}

func TestInt128NegAddRoundTrip(t *testing.T) {
	for _, f := range []float64{0, 1, -1, 3.5e20, -3.5e20, 1e30} {
		a := int128FromFloat(f)
		z := a.add(a.neg())
		if z.hi != 0 || z.lo != 0 {
			t.Errorf("a + (-a) != 0 for %g: {%d, %d}", f, z.hi, z.lo)
		}
	}
}

func TestInt128NaN(t *testing.T) {
	v := int128FromFloat(math.NaN())
	if v.hi != 0 || v.lo != 0 {
		t.Errorf("NaN = {%d, %d}, want zero", v.hi, v.lo)
	}
}

func TestStepAxisMatchesIntegerLaw(t *testing.T) {
	cases := []struct {
		prev, curr int64
		forcing    float64
		want       int64
	}{
		{0, 0, 0, 0},
		{10, 20, 0, 30},
		{-10000, 0, 0, 10000},
		{5, 7, 2.9, 11},
		{5, 7, -2.9, 7},
		{1 << 40, 1 << 41, 1.0, 3*(1<<40) + 1},
	}
	for _, c := range cases {
		if got := stepAxis(c.prev, c.curr, c.forcing); got != c.want {
			t.Errorf("stepAxis(%d, %d, %g) = %d, want %d", c.prev, c.curr, c.forcing, got, c.want)
		}
	}
}
