package vmath

// 10.6 fixed point, the format velocities and tunables are stored in
const (
	Shift = 6
	Scale = 1 << Shift
	Mask  = Scale - 1
	Half  = 1 << (Shift - 1)
)

// --- Arithmetic ---

func FromInt(i int) int       { return i << Shift }
func ToInt(f int) int         { return f >> Shift }
func FromFloat(f float64) int { return int(f * Scale) }
func ToFloat(f int) float64   { return float64(f) / Scale }
func ToRoundedInt(f int) int  { return (f + Half) >> Shift }
func Mul(a, b int) int        { return (a * b) >> Shift }
func Frac(f int) int          { return f & Mask }
func Lerp(a, b, t int) int    { return a + Mul(b-a, t) }
func PosFromInt(px int) int   { return px << Shift }
func PosToInt(pos int) int    { return pos >> Shift }

// Div returns a/b in 10.6, zero when b is zero
func Div(a, b int) int {
	if b == 0 {
		return 0
	}
	return (a << Shift) / b
}

// ManhattanDistance is |dx|+|dy|
func ManhattanDistance(dx, dy int) int {
	return Abs(dx) + Abs(dy)
}

func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func Sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func Clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ISqrt is the binary digit-by-digit integer square root, floor(sqrt(v))
func ISqrt(v uint32) uint32 {
	var res uint32
	b := uint32(1) << 30
	for b > v {
		b >>= 2
	}
	for b != 0 {
		if v >= res+b {
			v -= res + b
			res = (res >> 1) + b
		} else {
			res >>= 1
		}
		b >>= 2
	}
	return res
}
