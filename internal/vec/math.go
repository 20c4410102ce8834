package vec

import (
	"math"
	"math/bits"
)

// MulDiv вычисляет a*b/c со 128-битным промежуточным произведением.
// Округление к нулю, как у обычного целочисленного деления.
// Требования: c != 0 и |a*b/c| < 2^63.
func MulDiv(a, b, c int64) int64 {
	neg := ((a < 0) != (b < 0)) != (c < 0)
	ua, ub, uc := absU64(a), absU64(b), absU64(c)

	hi, lo := bits.Mul64(ua, ub)
	// bits.Div64 требует hi < c, то есть |a*b/c| < 2^64
	q, _ := bits.Div64(hi, lo, uc)

	if neg {
		return -int64(q)
	}
	return int64(q)
}

// Lerp возвращает a + (b-a)*mul/div покомпонентно, включая Z.
// Деление выполняется после умножения, без потери точности на промежуточных шагах.
func Lerp(a, b WPos, mul, div int64) WPos {
	return WPos{
		X: a.X + int32(MulDiv(int64(b.X)-int64(a.X), mul, div)),
		Y: a.Y + int32(MulDiv(int64(b.Y)-int64(a.Y), mul, div)),
		Z: a.Z + int32(MulDiv(int64(b.Z)-int64(a.Z), mul, div)),
	}
}

// Sign возвращает -1, 0 или 1
func Sign(x int64) int32 {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

func absU64(x int64) uint64 {
	if x < 0 {
		return uint64(-x)
	}
	return uint64(x)
}

// SqrtCeil возвращает наименьшее s, для которого s*s >= n. Требование: n <= 2^63.
func SqrtCeil(n uint64) uint64 {
	s := uint64(math.Sqrt(float64(n)))
	for s > 0 && s*s > n {
		s--
	}
	for s*s < n {
		s++
	}
	return s
}
