package vec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMulDiv(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c int64
		want    int64
	}{
		{"простое деление", 10, 5, 2, 25},
		{"отрицательный множитель", -10, 5, 3, -16},
		{"отрицательный делитель", 10, 5, -3, -16},
		{"переполнение промежуточного произведения", math.MaxInt32, math.MaxInt64 / 2, math.MaxInt64, math.MaxInt32 / 2},
		{"ноль", 0, 12345, 7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MulDiv(tt.a, tt.b, tt.c))
		})
	}
}

func TestLerp(t *testing.T) {
	a := WPos{X: 0, Y: 100, Z: 10}
	b := WPos{X: 0, Y: 0, Z: 0}

	assert.Equal(t, WPos{X: 0, Y: 50, Z: 5}, Lerp(a, b, 5000, 10000))
	assert.Equal(t, a, Lerp(a, b, 0, 10000), "mul=0 должен возвращать начало")
	assert.Equal(t, b, Lerp(a, b, 10000, 10000), "mul=div должен возвращать конец")

	// Большие координаты: произведение (b-a)*mul не влезает в int64
	far := WPos{X: math.MaxInt32, Y: math.MinInt32}
	mid := Lerp(WPos{}, far, 1<<62, 1<<63-1)
	assert.InDelta(t, float64(math.MaxInt32)/2, float64(mid.X), 1)
	assert.InDelta(t, float64(math.MinInt32)/2, float64(mid.Y), 1)
}

func TestHorizontalLengthSquared(t *testing.T) {
	v := WVec{X: math.MaxInt32, Y: math.MinInt32 + 1, Z: 99}
	want := int64(math.MaxInt32) * int64(math.MaxInt32) * 2
	assert.Equal(t, want, v.HorizontalLengthSquared(), "Z не должен учитываться, переполнения быть не должно")
}

func TestFacing(t *testing.T) {
	tests := []struct {
		name string
		v    WVec
		want int32
	}{
		{"север", WVec{Y: -1024}, FacingNorth},
		{"запад", WVec{X: -1024}, FacingWest},
		{"юг", WVec{Y: 1024}, FacingSouth},
		{"восток", WVec{X: 1024}, FacingEast},
		{"северо-запад", WVec{X: -1024, Y: -1024}, 32},
		{"юго-запад", WVec{X: -1024, Y: 1024}, 96},
		{"юго-восток", WVec{X: 1024, Y: 1024}, 160},
		{"северо-восток", WVec{X: 1024, Y: -1024}, 224},
		{"нулевой вектор", WVec{}, FacingNorth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Facing())
		})
	}
}

func TestFacingMatchesAtan2(t *testing.T) {
	// Сверяем таблицу с math.Atan2 на окружности: расхождение не больше одной единицы
	for i := 0; i < 360; i++ {
		rad := float64(i) * math.Pi / 180
		v := WVec{X: int32(-math.Sin(rad) * 100000), Y: int32(-math.Cos(rad) * 100000)}
		want := float64(i) * 256 / 360
		got := float64(v.Facing())
		diff := math.Mod(got-want+384, 256) - 128
		assert.LessOrEqual(t, math.Abs(diff), 1.0, "угол %d°: получено %v", i, got)
	}
}

func TestCPos(t *testing.T) {
	c := CPos{X: 3, Y: -2}
	assert.Equal(t, CPos{X: 4, Y: -2}, c.Add(CVec{X: 1}))
	assert.Equal(t, CVec{X: 3, Y: -2}, c.Sub(CPos{}))
	assert.Equal(t, int64(5), c.ManhattanDistance(CPos{}))
}

func TestSqrtCeil(t *testing.T) {
	assert.Equal(t, uint64(0), SqrtCeil(0))
	assert.Equal(t, uint64(1), SqrtCeil(1))
	assert.Equal(t, uint64(2), SqrtCeil(2))
	assert.Equal(t, uint64(5), SqrtCeil(25))
	assert.Equal(t, uint64(6), SqrtCeil(26))

	// Граница float64: 2^62 точно, 2^62+1 уже нет
	assert.Equal(t, uint64(1)<<31, SqrtCeil(1<<62))
	assert.Equal(t, uint64(1)<<31+1, SqrtCeil(1<<62+1))
}
