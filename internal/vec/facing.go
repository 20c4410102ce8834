package vec

// Направления кодируются на круге из 256 единиц:
// 0 - север (-Y), рост против часовой стрелки, 64 - запад, 128 - юг, 192 - восток.
const (
	FacingNorth int32 = 0
	FacingWest  int32 = 64
	FacingSouth int32 = 128
	FacingEast  int32 = 192

	FullTurn = 256
)

// octantBounds - tan((j+0.5)*2π/256) в формате 16.16, j = 0..31.
// Таблица задана литералом, чтобы результат не зависел от платформенной реализации math.
var octantBounds = [32]int64{
	804, 2414, 4026, 5644, 7268, 8901, 10545, 12202,
	13874, 15564, 17273, 19005, 20762, 22546, 24360, 26208,
	28093, 30018, 31986, 34002, 36071, 38196, 40382, 42636,
	44963, 47369, 49863, 52451, 55144, 57950, 60880, 63947,
}

// Facing возвращает направление вектора в 256-единичной кодировке.
// Для нулевого вектора возвращает FacingNorth.
func (v WVec) Facing() int32 {
	// Поворачиваем оси так, чтобы 0 смотрел на север, а рост шёл к западу
	return ArcTan256(-int64(v.X), -int64(v.Y))
}

// ArcTan256 возвращает угол от оси x к точке (x, y) против часовой стрелки в диапазоне [0, 256).
func ArcTan256(y, x int64) int32 {
	if x == 0 && y == 0 {
		return 0
	}

	ax, ay := abs64(x), abs64(y)
	var a int32
	if ax >= ay {
		a = octant(ay, ax)
	} else {
		a = 64 - octant(ax, ay)
	}

	switch {
	case x >= 0 && y >= 0:
		return a
	case x < 0 && y >= 0:
		return 128 - a
	case x < 0:
		return 128 + a
	default:
		return (256 - a) & (FullTurn - 1)
	}
}

// octant возвращает угол в [0, 32] для minor <= major
func octant(minor, major int64) int32 {
	var a int32
	scaled := minor << 16
	for _, bound := range octantBounds {
		if scaled <= bound*major {
			break
		}
		a++
	}
	return a
}
