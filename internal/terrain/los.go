package terrain

import (
	"github.com/annel0/rts-spatial/internal/geom"
	"github.com/annel0/rts-spatial/internal/vec"
)

// blockingAngle - минимальная разница направлений (90° из 256), при которой клетка перекрывает линию.
// Граница включительно.
const blockingAngle = 64

// FacingMap - сетка, хранящая направление каждой клетки.
// Значения Directional.Angle обязаны лежать в [0, 255]; проверка - задача загрузчика.
type FacingMap interface {
	geom.CellMap

	// Facing возвращает направление клетки
	Facing(cell vec.CPos) TileFacing
}

// Sight - результат прохода линии обзора по клеткам
type Sight struct {
	Blocked bool     // линия перекрыта
	Blocker vec.CPos // клетка, перекрывшая линию (если Blocked)
	Scanned int      // сколько клеток проверено
}

// BlocksLineOfSight возвращает true, если направления клеток на пути from–to перекрывают линию
func BlocksLineOfSight(m FacingMap, from, to vec.WPos) bool {
	return TraceLineOfSight(m, from, to).Blocked
}

// TraceLineOfSight проходит клетки отрезка from–to и останавливается на первой перекрывающей
func TraceLineOfSight(m FacingMap, from, to vec.WPos) Sight {
	lineFacing := to.Sub(from).Facing()

	var sight Sight
	for _, cell := range geom.CellsOnLine(m, from, to) {
		sight.Scanned++

		facing := m.Facing(cell)
		switch facing.Kind {
		case AlwaysBlocks:
			sight.Blocked, sight.Blocker = true, cell
			return sight
		case NeverBlocks:
			continue
		}

		if abs32(FacingDelta(lineFacing, facing.Angle)) >= blockingAngle {
			sight.Blocked, sight.Blocker = true, cell
			return sight
		}
	}

	return sight
}

// FacingDelta возвращает разницу target-tile, приведённую к [-128, 128]
func FacingDelta(target, tile int32) int32 {
	delta := target - tile
	for delta > vec.FullTurn/2 {
		delta -= vec.FullTurn
	}
	for delta < -vec.FullTurn/2 {
		delta += vec.FullTurn
	}
	return delta
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}
