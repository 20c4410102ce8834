package world

import (
	"github.com/annel0/rts-spatial/internal/geom"
	"github.com/annel0/rts-spatial/internal/vec"
)

// lineOverselect - запас, на который расширяется прямоугольник поиска вокруг линии
const lineOverselect = 1024

// FindActorsOnLine возвращает актёров, чьи формы лежат в пределах lineWidth от отрезка lineStart–lineEnd.
// Порядок совпадает с порядком, в котором их вернул индекс.
// onlyBlockers сужает область поиска до радиусов блокирующих актёров; фильтрация по блокированию - забота вызывающего.
func FindActorsOnLine(idx ActorIndex, lineStart, lineEnd vec.WPos, lineWidth vec.WDist, onlyBlockers bool) []Actor {
	actors, _ := actorsOnLine(idx, lineStart, lineEnd, lineWidth, onlyBlockers)
	return actors
}

// FindBlockingActorsOnLine - FindActorsOnLine с областью поиска по блокирующим актёрам
func FindBlockingActorsOnLine(idx ActorIndex, lineStart, lineEnd vec.WPos, lineWidth vec.WDist) []Actor {
	return FindActorsOnLine(idx, lineStart, lineEnd, lineWidth, true)
}

// FindActorsOnCircle возвращает актёров, формы которых могут пересекать круг.
// Радиус расширяется на наибольший радиус актёра в индексе.
func FindActorsOnCircle(idx ActorIndex, origin vec.WPos, radius vec.WDist) []Actor {
	widened := clampInt32(int64(radius) + int64(idx.LargestActorRadius()))
	return idx.ActorsInCircle(origin, vec.WDist(widened))
}

// actorsOnLine дополнительно возвращает число кандидатов из индекса
func actorsOnLine(idx ActorIndex, lineStart, lineEnd vec.WPos, lineWidth vec.WDist, onlyBlockers bool) ([]Actor, int) {
	// Сначала выбираем всех актёров в прямоугольнике от начала до конца линии,
	// расширенном так, чтобы в него попала вся ширина линии и радиус любого актёра.
	// Направления по осям никогда не равны 0, иначе по этой оси расширения не будет.
	xDir, yDir := int64(1), int64(1)
	if lineEnd.X < lineStart.X {
		xDir = -1
	}
	if lineEnd.Y < lineStart.Y {
		yDir = -1
	}

	largest := idx.LargestActorRadius()
	if onlyBlockers {
		largest = idx.LargestBlockingActorRadius()
	}
	margin := lineOverselect + int64(lineWidth) + int64(largest)

	finalTarget := vec.WPos{
		X: clampInt32(int64(lineEnd.X) + xDir*margin),
		Y: clampInt32(int64(lineEnd.Y) + yDir*margin),
		Z: lineEnd.Z,
	}
	finalSource := vec.WPos{
		X: clampInt32(int64(lineStart.X) - xDir*margin),
		Y: clampInt32(int64(lineStart.Y) - yDir*margin),
		Z: lineStart.Z,
	}

	candidates := idx.ActorsInBox(finalTarget, finalSource)

	intersected := make([]Actor, 0)
	for _, actor := range candidates {
		reach := uint64(ActorRadius(actor)) + uint64(lineWidth)
		distanceSquared := geom.HorizontalDistanceSquared(lineStart, lineEnd, actor.CenterPosition())

		// Актёр задет, если его центр не дальше lineWidth + радиус от линии
		if uint64(distanceSquared) <= reach*reach {
			intersected = append(intersected, actor)
		}
	}

	return intersected, len(candidates)
}
