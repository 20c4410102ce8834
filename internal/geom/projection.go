package geom

import "github.com/annel0/rts-spatial/internal/vec"

// ClosestPointOnSegment возвращает точку отрезка start–end, ближайшую к point по горизонтали.
// Для вырожденного отрезка возвращает end.
func ClosestPointOnSegment(start, end, point vec.WPos) vec.WPos {
	squaredLength := end.Sub(start).HorizontalLengthSquared()
	if squaredLength == 0 {
		return end
	}

	// Прямая параметризуется как end + t*(start-end), t = (point-end)·(start-end) / |start-end|^2.
	// Делить на |start-end|^2 здесь не нужно: числитель и знаменатель уходят в Lerp целиком.
	xDiff := (int64(point.X) - int64(end.X)) * (int64(start.X) - int64(end.X))
	yDiff := (int64(point.Y) - int64(end.Y)) * (int64(start.Y) - int64(end.Y))
	t := xDiff + yDiff

	// За концом end
	if t < 0 {
		return end
	}

	// За концом start
	if t > squaredLength {
		return start
	}

	return vec.Lerp(end, start, t, squaredLength)
}

// HorizontalDistanceSquared возвращает квадрат расстояния от point до отрезка start–end
func HorizontalDistanceSquared(start, end, point vec.WPos) int64 {
	return point.Sub(ClosestPointOnSegment(start, end, point)).HorizontalLengthSquared()
}
