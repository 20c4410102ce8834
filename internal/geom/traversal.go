package geom

import "github.com/annel0/rts-spatial/internal/vec"

// CellMap отображает мировые позиции на клетки сетки и обратно
type CellMap interface {
	// CellContaining возвращает клетку, содержащую позицию
	CellContaining(pos vec.WPos) vec.CPos

	// CenterOfCell возвращает мировую позицию центра клетки
	CenterOfCell(cell vec.CPos) vec.WPos
}

// CellsOnLine возвращает клетки, которые пересекает отрезок start–end, от клетки start до клетки end включительно.
// Соседние клетки пути всегда отличаются ровно на единицу по одной оси: угол клетки не перепрыгивается.
func CellsOnLine(m CellMap, start, end vec.WPos) []vec.CPos {
	current := m.CellContaining(start)
	target := m.CellContaining(end)

	stepX := vec.CVec{X: vec.Sign(int64(target.X) - int64(current.X))}
	stepY := vec.CVec{Y: vec.Sign(int64(target.Y) - int64(current.Y))}

	path := make([]vec.CPos, 0, current.ManhattanDistance(target)+1)
	path = append(path, current)

	for current != target {
		// Остался прямой участок по строке или столбцу
		if current.X == target.X || current.Y == target.Y {
			return appendStraightRun(path, current, target)
		}

		// Пробуем шаг по X и проверяем, что настоящая прямая через эту клетку проходит
		next := current.Add(stepX)
		closest := ClosestPointOnSegment(start, end, m.CenterOfCell(next))
		if m.CellContaining(closest) != next {
			next = current.Add(stepY)
		}

		current = next
		path = append(path, current)
	}

	return path
}

// appendStraightRun дописывает клетки от from (не включая) до to (включая) по одной оси
func appendStraightRun(path []vec.CPos, from, to vec.CPos) []vec.CPos {
	step := vec.CVec{
		X: vec.Sign(int64(to.X) - int64(from.X)),
		Y: vec.Sign(int64(to.Y) - int64(from.Y)),
	}

	for from != to {
		from = from.Add(step)
		path = append(path, from)
	}

	return path
}
