package vec

// CPos представляет координаты клетки на сетке местности
type CPos struct {
	X, Y int32
}

// CVec представляет смещение между клетками
type CVec struct {
	X, Y int32
}

// Add сдвигает клетку на смещение
func (c CPos) Add(d CVec) CPos {
	return CPos{X: c.X + d.X, Y: c.Y + d.Y}
}

// Sub возвращает смещение от other до c
func (c CPos) Sub(other CPos) CVec {
	return CVec{X: c.X - other.X, Y: c.Y - other.Y}
}

// ManhattanDistance возвращает сумму модулей разностей по осям
func (c CPos) ManhattanDistance(other CPos) int64 {
	return abs64(int64(c.X)-int64(other.X)) + abs64(int64(c.Y)-int64(other.Y))
}
