package vec

import "fmt"

// WDist представляет неотрицательную длину в мировых единицах
type WDist int32

// WPos представляет позицию в мире (целочисленные мировые единицы).
// Z не участвует в горизонтальных проверках.
type WPos struct {
	X int32
	Y int32
	Z int32
}

// WVec представляет смещение в мире
type WVec struct {
	X int32
	Y int32
	Z int32
}

// Add смещает позицию на вектор
func (p WPos) Add(v WVec) WPos {
	return WPos{X: p.X + v.X, Y: p.Y + v.Y, Z: p.Z + v.Z}
}

// Sub возвращает вектор от other до p
func (p WPos) Sub(other WPos) WVec {
	return WVec{X: p.X - other.X, Y: p.Y - other.Y, Z: p.Z - other.Z}
}

// SubVec смещает позицию на вектор в обратную сторону
func (p WPos) SubVec(v WVec) WPos {
	return WPos{X: p.X - v.X, Y: p.Y - v.Y, Z: p.Z - v.Z}
}

// String нужен для читаемых логов и сообщений тестов
func (p WPos) String() string {
	return fmt.Sprintf("%d,%d,%d", p.X, p.Y, p.Z)
}

// Add складывает два вектора
func (v WVec) Add(other WVec) WVec {
	return WVec{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Mul умножает вектор на скаляр
func (v WVec) Mul(s int32) WVec {
	return WVec{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Neg возвращает противоположный вектор
func (v WVec) Neg() WVec {
	return WVec{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// HorizontalLengthSquared возвращает квадрат длины проекции на плоскость XY.
// Считается в int64: при |X|,|Y| < 2^31 сумма квадратов не переполняется.
func (v WVec) HorizontalLengthSquared() int64 {
	x, y := int64(v.X), int64(v.Y)
	return x*x + y*y
}

// Equals проверяет равенство позиций
func (p WPos) Equals(other WPos) bool {
	return p.X == other.X && p.Y == other.Y && p.Z == other.Z
}
