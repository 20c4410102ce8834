package world

import "github.com/annel0/rts-spatial/internal/vec"

// switchable - форма, которую можно временно выключить
type switchable interface {
	IsEnabled() bool
}

// CircleShape - круглая форма столкновения
type CircleShape struct {
	Radius  vec.WDist
	Enabled bool
}

// OuterRadius возвращает радиус круга
func (s *CircleShape) OuterRadius() vec.WDist { return s.Radius }

// IsEnabled сообщает, включена ли форма
func (s *CircleShape) IsEnabled() bool { return s.Enabled }

// BoxShape - прямоугольная форма, выровненная по осям, с центром в позиции актёра
type BoxShape struct {
	Width   vec.WDist
	Height  vec.WDist
	Enabled bool
}

// NewBoxShape создаёт включённую прямоугольную форму
func NewBoxShape(width, height vec.WDist) *BoxShape {
	return &BoxShape{Width: width, Height: height, Enabled: true}
}

// OuterRadius возвращает радиус описанной окружности, округлённый вверх
func (s *BoxShape) OuterRadius() vec.WDist {
	w, h := uint64(s.Width), uint64(s.Height)
	diagonal := vec.SqrtCeil(w*w + h*h)
	return vec.WDist((diagonal + 1) / 2)
}

// IsEnabled сообщает, включена ли форма
func (s *BoxShape) IsEnabled() bool { return s.Enabled }

// ContainsPoint проверяет, лежит ли точка внутри прямоугольника с центром center.
// Левая и верхняя границы включены, правая и нижняя - нет.
func (s *BoxShape) ContainsPoint(center, point vec.WPos) bool {
	halfWidth := int64(s.Width) / 2
	halfHeight := int64(s.Height) / 2
	x, y := int64(point.X)-int64(center.X), int64(point.Y)-int64(center.Y)

	return x >= -halfWidth && x < int64(s.Width)-halfWidth &&
		y >= -halfHeight && y < int64(s.Height)-halfHeight
}

// Overlaps проверяет пересечение двух прямоугольников
func (s *BoxShape) Overlaps(center vec.WPos, other *BoxShape, otherCenter vec.WPos) bool {
	left, right := boxSpan(int64(center.X), int64(s.Width))
	top, bottom := boxSpan(int64(center.Y), int64(s.Height))
	otherLeft, otherRight := boxSpan(int64(otherCenter.X), int64(other.Width))
	otherTop, otherBottom := boxSpan(int64(otherCenter.Y), int64(other.Height))

	return right > otherLeft && left < otherRight &&
		bottom > otherTop && top < otherBottom
}

func boxSpan(center, size int64) (int64, int64) {
	half := size / 2
	return center - half, center - half + size
}
