package world

import (
	"github.com/google/uuid"

	"github.com/annel0/rts-spatial/internal/vec"
)

// HitShape - форма столкновения актёра
type HitShape interface {
	// OuterRadius возвращает радиус описанной окружности формы
	OuterRadius() vec.WDist
}

// Actor - внешний объект симуляции. Модуль только читает его состояние.
type Actor interface {
	// ID возвращает уникальный идентификатор актёра
	ID() uuid.UUID

	// CenterPosition возвращает позицию центра актёра
	CenterPosition() vec.WPos

	// EnabledHitShapes возвращает включённые в данный момент формы столкновения
	EnabledHitShapes() []HitShape
}

// Blocker реализуется актёрами, которые могут перекрывать снаряды и лучи
type Blocker interface {
	BlocksProjectiles() bool
}

// ActorRadius возвращает наибольший внешний радиус среди включённых форм актёра (0, если форм нет)
func ActorRadius(a Actor) vec.WDist {
	var radius vec.WDist
	for _, shape := range a.EnabledHitShapes() {
		if r := shape.OuterRadius(); r > radius {
			radius = r
		}
	}
	return radius
}

// IsBlocker проверяет, перекрывает ли актёр снаряды
func IsBlocker(a Actor) bool {
	b, ok := a.(Blocker)
	return ok && b.BlocksProjectiles()
}

// ActorIDs возвращает идентификаторы актёров в том же порядке
func ActorIDs(actors []Actor) []uuid.UUID {
	ids := make([]uuid.UUID, len(actors))
	for i, a := range actors {
		ids[i] = a.ID()
	}
	return ids
}

// Unit - простая реализация Actor для инструментов и тестов
type Unit struct {
	id     uuid.UUID
	pos    vec.WPos
	shapes []HitShape
	blocks bool
}

// NewUnit создаёт юнита с одной включённой круглой формой (radius 0 - без формы)
func NewUnit(pos vec.WPos, radius vec.WDist, blocks bool) *Unit {
	return NewUnitWithID(uuid.New(), pos, radius, blocks)
}

// NewUnitWithID создаёт юнита с заданным идентификатором
func NewUnitWithID(id uuid.UUID, pos vec.WPos, radius vec.WDist, blocks bool) *Unit {
	u := &Unit{id: id, pos: pos, blocks: blocks}
	if radius > 0 {
		u.AddShape(&CircleShape{Radius: radius, Enabled: true})
	}
	return u
}

// ID возвращает идентификатор юнита
func (u *Unit) ID() uuid.UUID { return u.id }

// CenterPosition возвращает позицию юнита
func (u *Unit) CenterPosition() vec.WPos { return u.pos }

// SetCenterPosition перемещает юнита. После перемещения нужно вызвать ActorMap.Update.
func (u *Unit) SetCenterPosition(pos vec.WPos) { u.pos = pos }

// BlocksProjectiles сообщает, перекрывает ли юнит снаряды
func (u *Unit) BlocksProjectiles() bool { return u.blocks }

// AddShape добавляет форму столкновения
func (u *Unit) AddShape(shape HitShape) {
	u.shapes = append(u.shapes, shape)
}

// Shapes возвращает все формы юнита, включая выключенные
func (u *Unit) Shapes() []HitShape { return u.shapes }

// EnabledHitShapes возвращает включённые формы
func (u *Unit) EnabledHitShapes() []HitShape {
	shapes := make([]HitShape, 0, len(u.shapes))
	for _, s := range u.shapes {
		if sw, ok := s.(switchable); ok && !sw.IsEnabled() {
			continue
		}
		shapes = append(shapes, s)
	}
	return shapes
}
