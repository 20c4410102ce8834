package world

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/annel0/rts-spatial/internal/vec"
)

// DefaultBinSize - размер ячейки индекса по умолчанию (8 клеток местности)
const DefaultBinSize = 8192

// ErrDuplicateActor возвращается при повторном добавлении актёра
var ErrDuplicateActor = errors.New("актёр уже добавлен в индекс")

// ActorIndex - пространственный индекс актёров
type ActorIndex interface {
	// ActorsInBox возвращает актёров, центр которых лежит в прямоугольнике с углами a и b
	ActorsInBox(a, b vec.WPos) []Actor

	// ActorsInCircle возвращает актёров, центр которых не дальше radius от origin
	ActorsInCircle(origin vec.WPos, radius vec.WDist) []Actor

	// LargestActorRadius возвращает наибольший радиус среди всех актёров
	LargestActorRadius() vec.WDist

	// LargestBlockingActorRadius возвращает наибольший радиус среди блокирующих актёров
	LargestBlockingActorRadius() vec.WDist
}

// ActorMap - индекс актёров на равномерной сетке ячеек.
// Актёр хранится в ячейке своего центра. Порядок выдачи детерминирован:
// ячейки обходятся построчно, внутри ячейки - в порядке добавления.
type ActorMap struct {
	binSize int32
	bins    map[binKey][]*indexedActor
	actors  map[uuid.UUID]*indexedActor

	largestRadius         vec.WDist
	largestBlockingRadius vec.WDist

	mu sync.RWMutex
}

// binKey - координаты ячейки индекса
type binKey struct {
	x, y int32
}

// indexedActor хранит состояние актёра на момент последнего Add/Update
type indexedActor struct {
	actor  Actor
	pos    vec.WPos
	bin    binKey
	radius vec.WDist
	blocks bool
}

// NewActorMap создаёт индекс с указанным размером ячейки
func NewActorMap(binSize int32) *ActorMap {
	if binSize <= 0 {
		binSize = DefaultBinSize
	}

	return &ActorMap{
		binSize: binSize,
		bins:    make(map[binKey][]*indexedActor),
		actors:  make(map[uuid.UUID]*indexedActor),
	}
}

// Add добавляет актёра в индекс
func (m *ActorMap) Add(a Actor) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.actors[a.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateActor, a.ID())
	}

	indexed := m.snapshot(a)
	m.actors[a.ID()] = indexed
	m.bins[indexed.bin] = append(m.bins[indexed.bin], indexed)
	m.growLargest(indexed)
	return nil
}

// Update перечитывает позицию и формы актёра. Неизвестный актёр добавляется.
func (m *ActorMap) Update(a Actor) {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, exists := m.actors[a.ID()]
	if !exists {
		indexed := m.snapshot(a)
		m.actors[a.ID()] = indexed
		m.bins[indexed.bin] = append(m.bins[indexed.bin], indexed)
		m.growLargest(indexed)
		return
	}

	updated := m.snapshot(a)
	if updated.bin != old.bin {
		m.removeFromBin(old)
		m.bins[updated.bin] = append(m.bins[updated.bin], old)
	}

	// Обновляем запись на месте, чтобы сохранить её позицию внутри ячейки
	shrunk := updated.radius < old.radius || (old.blocks && !updated.blocks)
	*old = *updated

	if shrunk {
		m.recalculateLargest()
	} else {
		m.growLargest(old)
	}
}

// Remove удаляет актёра из индекса
func (m *ActorMap) Remove(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	indexed, exists := m.actors[id]
	if !exists {
		return false
	}

	delete(m.actors, id)
	m.removeFromBin(indexed)

	if indexed.radius == m.largestRadius || (indexed.blocks && indexed.radius == m.largestBlockingRadius) {
		m.recalculateLargest()
	}
	return true
}

// Count возвращает количество актёров в индексе
func (m *ActorMap) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.actors)
}

// BinCount возвращает количество непустых ячеек
func (m *ActorMap) BinCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bins)
}

// LargestActorRadius возвращает наибольший радиус среди всех актёров
func (m *ActorMap) LargestActorRadius() vec.WDist {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.largestRadius
}

// LargestBlockingActorRadius возвращает наибольший радиус среди блокирующих актёров
func (m *ActorMap) LargestBlockingActorRadius() vec.WDist {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.largestBlockingRadius
}

// ActorsInBox возвращает актёров, центр которых лежит в прямоугольнике (границы включительно).
// Углы a и b могут быть заданы в любом порядке.
func (m *ActorMap) ActorsInBox(a, b vec.WPos) []Actor {
	left, right := minMax(a.X, b.X)
	top, bottom := minMax(a.Y, b.Y)

	minBin := m.binOf(vec.WPos{X: left, Y: top})
	maxBin := m.binOf(vec.WPos{X: right, Y: bottom})

	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Actor, 0)
	for y := minBin.y; y <= maxBin.y; y++ {
		for x := minBin.x; x <= maxBin.x; x++ {
			for _, indexed := range m.bins[binKey{x: x, y: y}] {
				p := indexed.pos
				if p.X >= left && p.X <= right && p.Y >= top && p.Y <= bottom {
					result = append(result, indexed.actor)
				}
			}
		}
	}

	return result
}

// ActorsInCircle возвращает актёров, центр которых лежит в круге (граница включительно)
func (m *ActorMap) ActorsInCircle(origin vec.WPos, radius vec.WDist) []Actor {
	r := int64(radius)
	corner := func(sign int64) vec.WPos {
		return vec.WPos{X: clampInt32(int64(origin.X) + sign*r), Y: clampInt32(int64(origin.Y) + sign*r)}
	}

	candidates := m.ActorsInBox(corner(-1), corner(1))
	result := candidates[:0]
	for _, a := range candidates {
		if a.CenterPosition().Sub(origin).HorizontalLengthSquared() <= r*r {
			result = append(result, a)
		}
	}
	return result
}

// Вспомогательные методы

func (m *ActorMap) snapshot(a Actor) *indexedActor {
	pos := a.CenterPosition()
	return &indexedActor{
		actor:  a,
		pos:    pos,
		bin:    m.binOf(pos),
		radius: ActorRadius(a),
		blocks: IsBlocker(a),
	}
}

func (m *ActorMap) binOf(pos vec.WPos) binKey {
	return binKey{x: floorDiv(pos.X, m.binSize), y: floorDiv(pos.Y, m.binSize)}
}

// removeFromBin удаляет запись из ячейки с сохранением порядка остальных
func (m *ActorMap) removeFromBin(indexed *indexedActor) {
	bin := m.bins[indexed.bin]
	for i, other := range bin {
		if other == indexed {
			bin = append(bin[:i], bin[i+1:]...)
			break
		}
	}

	if len(bin) == 0 {
		delete(m.bins, indexed.bin)
		return
	}
	m.bins[indexed.bin] = bin
}

func (m *ActorMap) growLargest(indexed *indexedActor) {
	if indexed.radius > m.largestRadius {
		m.largestRadius = indexed.radius
	}
	if indexed.blocks && indexed.radius > m.largestBlockingRadius {
		m.largestBlockingRadius = indexed.radius
	}
}

func (m *ActorMap) recalculateLargest() {
	m.largestRadius, m.largestBlockingRadius = 0, 0
	for _, indexed := range m.actors {
		m.growLargest(indexed)
	}
}

func minMax(a, b int32) (int32, int32) {
	if a > b {
		return b, a
	}
	return a, b
}

func floorDiv(a, b int32) int32 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func clampInt32(v int64) int32 {
	switch {
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	}
	return int32(v)
}
