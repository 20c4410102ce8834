package terrain

import (
	"fmt"
	"sync"

	"github.com/annel0/rts-spatial/internal/vec"
)

// DefaultCellSize - размер клетки в мировых единицах
const DefaultCellSize = 1024

// Map - прямоугольная сетка местности со слоем направлений клеток.
// Клетки с координатами вне [0, width) x [0, height) считаются NeverBlocks.
type Map struct {
	cellSize int32
	width    int32
	height   int32

	facings []TileFacing // построчно: y*width + x
	mu      sync.RWMutex
}

// NewMap создаёт карту, в которой ни одна клетка не перекрывает обзор
func NewMap(width, height, cellSize int32) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("некорректный размер карты %dx%d", width, height)
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("некорректный размер клетки %d", cellSize)
	}

	return &Map{
		cellSize: cellSize,
		width:    width,
		height:   height,
		facings:  make([]TileFacing, int(width)*int(height)),
	}, nil
}

// Width возвращает ширину карты в клетках
func (m *Map) Width() int32 { return m.width }

// Height возвращает высоту карты в клетках
func (m *Map) Height() int32 { return m.height }

// CellSize возвращает размер клетки в мировых единицах
func (m *Map) CellSize() int32 { return m.cellSize }

// Contains проверяет, что клетка лежит внутри карты
func (m *Map) Contains(cell vec.CPos) bool {
	return cell.X >= 0 && cell.Y >= 0 && cell.X < m.width && cell.Y < m.height
}

// CellContaining возвращает клетку, содержащую позицию (деление с округлением вниз)
func (m *Map) CellContaining(pos vec.WPos) vec.CPos {
	return vec.CPos{X: floorDiv(pos.X, m.cellSize), Y: floorDiv(pos.Y, m.cellSize)}
}

// CenterOfCell возвращает центр клетки на нулевой высоте
func (m *Map) CenterOfCell(cell vec.CPos) vec.WPos {
	return vec.WPos{
		X: cell.X*m.cellSize + m.cellSize/2,
		Y: cell.Y*m.cellSize + m.cellSize/2,
	}
}

// Facing возвращает направление клетки
func (m *Map) Facing(cell vec.CPos) TileFacing {
	if !m.Contains(cell) {
		return TileFacing{Kind: NeverBlocks}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.facings[m.index(cell)]
}

// SetFacing устанавливает направление клетки, клетки вне карты игнорируются
func (m *Map) SetFacing(cell vec.CPos, facing TileFacing) {
	if !m.Contains(cell) {
		return
	}

	m.mu.Lock()
	m.facings[m.index(cell)] = facing
	m.mu.Unlock()
}

// CountByKind возвращает количество клеток каждого вида
func (m *Map) CountByKind() map[FacingKind]int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[FacingKind]int, 3)
	for _, f := range m.facings {
		counts[f.Kind]++
	}
	return counts
}

func (m *Map) index(cell vec.CPos) int {
	return int(cell.Y)*int(m.width) + int(cell.X)
}

func floorDiv(a, b int32) int32 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
