package terrain

import (
	"github.com/aquilax/go-perlin"

	"github.com/annel0/rts-spatial/internal/vec"
)

// Generator строит синтетический слой направлений на основе шума Перлина.
// Плавающая точка используется только при генерации: в карту попадают целые направления,
// поэтому сгенерированная карта одинакова у всех участников при одинаковом сиде.
type Generator struct {
	Seed           int64   // Сид шума
	NoiseScale     float64 // Масштаб шума (чем меньше, тем крупнее хребты)
	WallThreshold  float64 // Выше - направленная стена
	CliffThreshold float64 // Выше - клетка всегда перекрывает обзор
}

// NewGenerator создаёт генератор с настройками по умолчанию
func NewGenerator(seed int64) *Generator {
	return &Generator{
		Seed:           seed,
		NoiseScale:     0.08,
		WallThreshold:  0.62,
		CliffThreshold: 0.78,
	}
}

// Generate создаёт карту указанного размера
func (g *Generator) Generate(width, height, cellSize int32) (*Map, error) {
	m, err := NewMap(width, height, cellSize)
	if err != nil {
		return nil, err
	}

	alpha := 2.0  // Сглаживание шума
	beta := 2.0   // Частота шума
	n := int32(3) // Количество октав
	noise := perlin.NewPerlin(alpha, beta, n, g.Seed)

	height01 := func(x, y int32) float64 {
		v := noise.Noise2D(float64(x)*g.NoiseScale, float64(y)*g.NoiseScale)
		return (v + 1.0) / 2.0
	}

	for y := int32(0); y < height; y++ {
		for x := int32(0); x < width; x++ {
			h := height01(x, y)

			switch {
			case h >= g.CliffThreshold:
				m.SetFacing(vec.CPos{X: x, Y: y}, TileFacing{Kind: AlwaysBlocks})
			case h >= g.WallThreshold:
				// Стена смотрит вдоль склона: по градиенту высоты
				gx := int64((height01(x+1, y) - height01(x-1, y)) * 1e6)
				gy := int64((height01(x, y+1) - height01(x, y-1)) * 1e6)
				facing := vec.WVec{X: int32(gx), Y: int32(gy)}.Facing()
				m.SetFacing(vec.CPos{X: x, Y: y}, DirectionalFacing(facing))
			}
		}
	}

	return m, nil
}
