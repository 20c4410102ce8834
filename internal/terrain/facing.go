package terrain

import (
	"errors"
	"fmt"
)

// Сырые значения направления в данных карты
const (
	RawAlwaysBlocks = 256 // клетка всегда перекрывает обзор
	RawNeverBlocks  = -1  // клетка никогда не перекрывает обзор
)

// ErrInvalidFacing возвращается загрузчиком для значений вне [-1, 256]
var ErrInvalidFacing = errors.New("недопустимое направление клетки")

// FacingKind определяет, как клетка влияет на обзор
type FacingKind uint8

const (
	NeverBlocks  FacingKind = iota // нет направления, обзор не перекрывается
	AlwaysBlocks                   // обзор перекрывается при любом направлении
	Directional                    // перекрытие зависит от угла пересечения
)

// TileFacing - направление клетки местности.
// Angle имеет смысл только для Directional и лежит в [0, 255].
type TileFacing struct {
	Kind  FacingKind
	Angle int32
}

// DirectionalFacing создаёт направленную клетку
func DirectionalFacing(angle int32) TileFacing {
	return TileFacing{Kind: Directional, Angle: angle & 0xFF}
}

// ParseFacing переводит сырое значение из данных карты в TileFacing
func ParseFacing(raw int) (TileFacing, error) {
	switch {
	case raw == RawAlwaysBlocks:
		return TileFacing{Kind: AlwaysBlocks}, nil
	case raw == RawNeverBlocks:
		return TileFacing{Kind: NeverBlocks}, nil
	case raw >= 0 && raw < RawAlwaysBlocks:
		return TileFacing{Kind: Directional, Angle: int32(raw)}, nil
	}
	return TileFacing{}, fmt.Errorf("%w: %d", ErrInvalidFacing, raw)
}

// Raw возвращает сырое значение для сохранения
func (f TileFacing) Raw() int {
	switch f.Kind {
	case AlwaysBlocks:
		return RawAlwaysBlocks
	case Directional:
		return int(f.Angle)
	default:
		return RawNeverBlocks
	}
}

func (f TileFacing) String() string {
	switch f.Kind {
	case AlwaysBlocks:
		return "always"
	case Directional:
		return fmt.Sprintf("facing(%d)", f.Angle)
	default:
		return "never"
	}
}
