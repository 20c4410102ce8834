package terrain

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"github.com/annel0/rts-spatial/internal/vec"
)

// ErrLayerSize возвращается, если размер слоя не совпадает с размером карты
var ErrLayerSize = errors.New("размер слоя не совпадает с размером карты")

// mapFile - YAML-описание карты местности.
// Направления задаются либо построчно в facings, либо бинарным слоем в layer.
type mapFile struct {
	CellSize int32   `yaml:"cell_size"`
	Width    int32   `yaml:"width"`
	Height   int32   `yaml:"height"`
	Facings  [][]int `yaml:"facings"`
	Layer    string  `yaml:"layer"`
}

// LoadMap читает карту из YAML-файла. Путь layer считается относительно файла карты.
func LoadMap(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения карты %s: %w", path, err)
	}

	m, err := ParseMap(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора карты %s: %w", path, err)
	}
	return m, nil
}

// ParseMap разбирает YAML-описание карты
func ParseMap(data []byte, baseDir string) (*Map, error) {
	var file mapFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	if file.CellSize == 0 {
		file.CellSize = DefaultCellSize
	}

	m, err := NewMap(file.Width, file.Height, file.CellSize)
	if err != nil {
		return nil, err
	}

	switch {
	case file.Layer != "":
		layerPath := file.Layer
		if !filepath.IsAbs(layerPath) {
			layerPath = filepath.Join(baseDir, layerPath)
		}

		f, err := os.Open(layerPath)
		if err != nil {
			return nil, fmt.Errorf("ошибка открытия слоя: %w", err)
		}
		defer f.Close()

		if err := DecodeLayer(f, m); err != nil {
			return nil, err
		}
	case len(file.Facings) > 0:
		if err := m.applyRows(file.Facings); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Map) applyRows(rows [][]int) error {
	if int32(len(rows)) != m.height {
		return fmt.Errorf("%w: %d строк вместо %d", ErrLayerSize, len(rows), m.height)
	}

	for y, row := range rows {
		if int32(len(row)) != m.width {
			return fmt.Errorf("%w: строка %d содержит %d значений вместо %d", ErrLayerSize, y, len(row), m.width)
		}

		for x, raw := range row {
			facing, err := ParseFacing(raw)
			if err != nil {
				return fmt.Errorf("клетка (%d,%d): %w", x, y, err)
			}
			m.SetFacing(vec.CPos{X: int32(x), Y: int32(y)}, facing)
		}
	}

	return nil
}

// EncodeLayer записывает слой направлений как zstd-поток из width*height значений int16 (little-endian)
func EncodeLayer(w io.Writer, m *Map) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("ошибка создания компрессора: %w", err)
	}

	m.mu.RLock()
	raw := make([]byte, 2*len(m.facings))
	for i, f := range m.facings {
		binary.LittleEndian.PutUint16(raw[2*i:], uint16(int16(f.Raw())))
	}
	m.mu.RUnlock()

	if _, err := enc.Write(raw); err != nil {
		enc.Close()
		return fmt.Errorf("ошибка сжатия слоя: %w", err)
	}
	return enc.Close()
}

// DecodeLayer читает слой, записанный EncodeLayer, в карту m
func DecodeLayer(r io.Reader, m *Map) error {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return fmt.Errorf("ошибка создания декомпрессора: %w", err)
	}
	defer dec.Close()

	raw, err := io.ReadAll(dec)
	if err != nil {
		return fmt.Errorf("ошибка распаковки слоя: %w", err)
	}

	want := 2 * int(m.width) * int(m.height)
	if len(raw) != want {
		return fmt.Errorf("%w: %d байт вместо %d", ErrLayerSize, len(raw), want)
	}

	facings := make([]TileFacing, 0, want/2)
	for i := 0; i < len(raw); i += 2 {
		facing, err := ParseFacing(int(int16(binary.LittleEndian.Uint16(raw[i:]))))
		if err != nil {
			return fmt.Errorf("клетка %d: %w", i/2, err)
		}
		facings = append(facings, facing)
	}

	m.mu.Lock()
	m.facings = facings
	m.mu.Unlock()
	return nil
}

// EncodeLayerBytes - вариант EncodeLayer для записи в память
func EncodeLayerBytes(m *Map) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeLayer(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
