package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Значения по умолчанию
const (
	DefaultCellSize = 1024
	DefaultBinSize  = 8192
	DefaultLogLevel = "info"
)

// Config корневая структура конфигурации.
// Пустые поля заменяются значениями из окружения или значениями по умолчанию через геттеры.
type Config struct {
	Terrain TerrainConfig `yaml:"terrain"`
	Spatial SpatialConfig `yaml:"spatial"`
	Metrics MetricsConfig `yaml:"metrics"`
	Logging LoggingConfig `yaml:"logging"`
}

type TerrainConfig struct {
	MapPath  string `yaml:"map"`       // YAML-файл карты; пусто - сгенерировать
	CellSize int32  `yaml:"cell_size"` // размер клетки для сгенерированной карты
	Width    int32  `yaml:"width"`
	Height   int32  `yaml:"height"`
	Seed     int64  `yaml:"seed"`
}

type SpatialConfig struct {
	BinSize int32 `yaml:"bin_size"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"` // адрес /metrics, пусто - не запускать
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// GetCellSize возвращает размер клетки с поддержкой fallback значений
func (t *TerrainConfig) GetCellSize() int32 {
	return int32(getIntWithEnvFallback(int64(t.CellSize), "GEO_CELL_SIZE", DefaultCellSize))
}

// GetWidth возвращает ширину сгенерированной карты
func (t *TerrainConfig) GetWidth() int32 {
	return int32(getIntWithEnvFallback(int64(t.Width), "GEO_MAP_WIDTH", 64))
}

// GetHeight возвращает высоту сгенерированной карты
func (t *TerrainConfig) GetHeight() int32 {
	return int32(getIntWithEnvFallback(int64(t.Height), "GEO_MAP_HEIGHT", 64))
}

// GetBinSize возвращает размер ячейки индекса актёров с поддержкой fallback значений
func (s *SpatialConfig) GetBinSize() int32 {
	return int32(getIntWithEnvFallback(int64(s.BinSize), "GEO_BIN_SIZE", DefaultBinSize))
}

// GetAddr возвращает адрес метрик: config -> env GEO_METRICS_ADDR -> пусто
func (m *MetricsConfig) GetAddr() string {
	return getStringWithEnvFallback(m.Addr, "GEO_METRICS_ADDR", "")
}

// GetLevel возвращает уровень логирования: config -> env GEO_LOG_LEVEL -> info
func (l *LoggingConfig) GetLevel() string {
	return getStringWithEnvFallback(l.Level, "GEO_LOG_LEVEL", DefaultLogLevel)
}

// getIntWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getIntWithEnvFallback(configValue int64, envVar string, defaultValue int64) int64 {
	// Если значение задано в конфиге и больше 0, используем его
	if configValue > 0 {
		return configValue
	}

	// Пробуем прочитать из environment variable
	if envVal := os.Getenv(envVar); envVal != "" {
		if v, err := strconv.ParseInt(envVal, 10, 64); err == nil && v > 0 {
			return v
		}
	}

	return defaultValue
}

func getStringWithEnvFallback(configValue, envVar, defaultValue string) string {
	if configValue != "" {
		return configValue
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		return envVal
	}
	return defaultValue
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV GEO_CONFIG или возвращает пустой конфиг (работают дефолты).
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("GEO_CONFIG")
		if path == "" {
			return &Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
