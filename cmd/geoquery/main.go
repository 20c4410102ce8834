package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/annel0/rts-spatial/internal/config"
	"github.com/annel0/rts-spatial/internal/logging"
	"github.com/annel0/rts-spatial/internal/metrics"
	"github.com/annel0/rts-spatial/internal/scenario"
	"github.com/annel0/rts-spatial/internal/terrain"
	"github.com/annel0/rts-spatial/internal/world"
)

func main() {
	var (
		configPath   = flag.String("config", "", "YAML config (or GEO_CONFIG)")
		mapPath      = flag.String("map", "", "Terrain map YAML, overrides terrain.map from config")
		scenarioPath = flag.String("scenario", "", "Scenario YAML with actors and queries")
		seed         = flag.Int64("seed", 0, "Seed for generated terrain, overrides terrain.seed")
		wait         = flag.Bool("wait", false, "Keep serving /metrics until SIGINT/SIGTERM")
	)
	flag.Parse()

	if *scenarioPath == "" {
		fmt.Fprintln(os.Stderr, "usage: geoquery -scenario file.yaml [-config file.yaml] [-map map.yaml] [-seed N] [-wait]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	level, err := logging.ParseLevel(cfg.Logging.GetLevel())
	if err != nil {
		log.Fatalf("❌ Ошибка уровня логирования: %v", err)
	}
	logging.GetLoggerManager().SetDefaultLevel(level)
	defer logging.GetLoggerManager().CloseAll()

	logger := logging.GetToolLogger()

	if *mapPath != "" {
		cfg.Terrain.MapPath = *mapPath
	}
	if *seed != 0 {
		cfg.Terrain.Seed = *seed
	}

	grid, err := loadTerrain(cfg, logging.GetTerrainLogger())
	if err != nil {
		logger.Error("❌ Ошибка загрузки карты: %v", err)
		os.Exit(1)
	}

	s, err := scenario.Load(*scenarioPath)
	if err != nil {
		logger.Error("❌ Ошибка загрузки сценария: %v", err)
		os.Exit(1)
	}

	actors := world.NewActorMap(cfg.Spatial.GetBinSize())
	if err := s.Populate(actors); err != nil {
		logger.Error("❌ Ошибка размещения актёров: %v", err)
		os.Exit(1)
	}
	logger.Info("Актёров: %d, корзин: %d", actors.Count(), actors.BinCount())

	reg := prometheus.NewRegistry()
	queryMetrics := metrics.NewQueryMetrics(reg)

	addr := cfg.Metrics.GetAddr()
	if addr != "" {
		srv := metrics.Serve(addr, reg, func(err error) {
			logger.Error("❌ Ошибка сервера метрик: %v", err)
		})
		defer srv.Close()
		logger.Info("📡 Метрики: http://%s/metrics", addr)
	}

	w := world.NewWorld(actors, grid,
		world.WithMetrics(queryMetrics),
		world.WithLogger(logging.GetWorldLogger()),
	)

	results, sum, err := s.Run(w)
	if err != nil {
		logger.Error("❌ Ошибка выполнения сценария: %v", err)
		os.Exit(1)
	}

	for _, res := range results {
		fmt.Println(formatResult(res))
	}
	fmt.Printf("checksum %016x\n", sum)

	if *wait && addr != "" {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("📡 Получен сигнал %v, завершение работы...", sig)
	}
}

// loadTerrain читает карту из файла или генерирует её по seed
func loadTerrain(cfg *config.Config, logger *logging.Logger) (*terrain.Map, error) {
	if cfg.Terrain.MapPath != "" {
		m, err := terrain.LoadMap(cfg.Terrain.MapPath)
		if err != nil {
			return nil, err
		}
		logger.Info("Карта %s: %dx%d, клетка %d", cfg.Terrain.MapPath, m.Width(), m.Height(), m.CellSize())
		return m, nil
	}

	width, height := cfg.Terrain.GetWidth(), cfg.Terrain.GetHeight()
	m, err := terrain.NewGenerator(cfg.Terrain.Seed).Generate(width, height, cfg.Terrain.GetCellSize())
	if err != nil {
		return nil, err
	}

	kinds := m.CountByKind()
	logger.Info("Сгенерирована карта %dx%d (seed %d): стен %d, обрывов %d",
		width, height, cfg.Terrain.Seed, kinds[terrain.Directional], kinds[terrain.AlwaysBlocks])
	return m, nil
}

func formatResult(res scenario.Result) string {
	name := res.Query.Name
	if name == "" {
		name = "-"
	}

	switch res.Query.Kind {
	case scenario.KindCells:
		cells := make([]string, len(res.Cells))
		for i, c := range res.Cells {
			cells[i] = fmt.Sprintf("(%d,%d)", c.X, c.Y)
		}
		return fmt.Sprintf("%-14s %s %s", res.Query.Kind, name, strings.Join(cells, " "))
	case scenario.KindLineOfSight:
		return fmt.Sprintf("%-14s %s blocked=%t", res.Query.Kind, name, res.Blocked)
	}
	return fmt.Sprintf("%-14s %s [%s]", res.Query.Kind, name, strings.Join(res.Actors, ", "))
}
