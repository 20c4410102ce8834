package world

import (
	"github.com/annel0/rts-spatial/internal/geom"
	"github.com/annel0/rts-spatial/internal/logging"
	"github.com/annel0/rts-spatial/internal/metrics"
	"github.com/annel0/rts-spatial/internal/terrain"
	"github.com/annel0/rts-spatial/internal/vec"
)

// World связывает индекс актёров и карту местности для запросов одного тика симуляции.
// Все запросы только читают состояние и не пишут в лог.
type World struct {
	actors  ActorIndex
	terrain terrain.FacingMap
	metrics *metrics.QueryMetrics
	logger  *logging.Logger
}

// Option настраивает World
type Option func(*World)

// WithMetrics включает учёт запросов в Prometheus
func WithMetrics(m *metrics.QueryMetrics) Option {
	return func(w *World) { w.metrics = m }
}

// WithLogger задаёт логгер компонента
func WithLogger(l *logging.Logger) Option {
	return func(w *World) { w.logger = l }
}

// NewWorld создаёт контекст запросов
func NewWorld(actors ActorIndex, facings terrain.FacingMap, opts ...Option) *World {
	w := &World{
		actors:  actors,
		terrain: facings,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.logger.Debug("Контекст запросов создан: индекс %T, местность %T", actors, facings)
	return w
}

// Actors возвращает индекс актёров
func (w *World) Actors() ActorIndex { return w.actors }

// Terrain возвращает карту местности
func (w *World) Terrain() terrain.FacingMap { return w.terrain }

// FindActorsOnLine возвращает актёров, задетых линией ширины lineWidth
func (w *World) FindActorsOnLine(lineStart, lineEnd vec.WPos, lineWidth vec.WDist, onlyBlockers bool) []Actor {
	actors, candidates := actorsOnLine(w.actors, lineStart, lineEnd, lineWidth, onlyBlockers)

	kind := metrics.KindLine
	if onlyBlockers {
		kind = metrics.KindBlockingLine
	}
	w.metrics.ObserveActorQuery(kind, candidates, len(actors))
	return actors
}

// FindBlockingActorsOnLine - FindActorsOnLine по радиусам блокирующих актёров
func (w *World) FindBlockingActorsOnLine(lineStart, lineEnd vec.WPos, lineWidth vec.WDist) []Actor {
	return w.FindActorsOnLine(lineStart, lineEnd, lineWidth, true)
}

// FindActorsOnCircle возвращает актёров, формы которых могут пересекать круг
func (w *World) FindActorsOnCircle(origin vec.WPos, radius vec.WDist) []Actor {
	actors := FindActorsOnCircle(w.actors, origin, radius)
	w.metrics.ObserveActorQuery(metrics.KindCircle, len(actors), len(actors))
	return actors
}

// FindActorsInCircle возвращает актёров, центр которых лежит в круге, без расширения радиуса
func (w *World) FindActorsInCircle(origin vec.WPos, radius vec.WDist) []Actor {
	actors := w.actors.ActorsInCircle(origin, radius)
	w.metrics.ObserveActorQuery(metrics.KindInCircle, len(actors), len(actors))
	return actors
}

// CellsOnLine возвращает клетки местности на отрезке
func (w *World) CellsOnLine(lineStart, lineEnd vec.WPos) []vec.CPos {
	cells := geom.CellsOnLine(w.terrain, lineStart, lineEnd)
	w.metrics.ObserveTraversal(len(cells))
	return cells
}

// BlocksLineOfSight проверяет, перекрывает ли местность линию from–to
func (w *World) BlocksLineOfSight(from, to vec.WPos) bool {
	return w.TraceLineOfSight(from, to).Blocked
}

// TraceLineOfSight - BlocksLineOfSight с подробностями прохода
func (w *World) TraceLineOfSight(from, to vec.WPos) terrain.Sight {
	sight := terrain.TraceLineOfSight(w.terrain, from, to)
	w.metrics.ObserveLineOfSight(sight.Scanned, sight.Blocked)
	return sight
}
