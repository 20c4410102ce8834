package world

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/rts-spatial/internal/metrics"
	"github.com/annel0/rts-spatial/internal/terrain"
	"github.com/annel0/rts-spatial/internal/vec"
)

func newTestActorMap(t *testing.T, units ...*Unit) *ActorMap {
	t.Helper()
	m := NewActorMap(2048)
	for _, u := range units {
		require.NoError(t, m.Add(u))
	}
	return m
}

func ids(actors []Actor) []uuid.UUID {
	return ActorIDs(actors)
}

func TestFindActorsOnLine_ActorTouchedByThinLine(t *testing.T) {
	unit := NewUnit(vec.WPos{X: 0, Y: 0}, 10, false)
	m := newTestActorMap(t, unit)

	actors := FindActorsOnLine(m, vec.WPos{X: -100, Y: 5}, vec.WPos{X: 100, Y: 5}, 0, false)
	assert.Equal(t, []uuid.UUID{unit.ID()}, ids(actors), "расстояние 5 <= 10 + 0")
}

func TestFindActorsOnLine_ActorOutsideWidth(t *testing.T) {
	unit := NewUnit(vec.WPos{X: 0, Y: 0}, 10, false)
	m := newTestActorMap(t, unit)

	actors := FindActorsOnLine(m, vec.WPos{X: -100, Y: 20}, vec.WPos{X: 100, Y: 20}, 5, false)
	assert.Empty(t, actors, "расстояние 20 > 10 + 5")

	actors = FindActorsOnLine(m, vec.WPos{X: -100, Y: 20}, vec.WPos{X: 100, Y: 20}, 10, false)
	assert.Len(t, actors, 1, "ровно на границе 20 <= 10 + 10 актёр задет")
}

func TestFindActorsOnLine_SegmentEnds(t *testing.T) {
	// Актёр за концом отрезка: расстояние считается до ближайшего конца, а не до бесконечной прямой
	behind := NewUnit(vec.WPos{X: 300, Y: 0}, 50, false)
	m := newTestActorMap(t, behind)

	assert.Empty(t, FindActorsOnLine(m, vec.WPos{X: 0, Y: 0}, vec.WPos{X: 200, Y: 0}, 20, false))
	assert.Len(t, FindActorsOnLine(m, vec.WPos{X: 0, Y: 0}, vec.WPos{X: 240, Y: 0}, 20, false), 1)
}

func TestFindActorsOnLine_ShapesAndOrder(t *testing.T) {
	noShape := NewUnit(vec.WPos{X: 100, Y: 0}, 0, false)
	disabled := NewUnit(vec.WPos{X: 200, Y: 40}, 0, false)
	disabled.AddShape(&CircleShape{Radius: 100, Enabled: false})
	disabled.AddShape(&CircleShape{Radius: 10, Enabled: true})
	big := NewUnit(vec.WPos{X: 300, Y: 90}, 95, false)
	far := NewUnit(vec.WPos{X: 400, Y: 5000}, 95, false)

	m := newTestActorMap(t, big, noShape, far, disabled)

	actors := FindActorsOnLine(m, vec.WPos{X: 0, Y: 0}, vec.WPos{X: 1000, Y: 0}, 0, false)
	assert.Equal(t, []uuid.UUID{big.ID(), noShape.ID()}, ids(actors),
		"порядок должен совпадать с порядком индекса; выключенная форма не учитывается")

	actors = FindActorsOnLine(m, vec.WPos{X: 0, Y: 0}, vec.WPos{X: 1000, Y: 0}, 30, false)
	assert.Equal(t, []uuid.UUID{big.ID(), noShape.ID(), disabled.ID()}, ids(actors))
}

func TestFindActorsOnLine_MonotonicInWidth(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	m := NewActorMap(1024)
	for i := 0; i < 300; i++ {
		pos := vec.WPos{X: int32(rng.Intn(20000) - 10000), Y: int32(rng.Intn(20000) - 10000)}
		require.NoError(t, m.Add(NewUnit(pos, vec.WDist(rng.Intn(400)), rng.Intn(2) == 0)))
	}

	for i := 0; i < 100; i++ {
		start := vec.WPos{X: int32(rng.Intn(20000) - 10000), Y: int32(rng.Intn(20000) - 10000)}
		end := vec.WPos{X: int32(rng.Intn(20000) - 10000), Y: int32(rng.Intn(20000) - 10000)}
		narrow := vec.WDist(rng.Intn(500))
		wide := narrow + vec.WDist(rng.Intn(500))

		wideSet := make(map[uuid.UUID]bool)
		for _, a := range FindActorsOnLine(m, start, end, wide, false) {
			wideSet[a.ID()] = true
		}
		for _, a := range FindActorsOnLine(m, start, end, narrow, false) {
			assert.True(t, wideSet[a.ID()], "актёр %s пропал при увеличении ширины %d -> %d", a.ID(), narrow, wide)
		}
	}
}

func TestFindActorsOnLine_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	m := NewActorMap(512)
	var all []*Unit
	for i := 0; i < 200; i++ {
		pos := vec.WPos{X: int32(rng.Intn(16000) - 8000), Y: int32(rng.Intn(16000) - 8000)}
		u := NewUnit(pos, vec.WDist(rng.Intn(600)), false)
		all = append(all, u)
		require.NoError(t, m.Add(u))
	}

	for i := 0; i < 50; i++ {
		start := vec.WPos{X: int32(rng.Intn(16000) - 8000), Y: int32(rng.Intn(16000) - 8000)}
		end := vec.WPos{X: int32(rng.Intn(16000) - 8000), Y: int32(rng.Intn(16000) - 8000)}
		width := vec.WDist(rng.Intn(300))

		got := make(map[uuid.UUID]bool)
		for _, a := range FindActorsOnLine(m, start, end, width, false) {
			got[a.ID()] = true
		}

		// Прямоугольник поиска не должен терять ни одного задетого актёра
		for _, u := range all {
			reach := int64(ActorRadius(u)) + int64(width)
			p := u.CenterPosition()
			closest := closestForTest(start, end, p)
			want := p.Sub(closest).HorizontalLengthSquared() <= reach*reach
			assert.Equal(t, want, got[u.ID()], "актёр %v, линия %v–%v, ширина %d", p, start, end, width)
		}
	}
}

// closestForTest считает ту же проекцию независимо, через float64
func closestForTest(a, b, p vec.WPos) vec.WPos {
	dx, dy := float64(a.X-b.X), float64(a.Y-b.Y)
	l := dx*dx + dy*dy
	if l == 0 {
		return b
	}
	t := (float64(p.X-b.X)*dx + float64(p.Y-b.Y)*dy)
	if t < 0 {
		return b
	}
	if t > l {
		return a
	}
	return vec.Lerp(b, a, int64(t), int64(l))
}

func TestFindBlockingActorsOnLine_UsesBlockingRadius(t *testing.T) {
	blocker := NewUnit(vec.WPos{X: 0, Y: 0}, 100, true)
	// Огромный неблокирующий актёр расширяет обычный поиск, но не блокирующий
	giant := NewUnit(vec.WPos{X: 3500, Y: 0}, 3000, false)
	m := newTestActorMap(t, blocker, giant)

	assert.Equal(t, vec.WDist(3000), m.LargestActorRadius())
	assert.Equal(t, vec.WDist(100), m.LargestBlockingActorRadius())

	start, end := vec.WPos{X: -1000, Y: 50}, vec.WPos{X: 1000, Y: 50}
	assert.Equal(t, []uuid.UUID{blocker.ID(), giant.ID()}, ids(FindActorsOnLine(m, start, end, 0, false)))
	assert.Equal(t, []uuid.UUID{blocker.ID()}, ids(FindBlockingActorsOnLine(m, start, end, 0)))
}

func TestFindActorsOnCircle_WidenedByLargestRadius(t *testing.T) {
	small := NewUnit(vec.WPos{X: 100, Y: 0}, 10, false)
	edge := NewUnit(vec.WPos{X: 0, Y: 600}, 200, false)
	m := newTestActorMap(t, small, edge)

	assert.Equal(t, []uuid.UUID{small.ID()}, ids(m.ActorsInCircle(vec.WPos{}, 500)))
	assert.ElementsMatch(t, []uuid.UUID{small.ID(), edge.ID()}, ids(FindActorsOnCircle(m, vec.WPos{}, 500)))
	assert.Empty(t, FindActorsOnCircle(m, vec.WPos{X: 5000}, 100))
}

func TestActorMap_AddUpdateRemove(t *testing.T) {
	a := NewUnit(vec.WPos{X: 10, Y: 10}, 50, true)
	b := NewUnit(vec.WPos{X: 20, Y: 20}, 80, false)
	c := NewUnit(vec.WPos{X: -3000, Y: 10}, 30, true)
	m := newTestActorMap(t, a, b, c)

	assert.ErrorIs(t, m.Add(a), ErrDuplicateActor)
	assert.Equal(t, 3, m.Count())
	assert.Equal(t, 2, m.BinCount())
	assert.Equal(t, vec.WDist(80), m.LargestActorRadius())
	assert.Equal(t, vec.WDist(50), m.LargestBlockingActorRadius())

	// Построчный обход ячеек: сначала ячейка x=-2, затем x=0 в порядке добавления
	box := m.ActorsInBox(vec.WPos{X: 5000, Y: 5000}, vec.WPos{X: -5000, Y: -5000})
	assert.Equal(t, []uuid.UUID{c.ID(), a.ID(), b.ID()}, ids(box))

	// Перемещение внутри ячейки сохраняет порядок
	a.SetCenterPosition(vec.WPos{X: 30, Y: 30})
	m.Update(a)
	assert.Equal(t, []uuid.UUID{c.ID(), a.ID(), b.ID()}, ids(m.ActorsInBox(vec.WPos{X: 5000, Y: 5000}, vec.WPos{X: -5000, Y: -5000})))

	// Перемещение в другую ячейку
	a.SetCenterPosition(vec.WPos{X: 4000, Y: 10})
	m.Update(a)
	assert.Empty(t, m.ActorsInBox(vec.WPos{X: 3990, Y: 0}, vec.WPos{X: 3999, Y: 20}))
	assert.Equal(t, []uuid.UUID{a.ID()}, ids(m.ActorsInBox(vec.WPos{X: 3990, Y: 0}, vec.WPos{X: 4000, Y: 20})))

	// Выключение формы уменьшает наибольший блокирующий радиус
	a.Shapes()[0].(*CircleShape).Enabled = false
	m.Update(a)
	assert.Equal(t, vec.WDist(30), m.LargestBlockingActorRadius())

	assert.True(t, m.Remove(b.ID()))
	assert.False(t, m.Remove(b.ID()))
	assert.Equal(t, vec.WDist(30), m.LargestActorRadius())
	assert.Equal(t, 2, m.Count())
}

func TestActorMap_UpdateUnknownAdds(t *testing.T) {
	m := NewActorMap(0)
	u := NewUnit(vec.WPos{X: -1, Y: -1}, 5, true)
	m.Update(u)

	assert.Equal(t, 1, m.Count())
	assert.Equal(t, vec.WDist(5), m.LargestBlockingActorRadius())
	assert.Len(t, m.ActorsInCircle(vec.WPos{}, 2), 1, "граница круга включительно: 1+1 <= 4")
}

func TestWorld_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	qm := metrics.NewQueryMetrics(reg)

	grid, err := terrain.NewMap(8, 8, 1024)
	require.NoError(t, err)
	grid.SetFacing(vec.CPos{X: 2, Y: 1}, terrain.TileFacing{Kind: terrain.AlwaysBlocks})

	actors := newTestActorMap(t, NewUnit(vec.WPos{X: 1536, Y: 512}, 100, true))
	w := NewWorld(actors, grid, WithMetrics(qm))

	assert.Len(t, w.FindActorsOnLine(vec.WPos{X: 0, Y: 512}, vec.WPos{X: 4096, Y: 512}, 0, false), 1)
	assert.Len(t, w.FindBlockingActorsOnLine(vec.WPos{X: 0, Y: 512}, vec.WPos{X: 4096, Y: 512}, 0), 1)
	assert.Len(t, w.FindActorsOnCircle(vec.WPos{X: 1536, Y: 600}, 10), 1)
	assert.Empty(t, w.FindActorsInCircle(vec.WPos{X: 1536, Y: 600}, 10))

	assert.Equal(t, []vec.CPos{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 3, Y: 1}},
		w.CellsOnLine(vec.WPos{X: 0, Y: 0}, vec.WPos{X: 3072, Y: 1024}))
	assert.True(t, w.BlocksLineOfSight(vec.WPos{X: 0, Y: 0}, vec.WPos{X: 3072, Y: 1024}))
	assert.False(t, w.BlocksLineOfSight(vec.WPos{X: 0, Y: 0}, vec.WPos{X: 3072, Y: 0}))

	families, err := reg.Gather()
	require.NoError(t, err)

	perKind := make(map[string]float64)
	for _, mf := range families {
		if mf.GetName() != "spatial_queries_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				perKind[label.GetValue()] += metric.GetCounter().GetValue()
			}
		}
	}

	assert.Equal(t, map[string]float64{
		metrics.KindLine:         1,
		metrics.KindBlockingLine: 1,
		metrics.KindCircle:       1,
		metrics.KindInCircle:     1,
		metrics.KindCells:        1,
		metrics.KindLineOfSight:  2,
	}, perKind)
}
