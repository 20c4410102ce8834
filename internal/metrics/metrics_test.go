package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestQueryMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	qm := NewQueryMetrics(reg)

	qm.ObserveActorQuery(KindLine, 10, 2)
	qm.ObserveActorQuery(KindLine, 4, 0)
	qm.ObserveActorQuery(KindCircle, 1, 1)
	qm.ObserveLineOfSight(5, true)
	qm.ObserveLineOfSight(3, false)
	qm.ObserveTraversal(7)

	assert.Equal(t, 2.0, testutil.ToFloat64(qm.queries.WithLabelValues(KindLine)))
	assert.Equal(t, 1.0, testutil.ToFloat64(qm.queries.WithLabelValues(KindCircle)))
	assert.Equal(t, 2.0, testutil.ToFloat64(qm.queries.WithLabelValues(KindLineOfSight)))
	assert.Equal(t, 1.0, testutil.ToFloat64(qm.queries.WithLabelValues(KindCells)))
	assert.Equal(t, 1.0, testutil.ToFloat64(qm.blocked))

	count, err := testutil.GatherAndCount(reg, "spatial_cells_scanned")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestQueryMetrics_NilIsNoop(t *testing.T) {
	var qm *QueryMetrics
	assert.NotPanics(t, func() {
		qm.ObserveActorQuery(KindLine, 1, 1)
		qm.ObserveLineOfSight(1, true)
		qm.ObserveTraversal(1)
	})
}
