package sampling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"cellforge/internal/geom"
	"cellforge/internal/topology"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEvalBatchPreservesOrder(t *testing.T) {
	halve := topology.NewMap("halve", geom.Disk(1), geom.Disk(1),
		func(p topology.Point) topology.Point {
			return p.(geom.Vec).Scale(0.5)
		})

	pts := make([]topology.Point, 0, 17)
	for x := -1.0; x <= 1.0; x += 0.125 {
		pts = append(pts, geom.Vec{x})
	}

	out, err := EvalBatch(context.Background(), halve, pts, 4)
	require.NoError(t, err)
	require.Len(t, out, len(pts))
	for i, p := range pts {
		want := p.(geom.Vec).Scale(0.5)
		assert.True(t, topology.Equal(out[i], want, 1e-12), "index %d", i)
	}
}

func TestEvalBatchDefaultWorkers(t *testing.T) {
	id := topology.Identity(geom.Disk(1))
	out, err := EvalBatch(context.Background(), id, []topology.Point{geom.Vec{0.5}}, 0)
	require.NoError(t, err)
	assert.True(t, topology.Equal(out[0], geom.Vec{0.5}, 0))
}

func TestEvalBatchConvertsPanicToError(t *testing.T) {
	id := topology.Identity(geom.Disk(1))

	// Vec{2} is outside the disk, so At panics inside the worker.
	_, err := EvalBatch(context.Background(), id, []topology.Point{geom.Vec{0}, geom.Vec{2}}, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside domain")
}

func TestEvalBatchCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	id := topology.Identity(geom.Disk(1))
	pts := make([]topology.Point, 64)
	for i := range pts {
		pts[i] = geom.Vec{0}
	}
	_, err := EvalBatch(ctx, id, pts, 2)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEvalBatchEmpty(t *testing.T) {
	id := topology.Identity(geom.Disk(1))
	out, err := EvalBatch(context.Background(), id, nil, 3)
	require.NoError(t, err)
	assert.Empty(t, out)
}
