package dataloader

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID   int
	Name string
}

// recorder is a batch function that records every call.
type recorder struct {
	calls [][]int
	err   error
}

func (r *recorder) fetch(_ context.Context, ids []int) ([]*row, error) {
	r.calls = append(r.calls, append([]int(nil), ids...))
	if r.err != nil {
		return nil, r.err
	}
	rows := make([]*row, len(ids))
	for i, id := range ids {
		if id < 0 {
			continue // missing
		}
		rows[i] = &row{ID: id, Name: fmt.Sprintf("ID %d", id)}
	}
	return rows, nil
}

func TestLoadBatchesPendingKeys(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	loader := New(rec.fetch)

	var thunks []Thunk[*row]
	for _, id := range []int{18, 55, 82} {
		thunks = append(thunks, loader.Load(ctx, id))
	}
	require.Empty(t, rec.calls, "Load must not fetch")
	require.Equal(t, 3, loader.Pending())

	for i, want := range []string{"ID 18", "ID 55", "ID 82"} {
		got, err := thunks[i]()
		require.NoError(t, err)
		require.Equal(t, want, got.Name)
	}
	require.Equal(t, [][]int{{18, 55, 82}}, rec.calls)
	require.Zero(t, loader.Pending())
}

func TestLoadDeduplicatesKeys(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	loader := New(rec.fetch)

	a1 := loader.Load(ctx, 7)
	b := loader.Load(ctx, 9)
	a2 := loader.Load(ctx, 7)
	a3 := loader.Load(ctx, 7)

	v1, err := a1()
	require.NoError(t, err)
	v2, err := a2()
	require.NoError(t, err)
	v3, err := a3()
	require.NoError(t, err)
	_, err = b()
	require.NoError(t, err)

	require.Same(t, v1, v2)
	require.Same(t, v1, v3)
	require.Equal(t, [][]int{{7, 9}}, rec.calls)
}

func TestLoadCachesAcrossBatches(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	loader := New(rec.fetch)

	first, err := loader.Load(ctx, 1)()
	require.NoError(t, err)
	again, err := loader.Load(ctx, 1)()
	require.NoError(t, err)

	require.Same(t, first, again)
	require.Len(t, rec.calls, 1)
}

func TestLoadMissingKey(t *testing.T) {
	rec := &recorder{}
	loader := New(rec.fetch)

	got, err := loader.Load(context.Background(), -1)()
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestPrime(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	loader := New(rec.fetch)

	primed := &row{ID: 3, Name: "primed"}
	loader.Prime(3, primed)
	got, err := loader.Load(ctx, 3)()
	require.NoError(t, err)
	require.Same(t, primed, got)
	require.Empty(t, rec.calls)

	// no-op for cached keys
	loader.Prime(3, &row{ID: 3, Name: "other"})
	got, err = loader.Load(ctx, 3)()
	require.NoError(t, err)
	require.Equal(t, "primed", got.Name)
}

func TestPrimePendingKeyIsNoop(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	loader := New(rec.fetch)

	thunk := loader.Load(ctx, 4)
	loader.Prime(4, &row{ID: 4, Name: "primed"})
	got, err := thunk()
	require.NoError(t, err)
	require.Equal(t, "ID 4", got.Name)
	require.Equal(t, [][]int{{4}}, rec.calls)
}

func TestClearForcesRefetch(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	loader := New(rec.fetch)

	_, err := loader.Load(ctx, 5)()
	require.NoError(t, err)
	loader.Clear(5)
	_, err = loader.Load(ctx, 5)()
	require.NoError(t, err)
	require.Equal(t, [][]int{{5}, {5}}, rec.calls)

	loader.Prime(6, &row{ID: 6})
	loader.Clear(6)
	_, err = loader.Load(ctx, 6)()
	require.NoError(t, err)
	require.Equal(t, [][]int{{5}, {5}, {6}}, rec.calls)
}

func TestClearPendingKey(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	loader := New(rec.fetch)

	orphan := loader.Load(ctx, 1)
	other := loader.Load(ctx, 2)
	loader.Clear(1)
	require.Equal(t, 1, loader.Pending())

	_, err := other()
	require.NoError(t, err)
	got, err := orphan()
	require.NoError(t, err)
	require.Equal(t, 1, got.ID)
	require.Equal(t, [][]int{{2}, {1}}, rec.calls)
}

func TestFailureIsSharedAndNotCached(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{err: errors.New("connection reset")}
	loader := New(rec.fetch)

	t1 := loader.Load(ctx, 1)
	t2 := loader.Load(ctx, 2)
	_, err1 := t1()
	_, err2 := t2()
	require.EqualError(t, err1, "connection reset")
	require.Same(t, err1, err2)
	require.Len(t, rec.calls, 1)

	rec.err = nil
	got, err := loader.Load(ctx, 1)()
	require.NoError(t, err)
	require.Equal(t, "ID 1", got.Name)
	require.Equal(t, [][]int{{1, 2}, {1}}, rec.calls)
}

func TestShortResultFailsBatch(t *testing.T) {
	loader := New(func(_ context.Context, keys []string) ([]int, error) {
		return []int{1}, nil
	})
	ctx := context.Background()
	a := loader.Load(ctx, "a")
	loader.Load(ctx, "b")

	_, err := a()
	require.EqualError(t, err, "dataloader: batch function returned 1 values for 2 keys")
}

func TestFlushIsExplicitBoundary(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	loader := New(rec.fetch)

	loader.Load(ctx, 1)
	loader.Load(ctx, 2)
	loader.Flush(ctx)
	require.Equal(t, [][]int{{1, 2}}, rec.calls)

	loader.Load(ctx, 3)
	loader.Flush(ctx)
	loader.Flush(ctx)
	require.Equal(t, [][]int{{1, 2}, {3}}, rec.calls)
}

func TestMaxBatch(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	loader := New(rec.fetch, WithMaxBatch(2))

	thunks := make([]Thunk[*row], 0, 5)
	for id := 1; id <= 5; id++ {
		thunks = append(thunks, loader.Load(ctx, id))
	}
	for _, thunk := range thunks {
		_, err := thunk()
		require.NoError(t, err)
	}
	require.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, rec.calls)
}

func TestLoadMany(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	loader := New(rec.fetch)
	loader.Prime(2, &row{ID: 2, Name: "primed"})

	rows, err := loader.LoadMany(ctx, []int{3, 2, -1, 3})()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	require.Equal(t, "ID 3", rows[0].Name)
	require.Equal(t, "primed", rows[1].Name)
	require.Nil(t, rows[2])
	require.Same(t, rows[0], rows[3])
	require.Equal(t, [][]int{{3, -1}}, rec.calls)
}

func TestLoadManyFailure(t *testing.T) {
	rec := &recorder{err: errors.New("boom")}
	loader := New(rec.fetch)

	rows, err := loader.LoadMany(context.Background(), []int{1, 2})()
	require.Error(t, err)
	require.Nil(t, rows)
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	loader := New(rec.fetch)

	_, err := loader.LoadMany(ctx, []int{1, 2})()
	require.NoError(t, err)
	loader.ClearAll()
	_, err = loader.LoadMany(ctx, []int{1, 2})()
	require.NoError(t, err)
	require.Len(t, rec.calls, 2)
}
