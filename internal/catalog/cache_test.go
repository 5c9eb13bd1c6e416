package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rec "automation-coach/internal/recommendations"
)

type countingRepo struct {
	*MemoryRepo
	lists int
}

func (r *countingRepo) ListActive(ctx context.Context) ([]rec.Tool, error) {
	r.lists++
	return r.MemoryRepo.ListActive(ctx)
}

func newCachedFixture(t *testing.T) (*CachedRepo, *countingRepo, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	inner := &countingRepo{MemoryRepo: NewMemoryRepo(
		tool("1", "ChatGPT", rec.CategoryDocument, 100, true),
		tool("2", "Otter.ai", rec.CategoryMeeting, 80, true),
	)}
	return NewCachedRepo(inner, client, time.Minute), inner, mr
}

func TestCachedRepoServesSnapshotAfterMiss(t *testing.T) {
	ctx := context.Background()
	cached, inner, mr := newCachedFixture(t)

	first, err := cached.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.True(t, mr.Exists(activeToolsKey))

	second, err := cached.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.lists)

	counts, err := cached.CategoryCounts(ctx)
	require.NoError(t, err)
	assert.Len(t, counts, 2)
	assert.Equal(t, 1, inner.lists)
}

func TestCachedRepoExpiresSnapshot(t *testing.T) {
	ctx := context.Background()
	cached, inner, mr := newCachedFixture(t)

	_, err := cached.ListActive(ctx)
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)

	_, err = cached.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.lists)
}

func TestCachedRepoUpsertInvalidates(t *testing.T) {
	ctx := context.Background()
	cached, _, mr := newCachedFixture(t)

	_, err := cached.ListActive(ctx)
	require.NoError(t, err)
	require.True(t, mr.Exists(activeToolsKey))

	require.NoError(t, cached.Upsert(ctx, []rec.Tool{tool("3", "Midjourney", rec.CategoryImageGen, 90, true)}))
	assert.False(t, mr.Exists(activeToolsKey))

	tools, err := cached.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, tools, 3)
}

func TestCachedRepoFallsBackWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	cached, inner, mr := newCachedFixture(t)
	mr.Close()

	tools, err := cached.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, tools, 2)
	assert.Equal(t, 1, inner.lists)

	n, err := cached.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCachedRepoIgnoresCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	cached, inner, mr := newCachedFixture(t)
	require.NoError(t, mr.Set(activeToolsKey, "{not json"))

	tools, err := cached.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, tools, 2)
	assert.Equal(t, 1, inner.lists)
}
