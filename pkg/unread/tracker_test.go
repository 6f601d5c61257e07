package unread

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu      sync.Mutex
	markers map[string]time.Time
	sets    int
}

func newMemStore() *memStore {
	return &memStore{markers: make(map[string]time.Time)}
}

func (s *memStore) Get(_ context.Context, key string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markers[key], nil
}

func (s *memStore) Set(_ context.Context, key string, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markers[key] = t
	s.sets++
	return nil
}

func ts(t time.Time) *time.Time {
	return &t
}

func TestViewingModePinsZeroAndAdvancesMarker(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	tr := NewTracker(ctx, store, "p1:u1:chat", "u1")
	tr.SetViewing(ctx, true)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= 3; i++ {
		n := tr.Apply(ctx, []Record{
			{ID: "m1", AuthorID: "u2", Timestamp: ts(base.Add(time.Duration(i) * time.Minute))},
		})
		assert.Equal(t, 0, n)
		assert.Equal(t, base.Add(time.Duration(i)*time.Minute), tr.Marker())
	}

	// 每次推进都立即持久化
	require.Equal(t, 3, store.sets)
	assert.Equal(t, base.Add(3*time.Minute), store.markers["p1:u1:chat"])
}

func TestAwayModeCountsNewerForeignRecords(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.markers["p1:u1:chat"] = t0

	tr := NewTracker(ctx, store, "p1:u1:chat", "u1")

	// marker = T0；到达 [T0-1(本人), T0+1(他人), T0+2(他人)] → 未读 2
	n := tr.Apply(ctx, []Record{
		{ID: "a", AuthorID: "u1", Timestamp: ts(t0.Add(-time.Second))},
		{ID: "b", AuthorID: "u2", Timestamp: ts(t0.Add(time.Second))},
		{ID: "c", AuthorID: "u3", Timestamp: ts(t0.Add(2 * time.Second))},
	})
	assert.Equal(t, 2, n)
	// 离开模式不会动标记
	assert.Equal(t, t0, tr.Marker())
}

func TestAwayModeExcludesOwnAndOlder(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newMemStore()
	store.markers["k"] = t0
	tr := NewTracker(ctx, store, "k", "me")

	n := tr.Apply(ctx, []Record{
		{ID: "old", AuthorID: "other", Timestamp: ts(t0.Add(-time.Hour))},
		{ID: "mine", AuthorID: "me", Timestamp: ts(t0.Add(time.Hour))},
	})
	assert.Equal(t, 0, n)
}

func TestMissingServerTimestampAlwaysUnread(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	// 标记在很远的未来，没有时间戳的记录依然算未读
	store.markers["k"] = time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := NewTracker(ctx, store, "k", "me")

	n := tr.Apply(ctx, []Record{
		{ID: "pending", AuthorID: "other", Timestamp: nil},
	})
	assert.Equal(t, 1, n)

	// 本人发的乐观写入不计数
	n = tr.Apply(ctx, []Record{
		{ID: "pending", AuthorID: "me", Timestamp: nil},
	})
	assert.Equal(t, 0, n)
}

func TestSwitchToViewingZeroesAndFastForwards(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	tr := NewTracker(ctx, store, "k", "me")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	n := tr.Apply(ctx, []Record{
		{ID: "a", AuthorID: "other", Timestamp: ts(base)},
		{ID: "b", AuthorID: "other", Timestamp: ts(base.Add(time.Minute))},
	})
	require.Equal(t, 2, n)

	tr.SetViewing(ctx, true)
	assert.Equal(t, 0, tr.Count())
	assert.Equal(t, base.Add(time.Minute), tr.Marker())
	require.Equal(t, 1, store.sets)

	// 查看中 → 离开：标记停在切换瞬间
	tr.SetViewing(ctx, false)
	assert.Equal(t, base.Add(time.Minute), tr.Marker())

	// 之后到达的新消息正常累积，旧的不被重复计数
	n = tr.Apply(ctx, []Record{
		{ID: "a", AuthorID: "other", Timestamp: ts(base)},
		{ID: "b", AuthorID: "other", Timestamp: ts(base.Add(time.Minute))},
		{ID: "c", AuthorID: "other", Timestamp: ts(base.Add(2 * time.Minute))},
	})
	assert.Equal(t, 1, n)
}

func TestReplaySameSnapshotIsIdempotent(t *testing.T) {
	ctx := context.Background()
	tr := NewTracker(ctx, newMemStore(), "k", "me")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	snap := []Record{
		{ID: "a", AuthorID: "other", Timestamp: ts(base)},
		{ID: "b", AuthorID: "other", Timestamp: ts(base.Add(time.Minute))},
	}
	first := tr.Apply(ctx, snap)
	second := tr.Apply(ctx, snap)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, second)
}

func TestDisplayCountCap(t *testing.T) {
	assert.Equal(t, "", DisplayCount(0))
	assert.Equal(t, "1", DisplayCount(1))
	assert.Equal(t, "9", DisplayCount(9))
	assert.Equal(t, "9+", DisplayCount(10))
	assert.Equal(t, "9+", DisplayCount(137))
}
