package livequery

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collector 收集投递的快照，带通知通道方便测试等待
type collector struct {
	mu    sync.Mutex
	snaps []interface{}
	ch    chan interface{}
}

func newCollector() *collector {
	return &collector{ch: make(chan interface{}, 16)}
}

func (c *collector) deliver(snap interface{}) {
	c.mu.Lock()
	c.snaps = append(c.snaps, snap)
	c.mu.Unlock()
	c.ch <- snap
}

func (c *collector) wait(t *testing.T) interface{} {
	t.Helper()
	select {
	case s := <-c.ch:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot delivery")
		return nil
	}
}

func (c *collector) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.snaps)
}

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	r := NewRegistry()
	c := newCollector()

	sub := r.Subscribe("project:A:tasks", func(ctx context.Context) (interface{}, error) {
		return []string{"t1", "t2"}, nil
	}, c.deliver)
	defer sub.Cancel()

	snap := c.wait(t)
	assert.Equal(t, []string{"t1", "t2"}, snap)
}

func TestNotifyRedeliversFullSnapshot(t *testing.T) {
	r := NewRegistry()
	c := newCollector()

	var mu sync.Mutex
	data := []string{"t1"}

	sub := r.Subscribe("project:A:tasks", func(ctx context.Context) (interface{}, error) {
		mu.Lock()
		defer mu.Unlock()
		out := make([]string, len(data))
		copy(out, data)
		return out, nil
	}, c.deliver)
	defer sub.Cancel()

	c.wait(t)

	mu.Lock()
	data = append(data, "t2")
	mu.Unlock()
	r.Notify("project:A:tasks")

	snap := c.wait(t)
	// 始终是全量快照，不是增量
	assert.Equal(t, []string{"t1", "t2"}, snap)
}

func TestReplaySameSnapshotIsHarmless(t *testing.T) {
	r := NewRegistry()
	c := newCollector()

	sub := r.Subscribe("s", func(ctx context.Context) (interface{}, error) {
		return []string{"a"}, nil
	}, c.deliver)
	defer sub.Cancel()

	first := c.wait(t)
	r.Notify("s")
	second := c.wait(t)
	// 同一快照重复投递，消费方整体替换后状态不变
	assert.Equal(t, first, second)
}

func TestCancelStopsDeliveries(t *testing.T) {
	r := NewRegistry()
	c := newCollector()

	sub := r.Subscribe("s", func(ctx context.Context) (interface{}, error) {
		return "snap", nil
	}, c.deliver)

	c.wait(t)
	sub.Cancel()
	sub.Cancel() // 幂等

	require.Equal(t, 0, r.SubscriberCount("s"))

	r.Notify("s")
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, c.len())
}

func TestScopeSwitchOldScopeSilent(t *testing.T) {
	r := NewRegistry()
	cA := newCollector()
	cB := newCollector()

	fetchFor := func(project string) FetchFunc {
		return func(ctx context.Context) (interface{}, error) {
			return "snapshot-" + project, nil
		}
	}

	// 从项目 A 切到项目 B：先取消 A 的订阅再开 B 的
	subA := r.Subscribe("project:A:tasks", fetchFor("A"), cA.deliver)
	cA.wait(t)
	subA.Cancel()

	subB := r.Subscribe("project:B:tasks", fetchFor("B"), cB.deliver)
	defer subB.Cancel()
	cB.wait(t)

	r.Notify("project:A:tasks")
	r.Notify("project:B:tasks")
	cB.wait(t)

	// A 在取消后没有任何投递
	assert.Equal(t, 1, cA.len())
}

func TestFetchErrorLoggedNotRetried(t *testing.T) {
	r := NewRegistry()
	c := newCollector()

	var mu sync.Mutex
	fail := true

	sub := r.Subscribe("s", func(ctx context.Context) (interface{}, error) {
		mu.Lock()
		defer mu.Unlock()
		if fail {
			return nil, errors.New("transient")
		}
		return "ok", nil
	}, c.deliver)
	defer sub.Cancel()

	// 首次拉取失败：没有投递，也没有自动重试
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 0, c.len())

	mu.Lock()
	fail = false
	mu.Unlock()
	r.Notify("s")
	assert.Equal(t, "ok", c.wait(t))
}

func TestIndependentSubscriptionsNoCrossOrdering(t *testing.T) {
	r := NewRegistry()
	c1 := newCollector()
	c2 := newCollector()

	s1 := r.Subscribe("tasks", func(ctx context.Context) (interface{}, error) { return "tasks", nil }, c1.deliver)
	s2 := r.Subscribe("notifications", func(ctx context.Context) (interface{}, error) { return "notifications", nil }, c2.deliver)
	defer s1.Cancel()
	defer s2.Cancel()

	assert.Equal(t, "tasks", c1.wait(t))
	assert.Equal(t, "notifications", c2.wait(t))

	// 同一次业务变更触发两个独立流，互不阻塞、各自收到自己的快照
	r.Notify("tasks")
	r.Notify("notifications")
	assert.Equal(t, "tasks", c1.wait(t))
	assert.Equal(t, "notifications", c2.wait(t))
}
