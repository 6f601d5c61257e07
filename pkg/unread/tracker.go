package unread

import (
	"context"
	"strconv"
	"sync"
	"time"

	"Nexus/pkg/zlog"
)

// Record 未读统计所需的最小字段。
// Timestamp 为 nil 表示该条记录还没有拿到服务端时间戳
// （本地乐观写入尚未回传），一律按"刚刚发生"处理。
type Record struct {
	ID        string
	AuthorID  string
	Timestamp *time.Time
}

// MarkerStore 已读位置的持久化。key 由调用方拼好
// （userID + projectID + 流类型），同一查看者同一设备维度。
type MarkerStore interface {
	// Get 不存在时返回零值时间，不报错
	Get(ctx context.Context, key string) (time.Time, error)
	Set(ctx context.Context, key string, t time.Time) error
}

// Tracker 单条流、单个查看者的未读计数器。
//
// 两种互斥的模式：
//   - 查看中（对应界面已打开）：未读数恒为 0，每次快照到达都把
//     已读标记推进到快照里最新的服务端时间戳并立即持久化；
//   - 离开（界面关闭）：每次快照到达重算未读数 =
//     时间戳晚于标记、且作者不是本人的记录条数。
type Tracker struct {
	mu       sync.Mutex
	store    MarkerStore
	key      string
	viewerID string

	viewing bool
	marker  time.Time
	latest  time.Time
	count   int
}

// NewTracker 创建并加载持久化的已读标记，加载失败按"从未读过"处理
func NewTracker(ctx context.Context, store MarkerStore, key string, viewerID string) *Tracker {
	t := &Tracker{
		store:    store,
		key:      key,
		viewerID: viewerID,
	}
	if store != nil {
		m, err := store.Get(ctx, key)
		if err != nil {
			zlog.Error("unread marker load failed: key=" + key + " err=" + err.Error())
		} else {
			t.marker = m
			t.latest = m
		}
	}
	return t
}

// Apply 消费一次完整快照，返回最新未读数。
// 同一快照重复投递不会改变结果（整体替换，天然幂等）。
func (t *Tracker) Apply(ctx context.Context, records []Record) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, r := range records {
		if r.Timestamp != nil && r.Timestamp.After(t.latest) {
			t.latest = *r.Timestamp
		}
	}

	if t.viewing {
		t.count = 0
		if t.latest.After(t.marker) {
			t.marker = t.latest
			t.persist(ctx)
		}
		return 0
	}

	n := 0
	for _, r := range records {
		if r.AuthorID == t.viewerID {
			continue
		}
		// 无服务端时间戳的记录永远算未读
		if r.Timestamp == nil || r.Timestamp.After(t.marker) {
			n++
		}
	}
	t.count = n
	return n
}

// SetViewing 切换模式。
// 离开 → 查看中：未读数立即清零，标记快进到已见过的最新时间戳；
// 查看中 → 离开：标记保持在切换瞬间的位置不动，既不会把
// 切换前的消息重复计数，也不会漏掉切换后才到的消息。
func (t *Tracker) SetViewing(ctx context.Context, viewing bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if viewing == t.viewing {
		return
	}
	t.viewing = viewing
	if viewing {
		t.count = 0
		if t.latest.After(t.marker) {
			t.marker = t.latest
			t.persist(ctx)
		}
	}
}

func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

func (t *Tracker) Viewing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.viewing
}

func (t *Tracker) Marker() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.marker
}

// persist 调用方持有锁。写失败只记日志，不影响内存状态
func (t *Tracker) persist(ctx context.Context) {
	if t.store == nil {
		return
	}
	if err := t.store.Set(ctx, t.key, t.marker); err != nil {
		zlog.Error("unread marker persist failed: key=" + t.key + " err=" + err.Error())
	}
}

// DisplayCount 角标展示值，超过 9 显示 "9+"，不影响真实计数
func DisplayCount(n int) string {
	if n > 9 {
		return "9+"
	}
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}
