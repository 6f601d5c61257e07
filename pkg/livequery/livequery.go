package livequery

import (
	"context"
	"sync"

	"Nexus/pkg/zlog"
)

// FetchFunc 拉取某个流的完整快照（不是增量）
type FetchFunc func(ctx context.Context) (interface{}, error)

// DeliverFunc 投递完整快照，消费方整体替换本地数据
type DeliverFunc func(snapshot interface{})

// Registry 进程内的实时查询注册表。
// 按 topic 维护订阅者，数据变更后调用 Notify(topic)，
// 每个订阅者会重新执行自己的 FetchFunc 并收到最新的完整快照。
// 投递始终是全量替换，乱序到达不会破坏消费方状态。
type Registry struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscription]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		subs: make(map[string]map[*Subscription]struct{}),
	}
}

// Subscribe 注册订阅并立即投递一次当前快照。
// 返回的 Subscription 必须在消费方销毁或作用域切换时 Cancel，
// 否则会泄漏一个挂在旧作用域上的活跃订阅。
func (r *Registry) Subscribe(topic string, fetch FetchFunc, deliver DeliverFunc) *Subscription {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Subscription{
		registry: r,
		topic:    topic,
		fetch:    fetch,
		deliver:  deliver,
		kick:     make(chan struct{}, 1),
		ctx:      ctx,
		cancel:   cancel,
	}

	r.mu.Lock()
	set := r.subs[topic]
	if set == nil {
		set = make(map[*Subscription]struct{})
		r.subs[topic] = set
	}
	set[s] = struct{}{}
	r.mu.Unlock()

	go s.loop()
	s.notify()
	return s
}

// Notify 声明某个流的数据已变更，触发所有订阅者重新拉取。
// 非阻塞：投递由各订阅自己的 goroutine 串行执行，连续多次
// Notify 会被合并成一次拉取。
func (r *Registry) Notify(topic string) {
	r.mu.RLock()
	set := r.subs[topic]
	targets := make([]*Subscription, 0, len(set))
	for s := range set {
		targets = append(targets, s)
	}
	r.mu.RUnlock()

	for _, s := range targets {
		s.notify()
	}
}

// SubscriberCount 当前 topic 的订阅数（测试与诊断用）
func (r *Registry) SubscriberCount(topic string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs[topic])
}

func (r *Registry) remove(s *Subscription) {
	r.mu.Lock()
	set := r.subs[s.topic]
	if set != nil {
		delete(set, s)
		if len(set) == 0 {
			delete(r.subs, s.topic)
		}
	}
	r.mu.Unlock()
}

// Subscription 单个活跃订阅，持有串行投递的 goroutine
type Subscription struct {
	registry *Registry
	topic    string
	fetch    FetchFunc
	deliver  DeliverFunc
	kick     chan struct{}
	ctx      context.Context
	cancel   context.CancelFunc

	cancelOnce sync.Once
}

func (s *Subscription) Topic() string {
	return s.topic
}

// Cancel 停止订阅，幂等。取消后不再有任何快照被投递。
func (s *Subscription) Cancel() {
	s.cancelOnce.Do(func() {
		s.cancel()
		s.registry.remove(s)
	})
}

func (s *Subscription) notify() {
	select {
	case s.kick <- struct{}{}:
	default:
		// 已有一次待处理的拉取，合并
	}
}

func (s *Subscription) loop() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.kick:
			// 取消和 kick 同时就绪时以取消为准
			select {
			case <-s.ctx.Done():
				return
			default:
			}

			snap, err := s.fetch(s.ctx)
			if err != nil {
				// 拉取失败只记日志，不重试，等待下一次变更通知
				zlog.Error("livequery fetch failed: topic=" + s.topic + " err=" + err.Error())
				continue
			}

			select {
			case <-s.ctx.Done():
				return
			default:
				s.deliver(snap)
			}
		}
	}
}
