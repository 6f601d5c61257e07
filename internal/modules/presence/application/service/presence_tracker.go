package service

import (
	"context"
	"time"

	"Nexus/internal/config"
	"Nexus/internal/modules/user/domain/repository"
	"Nexus/pkg/redis"
	"Nexus/pkg/zlog"
)

const onlineKeyPrefix = "nexus:online:"

// Tracker 在线状态跟踪。每条长连接对应一个 Session，
// 周期性写入心跳，连接断开时尽力标记离线。
type Tracker struct {
	repo     repository.UserInfoRepository
	interval time.Duration
	ttl      time.Duration
}

func NewTracker(repo repository.UserInfoRepository) *Tracker {
	conf := config.GetConfig().PresenceConfig
	interval := time.Duration(conf.HeartbeatSeconds) * time.Second
	if interval <= 0 {
		interval = 60 * time.Second
	}
	ttl := time.Duration(conf.OnlineTTLSeconds) * time.Second
	if ttl <= interval {
		ttl = interval + 30*time.Second
	}
	return &Tracker{repo: repo, interval: interval, ttl: ttl}
}

// NewTrackerWithInterval 指定心跳间隔的构造，测试用
func NewTrackerWithInterval(repo repository.UserInfoRepository, interval, ttl time.Duration) *Tracker {
	return &Tracker{repo: repo, interval: interval, ttl: ttl}
}

type Session struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Start 立即写一次心跳并启动周期任务。心跳失败只记录日志，不重试
func (t *Tracker) Start(userID string) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(s.done)
		t.beat(ctx, userID)
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				t.markOffline(userID)
				return
			case <-ticker.C:
				t.beat(ctx, userID)
			}
		}
	}()
	return s
}

// Stop 停止心跳并尽力标记离线。可以安全地多次调用
func (s *Session) Stop() {
	s.cancel()
	<-s.done
}

// Offline 主动标记离线，显式登出时调用。连接断开由 Session 自己处理
func (t *Tracker) Offline(userID string) {
	t.markOffline(userID)
}

// IsOnline 查询用户当前是否在线
func (t *Tracker) IsOnline(ctx context.Context, userID string) bool {
	n, err := redis.Exists(ctx, onlineKeyPrefix+userID)
	if err != nil {
		return false
	}
	return n > 0
}

func (t *Tracker) beat(ctx context.Context, userID string) {
	now := time.Now()
	if err := redis.Set(ctx, onlineKeyPrefix+userID, now.Unix(), t.ttl); err != nil {
		zlog.Warn("在线心跳写入失败: " + err.Error())
	}
	if err := t.repo.UpdatePresence(ctx, userID, true, now); err != nil {
		zlog.Warn("在线状态更新失败: " + err.Error())
	}
}

// markOffline 用独立的短超时上下文，连接断开后仍可完成写入
func (t *Tracker) markOffline(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := redis.Del(ctx, onlineKeyPrefix+userID); err != nil {
		zlog.Warn("在线标记清除失败: " + err.Error())
	}
	if err := t.repo.UpdatePresence(ctx, userID, false, time.Now()); err != nil {
		zlog.Warn("离线状态更新失败: " + err.Error())
	}
}
