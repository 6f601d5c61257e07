package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"Nexus/internal/modules/user/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type presenceCall struct {
	online bool
}

type fakePresenceRepo struct {
	mu    sync.Mutex
	calls []presenceCall
}

func (f *fakePresenceRepo) UpdatePresence(_ context.Context, _ string, online bool, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, presenceCall{online: online})
	return nil
}

func (f *fakePresenceRepo) snapshot() []presenceCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]presenceCall, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakePresenceRepo) CreateUserInfo(*entity.UserInfo) error { return nil }
func (f *fakePresenceRepo) GetUserInfoByEmail(string) (*entity.UserInfo, error) {
	return nil, nil
}
func (f *fakePresenceRepo) GetUserInfoByUUIDWithoutPassword(string) (*entity.UserInfo, error) {
	return nil, nil
}
func (f *fakePresenceRepo) GetUserBriefByUUIDs([]string) ([]entity.UserBrief, error) {
	return nil, nil
}
func (f *fakePresenceRepo) SearchUsersByEmailPrefix(string, string, int) ([]entity.UserBrief, error) {
	return nil, nil
}
func (f *fakePresenceRepo) DeleteByUUID(string) error { return nil }

func TestHeartbeatTicksWhileSessionAlive(t *testing.T) {
	repo := &fakePresenceRepo{}
	tr := NewTrackerWithInterval(repo, 20*time.Millisecond, time.Second)

	sess := tr.Start("u1")
	time.Sleep(90 * time.Millisecond)
	sess.Stop()

	calls := repo.snapshot()
	// 启动时一次 + 若干次周期心跳
	require.GreaterOrEqual(t, len(calls), 3)
	for _, c := range calls[:len(calls)-1] {
		assert.True(t, c.online)
	}
}

func TestStopEndsHeartbeatAndMarksOffline(t *testing.T) {
	repo := &fakePresenceRepo{}
	tr := NewTrackerWithInterval(repo, 20*time.Millisecond, time.Second)

	sess := tr.Start("u1")
	time.Sleep(50 * time.Millisecond)
	sess.Stop()

	calls := repo.snapshot()
	require.NotEmpty(t, calls)
	// 最后一次写入是离线标记
	assert.False(t, calls[len(calls)-1].online)

	// 停止后不再有任何心跳
	n := len(calls)
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, n, len(repo.snapshot()))
}
