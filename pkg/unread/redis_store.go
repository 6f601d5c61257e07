package unread

import (
	"context"
	"time"

	"Nexus/pkg/redis"
)

const markerKeyPrefix = "nexus:last_read:"

// RedisMarkerStore 把已读标记存进 Redis，服务端等价于
// 原来浏览器 localStorage 里的 last_read 键：按查看者维度，
// 不跨设备共享语义（key 由 userID/projectID/流类型拼成）。
type RedisMarkerStore struct{}

func NewRedisMarkerStore() *RedisMarkerStore {
	return &RedisMarkerStore{}
}

// MarkerKey 统一的 key 拼装：projectID 为空的流（如通知）传 "-"
func MarkerKey(userID, projectID, kind string) string {
	if projectID == "" {
		projectID = "-"
	}
	return projectID + ":" + userID + ":" + kind
}

func (s *RedisMarkerStore) Get(ctx context.Context, key string) (time.Time, error) {
	v, err := redis.Get(ctx, markerKeyPrefix+key)
	if err != nil {
		if redis.IsNil(err) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func (s *RedisMarkerStore) Set(ctx context.Context, key string, t time.Time) error {
	return redis.Set(ctx, markerKeyPrefix+key, t.Format(time.RFC3339Nano), 0)
}
