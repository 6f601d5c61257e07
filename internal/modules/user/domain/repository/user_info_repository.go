package repository

import (
	"context"
	"time"

	"Nexus/internal/modules/user/domain/entity"
)

type UserInfoRepository interface {
	CreateUserInfo(user *entity.UserInfo) error
	GetUserInfoByEmail(email string) (*entity.UserInfo, error)
	GetUserInfoByUUIDWithoutPassword(uuid string) (*entity.UserInfo, error)
	GetUserBriefByUUIDs(uuids []string) ([]entity.UserBrief, error)
	// SearchUsersByEmailPrefix 邮箱前缀匹配，排除 excludeUUID（搜索者本人）
	SearchUsersByEmailPrefix(prefix string, excludeUUID string, limit int) ([]entity.UserBrief, error)
	UpdatePresence(ctx context.Context, uuid string, online bool, lastSeen time.Time) error
	DeleteByUUID(uuid string) error
}
