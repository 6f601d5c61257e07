package persistence

import (
	"context"
	"database/sql"
	"time"

	"Nexus/internal/modules/user/domain/entity"
	"Nexus/internal/modules/user/domain/repository"

	"gorm.io/gorm"
)

type userInfoRepositoryImpl struct {
	db *gorm.DB
}

func NewUserInfoRepository(db *gorm.DB) repository.UserInfoRepository {
	return &userInfoRepositoryImpl{db: db}
}

func (r *userInfoRepositoryImpl) CreateUserInfo(user *entity.UserInfo) error {
	return r.db.Create(user).Error
}

func (r *userInfoRepositoryImpl) GetUserInfoByEmail(email string) (*entity.UserInfo, error) {
	var user entity.UserInfo
	// First 查不到会返回 ErrRecordNotFound
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userInfoRepositoryImpl) GetUserInfoByUUIDWithoutPassword(uuid string) (*entity.UserInfo, error) {
	var user entity.UserInfo
	// Use Select to explicitly fetch safe fields, excluding password
	err := r.db.Select("id, uuid, email, nickname, phone, avatar, provider, status, is_online, last_seen_at, created_at").
		Where("uuid = ?", uuid).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userInfoRepositoryImpl) GetUserBriefByUUIDs(uuids []string) ([]entity.UserBrief, error) {
	if len(uuids) == 0 {
		return []entity.UserBrief{}, nil
	}

	var users []entity.UserBrief
	err := r.db.Model(&entity.UserInfo{}).
		Select("uuid", "email", "nickname", "avatar", "status").
		Where("uuid IN ?", uuids).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userInfoRepositoryImpl) SearchUsersByEmailPrefix(prefix string, excludeUUID string, limit int) ([]entity.UserBrief, error) {
	if prefix == "" {
		return []entity.UserBrief{}, nil
	}
	if limit <= 0 {
		limit = 5 // 默认限制5条
	}

	var users []entity.UserBrief
	err := r.db.Model(&entity.UserInfo{}).
		Select("uuid", "email", "nickname", "avatar", "status").
		Where("status = 0 AND email LIKE ? AND uuid <> ?", prefix+"%", excludeUUID).
		Order("email").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userInfoRepositoryImpl) UpdatePresence(ctx context.Context, uuid string, online bool, lastSeen time.Time) error {
	return r.db.WithContext(ctx).Model(&entity.UserInfo{}).
		Where("uuid = ?", uuid).
		Updates(map[string]interface{}{
			"is_online":    online,
			"last_seen_at": sql.NullTime{Time: lastSeen, Valid: true},
		}).Error
}

func (r *userInfoRepositoryImpl) DeleteByUUID(uuid string) error {
	return r.db.Where("uuid = ?", uuid).Delete(&entity.UserInfo{}).Error
}
