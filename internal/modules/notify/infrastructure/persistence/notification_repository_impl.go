package persistence

import (
	"Nexus/internal/modules/notify/domain/entity"
	"Nexus/internal/modules/notify/domain/repository"

	"gorm.io/gorm"
)

type notificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepositoryImpl{db: db}
}

func (r *notificationRepositoryImpl) CreateNotification(n *entity.Notification) error {
	return r.db.Create(n).Error
}

func (r *notificationRepositoryImpl) CreateNotifications(list []entity.Notification) error {
	if len(list) == 0 {
		return nil
	}
	return r.db.Create(&list).Error
}

func (r *notificationRepositoryImpl) ListByUser(userID string) ([]entity.Notification, error) {
	var list []entity.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *notificationRepositoryImpl) MarkRead(userID string, uuid string) error {
	return r.db.Model(&entity.Notification{}).
		Where("user_id = ? AND uuid = ?", userID, uuid).
		Update("is_read", true).Error
}

func (r *notificationRepositoryImpl) MarkAllRead(userID string) error {
	return r.db.Model(&entity.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Update("is_read", true).Error
}

func (r *notificationRepositoryImpl) Delete(userID string, uuid string) error {
	return r.db.Where("user_id = ? AND uuid = ?", userID, uuid).
		Delete(&entity.Notification{}).Error
}

func (r *notificationRepositoryImpl) DeleteByProject(projectID string) error {
	return r.db.Where("project_id = ?", projectID).
		Delete(&entity.Notification{}).Error
}
