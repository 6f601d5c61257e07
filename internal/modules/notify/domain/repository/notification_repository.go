package repository

import "Nexus/internal/modules/notify/domain/entity"

type NotificationRepository interface {
	CreateNotification(n *entity.Notification) error
	CreateNotifications(list []entity.Notification) error
	// ListByUser 按创建时间倒序
	ListByUser(userID string) ([]entity.Notification, error)
	MarkRead(userID string, uuid string) error
	MarkAllRead(userID string) error
	// Delete 只能删除属于 userID 的通知
	Delete(userID string, uuid string) error
	DeleteByProject(projectID string) error
}
