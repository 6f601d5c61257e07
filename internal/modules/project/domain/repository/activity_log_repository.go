package repository

import "Nexus/internal/modules/project/domain/entity"

type ActivityLogRepository interface {
	CreateLog(l *entity.ActivityLog) error
	// ListByProject 按时间倒序，limit <= 0 时取默认值
	ListByProject(projectID string, limit int) ([]entity.ActivityLog, error)
	DeleteByProject(projectID string) error
}
