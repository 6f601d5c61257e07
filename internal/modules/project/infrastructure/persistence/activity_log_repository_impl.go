package persistence

import (
	"Nexus/internal/modules/project/domain/entity"
	"Nexus/internal/modules/project/domain/repository"

	"gorm.io/gorm"
)

const defaultHistoryLimit = 100

type activityLogRepositoryImpl struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) repository.ActivityLogRepository {
	return &activityLogRepositoryImpl{db: db}
}

func (r *activityLogRepositoryImpl) CreateLog(l *entity.ActivityLog) error {
	return r.db.Create(l).Error
}

func (r *activityLogRepositoryImpl) ListByProject(projectID string, limit int) ([]entity.ActivityLog, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	var list []entity.ActivityLog
	err := r.db.Where("project_id = ?", projectID).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *activityLogRepositoryImpl) DeleteByProject(projectID string) error {
	return r.db.Where("project_id = ?", projectID).Delete(&entity.ActivityLog{}).Error
}
