package persistence

import (
	"Nexus/internal/modules/chat/domain/entity"
	"Nexus/internal/modules/chat/domain/repository"

	"gorm.io/gorm"
)

const defaultMessageLimit = 200

type messageRepositoryImpl struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) repository.MessageRepository {
	return &messageRepositoryImpl{db: db}
}

func (r *messageRepositoryImpl) CreateMessage(m *entity.Message) error {
	return r.db.Create(m).Error
}

func (r *messageRepositoryImpl) ListByProject(projectID string, limit int) ([]entity.Message, error) {
	if limit <= 0 {
		limit = defaultMessageLimit
	}
	var list []entity.Message
	err := r.db.Where("project_id = ?", projectID).
		Order("send_at").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *messageRepositoryImpl) DeleteByProject(projectID string) error {
	return r.db.Where("project_id = ?", projectID).Delete(&entity.Message{}).Error
}
