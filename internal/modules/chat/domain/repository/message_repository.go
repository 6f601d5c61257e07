package repository

import "Nexus/internal/modules/chat/domain/entity"

type MessageRepository interface {
	CreateMessage(m *entity.Message) error
	// ListByProject 按发送时间升序，limit <= 0 时取默认值
	ListByProject(projectID string, limit int) ([]entity.Message, error)
	DeleteByProject(projectID string) error
}
