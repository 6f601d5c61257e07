package repository

import "Nexus/internal/modules/project/domain/entity"

type TaskRepository interface {
	CreateTask(t *entity.Task) error
	GetByUuid(uuid string) (*entity.Task, error)
	ListByProject(projectID string) ([]entity.Task, error)
	// ListPendingByAssignee 跨项目取指派给 userID 且状态为待办的任务
	ListPendingByAssignee(userID string) ([]entity.Task, error)
	UpdateTask(t *entity.Task) error
	DeleteByUuid(uuid string) error
	DeleteByProject(projectID string) error
}
