package persistence

import (
	"Nexus/internal/modules/project/domain/entity"
	"Nexus/internal/modules/project/domain/repository"

	"gorm.io/gorm"
)

type taskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &taskRepositoryImpl{db: db}
}

func (r *taskRepositoryImpl) CreateTask(t *entity.Task) error {
	return r.db.Create(t).Error
}

func (r *taskRepositoryImpl) GetByUuid(uuid string) (*entity.Task, error) {
	var t entity.Task
	err := r.db.Where("uuid = ?", uuid).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepositoryImpl) ListByProject(projectID string) ([]entity.Task, error) {
	var list []entity.Task
	err := r.db.Where("project_id = ?", projectID).
		Order("label").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *taskRepositoryImpl) ListPendingByAssignee(userID string) ([]entity.Task, error) {
	var list []entity.Task
	err := r.db.Where("assigned_to = ? AND status = ?", userID, entity.StatusPending).
		Order("due_date").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *taskRepositoryImpl) UpdateTask(t *entity.Task) error {
	return r.db.Model(&entity.Task{}).
		Where("uuid = ?", t.Uuid).
		Select("label", "module", "page", "description", "assigned_to", "assignee_name",
			"priority", "start_date", "due_date", "status", "percent_done",
			"comments", "attachments", "updated_at").
		Updates(t).Error
}

func (r *taskRepositoryImpl) DeleteByUuid(uuid string) error {
	return r.db.Where("uuid = ?", uuid).Delete(&entity.Task{}).Error
}

func (r *taskRepositoryImpl) DeleteByProject(projectID string) error {
	return r.db.Where("project_id = ?", projectID).Delete(&entity.Task{}).Error
}
