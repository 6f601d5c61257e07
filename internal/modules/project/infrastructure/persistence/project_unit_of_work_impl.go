package persistence

import (
	notifyRepository "Nexus/internal/modules/notify/domain/repository"
	notifyPersistence "Nexus/internal/modules/notify/infrastructure/persistence"
	projectRepository "Nexus/internal/modules/project/domain/repository"

	"gorm.io/gorm"
)

type projectUnitOfWorkImpl struct {
	db *gorm.DB
}

func NewProjectUnitOfWork(db *gorm.DB) projectRepository.ProjectUnitOfWork {
	return &projectUnitOfWorkImpl{db: db}
}

func (u *projectUnitOfWorkImpl) Transaction(fn func(projectRepo projectRepository.ProjectRepository, taskRepo projectRepository.TaskRepository, logRepo projectRepository.ActivityLogRepository, notifyRepo notifyRepository.NotificationRepository) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		projectRepo := NewProjectRepository(tx)
		taskRepo := NewTaskRepository(tx)
		logRepo := NewActivityLogRepository(tx)
		notifyRepo := notifyPersistence.NewNotificationRepository(tx)
		return fn(projectRepo, taskRepo, logRepo, notifyRepo)
	})
}
