package repository

import (
	notifyRepository "Nexus/internal/modules/notify/domain/repository"
)

// ProjectUnitOfWork 项目级多表写入的事务边界
type ProjectUnitOfWork interface {
	Transaction(fn func(projectRepo ProjectRepository, taskRepo TaskRepository, logRepo ActivityLogRepository, notifyRepo notifyRepository.NotificationRepository) error) error
}
