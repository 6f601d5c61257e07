package persistence

import (
	"Nexus/internal/modules/project/domain/entity"
	"Nexus/internal/modules/project/domain/repository"

	"gorm.io/gorm"
)

type projectRepositoryImpl struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) repository.ProjectRepository {
	return &projectRepositoryImpl{db: db}
}

func (r *projectRepositoryImpl) CreateProject(p *entity.Project) error {
	return r.db.Create(p).Error
}

func (r *projectRepositoryImpl) GetByUuid(uuid string) (*entity.Project, error) {
	var p entity.Project
	err := r.db.Where("uuid = ?", uuid).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepositoryImpl) ListByMember(userID string) ([]entity.Project, error) {
	var list []entity.Project
	err := r.db.Joins("JOIN project_member ON project_member.project_id = project.uuid").
		Where("project_member.user_id = ?", userID).
		Order("project.created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *projectRepositoryImpl) UpdateProject(p *entity.Project) error {
	return r.db.Model(&entity.Project{}).
		Where("uuid = ?", p.Uuid).
		Updates(map[string]interface{}{
			"name":        p.Name,
			"description": p.Description,
			"updated_at":  p.UpdatedAt,
		}).Error
}

func (r *projectRepositoryImpl) DeleteByUuid(uuid string) error {
	return r.db.Where("uuid = ?", uuid).Delete(&entity.Project{}).Error
}

func (r *projectRepositoryImpl) AddMember(m *entity.ProjectMember) error {
	return r.db.Create(m).Error
}

func (r *projectRepositoryImpl) RemoveMember(projectID string, userID string) error {
	return r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&entity.ProjectMember{}).Error
}

func (r *projectRepositoryImpl) ListMembers(projectID string) ([]entity.ProjectMember, error) {
	var list []entity.ProjectMember
	err := r.db.Where("project_id = ?", projectID).
		Order("joined_at").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *projectRepositoryImpl) IsMember(projectID string, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&entity.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *projectRepositoryImpl) DeleteMembersByProject(projectID string) error {
	return r.db.Where("project_id = ?", projectID).
		Delete(&entity.ProjectMember{}).Error
}
