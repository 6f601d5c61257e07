package repository

import "Nexus/internal/modules/project/domain/entity"

type ProjectRepository interface {
	CreateProject(p *entity.Project) error
	GetByUuid(uuid string) (*entity.Project, error)
	// ListByMember 返回 userID 参与的全部项目
	ListByMember(userID string) ([]entity.Project, error)
	UpdateProject(p *entity.Project) error
	DeleteByUuid(uuid string) error

	AddMember(m *entity.ProjectMember) error
	RemoveMember(projectID string, userID string) error
	ListMembers(projectID string) ([]entity.ProjectMember, error)
	IsMember(projectID string, userID string) (bool, error)
	DeleteMembersByProject(projectID string) error
}
