package entity

import "time"

type Project struct {
	Id          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Uuid        string    `gorm:"column:uuid;type:char(20);uniqueIndex;not null"`
	Name        string    `gorm:"column:name;type:varchar(100);not null"`
	Description string    `gorm:"column:description;type:varchar(500)"`
	OwnerId     string    `gorm:"column:owner_id;type:char(20);index;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;type:datetime;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at;type:datetime;not null"`
}

func (Project) TableName() string {
	return "project"
}

// 成员角色
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// ProjectMember 冗余昵称和邮箱，列表展示不用回表查用户
type ProjectMember struct {
	Id        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProjectId string    `gorm:"column:project_id;type:char(20);uniqueIndex:idx_project_user;not null"`
	UserId    string    `gorm:"column:user_id;type:char(20);uniqueIndex:idx_project_user;index;not null"`
	Nickname  string    `gorm:"column:nickname;type:varchar(50)"`
	Email     string    `gorm:"column:email;type:varchar(100)"`
	Role      string    `gorm:"column:role;type:varchar(10);not null;default:'member'"`
	JoinedAt  time.Time `gorm:"column:joined_at;type:datetime;not null"`
}

func (ProjectMember) TableName() string {
	return "project_member"
}
