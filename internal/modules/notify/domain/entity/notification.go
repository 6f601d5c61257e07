package entity

import "time"

// 通知类型
const (
	TypeAssignment     = "assignment"
	TypeTaskUpdate     = "task_update"
	TypeTaskDeleted    = "task_deleted"
	TypeProjectInvite  = "project_invite"
	TypeProjectDeleted = "project_deleted"
)

type Notification struct {
	Id          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Uuid        string    `gorm:"column:uuid;type:char(20);uniqueIndex;not null"`
	UserId      string    `gorm:"column:user_id;type:char(20);index;not null"`
	Type        string    `gorm:"column:type;type:varchar(30);not null"`
	Message     string    `gorm:"column:message;type:varchar(255);not null"`
	ProjectId   string    `gorm:"column:project_id;type:char(20);index"`
	ProjectName string    `gorm:"column:project_name;type:varchar(100)"`
	Read        bool      `gorm:"column:is_read;not null;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;type:datetime;not null;index"`
}

func (Notification) TableName() string {
	return "notification"
}
