package entity

import "time"

// 活动动作
const (
	ActionTaskCreated   = "task_created"
	ActionTaskUpdated   = "task_updated"
	ActionTaskDeleted   = "task_deleted"
	ActionMemberAdded    = "member_added"
	ActionMemberRemoved  = "member_removed"
	ActionProjectCreated = "project_created"
	ActionProjectEdited  = "project_edited"
)

// ActivityLog 项目操作历史，只追加不修改
type ActivityLog struct {
	Id         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProjectId  string    `gorm:"column:project_id;type:char(20);index;not null"`
	ActorId    string    `gorm:"column:actor_id;type:char(20);not null"`
	ActorName  string    `gorm:"column:actor_name;type:varchar(50)"`
	Action     string    `gorm:"column:action;type:varchar(30);not null"`
	TargetType string    `gorm:"column:target_type;type:varchar(20)"`
	TargetId   string    `gorm:"column:target_id;type:char(20)"`
	Detail     string    `gorm:"column:detail;type:varchar(255)"`
	CreatedAt  time.Time `gorm:"column:created_at;type:datetime;not null;index"`
}

func (ActivityLog) TableName() string {
	return "activity_log"
}
