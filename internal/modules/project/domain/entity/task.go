package entity

import (
	"database/sql"
	"time"
)

// 任务状态
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// 任务优先级
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

type TaskComment struct {
	AuthorId   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Task struct {
	Id           int64         `gorm:"column:id;primaryKey;autoIncrement"`
	Uuid         string        `gorm:"column:uuid;type:char(20);uniqueIndex;not null"`
	ProjectId    string        `gorm:"column:project_id;type:char(20);index;not null"`
	Label        string        `gorm:"column:label;type:varchar(50)"` // 展示用编号，如 TASK-01
	Module       string        `gorm:"column:module;type:varchar(100)"`
	Page         string        `gorm:"column:page;type:varchar(100)"`
	Description  string        `gorm:"column:description;type:varchar(1000)"`
	AssignedTo   string        `gorm:"column:assigned_to;type:char(20);index"`
	AssigneeName string        `gorm:"column:assignee_name;type:varchar(50)"`
	Priority     string        `gorm:"column:priority;type:varchar(10);not null;default:'Medium'"`
	StartDate    sql.NullTime  `gorm:"column:start_date;type:datetime"`
	DueDate      sql.NullTime  `gorm:"column:due_date;type:datetime"`
	Status       string        `gorm:"column:status;type:varchar(15);not null;default:'Pending'"`
	PercentDone  int           `gorm:"column:percent_done;not null;default:0"`
	Comments     []TaskComment `gorm:"column:comments;serializer:json"`
	Attachments  []string      `gorm:"column:attachments;serializer:json"`
	CreatedBy    string        `gorm:"column:created_by;type:char(20)"`
	CreatedAt    time.Time     `gorm:"column:created_at;type:datetime;not null"`
	UpdatedAt    time.Time     `gorm:"column:updated_at;type:datetime;not null"`
}

func (Task) TableName() string {
	return "task"
}
