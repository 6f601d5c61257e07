package entity

import (
	"database/sql"
	"time"
)

// Message 项目聊天消息。SendAt 由服务端落库时写入，
// 乐观推送阶段可能为空，消费方要把空时间当作"刚刚"处理
type Message struct {
	Id         int64        `gorm:"column:id;primaryKey;autoIncrement"`
	Uuid       string       `gorm:"column:uuid;type:char(20);uniqueIndex;not null"`
	ProjectId  string       `gorm:"column:project_id;type:char(20);index;not null"`
	AuthorId   string       `gorm:"column:author_id;type:char(20);not null"`
	AuthorName string       `gorm:"column:author_name;type:varchar(50)"`
	Content    string       `gorm:"column:content;type:varchar(1000);not null"`
	SendAt     sql.NullTime `gorm:"column:send_at;type:datetime;index"`
	CreatedAt  time.Time    `gorm:"column:created_at;type:datetime;not null"`
}

func (Message) TableName() string {
	return "message"
}
