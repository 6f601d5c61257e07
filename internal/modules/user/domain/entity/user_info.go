package entity

import (
	"database/sql"
	"time"
)

// UserInfo 用户账号，邮箱即登录名
type UserInfo struct {
	Id         int64        `gorm:"column:id;primaryKey;autoIncrement"`
	Uuid       string       `gorm:"column:uuid;type:char(20);uniqueIndex;not null"`
	Email      string       `gorm:"column:email;type:varchar(100);uniqueIndex;not null"`
	Nickname   string       `gorm:"column:nickname;type:varchar(50)"`
	Phone      string       `gorm:"column:phone;type:varchar(20)"`
	Password   string       `gorm:"column:password;type:varchar(100)"` // bcrypt hash，联合登录账号为空
	Avatar     string       `gorm:"column:avatar;type:varchar(255)"`
	Provider   string       `gorm:"column:provider;type:varchar(20);not null;default:'password'"` // password / google
	Status     int8         `gorm:"column:status;type:tinyint;not null;default:0"`                // 0 正常 1 禁用
	IsOnline   bool         `gorm:"column:is_online;not null;default:false"`
	LastSeenAt sql.NullTime `gorm:"column:last_seen_at;type:datetime"`
	CreatedAt  time.Time    `gorm:"column:created_at;type:datetime;not null"`
}

func (UserInfo) TableName() string {
	return "user_info"
}

// UserBrief 列表、搜索场景的精简投影
type UserBrief struct {
	Uuid     string `gorm:"column:uuid"`
	Email    string `gorm:"column:email"`
	Nickname string `gorm:"column:nickname"`
	Avatar   string `gorm:"column:avatar"`
	Status   int8   `gorm:"column:status"`
}
