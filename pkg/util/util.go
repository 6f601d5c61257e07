package util

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateUUID 生成一个标准的 UUID (v4)
func GenerateUUID() string {
	return uuid.New().String()
}

// GenerateShortUUID 生成一个不带中划线的短 UUID
func GenerateShortUUID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// GenerateMessageID 消息 ID，M 前缀
func GenerateMessageID() string {
	return "M" + GenerateShortUUID()[:19]
}

// GenerateProjectID 项目 ID，P 前缀
func GenerateProjectID() string {
	return "P" + GenerateShortUUID()[:19]
}

// GenerateTaskID 任务记录 ID，T 前缀
func GenerateTaskID() string {
	return "T" + GenerateShortUUID()[:19]
}

// GenerateNotificationID 通知 ID，N 前缀
func GenerateNotificationID() string {
	return "N" + GenerateShortUUID()[:19]
}
