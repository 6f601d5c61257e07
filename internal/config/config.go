package config

import (
	"log"

	"github.com/BurntSushi/toml"
)

type MainConfig struct {
	AppName string `toml:"appName"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
}

type MysqlConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	DatabaseName string `toml:"databaseName"`
}

type LogConfig struct {
	LogPath string `toml:"logPath"`
}

type JwtConfig struct {
	Key         string `toml:"key"`
	ExpireHours int    `toml:"expireHours"`
	Issuer      string `toml:"issuer"`
	// 敏感操作（注销账号）要求登录时间在该窗口内，超过则要求重新登录
	RecentLoginMinutes int `toml:"recentLoginMinutes"`
}

type RedisConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	Password     string `toml:"password"`
	DB           int    `toml:"db"`
	PoolSize     int    `toml:"poolSize"`
	MinIdleConns int    `toml:"minIdleConns"`
}

type PresenceConfig struct {
	// 心跳间隔（秒），默认 60
	HeartbeatSeconds int `toml:"heartbeatSeconds"`
	// Redis 在线标记的过期时间（秒），需大于心跳间隔，默认 90
	OnlineTTLSeconds int `toml:"onlineTTLSeconds"`
}

type UploadConfig struct {
	// 文件落盘目录
	Dir string `toml:"dir"`
	// 对外访问的 URL 前缀，如 /uploads
	BaseURL string `toml:"baseURL"`
	// 单个文件大小上限（MB）
	MaxSizeMB int64 `toml:"maxSizeMB"`
}

type KafkaConfig struct {
	Enabled       bool     `toml:"enabled"`
	Brokers       []string `toml:"brokers"`
	ClientID      string   `toml:"clientID"`
	ActivityTopic string   `toml:"activityTopic"`
}

type Config struct {
	MainConfig     `toml:"mainConfig"`
	MysqlConfig    `toml:"mysqlConfig"`
	JwtConfig      `toml:"jwtConfig"`
	LogConfig      `toml:"logConfig"`
	RedisConfig    `toml:"redisConfig"`
	PresenceConfig `toml:"presenceConfig"`
	UploadConfig   `toml:"uploadConfig"`
	KafkaConfig    `toml:"kafkaConfig"`
}

var config *Config

func LoadConfig() error {
	configPath := "configs/config_local.toml"
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		log.Printf("加载配置文件失败: %v, 尝试使用默认设置", err)
		return err
	}
	return nil
}

func GetConfig() *Config {
	if config == nil {
		config = new(Config)
		_ = LoadConfig()
	}
	return config
}
