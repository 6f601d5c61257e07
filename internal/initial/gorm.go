package initial

import (
	"fmt"
	"log"
	"os"
	"time"

	"Nexus/internal/config"
	chatEntity "Nexus/internal/modules/chat/domain/entity"
	notifyEntity "Nexus/internal/modules/notify/domain/entity"
	projectEntity "Nexus/internal/modules/project/domain/entity"
	userEntity "Nexus/internal/modules/user/domain/entity"
	"Nexus/pkg/zlog"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var GormDB *gorm.DB

func init() {
	conf := config.GetConfig()
	user := conf.MysqlConfig.User
	password := conf.MysqlConfig.Password
	host := conf.MysqlConfig.Host
	port := conf.MysqlConfig.Port
	dbName := conf.MysqlConfig.DatabaseName
	if dbName == "" {
		dbName = conf.AppName
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local", user, password, host, port, dbName)

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	var err error
	GormDB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		zlog.Fatal(err.Error())
	}

	// 自动迁移，没有表时会自动建表
	err = GormDB.AutoMigrate(
		&userEntity.UserInfo{},
		&projectEntity.Project{},
		&projectEntity.ProjectMember{},
		&projectEntity.Task{},
		&projectEntity.ActivityLog{},
		&chatEntity.Message{},
		&notifyEntity.Notification{},
	)
	if err != nil {
		zlog.Fatal(err.Error())
	}
}
