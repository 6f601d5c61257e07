package http

import (
	"Nexus/internal/config"
	"Nexus/internal/events"
	eventsKafka "Nexus/internal/events/kafka"
	"Nexus/internal/initial"
	jwtMiddleware "Nexus/internal/middleware/jwt"
	chatService "Nexus/internal/modules/chat/application/service"
	chatPersistence "Nexus/internal/modules/chat/infrastructure/persistence"
	chatHandler "Nexus/internal/modules/chat/interface/http"
	notifyService "Nexus/internal/modules/notify/application/service"
	notifyPersistence "Nexus/internal/modules/notify/infrastructure/persistence"
	notifyHandler "Nexus/internal/modules/notify/interface/http"
	presenceService "Nexus/internal/modules/presence/application/service"
	presenceHandler "Nexus/internal/modules/presence/interface/http"
	projectService "Nexus/internal/modules/project/application/service"
	projectPersistence "Nexus/internal/modules/project/infrastructure/persistence"
	projectHandler "Nexus/internal/modules/project/interface/http"
	storageHandler "Nexus/internal/modules/storage/interface/http"
	"Nexus/internal/modules/user/application/service"
	"Nexus/internal/modules/user/infrastructure/persistence"
	userHandler "Nexus/internal/modules/user/interface/http"
	"Nexus/pkg/livequery"
	"Nexus/pkg/ssl"
	"Nexus/pkg/unread"
	"Nexus/pkg/ws"
	"Nexus/pkg/zlog"

	cors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var GE *gin.Engine

// Publisher 进程退出时由 main 关闭
var Publisher events.Publisher

func init() {
	GE = gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	GE.Use(cors.New(corsConfig))
	GE.Use(ssl.TlsHandler(config.GetConfig().MainConfig.Host, config.GetConfig().MainConfig.Port))

	wsHub := ws.NewHub()
	registry := livequery.NewRegistry()
	markers := unread.NewRedisMarkerStore()

	Publisher = events.NewNoopPublisher()
	kafkaConf := config.GetConfig().KafkaConfig
	if kafkaConf.Enabled {
		p, err := eventsKafka.NewSaramaPublisher(eventsKafka.PublisherConfig{
			Brokers:  kafkaConf.Brokers,
			ClientID: kafkaConf.ClientID,
		})
		if err != nil {
			zlog.Error("Kafka 连接失败，事件投递降级为空实现: " + err.Error())
		} else {
			Publisher = p
		}
	}

	userRepo := persistence.NewUserInfoRepository(initial.GormDB)
	projectRepo := projectPersistence.NewProjectRepository(initial.GormDB)
	taskRepo := projectPersistence.NewTaskRepository(initial.GormDB)
	logRepo := projectPersistence.NewActivityLogRepository(initial.GormDB)
	uow := projectPersistence.NewProjectUnitOfWork(initial.GormDB)
	messageRepo := chatPersistence.NewMessageRepository(initial.GormDB)
	notifyRepo := notifyPersistence.NewNotificationRepository(initial.GormDB)

	userSvc := service.NewUserInfoService(userRepo, service.NewGoogleVerifier())
	notifySvc := notifyService.NewNotificationService(notifyRepo, registry)
	activitySvc := projectService.NewActivityService(logRepo, registry, Publisher)
	projectSvc := projectService.NewProjectService(projectRepo, uow, userRepo, notifySvc, activitySvc, registry)
	taskSvc := projectService.NewTaskService(taskRepo, projectRepo, notifySvc, activitySvc, registry)
	messageSvc := chatService.NewMessageService(messageRepo, projectRepo, registry)
	presenceTracker := presenceService.NewTracker(userRepo)

	userH := userHandler.NewUserInfoHandler(userSvc)
	projectH := projectHandler.NewProjectHandler(projectSvc, activitySvc)
	taskH := projectHandler.NewTaskHandler(taskSvc)
	messageH := chatHandler.NewMessageHandler(messageSvc)
	notifyH := notifyHandler.NewNotificationHandler(notifySvc)
	uploadH := storageHandler.NewUploadHandler()
	presenceH := presenceHandler.NewPresenceHandler(presenceTracker)
	wsH := chatHandler.NewWsHandler(wsHub, messageSvc, taskSvc, projectSvc, activitySvc, notifySvc,
		presenceTracker, projectRepo, userRepo, registry, markers)

	GE.POST("/login", userH.Login)
	GE.POST("/register", userH.Register)
	GE.POST("/federatedLogin", userH.FederatedLogin)
	GE.POST("/sendPasswordReset", userH.SendPasswordReset)
	GE.GET("/wss", wsH.Connect)

	uploadDir := config.GetConfig().UploadConfig.Dir
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	GE.Static("/uploads", uploadDir)

	authed := GE.Group("/")
	authed.Use(jwtMiddleware.Auth())
	authed.GET("/auth/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"uuid":     c.GetString("uuid"),
			"username": c.GetString("username"),
		})
	})

	authed.POST("/user/getMyInfo", userH.GetMyInfo)
	authed.POST("/user/searchUser", userH.SearchUser)
	authed.POST("/user/deleteAccount", userH.DeleteAccount)
	authed.POST("/user/logout", presenceH.Logout)

	authed.POST("/project/createProject", projectH.Create)
	authed.POST("/project/getProjectList", projectH.List)
	authed.POST("/project/getProjectInfo", projectH.Get)
	authed.POST("/project/updateProject", projectH.Update)
	authed.POST("/project/deleteProject", projectH.Delete)
	authed.POST("/project/addMember", projectH.AddMember)
	authed.POST("/project/removeMember", projectH.RemoveMember)
	authed.POST("/history/getHistoryList", projectH.History)

	authed.POST("/task/createTask", taskH.Create)
	authed.POST("/task/updateTask", taskH.Update)
	authed.POST("/task/deleteTask", taskH.Delete)
	authed.POST("/task/getTaskList", taskH.ListByProject)
	authed.POST("/task/getMyPendingTasks", taskH.ListMyPending)
	authed.POST("/task/addComment", taskH.AddComment)

	authed.POST("/message/sendMessage", messageH.Send)
	authed.POST("/message/getMessageList", messageH.List)

	authed.POST("/notification/getNotificationList", notifyH.List)
	authed.POST("/notification/markRead", notifyH.MarkRead)
	authed.POST("/notification/markAllRead", notifyH.MarkAllRead)
	authed.POST("/notification/deleteNotification", notifyH.Delete)

	authed.POST("/upload/file", uploadH.Upload)
}
