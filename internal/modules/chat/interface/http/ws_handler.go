package handler

import (
	"context"
	"net/http"
	"time"

	chatRequest "Nexus/internal/modules/chat/application/dto/request"
	chatService "Nexus/internal/modules/chat/application/service"
	notifyService "Nexus/internal/modules/notify/application/service"
	presenceService "Nexus/internal/modules/presence/application/service"
	projectService "Nexus/internal/modules/project/application/service"
	projectRepository "Nexus/internal/modules/project/domain/repository"
	userRepository "Nexus/internal/modules/user/domain/repository"
	"Nexus/pkg/livequery"
	"Nexus/pkg/unread"
	"Nexus/pkg/util/myjwt"
	"Nexus/pkg/ws"
	"Nexus/pkg/zlog"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// 客户端可订阅的流
const (
	StreamProjects      = "projects"
	StreamTasks         = "tasks"
	StreamMessages      = "messages"
	StreamHistory       = "history"
	StreamNotifications = "notifications"
	StreamPendingTasks  = "pending_tasks"
)

// ControlFrame 客户端发来的控制帧
type ControlFrame struct {
	Action      string `json:"action"` // subscribe / unsubscribe / view / blur / message
	Stream      string `json:"stream"`
	ProjectUuid string `json:"projectUuid"`
	Content     string `json:"content"`
}

type WsHandler struct {
	hub         *ws.Hub
	messageSvc  chatService.MessageService
	taskSvc     projectService.TaskService
	projectSvc  projectService.ProjectService
	activitySvc projectService.ActivityService
	notifySvc   notifyService.NotificationService
	presence    *presenceService.Tracker
	projectRepo projectRepository.ProjectRepository
	userRepo    userRepository.UserInfoRepository
	registry    *livequery.Registry
	markers     unread.MarkerStore
}

func NewWsHandler(
	hub *ws.Hub,
	messageSvc chatService.MessageService,
	taskSvc projectService.TaskService,
	projectSvc projectService.ProjectService,
	activitySvc projectService.ActivityService,
	notifySvc notifyService.NotificationService,
	presence *presenceService.Tracker,
	projectRepo projectRepository.ProjectRepository,
	userRepo userRepository.UserInfoRepository,
	registry *livequery.Registry,
	markers unread.MarkerStore,
) *WsHandler {
	return &WsHandler{
		hub:         hub,
		messageSvc:  messageSvc,
		taskSvc:     taskSvc,
		projectSvc:  projectSvc,
		activitySvc: activitySvc,
		notifySvc:   notifySvc,
		presence:    presence,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		registry:    registry,
		markers:     markers,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Connect 建立实时连接。浏览器原生 WebSocket 不支持自定义 Header，
// token 放在 URL 参数里，这个路由不走 jwt 中间件，在这里手动校验
func (h *WsHandler) Connect(c *gin.Context) {
	token := c.Query("token")
	claims, err := myjwt.ParseToken(token)
	if err != nil || claims == nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	userID := claims.Uuid
	userName := claims.Username

	// client_id 可选，带了就必须和 token 里的一致
	if cid := c.Query("client_id"); cid != "" && cid != userID {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	briefs, err := h.userRepo.GetUserBriefByUUIDs([]string{userID})
	if err != nil || len(briefs) == 0 || briefs[0].Status != 0 {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zlog.Error(err.Error())
		return
	}

	client := ws.NewClient(userID, conn)
	h.hub.Register(client)

	// 在线状态的生命周期等于这条连接的生命周期
	presenceSession := h.presence.Start(userID)

	sess := &realtimeSession{
		handler: h,
		client:  client,
		userID:  userID,
		name:    userName,
		streams: make(map[string]*streamState),
	}

	defer func() {
		sess.cancelAll()
		h.hub.Unregister(client)
		presenceSession.Stop()
	}()

	conn.SetReadLimit(1 << 20)
	_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	go client.WritePump()

	for {
		var frame ControlFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		sess.handle(frame)
	}
}

// realtimeSession 单条连接上的订阅与未读状态
type realtimeSession struct {
	handler *WsHandler
	client  *ws.Client
	userID  string
	name    string
	// key = stream + "|" + projectUuid
	streams map[string]*streamState
}

type streamState struct {
	sub     *livequery.Subscription
	tracker *unread.Tracker
}

func streamKey(stream, projectUuid string) string {
	return stream + "|" + projectUuid
}

func (s *realtimeSession) handle(frame ControlFrame) {
	switch frame.Action {
	case "subscribe":
		s.subscribe(frame.Stream, frame.ProjectUuid)
	case "unsubscribe":
		s.unsubscribe(frame.Stream, frame.ProjectUuid)
	case "view":
		s.setViewing(frame.Stream, frame.ProjectUuid, true)
	case "blur":
		s.setViewing(frame.Stream, frame.ProjectUuid, false)
	case "message":
		s.sendMessage(frame.ProjectUuid, frame.Content)
	default:
		s.sendError("未知操作: " + frame.Action)
	}
}

func (s *realtimeSession) subscribe(stream, projectUuid string) {
	key := streamKey(stream, projectUuid)
	// 重复订阅先换掉旧的，行为等同作用域切换
	if old, ok := s.streams[key]; ok {
		old.sub.Cancel()
		delete(s.streams, key)
	}

	h := s.handler
	switch stream {
	case StreamProjects:
		s.streams[key] = &streamState{sub: s.plainSubscription(
			livequery.TopicUserProjects(s.userID), stream, "",
			func(ctx context.Context) (interface{}, error) {
				return h.projectSvc.List(s.userID)
			},
		)}
	case StreamPendingTasks:
		s.streams[key] = &streamState{sub: s.plainSubscription(
			livequery.TopicUserPendingTasks(s.userID), stream, "",
			func(ctx context.Context) (interface{}, error) {
				return h.taskSvc.ListPendingByAssignee(s.userID)
			},
		)}
	case StreamTasks:
		if !s.requireMember(projectUuid) {
			return
		}
		s.streams[key] = &streamState{sub: s.plainSubscription(
			livequery.TopicProjectTasks(projectUuid), stream, projectUuid,
			func(ctx context.Context) (interface{}, error) {
				return h.taskSvc.ListByProject(s.userID, projectUuid)
			},
		)}
	case StreamHistory:
		if !s.requireMember(projectUuid) {
			return
		}
		s.streams[key] = &streamState{sub: s.plainSubscription(
			livequery.TopicProjectHistory(projectUuid), stream, projectUuid,
			func(ctx context.Context) (interface{}, error) {
				return h.activitySvc.History(projectUuid, 0)
			},
		)}
	case StreamMessages:
		if !s.requireMember(projectUuid) {
			return
		}
		tracker := unread.NewTracker(context.Background(), h.markers,
			unread.MarkerKey(s.userID, projectUuid, "chat"), s.userID)
		st := &streamState{tracker: tracker}
		st.sub = h.registry.Subscribe(livequery.TopicProjectMessages(projectUuid),
			func(ctx context.Context) (interface{}, error) {
				items, err := h.messageSvc.List(s.userID, chatRequest.GetMessageListRequest{ProjectUuid: projectUuid})
				if err != nil {
					return nil, err
				}
				records, err := h.messageSvc.UnreadRecords(projectUuid)
				if err != nil {
					return nil, err
				}
				return trackedSnapshot{items: items, records: records}, nil
			},
			func(snapshot interface{}) {
				snap := snapshot.(trackedSnapshot)
				s.deliverSnapshot(stream, projectUuid, snap.items)
				s.deliverBadge(stream, projectUuid, tracker, snap.records)
			})
		s.streams[key] = st
	case StreamNotifications:
		tracker := unread.NewTracker(context.Background(), h.markers,
			unread.MarkerKey(s.userID, "", "notifications"), s.userID)
		st := &streamState{tracker: tracker}
		st.sub = h.registry.Subscribe(livequery.TopicUserNotifications(s.userID),
			func(ctx context.Context) (interface{}, error) {
				items, err := h.notifySvc.List(s.userID)
				if err != nil {
					return nil, err
				}
				records, err := h.notifySvc.UnreadRecords(s.userID)
				if err != nil {
					return nil, err
				}
				return trackedSnapshot{items: items, records: records}, nil
			},
			func(snapshot interface{}) {
				snap := snapshot.(trackedSnapshot)
				s.deliverSnapshot(stream, "", snap.items)
				s.deliverBadge(stream, "", tracker, snap.records)
			})
		s.streams[key] = st
	default:
		s.sendError("未知的流: " + stream)
	}
}

// trackedSnapshot 带未读判定视图的快照
type trackedSnapshot struct {
	items   interface{}
	records []unread.Record
}

func (s *realtimeSession) plainSubscription(topic, stream, projectUuid string, fetch livequery.FetchFunc) *livequery.Subscription {
	return s.handler.registry.Subscribe(topic, fetch, func(snapshot interface{}) {
		s.deliverSnapshot(stream, projectUuid, snapshot)
	})
}

func (s *realtimeSession) unsubscribe(stream, projectUuid string) {
	key := streamKey(stream, projectUuid)
	if st, ok := s.streams[key]; ok {
		st.sub.Cancel()
		delete(s.streams, key)
	}
}

func (s *realtimeSession) setViewing(stream, projectUuid string, viewing bool) {
	st, ok := s.streams[streamKey(stream, projectUuid)]
	if !ok || st.tracker == nil {
		return
	}
	st.tracker.SetViewing(context.Background(), viewing)
	s.deliverBadge(stream, projectUuid, st.tracker, nil)
}

func (s *realtimeSession) sendMessage(projectUuid, content string) {
	if content == "" {
		s.sendError("消息内容不能为空")
		return
	}
	_, err := s.handler.messageSvc.Send(s.userID, s.name, chatRequest.SendMessageRequest{
		ProjectUuid: projectUuid,
		Content:     content,
	})
	if err != nil {
		s.sendError(err.Error())
	}
	// 成功的消息会经由 messages 流的快照投递回来
}

func (s *realtimeSession) deliverSnapshot(stream, projectUuid string, data interface{}) {
	_ = s.client.SendJSON(map[string]interface{}{
		"type":        "snapshot",
		"stream":      stream,
		"projectUuid": projectUuid,
		"data":        data,
	})
}

// deliverBadge records 为 nil 时只按当前状态重发角标，不重新计数
func (s *realtimeSession) deliverBadge(stream, projectUuid string, tracker *unread.Tracker, records []unread.Record) {
	count := tracker.Count()
	if records != nil {
		count = tracker.Apply(context.Background(), records)
	}
	_ = s.client.SendJSON(map[string]interface{}{
		"type":        "badge",
		"stream":      stream,
		"projectUuid": projectUuid,
		"count":       count,
		"display":     unread.DisplayCount(count),
	})
}

func (s *realtimeSession) sendError(msg string) {
	_ = s.client.SendJSON(map[string]interface{}{
		"type":    "error",
		"message": msg,
	})
}

func (s *realtimeSession) requireMember(projectUuid string) bool {
	if projectUuid == "" {
		s.sendError("缺少项目标识")
		return false
	}
	ok, err := s.handler.projectRepo.IsMember(projectUuid, s.userID)
	if err != nil {
		zlog.Error(err.Error())
		s.sendError("系统错误")
		return false
	}
	if !ok {
		s.sendError("你不是该项目成员")
		return false
	}
	return true
}

// cancelAll 连接断开时取消全部订阅，旧作用域不再收到任何投递
func (s *realtimeSession) cancelAll() {
	for key, st := range s.streams {
		st.sub.Cancel()
		delete(s.streams, key)
	}
}
