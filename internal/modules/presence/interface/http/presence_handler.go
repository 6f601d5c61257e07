package handler

import (
	"Nexus/internal/modules/presence/application/service"
	"Nexus/pkg/back"

	"github.com/gin-gonic/gin"
)

type PresenceHandler struct {
	tracker *service.Tracker
}

func NewPresenceHandler(tracker *service.Tracker) *PresenceHandler {
	return &PresenceHandler{tracker: tracker}
}

// Logout 显式登出，尽力标记离线。长连接由客户端自行关闭
func (h *PresenceHandler) Logout(c *gin.Context) {
	uuid := c.GetString("uuid")
	h.tracker.Offline(uuid)
	back.Result(c, nil, nil)
}
