package handler

import (
	"Nexus/internal/modules/notify/application/dto/request"
	"Nexus/internal/modules/notify/application/service"
	"Nexus/pkg/back"
	"Nexus/pkg/xerr"
	"Nexus/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) List(c *gin.Context) {
	data, err := h.svc.List(c.GetString("uuid"))
	back.Result(c, data, err)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var req request.MarkReadRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	err := h.svc.MarkRead(c.GetString("uuid"), req.Uuid)
	back.Result(c, nil, err)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	err := h.svc.MarkAllRead(c.GetString("uuid"))
	back.Result(c, nil, err)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	var req request.DeleteNotificationRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	err := h.svc.Delete(c.GetString("uuid"), req.Uuid)
	back.Result(c, nil, err)
}
