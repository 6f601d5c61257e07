package handler

import (
	"Nexus/internal/modules/chat/application/dto/request"
	"Nexus/internal/modules/chat/application/service"
	"Nexus/pkg/back"
	"Nexus/pkg/xerr"
	"Nexus/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	svc service.MessageService
}

func NewMessageHandler(svc service.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

func (h *MessageHandler) Send(c *gin.Context) {
	var req request.SendMessageRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.Send(c.GetString("uuid"), c.GetString("username"), req)
	back.Result(c, data, err)
}

func (h *MessageHandler) List(c *gin.Context) {
	var req request.GetMessageListRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.List(c.GetString("uuid"), req)
	back.Result(c, data, err)
}
