package handler

import (
	"time"

	"Nexus/internal/modules/user/application/dto/request"
	"Nexus/internal/modules/user/application/service"
	"Nexus/pkg/back"
	"Nexus/pkg/xerr"
	"Nexus/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type UserInfoHandler struct {
	svc service.UserInfoService
}

func NewUserInfoHandler(svc service.UserInfoService) *UserInfoHandler {
	return &UserInfoHandler{svc: svc}
}

func (h *UserInfoHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.Register(req)
	back.Result(c, data, err)
}

func (h *UserInfoHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.Login(req)
	back.Result(c, data, err)
}

func (h *UserInfoHandler) FederatedLogin(c *gin.Context) {
	var req request.FederatedLoginRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.FederatedLogin(c.Request.Context(), req)
	back.Result(c, data, err)
}

func (h *UserInfoHandler) SendPasswordReset(c *gin.Context) {
	var req request.SendPasswordResetRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	err := h.svc.SendPasswordReset(c.Request.Context(), req)
	back.Result(c, nil, err)
}

func (h *UserInfoHandler) GetMyInfo(c *gin.Context) {
	uuid := c.GetString("uuid")
	data, err := h.svc.GetUserInfo(uuid)
	back.Result(c, data, err)
}

func (h *UserInfoHandler) SearchUser(c *gin.Context) {
	var req request.SearchUserRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.SearchByEmailPrefix(c.GetString("uuid"), req.Keyword)
	back.Result(c, data, err)
}

func (h *UserInfoHandler) DeleteAccount(c *gin.Context) {
	uuid := c.GetString("uuid")
	issuedAt, _ := c.Get("issued_at")
	t, ok := issuedAt.(time.Time)
	if !ok {
		back.Error(c, xerr.Unauthorized, "invalid token")
		return
	}
	err := h.svc.DeleteAccount(uuid, t)
	back.Result(c, nil, err)
}
