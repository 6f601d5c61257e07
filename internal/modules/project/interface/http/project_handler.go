package handler

import (
	"Nexus/internal/modules/project/application/dto/request"
	"Nexus/internal/modules/project/application/service"
	"Nexus/pkg/back"
	"Nexus/pkg/xerr"
	"Nexus/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	svc      service.ProjectService
	activity service.ActivityService
}

func NewProjectHandler(svc service.ProjectService, activity service.ActivityService) *ProjectHandler {
	return &ProjectHandler{svc: svc, activity: activity}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req request.CreateProjectRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.Create(c.GetString("uuid"), c.GetString("username"), req)
	back.Result(c, data, err)
}

func (h *ProjectHandler) List(c *gin.Context) {
	data, err := h.svc.List(c.GetString("uuid"))
	back.Result(c, data, err)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	var req request.GetProjectRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.Get(c.GetString("uuid"), req.Uuid)
	back.Result(c, data, err)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	var req request.UpdateProjectRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	err := h.svc.Update(c.GetString("uuid"), c.GetString("username"), req)
	back.Result(c, nil, err)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	var req request.DeleteProjectRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	err := h.svc.Delete(c.GetString("uuid"), req.Uuid)
	back.Result(c, nil, err)
}

func (h *ProjectHandler) AddMember(c *gin.Context) {
	var req request.AddMemberRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	err := h.svc.AddMember(c.GetString("uuid"), c.GetString("username"), req)
	back.Result(c, nil, err)
}

func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	var req request.RemoveMemberRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	err := h.svc.RemoveMember(c.GetString("uuid"), c.GetString("username"), req)
	back.Result(c, nil, err)
}

func (h *ProjectHandler) History(c *gin.Context) {
	var req request.HistoryRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.activity.History(req.ProjectUuid, req.Limit)
	back.Result(c, data, err)
}
