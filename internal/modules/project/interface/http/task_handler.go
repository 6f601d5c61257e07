package handler

import (
	"Nexus/internal/modules/project/application/dto/request"
	"Nexus/internal/modules/project/application/service"
	"Nexus/pkg/back"
	"Nexus/pkg/xerr"
	"Nexus/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	svc service.TaskService
}

func NewTaskHandler(svc service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req request.CreateTaskRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.Create(c.GetString("uuid"), c.GetString("username"), req)
	back.Result(c, data, err)
}

func (h *TaskHandler) Update(c *gin.Context) {
	var req request.UpdateTaskRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.Update(c.GetString("uuid"), c.GetString("username"), req)
	back.Result(c, data, err)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	var req request.DeleteTaskRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	err := h.svc.Delete(c.GetString("uuid"), c.GetString("username"), req.Uuid)
	back.Result(c, nil, err)
}

func (h *TaskHandler) ListByProject(c *gin.Context) {
	var req request.ListTasksRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.ListByProject(c.GetString("uuid"), req.ProjectUuid)
	back.Result(c, data, err)
}

func (h *TaskHandler) ListMyPending(c *gin.Context) {
	data, err := h.svc.ListPendingByAssignee(c.GetString("uuid"))
	back.Result(c, data, err)
}

func (h *TaskHandler) AddComment(c *gin.Context) {
	var req request.AddTaskCommentRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.AddComment(c.GetString("uuid"), c.GetString("username"), req)
	back.Result(c, data, err)
}
