package service

import (
	"database/sql"
	"errors"
	"time"

	notifyService "Nexus/internal/modules/notify/application/service"
	notifyEntity "Nexus/internal/modules/notify/domain/entity"
	"Nexus/internal/modules/project/application/dto/request"
	"Nexus/internal/modules/project/application/dto/respond"
	"Nexus/internal/modules/project/domain/entity"
	"Nexus/internal/modules/project/domain/repository"
	"Nexus/pkg/livequery"
	"Nexus/pkg/util"
	"Nexus/pkg/xerr"
	"Nexus/pkg/zlog"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type TaskService interface {
	Create(userID string, userName string, req request.CreateTaskRequest) (*respond.TaskRespond, error)
	Update(userID string, userName string, req request.UpdateTaskRequest) (*respond.TaskRespond, error)
	Delete(userID string, userName string, taskUuid string) error
	ListByProject(userID string, projectUuid string) ([]respond.TaskRespond, error)
	// ListPendingByAssignee 跨项目取指派给 userID 且未完成的任务
	ListPendingByAssignee(userID string) ([]respond.TaskRespond, error)
	AddComment(userID string, userName string, req request.AddTaskCommentRequest) (*respond.TaskRespond, error)
}

type taskServiceImpl struct {
	repo        repository.TaskRepository
	projectRepo repository.ProjectRepository
	notifySvc   notifyService.NotificationService
	activity    ActivityService
	registry    *livequery.Registry
}

func NewTaskService(
	repo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	notifySvc notifyService.NotificationService,
	activity ActivityService,
	registry *livequery.Registry,
) TaskService {
	return &taskServiceImpl{
		repo:        repo,
		projectRepo: projectRepo,
		notifySvc:   notifySvc,
		activity:    activity,
		registry:    registry,
	}
}

// syncStatusAndPercent 状态与完成度联动：已完成必为 100，待办必为 0
func syncStatusAndPercent(status string, percent int) (string, int) {
	switch status {
	case entity.StatusCompleted:
		return status, 100
	case entity.StatusPending:
		return status, 0
	case entity.StatusInProgress:
		if percent < 0 {
			percent = 0
		}
		if percent > 100 {
			percent = 100
		}
		return status, percent
	default:
		return entity.StatusPending, 0
	}
}

func parseDate(s string) sql.NullTime {
	if s == "" {
		return sql.NullTime{}
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

func formatDate(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format(dateLayout)
}

func (s *taskServiceImpl) Create(userID string, userName string, req request.CreateTaskRequest) (*respond.TaskRespond, error) {
	p, err := s.requireMembership(req.ProjectUuid, userID)
	if err != nil {
		return nil, err
	}

	status, percent := syncStatusAndPercent(req.Status, req.PercentDone)
	priority := req.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}

	assigneeName := ""
	if req.AssignedTo != "" {
		assigneeName, err = s.memberNickname(req.ProjectUuid, req.AssignedTo)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	t := entity.Task{
		Uuid:         util.GenerateTaskID(),
		ProjectId:    req.ProjectUuid,
		Label:        req.Label,
		Module:       req.Module,
		Page:         req.Page,
		Description:  req.Description,
		AssignedTo:   req.AssignedTo,
		AssigneeName: assigneeName,
		Priority:     priority,
		StartDate:    parseDate(req.StartDate),
		DueDate:      parseDate(req.DueDate),
		Status:       status,
		PercentDone:  percent,
		Comments:     []entity.TaskComment{},
		Attachments:  []string{},
		CreatedBy:    userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateTask(&t); err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	s.activity.Record(t.ProjectId, userID, userName, entity.ActionTaskCreated, "task", t.Uuid, t.Label)
	if t.AssignedTo != "" && t.AssignedTo != userID {
		if err := s.notifySvc.Notify(t.AssignedTo, notifyEntity.TypeAssignment,
			userName+" 在「"+p.Name+"」给你指派了任务 "+t.Label, p.Uuid, p.Name); err != nil {
			zlog.Warn("任务指派通知发送失败: " + err.Error())
		}
		s.registry.Notify(livequery.TopicUserPendingTasks(t.AssignedTo))
	}
	s.registry.Notify(livequery.TopicProjectTasks(t.ProjectId))

	resp := taskToRespond(&t)
	return &resp, nil
}

func (s *taskServiceImpl) Update(userID string, userName string, req request.UpdateTaskRequest) (*respond.TaskRespond, error) {
	t, err := s.repo.GetByUuid(req.Uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.New(xerr.NotFound, "任务不存在")
		}
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	p, err := s.requireMembership(t.ProjectId, userID)
	if err != nil {
		return nil, err
	}

	prevAssignee := t.AssignedTo
	status, percent := syncStatusAndPercent(req.Status, req.PercentDone)

	t.Label = req.Label
	t.Module = req.Module
	t.Page = req.Page
	t.Description = req.Description
	t.AssignedTo = req.AssignedTo
	t.Priority = req.Priority
	if t.Priority == "" {
		t.Priority = entity.PriorityMedium
	}
	t.StartDate = parseDate(req.StartDate)
	t.DueDate = parseDate(req.DueDate)
	t.Status = status
	t.PercentDone = percent
	if req.Attachments != nil {
		t.Attachments = req.Attachments
	}
	t.UpdatedAt = time.Now()

	t.AssigneeName = ""
	if t.AssignedTo != "" {
		t.AssigneeName, err = s.memberNickname(t.ProjectId, t.AssignedTo)
		if err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateTask(t); err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	s.activity.Record(t.ProjectId, userID, userName, entity.ActionTaskUpdated, "task", t.Uuid, t.Label)
	if t.AssignedTo != "" && t.AssignedTo != userID {
		ntype := notifyEntity.TypeTaskUpdate
		msg := userName + " 更新了「" + p.Name + "」中你的任务 " + t.Label
		if t.AssignedTo != prevAssignee {
			ntype = notifyEntity.TypeAssignment
			msg = userName + " 在「" + p.Name + "」给你指派了任务 " + t.Label
		}
		if err := s.notifySvc.Notify(t.AssignedTo, ntype, msg, p.Uuid, p.Name); err != nil {
			zlog.Warn("任务更新通知发送失败: " + err.Error())
		}
	}
	s.registry.Notify(livequery.TopicProjectTasks(t.ProjectId))
	if prevAssignee != "" {
		s.registry.Notify(livequery.TopicUserPendingTasks(prevAssignee))
	}
	if t.AssignedTo != "" && t.AssignedTo != prevAssignee {
		s.registry.Notify(livequery.TopicUserPendingTasks(t.AssignedTo))
	}

	resp := taskToRespond(t)
	return &resp, nil
}

func (s *taskServiceImpl) Delete(userID string, userName string, taskUuid string) error {
	t, err := s.repo.GetByUuid(taskUuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return xerr.New(xerr.NotFound, "任务不存在")
		}
		zlog.Error(err.Error())
		return xerr.ErrServerError
	}
	p, err := s.requireMembership(t.ProjectId, userID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteByUuid(taskUuid); err != nil {
		zlog.Error(err.Error())
		return xerr.ErrServerError
	}

	s.activity.Record(t.ProjectId, userID, userName, entity.ActionTaskDeleted, "task", t.Uuid, t.Label)
	if t.AssignedTo != "" && t.AssignedTo != userID {
		if err := s.notifySvc.Notify(t.AssignedTo, notifyEntity.TypeTaskDeleted,
			userName+" 删除了「"+p.Name+"」中你的任务 "+t.Label, p.Uuid, p.Name); err != nil {
			zlog.Warn("任务删除通知发送失败: " + err.Error())
		}
		s.registry.Notify(livequery.TopicUserPendingTasks(t.AssignedTo))
	}
	s.registry.Notify(livequery.TopicProjectTasks(t.ProjectId))
	return nil
}

func (s *taskServiceImpl) ListByProject(userID string, projectUuid string) ([]respond.TaskRespond, error) {
	if _, err := s.requireMembership(projectUuid, userID); err != nil {
		return nil, err
	}

	list, err := s.repo.ListByProject(projectUuid)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	out := make([]respond.TaskRespond, 0, len(list))
	for i := range list {
		out = append(out, taskToRespond(&list[i]))
	}
	return out, nil
}

func (s *taskServiceImpl) ListPendingByAssignee(userID string) ([]respond.TaskRespond, error) {
	list, err := s.repo.ListPendingByAssignee(userID)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	out := make([]respond.TaskRespond, 0, len(list))
	for i := range list {
		out = append(out, taskToRespond(&list[i]))
	}
	return out, nil
}

func (s *taskServiceImpl) AddComment(userID string, userName string, req request.AddTaskCommentRequest) (*respond.TaskRespond, error) {
	t, err := s.repo.GetByUuid(req.TaskUuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.New(xerr.NotFound, "任务不存在")
		}
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	if _, err := s.requireMembership(t.ProjectId, userID); err != nil {
		return nil, err
	}

	t.Comments = append(t.Comments, entity.TaskComment{
		AuthorId:   userID,
		AuthorName: userName,
		Text:       req.Text,
		CreatedAt:  time.Now(),
	})
	t.UpdatedAt = time.Now()
	if err := s.repo.UpdateTask(t); err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	s.registry.Notify(livequery.TopicProjectTasks(t.ProjectId))
	resp := taskToRespond(t)
	return &resp, nil
}

func (s *taskServiceImpl) requireMembership(projectUuid string, userID string) (*entity.Project, error) {
	ok, err := s.projectRepo.IsMember(projectUuid, userID)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	if !ok {
		return nil, xerr.New(xerr.Forbidden, "你不是该项目成员")
	}
	p, err := s.projectRepo.GetByUuid(projectUuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.New(xerr.NotFound, "项目不存在")
		}
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	return p, nil
}

func (s *taskServiceImpl) memberNickname(projectUuid string, userID string) (string, error) {
	members, err := s.projectRepo.ListMembers(projectUuid)
	if err != nil {
		zlog.Error(err.Error())
		return "", xerr.ErrServerError
	}
	for _, m := range members {
		if m.UserId == userID {
			return m.Nickname, nil
		}
	}
	return "", xerr.New(xerr.BadRequest, "被指派人不是项目成员")
}

func taskToRespond(t *entity.Task) respond.TaskRespond {
	comments := make([]respond.TaskCommentRespond, 0, len(t.Comments))
	for _, c := range t.Comments {
		comments = append(comments, respond.TaskCommentRespond{
			AuthorId:   c.AuthorId,
			AuthorName: c.AuthorName,
			Text:       c.Text,
			CreatedAt:  c.CreatedAt.Format(time.RFC3339),
		})
	}
	attachments := t.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	return respond.TaskRespond{
		Uuid:         t.Uuid,
		ProjectId:    t.ProjectId,
		Label:        t.Label,
		Module:       t.Module,
		Page:         t.Page,
		Description:  t.Description,
		AssignedTo:   t.AssignedTo,
		AssigneeName: t.AssigneeName,
		Priority:     t.Priority,
		StartDate:    formatDate(t.StartDate),
		DueDate:      formatDate(t.DueDate),
		Status:       t.Status,
		PercentDone:  t.PercentDone,
		Comments:     comments,
		Attachments:  attachments,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    t.UpdatedAt.Format(time.RFC3339),
	}
}
