package service

import (
	"errors"
	"strings"
	"time"

	notifyService "Nexus/internal/modules/notify/application/service"
	notifyEntity "Nexus/internal/modules/notify/domain/entity"
	notifyRepository "Nexus/internal/modules/notify/domain/repository"
	"Nexus/internal/modules/project/application/dto/request"
	"Nexus/internal/modules/project/application/dto/respond"
	"Nexus/internal/modules/project/domain/entity"
	"Nexus/internal/modules/project/domain/repository"
	userEntity "Nexus/internal/modules/user/domain/entity"
	userRepository "Nexus/internal/modules/user/domain/repository"
	"Nexus/pkg/livequery"
	"Nexus/pkg/util"
	"Nexus/pkg/xerr"
	"Nexus/pkg/zlog"

	"gorm.io/gorm"
)

type ProjectService interface {
	Create(ownerID string, ownerName string, req request.CreateProjectRequest) (*respond.ProjectRespond, error)
	List(userID string) ([]respond.ProjectRespond, error)
	Get(userID string, projectUuid string) (*respond.ProjectRespond, error)
	Update(userID string, userName string, req request.UpdateProjectRequest) error
	Delete(userID string, projectUuid string) error
	AddMember(callerID string, callerName string, req request.AddMemberRequest) error
	RemoveMember(callerID string, callerName string, req request.RemoveMemberRequest) error
}

type projectServiceImpl struct {
	repo      repository.ProjectRepository
	uow       repository.ProjectUnitOfWork
	userRepo  userRepository.UserInfoRepository
	notifySvc notifyService.NotificationService
	activity  ActivityService
	registry  *livequery.Registry
}

func NewProjectService(
	repo repository.ProjectRepository,
	uow repository.ProjectUnitOfWork,
	userRepo userRepository.UserInfoRepository,
	notifySvc notifyService.NotificationService,
	activity ActivityService,
	registry *livequery.Registry,
) ProjectService {
	return &projectServiceImpl{
		repo:      repo,
		uow:       uow,
		userRepo:  userRepo,
		notifySvc: notifySvc,
		activity:  activity,
		registry:  registry,
	}
}

func (s *projectServiceImpl) Create(ownerID string, ownerName string, req request.CreateProjectRequest) (*respond.ProjectRespond, error) {
	now := time.Now()
	p := entity.Project{
		Uuid:        util.GenerateProjectID(),
		Name:        req.Name,
		Description: req.Description,
		OwnerId:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateProject(&p); err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	owner, err := s.userRepo.GetUserInfoByUUIDWithoutPassword(ownerID)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	member := entity.ProjectMember{
		ProjectId: p.Uuid,
		UserId:    ownerID,
		Nickname:  owner.Nickname,
		Email:     owner.Email,
		Role:      entity.RoleOwner,
		JoinedAt:  now,
	}
	if err := s.repo.AddMember(&member); err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	// 建项目时顺带拉人，单个失败不影响项目创建
	for _, uid := range req.MemberUuids {
		if uid == ownerID {
			continue
		}
		u, err := s.userRepo.GetUserInfoByUUIDWithoutPassword(uid)
		if err != nil {
			zlog.Warn("初始成员不存在: " + uid)
			continue
		}
		m := entity.ProjectMember{
			ProjectId: p.Uuid,
			UserId:    uid,
			Nickname:  u.Nickname,
			Email:     u.Email,
			Role:      entity.RoleMember,
			JoinedAt:  now,
		}
		if err := s.repo.AddMember(&m); err != nil {
			zlog.Warn("初始成员写入失败: " + err.Error())
			continue
		}
		if err := s.notifySvc.Notify(uid, notifyEntity.TypeProjectInvite,
			ownerName+" 邀请你加入项目「"+p.Name+"」", p.Uuid, p.Name); err != nil {
			zlog.Warn("入项目通知发送失败: " + err.Error())
		}
		s.registry.Notify(livequery.TopicUserProjects(uid))
	}

	s.activity.Record(p.Uuid, ownerID, ownerName, entity.ActionProjectCreated, "project", p.Uuid, p.Name)
	s.registry.Notify(livequery.TopicUserProjects(ownerID))
	return &respond.ProjectRespond{
		Uuid:        p.Uuid,
		Name:        p.Name,
		Description: p.Description,
		OwnerId:     p.OwnerId,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *projectServiceImpl) List(userID string) ([]respond.ProjectRespond, error) {
	list, err := s.repo.ListByMember(userID)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	out := make([]respond.ProjectRespond, 0, len(list))
	for _, p := range list {
		out = append(out, respond.ProjectRespond{
			Uuid:        p.Uuid,
			Name:        p.Name,
			Description: p.Description,
			OwnerId:     p.OwnerId,
			CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

func (s *projectServiceImpl) Get(userID string, projectUuid string) (*respond.ProjectRespond, error) {
	ok, err := s.repo.IsMember(projectUuid, userID)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	if !ok {
		return nil, xerr.New(xerr.Forbidden, "你不是该项目成员")
	}

	p, err := s.repo.GetByUuid(projectUuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.New(xerr.NotFound, "项目不存在")
		}
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	members, err := s.repo.ListMembers(projectUuid)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	memberResponds := make([]respond.MemberRespond, 0, len(members))
	for _, m := range members {
		memberResponds = append(memberResponds, respond.MemberRespond{
			UserId:   m.UserId,
			Nickname: m.Nickname,
			Email:    m.Email,
			Role:     m.Role,
		})
	}

	return &respond.ProjectRespond{
		Uuid:        p.Uuid,
		Name:        p.Name,
		Description: p.Description,
		OwnerId:     p.OwnerId,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		Members:     memberResponds,
	}, nil
}

func (s *projectServiceImpl) Update(userID string, userName string, req request.UpdateProjectRequest) error {
	p, err := s.getOwnedProject(req.Uuid, userID)
	if err != nil {
		return err
	}

	p.Name = req.Name
	p.Description = req.Description
	p.UpdatedAt = time.Now()
	if err := s.repo.UpdateProject(p); err != nil {
		zlog.Error(err.Error())
		return xerr.ErrServerError
	}

	s.activity.Record(p.Uuid, userID, userName, entity.ActionProjectEdited, "project", p.Uuid, p.Name)
	s.notifyMembersProjects(p.Uuid)
	return nil
}

// Delete 删除项目及其任务、成员、历史和相关通知，同一事务内给成员写入删除通知
func (s *projectServiceImpl) Delete(userID string, projectUuid string) error {
	p, err := s.getOwnedProject(projectUuid, userID)
	if err != nil {
		return err
	}

	members, err := s.repo.ListMembers(projectUuid)
	if err != nil {
		zlog.Error(err.Error())
		return xerr.ErrServerError
	}

	err = s.uow.Transaction(func(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, logRepo repository.ActivityLogRepository, notifyRepo notifyRepository.NotificationRepository) error {
		if err := taskRepo.DeleteByProject(projectUuid); err != nil {
			return err
		}
		if err := projectRepo.DeleteMembersByProject(projectUuid); err != nil {
			return err
		}
		if err := logRepo.DeleteByProject(projectUuid); err != nil {
			return err
		}
		if err := notifyRepo.DeleteByProject(projectUuid); err != nil {
			return err
		}
		if err := projectRepo.DeleteByUuid(projectUuid); err != nil {
			return err
		}

		notifications := make([]notifyEntity.Notification, 0, len(members))
		for _, m := range members {
			if m.UserId == userID {
				continue
			}
			notifications = append(notifications, notifyEntity.Notification{
				Uuid:        util.GenerateNotificationID(),
				UserId:      m.UserId,
				Type:        notifyEntity.TypeProjectDeleted,
				Message:     "项目「" + p.Name + "」已被删除",
				ProjectName: p.Name,
				CreatedAt:   time.Now(),
			})
		}
		return notifyRepo.CreateNotifications(notifications)
	})
	if err != nil {
		zlog.Error(err.Error())
		return xerr.ErrServerError
	}

	for _, m := range members {
		s.registry.Notify(livequery.TopicUserProjects(m.UserId))
		s.registry.Notify(livequery.TopicUserNotifications(m.UserId))
		s.registry.Notify(livequery.TopicUserPendingTasks(m.UserId))
	}
	return nil
}

func (s *projectServiceImpl) AddMember(callerID string, callerName string, req request.AddMemberRequest) error {
	p, err := s.getOwnedProject(req.ProjectUuid, callerID)
	if err != nil {
		return err
	}

	user, err := s.resolveUser(req.UserUuid, req.Email)
	if err != nil {
		return err
	}

	exists, err := s.repo.IsMember(req.ProjectUuid, user.Uuid)
	if err != nil {
		zlog.Error(err.Error())
		return xerr.ErrServerError
	}
	if exists {
		return xerr.New(xerr.BadRequest, "该用户已是项目成员")
	}

	member := entity.ProjectMember{
		ProjectId: req.ProjectUuid,
		UserId:    user.Uuid,
		Nickname:  user.Nickname,
		Email:     user.Email,
		Role:      entity.RoleMember,
		JoinedAt:  time.Now(),
	}
	if err := s.repo.AddMember(&member); err != nil {
		zlog.Error(err.Error())
		return xerr.ErrServerError
	}

	s.activity.Record(p.Uuid, callerID, callerName, entity.ActionMemberAdded, "member", user.Uuid, user.Nickname)
	if err := s.notifySvc.Notify(user.Uuid, notifyEntity.TypeProjectInvite,
		callerName+" 邀请你加入项目「"+p.Name+"」", p.Uuid, p.Name); err != nil {
		zlog.Warn("入项目通知发送失败: " + err.Error())
	}
	s.registry.Notify(livequery.TopicUserProjects(user.Uuid))
	return nil
}

// resolveUser 按 uuid 或邮箱定位用户，uuid 优先
func (s *projectServiceImpl) resolveUser(userUuid, email string) (*userEntity.UserInfo, error) {
	if userUuid == "" && email == "" {
		return nil, xerr.New(xerr.BadRequest, "缺少用户标识")
	}

	var u *userEntity.UserInfo
	var err error
	if userUuid != "" {
		u, err = s.userRepo.GetUserInfoByUUIDWithoutPassword(userUuid)
	} else {
		u, err = s.userRepo.GetUserInfoByEmail(strings.ToLower(email))
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.New(xerr.NotFound, "用户不存在")
		}
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	return u, nil
}

func (s *projectServiceImpl) RemoveMember(callerID string, callerName string, req request.RemoveMemberRequest) error {
	p, err := s.getOwnedProject(req.ProjectUuid, callerID)
	if err != nil {
		return err
	}
	if req.UserUuid == p.OwnerId {
		return xerr.New(xerr.BadRequest, "不能移除项目所有者")
	}

	if err := s.repo.RemoveMember(req.ProjectUuid, req.UserUuid); err != nil {
		zlog.Error(err.Error())
		return xerr.ErrServerError
	}

	s.activity.Record(p.Uuid, callerID, callerName, entity.ActionMemberRemoved, "member", req.UserUuid, "")
	s.registry.Notify(livequery.TopicUserProjects(req.UserUuid))
	return nil
}

// getOwnedProject 取项目并校验 userID 是所有者
func (s *projectServiceImpl) getOwnedProject(projectUuid string, userID string) (*entity.Project, error) {
	p, err := s.repo.GetByUuid(projectUuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.New(xerr.NotFound, "项目不存在")
		}
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	if p.OwnerId != userID {
		return nil, xerr.New(xerr.Forbidden, "只有项目所有者可以执行该操作")
	}
	return p, nil
}

func (s *projectServiceImpl) notifyMembersProjects(projectUuid string) {
	members, err := s.repo.ListMembers(projectUuid)
	if err != nil {
		zlog.Warn(err.Error())
		return
	}
	for _, m := range members {
		s.registry.Notify(livequery.TopicUserProjects(m.UserId))
	}
}
