package service

import (
	"time"

	"Nexus/internal/modules/notify/application/dto/respond"
	"Nexus/internal/modules/notify/domain/entity"
	"Nexus/internal/modules/notify/domain/repository"
	"Nexus/pkg/livequery"
	"Nexus/pkg/unread"
	"Nexus/pkg/util"
	"Nexus/pkg/xerr"
	"Nexus/pkg/zlog"
)

type NotificationService interface {
	List(userID string) ([]respond.NotificationRespond, error)
	MarkRead(userID string, uuid string) error
	MarkAllRead(userID string) error
	Delete(userID string, uuid string) error
	// Notify 写入一条通知并推送给目标用户的订阅流
	Notify(userID string, ntype string, message string, projectID string, projectName string) error
	// UnreadRecords 取通知的未读判定视图，给角标计算用
	UnreadRecords(userID string) ([]unread.Record, error)
}

type notificationServiceImpl struct {
	repo     repository.NotificationRepository
	registry *livequery.Registry
}

func NewNotificationService(repo repository.NotificationRepository, registry *livequery.Registry) NotificationService {
	return &notificationServiceImpl{repo: repo, registry: registry}
}

func (s *notificationServiceImpl) List(userID string) ([]respond.NotificationRespond, error) {
	list, err := s.repo.ListByUser(userID)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	out := make([]respond.NotificationRespond, 0, len(list))
	for _, n := range list {
		out = append(out, respond.NotificationRespond{
			Uuid:        n.Uuid,
			Type:        n.Type,
			Message:     n.Message,
			ProjectId:   n.ProjectId,
			ProjectName: n.ProjectName,
			Read:        n.Read,
			CreatedAt:   n.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

func (s *notificationServiceImpl) MarkRead(userID string, uuid string) error {
	if err := s.repo.MarkRead(userID, uuid); err != nil {
		zlog.Error(err.Error())
		return xerr.ErrServerError
	}
	s.registry.Notify(livequery.TopicUserNotifications(userID))
	return nil
}

func (s *notificationServiceImpl) MarkAllRead(userID string) error {
	if err := s.repo.MarkAllRead(userID); err != nil {
		zlog.Error(err.Error())
		return xerr.ErrServerError
	}
	s.registry.Notify(livequery.TopicUserNotifications(userID))
	return nil
}

func (s *notificationServiceImpl) Delete(userID string, uuid string) error {
	if err := s.repo.Delete(userID, uuid); err != nil {
		zlog.Error(err.Error())
		return xerr.ErrServerError
	}
	s.registry.Notify(livequery.TopicUserNotifications(userID))
	return nil
}

// UnreadRecords 通知没有"作者"概念，AuthorID 留空，对任何查看者都算他人产生
func (s *notificationServiceImpl) UnreadRecords(userID string) ([]unread.Record, error) {
	list, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	records := make([]unread.Record, 0, len(list))
	for _, n := range list {
		t := n.CreatedAt
		records = append(records, unread.Record{ID: n.Uuid, Timestamp: &t})
	}
	return records, nil
}

func (s *notificationServiceImpl) Notify(userID string, ntype string, message string, projectID string, projectName string) error {
	n := entity.Notification{
		Uuid:        util.GenerateNotificationID(),
		UserId:      userID,
		Type:        ntype,
		Message:     message,
		ProjectId:   projectID,
		ProjectName: projectName,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.CreateNotification(&n); err != nil {
		zlog.Error(err.Error())
		return xerr.ErrServerError
	}
	s.registry.Notify(livequery.TopicUserNotifications(userID))
	return nil
}
