package service

import (
	"database/sql"
	"time"

	"Nexus/internal/modules/chat/application/dto/request"
	"Nexus/internal/modules/chat/application/dto/respond"
	"Nexus/internal/modules/chat/domain/entity"
	"Nexus/internal/modules/chat/domain/repository"
	projectRepository "Nexus/internal/modules/project/domain/repository"
	"Nexus/pkg/livequery"
	"Nexus/pkg/unread"
	"Nexus/pkg/util"
	"Nexus/pkg/xerr"
	"Nexus/pkg/zlog"
)

type MessageService interface {
	Send(userID string, userName string, req request.SendMessageRequest) (*respond.MessageItem, error)
	List(userID string, req request.GetMessageListRequest) ([]respond.MessageItem, error)
	// UnreadRecords 取最近消息的未读判定视图，给角标计算用
	UnreadRecords(projectID string) ([]unread.Record, error)
}

type messageServiceImpl struct {
	repo        repository.MessageRepository
	projectRepo projectRepository.ProjectRepository
	registry    *livequery.Registry
}

func NewMessageService(repo repository.MessageRepository, projectRepo projectRepository.ProjectRepository, registry *livequery.Registry) MessageService {
	return &messageServiceImpl{repo: repo, projectRepo: projectRepo, registry: registry}
}

func (s *messageServiceImpl) Send(userID string, userName string, req request.SendMessageRequest) (*respond.MessageItem, error) {
	ok, err := s.projectRepo.IsMember(req.ProjectUuid, userID)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	if !ok {
		return nil, xerr.New(xerr.Forbidden, "你不是该项目成员")
	}

	now := time.Now()
	m := entity.Message{
		Uuid:       util.GenerateMessageID(),
		ProjectId:  req.ProjectUuid,
		AuthorId:   userID,
		AuthorName: userName,
		Content:    req.Content,
		SendAt:     sql.NullTime{Time: now, Valid: true},
		CreatedAt:  now,
	}
	if err := s.repo.CreateMessage(&m); err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	s.registry.Notify(livequery.TopicProjectMessages(req.ProjectUuid))
	item := messageToItem(&m)
	return &item, nil
}

func (s *messageServiceImpl) List(userID string, req request.GetMessageListRequest) ([]respond.MessageItem, error) {
	ok, err := s.projectRepo.IsMember(req.ProjectUuid, userID)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	if !ok {
		return nil, xerr.New(xerr.Forbidden, "你不是该项目成员")
	}

	list, err := s.repo.ListByProject(req.ProjectUuid, req.Limit)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	out := make([]respond.MessageItem, 0, len(list))
	for i := range list {
		out = append(out, messageToItem(&list[i]))
	}
	return out, nil
}

func (s *messageServiceImpl) UnreadRecords(projectID string) ([]unread.Record, error) {
	list, err := s.repo.ListByProject(projectID, 0)
	if err != nil {
		return nil, err
	}
	records := make([]unread.Record, 0, len(list))
	for _, m := range list {
		r := unread.Record{ID: m.Uuid, AuthorID: m.AuthorId}
		if m.SendAt.Valid {
			t := m.SendAt.Time
			r.Timestamp = &t
		}
		records = append(records, r)
	}
	return records, nil
}

func messageToItem(m *entity.Message) respond.MessageItem {
	sendAt := ""
	if m.SendAt.Valid {
		sendAt = m.SendAt.Time.Format(time.RFC3339Nano)
	}
	return respond.MessageItem{
		Uuid:       m.Uuid,
		ProjectId:  m.ProjectId,
		AuthorId:   m.AuthorId,
		AuthorName: m.AuthorName,
		Content:    m.Content,
		SendAt:     sendAt,
	}
}
