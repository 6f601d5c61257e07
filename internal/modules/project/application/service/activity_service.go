package service

import (
	"context"
	"encoding/json"
	"time"

	"Nexus/internal/config"
	"Nexus/internal/events"
	"Nexus/internal/modules/project/application/dto/respond"
	"Nexus/internal/modules/project/domain/entity"
	"Nexus/internal/modules/project/domain/repository"
	"Nexus/pkg/livequery"
	"Nexus/pkg/xerr"
	"Nexus/pkg/zlog"
)

// ActivityService 项目操作历史。Record 尽力而为，失败不影响主流程
type ActivityService interface {
	Record(projectID, actorID, actorName, action, targetType, targetID, detail string)
	History(projectID string, limit int) ([]respond.ActivityRespond, error)
}

type activityServiceImpl struct {
	repo      repository.ActivityLogRepository
	registry  *livequery.Registry
	publisher events.Publisher
}

func NewActivityService(repo repository.ActivityLogRepository, registry *livequery.Registry, publisher events.Publisher) ActivityService {
	return &activityServiceImpl{repo: repo, registry: registry, publisher: publisher}
}

func (s *activityServiceImpl) Record(projectID, actorID, actorName, action, targetType, targetID, detail string) {
	log := entity.ActivityLog{
		ProjectId:  projectID,
		ActorId:    actorID,
		ActorName:  actorName,
		Action:     action,
		TargetType: targetType,
		TargetId:   targetID,
		Detail:     detail,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.CreateLog(&log); err != nil {
		zlog.Warn("活动记录写入失败: " + err.Error())
		return
	}
	s.registry.Notify(livequery.TopicProjectHistory(projectID))

	go s.publish(log)
}

// publish 把活动事件推到 Kafka，供审计等下游消费
func (s *activityServiceImpl) publish(log entity.ActivityLog) {
	topic := config.GetConfig().KafkaConfig.ActivityTopic
	if topic == "" {
		return
	}
	payload, err := json.Marshal(log)
	if err != nil {
		zlog.Warn("活动事件序列化失败: " + err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = s.publisher.Publish(ctx, events.Message{
		Topic: topic,
		Key:   []byte(log.ProjectId),
		Value: payload,
	})
	if err != nil {
		zlog.Warn("活动事件投递失败: " + err.Error())
	}
}

func (s *activityServiceImpl) History(projectID string, limit int) ([]respond.ActivityRespond, error) {
	list, err := s.repo.ListByProject(projectID, limit)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	out := make([]respond.ActivityRespond, 0, len(list))
	for _, l := range list {
		out = append(out, respond.ActivityRespond{
			ProjectId:  l.ProjectId,
			ActorId:    l.ActorId,
			ActorName:  l.ActorName,
			Action:     l.Action,
			TargetType: l.TargetType,
			TargetId:   l.TargetId,
			Detail:     l.Detail,
			CreatedAt:  l.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}
