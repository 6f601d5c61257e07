package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"Nexus/internal/modules/chat/application/dto/request"
	"Nexus/internal/modules/chat/application/dto/respond"
	"Nexus/internal/modules/chat/domain/entity"
	chatPersistence "Nexus/internal/modules/chat/infrastructure/persistence"
	projectEntity "Nexus/internal/modules/project/domain/entity"
	projectPersistence "Nexus/internal/modules/project/infrastructure/persistence"
	"Nexus/pkg/livequery"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMessageTestEnv(t *testing.T) (*gorm.DB, MessageService, *livequery.Registry) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&projectEntity.Project{},
		&projectEntity.ProjectMember{},
		&entity.Message{},
	))

	registry := livequery.NewRegistry()
	svc := NewMessageService(
		chatPersistence.NewMessageRepository(db),
		projectPersistence.NewProjectRepository(db),
		registry,
	)
	return db, svc, registry
}

func seedMember(t *testing.T, db *gorm.DB, projectID, userID string) {
	t.Helper()
	require.NoError(t, db.Create(&projectEntity.ProjectMember{
		ProjectId: projectID, UserId: userID, Role: projectEntity.RoleMember, JoinedAt: time.Now(),
	}).Error)
}

func TestSendPersistsWithServerTimestamp(t *testing.T) {
	db, svc, _ := newMessageTestEnv(t)
	seedMember(t, db, "P1", "u1")

	item, err := svc.Send("u1", "Alice", request.SendMessageRequest{
		ProjectUuid: "P1", Content: "大家好",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, item.Uuid)
	// 服务端时间戳在落库时写入
	assert.NotEmpty(t, item.SendAt)

	list, err := svc.List("u1", request.GetMessageListRequest{ProjectUuid: "P1"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "大家好", list[0].Content)
}

func TestSendRejectsNonMember(t *testing.T) {
	db, svc, _ := newMessageTestEnv(t)
	seedMember(t, db, "P1", "u1")

	_, err := svc.Send("eve", "Eve", request.SendMessageRequest{
		ProjectUuid: "P1", Content: "hi",
	})
	require.Error(t, err)

	_, err = svc.List("eve", request.GetMessageListRequest{ProjectUuid: "P1"})
	require.Error(t, err)
}

func TestUnreadRecordsKeepNilTimestamps(t *testing.T) {
	db, svc, _ := newMessageTestEnv(t)
	seedMember(t, db, "P1", "u1")

	// 一条有服务端时间戳，一条还没回填
	now := time.Now()
	require.NoError(t, db.Create(&entity.Message{
		Uuid: "M1", ProjectId: "P1", AuthorId: "u1", Content: "a",
		SendAt: sql.NullTime{Time: now, Valid: true}, CreatedAt: now,
	}).Error)
	require.NoError(t, db.Create(&entity.Message{
		Uuid: "M2", ProjectId: "P1", AuthorId: "u2", Content: "b",
		CreatedAt: now,
	}).Error)

	records, err := svc.UnreadRecords("P1")
	require.NoError(t, err)
	require.Len(t, records, 2)

	byID := map[string]int{}
	for i, r := range records {
		byID[r.ID] = i
	}
	require.NotNil(t, records[byID["M1"]].Timestamp)
	assert.Nil(t, records[byID["M2"]].Timestamp)
	assert.Equal(t, "u2", records[byID["M2"]].AuthorID)
}

func waitMessages(t *testing.T, ch chan interface{}) []respond.MessageItem {
	t.Helper()
	select {
	case snap := <-ch:
		items, ok := snap.([]respond.MessageItem)
		require.True(t, ok)
		return items
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot delivery")
		return nil
	}
}

func TestSendNotifiesSubscribers(t *testing.T) {
	db, svc, registry := newMessageTestEnv(t)
	seedMember(t, db, "P1", "u1")

	got := make(chan interface{}, 4)
	sub := registry.Subscribe(livequery.TopicProjectMessages("P1"),
		func(ctx context.Context) (interface{}, error) {
			return svc.List("u1", request.GetMessageListRequest{ProjectUuid: "P1"})
		},
		func(snapshot interface{}) { got <- snapshot })
	defer sub.Cancel()

	// 初始快照为空
	first := waitMessages(t, got)
	assert.Empty(t, first)

	_, err := svc.Send("u1", "Alice", request.SendMessageRequest{ProjectUuid: "P1", Content: "hi"})
	require.NoError(t, err)

	second := waitMessages(t, got)
	require.Len(t, second, 1)
	assert.Equal(t, "hi", second[0].Content)
}
