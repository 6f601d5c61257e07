package service

import (
	"testing"

	notifyEntity "Nexus/internal/modules/notify/domain/entity"
	"Nexus/internal/modules/project/application/dto/request"
	"Nexus/internal/modules/project/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncStatusAndPercent(t *testing.T) {
	tests := []struct {
		name        string
		status      string
		percent     int
		wantStatus  string
		wantPercent int
	}{
		{"已完成强制 100", entity.StatusCompleted, 40, entity.StatusCompleted, 100},
		{"待办强制 0", entity.StatusPending, 80, entity.StatusPending, 0},
		{"进行中保留进度", entity.StatusInProgress, 55, entity.StatusInProgress, 55},
		{"进行中进度越界取上限", entity.StatusInProgress, 140, entity.StatusInProgress, 100},
		{"进行中进度越界取下限", entity.StatusInProgress, -3, entity.StatusInProgress, 0},
		{"未知状态回退为待办", "Whatever", 50, entity.StatusPending, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, percent := syncStatusAndPercent(tt.status, tt.percent)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantPercent, percent)
		})
	}
}

func TestTaskLifecycleWithAssigneeNotifications(t *testing.T) {
	env := newProjectTestEnv(t)
	env.seedUser(t, "owner", "owner@x.com", "Owner")
	env.seedUser(t, "bob", "bob@x.com", "Bob")

	p, err := env.svc.Create("owner", "Owner", request.CreateProjectRequest{Name: "p"})
	require.NoError(t, err)
	require.NoError(t, env.svc.AddMember("owner", "Owner", request.AddMemberRequest{
		ProjectUuid: p.Uuid, UserUuid: "bob",
	}))

	task, err := env.tasks.Create("owner", "Owner", request.CreateTaskRequest{
		ProjectUuid: p.Uuid,
		Label:       "TASK-01",
		AssignedTo:  "bob",
		Status:      entity.StatusInProgress,
		PercentDone: 30,
		DueDate:     "2026-09-15",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bob", task.AssigneeName)
	assert.Equal(t, 30, task.PercentDone)
	assert.Equal(t, "2026-09-15", task.DueDate)

	// 被指派人收到 assignment 通知
	list, err := env.notifyRepo.ListByUser("bob")
	require.NoError(t, err)
	var kinds []string
	for _, n := range list {
		kinds = append(kinds, n.Type)
	}
	assert.Contains(t, kinds, notifyEntity.TypeAssignment)

	// 改为已完成，进度被拉到 100
	updated, err := env.tasks.Update("owner", "Owner", request.UpdateTaskRequest{
		Uuid:        task.Uuid,
		Label:       task.Label,
		AssignedTo:  "bob",
		Status:      entity.StatusCompleted,
		PercentDone: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, 100, updated.PercentDone)

	// 已完成的任务不再出现在待办里
	pending, err := env.tasks.ListPendingByAssignee("bob")
	require.NoError(t, err)
	assert.Empty(t, pending)

	require.NoError(t, env.tasks.Delete("owner", "Owner", task.Uuid))
	list, err = env.notifyRepo.ListByUser("bob")
	require.NoError(t, err)
	kinds = kinds[:0]
	for _, n := range list {
		kinds = append(kinds, n.Type)
	}
	assert.Contains(t, kinds, notifyEntity.TypeTaskDeleted)
}

func TestNonMemberCannotTouchTasks(t *testing.T) {
	env := newProjectTestEnv(t)
	env.seedUser(t, "owner", "owner@x.com", "Owner")
	env.seedUser(t, "eve", "eve@x.com", "Eve")

	p, err := env.svc.Create("owner", "Owner", request.CreateProjectRequest{Name: "p"})
	require.NoError(t, err)

	_, err = env.tasks.Create("eve", "Eve", request.CreateTaskRequest{
		ProjectUuid: p.Uuid, Label: "TASK-01",
	})
	require.Error(t, err)

	_, err = env.tasks.ListByProject("eve", p.Uuid)
	require.Error(t, err)
}

func TestTaskCommentsAppend(t *testing.T) {
	env := newProjectTestEnv(t)
	env.seedUser(t, "owner", "owner@x.com", "Owner")

	p, err := env.svc.Create("owner", "Owner", request.CreateProjectRequest{Name: "p"})
	require.NoError(t, err)
	task, err := env.tasks.Create("owner", "Owner", request.CreateTaskRequest{
		ProjectUuid: p.Uuid, Label: "TASK-01",
	})
	require.NoError(t, err)

	withComment, err := env.tasks.AddComment("owner", "Owner", request.AddTaskCommentRequest{
		TaskUuid: task.Uuid, Text: "第一版已提交",
	})
	require.NoError(t, err)
	require.Len(t, withComment.Comments, 1)
	assert.Equal(t, "第一版已提交", withComment.Comments[0].Text)
	assert.Equal(t, "Owner", withComment.Comments[0].AuthorName)
}
