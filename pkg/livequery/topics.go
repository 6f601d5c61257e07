package livequery

// 订阅主题的命名约定。发布方和订阅方必须用同一套构造函数

func TopicUserProjects(userID string) string {
	return "user:" + userID + ":projects"
}

func TopicUserNotifications(userID string) string {
	return "user:" + userID + ":notifications"
}

func TopicUserPendingTasks(userID string) string {
	return "user:" + userID + ":pending_tasks"
}

func TopicProjectTasks(projectID string) string {
	return "project:" + projectID + ":tasks"
}

func TopicProjectMessages(projectID string) string {
	return "project:" + projectID + ":messages"
}

func TopicProjectHistory(projectID string) string {
	return "project:" + projectID + ":history"
}
