package request

// 日期字段统一用 2006-01-02 格式，空串表示未设置

type CreateTaskRequest struct {
	ProjectUuid string `json:"projectUuid" binding:"required"`
	Label       string `json:"label"`
	Module      string `json:"module"`
	Page        string `json:"page"`
	Description string `json:"description"`
	AssignedTo  string `json:"assignedTo"`
	Priority    string `json:"priority"`
	StartDate   string `json:"startDate"`
	DueDate     string `json:"dueDate"`
	Status      string `json:"status"`
	PercentDone int    `json:"percentDone"`
}

type UpdateTaskRequest struct {
	Uuid        string   `json:"uuid" binding:"required"`
	Label       string   `json:"label"`
	Module      string   `json:"module"`
	Page        string   `json:"page"`
	Description string   `json:"description"`
	AssignedTo  string   `json:"assignedTo"`
	Priority    string   `json:"priority"`
	StartDate   string   `json:"startDate"`
	DueDate     string   `json:"dueDate"`
	Status      string   `json:"status"`
	PercentDone int      `json:"percentDone"`
	Attachments []string `json:"attachments"`
}

type DeleteTaskRequest struct {
	Uuid string `json:"uuid" binding:"required"`
}

type ListTasksRequest struct {
	ProjectUuid string `json:"projectUuid" binding:"required"`
}

type AddTaskCommentRequest struct {
	TaskUuid string `json:"taskUuid" binding:"required"`
	Text     string `json:"text" binding:"required"`
}
