package respond

type TaskCommentRespond struct {
	AuthorId   string `json:"authorId"`
	AuthorName string `json:"authorName"`
	Text       string `json:"text"`
	CreatedAt  string `json:"createdAt"`
}

type TaskRespond struct {
	Uuid         string               `json:"uuid"`
	ProjectId    string               `json:"projectId"`
	Label        string               `json:"label"`
	Module       string               `json:"module"`
	Page         string               `json:"page"`
	Description  string               `json:"description"`
	AssignedTo   string               `json:"assignedTo"`
	AssigneeName string               `json:"assigneeName"`
	Priority     string               `json:"priority"`
	StartDate    string               `json:"startDate"`
	DueDate      string               `json:"dueDate"`
	Status       string               `json:"status"`
	PercentDone  int                  `json:"percentDone"`
	Comments     []TaskCommentRespond `json:"comments"`
	Attachments  []string             `json:"attachments"`
	CreatedAt    string               `json:"createdAt"`
	UpdatedAt    string               `json:"updatedAt"`
}
