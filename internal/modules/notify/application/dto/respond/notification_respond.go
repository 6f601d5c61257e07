package respond

type NotificationRespond struct {
	Uuid        string `json:"uuid"`
	Type        string `json:"type"`
	Message     string `json:"message"`
	ProjectId   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	Read        bool   `json:"read"`
	CreatedAt   string `json:"createdAt"`
}
