package request

type SendMessageRequest struct {
	ProjectUuid string `json:"projectUuid" binding:"required"`
	Content     string `json:"content" binding:"required"`
}

type GetMessageListRequest struct {
	ProjectUuid string `json:"projectUuid" binding:"required"`
	Limit       int    `json:"limit"`
}
