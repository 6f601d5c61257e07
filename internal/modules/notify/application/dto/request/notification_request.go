package request

type MarkReadRequest struct {
	Uuid string `json:"uuid" binding:"required"`
}

type DeleteNotificationRequest struct {
	Uuid string `json:"uuid" binding:"required"`
}
