package respond

// MessageItem sendAt 为空串表示服务端时间还没回填
type MessageItem struct {
	Uuid       string `json:"uuid"`
	ProjectId  string `json:"projectId"`
	AuthorId   string `json:"authorId"`
	AuthorName string `json:"authorName"`
	Content    string `json:"content"`
	SendAt     string `json:"sendAt"`
}
