package respond

type MemberRespond struct {
	UserId   string `json:"userId"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type ProjectRespond struct {
	Uuid        string          `json:"uuid"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	OwnerId     string          `json:"ownerId"`
	CreatedAt   string          `json:"createdAt"`
	Members     []MemberRespond `json:"members,omitempty"`
}

type ActivityRespond struct {
	ProjectId  string `json:"projectId"`
	ActorId    string `json:"actorId"`
	ActorName  string `json:"actorName"`
	Action     string `json:"action"`
	TargetType string `json:"targetType"`
	TargetId   string `json:"targetId"`
	Detail     string `json:"detail"`
	CreatedAt  string `json:"createdAt"`
}
