package request

type CreateProjectRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	MemberUuids []string `json:"memberUuids"`
}

type GetProjectRequest struct {
	Uuid string `json:"uuid" binding:"required"`
}

type UpdateProjectRequest struct {
	Uuid        string `json:"uuid" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type DeleteProjectRequest struct {
	Uuid string `json:"uuid" binding:"required"`
}

// AddMemberRequest userUuid 和 email 二选一，uuid 优先
type AddMemberRequest struct {
	ProjectUuid string `json:"projectUuid" binding:"required"`
	UserUuid    string `json:"userUuid"`
	Email       string `json:"email"`
}

type RemoveMemberRequest struct {
	ProjectUuid string `json:"projectUuid" binding:"required"`
	UserUuid    string `json:"userUuid" binding:"required"`
}

type HistoryRequest struct {
	ProjectUuid string `json:"projectUuid" binding:"required"`
	Limit       int    `json:"limit"`
}
