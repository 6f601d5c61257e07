package request

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Nickname string `json:"nickname"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// FederatedLoginRequest 第三方登录，idToken 由前端 SDK 获取
type FederatedLoginRequest struct {
	Provider string `json:"provider" binding:"required"`
	IdToken  string `json:"idToken" binding:"required"`
}

type SendPasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type SearchUserRequest struct {
	Keyword string `json:"keyword" binding:"required"`
}
