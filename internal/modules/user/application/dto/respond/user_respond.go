package respond

type LoginRespond struct {
	Uuid     string `json:"uuid"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Token    string `json:"token"`
}

type RegisterRespond struct {
	Uuid     string `json:"uuid"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Token    string `json:"token"`
}

type UserInfoRespond struct {
	Uuid       string `json:"uuid"`
	Email      string `json:"email"`
	Nickname   string `json:"nickname"`
	Phone      string `json:"phone"`
	Avatar     string `json:"avatar"`
	Provider   string `json:"provider"`
	IsOnline   bool   `json:"isOnline"`
	LastSeenAt string `json:"lastSeenAt"`
}

type UserBriefRespond struct {
	Uuid     string `json:"uuid"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}
