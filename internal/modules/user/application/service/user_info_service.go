package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"Nexus/internal/config"
	"Nexus/internal/modules/user/application/dto/request"
	"Nexus/internal/modules/user/application/dto/respond"
	"Nexus/internal/modules/user/domain/entity"
	"Nexus/internal/modules/user/domain/repository"
	"Nexus/pkg/redis"
	"Nexus/pkg/util"
	"Nexus/pkg/util/myjwt"
	"Nexus/pkg/xerr"
	"Nexus/pkg/zlog"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultAvatar = "https://cube.elemecdn.com/0/88/03b0d39583f48206768a7534e55bcpng.png"

const resetTokenPrefix = "nexus:pwdreset:"
const resetTokenTTL = 30 * time.Minute

// 搜索关键字至少 3 个字符，结果最多 5 条
const (
	searchMinKeywordLen = 3
	searchResultLimit   = 5
)

// UserInfoService 接口定义 (Application Service)
type UserInfoService interface {
	Register(req request.RegisterRequest) (*respond.RegisterRespond, error)
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	FederatedLogin(ctx context.Context, req request.FederatedLoginRequest) (*respond.LoginRespond, error)
	SendPasswordReset(ctx context.Context, req request.SendPasswordResetRequest) error
	GetUserInfo(uuid string) (*respond.UserInfoRespond, error)
	SearchByEmailPrefix(callerUUID string, keyword string) ([]respond.UserBriefRespond, error)
	DeleteAccount(uuid string, issuedAt time.Time) error
}

type userInfoServiceImpl struct {
	repo     repository.UserInfoRepository
	verifier IdentityVerifier
}

// NewUserInfoService 构造函数
func NewUserInfoService(repo repository.UserInfoRepository, verifier IdentityVerifier) UserInfoService {
	return &userInfoServiceImpl{repo: repo, verifier: verifier}
}

func (u *userInfoServiceImpl) Register(req request.RegisterRequest) (*respond.RegisterRespond, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	_, err := u.repo.GetUserInfoByEmail(email)
	if err == nil {
		return nil, xerr.New(xerr.BadRequest, "该邮箱已注册")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	nickname := req.Nickname
	if nickname == "" {
		// 默认用邮箱前缀做昵称
		nickname = strings.SplitN(email, "@", 2)[0]
	}

	newUser := entity.UserInfo{
		Uuid:      util.GenerateUUID(),
		Email:     email,
		Nickname:  nickname,
		Phone:     req.Phone,
		Password:  string(hash),
		Avatar:    defaultAvatar,
		Provider:  "password",
		Status:    0,
		CreatedAt: time.Now(),
	}
	if err := u.repo.CreateUserInfo(&newUser); err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	token, err := myjwt.GenerateToken(newUser.Uuid, newUser.Email)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	return &respond.RegisterRespond{
		Uuid:     newUser.Uuid,
		Email:    newUser.Email,
		Nickname: newUser.Nickname,
		Avatar:   newUser.Avatar,
		Token:    token,
	}, nil
}

func (u *userInfoServiceImpl) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := u.repo.GetUserInfoByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.New(xerr.Unauthorized, "邮箱或密码错误")
		}
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	if user.Status != 0 {
		return nil, xerr.New(xerr.Forbidden, "账号已被禁用")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, xerr.New(xerr.Unauthorized, "邮箱或密码错误")
	}

	token, err := myjwt.GenerateToken(user.Uuid, user.Email)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	return &respond.LoginRespond{
		Uuid:     user.Uuid,
		Email:    user.Email,
		Nickname: user.Nickname,
		Avatar:   user.Avatar,
		Token:    token,
	}, nil
}

// FederatedLogin 第三方登录，账号不存在时按第三方身份自动建号
func (u *userInfoServiceImpl) FederatedLogin(ctx context.Context, req request.FederatedLoginRequest) (*respond.LoginRespond, error) {
	identity, err := u.verifier.Verify(ctx, req.Provider, req.IdToken)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.New(xerr.Unauthorized, "第三方登录校验失败")
	}

	email := strings.ToLower(identity.Email)
	user, err := u.repo.GetUserInfoByEmail(email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zlog.Error(err.Error())
			return nil, xerr.ErrServerError
		}
		nickname := identity.Name
		if nickname == "" {
			nickname = strings.SplitN(email, "@", 2)[0]
		}
		avatar := identity.Avatar
		if avatar == "" {
			avatar = defaultAvatar
		}
		newUser := entity.UserInfo{
			Uuid:      util.GenerateUUID(),
			Email:     email,
			Nickname:  nickname,
			Avatar:    avatar,
			Provider:  req.Provider,
			Status:    0,
			CreatedAt: time.Now(),
		}
		if err := u.repo.CreateUserInfo(&newUser); err != nil {
			zlog.Error(err.Error())
			return nil, xerr.ErrServerError
		}
		user = &newUser
	}
	if user.Status != 0 {
		return nil, xerr.New(xerr.Forbidden, "账号已被禁用")
	}

	token, err := myjwt.GenerateToken(user.Uuid, user.Email)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	return &respond.LoginRespond{
		Uuid:     user.Uuid,
		Email:    user.Email,
		Nickname: user.Nickname,
		Avatar:   user.Avatar,
		Token:    token,
	}, nil
}

// SendPasswordReset 生成重置令牌写入 Redis。无论邮箱是否存在都返回成功，避免探测账号
func (u *userInfoServiceImpl) SendPasswordReset(ctx context.Context, req request.SendPasswordResetRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	_, err := u.repo.GetUserInfoByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		zlog.Error(err.Error())
		return xerr.ErrServerError
	}

	token := util.GenerateShortUUID()
	if err := redis.Set(ctx, resetTokenPrefix+token, email, resetTokenTTL); err != nil {
		zlog.Error(err.Error())
		return xerr.ErrServerError
	}
	// 邮件投递由外部任务消费令牌完成，这里只记录
	zlog.Info("密码重置令牌已生成: " + email)
	return nil
}

func (u *userInfoServiceImpl) GetUserInfo(uuid string) (*respond.UserInfoRespond, error) {
	user, err := u.repo.GetUserInfoByUUIDWithoutPassword(uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.New(xerr.NotFound, "用户不存在")
		}
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	lastSeen := ""
	if user.LastSeenAt.Valid {
		lastSeen = user.LastSeenAt.Time.Format(time.RFC3339)
	}
	return &respond.UserInfoRespond{
		Uuid:       user.Uuid,
		Email:      user.Email,
		Nickname:   user.Nickname,
		Phone:      user.Phone,
		Avatar:     user.Avatar,
		Provider:   user.Provider,
		IsOnline:   user.IsOnline,
		LastSeenAt: lastSeen,
	}, nil
}

// SearchByEmailPrefix 按邮箱前缀找人，排除搜索者本人
func (u *userInfoServiceImpl) SearchByEmailPrefix(callerUUID string, keyword string) ([]respond.UserBriefRespond, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if len(keyword) < searchMinKeywordLen {
		return []respond.UserBriefRespond{}, nil
	}

	users, err := u.repo.SearchUsersByEmailPrefix(keyword, callerUUID, searchResultLimit)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	out := make([]respond.UserBriefRespond, 0, len(users))
	for _, v := range users {
		out = append(out, respond.UserBriefRespond{
			Uuid:     v.Uuid,
			Email:    v.Email,
			Nickname: v.Nickname,
			Avatar:   v.Avatar,
		})
	}
	return out, nil
}

// DeleteAccount 注销账号。登录时间超出窗口时要求重新登录后再操作
func (u *userInfoServiceImpl) DeleteAccount(uuid string, issuedAt time.Time) error {
	minutes := config.GetConfig().JwtConfig.RecentLoginMinutes
	if minutes <= 0 {
		minutes = 5
	}
	if time.Since(issuedAt) > time.Duration(minutes)*time.Minute {
		return xerr.ErrRecentLogin
	}

	if err := u.repo.DeleteByUUID(uuid); err != nil {
		zlog.Error(err.Error())
		return xerr.ErrServerError
	}
	return nil
}
