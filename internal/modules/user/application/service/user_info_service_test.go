package service

import (
	"context"
	"testing"
	"time"

	"Nexus/internal/config"
	"Nexus/internal/modules/user/application/dto/request"
	"Nexus/internal/modules/user/domain/entity"
	"Nexus/pkg/xerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.UserInfo
	deleted []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entity.UserInfo)}
}

func (f *fakeUserRepo) CreateUserInfo(user *entity.UserInfo) error {
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetUserInfoByEmail(email string) (*entity.UserInfo, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserInfoByUUIDWithoutPassword(uuid string) (*entity.UserInfo, error) {
	for _, u := range f.byEmail {
		if u.Uuid == uuid {
			cp := *u
			cp.Password = ""
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserBriefByUUIDs(uuids []string) ([]entity.UserBrief, error) {
	return nil, nil
}

func (f *fakeUserRepo) SearchUsersByEmailPrefix(prefix string, excludeUUID string, limit int) ([]entity.UserBrief, error) {
	var out []entity.UserBrief
	for _, u := range f.byEmail {
		if u.Uuid == excludeUUID {
			continue
		}
		if len(u.Email) >= len(prefix) && u.Email[:len(prefix)] == prefix {
			out = append(out, entity.UserBrief{Uuid: u.Uuid, Email: u.Email, Nickname: u.Nickname})
		}
	}
	return out, nil
}

func (f *fakeUserRepo) UpdatePresence(_ context.Context, uuid string, online bool, lastSeen time.Time) error {
	return nil
}

func (f *fakeUserRepo) DeleteByUUID(uuid string) error {
	f.deleted = append(f.deleted, uuid)
	return nil
}

type fakeVerifier struct {
	identity *FederatedIdentity
	err      error
}

func (f *fakeVerifier) Verify(_ context.Context, _ string, _ string) (*FederatedIdentity, error) {
	return f.identity, f.err
}

func setupTestConfig(t *testing.T) {
	t.Helper()
	conf := config.GetConfig()
	conf.JwtConfig.Key = "test-secret"
	conf.JwtConfig.ExpireHours = 1
	conf.JwtConfig.Issuer = "nexus-test"
	conf.JwtConfig.RecentLoginMinutes = 5
}

func TestRegisterHashesPasswordAndIssuesToken(t *testing.T) {
	setupTestConfig(t)
	repo := newFakeUserRepo()
	svc := NewUserInfoService(repo, &fakeVerifier{})

	resp, err := svc.Register(request.RegisterRequest{Email: "Alice@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.Equal(t, "alice", resp.Nickname)

	stored := repo.byEmail["alice@example.com"]
	require.NotNil(t, stored)
	// 密码必须是哈希，不能是明文
	assert.NotEqual(t, "secret1", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret1")))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	setupTestConfig(t)
	repo := newFakeUserRepo()
	svc := NewUserInfoService(repo, &fakeVerifier{})

	_, err := svc.Register(request.RegisterRequest{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.Register(request.RegisterRequest{Email: "a@b.com", Password: "other66"})
	require.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	setupTestConfig(t)
	repo := newFakeUserRepo()
	svc := NewUserInfoService(repo, &fakeVerifier{})

	_, err := svc.Register(request.RegisterRequest{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Login(request.LoginRequest{Email: "a@b.com", Password: "wrong"})
	require.Error(t, err)

	resp, err := svc.Login(request.LoginRequest{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestFederatedLoginCreatesAccountOnFirstUse(t *testing.T) {
	setupTestConfig(t)
	repo := newFakeUserRepo()
	svc := NewUserInfoService(repo, &fakeVerifier{identity: &FederatedIdentity{
		Subject: "g-123", Email: "bob@gmail.com", Name: "Bob",
	}})

	resp, err := svc.FederatedLogin(context.Background(), request.FederatedLoginRequest{Provider: "google", IdToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, "Bob", resp.Nickname)
	require.NotNil(t, repo.byEmail["bob@gmail.com"])
	assert.Equal(t, "google", repo.byEmail["bob@gmail.com"].Provider)

	// 再次登录复用同一账号
	again, err := svc.FederatedLogin(context.Background(), request.FederatedLoginRequest{Provider: "google", IdToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, resp.Uuid, again.Uuid)
}

func TestSearchByEmailPrefixExcludesSelfAndShortKeyword(t *testing.T) {
	setupTestConfig(t)
	repo := newFakeUserRepo()
	svc := NewUserInfoService(repo, &fakeVerifier{})

	r1, err := svc.Register(request.RegisterRequest{Email: "alice@b.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.Register(request.RegisterRequest{Email: "alicia@b.com", Password: "secret1"})
	require.NoError(t, err)

	// 关键字太短直接返回空
	out, err := svc.SearchByEmailPrefix(r1.Uuid, "al")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = svc.SearchByEmailPrefix(r1.Uuid, "ali")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "alicia@b.com", out[0].Email)
}

func TestDeleteAccountRequiresRecentLogin(t *testing.T) {
	setupTestConfig(t)
	repo := newFakeUserRepo()
	svc := NewUserInfoService(repo, &fakeVerifier{})

	err := svc.DeleteAccount("u1", time.Now().Add(-time.Hour))
	require.Error(t, err)
	var ce *xerr.CodeError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, xerr.RequiresRecentLogin, ce.Code)
	assert.Empty(t, repo.deleted)

	err = svc.DeleteAccount("u1", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, repo.deleted)
}
