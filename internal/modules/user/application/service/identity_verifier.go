package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// FederatedIdentity 第三方身份校验结果
type FederatedIdentity struct {
	Subject string
	Email   string
	Name    string
	Avatar  string
}

// IdentityVerifier 校验第三方 idToken 并提取用户身份
type IdentityVerifier interface {
	Verify(ctx context.Context, provider string, idToken string) (*FederatedIdentity, error)
}

// googleVerifier 通过 Google tokeninfo 端点校验 idToken
type googleVerifier struct {
	httpClient *http.Client
	endpoint   string
}

func NewGoogleVerifier() IdentityVerifier {
	return &googleVerifier{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		endpoint:   "https://oauth2.googleapis.com/tokeninfo",
	}
}

type googleTokenInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (g *googleVerifier) Verify(ctx context.Context, provider string, idToken string) (*FederatedIdentity, error) {
	if provider != "google" {
		return nil, fmt.Errorf("不支持的登录方式: %s", provider)
	}

	reqURL := g.endpoint + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google tokeninfo 返回 %d", resp.StatusCode)
	}

	var info googleTokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.Sub == "" || info.Email == "" {
		return nil, fmt.Errorf("idToken 缺少必要的身份字段")
	}

	return &FederatedIdentity{
		Subject: info.Sub,
		Email:   info.Email,
		Name:    info.Name,
		Avatar:  info.Picture,
	}, nil
}
