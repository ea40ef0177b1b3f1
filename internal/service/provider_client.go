package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spec-kit/family-photo-service/internal/config"
)

// ProviderProfile is the verified identity the social-login collaborator
// yields after completing the OAuth2 handshake upstream.
type ProviderProfile struct {
	Email      string
	Name       string
	Attributes map[string]string
}

// ProviderClient exchanges an authorization code for a verified profile. The
// handshake itself (consent screen, redirects) happens outside this service.
type ProviderClient interface {
	Exchange(ctx context.Context, code string) (*ProviderProfile, error)
}

type oauthProviderClient struct {
	cfg    config.AuthConfig
	client *http.Client
}

// NewProviderClient builds an HTTP client against the configured provider
// token and user-info endpoints.
func NewProviderClient(cfg config.AuthConfig) ProviderClient {
	timeout := time.Duration(cfg.ProviderTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &oauthProviderClient{cfg: cfg, client: &http.Client{Timeout: timeout}}
}

func (p *oauthProviderClient) Exchange(ctx context.Context, code string) (*ProviderProfile, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", p.cfg.ProviderClientID)
	form.Set("client_secret", p.cfg.ProviderClientSecret)
	form.Set("redirect_uri", p.cfg.ProviderRedirectURI)
	form.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.ProviderTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider token exchange: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider token exchange: status %d", resp.StatusCode)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("decode provider token: %w", err)
	}

	return p.fetchProfile(ctx, tokenResp.AccessToken)
}

func (p *oauthProviderClient) fetchProfile(ctx context.Context, providerToken string) (*ProviderProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.ProviderUserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+providerToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider userinfo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider userinfo: status %d", resp.StatusCode)
	}

	var info struct {
		KakaoAccount struct {
			Email   string `json:"email"`
			Profile struct {
				Nickname string `json:"nickname"`
			} `json:"profile"`
		} `json:"kakao_account"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode provider profile: %w", err)
	}
	if info.KakaoAccount.Email == "" {
		return nil, fmt.Errorf("provider profile missing email")
	}

	return &ProviderProfile{
		Email: info.KakaoAccount.Email,
		Name:  info.KakaoAccount.Profile.Nickname,
		Attributes: map[string]string{
			"provider": "kakao",
		},
	}, nil
}

// StaticProviderClient returns a fixed profile for any code. Backs local runs
// and tests where no real provider is reachable.
type StaticProviderClient struct {
	Profile ProviderProfile
	Err     error
}

func (s *StaticProviderClient) Exchange(_ context.Context, _ string) (*ProviderProfile, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	profile := s.Profile
	return &profile, nil
}
