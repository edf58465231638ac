package api

import (
	"context"
	"net/http"
	"net/url"

	"flowrelay/pkg/models"
)

type IAuthAPI interface {
	Signup(ctx context.Context, req models.SignupRequest) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	VerifyEmail(ctx context.Context, token string) (string, error)
	CurrentUser(ctx context.Context) (*models.User, error)
}

type authAPI struct {
	rt rt
}

func (a authAPI) Signup(ctx context.Context, req models.SignupRequest) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := a.rt.do(ctx, http.MethodPost, "/signup", nil, req, &resp, false); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Login exchanges credentials for a bearer token. The endpoint speaks
// OAuth2 password-form, so the email travels as "username".
func (a authAPI) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := a.rt.doForm(ctx, "/login", form, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (a authAPI) VerifyEmail(ctx context.Context, token string) (string, error) {
	q := url.Values{}
	q.Set("token", token)

	var resp struct {
		Message string `json:"message"`
	}
	if err := a.rt.do(ctx, http.MethodGet, "/verify-email", q, nil, &resp, false); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (a authAPI) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := a.rt.do(ctx, http.MethodGet, "/me", nil, nil, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}
