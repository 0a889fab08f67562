package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/moodjournal/internal/client/models"
)

// ErrNoToken is returned when the backend accepts credentials but the
// response carries no access token.
var ErrNoToken = errors.New("no access token in response")

// AuthAPI wraps the /auth endpoints.
//
// Contract:
//   - Signup: create an account and return its access token.
//   - Login: exchange credentials for an access token.
//   - Me: fetch the profile of the token currently attached by the client.
//
// Errors from the transport are returned unchanged so callers can match
// apiclient.ErrUnauthorized and apiclient.ErrUnavailable.
type AuthAPI interface {
	Signup(ctx context.Context, email, username, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context) (*models.User, error)
}

type authAPI struct {
	api API
}

func NewAuthAPI(api API) AuthAPI {
	return &authAPI{api: api}
}

func (a *authAPI) Signup(ctx context.Context, email, username, password string) (string, error) {
	var resp models.TokenResponse
	req := models.SignupRequest{Email: email, Username: username, Password: password}
	if err := a.api.Post(ctx, "/auth/signup", req, &resp); err != nil {
		return "", err
	}
	return accessToken(resp)
}

func (a *authAPI) Login(ctx context.Context, email, password string) (string, error) {
	var resp models.TokenResponse
	req := models.LoginRequest{Email: email, Password: password}
	if err := a.api.Post(ctx, "/auth/login", req, &resp); err != nil {
		return "", err
	}
	return accessToken(resp)
}

func (a *authAPI) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := a.api.Get(ctx, "/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func accessToken(resp models.TokenResponse) (string, error) {
	if resp.AccessToken == "" {
		return "", fmt.Errorf("auth: %w", ErrNoToken)
	}
	return resp.AccessToken, nil
}
