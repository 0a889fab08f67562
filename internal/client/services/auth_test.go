package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/moodjournal/internal/client/models"
)

func TestAuthAPI_Login(t *testing.T) {
	api := newFakeAPI().respond("POST", "/auth/login", `{"access_token":"T1","token_type":"bearer"}`)
	a := NewAuthAPI(api)

	token, err := a.Login(context.Background(), "a@x.io", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "T1", token)

	c := api.lastCall()
	assert.Equal(t, models.LoginRequest{Email: "a@x.io", Password: "secret123"}, c.Body)
}

func TestAuthAPI_Signup(t *testing.T) {
	api := newFakeAPI().respond("POST", "/auth/signup", `{"access_token":"T2"}`)
	a := NewAuthAPI(api)

	token, err := a.Signup(context.Background(), "b@x.io", "bee", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "T2", token)
	assert.Equal(t, models.SignupRequest{Email: "b@x.io", Username: "bee", Password: "secret123"}, api.lastCall().Body)
}

func TestAuthAPI_EmptyToken(t *testing.T) {
	api := newFakeAPI().respond("POST", "/auth/login", `{"token_type":"bearer"}`)

	_, err := NewAuthAPI(api).Login(context.Background(), "a@x.io", "pw")
	require.ErrorIs(t, err, ErrNoToken)
}

func TestAuthAPI_ErrorPassesThrough(t *testing.T) {
	boom := errors.New("boom")
	api := newFakeAPI().fail("POST", "/auth/login", boom)

	_, err := NewAuthAPI(api).Login(context.Background(), "a@x.io", "pw")
	require.ErrorIs(t, err, boom)
}

func TestAuthAPI_Me(t *testing.T) {
	api := newFakeAPI().respond("GET", "/auth/me", `{"id":7,"email":"a@x.io","username":"ann","created_at":"2024-05-01T10:00:00.123456"}`)

	u, err := NewAuthAPI(api).Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, "ann", u.Username)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 123456000, time.UTC), u.CreatedAt.Time)
}
