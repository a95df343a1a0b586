package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admin-AK47/MRBS/internal/config"
)

func TestRegisterEnforcesEmailDomain(t *testing.T) {
	h := NewAuthHandler(config.Config{EmailDomain: "corp.example.com"}, nil, nil)

	c, rec := post(t, "/v1/auth/register",
		`{"full_name":"Dana","email":"dana@gmail.com","password":"hunter22"}`, 0)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "corp.example.com")
}

func TestRegisterRequiresAllFields(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil, nil)

	for _, body := range []string{
		`{}`,
		`{"email":"a@b.c","password":"x"}`,
		`{"full_name":"Dana","password":"x"}`,
		`{"full_name":"Dana","email":"a@b.c"}`,
	} {
		c, rec := post(t, "/v1/auth/register", body, 0)
		require.NoError(t, h.Register(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil, nil)

	c, rec := post(t, "/v1/auth/login", `{"email":"a@b.c"}`, 0)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshRequiresToken(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil, nil)

	c, rec := post(t, "/v1/auth/refresh", `{"refresh_token":""}`, 0)
	require.NoError(t, h.Refresh(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
