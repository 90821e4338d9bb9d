package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martosdev/barbershop-backend/internal/auth"
	"github.com/martosdev/barbershop-backend/internal/user"
)

type fakeUserService struct {
	loginErr error
}

func (f *fakeUserService) Register(context.Context, string, string, string, string) (*user.User, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeUserService) Login(_ context.Context, email, _ string) (*user.User, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &user.User{
		ID:       "a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d",
		Email:    email,
		Role:     auth.RoleAdmin,
		IsActive: true,
	}, nil
}

func (f *fakeUserService) GetByID(context.Context, string) (*user.User, error) {
	return nil, user.ErrNotFound
}

func postLogin(t *testing.T, loginErr error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewAuthHandler(&fakeUserService{loginErr: loginErr}, auth.NewJWTManager("test-secret", time.Hour))
	r := gin.New()
	r.POST("/v1/auth/login", h.Login)

	body := `{"email":"papu@barbershop.test","password":"hunter2hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginStatusPerFailure(t *testing.T) {
	tests := []struct {
		name       string
		loginErr   error
		wantStatus int
	}{
		{"wrong password", user.ErrInvalidCredentials, http.StatusUnauthorized},
		{"deactivated account", user.ErrInactiveUser, http.StatusUnauthorized},
		{"repository outage", errors.New("failed to fetch user by email: connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postLogin(t, tt.loginErr)

			assert.Equal(t, tt.wantStatus, w.Code)
			// An outage must not read like a credential problem.
			if tt.wantStatus == http.StatusInternalServerError {
				assert.NotContains(t, w.Body.String(), "invalid email or password")
			}
		})
	}
}

func TestLoginSuccessIssuesToken(t *testing.T) {
	w := postLogin(t, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "access_token")
}
