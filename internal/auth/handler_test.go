package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/brightcart/brightcart/internal/auth"
	"github.com/brightcart/brightcart/internal/shared"
)

type stubRepo struct {
	user *auth.User
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, shared.ErrNotFound
	}
	return s.user, nil
}

func (s *stubRepo) FindByID(ctx context.Context, id int64) (*auth.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, shared.ErrNotFound
	}
	return s.user, nil
}

func newHandler(t *testing.T, repo auth.Repository) (*auth.Handler, *auth.SessionStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessions := auth.NewSessionStore(client, "test_session", time.Hour)
	return auth.NewHandler(nil, auth.NewService(repo), sessions), sessions
}

func activeUser(t *testing.T) *auth.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	require.NoError(t, err)
	return &auth.User{ID: 7, Email: "admin@brightcart.test", PasswordHash: string(hashed), IsActive: true}
}

func TestLoginIssuesSession(t *testing.T) {
	handler, sessions := newHandler(t, &stubRepo{user: activeUser(t)})

	body := `{"email":"admin@brightcart.test","password":"correct-horse"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	res := httptest.NewRecorder()

	r := newRouter(handler)
	r.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	require.Contains(t, res.Body.String(), `"token"`)

	token := extractToken(t, res.Body.String())
	userID, err := sessions.Lookup(context.Background(), token)
	require.NoError(t, err)
	require.EqualValues(t, 7, userID)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	handler, _ := newHandler(t, &stubRepo{user: activeUser(t)})

	body := `{"email":"admin@brightcart.test","password":"wrong-password"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	res := httptest.NewRecorder()
	newRouter(handler).ServeHTTP(res, req)

	require.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	user := activeUser(t)
	user.IsActive = false
	handler, _ := newHandler(t, &stubRepo{user: user})

	body := `{"email":"admin@brightcart.test","password":"correct-horse"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	res := httptest.NewRecorder()
	newRouter(handler).ServeHTTP(res, req)

	require.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestLogoutRevokesSession(t *testing.T) {
	handler, sessions := newHandler(t, &stubRepo{user: activeUser(t)})
	token, _, err := sessions.Issue(context.Background(), 7)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	newRouter(handler).ServeHTTP(res, req)

	require.Equal(t, http.StatusNoContent, res.Code)
	_, err = sessions.Lookup(context.Background(), token)
	require.ErrorIs(t, err, auth.ErrSessionNotFound)
}
