package handler_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cityops/auth-service/internal/config"
	"github.com/cityops/auth-service/internal/domain"
	httptransport "github.com/cityops/auth-service/internal/http"
	"github.com/cityops/auth-service/internal/http/handler"
	"github.com/cityops/auth-service/internal/repository"
	"github.com/cityops/auth-service/internal/service"
)

func newTestRouter(t *testing.T, users repository.UserRepository, ping pingerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		ServiceName:        "cityops-auth-test",
		QueryTimeout:       time.Second,
		CORSAllowedOrigins: []string{"*"},
		CORSAllowedMethods: []string{"GET", "POST", "OPTIONS"},
		CORSAllowedHeaders: []string{"Authorization", "Content-Type"},
	}

	svc := service.NewAuthService(users, cfg, zap.NewNop(), nil)
	if ping == nil {
		ping = func(context.Context) error { return nil }
	}
	return httptransport.NewRouter(cfg, handler.NewAuthHandler(svc), handler.NewHealthHandler(ping))
}

func seededUsers() repository.UserRepository {
	return &stubUserRepo{users: []domain.User{
		{ID: 1, Username: "alice", Password: "secret", Role: "admin", AssignedCity: "Lisbon"},
	}}
}

func doLogin(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginSuccess(t *testing.T) {
	router := newTestRouter(t, seededUsers(), nil)

	w := doLogin(t, router, `{"username":"alice","password":"secret"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "application/json")
	body, _ := io.ReadAll(w.Result().Body)
	require.Equal(t, `{"id":1,"username":"alice","role":"admin","assignedCity":"Lisbon"}`, string(body))
}

func TestLoginWrongPasswordReturnsEmpty401(t *testing.T) {
	router := newTestRouter(t, seededUsers(), nil)

	w := doLogin(t, router, `{"username":"alice","password":"wrong"}`)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "{}", w.Body.String())
}

func TestLoginUnknownUserReturnsEmpty401(t *testing.T) {
	router := newTestRouter(t, seededUsers(), nil)

	w := doLogin(t, router, `{"username":"bob","password":"x"}`)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "{}", w.Body.String())
}

func TestLoginMissingFieldsReturn400(t *testing.T) {
	router := newTestRouter(t, seededUsers(), nil)

	for _, body := range []string{
		`{"username":"alice"}`,
		`{"password":"secret"}`,
		`{}`,
		`{"username":"  ","password":"secret"}`,
	} {
		w := doLogin(t, router, body)
		require.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
		require.Contains(t, w.Body.String(), "invalid_request")
	}
}

func TestLoginMalformedBodyReturns400(t *testing.T) {
	router := newTestRouter(t, seededUsers(), nil)

	w := doLogin(t, router, `{"username":`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "invalid_request")
}

func TestLoginStoreUnavailableReturnsGeneric500(t *testing.T) {
	repo := &stubUserRepo{err: errors.New("dial tcp 10.0.0.5:5432: connection refused")}
	router := newTestRouter(t, repo, nil)

	w := doLogin(t, router, `{"username":"alice","password":"secret"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "server_error")
	require.NotContains(t, w.Body.String(), "10.0.0.5")
	require.NotContains(t, w.Body.String(), "connection refused")
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, seededUsers(), nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "ok")
}

func TestHealthzStoreDown(t *testing.T) {
	down := pingerFunc(func(context.Context) error { return errors.New("pool closed") })
	router := newTestRouter(t, seededUsers(), down)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestLoginCORSPreflight(t *testing.T) {
	router := newTestRouter(t, seededUsers(), nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type stubUserRepo struct {
	users []domain.User
	err   error
}

func (s *stubUserRepo) GetByCredentials(ctx context.Context, username, password string) (domain.User, error) {
	if s.err != nil {
		return domain.User{}, s.err
	}
	for _, u := range s.users {
		if u.Username == username && u.Password == password {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrNotFound
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	if s.err != nil {
		return domain.User{}, s.err
	}
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrNotFound
}

func (s *stubUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if s.err != nil {
		return domain.User{}, s.err
	}
	s.users = append(s.users, user)
	return user, nil
}
