package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnershi/runnershi/internal/application"
	"github.com/runnershi/runnershi/internal/domain/entity"
	"github.com/runnershi/runnershi/internal/domain/repository"
	"github.com/runnershi/runnershi/pkg/helpers"
	"github.com/runnershi/runnershi/pkg/validation"
)

type stubAccountService struct {
	res       *application.AuthResponse
	err       error
	gotSignup application.SignupInput
	gotLogin  application.LoginInput
	calls     int
}

func (s *stubAccountService) Signup(_ context.Context, in application.SignupInput) (*application.AuthResponse, error) {
	s.calls++
	s.gotSignup = in
	return s.res, s.err
}

func (s *stubAccountService) Login(_ context.Context, in application.LoginInput) (*application.AuthResponse, error) {
	s.calls++
	s.gotLogin = in
	return s.res, s.err
}

func newEngine(svc AccountService) (*gin.Engine, *test.Hook) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	logger, hook := test.NewNullLogger()
	h := NewAuthHandler(svc, logger)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("request_id", "req-42"); c.Next() })
	r.POST("/api/auth/signup", h.Signup)
	r.POST("/api/auth/login", h.Login)
	r.GET("/hello", Hello)
	return r, hook
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

const validSignup = `{"email":"test@example.com","password":"password123","nickname":"runnerPeter","countryCode":"KR","regionCode":"KR-11"}`

func TestSignup_OK(t *testing.T) {
	svc := &stubAccountService{res: &application.AuthResponse{UserID: 1, Email: "test@example.com", Nickname: "runnerPeter"}}
	r, _ := newEngine(svc)

	w := do(r, http.MethodPost, "/api/auth/signup", validSignup)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":1,"email":"test@example.com","nickname":"runnerPeter"}`, w.Body.String())
	assert.Equal(t, application.SignupInput{
		Email: "test@example.com", Password: "password123", Nickname: "runnerPeter", CountryCode: "KR", RegionCode: "KR-11",
	}, svc.gotSignup)
}

func TestSignup_ValidationErrors(t *testing.T) {
	cases := map[string]struct {
		body  string
		field string
	}{
		"invalid email":  {`{"email":"nope","password":"password123","nickname":"runnerPeter"}`, "email"},
		"short password": {`{"email":"a@b.com","password":"short","nickname":"runnerPeter"}`, "password"},
		"blank nickname": {`{"email":"a@b.com","password":"password123","nickname":"   "}`, "nickname"},
		"missing email":  {`{"password":"password123","nickname":"runnerPeter"}`, "email"},
		"long region":    {`{"email":"a@b.com","password":"password123","nickname":"runnerPeter","regionCode":"123456789012345678901"}`, "regionCode"},
		"malformed json": {`{"email":`, "payload"},
		"empty body":     {``, "payload"},
		"blank password": {`{"email":"a@b.com","password":"        ","nickname":"runnerPeter"}`, "password"},
	}
	longEmail := strings.Repeat("a", 64) + "@" + strings.Repeat(strings.Repeat("b", 60)+".", 4) + "com"
	cases["long email"] = struct {
		body  string
		field string
	}{`{"email":"` + longEmail + `","password":"password123","nickname":"runnerPeter"}`, "email"}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &stubAccountService{}
			r, _ := newEngine(svc)

			w := do(r, http.MethodPost, "/api/auth/signup", tc.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			body := decode(t, w)
			assert.Equal(t, "VALIDATION_ERROR", body["error"])
			assert.Equal(t, "invalid payload", body["message"])
			details, ok := body["details"].(map[string]any)
			require.True(t, ok)
			assert.Contains(t, details, tc.field)
			assert.Zero(t, svc.calls)
		})
	}
}

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		path   string
		body   string
		err    error
		status int
		kind   string
	}{
		{"/api/auth/signup", validSignup, application.ErrDuplicateEmail, http.StatusConflict, "DUPLICATE_EMAIL"},
		{"/api/auth/signup", validSignup, application.ErrDuplicateNickname, http.StatusConflict, "DUPLICATE_NICKNAME"},
		{"/api/auth/login", `{"email":"a@b.com","password":"x"}`, application.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"/api/auth/login", `{"email":"a@b.com","password":"x"}`, application.ErrNoLocalPassword, http.StatusUnauthorized, "NO_LOCAL_PASSWORD"},
	}
	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			r, _ := newEngine(&stubAccountService{err: tc.err})

			w := do(r, http.MethodPost, tc.path, tc.body)

			require.Equal(t, tc.status, w.Code)
			body := decode(t, w)
			assert.Equal(t, tc.kind, body["error"])
			assert.NotEmpty(t, body["message"])
			assert.Equal(t, "req-42", body["request_id"])
		})
	}
}

func TestInternalErrorIsLoggedAndHidden(t *testing.T) {
	r, hook := newEngine(&stubAccountService{err: errors.New("pq: connection refused")})

	w := do(r, http.MethodPost, "/api/auth/login", `{"email":"a@b.com","password":"x"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "INTERNAL_ERROR", body["error"])
	assert.Equal(t, "internal server error", body["message"])
	assert.NotContains(t, w.Body.String(), "connection refused")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "req-42", entry.Data["request_id"])
	assert.Equal(t, "login", entry.Data["op"])
}

func TestLogin_OK(t *testing.T) {
	svc := &stubAccountService{res: &application.AuthResponse{UserID: 10, Email: "login@example.com", Nickname: "runnerLogin"}}
	r, _ := newEngine(svc)

	w := do(r, http.MethodPost, "/api/auth/login", `{"email":"login@example.com","password":"password123"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":10,"email":"login@example.com","nickname":"runnerLogin"}`, w.Body.String())
	assert.Equal(t, application.LoginInput{Email: "login@example.com", Password: "password123"}, svc.gotLogin)
}

func TestHello(t *testing.T) {
	r, _ := newEngine(&stubAccountService{})

	w := do(r, http.MethodGet, "/hello", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello Runner's Hi", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

// memoryRepo is a minimal in-process store for end-to-end handler tests.
type memoryRepo struct {
	mu    sync.Mutex
	users []*entity.User
}

func (m *memoryRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := m.FindByEmail(context.Background(), email)
	return err == nil, nil
}

func (m *memoryRepo) ExistsByNickname(_ context.Context, nickname string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Nickname == nickname {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memoryRepo) Save(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = int64(len(m.users) + 1)
	m.users = append(m.users, u)
	return nil
}

func TestSignupAndLogin_MultiBytePassword(t *testing.T) {
	logger, _ := test.NewNullLogger()
	svc := application.NewService(&memoryRepo{}, helpers.NewBcryptHasher(4), nil, nil, logger)
	r, _ := newEngine(svc)
	password := strings.Repeat("가", 30)

	w := do(r, http.MethodPost, "/api/auth/signup",
		`{"email":"hangul@example.com","password":"`+password+`","nickname":"한글러너"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"userId":1,"email":"hangul@example.com","nickname":"한글러너"}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/auth/login", `{"email":"hangul@example.com","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(r, http.MethodPost, "/api/auth/login",
		`{"email":"hangul@example.com","password":"`+strings.Repeat("가", 29)+`나"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decode(t, w)["error"])
}
