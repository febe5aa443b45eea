package user

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SlpAus/skillsprint-backend/pkg/token"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	token.Configure("test-secret", 60)

	svc, _ := newTestService(t)
	h := NewHandler(svc)

	r := gin.New()
	r.POST("/api/users", h.Register)
	r.POST("/api/users/login", h.Login)
	r.POST("/api/users/logout", RequireAuth(), h.Logout)
	r.GET("/api/users/:id", h.GetByID)
	return r, svc
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/users", gin.H{"email": "alice@skillsprint.com", "password": "alice123"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.ID)
	assert.Equal(t, "alice@skillsprint.com", resp.Data.Email)

	// 重复注册同一邮箱
	w = doJSON(t, r, http.MethodPost, "/api/users", gin.H{"email": "alice@skillsprint.com", "password": "other456"}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Email already registered")
}

func TestRegisterEndpoint_Validation(t *testing.T) {
	r, _ := newTestRouter(t)

	// 非法邮箱
	w := doJSON(t, r, http.MethodPost, "/api/users", gin.H{"email": "not-an-email", "password": "alice123"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 密码太短
	w = doJSON(t, r, http.MethodPost, "/api/users", gin.H{"email": "alice@skillsprint.com", "password": "short"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	r, svc := newTestRouter(t)
	_, err := svc.Register("alice@skillsprint.com", "alice123")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/users/login", gin.H{"email": "alice@skillsprint.com", "password": "alice123"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)

	// 错误密码与不存在的邮箱返回完全相同的错误
	wWrong := doJSON(t, r, http.MethodPost, "/api/users/login", gin.H{"email": "alice@skillsprint.com", "password": "wrong01"}, nil)
	wUnknown := doJSON(t, r, http.MethodPost, "/api/users/login", gin.H{"email": "nobody@skillsprint.com", "password": "alice123"}, nil)
	assert.Equal(t, http.StatusUnauthorized, wWrong.Code)
	assert.Equal(t, http.StatusUnauthorized, wUnknown.Code)
	assert.JSONEq(t, wWrong.Body.String(), wUnknown.Body.String())
}

func TestRequireAuth(t *testing.T) {
	r, svc := newTestRouter(t)
	created, err := svc.Register("alice@skillsprint.com", "alice123")
	require.NoError(t, err)

	// 缺少Authorization头
	w := doJSON(t, r, http.MethodPost, "/api/users/logout", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Missing authorization header")

	// 无效token
	w = doJSON(t, r, http.MethodPost, "/api/users/logout", nil, map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")

	// 有效token
	signed, err := token.GenerateToken(created.ID)
	require.NoError(t, err)
	w = doJSON(t, r, http.MethodPost, "/api/users/logout", nil, map[string]string{"Authorization": "Bearer " + signed})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), created.ID)
}

func TestGetUserEndpoint(t *testing.T) {
	r, svc := newTestRouter(t)
	created, err := svc.Register("alice@skillsprint.com", "alice123")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/users/%s", created.ID), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	// 响应中绝不能出现密码哈希
	assert.NotContains(t, w.Body.String(), "password")

	w = doJSON(t, r, http.MethodGet, "/api/users/no-such-user", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
