package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kind-kitchen/internal/infrastructure/config"
	"kind-kitchen/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	common.InitTestLogger()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	cfg := &config.Config{
		App: config.AppConfig{Env: "test", Debug: false, Version: "test"},
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret",
			TokenTTL:   time.Hour,
			BcryptCost: 4,
		},
		RateLimit: config.RateLimitConfig{Enabled: false},
	}

	router, err := SetupRouter(cfg, db)
	require.NoError(t, err)
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func signupToken(t *testing.T, router http.Handler) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"name":     "Amy",
		"email":    "amy@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSignupAndLogin(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"name":     "Amy",
		"email":    "amy@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "success", body["status"])
	assert.NotEmpty(t, body["token"])
	user := body["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, "amy@example.com", user["email"])
	// 密碼雜湊不得出現在回應中
	_, leaked := user["password"]
	assert.False(t, leaked)

	// 重複信箱
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"name":     "Another Amy",
		"email":    "amy@example.com",
		"password": "secret2",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already registered", decodeBody(t, w)["message"])

	// 登入
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "amy@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["token"])

	// 錯誤密碼
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "amy@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", decodeBody(t, w)["message"])
}

func TestMutationRequiresToken(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/recipes", "", map[string]interface{}{
		"name":         "Soup",
		"instructions": "Boil water.",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authenticated", decodeBody(t, w)["message"])

	w = doJSON(t, router, http.MethodPost, "/api/v1/recipes", "garbage-token", map[string]interface{}{
		"name":         "Soup",
		"instructions": "Boil water.",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRecipeCRUDFlow(t *testing.T) {
	router := newTestRouter(t)
	token := signupToken(t, router)

	// 讀取公開，初始為空
	w := doJSON(t, router, http.MethodGet, "/api/v1/recipes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(0), body["results"])

	// 新增
	w = doJSON(t, router, http.MethodPost, "/api/v1/recipes", token, map[string]interface{}{
		"name":         "Soup",
		"ingredients":  []string{"water", "salt"},
		"instructions": "Boil water. Add salt.",
		"category":     "Main Course",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	body = decodeBody(t, w)
	created := body["data"].(map[string]interface{})["newRecipe"].(map[string]interface{})
	id := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Soup", created["name"])

	// 單筆讀取
	w = doJSON(t, router, http.MethodGet, "/api/v1/recipes/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// 部分更新
	w = doJSON(t, router, http.MethodPatch, "/api/v1/recipes/"+id, token, map[string]interface{}{
		"favorite": true,
	})
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	updated := body["data"].(map[string]interface{})["recipe"].(map[string]interface{})
	assert.Equal(t, true, updated["favorite"])
	assert.Equal(t, "Soup", updated["name"])

	// 刪除
	w = doJSON(t, router, http.MethodDelete, "/api/v1/recipes/"+id, token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/recipes/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Recipe not found", decodeBody(t, w)["message"])
}

func TestCreateValidation(t *testing.T) {
	router := newTestRouter(t)
	token := signupToken(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/recipes", token, map[string]interface{}{
		"name":         "S",
		"instructions": "Boil water.",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "fail", decodeBody(t, w)["status"])
}

func TestUpdateMissingRecipe(t *testing.T) {
	router := newTestRouter(t)
	token := signupToken(t, router)

	w := doJSON(t, router, http.MethodPatch, "/api/v1/recipes/nope", token, map[string]interface{}{
		"favorite": true,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Invalid Id", decodeBody(t, w)["message"])
}
