package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qanda/api/internal/config"
	"qanda/api/internal/repository/memstore"
	"qanda/api/internal/security"
	"qanda/api/internal/service"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memstore.New()
	logger := zerolog.Nop()
	cfg := &config.AppConfig{
		Environment: "test",
		Security:    config.SecurityConfig{TokenSecret: "test-secret", TokenTTL: 8 * time.Hour},
	}
	tokens := security.NewTokenIssuer(cfg.Security.TokenSecret)

	h := HandlerSet{
		log:       logger,
		cfg:       cfg,
		auth:      service.NewAuthService(store, tokens, cfg.Security.TokenTTL, logger),
		questions: service.NewQuestionService(store, logger),
		users:     service.NewUserService(store, logger),
	}

	engine := gin.New()
	h.Register(engine.Group("/api"))
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
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
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func signupBody(username string) map[string]string {
	return map[string]string{
		"firstName":    "Test",
		"lastName":     "User",
		"userName":     username,
		"emailAddress": username + "@example.com",
		"password":     "pw1",
	}
}

func basicHeader(username, password string) map[string]string {
	return map[string]string{
		"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password)),
	}
}

func TestSignupSigninSignoutFlow(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/user/signup", signupBody("alice"), nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var signup struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &signup))
	assert.NotEmpty(t, signup.ID)
	assert.Equal(t, "USER SUCCESSFULLY REGISTERED", signup.Status)

	// Wrong password fails with the bad-credentials code.
	rec = doJSON(t, engine, http.MethodPost, "/api/user/signin", nil, basicHeader("alice", "wrongpw"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "ATH-002")

	rec = doJSON(t, engine, http.MethodPost, "/api/user/signin", nil, basicHeader("alice", "pw1"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token := rec.Header().Get("access_token")
	require.NotEmpty(t, token)

	var signin struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &signin))
	assert.Equal(t, signup.ID, signin.ID)

	auth := map[string]string{"Authorization": token}

	rec = doJSON(t, engine, http.MethodPost, "/api/user/signout", nil, auth)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Double signout still succeeds.
	rec = doJSON(t, engine, http.MethodPost, "/api/user/signout", nil, auth)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestSigninMalformedHeader(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/user/signin", nil, map[string]string{"Authorization": "garbage"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "GEN-001")
}

func TestQuestionLifecycle(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/user/signup", signupBody("alice"), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(t, engine, http.MethodPost, "/api/user/signin", nil, basicHeader("alice", "pw1"))
	require.Equal(t, http.StatusOK, rec.Code)
	auth := map[string]string{"Authorization": rec.Header().Get("access_token")}

	rec = doJSON(t, engine, http.MethodPost, "/api/question/create", map[string]string{"content": "What is Go?"}, auth)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, engine, http.MethodGet, "/api/question/all", nil, auth)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "What is Go?")

	rec = doJSON(t, engine, http.MethodPut, "/api/question/edit", map[string]string{"id": created.ID, "content": "edited"}, auth)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "QUESTION EDITED")

	rec = doJSON(t, engine, http.MethodDelete, "/api/question/delete/"+created.ID, nil, auth)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "QUESTION DELETED")

	rec = doJSON(t, engine, http.MethodDelete, "/api/question/delete/"+created.ID, nil, auth)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "QUES-001")
}

func TestQuestionEndpointsRequireToken(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodGet, "/api/question/all", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "ATHR-001")
}

func TestDeleteUserForbiddenForNonAdmin(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/user/signup", signupBody("alice"), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var signup struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &signup))

	rec = doJSON(t, engine, http.MethodPost, "/api/user/signup", signupBody("bob"), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(t, engine, http.MethodPost, "/api/user/signin", nil, basicHeader("bob", "pw1"))
	require.Equal(t, http.StatusOK, rec.Code)
	auth := map[string]string{"Authorization": rec.Header().Get("access_token")}

	rec = doJSON(t, engine, http.MethodDelete, "/api/user/"+signup.ID, nil, auth)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "ATHR-003")
}

func TestUserProfile(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/user/signup", signupBody("alice"), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var signup struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &signup))

	rec = doJSON(t, engine, http.MethodPost, "/api/user/signin", nil, basicHeader("alice", "pw1"))
	require.Equal(t, http.StatusOK, rec.Code)
	auth := map[string]string{"Authorization": rec.Header().Get("access_token")}

	rec = doJSON(t, engine, http.MethodGet, "/api/userprofile/"+signup.ID, nil, auth)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "alice@example.com")

	rec = doJSON(t, engine, http.MethodGet, "/api/userprofile/no-such-user", nil, auth)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "USR-001")
}

func TestSignupConflictCodes(t *testing.T) {
	engine := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/user/signup", signupBody("alice"), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Same username, different email: SGR-001.
	body := signupBody("alice")
	body["emailAddress"] = "other@example.com"
	rec = doJSON(t, engine, http.MethodPost, "/api/user/signup", body, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "SGR-001")

	// Different username, same email: SGR-002.
	body = signupBody("bob")
	body["emailAddress"] = "alice@example.com"
	rec = doJSON(t, engine, http.MethodPost, "/api/user/signup", body, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "SGR-002")
}
