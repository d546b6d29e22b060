package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"task-manager/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAccountRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	h := NewAccountHandler(db, time.Hour)
	r := gin.New()
	r.POST("/api/account/login", h.Login)
	r.POST("/api/account/register", h.Register)
	r.GET("/api/account/checkauth", h.CheckAuth)
	return r, db
}

func postJSON(r http.Handler, path string, payload any, headers map[string]string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	r, _ := newAccountRouter(t)

	w := postJSON(r, "/api/account/register", map[string]string{
		"email":    "alice@example.com",
		"name":     "Alice",
		"password": "s3cret",
		"role":     "Manager",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Duplicate email is rejected
	w = postJSON(r, "/api/account/register", map[string]string{
		"email":    "alice@example.com",
		"name":     "Alice Again",
		"password": "s3cret",
		"role":     "Worker",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/api/account/login", map[string]string{
		"email":    "alice@example.com",
		"password": "s3cret",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token           string `json:"token"`
		Role            string `json:"role"`
		UserID          uint   `json:"userId"`
		IsAuthenticated bool   `json:"isAuthenticated"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "Manager", resp.Role)
	require.NotZero(t, resp.UserID)
	require.True(t, resp.IsAuthenticated)
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	r, db := newAccountRouter(t)
	_, err := testutil.SeedUser(db, "bob@example.com", "Bob", "correct", "Worker")
	require.NoError(t, err)

	w := postJSON(r, "/api/account/login", map[string]string{
		"email":    "bob@example.com",
		"password": "wrong",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown account gets the same answer as a bad password
	w2 := postJSON(r, "/api/account/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "wrong",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w2.Code)
	require.Equal(t, w.Body.String(), w2.Body.String())
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	r, _ := newAccountRouter(t)

	w := postJSON(r, "/api/account/register", map[string]string{
		"email":    "eve@example.com",
		"name":     "Eve",
		"password": "s3cret",
		"role":     "Admin",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckAuth(t *testing.T) {
	r, db := newAccountRouter(t)
	_, err := testutil.SeedUser(db, "w@example.com", "W", "s3cret", "Worker")
	require.NoError(t, err)

	// Anonymous: 200 with isAuthenticated=false, never 401
	req := httptest.NewRequest(http.MethodGet, "/api/account/checkauth", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var anon struct {
		IsAuthenticated bool `json:"isAuthenticated"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &anon))
	require.False(t, anon.IsAuthenticated)

	// With a fresh login token
	lw := postJSON(r, "/api/account/login", map[string]string{
		"email":    "w@example.com",
		"password": "s3cret",
	}, nil)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(lw.Body.Bytes(), &login))

	req = httptest.NewRequest(http.MethodGet, "/api/account/checkauth", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var authed struct {
		IsAuthenticated bool   `json:"isAuthenticated"`
		Role            string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &authed))
	require.True(t, authed.IsAuthenticated)
	require.Equal(t, "Worker", authed.Role)
}
