package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portfolio-backend/internal/auth"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/repository"
	"portfolio-backend/internal/service"
)

// memAdminRepo is a minimal in-memory AdminRepository backing the auth flow
// tests end to end.
type memAdminRepo struct {
	admins map[int64]*models.Admin
	nextID int64
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{admins: make(map[int64]*models.Admin), nextID: 1}
}

func (r *memAdminRepo) Create(admin *models.Admin) error {
	admin.ID = r.nextID
	admin.CreatedAt = time.Now()
	r.nextID++
	copied := *admin
	r.admins[admin.ID] = &copied
	return nil
}

func (r *memAdminRepo) GetByID(id int64) (*models.Admin, error) {
	a, ok := r.admins[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *memAdminRepo) GetByUsername(username string) (*models.Admin, error) {
	for _, a := range r.admins {
		if a.Username == username {
			copied := *a
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memAdminRepo) GetByEmail(email string) (*models.Admin, error) {
	for _, a := range r.admins {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memAdminRepo) Count() (int, error) { return len(r.admins), nil }

func (r *memAdminRepo) UpdateProfile(id int64, username, email string) error {
	a, ok := r.admins[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.Username = username
	a.Email = email
	return nil
}

func (r *memAdminRepo) UpdatePassword(id int64, passwordHash string) error {
	a, ok := r.admins[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.PasswordHash = passwordHash
	return nil
}

func (r *memAdminRepo) UpdateLastLogin(id int64) error {
	a, ok := r.admins[id]
	if !ok {
		return repository.ErrNotFound
	}
	now := time.Now()
	a.LastLogin = &now
	return nil
}

// newAuthTestRouter wires the real handler, service and middleware against an
// in-memory account store.
func newAuthTestRouter(t *testing.T) (*gin.Engine, *memAdminRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	repo := newMemAdminRepo()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	require.NoError(t, repo.Create(&models.Admin{
		Username:     "owner",
		Email:        "owner@example.com",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}))

	logger := zap.NewNop()
	h := NewAuthHandler(service.NewAuthService(repo, tokens, logger), logger)
	protect := middleware.Auth(tokens, repo, logger)

	router := gin.New()
	group := router.Group("/api/auth")
	group.POST("/login", h.Login)
	group.GET("/profile", protect, h.GetProfile)
	group.PUT("/profile", protect, h.UpdateProfile)
	group.PUT("/change-password", protect, h.ChangePassword)
	group.GET("/verify", protect, h.Verify)

	return router, repo
}

func request(router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
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

func loginToken(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := request(router, http.MethodPost, "/api/auth/login", `{"username":"owner","password":"password123"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func TestLoginEndpoint(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	w := request(router, http.MethodPost, "/api/auth/login", `{"username":"owner","password":"password123"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"success"`)
	assert.Contains(t, w.Body.String(), `"username":"owner"`)
	assert.NotContains(t, w.Body.String(), "password_hash")
	assert.NotContains(t, w.Body.String(), "passwordHash")
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	for _, body := range []string{
		`{"username":"owner","password":"wrong-password"}`,
		`{"username":"nobody","password":"password123"}`,
	} {
		w := request(router, http.MethodPost, "/api/auth/login", body, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
	}
}

func TestLoginEndpointValidation(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	w := request(router, http.MethodPost, "/api/auth/login", `{"username":"owner"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please provide username and password")
}

func TestProfileEndpoint(t *testing.T) {
	router, _ := newAuthTestRouter(t)
	token := loginToken(t, router)

	w := request(router, http.MethodGet, "/api/auth/profile", "", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"owner"`)

	w = request(router, http.MethodGet, "/api/auth/profile", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateProfileEndpoint(t *testing.T) {
	router, repo := newAuthTestRouter(t)
	token := loginToken(t, router)

	w := request(router, http.MethodPut, "/api/auth/profile", `{"username":"new_owner"}`, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"new_owner"`)
	assert.Equal(t, "new_owner", repo.admins[1].Username)
}

func TestChangePasswordEndpoint(t *testing.T) {
	router, _ := newAuthTestRouter(t)
	token := loginToken(t, router)

	w := request(router, http.MethodPut, "/api/auth/change-password",
		`{"currentPassword":"wrong","newPassword":"next-password"}`, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Current password is incorrect")

	w = request(router, http.MethodPut, "/api/auth/change-password",
		`{"currentPassword":"password123","newPassword":"next-password"}`, token)
	assert.Equal(t, http.StatusOK, w.Code)

	// The old password no longer logs in, the new one does.
	w = request(router, http.MethodPost, "/api/auth/login", `{"username":"owner","password":"password123"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = request(router, http.MethodPost, "/api/auth/login", `{"username":"owner","password":"next-password"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifyEndpoint(t *testing.T) {
	router, _ := newAuthTestRouter(t)
	token := loginToken(t, router)

	w := request(router, http.MethodGet, "/api/auth/verify", "", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Token is valid")
	assert.Contains(t, w.Body.String(), `"username":"owner"`)

	w = request(router, http.MethodGet, "/api/auth/verify", "", "tampered.token.here")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestDeactivatedAdminLockedOut(t *testing.T) {
	router, repo := newAuthTestRouter(t)
	token := loginToken(t, router)

	repo.admins[1].IsActive = false

	// The existing token stops working immediately.
	w := request(router, http.MethodGet, "/api/auth/profile", "", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Admin account is deactivated")

	// And a fresh login is refused as well.
	w = request(router, http.MethodPost, "/api/auth/login", `{"username":"owner","password":"password123"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Account is deactivated")
}
