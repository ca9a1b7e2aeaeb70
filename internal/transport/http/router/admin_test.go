package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cardlink/internal/core/auth"
	"cardlink/internal/domain"
	"cardlink/internal/service"
	"cardlink/internal/transport/http/handler"
)

func init() { gin.SetMode(gin.TestMode) }

type stubUserRepo struct{ byID map[string]*domain.User }

func (r *stubUserRepo) Create(*domain.User) error                  { return nil }
func (r *stubUserRepo) FindByID(id string) (*domain.User, error)   { return r.byID[id], nil }
func (r *stubUserRepo) FindByEmail(string) (*domain.User, error)   { return nil, nil }
func (r *stubUserRepo) List(string, int, int) ([]domain.User, int64, error) {
	return nil, 0, nil
}
func (r *stubUserRepo) Update(*domain.User) error { return nil }
func (r *stubUserRepo) Delete(string) error       { return nil }

type stubProfileRepo struct{ bySlug map[string]*domain.Profile }

func (r *stubProfileRepo) Create(*domain.Profile) error { return nil }
func (r *stubProfileRepo) FindBySlug(slug string) (*domain.Profile, error) {
	return r.bySlug[slug], nil
}
func (r *stubProfileRepo) FirstByOwner(string) (*domain.Profile, error)   { return nil, nil }
func (r *stubProfileRepo) ListByOwner(string) ([]domain.Profile, error)   { return nil, nil }
func (r *stubProfileRepo) CountByOwner(string) (int64, error)             { return 0, nil }
func (r *stubProfileRepo) ListWithOwner(string, int, int) ([]domain.ProfileWithOwner, int64, error) {
	return nil, 0, nil
}
func (r *stubProfileRepo) Update(*domain.Profile) error { return nil }
func (r *stubProfileRepo) UpdateCardLimit(slug string, limit int) (*domain.Profile, error) {
	p := r.bySlug[slug]
	if p == nil {
		return nil, nil
	}
	p.CardLimit = limit
	return p, nil
}
func (r *stubProfileRepo) Delete(string) error        { return nil }
func (r *stubProfileRepo) DeleteByOwner(string) error { return nil }

type stubAuditRepo struct{}

func (stubAuditRepo) Create(*domain.AuditEntry) error { return nil }
func (stubAuditRepo) List(int, int) ([]domain.AuditWithAdmin, int64, error) {
	return nil, 0, nil
}

func newAdminRig() (*gin.Engine, *auth.JWTer) {
	jwter := &auth.JWTer{Secret: []byte("test-secret-0123456789"), Issuer: "cardlink-test"}
	users := &stubUserRepo{byID: map[string]*domain.User{
		"admin-1": {ID: "admin-1", Email: "admin@example.com", Role: domain.RoleAdmin},
		"user-1":  {ID: "user-1", Email: "u1@example.com", Role: domain.RoleUser},
	}}
	profiles := &stubProfileRepo{bySlug: map[string]*domain.Profile{
		"u1-shop": {ID: "p1", Slug: "u1-shop", OwnerID: "user-1", CardLimit: 10},
	}}
	svc := service.NewAdminService(users, profiles, stubAuditRepo{}, jwter, zap.NewNop(), false)
	e := NewAdmin(AdminDeps{
		Log:   zap.NewNop(),
		JWTer: jwter,
		Users: users,
		Admin: handler.NewAdminHandler(svc),
	})
	return e, jwter
}

func adminDo(t *testing.T, e *gin.Engine, jwter *auth.JWTer, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := jwter.Issue("admin-1")
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

// 管理端的方法和路径形状是对外契约，换成别的动词/路径算破坏
func TestAdminRouteShapes(t *testing.T) {
	e, jwter := newAdminRig()

	w := adminDo(t, e, jwter, http.MethodPut, "/admin/users/user-1", `{"is_suspended":true}`)
	assert.Equal(t, http.StatusOK, w.Code)
	// PATCH 不是契约的一部分
	w = adminDo(t, e, jwter, http.MethodPatch, "/admin/users/user-1", `{"is_suspended":true}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = adminDo(t, e, jwter, http.MethodPut, "/admin/profiles/u1-shop/limit", `{"card_limit":25}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cardLimit":25`)

	w = adminDo(t, e, jwter, http.MethodPost, "/admin/users/user-1/impersonate", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), auth.CookieName+"=")
}

func TestAdminExitRouteBypassesGuard(t *testing.T) {
	e, jwter := newAdminRig()

	// 被模拟的普通用户会话也能走 exit 路由（不挂管理员门禁）
	token, err := jwter.IssueImpersonated("user-1", "admin-1")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/admin/impersonate/exit", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// 同一会话撞管理员路由要吃 IMPERSONATED_SESSION
	req = httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	w = httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "IMPERSONATED_SESSION")
}
