package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardlink/internal/core/auth"
	"cardlink/internal/domain"
)

func init() { gin.SetMode(gin.TestMode) }

type fakeUserRepo struct {
	byID map[string]*domain.User
	err  error
}

func (r *fakeUserRepo) Create(*domain.User) error { return nil }
func (r *fakeUserRepo) FindByID(id string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.byID[id], nil
}
func (r *fakeUserRepo) FindByEmail(string) (*domain.User, error) { return nil, nil }
func (r *fakeUserRepo) List(string, int, int) ([]domain.User, int64, error) {
	return nil, 0, nil
}
func (r *fakeUserRepo) Update(*domain.User) error { return nil }
func (r *fakeUserRepo) Delete(string) error       { return nil }

func newSessionRig(users *fakeUserRepo, extra ...gin.HandlerFunc) (*gin.Engine, *auth.JWTer) {
	jwter := &auth.JWTer{Secret: []byte("test-secret-0123456789"), Issuer: "cardlink-test"}
	e := gin.New()
	chain := append([]gin.HandlerFunc{Session(jwter, users)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(200, gin.H{
			"userId":         c.GetString(KeyUserID),
			"role":           c.GetString(KeyRole),
			"impersonatorId": c.GetString(KeyImpersonator),
		})
	})
	e.GET("/probe", chain...)
	return e, jwter
}

func doProbe(e *gin.Engine, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func errCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestSessionNoToken(t *testing.T) {
	e, _ := newSessionRig(&fakeUserRepo{byID: map[string]*domain.User{}})
	w := doProbe(e, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "NO_TOKEN", errCode(t, w))
}

func TestSessionBadToken(t *testing.T) {
	e, _ := newSessionRig(&fakeUserRepo{byID: map[string]*domain.User{}})
	w := doProbe(e, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "BAD_TOKEN", errCode(t, w))
}

func TestSessionUserDeleted(t *testing.T) {
	e, jwter := newSessionRig(&fakeUserRepo{byID: map[string]*domain.User{}})
	token, err := jwter.Issue("ghost")
	require.NoError(t, err)
	w := doProbe(e, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "USER_NOT_FOUND", errCode(t, w))
}

func TestSessionSuspended(t *testing.T) {
	users := &fakeUserRepo{byID: map[string]*domain.User{
		"u1": {ID: "u1", Role: domain.RoleUser, IsSuspended: true},
	}}
	e, jwter := newSessionRig(users)
	token, err := jwter.Issue("u1")
	require.NoError(t, err)
	w := doProbe(e, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "ACCOUNT_SUSPENDED", errCode(t, w))
}

func TestSessionStoreError(t *testing.T) {
	e, jwter := newSessionRig(&fakeUserRepo{err: errors.New("db down")})
	token, err := jwter.Issue("u1")
	require.NoError(t, err)
	w := doProbe(e, token)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "SERVER_ERROR", errCode(t, w))
}

func TestSessionSetsContext(t *testing.T) {
	users := &fakeUserRepo{byID: map[string]*domain.User{
		"u1": {ID: "u1", Role: domain.RoleAdmin},
	}}
	e, jwter := newSessionRig(users)
	token, err := jwter.IssueImpersonated("u1", "admin-9")
	require.NoError(t, err)
	w := doProbe(e, token)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "u1", body["userId"])
	assert.Equal(t, domain.RoleAdmin, body["role"])
	assert.Equal(t, "admin-9", body["impersonatorId"])
}

// 角色以库里实时值为准，不信令牌签发时的状态
func TestSessionRoleIsLive(t *testing.T) {
	users := &fakeUserRepo{byID: map[string]*domain.User{
		"u1": {ID: "u1", Role: domain.RoleUser},
	}}
	e, jwter := newSessionRig(users, RequireAdmin())
	token, err := jwter.Issue("u1")
	require.NoError(t, err)

	w := doProbe(e, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errCode(t, w))
}

// 被模拟会话先于角色被拦：即使目标实时角色是 admin 也不放行
func TestRequireAdminBlocksImpersonatedFirst(t *testing.T) {
	users := &fakeUserRepo{byID: map[string]*domain.User{
		"a1": {ID: "a1", Role: domain.RoleAdmin},
	}}
	e, jwter := newSessionRig(users, RequireAdmin())
	token, err := jwter.IssueImpersonated("a1", "a2")
	require.NoError(t, err)

	w := doProbe(e, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "IMPERSONATED_SESSION", errCode(t, w))
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	users := &fakeUserRepo{byID: map[string]*domain.User{
		"a1": {ID: "a1", Role: domain.RoleAdmin},
	}}
	e, jwter := newSessionRig(users, RequireAdmin())
	token, err := jwter.Issue("a1")
	require.NoError(t, err)

	w := doProbe(e, token)
	assert.Equal(t, http.StatusOK, w.Code)
}
