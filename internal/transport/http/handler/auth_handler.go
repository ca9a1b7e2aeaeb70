package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cardlink/internal/apperr"
	"cardlink/internal/core/auth"
	"cardlink/internal/domain"
	"cardlink/internal/service"
	"cardlink/internal/transport/http/middleware"
	resp "cardlink/internal/transport/http/response"
)

type AuthHandler struct {
	users *service.UserService
}

func NewAuthHandler(users *service.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userOut 对外的用户形态，不带密码哈希等内部字段
type userOut struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserOut(u *domain.User) userOut {
	return userOut{ID: u.ID, Email: u.Email, Role: u.Role}
}

// Register POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, http.StatusBadRequest, apperr.CodeBadRequest, "invalid request body")
		return
	}
	u, token, err := h.users.Register(req.Email, req.Password)
	if err != nil {
		resp.Error(c, err)
		return
	}
	auth.SetAuthCookie(c, token)
	resp.Created(c, toUserOut(u))
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, http.StatusBadRequest, apperr.CodeBadRequest, "invalid request body")
		return
	}
	u, token, err := h.users.Login(req.Email, req.Password)
	if err != nil {
		resp.Error(c, err)
		return
	}
	auth.SetAuthCookie(c, token)
	resp.OK(c, toUserOut(u))
}

// Logout POST /auth/logout，无状态会话，清 cookie 即退出
func (h *AuthHandler) Logout(c *gin.Context) {
	auth.ClearAuthCookie(c)
	resp.OK(c, gin.H{"ok": true})
}

// Me GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.users.Get(c.GetString(middleware.KeyUserID))
	if err != nil {
		resp.Error(c, err)
		return
	}
	out := gin.H{"id": u.ID, "email": u.Email, "role": u.Role}
	if imp := c.GetString(middleware.KeyImpersonator); imp != "" {
		out["impersonatedBy"] = imp
	}
	resp.OK(c, out)
}
