package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cardlink/internal/apperr"
	"cardlink/internal/core/auth"
	"cardlink/internal/service"
	"cardlink/internal/transport/http/middleware"
	resp "cardlink/internal/transport/http/response"
)

type AdminHandler struct {
	admin *service.AdminService
}

func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// pagination 解析 page/limit 查询参数，limit 封顶 100
func pagination(c *gin.Context) (offset, limit int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return (page - 1) * limit, limit
}

// ---------- 用户 ----------

// ListUsers GET /admin/users?search=&page=&limit=
func (h *AdminHandler) ListUsers(c *gin.Context) {
	offset, limit := pagination(c)
	rows, total, err := h.admin.ListUsers(c.Query("search"), offset, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"users": rows, "total": total})
}

// GetUser GET /admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	u, profiles, err := h.admin.GetUser(c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"user": u, "profiles": profiles})
}

// UpdateUser PUT /admin/users/:id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var in service.UpdateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, http.StatusBadRequest, apperr.CodeBadRequest, "invalid request body")
		return
	}
	u, err := h.admin.UpdateUser(c.GetString(middleware.KeyUserID), c.Param("id"), &in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, u)
}

// DeleteUser DELETE /admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.admin.DeleteUser(c.GetString(middleware.KeyUserID), c.Param("id")); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}

// ---------- 主页 ----------

// ListProfiles GET /admin/profiles?search=&page=&limit=
func (h *AdminHandler) ListProfiles(c *gin.Context) {
	offset, limit := pagination(c)
	rows, total, err := h.admin.ListProfiles(c.Query("search"), offset, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"profiles": rows, "total": total})
}

// DeleteProfile DELETE /admin/profiles/:slug
func (h *AdminHandler) DeleteProfile(c *gin.Context) {
	if err := h.admin.DeleteProfile(c.GetString(middleware.KeyUserID), c.Param("slug")); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}

// SetCardLimit PUT /admin/profiles/:slug/limit
func (h *AdminHandler) SetCardLimit(c *gin.Context) {
	var req struct {
		CardLimit int `json:"card_limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, http.StatusBadRequest, apperr.CodeBadRequest, "invalid request body")
		return
	}
	p, err := h.admin.SetCardLimit(c.GetString(middleware.KeyUserID), c.Param("slug"), req.CardLimit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"slug": p.Slug, "cardLimit": p.CardLimit})
}

// ---------- 模拟登录 ----------

// Impersonate POST /admin/users/:id/impersonate
// 会话 cookie 直接换成带 imp 标记的令牌，浏览器随即以目标身份访问
func (h *AdminHandler) Impersonate(c *gin.Context) {
	res, err := h.admin.Impersonate(c.GetString(middleware.KeyUserID), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	auth.SetAuthCookie(c, res.Token)
	resp.OK(c, gin.H{"slug": res.Slug, "targetEmail": res.TargetEmail})
}

// ExitImpersonation POST /admin/impersonate/exit
// 这条路由只挂 Session，不挂 RequireAdmin：当前身份是被模拟的普通用户
func (h *AdminHandler) ExitImpersonation(c *gin.Context) {
	token, slug, err := h.admin.ExitImpersonation(c.GetString(middleware.KeyImpersonator))
	if err != nil {
		resp.Error(c, err)
		return
	}
	auth.SetAuthCookie(c, token)
	resp.OK(c, gin.H{"slug": slug})
}

// ---------- 审计 ----------

// AuditLog GET /admin/audit?page=&limit=
func (h *AdminHandler) AuditLog(c *gin.Context) {
	offset, limit := pagination(c)
	rows, total, err := h.admin.AuditLog(offset, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"entries": rows, "total": total})
}
