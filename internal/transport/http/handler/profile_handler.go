package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cardlink/internal/apperr"
	"cardlink/internal/service"
	"cardlink/internal/transport/http/middleware"
	resp "cardlink/internal/transport/http/response"
)

type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// List GET /profiles，当前用户名下全部主页
func (h *ProfileHandler) List(c *gin.Context) {
	views, err := h.profiles.List(c.GetString(middleware.KeyUserID))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, views)
}

// Create POST /profiles
func (h *ProfileHandler) Create(c *gin.Context) {
	var in service.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, http.StatusBadRequest, apperr.CodeBadRequest, "invalid request body")
		return
	}
	p, err := h.profiles.Create(c.GetString(middleware.KeyUserID), &in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"id": p.ID, "slug": p.Slug})
}

// GetPublic GET /profiles/:slug，公开读取，无需登录
func (h *ProfileHandler) GetPublic(c *gin.Context) {
	v, err := h.profiles.GetPublic(c.Request.Context(), c.Param("slug"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, v)
}

// Update PUT /profiles/:slug
func (h *ProfileHandler) Update(c *gin.Context) {
	var in service.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, http.StatusBadRequest, apperr.CodeBadRequest, "invalid request body")
		return
	}
	p, err := h.profiles.Update(c.Request.Context(), c.Param("slug"), c.GetString(middleware.KeyUserID), &in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"id": p.ID, "slug": p.Slug, "updatedAt": p.UpdatedAt})
}

// Delete DELETE /profiles/:slug
func (h *ProfileHandler) Delete(c *gin.Context) {
	if err := h.profiles.Delete(c.Request.Context(), c.Param("slug"), c.GetString(middleware.KeyUserID)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}
