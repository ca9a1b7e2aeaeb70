package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cardlink/internal/apperr"
	"cardlink/internal/service"
	"cardlink/internal/transport/http/middleware"
	resp "cardlink/internal/transport/http/response"
)

type HandleHandler struct {
	handles *service.HandleService
}

func NewHandleHandler(handles *service.HandleService) *HandleHandler {
	return &HandleHandler{handles: handles}
}

// Check GET /handles/check?handle=xxx，公开接口，限速在路由层挂
func (h *HandleHandler) Check(c *gin.Context) {
	raw := c.Query("handle")
	if raw == "" {
		resp.Fail(c, http.StatusBadRequest, apperr.CodeBadRequest, "handle query parameter required")
		return
	}
	a, err := h.handles.Check(raw)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, a)
}

// Claim POST /handles/claim
func (h *HandleHandler) Claim(c *gin.Context) {
	var req struct {
		Handle string `json:"handle"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, http.StatusBadRequest, apperr.CodeBadRequest, "invalid request body")
		return
	}
	p, err := h.handles.Claim(c.GetString(middleware.KeyUserID), req.Handle)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"slug": p.Slug, "profileId": p.ID})
}

// Mine GET /handles/mine
func (h *HandleHandler) Mine(c *gin.Context) {
	slug, err := h.handles.Mine(c.GetString(middleware.KeyUserID))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"slug": slug})
}
