package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cardlink/internal/apperr"
	"cardlink/internal/service"
	resp "cardlink/internal/transport/http/response"
)

// EngagementHandler 公开页互动：投票、联系表单、订阅。全部无需登录。
type EngagementHandler struct {
	engage *service.EngagementService
}

func NewEngagementHandler(engage *service.EngagementService) *EngagementHandler {
	return &EngagementHandler{engage: engage}
}

// PollResults GET /polls/:slug/:cardId
func (h *EngagementHandler) PollResults(c *gin.Context) {
	counts, err := h.engage.PollResults(c.Param("slug"), c.Param("cardId"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"counts": counts})
}

// Vote POST /polls/vote
func (h *EngagementHandler) Vote(c *gin.Context) {
	var req struct {
		ProfileSlug string `json:"profileSlug"`
		CardID      string `json:"cardId"`
		OptionIndex int    `json:"optionIndex"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, http.StatusBadRequest, apperr.CodeBadRequest, "invalid request body")
		return
	}
	counts, err := h.engage.Vote(req.ProfileSlug, req.CardID, req.OptionIndex, c.ClientIP())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"counts": counts})
}

// Contact POST /forms/contact
func (h *EngagementHandler) Contact(c *gin.Context) {
	var in service.ContactInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, http.StatusBadRequest, apperr.CodeBadRequest, "invalid request body")
		return
	}
	if err := h.engage.Contact(&in); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"sent": true})
}

// Subscribe POST /forms/subscribe
func (h *EngagementHandler) Subscribe(c *gin.Context) {
	var req struct {
		ProfileSlug string `json:"profileSlug"`
		CardID      string `json:"cardId"`
		Email       string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, http.StatusBadRequest, apperr.CodeBadRequest, "invalid request body")
		return
	}
	if err := h.engage.Subscribe(req.ProfileSlug, req.CardID, req.Email); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"subscribed": true})
}
