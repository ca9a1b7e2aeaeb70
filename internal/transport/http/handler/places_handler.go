package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cardlink/internal/apperr"
	"cardlink/internal/client/places"
	resp "cardlink/internal/transport/http/response"
)

type PlacesHandler struct {
	client *places.Client
}

func NewPlacesHandler(client *places.Client) *PlacesHandler {
	return &PlacesHandler{client: client}
}

// Details GET /places/details?place_id=xxx
// API key 不下发前端，查询统一走服务端代理
func (h *PlacesHandler) Details(c *gin.Context) {
	if !h.client.Configured() {
		resp.Fail(c, http.StatusInternalServerError, apperr.CodeNoAPIKey, "Places API key not configured")
		return
	}
	placeID := c.Query("place_id")
	if placeID == "" {
		resp.Fail(c, http.StatusBadRequest, apperr.CodeBadRequest, "place_id query parameter required")
		return
	}
	d, err := h.client.Details(c.Request.Context(), placeID)
	if err != nil {
		_ = c.Error(err)
		resp.Fail(c, http.StatusBadGateway, apperr.CodeServerError, "place lookup failed")
		return
	}
	resp.OK(c, d)
}
