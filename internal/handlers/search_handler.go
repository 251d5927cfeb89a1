package handlers

import (
	"net/http"

	"chefhire_backend/internal/services"
	"chefhire_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	*BaseHandler
	search services.SearchService
}

func NewSearchHandler(base *BaseHandler, search services.SearchService) *SearchHandler {
	return &SearchHandler{BaseHandler: base, search: search}
}

func (h *SearchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Search)
}

func (h *SearchHandler) Search(c *gin.Context) {
	var req dto.SearchResumesRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	resp, err := h.search.Search(c.Request.Context(), h.CurrentRole(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
