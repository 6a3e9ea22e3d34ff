package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the dashboard home figures.
type DashboardHandler struct {
	facade DashboardFacade
}

func NewDashboardHandler(facade DashboardFacade) *DashboardHandler {
	return &DashboardHandler{facade: facade}
}

// Summary handles GET /api/dashboard.
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.facade.Summary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDashboardResponse(summary))
}
