package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mirae-store/mirae-admin/internal/server/http/dto"
	"github.com/mirae-store/mirae-admin/internal/usecase"
)

// OrderHandler serves order browsing and lifecycle endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler builds OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), usecase.OrderFilter{
		Status: c.Query("status"),
		Query:  c.Query("q"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]dto.OrderSummaryResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderSummary(o))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	view, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(view))
}

// ChangeStatus handles PUT /api/orders/:id/status.
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	var req dto.StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed request", Code: "bad_request"})
		return
	}

	view, notification, err := h.facade.ChangeStatus(c.Request.Context(), CurrentAdminID(c), usecase.TransitionRequest{
		OrderID:        c.Param("id"),
		Target:         req.Status,
		ExpectedStatus: req.ExpectedStatus,
		Confirmed:      req.Confirm,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusChangeResponse{
		Order:        toOrderResponse(view),
		Notification: toNotificationResponse(notification),
	})
}

// MarkPaid handles PUT /api/orders/:id/pay.
func (h *OrderHandler) MarkPaid(c *gin.Context) {
	view, err := h.facade.MarkPaid(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(view))
}

// Transitions handles GET /api/orders/:id/transitions.
func (h *OrderHandler) Transitions(c *gin.Context) {
	records, err := h.facade.Transitions(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if len(records) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.TransitionResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, toTransitionResponse(rec))
	}
	c.JSON(http.StatusOK, resp)
}
