package order

import (
	"net/http"

	"chef-virtual/internal/core/orders"
	"chef-virtual/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmitRequest places the pending order of one retailer.
type SubmitRequest struct {
	Retailer string       `json:"supermercado" binding:"required"`
	User     string       `json:"usuario" binding:"required"`
	Orders   common.Order `json:"productos" binding:"required"`
}

// SubmitResponse acknowledges a submitted order.
type SubmitResponse struct {
	Success  bool               `json:"success"`
	Message  string             `json:"message"`
	Products []common.OrderLine `json:"productos"`
	Total    string             `json:"total"`
	Retailer common.Retailer    `json:"supermercado"`
}

// Handler serves order submission requests.
type Handler struct {
	orders *orders.Client
}

// NewHandler creates the order handler.
func NewHandler(ordersClient *orders.Client) *Handler {
	return &Handler{orders: ordersClient}
}

// HandleSubmit forwards the chosen retailer's order lines to the order
// collaborator.
func (h *Handler) HandleSubmit(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("invalid order request",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	retailer, ok := common.ParseRetailer(req.Retailer)
	if !ok {
		c.JSON(common.ErrInvalidRetailer.Status, gin.H{
			"error": common.ErrInvalidRetailer.Message,
			"code":  common.ErrInvalidRetailer.Code,
		})
		return
	}

	pending := req.Orders[retailer]
	if pending == nil || len(pending.Lines) == 0 {
		c.JSON(common.ErrEmptyOrder.Status, gin.H{
			"error": common.ErrEmptyOrder.Message,
			"code":  common.ErrEmptyOrder.Code,
		})
		return
	}
	pending.Retailer = retailer
	pending.RecalcTotal()

	if err := h.orders.Submit(c.Request.Context(), req.User, pending); err != nil {
		common.LogError("order submission failed",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("retailer", string(retailer)),
		)
		c.JSON(common.ErrOrderSubmission.Status, gin.H{
			"error": common.ErrOrderSubmission.Message,
			"code":  common.ErrOrderSubmission.Code,
		})
		return
	}

	c.JSON(http.StatusOK, SubmitResponse{
		Success:  true,
		Message:  "Pedido enviado correctamente",
		Products: pending.Lines,
		Total:    pending.Total.StringFixed(2),
		Retailer: retailer,
	})
}
