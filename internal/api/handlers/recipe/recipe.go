package recipe

import (
	"net/http"

	"chef-virtual/internal/core/catalog"
	"chef-virtual/internal/core/chef"
	"chef-virtual/internal/core/pipeline"
	"chef-virtual/internal/core/users"
	"chef-virtual/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerateRequest asks for a recipe and its priced shopping list.
type GenerateRequest struct {
	Name    string `json:"nombre"`
	Message string `json:"mensaje" binding:"required"`
	Number  string `json:"numero" binding:"required"`
}

// GenerateResponse carries the recipe reply and the per-retailer orders.
type GenerateResponse struct {
	Success bool         `json:"success"`
	Recipe  string       `json:"receta"`
	Orders  common.Order `json:"productos"`
	User    string       `json:"usuario"`
}

// Handler serves recipe generation requests.
type Handler struct {
	users    *users.Registry
	chef     *chef.Service
	catalog  *catalog.Client
	pipeline *pipeline.Service
}

// NewHandler creates the recipe handler.
func NewHandler(registry *users.Registry, chefSvc *chef.Service, catalogClient *catalog.Client, pipelineSvc *pipeline.Service) *Handler {
	return &Handler{
		users:    registry,
		chef:     chefSvc,
		catalog:  catalogClient,
		pipeline: pipelineSvc,
	}
}

// HandleGenerate generates a recipe, resolves its ingredients against a
// fresh catalog snapshot and returns the recipe text plus the per-retailer
// orders. A catalog outage still returns the recipe, with empty orders.
func (h *Handler) HandleGenerate(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("invalid recipe request",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userName := h.users.Resolve(req.Number, req.Name)

	recipeText, err := h.chef.GenerateRecipe(c.Request.Context(), userName, req.Message)
	if err != nil {
		common.LogError("recipe generation failed",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(common.ErrRecipeGeneration.Status, gin.H{
			"error": common.ErrRecipeGeneration.Message,
			"code":  common.ErrRecipeGeneration.Code,
		})
		return
	}

	products, err := h.catalog.FetchProducts(c.Request.Context())
	if err != nil {
		// Best effort: the recipe is still worth returning.
		common.LogWarn("catalog unavailable, returning recipe without prices",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		products = nil
	}

	result := h.pipeline.Resolve(recipeText, products)

	c.JSON(http.StatusOK, GenerateResponse{
		Success: true,
		Recipe:  result.FormatReply(userName),
		Orders:  result.Orders,
		User:    userName,
	})
}
