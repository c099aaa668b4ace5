package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/peershare/service-rental/internal/application"
	"github.com/peershare/service-rental/internal/middleware"
	"github.com/peershare/service-rental/internal/response"
)

// ItemHandler handles HTTP requests for item operations.
type ItemHandler struct {
	service application.ItemUseCase
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service application.ItemUseCase) *ItemHandler {
	return &ItemHandler{service: service}
}

// RegisterRoutes registers all item routes on the given router.
func (h *ItemHandler) RegisterRoutes(r *gin.Engine) {
	items := r.Group("/items")
	items.Use(middleware.CallerIdentity())
	{
		items.POST("", h.Create)
		items.PATCH("/:id", h.Update)
		items.GET("/:id", h.Get)
		items.GET("", h.ListByOwner)
		items.GET("/search", h.Search)
		items.POST("/:id/comment", h.AddComment)
	}
}

// Create handles POST /items.
func (h *ItemHandler) Create(c *gin.Context) {
	callerID, ok := middleware.GetCallerID(c)
	if !ok {
		response.BadRequest(c, "caller identity is missing")
		return
	}

	var req application.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), callerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// Update handles PATCH /items/:id.
func (h *ItemHandler) Update(c *gin.Context) {
	callerID, ok := middleware.GetCallerID(c)
	if !ok {
		response.BadRequest(c, "caller identity is missing")
		return
	}

	itemID, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid item id")
		return
	}

	var req application.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Update(c.Request.Context(), callerID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Get handles GET /items/:id.
func (h *ItemHandler) Get(c *gin.Context) {
	callerID, ok := middleware.GetCallerID(c)
	if !ok {
		response.BadRequest(c, "caller identity is missing")
		return
	}

	itemID, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid item id")
		return
	}

	result, err := h.service.Get(c.Request.Context(), callerID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListByOwner handles GET /items?from=&size=.
func (h *ItemHandler) ListByOwner(c *gin.Context) {
	callerID, ok := middleware.GetCallerID(c)
	if !ok {
		response.BadRequest(c, "caller identity is missing")
		return
	}

	from, size, ok := parseWindow(c)
	if !ok {
		response.BadRequest(c, "from and size must be numbers")
		return
	}

	result, err := h.service.ListByOwner(c.Request.Context(), callerID, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Search handles GET /items/search?text=&from=&size=.
func (h *ItemHandler) Search(c *gin.Context) {
	from, size, ok := parseWindow(c)
	if !ok {
		response.BadRequest(c, "from and size must be numbers")
		return
	}

	result, err := h.service.Search(c.Request.Context(), c.Query("text"), from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// AddComment handles POST /items/:id/comment.
func (h *ItemHandler) AddComment(c *gin.Context) {
	callerID, ok := middleware.GetCallerID(c)
	if !ok {
		response.BadRequest(c, "caller identity is missing")
		return
	}

	itemID, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid item id")
		return
	}

	var req application.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddComment(c.Request.Context(), callerID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}
