package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/peershare/service-rental/internal/application"
	"github.com/peershare/service-rental/internal/middleware"
	"github.com/peershare/service-rental/internal/response"
)

// RequestHandler handles HTTP requests for item-request operations.
type RequestHandler struct {
	service application.RequestUseCase
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(service application.RequestUseCase) *RequestHandler {
	return &RequestHandler{service: service}
}

// RegisterRoutes registers all item-request routes on the given router.
func (h *RequestHandler) RegisterRoutes(r *gin.Engine) {
	requests := r.Group("/requests")
	requests.Use(middleware.CallerIdentity())
	{
		requests.POST("", h.Create)
		requests.GET("", h.ListOwn)
		requests.GET("/all", h.ListOthers)
		requests.GET("/:id", h.Get)
	}
}

// Create handles POST /requests.
func (h *RequestHandler) Create(c *gin.Context) {
	callerID, ok := middleware.GetCallerID(c)
	if !ok {
		response.BadRequest(c, "caller identity is missing")
		return
	}

	var req application.CreateItemRequestRequest
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

// ListOwn handles GET /requests.
func (h *RequestHandler) ListOwn(c *gin.Context) {
	callerID, ok := middleware.GetCallerID(c)
	if !ok {
		response.BadRequest(c, "caller identity is missing")
		return
	}

	result, err := h.service.ListOwn(c.Request.Context(), callerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListOthers handles GET /requests/all?from=&size=.
func (h *RequestHandler) ListOthers(c *gin.Context) {
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

	result, err := h.service.ListOthers(c.Request.Context(), callerID, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Get handles GET /requests/:id.
func (h *RequestHandler) Get(c *gin.Context) {
	callerID, ok := middleware.GetCallerID(c)
	if !ok {
		response.BadRequest(c, "caller identity is missing")
		return
	}

	requestID, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid request id")
		return
	}

	result, err := h.service.Get(c.Request.Context(), callerID, requestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
