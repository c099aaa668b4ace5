package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/peershare/service-rental/internal/application"
	"github.com/peershare/service-rental/internal/middleware"
	"github.com/peershare/service-rental/internal/response"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service application.BookingUseCase
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service application.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router.
func (h *BookingHandler) RegisterRoutes(r *gin.Engine) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.CallerIdentity())
	{
		bookings.POST("", h.Create)
		bookings.GET("", h.ListForBooker)
		bookings.GET("/owner", h.ListForOwner)
		bookings.GET("/:id", h.Get)
		bookings.PATCH("/:id", h.Decide)
		bookings.DELETE("/:id", h.Cancel)
	}
}

// Create handles POST /bookings.
func (h *BookingHandler) Create(c *gin.Context) {
	callerID, ok := middleware.GetCallerID(c)
	if !ok {
		response.BadRequest(c, "caller identity is missing")
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), callerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Decide handles PATCH /bookings/:id?approved={bool}.
func (h *BookingHandler) Decide(c *gin.Context) {
	callerID, ok := middleware.GetCallerID(c)
	if !ok {
		response.BadRequest(c, "caller identity is missing")
		return
	}

	bookingID, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid booking id")
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		response.BadRequest(c, "approved must be true or false")
		return
	}

	result, err := h.service.Decide(c.Request.Context(), callerID, bookingID, approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Cancel handles DELETE /bookings/:id. Only the booker may withdraw a
// booking, and only while it is WAITING.
func (h *BookingHandler) Cancel(c *gin.Context) {
	callerID, ok := middleware.GetCallerID(c)
	if !ok {
		response.BadRequest(c, "caller identity is missing")
		return
	}

	bookingID, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid booking id")
		return
	}

	result, err := h.service.Cancel(c.Request.Context(), callerID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Get handles GET /bookings/:id.
func (h *BookingHandler) Get(c *gin.Context) {
	callerID, ok := middleware.GetCallerID(c)
	if !ok {
		response.BadRequest(c, "caller identity is missing")
		return
	}

	bookingID, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "invalid booking id")
		return
	}

	result, err := h.service.Get(c.Request.Context(), callerID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListForBooker handles GET /bookings?state=&from=&size=.
func (h *BookingHandler) ListForBooker(c *gin.Context) {
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

	result, err := h.service.ListForBooker(c.Request.Context(), callerID, c.Query("state"), from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListForOwner handles GET /bookings/owner?state=&from=&size=.
func (h *BookingHandler) ListForOwner(c *gin.Context) {
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

	result, err := h.service.ListForOwner(c.Request.Context(), callerID, c.Query("state"), from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
