// Package response provides JSON response helpers for gin handlers and the
// single place where the apperrors taxonomy is mapped to HTTP status codes.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peershare/service-rental/internal/apperrors"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent writes an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Error: message})
}

// Error maps a service error to its HTTP status code. Unclassified errors
// become 500 with a generic message so internal details never leak.
func Error(c *gin.Context, err error) {
	var (
		notFound    *apperrors.NotFoundError
		forbidden   *apperrors.ForbiddenError
		badRequest  *apperrors.BadRequestError
		conflict    *apperrors.ConflictError
		unsupported *apperrors.UnsupportedStateError
	)

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, ErrorBody{Error: notFound.Error()})
	case errors.As(err, &forbidden):
		c.JSON(http.StatusForbidden, ErrorBody{Error: forbidden.Error()})
	case errors.As(err, &badRequest):
		c.JSON(http.StatusBadRequest, ErrorBody{Error: badRequest.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, ErrorBody{Error: conflict.Error()})
	case errors.As(err, &unsupported):
		// The offending literal is echoed so the gateway can show it to the caller.
		c.JSON(http.StatusBadRequest, ErrorBody{Error: unsupported.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorBody{Error: "internal server error"})
	}
}
