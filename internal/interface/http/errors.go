package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/classroom-roster/internal/application"
	"github.com/oksasatya/classroom-roster/pkg/helpers"
	"github.com/oksasatya/classroom-roster/pkg/response"
	"github.com/oksasatya/classroom-roster/pkg/validation"
)

// writeError maps application errors onto the response envelope.
// Anything unrecognised is logged and reported as a 500.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, application.ErrUnauthorized):
		response.Error[any](c, http.StatusForbidden, "unauthorized", nil)
	case errors.Is(err, application.ErrUnauthenticated):
		response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, application.ErrConflict):
		response.Error[any](c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, application.ErrInvalidInput):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	default:
		if logger != nil {
			helpers.LogError(logger, "request failed", err, logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.Request.URL.Path,
			})
		}
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}

// bind decodes the JSON body into req and writes a 400 when it fails.
// The body is cached so it can be decoded again after peek.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindBodyWith(req, binding.JSON); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return false
	}
	return true
}

// peek decodes only the identifying fields of the body into key. Keys carry
// no validation; a body that does not decode leaves key zero.
func peek(c *gin.Context, key any) {
	_ = c.ShouldBindBodyWith(key, binding.JSON)
}

// allowed writes err and reports false when the caller was turned away.
func allowed(c *gin.Context, logger *logrus.Logger, err error) bool {
	if err != nil {
		writeError(c, logger, err)
		return false
	}
	return true
}

type userKey struct {
	ID string `json:"id"`
}

type classKey struct {
	ClassID string `json:"classId"`
}
