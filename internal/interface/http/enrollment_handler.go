package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/classroom-roster/internal/application"
	"github.com/oksasatya/classroom-roster/internal/domain/entity"
	"github.com/oksasatya/classroom-roster/internal/interface/middleware"
	"github.com/oksasatya/classroom-roster/pkg/response"
)

type EnrollmentHandler struct {
	Svc    *application.EnrollmentService
	Logger *logrus.Logger
}

func NewEnrollmentHandler(svc *application.EnrollmentService, logger *logrus.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{Svc: svc, Logger: logger}
}

type enrollmentKey struct {
	UserID  string `json:"userId" binding:"required,id"`
	ClassID string `json:"classId" binding:"required,id"`
}

type enrollmentPatch struct {
	Notes *string `json:"notes" binding:"omitempty,max=5000"`
	Title *string `json:"title" binding:"omitempty,max=100"`
}

type updateEnrollmentRequest struct {
	UserID  string           `json:"userId" binding:"required,id"`
	ClassID string           `json:"classId" binding:"required,id"`
	User    *enrollmentPatch `json:"user" binding:"required"`
}

func (h *EnrollmentHandler) Add(c *gin.Context) {
	if !allowed(c, h.Logger, application.AuthorizeAdmin(middleware.Caller(c))) {
		return
	}
	var req enrollmentKey
	if !bind(c, &req) {
		return
	}
	e, err := h.Svc.AddUserToClass(c.Request.Context(), middleware.Caller(c), req.UserID, req.ClassID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, e, "user added to class", nil)
}

func (h *EnrollmentHandler) Update(c *gin.Context) {
	var key classKey
	peek(c, &key)
	if !allowed(c, h.Logger, application.AuthorizeClassScope(middleware.Caller(c), key.ClassID)) {
		return
	}
	var req updateEnrollmentRequest
	if !bind(c, &req) {
		return
	}
	patch := entity.EnrollmentPatch{Title: req.User.Title, Notes: req.User.Notes}
	e, err := h.Svc.UpdateEnrollment(c.Request.Context(), middleware.Caller(c), req.UserID, req.ClassID, patch)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, e, "enrollment updated", nil)
}

func (h *EnrollmentHandler) Remove(c *gin.Context) {
	var key classKey
	peek(c, &key)
	if !allowed(c, h.Logger, application.AuthorizeClassScope(middleware.Caller(c), key.ClassID)) {
		return
	}
	var req enrollmentKey
	if !bind(c, &req) {
		return
	}
	if err := h.Svc.RemoveUserFromClass(c.Request.Context(), middleware.Caller(c), req.UserID, req.ClassID); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"success": true}, "user removed from class", nil)
}
