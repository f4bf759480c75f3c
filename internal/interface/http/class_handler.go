package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/classroom-roster/internal/application"
	"github.com/oksasatya/classroom-roster/internal/interface/middleware"
	"github.com/oksasatya/classroom-roster/pkg/response"
)

type ClassHandler struct {
	Svc    *application.ClassService
	Logger *logrus.Logger
}

func NewClassHandler(svc *application.ClassService, logger *logrus.Logger) *ClassHandler {
	return &ClassHandler{Svc: svc, Logger: logger}
}

type createClassRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

type classPatch struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

type updateClassRequest struct {
	ID       string      `json:"id" binding:"required,id"`
	NewClass *classPatch `json:"newClass" binding:"required"`
}

func (h *ClassHandler) Create(c *gin.Context) {
	if !allowed(c, h.Logger, application.AuthorizeAdmin(middleware.Caller(c))) {
		return
	}
	var req createClassRequest
	if !bind(c, &req) {
		return
	}
	cls, err := h.Svc.CreateClass(c.Request.Context(), middleware.Caller(c), req.Name, req.Description)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, cls, "class created", nil)
}

func (h *ClassHandler) Update(c *gin.Context) {
	var key userKey
	peek(c, &key)
	if !allowed(c, h.Logger, application.AuthorizeClassScope(middleware.Caller(c), key.ID)) {
		return
	}
	var req updateClassRequest
	if !bind(c, &req) {
		return
	}
	patch := application.ClassPatch{Name: req.NewClass.Name, Description: req.NewClass.Description}
	cls, err := h.Svc.UpdateClass(c.Request.Context(), middleware.Caller(c), req.ID, patch)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, cls, "class updated", nil)
}

func (h *ClassHandler) Delete(c *gin.Context) {
	if !allowed(c, h.Logger, application.AuthorizeAdmin(middleware.Caller(c))) {
		return
	}
	var req idRequest
	if !bind(c, &req) {
		return
	}
	cls, err := h.Svc.DeleteClass(c.Request.Context(), middleware.Caller(c), req.ID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, cls, "class deleted", nil)
}

func (h *ClassHandler) GetAvailable(c *gin.Context) {
	classes, err := h.Svc.ListAvailableClasses(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.List(c, classes, "classes")
}

// GetAvailableUsers lists the users not yet enrolled in the class.
func (h *ClassHandler) GetAvailableUsers(c *gin.Context) {
	if !allowed(c, h.Logger, application.AuthorizeAdmin(middleware.Caller(c))) {
		return
	}
	var req idRequest
	if !bind(c, &req) {
		return
	}
	users, err := h.Svc.ListAvailableUsersForClass(c.Request.Context(), middleware.Caller(c), req.ID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.List(c, users, "available users")
}
