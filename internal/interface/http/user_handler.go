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

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type idRequest struct {
	ID string `json:"id" binding:"required,id"`
}

type createUserRequest struct {
	Email string `json:"email" binding:"required,email,max=254"`
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Role  string `json:"role" binding:"omitempty,role"`
	Title string `json:"title" binding:"max=100"`
	Phone string `json:"phone" binding:"max=32"`
}

type userPatch struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	Title    *string `json:"title" binding:"omitempty,max=100"`
	Phone    *string `json:"phone" binding:"omitempty,max=32"`
	Password *string `json:"password" binding:"omitempty,pwd"`
	Role     *string `json:"role" binding:"omitempty,role"`
}

type updateUserRequest struct {
	ID   string     `json:"id" binding:"required,id"`
	User *userPatch `json:"user" binding:"required"`
}

type searchUsersRequest struct {
	Q    string `json:"q" binding:"required,max=200"`
	Size int    `json:"size" binding:"omitempty,min=1,max=50"`
}

func (h *UserHandler) Create(c *gin.Context) {
	if !allowed(c, h.Logger, application.AuthorizeAdmin(middleware.Caller(c))) {
		return
	}
	var req createUserRequest
	if !bind(c, &req) {
		return
	}
	in := application.CreateUserInput{Email: req.Email, Name: req.Name, Title: req.Title, Phone: req.Phone}
	if req.Role != "" {
		in.Role, _ = entity.ParseRole(req.Role)
	}
	u, err := h.Svc.CreateUser(c.Request.Context(), middleware.Caller(c), in)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, u, "user created", nil)
}

// Update authorizes on the target id before the body is validated, so a
// caller editing someone else gets 403 whatever they sent.
func (h *UserHandler) Update(c *gin.Context) {
	var key userKey
	peek(c, &key)
	if !allowed(c, h.Logger, application.AuthorizeUserUpdate(middleware.Caller(c), key.ID)) {
		return
	}
	var req updateUserRequest
	if !bind(c, &req) {
		return
	}
	in := application.UpdateUserInput{
		Name:     req.User.Name,
		Title:    req.User.Title,
		Phone:    req.User.Phone,
		Password: req.User.Password,
	}
	if req.User.Role != nil {
		if r, ok := entity.ParseRole(*req.User.Role); ok {
			in.Role = &r
		}
	}
	u, err := h.Svc.UpdateUser(c.Request.Context(), middleware.Caller(c), req.ID, in)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user updated", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if !allowed(c, h.Logger, application.AuthorizeAdmin(middleware.Caller(c))) {
		return
	}
	var req idRequest
	if !bind(c, &req) {
		return
	}
	u, err := h.Svc.DeleteUser(c.Request.Context(), middleware.Caller(c), req.ID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user deleted", nil)
}

func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.List(c, users, "users")
}

func (h *UserHandler) Self(c *gin.Context) {
	u, err := h.Svc.Self(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "self", nil)
}

// ResetPassword clears a user's credential so the next login sets a new one.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	if !allowed(c, h.Logger, application.AuthorizeAdmin(middleware.Caller(c))) {
		return
	}
	var req idRequest
	if !bind(c, &req) {
		return
	}
	enqueued, err := h.Svc.ResetPassword(c.Request.Context(), middleware.Caller(c), req.ID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"reset": true, "invite_enqueued": enqueued}, "credential reset", nil)
}

func (h *UserHandler) Search(c *gin.Context) {
	if !allowed(c, h.Logger, application.AuthorizeAdmin(middleware.Caller(c))) {
		return
	}
	var req searchUsersRequest
	if !bind(c, &req) {
		return
	}
	hits, err := h.Svc.SearchUsers(c.Request.Context(), middleware.Caller(c), req.Q, req.Size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.List(c, hits, "search results")
}
