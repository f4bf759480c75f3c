package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/classroom-roster/internal/application"
	"github.com/oksasatya/classroom-roster/pkg/helpers"
)

const (
	entryPath     = "/"
	dashboardPath = "/dashboard"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Signer  *helpers.SessionSigner
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, signer *helpers.SessionSigner, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Signer: signer, Cookies: cookies, Logger: logger}
}

// loginRequest accepts both the entry page form and a JSON body.
type loginRequest struct {
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required,pwd"`
}

// Login sets the session cookie and redirects to the dashboard. Every
// failure redirects back to the entry page with an error parameter.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.fail(c, "invalid credentials")
		return
	}

	u, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, application.ErrUnauthenticated) {
			helpers.LogError(h.Logger, "login failed", err, logrus.Fields{"request_id": c.GetString("request_id")})
			h.fail(c, "login failed")
			return
		}
		h.Logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"ip":         c.GetString("real_ip"),
		}).Info("login rejected")
		h.fail(c, "invalid credentials")
		return
	}

	cookie, err := h.Signer.Sign(u.Token)
	if err != nil {
		helpers.LogError(h.Logger, "sign session cookie", err, logrus.Fields{"user_id": u.ID})
		h.fail(c, "login failed")
		return
	}
	h.Cookies.SetSession(c, cookie)
	h.Logger.WithField("user_id", u.ID).Info("login")
	c.Redirect(http.StatusSeeOther, dashboardPath)
}

func (h *AuthHandler) fail(c *gin.Context, msg string) {
	c.Redirect(http.StatusSeeOther, entryPath+"?error="+url.QueryEscape(msg))
}

// Logout clears the cookie. The token itself stays valid; it is stable per user.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	c.Redirect(http.StatusFound, entryPath)
}
