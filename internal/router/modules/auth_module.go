package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/classroom-roster/internal/interface/http"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/user/login", m.Handler.Login)
	rg.GET("/logout", m.Handler.Logout)
}
