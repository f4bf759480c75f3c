package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/classroom-roster/internal/interface/http"
)

// UserModule serves /user/*. Handlers check the caller before validating
// the body; the services check again.
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/user")
	g.POST("/create", m.Handler.Create)
	g.POST("/update", m.Handler.Update)
	g.POST("/delete", m.Handler.Delete)
	g.POST("/getAll", m.Handler.GetAll)
	g.POST("/self", m.Handler.Self)
	g.POST("/resetPassword", m.Handler.ResetPassword)
	g.POST("/search", m.Handler.Search)
}
