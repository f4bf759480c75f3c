package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/classroom-roster/internal/interface/http"
)

// ClassModule serves /class/*, including the enrollment routes.
type ClassModule struct {
	Classes     *handlers.ClassHandler
	Enrollments *handlers.EnrollmentHandler
}

func NewClassModule(classes *handlers.ClassHandler, enrollments *handlers.EnrollmentHandler) *ClassModule {
	return &ClassModule{Classes: classes, Enrollments: enrollments}
}

func (m *ClassModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/class")
	g.POST("/create", m.Classes.Create)
	g.POST("/update", m.Classes.Update)
	g.POST("/delete", m.Classes.Delete)
	g.POST("/getAvailable", m.Classes.GetAvailable)
	g.POST("/getAvailableUsers", m.Classes.GetAvailableUsers)

	g.POST("/addUser", m.Enrollments.Add)
	g.POST("/updateUser", m.Enrollments.Update)
	g.POST("/removeUser", m.Enrollments.Remove)
}
