package router

import "github.com/gin-gonic/gin"

// Module registers a feature's routes on the root group.
type Module interface {
	Register(rg *gin.RouterGroup)
}

// ModuleFunc lets a plain function serve as a Module, for features small
// enough not to need a handler type.
type ModuleFunc func(rg *gin.RouterGroup)

func (f ModuleFunc) Register(rg *gin.RouterGroup) { f(rg) }
