package modules

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// StaticModule serves the entry page, its assets and the dashboard from dir.
type StaticModule struct {
	Dir string
}

func NewStaticModule(dir string) *StaticModule { return &StaticModule{Dir: dir} }

func (m *StaticModule) Register(rg *gin.RouterGroup) {
	rg.StaticFile("/", filepath.Join(m.Dir, "index.html"))
	rg.StaticFile("/favicon.ico", filepath.Join(m.Dir, "favicon.ico"))
	rg.Static("/assets", filepath.Join(m.Dir, "assets"))
	rg.Static("/dashboard", filepath.Join(m.Dir, "dashboard"))
}
