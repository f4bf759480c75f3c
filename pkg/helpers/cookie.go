package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Manager struct {
	Name   string
	Domain string
	Secure bool
	MaxAge time.Duration
}

func NewCookie(name, domain string, secure bool, maxAge time.Duration) *Manager {
	return &Manager{Name: name, Domain: domain, Secure: secure, MaxAge: maxAge}
}

// Get returns the session cookie value, or "" when absent.
func (m *Manager) Get(c *gin.Context) string {
	v, err := c.Cookie(m.Name)
	if err != nil {
		return ""
	}
	return v
}

func (m *Manager) SetSession(c *gin.Context, value string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.Name, value, int(m.MaxAge.Seconds()), "/", m.Domain, m.Secure, true)
}

func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.Name, "", -1, "/", m.Domain, m.Secure, true)
}
