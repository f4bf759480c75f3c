package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/classroom-roster/internal/domain/entity"
	"github.com/oksasatya/classroom-roster/pkg/helpers"
)

const callerKey = "caller"

// Resolver is satisfied by *application.AuthService.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*entity.User, error)
}

// publicPaths are served without a session.
var publicPaths = map[string]struct{}{
	"/":            {},
	"/user/login":  {},
	"/favicon.ico": {},
}

var publicPrefixes = []string{"/assets/"}

func isPublic(path string) bool {
	if _, ok := publicPaths[path]; ok {
		return true
	}
	for _, p := range publicPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Session resolves the session cookie to a user for every request outside
// the allow-list. Requests without a valid session are redirected to "/".
func Session(resolver Resolver, signer *helpers.SessionSigner, cookies *helpers.Manager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isPublic(c.Request.URL.Path) {
			c.Next()
			return
		}

		raw := cookies.Get(c)
		if raw == "" {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		token, err := signer.Parse(raw)
		if err != nil {
			if logger != nil {
				logger.WithError(err).WithField("request_id", c.GetString("request_id")).Debug("rejecting session cookie")
			}
			cookies.Clear(c)
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		u, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			if logger != nil {
				logger.WithError(err).WithField("request_id", c.GetString("request_id")).Debug("session did not resolve")
			}
			cookies.Clear(c)
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		c.Set(callerKey, u)
		c.Next()
	}
}

// Caller returns the user resolved for this request, or nil.
func Caller(c *gin.Context) *entity.User {
	v, ok := c.Get(callerKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}
