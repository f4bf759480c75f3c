package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/classroom-roster/config"
	"github.com/oksasatya/classroom-roster/internal/container"
	"github.com/oksasatya/classroom-roster/internal/domain/entity"
	"github.com/oksasatya/classroom-roster/internal/infrastructure/memory"
	"github.com/oksasatya/classroom-roster/internal/router"
	"github.com/oksasatya/classroom-roster/pkg/validation"
)

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   any             `json:"error"`
}

type app struct {
	engine *gin.Engine
	store  *memory.Store
	public string
}

func writeFile(path, body string) {
	Expect(os.MkdirAll(filepath.Dir(path), 0o755)).To(Succeed())
	Expect(os.WriteFile(path, []byte(body), 0o644)).To(Succeed())
}

func newApp() *app {
	gin.SetMode(gin.TestMode)
	validation.Init()

	public, err := os.MkdirTemp("", "roster-public")
	Expect(err).To(BeNil())
	writeFile(filepath.Join(public, "index.html"), "<h1>entry</h1>")
	writeFile(filepath.Join(public, "assets", "style.css"), "body{}")
	writeFile(filepath.Join(public, "dashboard", "index.html"), "<h1>dashboard</h1>")

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := memory.NewStore()
	container.Reset()
	container.SetConfig(&config.Config{
		Env:                 "test",
		PublicDir:           public,
		SessionSecret:       "test-secret",
		SessionCookieName:   "token",
		SessionMaxAge:       time.Hour,
		ESUsersIndex:        "users",
		DebugMetricsEnabled: true,
	})
	container.SetLogger(logger)
	container.SetRepositories(container.Repositories{
		Users:       store.Users(),
		Classes:     store.Classes(),
		Enrollments: store.Enrollments(),
	})

	return &app{engine: router.New(), store: store, public: public}
}

func (a *app) close() { _ = os.RemoveAll(a.public) }

// seedUser inserts a user with no password directly into the store.
func (a *app) seedUser(email string, role entity.Role) *entity.User {
	u := &entity.User{Email: email, Name: email, Role: role, Token: "tok-" + email}
	Expect(a.store.Users().Create(context.Background(), u)).To(Succeed())
	return u
}

func (a *app) do(method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		Expect(err).To(BeNil())
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *app) post(path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	if body == nil {
		body = map[string]any{}
	}
	return a.do(http.MethodPost, path, body, cookie)
}

func (a *app) login(email, password string) *httptest.ResponseRecorder {
	form := url.Values{"email": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/user/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

// session logs in and returns the session cookie.
func (a *app) session(email, password string) *http.Cookie {
	w := a.login(email, password)
	Expect(w.Code).To(Equal(http.StatusSeeOther))
	Expect(w.Header().Get("Location")).To(Equal("/dashboard"))
	c := sessionCookie(w)
	Expect(c).NotTo(BeNil())
	return c
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	return nil
}

func decode(w *httptest.ResponseRecorder) envelope {
	var env envelope
	Expect(json.Unmarshal(w.Body.Bytes(), &env)).To(Succeed())
	return env
}

func decodeData(w *httptest.ResponseRecorder, v any) {
	env := decode(w)
	Expect(env.Success).To(BeTrue(), w.Body.String())
	Expect(json.Unmarshal(env.Data, v)).To(Succeed())
}
