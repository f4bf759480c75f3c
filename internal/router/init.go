package router

import (
	"expvar"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/classroom-roster/internal/application"
	"github.com/oksasatya/classroom-roster/internal/container"
	handlers "github.com/oksasatya/classroom-roster/internal/interface/http"
	"github.com/oksasatya/classroom-roster/internal/interface/middleware"
	"github.com/oksasatya/classroom-roster/internal/router/modules"
	"github.com/oksasatya/classroom-roster/pkg/helpers"
)

// Services are the engine's application services, built from the container.
type Services struct {
	Auth        *application.AuthService
	Users       *application.UserService
	Classes     *application.ClassService
	Enrollments *application.EnrollmentService
}

func buildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	repos := container.GetRepositories()

	sessions := application.NewSessionCache(container.GetRedis(), cfg.SessionCacheTTL, logger)
	index := application.NewUserIndex(container.GetES(), cfg.ESUsersIndex, logger)

	notifier := application.NewNotifier(nil, cfg, logger)
	// a nil *RabbitPublisher must not end up inside the interface
	if pub := container.GetRabbitPub(); pub != nil {
		notifier.Pub = pub
	}

	return Services{
		Auth:        application.NewAuthService(repos.Users, repos.Enrollments, sessions, logger),
		Users:       application.NewUserService(repos.Users, sessions, index, notifier, logger),
		Classes:     application.NewClassService(repos.Classes, repos.Users, repos.Enrollments, logger),
		Enrollments: application.NewEnrollmentService(repos.Enrollments, repos.Users, repos.Classes, notifier, logger),
	}
}

// InitModules wires the session middleware and every feature module into
// the registry. Call once during startup, before RegisterAll.
func InitModules(r *Registry) Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	svc := buildServices()

	signer := container.GetSigner()
	cookies := helpers.NewCookie(cfg.SessionCookieName, cfg.CookieDomain, cfg.CookieSecure, cfg.SessionMaxAge)

	r.Use(middleware.Session(svc.Auth, signer, cookies, logger))

	r.Add(modules.NewStaticModule(cfg.PublicDir))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Auth, signer, cookies, logger)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Users, logger)))
	r.Add(modules.NewClassModule(
		handlers.NewClassHandler(svc.Classes, logger),
		handlers.NewEnrollmentHandler(svc.Enrollments, logger),
	))
	if cfg.DebugMetricsEnabled {
		// expvar counters; behind the session like everything else
		r.Add(ModuleFunc(func(rg *gin.RouterGroup) {
			rg.GET("/debug/vars", gin.WrapH(expvar.Handler()))
		}))
	}
	return svc
}

// New builds the gin engine from the container. The container must hold a
// config, a logger and the repositories.
func New() *gin.Engine {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	engine := gin.New()
	engine.Use(gin.Recovery())
	if cfg.Env == "development" {
		engine.Use(gin.Logger())
	}

	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	reg := NewRegistry(engine)
	reg.Use(
		middleware.RequestIDMiddleware(),
		middleware.RealIP(),
		middleware.AccessLog(logger),
	)
	InitModules(reg)
	reg.RegisterAll()
	return engine
}
