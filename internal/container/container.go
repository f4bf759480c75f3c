package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/classroom-roster/config"
	repo "github.com/oksasatya/classroom-roster/internal/domain/repository"
	"github.com/oksasatya/classroom-roster/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router auto-wires modules from these singletons.

// Repositories is the store the services run against.
type Repositories struct {
	Users       repo.UserRepository
	Classes     repo.ClassRepository
	Enrollments repo.EnrollmentRepository
}

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	repos       Repositories

	signer    *helpers.SessionSigner
	rabbitPub *helpers.RabbitPublisher
	esClient  *elasticsearch.Client
)

func SetConfig(c *config.Config)              { cfg = c }
func GetConfig() *config.Config               { return cfg }
func SetLogger(l *logrus.Logger)              { logger = l }
func GetLogger() *logrus.Logger               { return logger }
func SetPGPool(p *pgxpool.Pool)               { pgPool = p }
func GetPGPool() *pgxpool.Pool                { return pgPool }
func SetRedis(r *redis.Client)                { redisClient = r }
func GetRedis() *redis.Client                 { return redisClient }
func SetRepositories(r Repositories)          { repos = r }
func GetRepositories() Repositories           { return repos }
func SetSigner(s *helpers.SessionSigner)      { signer = s }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }

// GetSigner falls back to a signer keyed by the configured session secret.
func GetSigner() *helpers.SessionSigner {
	if signer != nil {
		return signer
	}
	return helpers.NewSessionSigner(cfg.SessionSecret)
}

// Reset clears every singleton. Tests use it between engines.
func Reset() {
	cfg, logger, pgPool, redisClient = nil, nil, nil, nil
	repos = Repositories{}
	signer, rabbitPub, esClient = nil, nil, nil
}
