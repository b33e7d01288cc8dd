//go:build e2e

// Package e2e drives the full HTTP stack against PostgreSQL and Redis in containers.
package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"parking-core/cmd/bootstrap"
	"parking-core/cmd/bootstrap/components"
	"parking-core/internal/pkg/config"
	"parking-core/internal/testutil/dbtest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

func setupE2EEnvironment(t *testing.T) (*pgxpool.Pool, *gin.Engine, config.Config) {
	gin.SetMode(gin.TestMode)

	info := dbtest.StartPostgres(t)
	pool, dbCfg := dbtest.NewDatabase(t, info)
	redisClient := redis.NewClient(&redis.Options{Addr: dbtest.StartRedis(t)})
	t.Cleanup(func() { _ = redisClient.Close() })

	router, cfg, app := buildE2EApp(pool, dbCfg, redisClient)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx app", "error", err)
		}
	})

	return pool, router, cfg
}

// buildE2EApp wires the production modules around the test pool and Redis,
// so spot locks go through the in-process and Redis lockers. The scheduler
// stays out so each test sees only its own requests.
func buildE2EApp(pool *pgxpool.Pool, dbCfg config.DBConfig, redisClient *redis.Client) (*gin.Engine, config.Config, *fx.App) {
	var (
		router *gin.Engine
		cfg    config.Config
	)

	app := fx.New(
		fx.Provide(
			func() config.Config {
				c := config.NewTestConfig()
				c.DB = dbCfg
				c.Lock.RedisPrefix = "e2e:" + uuid.NewString() + ":"
				return c
			},
			func() *pgxpool.Pool { return pool },
			func() *redis.Client { return redisClient },
			func() *gin.Engine { return gin.New() },
		),
		bootstrap.ConfigSections,
		bootstrap.LoggerModule,
		bootstrap.MessagingModule,
		bootstrap.JWTModule,
		components.StoreModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router, &cfg),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("failed to start fx app: %v", err))
	}
	return router, cfg, app
}

type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	s.DB, s.Router, s.Config = setupE2EEnvironment(s.T())
	require.NotNil(s.T(), s.Router)
}

func (s *SharedSuite) SetupTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "failed to reset database")
}
