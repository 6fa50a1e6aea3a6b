package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gitlab.com/codearena-2025.net/internal/adapter/judge0"
	"gitlab.com/codearena-2025.net/internal/adapter/logging"
	memrepo "gitlab.com/codearena-2025.net/internal/adapter/memory/testcaserepository"
	pgrepo "gitlab.com/codearena-2025.net/internal/adapter/postgres/testcaserepository"
	"gitlab.com/codearena-2025.net/internal/adapter/redis/testcasecache"
	"gitlab.com/codearena-2025.net/internal/config"
	"gitlab.com/codearena-2025.net/internal/core/ports/secondary"
	"gitlab.com/codearena-2025.net/internal/core/services/judge"
	"gitlab.com/codearena-2025.net/internal/domain"
	logger2 "gitlab.com/codearena-2025.net/internal/global/logger"
	http2 "gitlab.com/codearena-2025.net/internal/http"
)

func main() {
	InitReader()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger2.Info("Starting judge engine service")

	sysCfg := config.NewSystemConfig()
	logger := logging.NewZapLogger(sysCfg.DebugMode)

	// SECONDARY PORTS
	testCaseRepo, cleanup, err := setupTestCaseRepository(sysCfg, logger)
	if err != nil {
		logger.Error("Failed to set up test case repository", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	runner := judge0.NewClient(sysCfg.Judge0Config, logger)

	// services
	judgeService := judge.NewService(testCaseRepo, runner, logger)
	serviceProvider := http2.NewServiceProvider(judgeService, testCaseRepo, runner)

	// server
	httpServer := http2.NewServer(sysCfg.ServerConfig.Port, sysCfg.ServerConfig.ServiceName, *serviceProvider, logger)
	if err := httpServer.Init(); err != nil {
		logger.Error("Failed to init http server", "error", err)
		os.Exit(1)
	}

	ctxBg := context.Background()
	httpServer.Start(ctxBg)

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctxBg, 5*time.Second)
	defer cancel()
	httpServer.Stop(ctx)

	logger.Info("successfully shutdown server")
}

// setupTestCaseRepository picks the catalog backing store: postgres when
// DATABASE_URL is set, otherwise the seeded in-memory store. A redis cache
// tier is layered on top when REDIS_ADDR is set.
func setupTestCaseRepository(sysCfg *config.AppConfig, logger *logging.ZapLogger) (secondary.TestCaseRepository, func(), error) {
	cleanup := func() {}

	var repo secondary.TestCaseRepository
	if sysCfg.PostgresConfig.Url != "" {
		db, err := sqlx.Open("postgres", sysCfg.PostgresConfig.Url)
		if err != nil {
			return nil, cleanup, err
		}
		if err := db.Ping(); err != nil {
			return nil, cleanup, err
		}
		cleanup = func() { _ = db.Close() }
		repo = pgrepo.NewTestCaseRepository(db, logger)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory test case catalog")
		store := memrepo.NewStore()
		seedCatalog(store)
		repo = store
	}

	if sysCfg.RedisConfig.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     sysCfg.RedisConfig.Addr,
			Password: sysCfg.RedisConfig.Password,
			DB:       sysCfg.RedisConfig.DB,
		})
		inner := cleanup
		cleanup = func() {
			_ = redisClient.Close()
			inner()
		}
		repo = testcasecache.New(repo, redisClient, logger)
	}

	return repo, cleanup, nil
}

// seedCatalog loads the built-in dev challenges.
func seedCatalog(store *memrepo.Store) {
	store.Seed(
		domain.TestCase{
			ChallengeID:    1,
			Input:          "[2,7,11,15], 9",
			ExpectedOutput: "[0,1]",
			Description:    "Example 1: Two numbers that sum to target",
			IsSample:       true,
			Weight:         1,
		},
		domain.TestCase{
			ChallengeID:    1,
			Input:          "[3,2,4], 6",
			ExpectedOutput: "[1,2]",
			Description:    "Example 2: Another pair that sums to target",
			IsSample:       true,
			Weight:         1,
		},
		domain.TestCase{
			ChallengeID:    1,
			Input:          "[3,3], 6",
			ExpectedOutput: "[0,1]",
			Description:    "Example 3: Duplicate values",
			IsSample:       true,
			IsHidden:       true,
			Weight:         2,
		},
		domain.TestCase{
			ChallengeID:    2,
			Input:          "n = 5",
			ExpectedOutput: "15",
			Description:    "Sum from 1 to 5 should be 15",
			IsSample:       true,
			Weight:         1,
		},
		domain.TestCase{
			ChallengeID:    2,
			Input:          "n = 10",
			ExpectedOutput: "55",
			Description:    "Sum from 1 to 10 should be 55",
			IsSample:       true,
			IsHidden:       true,
			Weight:         3,
		},
	)
}

func InitReader() {
	environment := ""
	if len(os.Args) < 2 {
		log.Fatalf("Env not supplied in argument")
	} else {
		environment = os.Args[1]
	}

	err := godotenv.Load(environment + ".env")
	if err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}
