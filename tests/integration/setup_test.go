package integration

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/tradeinsight/internal/adapter/storage/postgres"
	"github.com/seu-repo/tradeinsight/pkg/config"
)

// TestEnv holds test environment resources
type TestEnv struct {
	// DB is a raw lib/pq handle for assertions that bypass GORM.
	DB                *sql.DB
	Gorm              *gorm.DB
	Redis             *redis.Client
	RedisURL          string
	PostgresContainer testcontainers.Container
	RedisContainer    testcontainers.Container
	Logger            *zap.Logger
	ctx               context.Context
}

var testEnv *TestEnv

// SetupTestEnvironment initializes the test environment with containers.
// Integration tests are skipped under -short.
func SetupTestEnvironment(t *testing.T) *TestEnv {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if testEnv != nil {
		return testEnv
	}

	ctx := context.Background()

	// Check if using external services (CI environment)
	if os.Getenv("DATABASE_URL") != "" {
		return setupExternalServices(t, ctx)
	}

	// Use testcontainers for local testing
	return setupContainers(t, ctx)
}

func setupExternalServices(t *testing.T, ctx context.Context) *TestEnv {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	testEnv = connect(t, ctx, os.Getenv("DATABASE_URL"), redisURL)
	return testEnv
}

func setupContainers(t *testing.T, ctx context.Context) *TestEnv {
	postgresContainer, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("tradeinsight_test"),
		tcpostgres.WithUsername("tradeinsight"),
		tcpostgres.WithPassword("tradeinsight_test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Skipf("Postgres container unavailable: %v", err)
	}

	pgConnStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get postgres connection string: %v", err)
	}

	redisContainer, err := tcredis.Run(ctx, "redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Skipf("Redis container unavailable: %v", err)
	}

	redisURL, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("Failed to get redis connection string: %v", err)
	}

	testEnv = connect(t, ctx, pgConnStr, redisURL)
	testEnv.PostgresContainer = postgresContainer
	testEnv.RedisContainer = redisContainer
	return testEnv
}

func connect(t *testing.T, ctx context.Context, pgConnStr, redisURL string) *TestEnv {
	logger, _ := zap.NewDevelopment()

	db, err := sql.Open("postgres", pgConnStr)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}

	// Wait for connection
	for i := 0; i < 30; i++ {
		if err := db.Ping(); err == nil {
			break
		}
		time.Sleep(time.Second)
	}

	gormDB, err := postgres.NewConnection(config.DatabaseConfig{URL: pgConnStr, MaxOpenConns: 5}, logger)
	if err != nil {
		t.Fatalf("Failed to open gorm connection: %v", err)
	}
	if err := postgres.RunMigrations(gormDB); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		t.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		t.Fatalf("Failed to connect to redis: %v", err)
	}

	return &TestEnv{
		DB:       db,
		Gorm:     gormDB,
		Redis:    redisClient,
		RedisURL: redisURL,
		Logger:   logger,
		ctx:      ctx,
	}
}

// TeardownTestEnvironment cleans up the test environment
func TeardownTestEnvironment(t *testing.T) {
	teardown(t.Logf)
}

func teardown(logf func(format string, args ...any)) {
	if testEnv == nil {
		return
	}

	ctx := context.Background()

	if testEnv.DB != nil {
		testEnv.DB.Close()
	}
	if testEnv.Gorm != nil {
		postgres.Close(testEnv.Gorm)
	}
	if testEnv.Redis != nil {
		testEnv.Redis.Close()
	}

	if testEnv.PostgresContainer != nil {
		if err := testEnv.PostgresContainer.Terminate(ctx); err != nil {
			logf("Failed to terminate postgres container: %v", err)
		}
	}
	if testEnv.RedisContainer != nil {
		if err := testEnv.RedisContainer.Terminate(ctx); err != nil {
			logf("Failed to terminate redis container: %v", err)
		}
	}

	testEnv = nil
}

// CleanDatabase truncates all tables
func CleanDatabase(t *testing.T, db *sql.DB) {
	if _, err := db.Exec("TRUNCATE TABLE dataset_records, datasets, users CASCADE"); err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
}

// FlushRedis clears all Redis keys
func FlushRedis(t *testing.T, client *redis.Client) {
	ctx := context.Background()
	if err := client.FlushAll(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush redis: %v", err)
	}
}

func TestMain(m *testing.M) {
	code := m.Run()
	teardown(log.Printf)
	os.Exit(code)
}
