package testutil

import (
	"context"
	"flag"
	"fmt"
	"log"
	"testing"
	"time"

	"go-gin-comedy-tickets/config"
	"go-gin-comedy-tickets/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage = "postgres:16-alpine"
	redisImage    = "redis:7-alpine"
	startTimeout  = 2 * time.Minute
)

// StartPostgres 啟動 Postgres 容器並套用 migrations
func StartPostgres(ctx context.Context) (*pgxpool.Pool, func(), error) {
	cfg := config.LoadTestConfig().Database

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        postgresImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     cfg.User,
				"POSTGRES_PASSWORD": cfg.Password,
				"POSTGRES_DB":       cfg.DBName,
			},
			// postgres 映像初始化時會重啟一次，第二次出現才是真正可連線
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(startTimeout),
		},
		Started: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start postgres container: %w", err)
	}
	terminate := func() {
		if err := container.Terminate(context.Background()); err != nil {
			log.Printf("failed to terminate postgres container: %v", err)
		}
	}

	host, err := container.Host(ctx)
	if err != nil {
		terminate()
		return nil, nil, err
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		terminate()
		return nil, nil, err
	}
	cfg.Host = host
	cfg.Port = port.Port()

	pool, err := database.InitDatabase(&cfg)
	if err != nil {
		terminate()
		return nil, nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	if err := database.RunMigrations(pool); err != nil {
		pool.Close()
		terminate()
		return nil, nil, err
	}
	log.Println("Test database connected successfully")

	cleanup := func() {
		pool.Close()
		terminate()
		log.Println("Test database closed")
	}
	return pool, cleanup, nil
}

// StartRedis 啟動 Redis 容器
func StartRedis(ctx context.Context) (*redis.Client, func(), error) {
	cfg := config.LoadTestConfig().Redis

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        redisImage,
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(startTimeout),
		},
		Started: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start redis container: %w", err)
	}
	terminate := func() {
		if err := container.Terminate(context.Background()); err != nil {
			log.Printf("failed to terminate redis container: %v", err)
		}
	}

	host, err := container.Host(ctx)
	if err != nil {
		terminate()
		return nil, nil, err
	}
	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		terminate()
		return nil, nil, err
	}
	cfg.Host = host
	cfg.Port = port.Port()

	rdb, err := database.InitRedis(&cfg)
	if err != nil {
		terminate()
		return nil, nil, fmt.Errorf("failed to initialize redis: %w", err)
	}
	log.Println("Test redis connected successfully")

	cleanup := func() {
		rdb.Close()
		terminate()
		log.Println("Test redis closed")
	}
	return rdb, cleanup, nil
}

func Setup() (*pgxpool.Pool, *redis.Client, func(), error) {
	ctx := context.Background()

	pool, closeDB, err := StartPostgres(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	rdb, closeRedis, err := StartRedis(ctx)
	if err != nil {
		closeDB()
		return nil, nil, nil, err
	}

	cleanup := func() {
		closeRedis()
		closeDB()
	}
	return pool, rdb, cleanup, nil
}

// SetupRedisOnly 僅初始化 Redis，用於只依賴 Redis 的測試（如 queue 整合測試）
func SetupRedisOnly() (*redis.Client, func(), error) {
	return StartRedis(context.Background())
}

// skipReason 非空代表容器沒有啟動，整合測試應跳過
var skipReason string

// RunIntegration 供 TestMain 使用：-short 或沒有 Docker 時仍執行單元測試，整合測試由 RequireIntegration 跳過
func RunIntegration(m *testing.M, setup func() (func(), error)) int {
	flag.Parse()
	if testing.Short() {
		skipReason = "short mode"
		return m.Run()
	}

	cleanup, err := setup()
	if err != nil {
		skipReason = err.Error()
		log.Printf("Integration environment unavailable: %v", err)
		return m.Run()
	}
	defer cleanup()

	return m.Run()
}

// RequireIntegration 放在需要 Postgres / Redis 的測試開頭
func RequireIntegration(t *testing.T) {
	t.Helper()
	if skipReason != "" {
		t.Skipf("skipping integration test: %s", skipReason)
	}
}

// TruncateAll 清空所有業務資料表；platform_settings 只重設為預設值
func TruncateAll(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		TRUNCATE TABLE bookings, show_comedians, ticket_inventory, shows,
			role_approvals, comedian_profiles, users
		RESTART IDENTITY CASCADE`)
	if err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	_, err = pool.Exec(ctx, `UPDATE platform_settings SET platform_fee_percent = 10, booking_fee_per_ticket = 0`)
	return err
}
