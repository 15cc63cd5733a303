//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"servicemarket/internal/infra/db"
	"servicemarket/internal/pkg/config"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	postgresOnce      sync.Once
	postgresContainer testcontainers.Container

	testUser     = "test"
	testPassword = "testpass"
)

// setupPool starts the shared postgres container, creates a database
// private to the calling test process and applies the schema to it.
func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	startPostgresOnce(t)

	ctx := context.Background()
	mappedPort, err := postgresContainer.MappedPort(ctx, nat.Port("5432/tcp"))
	require.NoError(t, err, "resolve postgres port")
	host, err := postgresContainer.Host(ctx)
	require.NoError(t, err, "resolve postgres host")

	dbName := "testdb_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		testUser, testPassword, host, mappedPort.Port())

	adminCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	adminPool, err := pgxpool.New(adminCtx, adminDSN)
	require.NoError(t, err, "connect as admin")
	defer adminPool.Close()

	_, err = adminPool.Exec(adminCtx, "CREATE DATABASE "+dbName)
	require.NoError(t, err, "create test database")

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cleanupCancel()
		cleanupPool, err := pgxpool.New(cleanupCtx, adminDSN)
		if err != nil {
			return
		}
		defer cleanupPool.Close()
		_, _ = cleanupPool.Exec(cleanupCtx, "DROP DATABASE IF EXISTS "+dbName)
	})

	cfg := config.DBConfig{
		Host:     host,
		Port:     mappedPort.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
	}

	pool, cleanup, err := db.Connect(cfg)
	require.NoError(t, err, "connect to test database")
	t.Cleanup(cleanup)

	applySchema(t, pool)
	return pool
}

func applySchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	// Package dirs differ between direct and recursive test runs, so
	// resolve the schema relative to a few likely working directories.
	candidates := []string{
		filepath.Join("db", "schema.sql"),
		filepath.Join("..", "db", "schema.sql"),
		filepath.Join("..", "..", "db", "schema.sql"),
	}

	var (
		ddl     []byte
		readErr error
	)
	for _, cand := range candidates {
		ddl, readErr = os.ReadFile(cand)
		if readErr == nil {
			break
		}
	}
	require.NoError(t, readErr, "read schema file")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	_, err := pool.Exec(ctx, string(ddl))
	require.NoError(t, err, "apply schema")
}

func startPostgresOnce(t *testing.T) {
	postgresOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{
				"/var/lib/postgresql/data": "rw,size=512m",
			},
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "synchronous_commit=off",
				"-c", "max_connections=200",
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					testUser, testPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
		defer cancel()

		var err error
		postgresContainer, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		require.NoError(t, err, "start postgres container")

		t.Cleanup(func() {
			if postgresContainer == nil {
				return
			}
			termCtx, termCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer termCancel()
			_ = postgresContainer.Terminate(termCtx)
		})
	})
}
