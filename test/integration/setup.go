package integration

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Create connection pool
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	if _, err := pool.Exec(ctx, Schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// Schema is the full database schema, shared with the repository tests.
const Schema = `
	CREATE TABLE IF NOT EXISTS inventory_items (
		id UUID PRIMARY KEY,
		material_name VARCHAR(100) NOT NULL,
		material_type VARCHAR(100),
		color VARCHAR(100) NOT NULL,
		color_code VARCHAR(20),
		pattern VARCHAR(100),
		total_quantity DECIMAL(10, 2) NOT NULL CHECK (total_quantity >= 0),
		unit_price DECIMAL(10, 2) NOT NULL CHECK (unit_price >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_inventory_material_color
		ON inventory_items (LOWER(TRIM(material_name)), LOWER(TRIM(color)));

	CREATE TABLE IF NOT EXISTS promo_codes (
		id UUID PRIMARY KEY,
		code VARCHAR(50) NOT NULL UNIQUE,
		discount_percentage INTEGER NOT NULL CHECK (discount_percentage BETWEEN 1 AND 100),
		valid_from TIMESTAMPTZ NOT NULL,
		valid_to TIMESTAMPTZ NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		usage_limit INTEGER CHECK (usage_limit IS NULL OR usage_limit >= 1),
		used_count INTEGER NOT NULL DEFAULT 0 CHECK (used_count >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		user_id VARCHAR(100) NOT NULL,
		gender VARCHAR(20) NOT NULL,
		dress_type VARCHAR(50) NOT NULL,
		material VARCHAR(100) NOT NULL,
		color VARCHAR(100) NOT NULL,
		quantity_metres DECIMAL(10, 2) NOT NULL CHECK (quantity_metres > 0),
		measurements JSONB NOT NULL,
		extras TEXT[],
		inventory_item_id UUID NOT NULL REFERENCES inventory_items(id),
		promo_code VARCHAR(50),
		total_amount DECIMAL(10, 2) NOT NULL,
		status VARCHAR(30) NOT NULL,
		delivery_address TEXT NOT NULL,
		expected_delivery_date TIMESTAMPTZ,
		cancel_reason TEXT,
		feedback_text TEXT,
		feedback_rating INTEGER CHECK (feedback_rating IS NULL OR feedback_rating BETWEEN 1 AND 5),
		delivery_otp VARCHAR(6),
		otp_verified BOOLEAN NOT NULL DEFAULT FALSE,
		pending_at TIMESTAMPTZ,
		order_accepted_at TIMESTAMPTZ,
		shipped_at TIMESTAMPTZ,
		out_for_delivery_at TIMESTAMPTZ,
		delivered_at TIMESTAMPTZ,
		cancelled_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id);
	CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);

	CREATE TABLE IF NOT EXISTS measurements (
		id UUID PRIMARY KEY,
		user_id VARCHAR(100) NOT NULL,
		gender VARCHAR(20) NOT NULL,
		dress_type VARCHAR(50) NOT NULL,
		data JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, gender, dress_type)
	);

	CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY,
		user_id VARCHAR(100) NOT NULL,
		title VARCHAR(255) NOT NULL,
		message TEXT NOT NULL,
		order_id UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id);
`
