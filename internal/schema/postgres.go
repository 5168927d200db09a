package schema

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sync"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Postgres schema identifiers we generate are slugs plus a timestamp suffix;
// reject anything else before it reaches a DDL statement.
var schemaNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ValidSchemaName reports whether name is a safe postgres schema identifier.
func ValidSchemaName(name string) bool {
	return schemaNamePattern.MatchString(name)
}

// PostgresEngine implements Engine using search_path switching. search_path
// is per-connection session state, so the engine pins one connection out of
// the pool at construction and binds a gorm handle to it: issued through the
// pool, SET search_path would land on an arbitrary connection while queries
// and transactions check out different ones, silently running every
// schema-scoped statement against the connection-default path. All
// repositories must be built on DB() so switch, reads, writes, and
// transactions share the pinned connection.
type PostgresEngine struct {
	db           *gorm.DB
	conn         *sql.Conn
	publicSchema string

	mu      sync.Mutex
	current string
}

func NewPostgresEngine(db *gorm.DB, publicSchema string) (*PostgresEngine, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}
	conn, err := sqlDB.Conn(context.Background())
	if err != nil {
		return nil, fmt.Errorf("pin schema connection: %w", err)
	}
	bound, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: conn}), &gorm.Config{
		Logger: db.Logger,
	})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("bind gorm to pinned connection: %w", err)
	}

	e := &PostgresEngine{
		db:           bound,
		conn:         conn,
		publicSchema: publicSchema,
		current:      publicSchema,
	}
	if err := e.UseSchema(publicSchema); err != nil {
		conn.Close()
		return nil, err
	}
	return e, nil
}

// DB returns the gorm handle bound to the pinned connection. Repositories
// run on this handle; anything opened elsewhere would not see the active
// schema.
func (e *PostgresEngine) DB() *gorm.DB {
	return e.db
}

// Close releases the pinned connection back to the pool.
func (e *PostgresEngine) Close() error {
	return e.conn.Close()
}

func (e *PostgresEngine) CurrentSchema() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// UseSchema points search_path at the named schema. The public schema stays
// on the path as a fallback so the shared catalog tables (tenants, domains,
// user_profiles) remain visible from inside any tenant schema; a tenant's
// own user_tenant_permissions table shadows the public one.
func (e *PostgresEngine) UseSchema(name string) error {
	if !ValidSchemaName(name) {
		return fmt.Errorf("invalid schema name %q", name)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var stmt string
	if name == e.publicSchema {
		stmt = fmt.Sprintf(`SET search_path TO %q`, name)
	} else {
		stmt = fmt.Sprintf(`SET search_path TO %q, %q`, name, e.publicSchema)
	}
	if err := e.db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("set search_path to %q: %w", name, err)
	}
	e.current = name
	return nil
}

func (e *PostgresEngine) CreateSchema(ctx context.Context, name string) error {
	if !ValidSchemaName(name) {
		return fmt.Errorf("invalid schema name %q", name)
	}
	if err := e.db.WithContext(ctx).Exec(fmt.Sprintf(`CREATE SCHEMA %q`, name)).Error; err != nil {
		return fmt.Errorf("create schema %q: %w", name, err)
	}
	return nil
}

func (e *PostgresEngine) DropSchema(ctx context.Context, name string) error {
	if !ValidSchemaName(name) {
		return fmt.Errorf("invalid schema name %q", name)
	}
	if name == e.publicSchema {
		return fmt.Errorf("refusing to drop the public schema %q", name)
	}
	if err := e.db.WithContext(ctx).Exec(fmt.Sprintf(`DROP SCHEMA IF EXISTS %q CASCADE`, name)).Error; err != nil {
		return fmt.Errorf("drop schema %q: %w", name, err)
	}
	return nil
}
