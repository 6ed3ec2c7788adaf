// Package pg implementa el adapter PostgreSQL para el store DAL.
// Usa pgxpool directamente; las migraciones corren sobre pgx/stdlib.
package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/dropDatabas3/hellocrud/internal/domain/repository"
	store "github.com/dropDatabas3/hellocrud/internal/store"
	"github.com/dropDatabas3/hellocrud/internal/store/adapters/sqldb"
	migrations "github.com/dropDatabas3/hellocrud/migrations/postgres"
)

// uniqueViolation es el SQLSTATE de violación de clave única.
const uniqueViolation = "23505"

func init() {
	store.RegisterAdapter(&postgresAdapter{})
}

// postgresAdapter implementa store.Adapter para PostgreSQL.
type postgresAdapter struct{}

func (a *postgresAdapter) Name() string { return "postgres" }

func (a *postgresAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (store.AdapterConnection, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("pg: DSN is required")
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pg: parse DSN: %w", err)
	}

	// Configurar pool
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	} else {
		poolCfg.MaxConns = 10
	}
	if cfg.MaxIdleConns > 0 {
		poolCfg.MinConns = int32(cfg.MaxIdleConns)
	} else {
		poolCfg.MinConns = 2
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pg: create pool: %w", err)
	}

	// Verificar conexión
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: ping failed: %w", err)
	}

	return &pgConnection{pool: pool}, nil
}

// pgConnection representa una conexión activa a PostgreSQL.
type pgConnection struct {
	pool *pgxpool.Pool
}

func (c *pgConnection) Name() string { return "postgres" }

func (c *pgConnection) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

func (c *pgConnection) Close() error {
	c.pool.Close()
	return nil
}

// ─── Repositorios ───

func (c *pgConnection) Books() repository.BookRepository { return newRepo(c.pool, sqldb.BookTable) }
func (c *pgConnection) Items() repository.ItemRepository { return newRepo(c.pool, sqldb.ItemTable) }
func (c *pgConnection) Users() repository.UserRepository { return newRepo(c.pool, sqldb.UserTable) }

// Migrate implementa store.MigratableConnection.
func (c *pgConnection) Migrate(ctx context.Context) (*store.MigrationResult, error) {
	db := stdlib.OpenDBFromPool(c.pool)
	defer db.Close()
	return store.NewMigrator(migrations.FS, migrations.Dir, "postgres").Run(ctx, db)
}

// ─── Repo genérico ───

type repo[T repository.Record[T]] struct {
	pool  *pgxpool.Pool
	table sqldb.Table[T]
}

func newRepo[T repository.Record[T]](pool *pgxpool.Pool, table sqldb.Table[T]) *repo[T] {
	return &repo[T]{pool: pool, table: table}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (r *repo[T]) Insert(ctx context.Context, rec T) (T, error) {
	var zero T
	_, err := r.pool.Exec(ctx, r.table.InsertSQL(sqldb.Dollar), r.table.Args(rec)...)
	if err != nil {
		if isUniqueViolation(err) {
			return zero, fmt.Errorf("pg: insert %s %d: %w", r.table.Name, rec.Key(), repository.ErrDuplicateID)
		}
		return zero, fmt.Errorf("pg: insert %s: %w", r.table.Name, err)
	}
	return rec.Clone(), nil
}

func (r *repo[T]) List(ctx context.Context, page repository.Page) ([]T, error) {
	limit, offset := sqldb.PageArgs(page)
	rows, err := r.pool.Query(ctx, r.table.ListSQL(sqldb.Dollar), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("pg: list %s: %w", r.table.Name, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		rec, err := r.table.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("pg: scan %s: %w", r.table.Name, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pg: list %s: %w", r.table.Name, err)
	}
	return out, nil
}

func (r *repo[T]) Get(ctx context.Context, id int64) (T, error) {
	var zero T
	rec, err := r.table.Scan(r.pool.QueryRow(ctx, r.table.SelectSQL(sqldb.Dollar), id))
	if err == pgx.ErrNoRows {
		return zero, fmt.Errorf("pg: get %s %d: %w", r.table.Name, id, repository.ErrNotFound)
	}
	if err != nil {
		return zero, fmt.Errorf("pg: get %s: %w", r.table.Name, err)
	}
	return rec, nil
}

func (r *repo[T]) Replace(ctx context.Context, id int64, rec T) (T, error) {
	var zero T
	args := append(r.table.Args(rec), id)
	tag, err := r.pool.Exec(ctx, r.table.UpdateSQL(sqldb.Dollar), args...)
	if err != nil {
		if isUniqueViolation(err) {
			return zero, fmt.Errorf("pg: replace %s %d: %w", r.table.Name, rec.Key(), repository.ErrDuplicateID)
		}
		return zero, fmt.Errorf("pg: replace %s: %w", r.table.Name, err)
	}
	if tag.RowsAffected() == 0 {
		return zero, fmt.Errorf("pg: replace %s %d: %w", r.table.Name, id, repository.ErrNotFound)
	}
	return rec.Clone(), nil
}

func (r *repo[T]) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, r.table.DeleteSQL(sqldb.Dollar), id)
	if err != nil {
		return fmt.Errorf("pg: delete %s: %w", r.table.Name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pg: delete %s %d: %w", r.table.Name, id, repository.ErrNotFound)
	}
	return nil
}

func (r *repo[T]) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, r.table.CountSQL()).Scan(&n); err != nil {
		return 0, fmt.Errorf("pg: count %s: %w", r.table.Name, err)
	}
	return n, nil
}
