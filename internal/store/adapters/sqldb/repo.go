package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dropDatabas3/hellocrud/internal/domain/repository"
)

// Repo implementa repository.ResourceStore sobre database/sql.
// Cada operación ejecuta exactamente una sentencia del pool.
type Repo[T repository.Record[T]] struct {
	db          *sql.DB
	table       Table[T]
	driver      string
	isDuplicate func(error) bool
}

// NewRepo crea un repositorio para la tabla indicada.
// isDuplicate reconoce violaciones de clave única del driver.
func NewRepo[T repository.Record[T]](db *sql.DB, driver string, table Table[T], isDuplicate func(error) bool) *Repo[T] {
	return &Repo[T]{db: db, table: table, driver: driver, isDuplicate: isDuplicate}
}

func (r *Repo[T]) Insert(ctx context.Context, rec T) (T, error) {
	var zero T
	_, err := r.db.ExecContext(ctx, r.table.InsertSQL(Question), r.table.Args(rec)...)
	if err != nil {
		if r.isDuplicate(err) {
			return zero, fmt.Errorf("%s: insert %s %d: %w", r.driver, r.table.Name, rec.Key(), repository.ErrDuplicateID)
		}
		return zero, fmt.Errorf("%s: insert %s: %w", r.driver, r.table.Name, err)
	}
	return rec.Clone(), nil
}

func (r *Repo[T]) List(ctx context.Context, page repository.Page) ([]T, error) {
	limit, offset := PageArgs(page)
	rows, err := r.db.QueryContext(ctx, r.table.ListSQL(Question), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: list %s: %w", r.driver, r.table.Name, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		rec, err := r.table.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan %s: %w", r.driver, r.table.Name, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: list %s: %w", r.driver, r.table.Name, err)
	}
	return out, nil
}

func (r *Repo[T]) Get(ctx context.Context, id int64) (T, error) {
	rec, err := r.table.Scan(r.db.QueryRowContext(ctx, r.table.SelectSQL(Question), id))
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, fmt.Errorf("%s: get %s %d: %w", r.driver, r.table.Name, id, repository.ErrNotFound)
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%s: get %s: %w", r.driver, r.table.Name, err)
	}
	return rec, nil
}

func (r *Repo[T]) Replace(ctx context.Context, id int64, rec T) (T, error) {
	var zero T
	args := append(r.table.Args(rec), id)
	res, err := r.db.ExecContext(ctx, r.table.UpdateSQL(Question), args...)
	if err != nil {
		if r.isDuplicate(err) {
			return zero, fmt.Errorf("%s: replace %s %d: %w", r.driver, r.table.Name, rec.Key(), repository.ErrDuplicateID)
		}
		return zero, fmt.Errorf("%s: replace %s: %w", r.driver, r.table.Name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return zero, fmt.Errorf("%s: replace %s: %w", r.driver, r.table.Name, err)
	}
	if n == 0 {
		return zero, fmt.Errorf("%s: replace %s %d: %w", r.driver, r.table.Name, id, repository.ErrNotFound)
	}
	return rec.Clone(), nil
}

func (r *Repo[T]) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.table.DeleteSQL(Question), id)
	if err != nil {
		return fmt.Errorf("%s: delete %s: %w", r.driver, r.table.Name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: delete %s: %w", r.driver, r.table.Name, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: delete %s %d: %w", r.driver, r.table.Name, id, repository.ErrNotFound)
	}
	return nil
}

func (r *Repo[T]) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, r.table.CountSQL()).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: count %s: %w", r.driver, r.table.Name, err)
	}
	return n, nil
}
