// Package sqldb contiene las definiciones de tabla compartidas por los
// adapters SQL y un repositorio genérico sobre database/sql.
package sqldb

import (
	"fmt"
	"strings"

	"github.com/dropDatabas3/hellocrud/internal/domain/repository"
)

// Scanner abstrae *sql.Row, *sql.Rows y pgx.Row.
type Scanner interface {
	Scan(dest ...any) error
}

// Table describe cómo mapear un registro a una tabla.
// Columns[0] es siempre "id"; el orden de inserción lo da la columna seq.
type Table[T any] struct {
	Name    string
	Columns []string
	Args    func(T) []any
	Scan    func(Scanner) (T, error)
}

// Placeholder genera el marcador del n-ésimo parámetro (1-based).
type Placeholder func(n int) string

// Question es el estilo de MySQL y SQLite.
func Question(int) string { return "?" }

// Dollar es el estilo de PostgreSQL.
func Dollar(n int) string { return fmt.Sprintf("$%d", n) }

func (t Table[T]) cols() string { return strings.Join(t.Columns, ", ") }

func (t Table[T]) InsertSQL(ph Placeholder) string {
	marks := make([]string, len(t.Columns))
	for i := range t.Columns {
		marks[i] = ph(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.Name, t.cols(), strings.Join(marks, ", "))
}

func (t Table[T]) SelectSQL(ph Placeholder) string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE id = %s", t.cols(), t.Name, ph(1))
}

// ListSQL recibe (limit, offset) como parámetros.
func (t Table[T]) ListSQL(ph Placeholder) string {
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY seq LIMIT %s OFFSET %s", t.cols(), t.Name, ph(1), ph(2))
}

// UpdateSQL recibe los valores de Columns seguidos del id a reemplazar.
func (t Table[T]) UpdateSQL(ph Placeholder) string {
	sets := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		sets[i] = fmt.Sprintf("%s = %s", c, ph(i+1))
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = %s", t.Name, strings.Join(sets, ", "), ph(len(t.Columns)+1))
}

func (t Table[T]) DeleteSQL(ph Placeholder) string {
	return fmt.Sprintf("DELETE FROM %s WHERE id = %s", t.Name, ph(1))
}

func (t Table[T]) CountSQL() string {
	return "SELECT COUNT(*) FROM " + t.Name
}

// ─── Tablas ───

var BookTable = Table[repository.Book]{
	Name:    "book",
	Columns: []string{"id", "title", "author", "published_year", "description"},
	Args: func(b repository.Book) []any {
		return []any{b.ID, b.Title, b.Author, b.PublishedYear, b.Description}
	},
	Scan: func(s Scanner) (repository.Book, error) {
		var b repository.Book
		err := s.Scan(&b.ID, &b.Title, &b.Author, &b.PublishedYear, &b.Description)
		return b, err
	},
}

var ItemTable = Table[repository.Item]{
	Name:    "item",
	Columns: []string{"id", "name", "price", "quantity", "description"},
	Args: func(i repository.Item) []any {
		return []any{i.ID, i.Name, i.Price, i.Quantity, i.Description}
	},
	Scan: func(s Scanner) (repository.Item, error) {
		var i repository.Item
		err := s.Scan(&i.ID, &i.Name, &i.Price, &i.Quantity, &i.Description)
		return i, err
	},
}

var UserTable = Table[repository.User]{
	Name:    "app_user",
	Columns: []string{"id", "username", "email", "hashed_password", "is_active"},
	Args: func(u repository.User) []any {
		return []any{u.ID, u.Username, u.Email, u.HashedPassword, u.IsActive}
	},
	Scan: func(s Scanner) (repository.User, error) {
		var u repository.User
		err := s.Scan(&u.ID, &u.Username, &u.Email, &u.HashedPassword, &u.IsActive)
		return u, err
	},
}

// PageArgs traduce una Page a (limit, offset). Limit <= 0 significa sin límite.
func PageArgs(p repository.Page) (limit, offset int64) {
	limit = int64(p.Limit)
	if limit <= 0 {
		limit = 1<<63 - 1
	}
	offset = int64(p.Offset)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
