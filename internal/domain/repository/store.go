package repository

import "context"

// Record es la restricción que cumple todo registro almacenable.
// Key devuelve el id único; Clone devuelve una copia profunda para que
// el store nunca comparta memoria con el caller.
type Record[T any] interface {
	Key() int64
	Clone() T
}

// Page define offset/limit para listados. Limit <= 0 significa "todos".
type Page struct {
	Offset int
	Limit  int
}

// ResourceStore es una colección ordenada de registros únicos por id.
type ResourceStore[T any] interface {
	// Insert agrega el registro al final.
	// Retorna ErrDuplicateID si ya existe un registro con el mismo id.
	Insert(ctx context.Context, rec T) (T, error)

	// List retorna un snapshot en orden de inserción.
	List(ctx context.Context, page Page) ([]T, error)

	// Get busca un registro por id.
	// Retorna ErrNotFound si no existe.
	Get(ctx context.Context, id int64) (T, error)

	// Replace reemplaza el registro completo manteniendo su posición.
	// Retorna ErrNotFound si no existe.
	Replace(ctx context.Context, id int64, rec T) (T, error)

	// Delete elimina un registro por id.
	// Retorna ErrNotFound si no existe.
	Delete(ctx context.Context, id int64) error

	// Count retorna la cantidad de registros.
	Count(ctx context.Context) (int, error)
}

// BookRepository, ItemRepository y UserRepository instancian el store por recurso.
type (
	BookRepository = ResourceStore[Book]
	ItemRepository = ResourceStore[Item]
	UserRepository = ResourceStore[User]
)

// Window aplica la página sobre un slice ya ordenado.
// Devuelve el sub-slice correspondiente (sin copiar).
func (p Page) Window(n int) (start, end int) {
	start = p.Offset
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	end = n
	if p.Limit > 0 && p.Limit < n-start {
		end = start + p.Limit
	}
	return start, end
}
