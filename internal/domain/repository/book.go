package repository

// Book representa un libro del catálogo.
type Book struct {
	ID            int64
	Title         string
	Author        string
	PublishedYear int
	Description   *string
}

func (b Book) Key() int64 { return b.ID }

func (b Book) Clone() Book {
	out := b
	if b.Description != nil {
		d := *b.Description
		out.Description = &d
	}
	return out
}
