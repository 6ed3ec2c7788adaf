package repository

// Item representa un artículo del inventario.
type Item struct {
	ID          int64
	Name        string
	Price       float64
	Quantity    int
	Description *string
}

func (i Item) Key() int64 { return i.ID }

func (i Item) Clone() Item {
	out := i
	if i.Description != nil {
		d := *i.Description
		out.Description = &d
	}
	return out
}
