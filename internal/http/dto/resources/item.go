package resources

import (
	"math"

	"github.com/dropDatabas3/hellocrud/internal/domain/repository"
	httperrors "github.com/dropDatabas3/hellocrud/internal/http/errors"
)

// ItemRequest es el body de POST /items/ y PUT /items/{id}.
type ItemRequest struct {
	ID          *int64   `json:"id"`
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	Description *string  `json:"description"`
}

// Validate: price y quantity no pueden ser negativos.
func (r ItemRequest) Validate(requireID bool) *httperrors.AppError {
	var c fieldCheck
	if requireID {
		c.require("id", r.ID != nil)
	}
	c.require("name", r.Name != nil)
	c.require("price", r.Price != nil)
	c.require("quantity", r.Quantity != nil)
	if r.Price != nil {
		c.check("price", *r.Price >= 0 && !math.IsInf(*r.Price, 0))
	}
	if r.Quantity != nil {
		c.check("quantity", *r.Quantity >= 0)
	}
	return c.err()
}

func (r ItemRequest) ToRecord(fallbackID int64) repository.Item {
	it := repository.Item{ID: fallbackID, Description: cloneString(r.Description)}
	if r.ID != nil {
		it.ID = *r.ID
	}
	if r.Name != nil {
		it.Name = *r.Name
	}
	if r.Price != nil {
		it.Price = *r.Price
	}
	if r.Quantity != nil {
		it.Quantity = *r.Quantity
	}
	return it
}

type ItemResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Description *string `json:"description"`
}

func NewItemResponse(it repository.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Price:       it.Price,
		Quantity:    it.Quantity,
		Description: cloneString(it.Description),
	}
}

func NewItemListResponse(items []repository.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewItemResponse(it))
	}
	return out
}
