// Package resources contiene los DTOs de request/response de books, items y users.
package resources

import (
	"strings"

	httperrors "github.com/dropDatabas3/hellocrud/internal/http/errors"
)

// fieldCheck acumula campos faltantes e inválidos para reportarlos juntos.
type fieldCheck struct {
	missing []string
	invalid []string
}

func (c *fieldCheck) require(name string, present bool) {
	if !present {
		c.missing = append(c.missing, name)
	}
}

func (c *fieldCheck) check(name string, ok bool) {
	if !ok {
		c.invalid = append(c.invalid, name)
	}
}

// err devuelve MISSING_FIELDS si falta algo; si no, INVALID_FORMAT si algo es inválido.
func (c *fieldCheck) err() *httperrors.AppError {
	if len(c.missing) > 0 {
		return httperrors.ErrMissingFields.WithDetail("missing: " + strings.Join(c.missing, ", "))
	}
	if len(c.invalid) > 0 {
		return httperrors.ErrInvalidFormat.WithDetail("invalid: " + strings.Join(c.invalid, ", "))
	}
	return nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
