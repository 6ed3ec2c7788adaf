package helpers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dropDatabas3/hellocrud/internal/domain/repository"
	httperrors "github.com/dropDatabas3/hellocrud/internal/http/errors"
)

// DefaultMaxLimit es el tope de "limit" cuando no se configura otro.
const DefaultMaxLimit = 200

// ParseID convierte el segmento {id} del path en int64.
func ParseID(raw string) (int64, *httperrors.AppError) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, httperrors.ErrInvalidParameter.
			WithDetail(fmt.Sprintf("id %q must be an integer", raw)).
			WithCause(err)
	}
	return id, nil
}

// ParsePage lee ?skip y ?limit. Ambos son opcionales y deben ser >= 0.
// limit se recorta a maxLimit; sin limit (o limit=0) se devuelve la colección completa.
func ParsePage(r *http.Request, maxLimit int) (repository.Page, *httperrors.AppError) {
	if maxLimit <= 0 {
		maxLimit = DefaultMaxLimit
	}
	q := r.URL.Query()

	var page repository.Page
	if v := q.Get("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return page, httperrors.ErrInvalidParameter.WithDetail("skip must be a non-negative integer")
		}
		page.Offset = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return page, httperrors.ErrInvalidParameter.WithDetail("limit must be a non-negative integer")
		}
		if n > maxLimit {
			n = maxLimit
		}
		page.Limit = n
	}
	return page, nil
}
