// Package helpers contiene utilidades HTTP compartidas por los controllers.
package helpers

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	httperrors "github.com/dropDatabas3/hellocrud/internal/http/errors"
)

// DefaultMaxBodyBytes limita el body cuando el caller no configura otro valor.
const DefaultMaxBodyBytes int64 = 1 << 20

// ReadJSON decodifica JSON de forma tolerante (no falla por campos desconocidos).
// Valida Content-Type y limita el body a maxBytes (<= 0 usa DefaultMaxBodyBytes).
// Un body vacío o con datos después del primer valor se trata como JSON inválido.
func ReadJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, v any) *httperrors.AppError {
	ct := strings.ToLower(r.Header.Get("Content-Type"))
	if ct != "" && !strings.Contains(ct, "application/json") {
		return httperrors.ErrUnsupportedMediaType
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		var typeErr *json.UnmarshalTypeError
		switch {
		case stderrors.As(err, &maxErr):
			return httperrors.ErrBodyTooLarge.WithCause(err)
		case stderrors.As(err, &typeErr):
			return httperrors.ErrInvalidFormat.
				WithDetail(fmt.Sprintf("field %q must be %s", typeErr.Field, typeErr.Type.String())).
				WithCause(err)
		case stderrors.Is(err, io.EOF):
			return httperrors.ErrInvalidJSON.WithDetail("empty body")
		default:
			return httperrors.ErrInvalidJSON.WithCause(err)
		}
	}

	// un único valor JSON por body
	var extra json.RawMessage
	if err := dec.Decode(&extra); !stderrors.Is(err, io.EOF) {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			return httperrors.ErrBodyTooLarge.WithCause(err)
		}
		return httperrors.ErrInvalidJSON.WithDetail("unexpected data after JSON body")
	}
	return nil
}

// WriteJSON escribe una respuesta JSON estándar.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteNoContent escribe 204 sin body.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
