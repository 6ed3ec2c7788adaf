package helpers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellocrud/internal/domain/repository"
)

type payload struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name"`
}

func jsonRequest(body, ct string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if ct != "" {
		req.Header.Set("Content-Type", ct)
	}
	return req
}

func TestReadJSON(t *testing.T) {
	var p payload
	appErr := ReadJSON(httptest.NewRecorder(), jsonRequest(`{"id":1,"name":"x","extra":true}`, "application/json"), 0, &p)
	require.Nil(t, appErr)
	require.NotNil(t, p.ID)
	assert.EqualValues(t, 1, *p.ID)

	appErr = ReadJSON(httptest.NewRecorder(), jsonRequest("{\"id\":2}\n\t ", "application/json"), 0, &p)
	require.Nil(t, appErr)
	assert.EqualValues(t, 2, *p.ID)

	cases := []struct {
		name string
		body string
		ct   string
		max  int64
		code string
	}{
		{"malformed", `{"id":`, "application/json", 0, "INVALID_JSON"},
		{"empty", ``, "application/json", 0, "INVALID_JSON"},
		{"trailing value", `{"id":1} {"garbage"`, "application/json", 0, "INVALID_JSON"},
		{"two objects", `{"id":1}{"id":2}`, "application/json", 0, "INVALID_JSON"},
		{"wrong type", `{"id":"abc"}`, "application/json", 0, "INVALID_FORMAT"},
		{"media type", `{"id":1}`, "text/plain", 0, "UNSUPPORTED_MEDIA_TYPE"},
		{"too large", `{"name":"` + strings.Repeat("a", 64) + `"}`, "application/json", 16, "BODY_TOO_LARGE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p payload
			appErr := ReadJSON(httptest.NewRecorder(), jsonRequest(tc.body, tc.ct), tc.max, &p)
			require.NotNil(t, appErr)
			assert.Equal(t, tc.code, appErr.Code)
		})
	}
}

func TestParseID(t *testing.T) {
	id, appErr := ParseID("42")
	require.Nil(t, appErr)
	assert.EqualValues(t, 42, id)

	_, appErr = ParseID("abc")
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.Equal(t, "INVALID_PARAMETER", appErr.Code)
}

func TestParsePage(t *testing.T) {
	get := func(q string) (repository.Page, string) {
		page, appErr := ParsePage(httptest.NewRequest(http.MethodGet, "/books/"+q, nil), 200)
		if appErr != nil {
			return page, appErr.Code
		}
		return page, ""
	}

	page, code := get("")
	assert.Empty(t, code)
	assert.Equal(t, repository.Page{}, page)

	page, code = get("?skip=2&limit=5")
	assert.Empty(t, code)
	assert.Equal(t, repository.Page{Offset: 2, Limit: 5}, page)

	page, code = get("?limit=1000")
	assert.Empty(t, code)
	assert.Equal(t, 200, page.Limit)

	_, code = get("?skip=-1")
	assert.Equal(t, "INVALID_PARAMETER", code)
	_, code = get("?limit=x")
	assert.Equal(t, "INVALID_PARAMETER", code)
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]int{"id": 1})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":1}`, rec.Body.String())
}
