package resources

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellocrud/internal/domain/repository"
)

func decode[T any](t *testing.T, body string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(body), &v))
	return v
}

func TestBookRequestValidate(t *testing.T) {
	full := decode[BookRequest](t, `{"id":1,"title":"Dune","author":"Herbert","published_year":1965}`)
	assert.Nil(t, full.Validate(true))

	noID := decode[BookRequest](t, `{"title":"Dune","author":"Herbert","published_year":1965}`)
	assert.Nil(t, noID.Validate(false))
	appErr := noID.Validate(true)
	require.NotNil(t, appErr)
	assert.Equal(t, "MISSING_FIELDS", appErr.Code)
	assert.Contains(t, appErr.Detail, "id")

	rec := noID.ToRecord(7)
	assert.EqualValues(t, 7, rec.ID)
	assert.Nil(t, rec.Description)
}

func TestItemRequestValidate(t *testing.T) {
	neg := decode[ItemRequest](t, `{"id":1,"name":"pen","price":-1,"quantity":2}`)
	appErr := neg.Validate(true)
	require.NotNil(t, appErr)
	assert.Equal(t, "INVALID_FORMAT", appErr.Code)
	assert.Contains(t, appErr.Detail, "price")

	missing := decode[ItemRequest](t, `{"id":1,"name":"pen","price":-1}`)
	appErr = missing.Validate(true)
	require.NotNil(t, appErr)
	assert.Equal(t, "MISSING_FIELDS", appErr.Code)

	ok := decode[ItemRequest](t, `{"id":3,"name":"pen","price":0,"quantity":0,"description":"blue"}`)
	require.Nil(t, ok.Validate(true))
	rec := ok.ToRecord(0)
	assert.EqualValues(t, 3, rec.ID)
	require.NotNil(t, rec.Description)
	assert.Equal(t, "blue", *rec.Description)
}

func TestUserRequestValidate(t *testing.T) {
	create := decode[UserRequest](t, `{"id":1,"username":"ana","email":"ana@example.com","password":"secret123"}`)
	assert.Nil(t, create.Validate(true))

	noPwd := decode[UserRequest](t, `{"id":1,"username":"ana","email":"ana@example.com"}`)
	assert.Nil(t, noPwd.Validate(false))
	appErr := noPwd.Validate(true)
	require.NotNil(t, appErr)
	assert.Equal(t, "MISSING_FIELDS", appErr.Code)

	bad := decode[UserRequest](t, `{"id":1,"username":"an","email":"nope","password":"secret123"}`)
	appErr = bad.Validate(true)
	require.NotNil(t, appErr)
	assert.Equal(t, "INVALID_FORMAT", appErr.Code)
	assert.Contains(t, appErr.Detail, "username")
	assert.Contains(t, appErr.Detail, "email")
}

func TestUserResponseHidesHash(t *testing.T) {
	resp := NewUserResponse(repository.User{ID: 1, Username: "ana", Email: "ana@example.com", HashedPassword: "$argon2id$x", IsActive: true})
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "argon2id")
	assert.NotContains(t, string(raw), "password")
	assert.JSONEq(t, `{"id":1,"username":"ana","email":"ana@example.com","is_active":true}`, string(raw))
}

func TestResponsesCopyDescription(t *testing.T) {
	d := "original"
	b := repository.Book{ID: 1, Description: &d}
	resp := NewBookResponse(b)
	d = "mutated"
	assert.Equal(t, "original", *resp.Description)

	assert.Equal(t, []ItemResponse{}, NewItemListResponse(nil))
}
