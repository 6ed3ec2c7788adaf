package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	ctrl "github.com/dropDatabas3/hellocrud/internal/http/controllers/resources"
)

// crudController es la forma común de los controllers de recursos.
type crudController interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Replace(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

// RegisterResourceRoutes registra /books, /items, /users y el alias POST /register.
func RegisterResourceRoutes(r chi.Router, c *ctrl.Controllers) {
	registerCRUD(r, "/books", c.Books)
	registerCRUD(r, "/items", c.Items)
	registerCRUD(r, "/users", c.Users)

	// Alias de registro de usuarios
	r.Post("/register", c.Users.Create)
}

// registerCRUD acepta la colección con y sin barra final.
//
//	POST   /{base}/       Create
//	GET    /{base}/       List
//	GET    /{base}/{id}   Get
//	PUT    /{base}/{id}   Replace
//	DELETE /{base}/{id}   Delete
func registerCRUD(r chi.Router, base string, c crudController) {
	for _, p := range []string{base, base + "/"} {
		r.Post(p, c.Create)
		r.Get(p, c.List)
	}
	r.Get(base+"/{id}", c.Get)
	r.Put(base+"/{id}", c.Replace)
	r.Delete(base+"/{id}", c.Delete)
}
