// Package medico exposes CRUD for the clinic's doctors. Listing requires an
// authenticated caller and creation is restricted to administrators; the
// remaining routes are open, matching the deployed API surface.
package medico

import (
	"github.com/labstack/echo/v4"

	"github.com/clinica/clinica/internal/platform/jsonstore"
	"github.com/clinica/clinica/internal/platform/resource"
)

const collection = "medicos"

// NewRepository returns the medicos repository. Name and specialty are
// mandatory on create; all other fields are free-form.
func NewRepository(store *jsonstore.Store) *resource.Repository {
	return resource.New(store, collection, "nombre", "especialidad")
}

type Handler struct {
	*resource.Handler
}

func NewHandler(repo *resource.Repository) *Handler {
	return &Handler{resource.NewHandler(repo, "Médico")}
}

func (h *Handler) RegisterRoutes(g *echo.Group, authn, adminOnly echo.MiddlewareFunc) {
	g.GET("", h.List, authn)
	g.GET("/:id", h.Get)
	g.POST("", h.Create, authn, adminOnly)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
