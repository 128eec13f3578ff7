// Package paciente exposes CRUD for the clinic's patients. All routes are
// open, matching the deployed API surface.
package paciente

import (
	"github.com/labstack/echo/v4"

	"github.com/clinica/clinica/internal/platform/jsonstore"
	"github.com/clinica/clinica/internal/platform/resource"
)

const collection = "pacientes"

func NewRepository(store *jsonstore.Store) *resource.Repository {
	return resource.New(store, collection, "nombre", "edad")
}

type Handler struct {
	*resource.Handler
}

func NewHandler(repo *resource.Repository) *Handler {
	return &Handler{resource.NewHandler(repo, "Paciente")}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
