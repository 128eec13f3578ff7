// Package turno exposes CRUD for appointments. Listing and creation require
// an authenticated caller (any role). Appointments carry no referential
// checks against medicos or pacientes; they are stored as supplied.
package turno

import (
	"github.com/labstack/echo/v4"

	"github.com/clinica/clinica/internal/platform/jsonstore"
	"github.com/clinica/clinica/internal/platform/resource"
)

const collection = "turnos"

func NewRepository(store *jsonstore.Store) *resource.Repository {
	return resource.New(store, collection, "fecha", "hora")
}

type Handler struct {
	*resource.Handler
}

func NewHandler(repo *resource.Repository) *Handler {
	return &Handler{resource.NewHandler(repo, "Turno")}
}

func (h *Handler) RegisterRoutes(g *echo.Group, authn echo.MiddlewareFunc) {
	g.GET("", h.List, authn)
	g.GET("/:id", h.Get)
	g.POST("", h.Create, authn)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
