package resource

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clinica/clinica/internal/platform/jsonstore"
)

// Handler exposes a repository's CRUD operations as echo handlers. Domain
// packages wrap it with their route registration and auth requirements.
type Handler struct {
	repo  *Repository
	label string // display name for error messages, e.g. "Médico"
}

func NewHandler(repo *Repository, label string) *Handler {
	return &Handler{repo: repo, label: label}
}

func (h *Handler) List(c echo.Context) error {
	records, err := h.repo.List(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, records)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	rec, err := h.repo.Get(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) Create(c echo.Context) error {
	fields, err := bindRecord(c)
	if err != nil {
		return err
	}
	rec, err := h.repo.Create(c.Request().Context(), fields)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	patch, err := bindRecord(c)
	if err != nil {
		return err
	}
	rec, err := h.repo.Update(c.Request().Context(), id, patch)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if _, err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return h.httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) httpError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrConflict):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, h.label+" no encontrado.")
	default:
		// Storage failures are logged by the request logger; the body stays generic.
		return echo.NewHTTPError(http.StatusInternalServerError, "Hubo un error al procesar la solicitud.")
	}
}

func parseID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "El ID debe ser un número válido.")
	}
	return id, nil
}

func bindRecord(c echo.Context) (jsonstore.Record, error) {
	fields := jsonstore.Record{}
	if err := c.Bind(&fields); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "El cuerpo de la solicitud debe ser JSON válido.")
	}
	return fields, nil
}
