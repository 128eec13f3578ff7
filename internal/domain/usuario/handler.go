package usuario

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinica/clinica/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group, authn echo.MiddlewareFunc) {
	g.POST("/registro", h.Register)
	g.POST("/login", h.Login)
	g.GET("/perfil", h.Perfil, authn)
}

type registerRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Rol      string `json:"rol"`
}

func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "El cuerpo de la solicitud debe ser JSON válido.")
	}
	if req.Nombre == "" || req.Email == "" || req.Password == "" || req.Rol == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Todos los campos son obligatorios.")
	}

	err := h.svc.Register(c.Request().Context(), req.Nombre, req.Email, req.Password, req.Rol)
	switch {
	case errors.Is(err, ErrInvalidRole):
		return echo.NewHTTPError(http.StatusBadRequest, "Rol no válido.")
	case errors.Is(err, ErrUserExists):
		return echo.NewHTTPError(http.StatusBadRequest, "El usuario ya existe.")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "Error al registrar el usuario.")
	}

	return c.JSON(http.StatusCreated, map[string]string{"mensaje": "Usuario registrado correctamente."})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "El cuerpo de la solicitud debe ser JSON válido.")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email y contraseña son requeridos.")
	}

	token, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Credenciales inválidas.")
	}

	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

// Perfil returns the verified claims of the calling user.
func (h *Handler) Perfil(c echo.Context) error {
	claims := auth.ClaimsFromContext(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]interface{}{
		"mensaje": "Perfil de usuario",
		"usuario": claims,
	})
}
