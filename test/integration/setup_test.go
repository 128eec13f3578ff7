// Package integration exercises the assembled HTTP surface end to end:
// echo routing, auth middleware, repositories and the JSON file store,
// wired exactly as in cmd/clinica-server.
package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinica/clinica/internal/domain/medico"
	"github.com/clinica/clinica/internal/domain/paciente"
	"github.com/clinica/clinica/internal/domain/turno"
	"github.com/clinica/clinica/internal/domain/usuario"
	"github.com/clinica/clinica/internal/platform/auth"
	"github.com/clinica/clinica/internal/platform/jsonstore"
	"github.com/clinica/clinica/internal/platform/middleware"
)

const testBcryptCost = 4

type testServer struct {
	e      *echo.Echo
	store  *jsonstore.Store
	tokens *auth.TokenService
}

// newTestServer assembles the full application against a temp data
// directory, mirroring the wiring in cmd/clinica-server.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := zerolog.Nop()
	store, err := jsonstore.New(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("jsonstore.New: %v", err)
	}

	tokens := auth.NewTokenService("secreto-de-prueba", 2*time.Hour)
	authn := auth.Middleware(tokens)
	adminOnly := auth.RequireAdmin()

	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler(logger)
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())

	api := e.Group("/api")

	usuarioSvc := usuario.NewService(usuario.NewRepository(store), tokens, testBcryptCost)
	usuario.NewHandler(usuarioSvc).RegisterRoutes(api.Group("/auth"), authn)

	medico.NewHandler(medico.NewRepository(store)).RegisterRoutes(api.Group("/medicos"), authn, adminOnly)
	paciente.NewHandler(paciente.NewRepository(store)).RegisterRoutes(api.Group("/pacientes"))
	turno.NewHandler(turno.NewRepository(store)).RegisterRoutes(api.Group("/turnos"), authn)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return &testServer{e: e, store: store, tokens: tokens}
}

func (s *testServer) request(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

// requestRawAuth sends the Authorization header verbatim, without the Bearer
// prefix the regular helper adds.
func (s *testServer) requestRawAuth(method, path, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", header)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

// register creates a user and returns nothing; login returns the token.
func (s *testServer) register(t *testing.T, nombre, email, password, rol string) {
	t.Helper()
	body := `{"nombre":"` + nombre + `","email":"` + email + `","password":"` + password + `","rol":"` + rol + `"}`
	rec := s.request(http.MethodPost, "/api/auth/registro", "", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("registro failed: %d %s", rec.Code, rec.Body.String())
	}
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := s.request(http.MethodPost, "/api/auth/login", "", `{"email":"`+email+`","password":"`+password+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	return resp["token"]
}

func decodeRecord(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not a JSON object: %v (%s)", err, rec.Body.String())
	}
	return out
}
