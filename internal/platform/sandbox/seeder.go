// Package sandbox generates demo data for development environments: sample
// medicos, pacientes and turnos plus an admin credential, written through the
// regular repositories so the documents match production shape exactly.
package sandbox

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/clinica/clinica/internal/domain/medico"
	"github.com/clinica/clinica/internal/domain/paciente"
	"github.com/clinica/clinica/internal/domain/turno"
	"github.com/clinica/clinica/internal/domain/usuario"
	"github.com/clinica/clinica/internal/platform/auth"
	"github.com/clinica/clinica/internal/platform/jsonstore"
)

// SeedConfig controls the volume of generated demo data.
type SeedConfig struct {
	Medicos       int
	Pacientes     int
	Turnos        int
	AdminEmail    string
	AdminPassword string
	Seed          int64
}

// DefaultSeedConfig returns a small but representative data set.
func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		Medicos:    5,
		Pacientes:  12,
		Turnos:     20,
		AdminEmail: "admin@clinica.local",
		Seed:       42,
	}
}

var (
	nombres = []string{
		"Ana García", "Luis Fernández", "María López", "Carlos Rodríguez",
		"Lucía Martínez", "Jorge Pérez", "Sofía Gómez", "Diego Sánchez",
		"Valentina Díaz", "Martín Romero", "Camila Torres", "Pablo Álvarez",
	}
	especialidades = []string{
		"Cardiología", "Pediatría", "Dermatología", "Traumatología",
		"Clínica Médica", "Neurología",
	}
	horas = []string{"09:00", "09:30", "10:00", "10:30", "11:00", "14:00", "14:30", "15:00"}
)

// Seed populates the store with demo data. Existing records are kept; new
// ones are appended with fresh ids.
func Seed(ctx context.Context, store *jsonstore.Store, cfg SeedConfig, bcryptCost int) error {
	rng := rand.New(rand.NewSource(cfg.Seed))

	medicos := medico.NewRepository(store)
	for i := 0; i < cfg.Medicos; i++ {
		_, err := medicos.Create(ctx, jsonstore.Record{
			"nombre":       "Dr. " + nombres[rng.Intn(len(nombres))],
			"especialidad": especialidades[rng.Intn(len(especialidades))],
		})
		if err != nil {
			return fmt.Errorf("seed medicos: %w", err)
		}
	}

	pacientes := paciente.NewRepository(store)
	for i := 0; i < cfg.Pacientes; i++ {
		_, err := pacientes.Create(ctx, jsonstore.Record{
			"nombre": nombres[rng.Intn(len(nombres))],
			"edad":   18 + rng.Intn(70),
		})
		if err != nil {
			return fmt.Errorf("seed pacientes: %w", err)
		}
	}

	turnos := turno.NewRepository(store)
	for i := 0; i < cfg.Turnos; i++ {
		_, err := turnos.Create(ctx, jsonstore.Record{
			"fecha":    fmt.Sprintf("2026-%02d-%02d", 1+rng.Intn(12), 1+rng.Intn(28)),
			"hora":     horas[rng.Intn(len(horas))],
			"medico":   1 + rng.Intn(maxInt(cfg.Medicos, 1)),
			"paciente": 1 + rng.Intn(maxInt(cfg.Pacientes, 1)),
		})
		if err != nil {
			return fmt.Errorf("seed turnos: %w", err)
		}
	}

	if cfg.AdminPassword != "" {
		hash, err := auth.HashPassword(cfg.AdminPassword, bcryptCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		usuarios := usuario.NewRepository(store)
		if _, err := usuarios.FindBy(ctx, "email", cfg.AdminEmail); err != nil {
			_, err = usuarios.Create(ctx, jsonstore.Record{
				"nombre":   "Administración",
				"email":    cfg.AdminEmail,
				"password": hash,
				"rol":      auth.RoleAdmin,
			})
			if err != nil {
				return fmt.Errorf("seed admin user: %w", err)
			}
		}
	}

	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
