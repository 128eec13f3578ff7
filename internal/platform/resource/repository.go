// Package resource implements the generic CRUD repository shared by every
// clinic collection (medicos, pacientes, turnos, usuarios). Records are
// free-form JSON objects; the repository only enforces a numeric id and the
// presence of each collection's required fields on create.
package resource

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinica/clinica/internal/platform/jsonstore"
)

// Sentinel errors, mapped at the HTTP boundary to 400/404/400/500.
var (
	ErrInvalidInput = errors.New("datos inválidos")
	ErrNotFound     = errors.New("registro no encontrado")
	ErrConflict     = errors.New("el registro ya existe")
	ErrStorage      = errors.New("error de almacenamiento")
)

// Repository provides CRUD over one JSON document. Each operation performs a
// full load-modify-persist cycle under the store's per-document lock.
type Repository struct {
	store    *jsonstore.Store
	name     string
	required []string
}

// New creates a repository over the named collection. The required fields are
// checked for presence on create.
func New(store *jsonstore.Store, name string, required ...string) *Repository {
	return &Repository{store: store, name: name, required: required}
}

// Name returns the collection name (and JSON document key).
func (r *Repository) Name() string { return r.name }

// List returns all records in insertion order.
func (r *Repository) List(ctx context.Context) ([]jsonstore.Record, error) {
	unlock := r.store.Lock(r.name)
	defer unlock()
	return r.store.Load(r.name), nil
}

// Get returns the record with the given id.
func (r *Repository) Get(ctx context.Context, id int) (jsonstore.Record, error) {
	unlock := r.store.Lock(r.name)
	defer unlock()

	for _, rec := range r.store.Load(r.name) {
		if recordID(rec) == id {
			return rec, nil
		}
	}
	return nil, ErrNotFound
}

// FindBy returns the first record whose field equals value (exact,
// case-sensitive comparison). Used for email lookups on usuarios.
func (r *Repository) FindBy(ctx context.Context, field, value string) (jsonstore.Record, error) {
	unlock := r.store.Lock(r.name)
	defer unlock()

	for _, rec := range r.store.Load(r.name) {
		if v, ok := rec[field].(string); ok && v == value {
			return rec, nil
		}
	}
	return nil, ErrNotFound
}

// Create validates required fields, assigns id = max(existing ids)+1 (1 when
// the document is empty), appends and persists. Returns the stored record.
// Deleted ids are never reused.
func (r *Repository) Create(ctx context.Context, fields jsonstore.Record) (jsonstore.Record, error) {
	for _, f := range r.required {
		if !present(fields, f) {
			return nil, fmt.Errorf("%w: el campo %q es obligatorio", ErrInvalidInput, f)
		}
	}

	unlock := r.store.Lock(r.name)
	defer unlock()

	records := r.store.Load(r.name)
	rec := jsonstore.Record{"id": nextID(records)}
	for k, v := range fields {
		if k == "id" {
			continue
		}
		rec[k] = v
	}
	records = append(records, rec)
	if err := r.store.Persist(r.name, records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return rec, nil
}

// Update shallow-merges patch onto the stored record: supplied keys overwrite,
// omitted keys are retained. A caller-supplied "id" is ignored; the stored id
// is always preserved. Returns the merged record.
func (r *Repository) Update(ctx context.Context, id int, patch jsonstore.Record) (jsonstore.Record, error) {
	unlock := r.store.Lock(r.name)
	defer unlock()

	records := r.store.Load(r.name)
	for i, rec := range records {
		if recordID(rec) != id {
			continue
		}
		for k, v := range patch {
			if k == "id" {
				continue
			}
			rec[k] = v
		}
		records[i] = rec
		if err := r.store.Persist(r.name, records); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		return rec, nil
	}
	return nil, ErrNotFound
}

// Delete removes the record with the given id and persists. It returns the
// removed record so callers can report what was deleted.
func (r *Repository) Delete(ctx context.Context, id int) (jsonstore.Record, error) {
	unlock := r.store.Lock(r.name)
	defer unlock()

	records := r.store.Load(r.name)
	for i, rec := range records {
		if recordID(rec) != id {
			continue
		}
		records = append(records[:i], records[i+1:]...)
		if err := r.store.Persist(r.name, records); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		return rec, nil
	}
	return nil, ErrNotFound
}

// recordID extracts the numeric id from a record. Unmarshalled JSON numbers
// arrive as float64; records built in memory carry int.
func recordID(rec jsonstore.Record) int {
	switch v := rec["id"].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

func nextID(records []jsonstore.Record) int {
	max := 0
	for _, rec := range records {
		if id := recordID(rec); id > max {
			max = id
		}
	}
	return max + 1
}

// present reports whether a field exists and is non-empty. Presence is the
// only validation performed; values are otherwise free-form.
func present(fields jsonstore.Record, key string) bool {
	v, ok := fields[key]
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr && s == "" {
		return false
	}
	return true
}
