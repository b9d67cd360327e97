package repository

import (
	"context"
	"errors"

	"dental-clinic-api/internal/domain/entity"
)

var (
	// ErrVersionConflict is returned by Update when the stored record has
	// moved on since the caller resolved it (lost-update protection).
	ErrVersionConflict = errors.New("record was modified concurrently")

	// ErrNotFound is returned by Update when no record with the given id
	// exists. Lookups signal absence with (nil, nil) instead.
	ErrNotFound = errors.New("record not found")
)

// PatientRepository is the clinic directory: the top-level collection of
// patient aggregates. Implementations return (nil, nil) when a record is
// absent; the usecase layer decides whether that is an error.
type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	FindByID(ctx context.Context, id int64) (*entity.Patient, error)
	FindAll(ctx context.Context) ([]entity.Patient, error)
	// Search filters by case-insensitive substring over name, email and
	// phone, preserving storage order. No ranking.
	Search(ctx context.Context, query string) ([]entity.Patient, error)
	// Update replaces the aggregate whose id matches. It checks the
	// caller's Version against the stored one and returns
	// ErrVersionConflict on mismatch; on success the version is bumped.
	Update(ctx context.Context, patient *entity.Patient) error
}
