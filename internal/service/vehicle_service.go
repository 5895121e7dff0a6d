package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"vehicle-service/internal/model"
	"vehicle-service/internal/repository"
	"vehicle-service/internal/utils"
)

var (
	ErrVehicleNotFound       = errors.New("vehicle not found")
	ErrRouteNotFound         = errors.New("route not found")
	ErrValidation            = errors.New("validation failed")
	ErrEventPublish          = errors.New("event publish failed")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrInvalidInput          = errors.New("invalid input")
	ErrConflict              = errors.New("conflict")
)

// ValidationError aggregates every violation found in one validation pass.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// VehicleStore owns durable vehicle state. Absence is a normal value:
// GetByID returns (nil, nil) when no vehicle exists under the id.
type VehicleStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	GetByPlate(ctx context.Context, plate string) (*model.Vehicle, error)
	Save(ctx context.Context, vehicle *model.Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter repository.VehicleListFilter, offset, limit int) ([]model.Vehicle, int64, error)
}

// RouteResolver confirms existence of an externally-owned route.
// (nil, nil) means the route definitively does not exist; an error means the
// route service could not answer.
type RouteResolver interface {
	Resolve(ctx context.Context, routeID string) (*model.RouteRef, error)
}

// EventPublisher emits one notification per committed state change. No retries.
type EventPublisher interface {
	VehicleCreated(ctx context.Context, vehicle *model.Vehicle) error
	VehicleUpdated(ctx context.Context, vehicle *model.Vehicle) error
	VehicleDeleted(ctx context.Context, id uuid.UUID) error
}

// VehicleService runs the command pipeline for the vehicle aggregate. It holds
// no state between commands and does not serialize commands against each
// other: two concurrent updates to the same id race at the store layer and the
// last write wins. That is an accepted limitation of this service.
type VehicleService struct {
	store  VehicleStore
	routes RouteResolver
	events EventPublisher
}

func NewVehicleService(store VehicleStore, routes RouteResolver, events EventPublisher) *VehicleService {
	return &VehicleService{
		store:  store,
		routes: routes,
		events: events,
	}
}

// Create resolves the candidate's route, persists the candidate and emits
// VEHICLE_CREATED. Nothing is persisted when the route does not resolve. When
// persistence succeeded but publishing failed, the persisted vehicle is
// returned together with an error wrapping ErrEventPublish; the write is not
// rolled back.
func (s *VehicleService) Create(ctx context.Context, candidate *model.Vehicle) (*model.Vehicle, error) {
	if candidate == nil {
		return nil, ErrInvalidInput
	}

	vehicle := candidate.Clone()
	// The store assigns the id; whatever the client sent is discarded.
	vehicle.ID = uuid.Nil
	vehicle.LicensePlate = utils.NormalizePlate(vehicle.LicensePlate)

	route, err := s.routes.Resolve(ctx, vehicle.RouteID)
	if err != nil {
		return nil, fmt.Errorf("route service: %v: %w", err, ErrDependencyUnavailable)
	}
	if route == nil {
		return nil, fmt.Errorf("route %q: %w", vehicle.RouteID, ErrRouteNotFound)
	}

	if violations := ValidateVehicle(vehicle); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	dup, err := s.store.GetByPlate(ctx, vehicle.LicensePlate)
	if err != nil {
		return nil, fmt.Errorf("vehicle store: %v: %w", err, ErrDependencyUnavailable)
	}
	if dup != nil {
		return nil, fmt.Errorf("license plate %q already registered: %w", vehicle.LicensePlate, ErrConflict)
	}

	if err := s.store.Save(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("vehicle store: %v: %w", err, ErrDependencyUnavailable)
	}

	if err := s.events.VehicleCreated(ctx, vehicle); err != nil {
		return vehicle, fmt.Errorf("vehicle %s persisted, %v: %w", vehicle.ID, err, ErrEventPublish)
	}
	return vehicle, nil
}

// Update loads the existing vehicle, merges the candidate's fields over it,
// validates the result and persists it, then emits VEHICLE_UPDATED. The id is
// never taken from the candidate. When the merge changes the route, the new
// route's existence is verified the same way Create verifies it.
func (s *VehicleService) Update(ctx context.Context, id uuid.UUID, candidate *model.Vehicle) (*model.Vehicle, error) {
	if candidate == nil {
		return nil, ErrInvalidInput
	}

	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("vehicle store: %v: %w", err, ErrDependencyUnavailable)
	}
	if existing == nil {
		return nil, fmt.Errorf("vehicle %s: %w", id, ErrVehicleNotFound)
	}

	merged := MergeVehicle(candidate, existing)

	if violations := ValidateVehicle(merged); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	if merged.LicensePlate != existing.LicensePlate {
		dup, err := s.store.GetByPlate(ctx, merged.LicensePlate)
		if err != nil {
			return nil, fmt.Errorf("vehicle store: %v: %w", err, ErrDependencyUnavailable)
		}
		if dup != nil && dup.ID != merged.ID {
			return nil, fmt.Errorf("license plate %q already registered: %w", merged.LicensePlate, ErrConflict)
		}
	}

	if merged.RouteID != existing.RouteID {
		route, err := s.routes.Resolve(ctx, merged.RouteID)
		if err != nil {
			return nil, fmt.Errorf("route service: %v: %w", err, ErrDependencyUnavailable)
		}
		if route == nil {
			return nil, fmt.Errorf("route %q: %w", merged.RouteID, ErrRouteNotFound)
		}
	}

	if err := s.store.Save(ctx, merged); err != nil {
		return nil, fmt.Errorf("vehicle store: %v: %w", err, ErrDependencyUnavailable)
	}

	if err := s.events.VehicleUpdated(ctx, merged); err != nil {
		return merged, fmt.Errorf("vehicle %s persisted, %v: %w", merged.ID, err, ErrEventPublish)
	}
	return merged, nil
}

// Delete removes the vehicle and emits VEHICLE_DELETED with its id.
func (s *VehicleService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("vehicle store: %v: %w", err, ErrDependencyUnavailable)
	}
	if existing == nil {
		return fmt.Errorf("vehicle %s: %w", id, ErrVehicleNotFound)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("vehicle store: %v: %w", err, ErrDependencyUnavailable)
	}

	if err := s.events.VehicleDeleted(ctx, existing.ID); err != nil {
		return fmt.Errorf("vehicle %s deleted, %v: %w", id, err, ErrEventPublish)
	}
	return nil
}

func (s *VehicleService) Get(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	vehicle, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("vehicle store: %v: %w", err, ErrDependencyUnavailable)
	}
	if vehicle == nil {
		return nil, fmt.Errorf("vehicle %s: %w", id, ErrVehicleNotFound)
	}
	return vehicle, nil
}

func (s *VehicleService) List(ctx context.Context, filter repository.VehicleListFilter, offset, limit int) ([]model.Vehicle, int64, error) {
	vehicles, total, err := s.store.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("vehicle store: %v: %w", err, ErrDependencyUnavailable)
	}
	return vehicles, total, nil
}
