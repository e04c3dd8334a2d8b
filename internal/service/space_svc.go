package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Mio254/spacer/internal/domain"
	"github.com/Mio254/spacer/internal/repository"
	"github.com/Mio254/spacer/pkg/apperror"
)

// SpaceSvc is the admin side of the inventory: create/patch with field-level
// validation, soft delete via deactivation.
type SpaceSvc struct {
	spaces *repository.SpaceRepo
}

func NewSpaceSvc(spaces *repository.SpaceRepo) *SpaceSvc {
	return &SpaceSvc{spaces: spaces}
}

type SpaceInput struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Location     string  `json:"location"`
	ImageURL     string  `json:"image_url"`
	PricePerHour float64 `json:"price_per_hour"`
	Capacity     int32   `json:"capacity"`
}

// SpacePatch updates only the fields present.
type SpacePatch struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Location     *string  `json:"location"`
	ImageURL     *string  `json:"image_url"`
	PricePerHour *float64 `json:"price_per_hour"`
	Capacity     *int32   `json:"capacity"`
	IsActive     *bool    `json:"is_active"`
}

func validateSpace(in SpaceInput) []apperror.FieldError {
	var fields []apperror.FieldError
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "must not be empty"})
	}
	if strings.TrimSpace(in.Description) == "" {
		fields = append(fields, apperror.FieldError{Field: "description", Message: "must not be empty"})
	}
	if in.PricePerHour <= 0 {
		fields = append(fields, apperror.FieldError{Field: "price_per_hour", Message: "must be greater than zero"})
	}
	if in.Capacity <= 0 {
		fields = append(fields, apperror.FieldError{Field: "capacity", Message: "must be greater than zero"})
	}
	return fields
}

func (s *SpaceSvc) Create(ctx context.Context, actor domain.Actor, in SpaceInput) (*domain.Space, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrNotAuthorized
	}
	if fields := validateSpace(in); len(fields) > 0 {
		return nil, apperror.Validation(fields)
	}
	sp := &domain.Space{
		Name:         in.Name,
		Description:  in.Description,
		Location:     in.Location,
		ImageURL:     in.ImageURL,
		PricePerHour: in.PricePerHour,
		Capacity:     in.Capacity,
		IsActive:     true,
	}
	if err := s.spaces.Create(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *SpaceSvc) Patch(ctx context.Context, actor domain.Actor, id string, patch SpacePatch) (*domain.Space, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrNotAuthorized
	}
	sp, err := s.byID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		sp.Name = *patch.Name
	}
	if patch.Description != nil {
		sp.Description = *patch.Description
	}
	if patch.Location != nil {
		sp.Location = *patch.Location
	}
	if patch.ImageURL != nil {
		sp.ImageURL = *patch.ImageURL
	}
	if patch.PricePerHour != nil {
		sp.PricePerHour = *patch.PricePerHour
	}
	if patch.Capacity != nil {
		sp.Capacity = *patch.Capacity
	}
	if patch.IsActive != nil {
		sp.IsActive = *patch.IsActive
	}
	// the patched record must still satisfy the same rules as a new one
	if fields := validateSpace(SpaceInput{
		Name:         sp.Name,
		Description:  sp.Description,
		PricePerHour: sp.PricePerHour,
		Capacity:     sp.Capacity,
	}); len(fields) > 0 {
		return nil, apperror.Validation(fields)
	}
	if err := s.spaces.Save(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

// SetActive deactivates or restores a space. Existing bookings are left
// alone: still queryable, still payable.
func (s *SpaceSvc) SetActive(ctx context.Context, actor domain.Actor, id string, active bool) (*domain.Space, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrNotAuthorized
	}
	sp, err := s.spaces.SetActive(ctx, id, active)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSpaceNotFound
		}
		return nil, err
	}
	return sp, nil
}

func (s *SpaceSvc) Get(ctx context.Context, id string) (*domain.Space, error) {
	return s.byID(ctx, id)
}

// List shows active spaces to everyone; admins may include inactive ones.
func (s *SpaceSvc) List(ctx context.Context, actor domain.Actor, includeInactive bool, page, size int32) ([]domain.Space, error) {
	if includeInactive && !actor.IsAdmin() {
		includeInactive = false
	}
	return s.spaces.List(ctx, includeInactive, page, size)
}

func (s *SpaceSvc) byID(ctx context.Context, id string) (*domain.Space, error) {
	sp, err := s.spaces.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSpaceNotFound
		}
		return nil, err
	}
	return sp, nil
}
