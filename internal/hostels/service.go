package hostels

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/campusworks/hosteldesk-backend/pkg/db/models"
	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	pkgerrors "github.com/campusworks/hosteldesk-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines hostel directory operations consumed by controllers.
type Service interface {
	Create(ctx context.Context, input CreateHostelInput) (*models.Hostel, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Hostel, error)
	GetByWarden(ctx context.Context, wardenID uuid.UUID) (*models.Hostel, error)
	List(ctx context.Context) ([]models.Hostel, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateHostelInput) (*models.Hostel, error)
}

type hostelRepository interface {
	Create(ctx context.Context, hostel *models.Hostel) (*models.Hostel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Hostel, error)
	FindByName(ctx context.Context, name string) (*models.Hostel, error)
	FindByWarden(ctx context.Context, wardenID uuid.UUID) (*models.Hostel, error)
	List(ctx context.Context) ([]models.Hostel, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

type wardenResolver interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type service struct {
	repo    hostelRepository
	wardens wardenResolver
}

// NewService constructs a hostel service over the provided repositories.
func NewService(repo hostelRepository, wardens wardenResolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("hostels repository required")
	}
	if wardens == nil {
		return nil, fmt.Errorf("warden resolver required")
	}
	return &service{repo: repo, wardens: wardens}, nil
}

func (s *service) Create(ctx context.Context, input CreateHostelInput) (*models.Hostel, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hostel name required")
	}
	if !input.HostelType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid hostel type")
	}

	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "hostel name already in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check hostel name")
	}

	if input.WardenID != nil {
		if err := s.validateWarden(ctx, *input.WardenID); err != nil {
			return nil, err
		}
	}

	hostel := &models.Hostel{
		ID:         uuid.New(),
		Name:       name,
		HostelType: input.HostelType,
		Location:   input.Location,
		WardenID:   input.WardenID,
	}
	created, err := s.repo.Create(ctx, hostel)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create hostel")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Hostel, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hostel id required")
	}
	hostel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "hostel not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load hostel")
	}
	return hostel, nil
}

func (s *service) GetByWarden(ctx context.Context, wardenID uuid.UUID) (*models.Hostel, error) {
	if wardenID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warden id required")
	}
	hostel, err := s.repo.FindByWarden(ctx, wardenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no hostel assigned to warden")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load hostel")
	}
	return hostel, nil
}

func (s *service) List(ctx context.Context) ([]models.Hostel, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list hostels")
	}
	return list, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateHostelInput) (*models.Hostel, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "hostel name cannot be empty")
		}
		if existing, err := s.repo.FindByName(ctx, name); err == nil && existing.ID != id {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "hostel name already in use")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check hostel name")
		}
		updates["name"] = name
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}
	if input.WardenID != nil {
		if err := s.validateWarden(ctx, *input.WardenID); err != nil {
			return nil, err
		}
		updates["warden_id"] = *input.WardenID
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update hostel")
	}
	return s.Get(ctx, id)
}

func (s *service) validateWarden(ctx context.Context, wardenID uuid.UUID) error {
	user, err := s.wardens.FindByID(ctx, wardenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "warden not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load warden")
	}
	if user.Role != enums.UserRoleWarden {
		return pkgerrors.New(pkgerrors.CodeValidation, "assigned user is not a warden")
	}
	return nil
}
