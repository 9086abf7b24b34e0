package students

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/campusworks/hosteldesk-backend/pkg/db/models"
	pkgerrors "github.com/campusworks/hosteldesk-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines student profile operations consumed by controllers.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Student, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*models.Student, error)
	List(ctx context.Context) ([]models.Student, error)
	Search(ctx context.Context, filters SearchFilters) ([]models.Student, error)
	FindEligibleForAllocation(ctx context.Context) ([]models.Student, error)
	FindWithRoom(ctx context.Context) ([]StudentRoomRow, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateStudentInput) (*models.Student, error)
}

type studentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Student, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Student, error)
	List(ctx context.Context) ([]models.Student, error)
	Search(ctx context.Context, filters SearchFilters) ([]models.Student, error)
	FindEligibleForAllocation(ctx context.Context) ([]models.Student, error)
	FindWithCurrentRoom(ctx context.Context) ([]StudentRoomRow, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

type service struct {
	repo studentRepository
}

// NewService constructs a student service over the provided repository.
func NewService(repo studentRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("students repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "student id required")
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "student not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load student")
	}
	return student, nil
}

func (s *service) GetByUser(ctx context.Context, userID uuid.UUID) (*models.Student, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	student, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "student not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load student")
	}
	return student, nil
}

func (s *service) List(ctx context.Context) ([]models.Student, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list students")
	}
	return list, nil
}

func (s *service) Search(ctx context.Context, filters SearchFilters) ([]models.Student, error) {
	if filters.YearOfStudy < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid year filter")
	}
	filters.Name = strings.TrimSpace(filters.Name)
	filters.RegNo = strings.TrimSpace(filters.RegNo)
	filters.Department = strings.TrimSpace(filters.Department)
	filters.Category = strings.TrimSpace(filters.Category)

	list, err := s.repo.Search(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search students")
	}
	return list, nil
}

// FindEligibleForAllocation lists unhoused students in allocation priority
// order: category, then KEAM rank ascending, then SGPA descending.
func (s *service) FindEligibleForAllocation(ctx context.Context) ([]models.Student, error) {
	list, err := s.repo.FindEligibleForAllocation(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list eligible students")
	}
	return list, nil
}

func (s *service) FindWithRoom(ctx context.Context) ([]StudentRoomRow, error) {
	rows, err := s.repo.FindWithCurrentRoom(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list housed students")
	}
	return rows, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateStudentInput) (*models.Student, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "student id required")
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		updates["name"] = name
	}
	if input.Department != nil {
		updates["department"] = strings.TrimSpace(*input.Department)
	}
	if input.YearOfStudy != nil {
		if *input.YearOfStudy < 1 || *input.YearOfStudy > 6 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "year of study must be between 1 and 6")
		}
		updates["year_of_study"] = *input.YearOfStudy
	}
	if input.Category != nil {
		updates["category"] = strings.TrimSpace(*input.Category)
	}
	if input.KEAMRank != nil {
		updates["keam_rank"] = *input.KEAMRank
	}
	if input.SGPA != nil {
		if *input.SGPA < 0 || *input.SGPA > 10 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "sgpa must be between 0 and 10")
		}
		updates["sgpa"] = *input.SGPA
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update student")
	}
	return s.Get(ctx, id)
}
