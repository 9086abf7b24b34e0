package maintenance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campusworks/hosteldesk-backend/pkg/db/models"
	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	pkgerrors "github.com/campusworks/hosteldesk-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tickets still open after a week count as overdue; statistics cover the
// trailing thirty days.
const (
	overdueAfter     = 7 * 24 * time.Hour
	statisticsWindow = 30 * 24 * time.Hour
)

// Service defines maintenance ticket operations consumed by controllers.
type Service interface {
	Create(ctx context.Context, input CreateRequestInput) (*models.MaintenanceRequest, error)
	Get(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error)
	List(ctx context.Context, filters ListFilters) ([]models.MaintenanceRequest, error)
	ListOverdue(ctx context.Context, hostelID uuid.UUID) ([]models.MaintenanceRequest, error)
	GetStatistics(ctx context.Context, hostelID uuid.UUID) (*Statistics, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.MaintenanceRequest, error)
}

type requestRepository interface {
	Create(ctx context.Context, request *models.MaintenanceRequest) (*models.MaintenanceRequest, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error)
	List(ctx context.Context, filters ListFilters) ([]models.MaintenanceRequest, error)
	ListOverdue(ctx context.Context, hostelID uuid.UUID, cutoff time.Time) ([]models.MaintenanceRequest, error)
	Statistics(ctx context.Context, hostelID uuid.UUID, since time.Time) (*Statistics, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

type roomDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Room, error)
}

// studentNotifier pushes ticket lifecycle events to the filing student.
type studentNotifier interface {
	NotifyStudent(ctx context.Context, studentID uuid.UUID, title, message string)
}

type service struct {
	repo   requestRepository
	rooms  roomDirectory
	notify studentNotifier
	now    func() time.Time
}

// NewService constructs a maintenance service over the provided collaborators.
// The notifier may be nil.
func NewService(repo requestRepository, rooms roomDirectory, notify studentNotifier) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("maintenance repository required")
	}
	if rooms == nil {
		return nil, fmt.Errorf("room directory required")
	}
	return &service{repo: repo, rooms: rooms, notify: notify, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, input CreateRequestInput) (*models.MaintenanceRequest, error) {
	if input.StudentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "student id required")
	}
	if input.RoomID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "room id required")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid maintenance category")
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description required")
	}

	if _, err := s.rooms.FindByID(ctx, input.RoomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "room not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load room")
	}

	request := &models.MaintenanceRequest{
		ID:          uuid.New(),
		StudentID:   input.StudentID,
		RoomID:      input.RoomID,
		Category:    input.Category,
		Description: description,
		Status:      enums.MaintenanceStatusPending,
	}
	created, err := s.repo.Create(ctx, request)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create maintenance request")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request id required")
	}
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "maintenance request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load maintenance request")
	}
	return request, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]models.MaintenanceRequest, error) {
	if filters.Status != "" && !filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid maintenance status")
	}
	list, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list maintenance requests")
	}
	return list, nil
}

// ListOverdue returns tickets still Pending or In Progress a week after they
// were filed, oldest first.
func (s *service) ListOverdue(ctx context.Context, hostelID uuid.UUID) ([]models.MaintenanceRequest, error) {
	cutoff := s.now().Add(-overdueAfter)
	list, err := s.repo.ListOverdue(ctx, hostelID, cutoff)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list overdue requests")
	}
	return list, nil
}

// GetStatistics aggregates ticket counts for the trailing thirty days.
// A nil hostel id covers every hostel.
func (s *service) GetStatistics(ctx context.Context, hostelID uuid.UUID) (*Statistics, error) {
	since := s.now().Add(-statisticsWindow)
	stats, err := s.repo.Statistics(ctx, hostelID, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate maintenance statistics")
	}
	return stats, nil
}

func (s *service) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.MaintenanceRequest, error) {
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid maintenance status")
	}

	request, err := s.Get(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}
	if !request.Status.CanTransitionTo(input.Status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "status transition not allowed")
	}

	updates := map[string]any{"status": input.Status}
	if input.AssignedTo != nil {
		updates["assigned_to"] = strings.TrimSpace(*input.AssignedTo)
	}
	if input.Status == enums.MaintenanceStatusCompleted {
		updates["resolved_at"] = s.now()
	}

	if err := s.repo.Update(ctx, input.RequestID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update maintenance request")
	}

	if s.notify != nil {
		s.notify.NotifyStudent(ctx, request.StudentID, "Maintenance request updated",
			fmt.Sprintf("Your %s request is now %s.", strings.ToLower(string(request.Category)), input.Status))
	}
	return s.Get(ctx, input.RequestID)
}
