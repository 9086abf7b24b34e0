package rooms

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

// Service defines room inventory operations consumed by controllers.
type Service interface {
	Create(ctx context.Context, input CreateRoomInput) (*models.Room, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Room, error)
	ListByHostel(ctx context.Context, hostelID uuid.UUID) ([]models.Room, error)
	Search(ctx context.Context, filters SearchFilters) ([]RoomSummary, error)
	FindAvailable(ctx context.Context, hostelType enums.HostelType) ([]RoomSummary, error)
	GetWithOccupants(ctx context.Context, id uuid.UUID) (*RoomOccupancy, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateRoomInput) (*models.Room, error)
	SetMaintenance(ctx context.Context, id uuid.UUID, underMaintenance bool) (*models.Room, error)
}

type roomRepository interface {
	Create(ctx context.Context, room *models.Room) (*models.Room, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Room, error)
	FindByHostelAndNumber(ctx context.Context, hostelID uuid.UUID, roomNo string) (*models.Room, error)
	ListByHostel(ctx context.Context, hostelID uuid.UUID) ([]models.Room, error)
	Search(ctx context.Context, filters SearchFilters) ([]RoomSummary, error)
	FindAvailable(ctx context.Context, hostelType enums.HostelType) ([]RoomSummary, error)
	FindWithOccupants(ctx context.Context, roomID uuid.UUID) (*RoomOccupancy, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.RoomStatus) error
}

type hostelDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Hostel, error)
	IncrementTotalRooms(ctx context.Context, id uuid.UUID, delta int) error
}

// statusRecomputer restores a room's derived status after maintenance ends.
type statusRecomputer interface {
	RecomputeRoomStatus(ctx context.Context, roomID uuid.UUID) (enums.RoomStatus, error)
}

type service struct {
	repo      roomRepository
	hostels   hostelDirectory
	recompute statusRecomputer
}

// NewService constructs a room service over the provided collaborators.
func NewService(repo roomRepository, hostels hostelDirectory, recompute statusRecomputer) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("rooms repository required")
	}
	if hostels == nil {
		return nil, fmt.Errorf("hostel directory required")
	}
	if recompute == nil {
		return nil, fmt.Errorf("status recomputer required")
	}
	return &service{repo: repo, hostels: hostels, recompute: recompute}, nil
}

func (s *service) Create(ctx context.Context, input CreateRoomInput) (*models.Room, error) {
	if input.HostelID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hostel id required")
	}
	roomNo := strings.TrimSpace(input.RoomNo)
	if roomNo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "room number required")
	}
	if input.Capacity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "capacity must be positive")
	}

	if _, err := s.hostels.FindByID(ctx, input.HostelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "hostel not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load hostel")
	}

	if _, err := s.repo.FindByHostelAndNumber(ctx, input.HostelID, roomNo); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "room number already exists in hostel")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check room number")
	}

	room := &models.Room{
		ID:       uuid.New(),
		HostelID: input.HostelID,
		RoomNo:   roomNo,
		Capacity: input.Capacity,
		Status:   enums.RoomStatusVacant,
	}
	created, err := s.repo.Create(ctx, room)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create room")
	}

	if err := s.hostels.IncrementTotalRooms(ctx, input.HostelID, 1); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update hostel room count")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "room id required")
	}
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "room not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load room")
	}
	return room, nil
}

func (s *service) ListByHostel(ctx context.Context, hostelID uuid.UUID) ([]models.Room, error) {
	if hostelID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hostel id required")
	}
	list, err := s.repo.ListByHostel(ctx, hostelID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rooms")
	}
	return list, nil
}

func (s *service) Search(ctx context.Context, filters SearchFilters) ([]RoomSummary, error) {
	if filters.Status != "" && !filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}
	if filters.HostelType != "" && !filters.HostelType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid hostel type filter")
	}
	filters.RoomNo = strings.TrimSpace(filters.RoomNo)

	list, err := s.repo.Search(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search rooms")
	}
	return list, nil
}

// FindAvailable lists vacant rooms with free spots, the candidate set for a
// new allocation.
func (s *service) FindAvailable(ctx context.Context, hostelType enums.HostelType) ([]RoomSummary, error) {
	if hostelType != "" && !hostelType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid hostel type filter")
	}
	list, err := s.repo.FindAvailable(ctx, hostelType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list available rooms")
	}
	return list, nil
}

func (s *service) GetWithOccupants(ctx context.Context, id uuid.UUID) (*RoomOccupancy, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "room id required")
	}
	occupancy, err := s.repo.FindWithOccupants(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "room not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load room occupants")
	}
	return occupancy, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateRoomInput) (*models.Room, error) {
	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.RoomNo != nil {
		roomNo := strings.TrimSpace(*input.RoomNo)
		if roomNo == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "room number cannot be empty")
		}
		if existing, err := s.repo.FindByHostelAndNumber(ctx, room.HostelID, roomNo); err == nil && existing.ID != id {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "room number already exists in hostel")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check room number")
		}
		updates["room_no"] = roomNo
	}
	if input.Capacity != nil {
		if *input.Capacity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "capacity must be positive")
		}
		updates["capacity"] = *input.Capacity
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update room")
	}

	// A capacity change can move the room across the occupancy threshold.
	if input.Capacity != nil {
		if _, err := s.recompute.RecomputeRoomStatus(ctx, id); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, id)
}

// SetMaintenance flags a room Under Maintenance or lifts the flag. Lifting it
// recomputes the derived Vacant/Occupied status from current occupancy.
func (s *service) SetMaintenance(ctx context.Context, id uuid.UUID, underMaintenance bool) (*models.Room, error) {
	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if underMaintenance {
		if room.Status != enums.RoomStatusUnderMaintenance {
			if err := s.repo.UpdateStatus(ctx, id, enums.RoomStatusUnderMaintenance); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update room status")
			}
		}
		return s.Get(ctx, id)
	}

	if room.Status != enums.RoomStatusUnderMaintenance {
		return room, nil
	}
	// Clear the flag first so the recompute helper is allowed to write.
	if err := s.repo.UpdateStatus(ctx, id, enums.RoomStatusVacant); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update room status")
	}
	if _, err := s.recompute.RecomputeRoomStatus(ctx, id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}
