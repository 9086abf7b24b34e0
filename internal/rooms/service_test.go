package rooms

import (
	"context"
	"testing"

	"github.com/campusworks/hosteldesk-backend/pkg/db/models"
	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	pkgerrors "github.com/campusworks/hosteldesk-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubRoomRepo struct {
	rooms         map[uuid.UUID]*models.Room
	searchFilters SearchFilters
	available     []RoomSummary
	occupancy     *RoomOccupancy
}

func newStubRoomRepo() *stubRoomRepo {
	return &stubRoomRepo{rooms: make(map[uuid.UUID]*models.Room)}
}

func (s *stubRoomRepo) Create(_ context.Context, room *models.Room) (*models.Room, error) {
	s.rooms[room.ID] = room
	return room, nil
}

func (s *stubRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Room, error) {
	room, ok := s.rooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return room, nil
}

func (s *stubRoomRepo) FindByHostelAndNumber(_ context.Context, hostelID uuid.UUID, roomNo string) (*models.Room, error) {
	for _, room := range s.rooms {
		if room.HostelID == hostelID && room.RoomNo == roomNo {
			return room, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRoomRepo) ListByHostel(_ context.Context, hostelID uuid.UUID) ([]models.Room, error) {
	var out []models.Room
	for _, room := range s.rooms {
		if room.HostelID == hostelID {
			out = append(out, *room)
		}
	}
	return out, nil
}

func (s *stubRoomRepo) Search(_ context.Context, filters SearchFilters) ([]RoomSummary, error) {
	s.searchFilters = filters
	var out []RoomSummary
	for _, room := range s.rooms {
		if filters.HostelID != uuid.Nil && room.HostelID != filters.HostelID {
			continue
		}
		if filters.Status != "" && room.Status != filters.Status {
			continue
		}
		out = append(out, RoomSummary{ID: room.ID, HostelID: room.HostelID, RoomNo: room.RoomNo, Capacity: room.Capacity, Status: room.Status})
	}
	return out, nil
}

func (s *stubRoomRepo) FindAvailable(_ context.Context, _ enums.HostelType) ([]RoomSummary, error) {
	return s.available, nil
}

func (s *stubRoomRepo) FindWithOccupants(_ context.Context, roomID uuid.UUID) (*RoomOccupancy, error) {
	if s.occupancy == nil || s.occupancy.ID != roomID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.occupancy, nil
}

func (s *stubRoomRepo) Update(_ context.Context, id uuid.UUID, updates map[string]any) error {
	room := s.rooms[id]
	if roomNo, ok := updates["room_no"].(string); ok {
		room.RoomNo = roomNo
	}
	if capacity, ok := updates["capacity"].(int); ok {
		room.Capacity = capacity
	}
	return nil
}

func (s *stubRoomRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enums.RoomStatus) error {
	s.rooms[id].Status = status
	return nil
}

type stubHostelDirectory struct {
	hostels    map[uuid.UUID]*models.Hostel
	increments []int
}

func (s *stubHostelDirectory) FindByID(_ context.Context, id uuid.UUID) (*models.Hostel, error) {
	hostel, ok := s.hostels[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return hostel, nil
}

func (s *stubHostelDirectory) IncrementTotalRooms(_ context.Context, _ uuid.UUID, delta int) error {
	s.increments = append(s.increments, delta)
	return nil
}

type stubRecomputer struct {
	calls  []uuid.UUID
	result enums.RoomStatus
	repo   *stubRoomRepo
}

func (s *stubRecomputer) RecomputeRoomStatus(_ context.Context, roomID uuid.UUID) (enums.RoomStatus, error) {
	s.calls = append(s.calls, roomID)
	if s.repo != nil {
		s.repo.rooms[roomID].Status = s.result
	}
	return s.result, nil
}

func newTestRoomService(t *testing.T) (Service, *stubRoomRepo, *stubHostelDirectory, *stubRecomputer) {
	t.Helper()

	repo := newStubRoomRepo()
	hostels := &stubHostelDirectory{hostels: make(map[uuid.UUID]*models.Hostel)}
	recompute := &stubRecomputer{result: enums.RoomStatusVacant, repo: repo}
	svc, err := NewService(repo, hostels, recompute)
	require.NoError(t, err)
	return svc, repo, hostels, recompute
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()

	var typed *pkgerrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, code, typed.Code())
}

func TestRoomCreate(t *testing.T) {
	svc, _, hostels, _ := newTestRoomService(t)
	ctx := context.Background()

	hostelID := uuid.New()
	hostels.hostels[hostelID] = &models.Hostel{ID: hostelID, Name: "Block A"}

	created, err := svc.Create(ctx, CreateRoomInput{HostelID: hostelID, RoomNo: "101", Capacity: 2})
	require.NoError(t, err)
	assert.Equal(t, enums.RoomStatusVacant, created.Status)
	assert.Equal(t, []int{1}, hostels.increments)

	// Duplicate room number in the same hostel rejected.
	_, err = svc.Create(ctx, CreateRoomInput{HostelID: hostelID, RoomNo: "101", Capacity: 3})
	assertCode(t, err, pkgerrors.CodeConflict)

	// Unknown hostel rejected.
	_, err = svc.Create(ctx, CreateRoomInput{HostelID: uuid.New(), RoomNo: "102", Capacity: 2})
	assertCode(t, err, pkgerrors.CodeNotFound)

	// Zero capacity rejected.
	_, err = svc.Create(ctx, CreateRoomInput{HostelID: hostelID, RoomNo: "103", Capacity: 0})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestRoomSearch(t *testing.T) {
	svc, repo, _, _ := newTestRoomService(t)
	ctx := context.Background()

	hostelID := uuid.New()
	room := &models.Room{ID: uuid.New(), HostelID: hostelID, RoomNo: "201", Capacity: 2, Status: enums.RoomStatusVacant}
	repo.rooms[room.ID] = room
	other := &models.Room{ID: uuid.New(), HostelID: uuid.New(), RoomNo: "202", Capacity: 2, Status: enums.RoomStatusOccupied}
	repo.rooms[other.ID] = other

	found, err := svc.Search(ctx, SearchFilters{HostelID: hostelID, RoomNo: " 201 "})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, room.ID, found[0].ID)

	// Room number filter reaches the repository trimmed.
	assert.Equal(t, "201", repo.searchFilters.RoomNo)

	_, err = svc.Search(ctx, SearchFilters{Status: enums.RoomStatus("Demolished")})
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Search(ctx, SearchFilters{HostelType: enums.HostelType("Mixed")})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestRoomFindAvailable(t *testing.T) {
	svc, repo, _, _ := newTestRoomService(t)
	ctx := context.Background()

	repo.available = []RoomSummary{{ID: uuid.New(), RoomNo: "301", Capacity: 3, CurrentOccupants: 1, AvailableSpots: 2}}

	found, err := svc.FindAvailable(ctx, enums.HostelTypeBoys)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, 2, found[0].AvailableSpots)

	_, err = svc.FindAvailable(ctx, enums.HostelType("Mixed"))
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestRoomGetWithOccupants(t *testing.T) {
	svc, repo, _, _ := newTestRoomService(t)
	ctx := context.Background()

	roomID := uuid.New()
	repo.occupancy = &RoomOccupancy{
		RoomSummary: RoomSummary{ID: roomID, RoomNo: "401", Capacity: 2, CurrentOccupants: 1},
		Occupants:   []RoomOccupant{{StudentID: uuid.New(), Name: "Asha Nair", RegNo: "KTU2023001"}},
	}

	occupancy, err := svc.GetWithOccupants(ctx, roomID)
	require.NoError(t, err)
	require.Len(t, occupancy.Occupants, 1)
	assert.Equal(t, "KTU2023001", occupancy.Occupants[0].RegNo)

	_, err = svc.GetWithOccupants(ctx, uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)

	_, err = svc.GetWithOccupants(ctx, uuid.Nil)
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestRoomUpdateCapacityTriggersRecompute(t *testing.T) {
	svc, repo, _, recompute := newTestRoomService(t)
	ctx := context.Background()

	room := &models.Room{ID: uuid.New(), HostelID: uuid.New(), RoomNo: "104", Capacity: 2, Status: enums.RoomStatusVacant}
	repo.rooms[room.ID] = room

	capacity := 1
	recompute.result = enums.RoomStatusOccupied
	updated, err := svc.Update(ctx, room.ID, UpdateRoomInput{Capacity: &capacity})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Capacity)
	assert.Equal(t, []uuid.UUID{room.ID}, recompute.calls)
	assert.Equal(t, enums.RoomStatusOccupied, updated.Status)
}

func TestRoomSetMaintenance(t *testing.T) {
	svc, repo, _, recompute := newTestRoomService(t)
	ctx := context.Background()

	room := &models.Room{ID: uuid.New(), HostelID: uuid.New(), RoomNo: "105", Capacity: 2, Status: enums.RoomStatusOccupied}
	repo.rooms[room.ID] = room

	flagged, err := svc.SetMaintenance(ctx, room.ID, true)
	require.NoError(t, err)
	assert.Equal(t, enums.RoomStatusUnderMaintenance, flagged.Status)
	assert.Empty(t, recompute.calls)

	recompute.result = enums.RoomStatusOccupied
	cleared, err := svc.SetMaintenance(ctx, room.ID, false)
	require.NoError(t, err)
	assert.Equal(t, enums.RoomStatusOccupied, cleared.Status)
	assert.Equal(t, []uuid.UUID{room.ID}, recompute.calls)
}

func TestRoomSetMaintenanceNoopWhenNotFlagged(t *testing.T) {
	svc, repo, _, recompute := newTestRoomService(t)

	room := &models.Room{ID: uuid.New(), HostelID: uuid.New(), RoomNo: "106", Capacity: 2, Status: enums.RoomStatusVacant}
	repo.rooms[room.ID] = room

	cleared, err := svc.SetMaintenance(context.Background(), room.ID, false)
	require.NoError(t, err)
	assert.Equal(t, enums.RoomStatusVacant, cleared.Status)
	assert.Empty(t, recompute.calls)
}
