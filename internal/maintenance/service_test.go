package maintenance

import (
	"context"
	"testing"
	"time"

	"github.com/campusworks/hosteldesk-backend/pkg/db/models"
	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	pkgerrors "github.com/campusworks/hosteldesk-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubRequestRepo struct {
	requests        map[uuid.UUID]*models.MaintenanceRequest
	overdueCutoff   time.Time
	statisticsSince time.Time
}

func newStubRequestRepo() *stubRequestRepo {
	return &stubRequestRepo{requests: make(map[uuid.UUID]*models.MaintenanceRequest)}
}

func (s *stubRequestRepo) Create(_ context.Context, request *models.MaintenanceRequest) (*models.MaintenanceRequest, error) {
	s.requests[request.ID] = request
	return request, nil
}

func (s *stubRequestRepo) FindByID(_ context.Context, id uuid.UUID) (*models.MaintenanceRequest, error) {
	request, ok := s.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return request, nil
}

func (s *stubRequestRepo) List(_ context.Context, filters ListFilters) ([]models.MaintenanceRequest, error) {
	var out []models.MaintenanceRequest
	for _, request := range s.requests {
		if filters.StudentID != uuid.Nil && request.StudentID != filters.StudentID {
			continue
		}
		if filters.Status != "" && request.Status != filters.Status {
			continue
		}
		out = append(out, *request)
	}
	return out, nil
}

func (s *stubRequestRepo) ListOverdue(_ context.Context, hostelID uuid.UUID, cutoff time.Time) ([]models.MaintenanceRequest, error) {
	s.overdueCutoff = cutoff
	var out []models.MaintenanceRequest
	for _, request := range s.requests {
		if request.Status == enums.MaintenanceStatusCompleted {
			continue
		}
		if request.CreatedAt.Before(cutoff) {
			out = append(out, *request)
		}
	}
	return out, nil
}

func (s *stubRequestRepo) Statistics(_ context.Context, _ uuid.UUID, since time.Time) (*Statistics, error) {
	s.statisticsSince = since
	stats := &Statistics{}
	for _, request := range s.requests {
		stats.TotalRequests++
		if request.Status == enums.MaintenanceStatusPending {
			stats.PendingRequests++
		}
	}
	return stats, nil
}

func (s *stubRequestRepo) Update(_ context.Context, id uuid.UUID, updates map[string]any) error {
	request := s.requests[id]
	if status, ok := updates["status"].(enums.MaintenanceStatus); ok {
		request.Status = status
	}
	if assigned, ok := updates["assigned_to"].(string); ok {
		request.AssignedTo = &assigned
	}
	if _, ok := updates["resolved_at"]; ok {
		now := request.UpdatedAt
		request.ResolvedAt = &now
	}
	return nil
}

type stubRoomDirectory struct {
	rooms map[uuid.UUID]*models.Room
}

func (s *stubRoomDirectory) FindByID(_ context.Context, id uuid.UUID) (*models.Room, error) {
	room, ok := s.rooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return room, nil
}

type stubNotifier struct {
	studentIDs []uuid.UUID
	titles     []string
	messages   []string
}

func (s *stubNotifier) NotifyStudent(_ context.Context, studentID uuid.UUID, title, message string) {
	s.studentIDs = append(s.studentIDs, studentID)
	s.titles = append(s.titles, title)
	s.messages = append(s.messages, message)
}

func newTestMaintenanceService(t *testing.T) (Service, *stubRequestRepo, *stubRoomDirectory) {
	t.Helper()

	repo := newStubRequestRepo()
	rooms := &stubRoomDirectory{rooms: make(map[uuid.UUID]*models.Room)}
	svc, err := NewService(repo, rooms, nil)
	require.NoError(t, err)
	return svc, repo, rooms
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()

	var typed *pkgerrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, code, typed.Code())
}

func TestMaintenanceCreate(t *testing.T) {
	svc, _, rooms := newTestMaintenanceService(t)
	ctx := context.Background()

	roomID := uuid.New()
	rooms.rooms[roomID] = &models.Room{ID: roomID}

	created, err := svc.Create(ctx, CreateRequestInput{
		StudentID:   uuid.New(),
		RoomID:      roomID,
		Category:    enums.MaintenanceCategoryPlumbing,
		Description: "Leaking tap in the bathroom",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.MaintenanceStatusPending, created.Status)

	_, err = svc.Create(ctx, CreateRequestInput{
		StudentID:   uuid.New(),
		RoomID:      uuid.New(),
		Category:    enums.MaintenanceCategoryElectrical,
		Description: "No power",
	})
	assertCode(t, err, pkgerrors.CodeNotFound)

	_, err = svc.Create(ctx, CreateRequestInput{
		StudentID:   uuid.New(),
		RoomID:      roomID,
		Category:    enums.MaintenanceCategory("HVAC"),
		Description: "AC broken",
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestMaintenanceStatusTransitions(t *testing.T) {
	svc, repo, _ := newTestMaintenanceService(t)
	ctx := context.Background()

	request := &models.MaintenanceRequest{
		ID:     uuid.New(),
		Status: enums.MaintenanceStatusPending,
	}
	repo.requests[request.ID] = request

	staff := "Suresh"
	updated, err := svc.UpdateStatus(ctx, UpdateStatusInput{
		RequestID:  request.ID,
		Status:     enums.MaintenanceStatusInProgress,
		AssignedTo: &staff,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.MaintenanceStatusInProgress, updated.Status)
	require.NotNil(t, updated.AssignedTo)
	assert.Equal(t, "Suresh", *updated.AssignedTo)

	updated, err = svc.UpdateStatus(ctx, UpdateStatusInput{
		RequestID: request.ID,
		Status:    enums.MaintenanceStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.MaintenanceStatusCompleted, updated.Status)

	// Completed is terminal.
	_, err = svc.UpdateStatus(ctx, UpdateStatusInput{
		RequestID: request.ID,
		Status:    enums.MaintenanceStatusInProgress,
	})
	assertCode(t, err, pkgerrors.CodeStateConflict)
}

func TestMaintenanceListOverdue(t *testing.T) {
	svc, repo, _ := newTestMaintenanceService(t)
	ctx := context.Background()

	now := time.Now()
	stale := uuid.New()
	repo.requests[stale] = &models.MaintenanceRequest{
		ID:        stale,
		Status:    enums.MaintenanceStatusPending,
		CreatedAt: now.Add(-10 * 24 * time.Hour),
	}
	fresh := uuid.New()
	repo.requests[fresh] = &models.MaintenanceRequest{
		ID:        fresh,
		Status:    enums.MaintenanceStatusPending,
		CreatedAt: now.Add(-2 * 24 * time.Hour),
	}
	done := uuid.New()
	repo.requests[done] = &models.MaintenanceRequest{
		ID:        done,
		Status:    enums.MaintenanceStatusCompleted,
		CreatedAt: now.Add(-20 * 24 * time.Hour),
	}

	list, err := svc.ListOverdue(ctx, uuid.Nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, stale, list[0].ID)

	// The cutoff handed to the repository sits a week back.
	assert.WithinDuration(t, now.Add(-7*24*time.Hour), repo.overdueCutoff, time.Minute)
}

func TestMaintenanceStatistics(t *testing.T) {
	svc, repo, _ := newTestMaintenanceService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		id := uuid.New()
		repo.requests[id] = &models.MaintenanceRequest{ID: id, Status: enums.MaintenanceStatusPending}
	}
	id := uuid.New()
	repo.requests[id] = &models.MaintenanceRequest{ID: id, Status: enums.MaintenanceStatusCompleted}

	stats, err := svc.GetStatistics(ctx, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalRequests)
	assert.Equal(t, int64(3), stats.PendingRequests)
	assert.WithinDuration(t, time.Now().Add(-30*24*time.Hour), repo.statisticsSince, time.Minute)
}

func TestMaintenanceUpdateStatusNotifiesStudent(t *testing.T) {
	repo := newStubRequestRepo()
	rooms := &stubRoomDirectory{rooms: make(map[uuid.UUID]*models.Room)}
	notifier := &stubNotifier{}
	svc, err := NewService(repo, rooms, notifier)
	require.NoError(t, err)

	ctx := context.Background()
	studentID := uuid.New()
	request := &models.MaintenanceRequest{
		ID:        uuid.New(),
		StudentID: studentID,
		Category:  enums.MaintenanceCategoryElectrical,
		Status:    enums.MaintenanceStatusPending,
	}
	repo.requests[request.ID] = request

	_, err = svc.UpdateStatus(ctx, UpdateStatusInput{
		RequestID: request.ID,
		Status:    enums.MaintenanceStatusInProgress,
	})
	require.NoError(t, err)

	require.Len(t, notifier.studentIDs, 1)
	assert.Equal(t, studentID, notifier.studentIDs[0])
	assert.Equal(t, "Maintenance request updated", notifier.titles[0])
	assert.Contains(t, notifier.messages[0], "electrical")
	assert.Contains(t, notifier.messages[0], string(enums.MaintenanceStatusInProgress))
}

func TestMaintenanceListFilters(t *testing.T) {
	svc, repo, _ := newTestMaintenanceService(t)
	ctx := context.Background()

	studentID := uuid.New()
	repo.requests[uuid.New()] = &models.MaintenanceRequest{ID: uuid.New(), StudentID: studentID, Status: enums.MaintenanceStatusPending}
	other := uuid.New()
	repo.requests[other] = &models.MaintenanceRequest{ID: other, StudentID: uuid.New(), Status: enums.MaintenanceStatusCompleted}

	list, err := svc.List(ctx, ListFilters{StudentID: studentID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, studentID, list[0].StudentID)

	_, err = svc.List(ctx, ListFilters{Status: enums.MaintenanceStatus("Bogus")})
	assertCode(t, err, pkgerrors.CodeValidation)
}
