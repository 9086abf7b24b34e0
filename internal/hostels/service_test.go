package hostels

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

type stubHostelRepo struct {
	hostels map[uuid.UUID]*models.Hostel
}

func newStubHostelRepo() *stubHostelRepo {
	return &stubHostelRepo{hostels: make(map[uuid.UUID]*models.Hostel)}
}

func (s *stubHostelRepo) Create(_ context.Context, hostel *models.Hostel) (*models.Hostel, error) {
	s.hostels[hostel.ID] = hostel
	return hostel, nil
}

func (s *stubHostelRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Hostel, error) {
	hostel, ok := s.hostels[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return hostel, nil
}

func (s *stubHostelRepo) FindByName(_ context.Context, name string) (*models.Hostel, error) {
	for _, hostel := range s.hostels {
		if hostel.Name == name {
			return hostel, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubHostelRepo) FindByWarden(_ context.Context, wardenID uuid.UUID) (*models.Hostel, error) {
	for _, hostel := range s.hostels {
		if hostel.WardenID != nil && *hostel.WardenID == wardenID {
			return hostel, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubHostelRepo) List(context.Context) ([]models.Hostel, error) {
	out := make([]models.Hostel, 0, len(s.hostels))
	for _, hostel := range s.hostels {
		out = append(out, *hostel)
	}
	return out, nil
}

func (s *stubHostelRepo) Update(_ context.Context, id uuid.UUID, updates map[string]any) error {
	hostel := s.hostels[id]
	if name, ok := updates["name"].(string); ok {
		hostel.Name = name
	}
	if wardenID, ok := updates["warden_id"].(uuid.UUID); ok {
		hostel.WardenID = &wardenID
	}
	return nil
}

type stubWardenResolver struct {
	users map[uuid.UUID]*models.User
}

func (s *stubWardenResolver) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func newTestHostelService(t *testing.T) (Service, *stubHostelRepo, *stubWardenResolver) {
	t.Helper()

	repo := newStubHostelRepo()
	wardens := &stubWardenResolver{users: make(map[uuid.UUID]*models.User)}
	svc, err := NewService(repo, wardens)
	require.NoError(t, err)
	return svc, repo, wardens
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()

	var typed *pkgerrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, code, typed.Code())
}

func TestHostelCreate(t *testing.T) {
	svc, _, wardens := newTestHostelService(t)
	ctx := context.Background()

	wardenID := uuid.New()
	wardens.users[wardenID] = &models.User{ID: wardenID, Role: enums.UserRoleWarden}

	created, err := svc.Create(ctx, CreateHostelInput{
		Name:       "MH Block A",
		HostelType: enums.HostelTypeBoys,
		WardenID:   &wardenID,
	})
	require.NoError(t, err)
	assert.Equal(t, "MH Block A", created.Name)

	// Duplicate name rejected.
	_, err = svc.Create(ctx, CreateHostelInput{Name: "MH Block A", HostelType: enums.HostelTypeBoys})
	assertCode(t, err, pkgerrors.CodeConflict)

	// Invalid type rejected.
	_, err = svc.Create(ctx, CreateHostelInput{Name: "LH Block B", HostelType: enums.HostelType("Mixed")})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestHostelCreateRejectsNonWarden(t *testing.T) {
	svc, _, wardens := newTestHostelService(t)

	studentID := uuid.New()
	wardens.users[studentID] = &models.User{ID: studentID, Role: enums.UserRoleStudent}

	_, err := svc.Create(context.Background(), CreateHostelInput{
		Name:       "LH Block C",
		HostelType: enums.HostelTypeGirls,
		WardenID:   &studentID,
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestHostelGetByWarden(t *testing.T) {
	svc, repo, _ := newTestHostelService(t)
	ctx := context.Background()

	wardenID := uuid.New()
	hostel := &models.Hostel{ID: uuid.New(), Name: "LH Block D", HostelType: enums.HostelTypeGirls, WardenID: &wardenID}
	repo.hostels[hostel.ID] = hostel

	found, err := svc.GetByWarden(ctx, wardenID)
	require.NoError(t, err)
	assert.Equal(t, hostel.ID, found.ID)

	_, err = svc.GetByWarden(ctx, uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestHostelUpdateNameConflict(t *testing.T) {
	svc, repo, _ := newTestHostelService(t)
	ctx := context.Background()

	a := &models.Hostel{ID: uuid.New(), Name: "Block A", HostelType: enums.HostelTypeBoys}
	b := &models.Hostel{ID: uuid.New(), Name: "Block B", HostelType: enums.HostelTypeBoys}
	repo.hostels[a.ID] = a
	repo.hostels[b.ID] = b

	taken := "Block A"
	_, err := svc.Update(ctx, b.ID, UpdateHostelInput{Name: &taken})
	assertCode(t, err, pkgerrors.CodeConflict)

	fresh := "Block B2"
	updated, err := svc.Update(ctx, b.ID, UpdateHostelInput{Name: &fresh})
	require.NoError(t, err)
	assert.Equal(t, "Block B2", updated.Name)
}
