package hostels

import (
	"context"

	"github.com/campusworks/hosteldesk-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes hostel persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a hostels repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new hostel and returns the persisted model.
func (r *Repository) Create(ctx context.Context, hostel *models.Hostel) (*models.Hostel, error) {
	if err := r.db.WithContext(ctx).Create(hostel).Error; err != nil {
		return nil, err
	}
	return hostel, nil
}

// FindByID loads a hostel by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Hostel, error) {
	var hostel models.Hostel
	if err := r.db.WithContext(ctx).First(&hostel, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &hostel, nil
}

// FindByName retrieves the hostel with the given name.
func (r *Repository) FindByName(ctx context.Context, name string) (*models.Hostel, error) {
	var hostel models.Hostel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&hostel).Error; err != nil {
		return nil, err
	}
	return &hostel, nil
}

// FindByWarden returns the hostel assigned to the given warden, if any.
func (r *Repository) FindByWarden(ctx context.Context, wardenID uuid.UUID) (*models.Hostel, error) {
	var hostel models.Hostel
	if err := r.db.WithContext(ctx).Where("warden_id = ?", wardenID).First(&hostel).Error; err != nil {
		return nil, err
	}
	return &hostel, nil
}

// List returns all hostels ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Hostel, error) {
	var list []models.Hostel
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Update applies the provided column patch to a hostel row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Hostel{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// IncrementTotalRooms adjusts the cached room count by delta.
func (r *Repository) IncrementTotalRooms(ctx context.Context, id uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).
		Model(&models.Hostel{}).
		Where("id = ?", id).
		UpdateColumn("total_rooms", gorm.Expr("total_rooms + ?", delta)).Error
}
