package maintenance

import (
	"context"
	"time"

	"github.com/campusworks/hosteldesk-backend/pkg/db/models"
	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes maintenance request persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a maintenance repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new request and returns the persisted model.
func (r *Repository) Create(ctx context.Context, request *models.MaintenanceRequest) (*models.MaintenanceRequest, error) {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

// FindByID loads a request by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error) {
	var request models.MaintenanceRequest
	if err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// List returns requests matching the filters, newest first.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]models.MaintenanceRequest, error) {
	query := r.db.WithContext(ctx).Model(&models.MaintenanceRequest{})
	if filters.StudentID != uuid.Nil {
		query = query.Where("student_id = ?", filters.StudentID)
	}
	if filters.HostelID != uuid.Nil {
		query = query.
			Joins("JOIN rooms ON rooms.id = maintenance_requests.room_id").
			Where("rooms.hostel_id = ?", filters.HostelID)
	}
	if filters.Status != "" {
		query = query.Where("maintenance_requests.status = ?", filters.Status)
	}

	var list []models.MaintenanceRequest
	if err := query.Order("maintenance_requests.created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListOverdue returns open tickets created before the cutoff, oldest first.
func (r *Repository) ListOverdue(ctx context.Context, hostelID uuid.UUID, cutoff time.Time) ([]models.MaintenanceRequest, error) {
	query := r.db.WithContext(ctx).
		Model(&models.MaintenanceRequest{}).
		Where("maintenance_requests.status IN ?", []enums.MaintenanceStatus{
			enums.MaintenanceStatusPending,
			enums.MaintenanceStatusInProgress,
		}).
		Where("maintenance_requests.created_at < ?", cutoff)
	if hostelID != uuid.Nil {
		query = query.
			Joins("JOIN rooms ON rooms.id = maintenance_requests.room_id").
			Where("rooms.hostel_id = ?", hostelID)
	}

	var list []models.MaintenanceRequest
	if err := query.Order("maintenance_requests.created_at ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Statistics aggregates status and category counts for tickets created since
// the given time.
func (r *Repository) Statistics(ctx context.Context, hostelID uuid.UUID, since time.Time) (*Statistics, error) {
	query := r.db.WithContext(ctx).
		Table("maintenance_requests").
		Select(`COUNT(*) AS total_requests,
COUNT(CASE WHEN maintenance_requests.status = ? THEN 1 END) AS pending_requests,
COUNT(CASE WHEN maintenance_requests.status = ? THEN 1 END) AS in_progress_requests,
COUNT(CASE WHEN maintenance_requests.status = ? THEN 1 END) AS completed_requests,
COUNT(CASE WHEN maintenance_requests.category = ? THEN 1 END) AS electrical_requests,
COUNT(CASE WHEN maintenance_requests.category = ? THEN 1 END) AS plumbing_requests,
COUNT(CASE WHEN maintenance_requests.category = ? THEN 1 END) AS carpentry_requests,
COUNT(CASE WHEN maintenance_requests.category = ? THEN 1 END) AS cleaning_requests,
COUNT(CASE WHEN maintenance_requests.category = ? THEN 1 END) AS other_requests`,
			enums.MaintenanceStatusPending,
			enums.MaintenanceStatusInProgress,
			enums.MaintenanceStatusCompleted,
			enums.MaintenanceCategoryElectrical,
			enums.MaintenanceCategoryPlumbing,
			enums.MaintenanceCategoryCarpentry,
			enums.MaintenanceCategoryCleaning,
			enums.MaintenanceCategoryOther,
		).
		Where("maintenance_requests.created_at >= ?", since)
	if hostelID != uuid.Nil {
		query = query.
			Joins("JOIN rooms ON rooms.id = maintenance_requests.room_id").
			Where("rooms.hostel_id = ?", hostelID)
	}

	var stats Statistics
	if err := query.Scan(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// Update applies the provided column patch to a request row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.MaintenanceRequest{}).
		Where("id = ?", id).
		Updates(updates).Error
}
