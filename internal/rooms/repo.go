package rooms

import (
	"context"
	"strings"

	"github.com/campusworks/hosteldesk-backend/pkg/db/models"
	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const roomSummarySelect = `rooms.id, rooms.hostel_id, rooms.room_no, rooms.capacity, rooms.status,
hostels.name AS hostel_name, hostels.hostel_type,
COUNT(room_allotments.id) AS current_occupants,
rooms.capacity - COUNT(room_allotments.id) AS available_spots`

const roomSummaryGroup = "rooms.id, rooms.hostel_id, rooms.room_no, rooms.capacity, rooms.status, hostels.name, hostels.hostel_type"

// Repository exposes room persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a rooms repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new room and returns the persisted model.
func (r *Repository) Create(ctx context.Context, room *models.Room) (*models.Room, error) {
	if err := r.db.WithContext(ctx).Create(room).Error; err != nil {
		return nil, err
	}
	return room, nil
}

// FindByID loads a room by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// FindByHostelAndNumber retrieves a room by its number within a hostel.
func (r *Repository) FindByHostelAndNumber(ctx context.Context, hostelID uuid.UUID, roomNo string) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Where("hostel_id = ? AND room_no = ?", hostelID, roomNo).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ListByHostel returns all rooms in a hostel ordered by room number.
func (r *Repository) ListByHostel(ctx context.Context, hostelID uuid.UUID) ([]models.Room, error) {
	var list []models.Room
	err := r.db.WithContext(ctx).
		Where("hostel_id = ?", hostelID).
		Order("room_no ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListByStatus returns rooms in a hostel filtered by status.
func (r *Repository) ListByStatus(ctx context.Context, hostelID uuid.UUID, status enums.RoomStatus) ([]models.Room, error) {
	var list []models.Room
	err := r.db.WithContext(ctx).
		Where("hostel_id = ? AND status = ?", hostelID, status).
		Order("room_no ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *Repository) summaryQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("rooms").
		Select(roomSummarySelect).
		Joins("JOIN hostels ON hostels.id = rooms.hostel_id").
		Joins("LEFT JOIN room_allotments ON room_allotments.room_id = rooms.id AND room_allotments.status = ?", enums.AllotmentStatusActive)
}

// Search returns rooms joined with hostel info and live occupancy counts,
// filtered by hostel, status, hostel type, and room number substring.
func (r *Repository) Search(ctx context.Context, filters SearchFilters) ([]RoomSummary, error) {
	query := r.summaryQuery(ctx)
	if filters.HostelID != uuid.Nil {
		query = query.Where("rooms.hostel_id = ?", filters.HostelID)
	}
	if filters.Status != "" {
		query = query.Where("rooms.status = ?", filters.Status)
	}
	if filters.HostelType != "" {
		query = query.Where("hostels.hostel_type = ?", filters.HostelType)
	}
	if filters.RoomNo != "" {
		query = query.Where("LOWER(rooms.room_no) LIKE ?", "%"+strings.ToLower(filters.RoomNo)+"%")
	}

	var list []RoomSummary
	err := query.
		Group(roomSummaryGroup).
		Order("hostels.name ASC, rooms.room_no ASC").
		Scan(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// FindAvailable returns vacant rooms that still have headroom, optionally
// narrowed to one hostel type.
func (r *Repository) FindAvailable(ctx context.Context, hostelType enums.HostelType) ([]RoomSummary, error) {
	query := r.summaryQuery(ctx).Where("rooms.status = ?", enums.RoomStatusVacant)
	if hostelType != "" {
		query = query.Where("hostels.hostel_type = ?", hostelType)
	}

	var list []RoomSummary
	err := query.
		Group(roomSummaryGroup).
		Having("COUNT(room_allotments.id) < rooms.capacity").
		Order("hostels.name ASC, rooms.room_no ASC").
		Scan(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// FindWithOccupants loads one room summary together with its active residents.
func (r *Repository) FindWithOccupants(ctx context.Context, roomID uuid.UUID) (*RoomOccupancy, error) {
	var summary RoomSummary
	err := r.summaryQuery(ctx).
		Where("rooms.id = ?", roomID).
		Group(roomSummaryGroup).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	if summary.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	var occupants []RoomOccupant
	err = r.db.WithContext(ctx).
		Table("room_allotments").
		Select(`students.id AS student_id, students.name, students.reg_no,
students.department, students.year_of_study, room_allotments.allotment_date`).
		Joins("JOIN students ON students.id = room_allotments.student_id").
		Where("room_allotments.room_id = ? AND room_allotments.status = ?", roomID, enums.AllotmentStatusActive).
		Order("students.name ASC").
		Scan(&occupants).Error
	if err != nil {
		return nil, err
	}
	return &RoomOccupancy{RoomSummary: summary, Occupants: occupants}, nil
}

// Update applies the provided column patch to a room row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// UpdateStatus sets the room status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.RoomStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ?", id).
		Update("status", status).Error
}
