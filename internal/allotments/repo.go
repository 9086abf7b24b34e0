package allotments

import (
	"context"
	"time"

	"github.com/campusworks/hosteldesk-backend/pkg/db/models"
	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an allotments repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindRoom(ctx context.Context, roomID uuid.UUID) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Where("id = ?", roomID).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// FindRoomForUpdate loads the room under a row lock so concurrent allocate
// and vacate calls against the same room serialize. SQLite has no FOR UPDATE;
// its single-writer model covers the tests.
func (r *repository) FindRoomForUpdate(ctx context.Context, roomID uuid.UUID) (*models.Room, error) {
	q := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var room models.Room
	if err := q.Where("id = ?", roomID).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *repository) UpdateRoomStatus(ctx context.Context, roomID uuid.UUID, status enums.RoomStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ?", roomID).
		Update("status", status).Error
}

func (r *repository) CountActiveByRoom(ctx context.Context, roomID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RoomAllotment{}).
		Where("room_id = ? AND status = ?", roomID, enums.AllotmentStatusActive).
		Count(&count).Error
	return count, err
}

func (r *repository) CountActiveByStudent(ctx context.Context, studentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RoomAllotment{}).
		Where("student_id = ? AND status = ?", studentID, enums.AllotmentStatusActive).
		Count(&count).Error
	return count, err
}

func (r *repository) CountLiveByStudent(ctx context.Context, studentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RoomAllotment{}).
		Where("student_id = ? AND status IN ?", studentID, []enums.AllotmentStatus{
			enums.AllotmentStatusPending,
			enums.AllotmentStatusActive,
		}).
		Count(&count).Error
	return count, err
}

func (r *repository) CreateAllotment(ctx context.Context, allotment *models.RoomAllotment) (*models.RoomAllotment, error) {
	if err := r.db.WithContext(ctx).Create(allotment).Error; err != nil {
		return nil, err
	}
	return allotment, nil
}

func (r *repository) FindAllotment(ctx context.Context, allotmentID uuid.UUID) (*models.RoomAllotment, error) {
	var allotment models.RoomAllotment
	err := r.db.WithContext(ctx).
		Where("id = ?", allotmentID).
		First(&allotment).Error
	if err != nil {
		return nil, err
	}
	return &allotment, nil
}

// ApproveAllotment flips a Pending allotment to Active with a status-guarded
// update. Concurrent double-approval matches zero rows for the loser, which
// surfaces as gorm.ErrRecordNotFound.
func (r *repository) ApproveAllotment(ctx context.Context, allotmentID uuid.UUID) (*models.RoomAllotment, error) {
	res := r.db.WithContext(ctx).
		Model(&models.RoomAllotment{}).
		Where("id = ? AND status = ?", allotmentID, enums.AllotmentStatusPending).
		Update("status", enums.AllotmentStatusActive)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindAllotment(ctx, allotmentID)
}

// VacateAllotment closes an Active allotment with a status-guarded update so
// a double-vacate race loses cleanly with gorm.ErrRecordNotFound.
func (r *repository) VacateAllotment(ctx context.Context, allotmentID uuid.UUID, vacatedAt time.Time) (*models.RoomAllotment, error) {
	res := r.db.WithContext(ctx).
		Model(&models.RoomAllotment{}).
		Where("id = ? AND status = ?", allotmentID, enums.AllotmentStatusActive).
		Updates(map[string]any{
			"status":       enums.AllotmentStatusVacated,
			"vacated_date": vacatedAt,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindAllotment(ctx, allotmentID)
}

func (r *repository) FindActiveByStudent(ctx context.Context, studentID uuid.UUID) (*models.RoomAllotment, error) {
	var allotment models.RoomAllotment
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND status = ?", studentID, enums.AllotmentStatusActive).
		First(&allotment).Error
	if err != nil {
		return nil, err
	}
	return &allotment, nil
}

func (r *repository) FindActiveByHostel(ctx context.Context, hostelID uuid.UUID) ([]models.RoomAllotment, error) {
	var list []models.RoomAllotment
	err := r.db.WithContext(ctx).
		Joins("JOIN rooms ON rooms.id = room_allotments.room_id").
		Where("rooms.hostel_id = ? AND room_allotments.status = ?", hostelID, enums.AllotmentStatusActive).
		Order("room_allotments.allotment_date ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) FindHistoryByStudent(ctx context.Context, studentID uuid.UUID) ([]models.RoomAllotment, error) {
	var list []models.RoomAllotment
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("allotment_date DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) FindPending(ctx context.Context) ([]models.RoomAllotment, error) {
	var list []models.RoomAllotment
	err := r.db.WithContext(ctx).
		Where("status = ?", enums.AllotmentStatusPending).
		Order("created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) OccupancyReport(ctx context.Context) ([]OccupancyReportRow, error) {
	var rows []OccupancyReportRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT h.id AS hostel_id,
			h.name AS hostel_name,
			COUNT(r.id) AS total_rooms,
			COALESCE(SUM(CASE WHEN r.status = 'Vacant' THEN 1 ELSE 0 END), 0) AS vacant_rooms,
			COALESCE(SUM(CASE WHEN r.status = 'Occupied' THEN 1 ELSE 0 END), 0) AS occupied_rooms,
			COALESCE(SUM(CASE WHEN r.status = 'Under Maintenance' THEN 1 ELSE 0 END), 0) AS maintenance_rooms,
			COALESCE(SUM(r.capacity), 0) AS total_capacity,
			COALESCE((
				SELECT COUNT(*)
				FROM room_allotments a
				JOIN rooms ar ON ar.id = a.room_id
				WHERE ar.hostel_id = h.id AND a.status = 'Active'
			), 0) AS active_students
		FROM hostels h
		LEFT JOIN rooms r ON r.hostel_id = h.id
		GROUP BY h.id, h.name
		ORDER BY h.name ASC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
