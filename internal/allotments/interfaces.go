package allotments

import (
	"context"
	"time"

	"github.com/campusworks/hosteldesk-backend/pkg/db/models"
	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for rooms and allotments.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindRoom(ctx context.Context, roomID uuid.UUID) (*models.Room, error)
	FindRoomForUpdate(ctx context.Context, roomID uuid.UUID) (*models.Room, error)
	UpdateRoomStatus(ctx context.Context, roomID uuid.UUID, status enums.RoomStatus) error
	CountActiveByRoom(ctx context.Context, roomID uuid.UUID) (int64, error)
	CountActiveByStudent(ctx context.Context, studentID uuid.UUID) (int64, error)
	CountLiveByStudent(ctx context.Context, studentID uuid.UUID) (int64, error)
	CreateAllotment(ctx context.Context, allotment *models.RoomAllotment) (*models.RoomAllotment, error)
	FindAllotment(ctx context.Context, allotmentID uuid.UUID) (*models.RoomAllotment, error)
	ApproveAllotment(ctx context.Context, allotmentID uuid.UUID) (*models.RoomAllotment, error)
	VacateAllotment(ctx context.Context, allotmentID uuid.UUID, vacatedAt time.Time) (*models.RoomAllotment, error)
	FindActiveByStudent(ctx context.Context, studentID uuid.UUID) (*models.RoomAllotment, error)
	FindActiveByHostel(ctx context.Context, hostelID uuid.UUID) ([]models.RoomAllotment, error)
	FindHistoryByStudent(ctx context.Context, studentID uuid.UUID) ([]models.RoomAllotment, error)
	FindPending(ctx context.Context) ([]models.RoomAllotment, error)
	OccupancyReport(ctx context.Context) ([]OccupancyReportRow, error)
}
