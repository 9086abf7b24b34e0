package allotments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campusworks/hosteldesk-backend/pkg/db"
	"github.com/campusworks/hosteldesk-backend/pkg/db/models"
	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	pkgerrors "github.com/campusworks/hosteldesk-backend/pkg/errors"
	"github.com/campusworks/hosteldesk-backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const activeStudentConstraint = "uq_room_allotments_active_student"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// studentNotifier pushes allotment lifecycle events to the affected student.
type studentNotifier interface {
	NotifyStudent(ctx context.Context, studentID uuid.UUID, title, message string)
}

// Service owns the allotment lifecycle: apply, allocate, approve, vacate,
// plus the read helpers consumed by reporting endpoints.
type Service interface {
	Allocate(ctx context.Context, input AllocateInput) (*models.RoomAllotment, error)
	Apply(ctx context.Context, input ApplyInput) (*models.RoomAllotment, error)
	ApprovePending(ctx context.Context, allotmentID uuid.UUID) (*models.RoomAllotment, error)
	Vacate(ctx context.Context, input VacateInput) (*models.RoomAllotment, error)
	RecomputeRoomStatus(ctx context.Context, roomID uuid.UUID) (enums.RoomStatus, error)
	FindActiveByStudent(ctx context.Context, studentID uuid.UUID) (*models.RoomAllotment, error)
	FindActiveByHostel(ctx context.Context, hostelID uuid.UUID) ([]models.RoomAllotment, error)
	FindHistoryByStudent(ctx context.Context, studentID uuid.UUID) ([]models.RoomAllotment, error)
	FindPending(ctx context.Context) ([]models.RoomAllotment, error)
	GetOccupancyReport(ctx context.Context) ([]OccupancyReportRow, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	metrics *metrics.AllotmentMetrics
	notify  studentNotifier
	now     func() time.Time
}

// NewService builds an allotment service with the required dependencies.
// Metrics and the notifier may be nil.
func NewService(repo Repository, tx txRunner, m *metrics.AllotmentMetrics, notify studentNotifier) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("allotments repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:    repo,
		tx:      tx,
		metrics: m,
		notify:  notify,
		now:     time.Now,
	}, nil
}

func (s *service) notifyStudent(ctx context.Context, studentID uuid.UUID, title, message string) {
	if s.notify == nil {
		return
	}
	s.notify.NotifyStudent(ctx, studentID, title, message)
}

// Allocate places a student into a room as an Active allotment. The capacity
// check, the one-active-allotment-per-student check, the insert, and the room
// status flip run in one transaction under a room row lock. The partial unique
// index on (student_id) WHERE status='Active' backstops the student check.
func (s *service) Allocate(ctx context.Context, input AllocateInput) (*models.RoomAllotment, error) {
	if input.StudentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "student id required")
	}
	if input.RoomID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "room id required")
	}

	var created *models.RoomAllotment
	var hostelID uuid.UUID
	var roomNo string
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		room, err := repo.FindRoomForUpdate(ctx, input.RoomID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "room not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load room")
		}
		hostelID = room.HostelID
		roomNo = room.RoomNo

		if room.Status == enums.RoomStatusUnderMaintenance {
			s.metrics.IncConflict("room unavailable")
			return pkgerrors.New(pkgerrors.CodeConflict, "room unavailable")
		}

		active, err := repo.CountActiveByRoom(ctx, room.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count room occupants")
		}
		if active >= int64(room.Capacity) {
			s.metrics.IncConflict("room full")
			return pkgerrors.New(pkgerrors.CodeConflict, "room full")
		}

		studentActive, err := repo.CountActiveByStudent(ctx, input.StudentID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count student allotments")
		}
		if studentActive > 0 {
			s.metrics.IncConflict("student already allocated")
			return pkgerrors.New(pkgerrors.CodeConflict, "student already allocated")
		}

		allotment := &models.RoomAllotment{
			ID:            uuid.New(),
			StudentID:     input.StudentID,
			RoomID:        room.ID,
			Status:        enums.AllotmentStatusActive,
			AllotmentDate: s.now(),
		}
		created, err = repo.CreateAllotment(ctx, allotment)
		if err != nil {
			if db.IsUniqueViolation(err, activeStudentConstraint) {
				s.metrics.IncConflict("student already allocated")
				return pkgerrors.New(pkgerrors.CodeConflict, "student already allocated")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create allotment")
		}

		if active+1 >= int64(room.Capacity) {
			if err := repo.UpdateRoomStatus(ctx, room.ID, enums.RoomStatusOccupied); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update room status")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncAllocated(hostelID.String())
	s.notifyStudent(ctx, created.StudentID, "Room allocated",
		fmt.Sprintf("You have been allocated room %s.", roomNo))
	return created, nil
}

// Apply records a student-initiated application as a Pending allotment.
// A student with a Pending or Active allotment cannot apply again.
func (s *service) Apply(ctx context.Context, input ApplyInput) (*models.RoomAllotment, error) {
	if input.StudentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "student id required")
	}
	if input.RoomID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "room id required")
	}

	var created *models.RoomAllotment
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		room, err := repo.FindRoom(ctx, input.RoomID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "room not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load room")
		}
		if room.Status == enums.RoomStatusUnderMaintenance {
			return pkgerrors.New(pkgerrors.CodeConflict, "room unavailable")
		}

		live, err := repo.CountLiveByStudent(ctx, input.StudentID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count student allotments")
		}
		if live > 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "student already has a pending or active allotment")
		}

		allotment := &models.RoomAllotment{
			ID:            uuid.New(),
			StudentID:     input.StudentID,
			RoomID:        room.ID,
			Status:        enums.AllotmentStatusPending,
			AllotmentDate: s.now(),
		}
		created, err = repo.CreateAllotment(ctx, allotment)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create allotment")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ApprovePending activates a Pending allotment via a status-guarded update.
// The loser of a concurrent double-approval gets NotFound. Capacity and
// student uniqueness are not re-checked here; Apply validated them when the
// Pending row was created.
func (s *service) ApprovePending(ctx context.Context, allotmentID uuid.UUID) (*models.RoomAllotment, error) {
	if allotmentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "allotment id required")
	}

	var approved *models.RoomAllotment
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		updated, err := repo.ApproveAllotment(ctx, allotmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "pending allotment not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "approve allotment")
		}
		approved = updated

		if _, err := s.recomputeLocked(ctx, repo, updated.RoomID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyStudent(ctx, approved.StudentID, "Application approved",
		"Your room application has been approved.")
	return approved, nil
}

// Vacate closes an Active allotment and reverts the room to Vacant only when
// the last occupant leaves. A room that drops below capacity but still has
// occupants keeps its current status.
func (s *service) Vacate(ctx context.Context, input VacateInput) (*models.RoomAllotment, error) {
	if input.AllotmentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "allotment id required")
	}

	var vacated *models.RoomAllotment
	var hostelID uuid.UUID
	var roomNo string
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		allotment, err := repo.FindAllotment(ctx, input.AllotmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "active allotment not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load allotment")
		}
		if allotment.Status != enums.AllotmentStatusActive {
			return pkgerrors.New(pkgerrors.CodeNotFound, "active allotment not found")
		}

		// Lock the room before the allotment write so vacate and allocate
		// take locks in the same order.
		room, err := repo.FindRoomForUpdate(ctx, allotment.RoomID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load room")
		}
		hostelID = room.HostelID
		roomNo = room.RoomNo

		vacatedAt := s.now()
		if input.VacatedDate != nil {
			vacatedAt = *input.VacatedDate
		}
		updated, err := repo.VacateAllotment(ctx, allotment.ID, vacatedAt)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "active allotment not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "vacate allotment")
		}
		vacated = updated

		remaining, err := repo.CountActiveByRoom(ctx, room.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count room occupants")
		}
		if remaining == 0 && room.Status != enums.RoomStatusUnderMaintenance {
			if err := repo.UpdateRoomStatus(ctx, room.ID, enums.RoomStatusVacant); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update room status")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncVacated(hostelID.String())
	s.notifyStudent(ctx, vacated.StudentID, "Allotment vacated",
		fmt.Sprintf("Your allotment for room %s has been vacated.", roomNo))
	return vacated, nil
}

// RecomputeRoomStatus is an idempotent repair operation: occupants at or above
// capacity mean Occupied, anything below means Vacant. Under Maintenance is
// never overwritten.
func (s *service) RecomputeRoomStatus(ctx context.Context, roomID uuid.UUID) (enums.RoomStatus, error) {
	if roomID == uuid.Nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "room id required")
	}

	var status enums.RoomStatus
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		recomputed, err := s.recomputeLocked(ctx, repo, roomID)
		if err != nil {
			return err
		}
		status = recomputed
		return nil
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

func (s *service) recomputeLocked(ctx context.Context, repo Repository, roomID uuid.UUID) (enums.RoomStatus, error) {
	room, err := repo.FindRoomForUpdate(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.New(pkgerrors.CodeNotFound, "room not found")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load room")
	}
	if room.Status == enums.RoomStatusUnderMaintenance {
		return room.Status, nil
	}

	active, err := repo.CountActiveByRoom(ctx, room.ID)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count room occupants")
	}

	target := enums.RoomStatusVacant
	if active >= int64(room.Capacity) && room.Capacity > 0 {
		target = enums.RoomStatusOccupied
	}
	if target == room.Status {
		return target, nil
	}
	if err := repo.UpdateRoomStatus(ctx, room.ID, target); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update room status")
	}
	return target, nil
}

func (s *service) FindActiveByStudent(ctx context.Context, studentID uuid.UUID) (*models.RoomAllotment, error) {
	if studentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "student id required")
	}
	allotment, err := s.repo.FindActiveByStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "active allotment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active allotment")
	}
	return allotment, nil
}

func (s *service) FindActiveByHostel(ctx context.Context, hostelID uuid.UUID) ([]models.RoomAllotment, error) {
	if hostelID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hostel id required")
	}
	list, err := s.repo.FindActiveByHostel(ctx, hostelID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list hostel allotments")
	}
	return list, nil
}

func (s *service) FindHistoryByStudent(ctx context.Context, studentID uuid.UUID) ([]models.RoomAllotment, error) {
	if studentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "student id required")
	}
	list, err := s.repo.FindHistoryByStudent(ctx, studentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list allotment history")
	}
	return list, nil
}

func (s *service) FindPending(ctx context.Context) ([]models.RoomAllotment, error) {
	list, err := s.repo.FindPending(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pending allotments")
	}
	return list, nil
}

// GetOccupancyReport aggregates per-hostel room counts and computes the
// occupancy percentage with two-decimal rounding. Zero total capacity reports
// zero percent.
func (s *service) GetOccupancyReport(ctx context.Context) ([]OccupancyReportRow, error) {
	rows, err := s.repo.OccupancyReport(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build occupancy report")
	}

	for i := range rows {
		rows[i].OccupancyPercent = occupancyPercent(rows[i].ActiveStudents, rows[i].TotalCapacity)
		s.metrics.SetOccupancy(rows[i].HostelName, rows[i].OccupancyPercent)
	}
	return rows, nil
}

func occupancyPercent(active, capacity int) float64 {
	if capacity <= 0 {
		return 0
	}
	pct := decimal.NewFromInt(int64(active)).
		Div(decimal.NewFromInt(int64(capacity))).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	result, _ := pct.Float64()
	return result
}
