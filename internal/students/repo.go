package students

import (
	"context"
	"strings"

	"github.com/campusworks/hosteldesk-backend/pkg/db/models"
	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes student profile persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a students repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new student profile and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateStudentDTO) (*models.Student, error) {
	student := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(student).Error; err != nil {
		return nil, err
	}
	return student, nil
}

// FindByID loads a student by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByUserID resolves a login account to its student profile.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByRegNo retrieves the student with the given registration number.
func (r *Repository) FindByRegNo(ctx context.Context, regNo string) (*models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("reg_no = ?", regNo).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// List returns all students ordered by registration number.
func (r *Repository) List(ctx context.Context) ([]models.Student, error) {
	var list []models.Student
	err := r.db.WithContext(ctx).
		Order("reg_no ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Search returns students matching the filters, ordered by registration
// number.
func (r *Repository) Search(ctx context.Context, filters SearchFilters) ([]models.Student, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{})
	if filters.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filters.Name)+"%")
	}
	if filters.RegNo != "" {
		query = query.Where("LOWER(reg_no) LIKE ?", "%"+strings.ToLower(filters.RegNo)+"%")
	}
	if filters.Department != "" {
		query = query.Where("department = ?", filters.Department)
	}
	if filters.YearOfStudy != 0 {
		query = query.Where("year_of_study = ?", filters.YearOfStudy)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}

	var list []models.Student
	if err := query.Order("reg_no ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// FindEligibleForAllocation lists students without an Active allotment in
// allocation priority order: category, KEAM rank ascending, SGPA descending.
func (r *Repository) FindEligibleForAllocation(ctx context.Context) ([]models.Student, error) {
	var list []models.Student
	err := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Joins("LEFT JOIN room_allotments ON room_allotments.student_id = students.id AND room_allotments.status = ?", enums.AllotmentStatusActive).
		Where("room_allotments.id IS NULL").
		Order("students.category ASC, students.keam_rank ASC, students.sgpa DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// FindWithCurrentRoom returns every actively housed student with their room
// and hostel, ordered by hostel then room number.
func (r *Repository) FindWithCurrentRoom(ctx context.Context) ([]StudentRoomRow, error) {
	var rows []StudentRoomRow
	err := r.db.WithContext(ctx).
		Table("students").
		Select(`students.id AS student_id, students.name, students.reg_no,
students.department, students.year_of_study,
room_allotments.id AS allotment_id, room_allotments.allotment_date,
rooms.room_no, hostels.name AS hostel_name`).
		Joins("JOIN room_allotments ON room_allotments.student_id = students.id AND room_allotments.status = ?", enums.AllotmentStatusActive).
		Joins("JOIN rooms ON rooms.id = room_allotments.room_id").
		Joins("JOIN hostels ON hostels.id = rooms.hostel_id").
		Order("hostels.name ASC, rooms.room_no ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Update applies the provided column patch to a student row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("id = ?", id).
		Updates(updates).Error
}
