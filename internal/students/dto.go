package students

import (
	"time"

	"github.com/campusworks/hosteldesk-backend/pkg/db/models"
	"github.com/google/uuid"
)

// CreateStudentDTO carries the academic profile created alongside a
// Student-role user account.
type CreateStudentDTO struct {
	UserID      uuid.UUID
	Name        string
	RegNo       string
	Department  string
	YearOfStudy int
	Category    string
	KEAMRank    *int
	SGPA        *float64
}

// ToModel converts the DTO into a persisted student model.
func (d CreateStudentDTO) ToModel() *models.Student {
	return &models.Student{
		ID:          uuid.New(),
		UserID:      d.UserID,
		Name:        d.Name,
		RegNo:       d.RegNo,
		Department:  d.Department,
		YearOfStudy: d.YearOfStudy,
		Category:    d.Category,
		KEAMRank:    d.KEAMRank,
		SGPA:        d.SGPA,
	}
}

// UpdateStudentInput lists the mutable profile fields. Nil means unchanged.
type UpdateStudentInput struct {
	Name        *string
	Department  *string
	YearOfStudy *int
	Category    *string
	KEAMRank    *int
	SGPA        *float64
}

// SearchFilters narrows the student directory. Zero values mean no filter;
// Name and RegNo match case-insensitively as substrings.
type SearchFilters struct {
	Name        string
	RegNo       string
	Department  string
	YearOfStudy int
	Category    string
}

// StudentRoomRow is an actively housed student joined with their room and
// hostel.
type StudentRoomRow struct {
	StudentID     uuid.UUID `gorm:"column:student_id"`
	Name          string    `gorm:"column:name"`
	RegNo         string    `gorm:"column:reg_no"`
	Department    string    `gorm:"column:department"`
	YearOfStudy   int       `gorm:"column:year_of_study"`
	AllotmentID   uuid.UUID `gorm:"column:allotment_id"`
	AllotmentDate time.Time `gorm:"column:allotment_date"`
	RoomNo        string    `gorm:"column:room_no"`
	HostelName    string    `gorm:"column:hostel_name"`
}
