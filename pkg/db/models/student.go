package models

import (
	"time"

	"github.com/google/uuid"
)

// Student is the academic profile behind a Student-role user account.
type Student struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Name        string    `gorm:"column:name;not null"`
	RegNo       string    `gorm:"column:reg_no;not null;uniqueIndex"`
	Department  string    `gorm:"column:department;not null"`
	YearOfStudy int       `gorm:"column:year_of_study;not null"`
	Category    string    `gorm:"column:category"`
	KEAMRank    *int      `gorm:"column:keam_rank"`
	SGPA        *float64  `gorm:"column:sgpa"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
