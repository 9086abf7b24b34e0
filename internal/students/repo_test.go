package students

import (
	"context"
	"testing"
	"time"

	"github.com/campusworks/hosteldesk-backend/pkg/db/models"
	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStudentsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS students (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  name TEXT NOT NULL,
  reg_no TEXT NOT NULL,
  department TEXT NOT NULL,
  year_of_study INTEGER NOT NULL,
  category TEXT,
  keam_rank INTEGER,
  sgpa REAL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS hostels (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  hostel_type TEXT NOT NULL,
  location TEXT,
  warden_id TEXT,
  total_rooms INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS rooms (
  id TEXT PRIMARY KEY,
  hostel_id TEXT NOT NULL,
  room_no TEXT NOT NULL,
  capacity INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'Vacant',
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS room_allotments (
  id TEXT PRIMARY KEY,
  student_id TEXT NOT NULL,
  room_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'Pending',
  allotment_date DATETIME NOT NULL,
  vacated_date DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

type studentSeed struct {
	name     string
	regNo    string
	category string
	keamRank int
	sgpa     float64
}

func seedRankedStudent(t *testing.T, db *gorm.DB, seed studentSeed) *models.Student {
	t.Helper()

	rank := seed.keamRank
	sgpa := seed.sgpa
	student := &models.Student{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Name:        seed.name,
		RegNo:       seed.regNo,
		Department:  "CSE",
		YearOfStudy: 2,
		Category:    seed.category,
		KEAMRank:    &rank,
		SGPA:        &sgpa,
	}
	require.NoError(t, db.Create(student).Error)
	return student
}

func houseStudent(t *testing.T, db *gorm.DB, student *models.Student, hostelName, roomNo string) {
	t.Helper()

	hostel := &models.Hostel{ID: uuid.New(), Name: hostelName, HostelType: enums.HostelTypeBoys}
	require.NoError(t, db.Create(hostel).Error)
	room := &models.Room{ID: uuid.New(), HostelID: hostel.ID, RoomNo: roomNo, Capacity: 2, Status: enums.RoomStatusOccupied}
	require.NoError(t, db.Create(room).Error)
	require.NoError(t, db.Create(&models.RoomAllotment{
		ID:            uuid.New(),
		StudentID:     student.ID,
		RoomID:        room.ID,
		Status:        enums.AllotmentStatusActive,
		AllotmentDate: time.Now().UTC(),
	}).Error)
}

func TestRepositorySearchMatching(t *testing.T) {
	db := setupStudentsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	match := seedRankedStudent(t, db, studentSeed{name: "Lakshmi Warrier", regNo: "KTU2024501", category: "General", keamRank: 120, sgpa: 8.1})
	seedRankedStudent(t, db, studentSeed{name: "Devika Suresh", regNo: "KTU2024502", category: "General", keamRank: 340, sgpa: 7.4})

	// Name match is case insensitive and substring based.
	found, err := repo.Search(ctx, SearchFilters{Name: "lakshmi"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, match.ID, found[0].ID)

	byReg, err := repo.Search(ctx, SearchFilters{RegNo: "2024502"})
	require.NoError(t, err)
	require.Len(t, byReg, 1)
	assert.Equal(t, "Devika Suresh", byReg[0].Name)

	nothing, err := repo.Search(ctx, SearchFilters{Name: "lakshmi", Category: "SC"})
	require.NoError(t, err)
	assert.Empty(t, nothing)
}

func TestRepositoryFindEligibleForAllocation(t *testing.T) {
	db := setupStudentsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	housed := seedRankedStudent(t, db, studentSeed{name: "Housed Already", regNo: "KTU2024601", category: "General", keamRank: 10, sgpa: 9.5})
	houseStudent(t, db, housed, "Eligible Test Hostel", "E-101")

	sameRankLowSGPA := seedRankedStudent(t, db, studentSeed{name: "Tied Rank Low", regNo: "KTU2024602", category: "General", keamRank: 200, sgpa: 7.0})
	sameRankHighSGPA := seedRankedStudent(t, db, studentSeed{name: "Tied Rank High", regNo: "KTU2024603", category: "General", keamRank: 200, sgpa: 9.0})
	betterRank := seedRankedStudent(t, db, studentSeed{name: "Better Rank", regNo: "KTU2024604", category: "General", keamRank: 50, sgpa: 6.0})

	eligible, err := repo.FindEligibleForAllocation(ctx)
	require.NoError(t, err)

	mine := make([]models.Student, 0, 3)
	wanted := map[uuid.UUID]bool{sameRankLowSGPA.ID: true, sameRankHighSGPA.ID: true, betterRank.ID: true, housed.ID: true}
	for _, student := range eligible {
		if wanted[student.ID] {
			mine = append(mine, student)
		}
	}

	// The housed student is excluded; the rest come back by KEAM rank with
	// SGPA breaking the tie.
	require.Len(t, mine, 3)
	assert.Equal(t, betterRank.ID, mine[0].ID)
	assert.Equal(t, sameRankHighSGPA.ID, mine[1].ID)
	assert.Equal(t, sameRankLowSGPA.ID, mine[2].ID)
}

func TestRepositoryFindWithCurrentRoom(t *testing.T) {
	db := setupStudentsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	housed := seedRankedStudent(t, db, studentSeed{name: "Roomed Resident", regNo: "KTU2024701", category: "General", keamRank: 80, sgpa: 8.8})
	houseStudent(t, db, housed, "With Room Hostel", "F-201")
	seedRankedStudent(t, db, studentSeed{name: "Waitlisted", regNo: "KTU2024702", category: "General", keamRank: 90, sgpa: 8.0})

	rows, err := repo.FindWithCurrentRoom(ctx)
	require.NoError(t, err)

	var mine *StudentRoomRow
	for i := range rows {
		if rows[i].StudentID == housed.ID {
			mine = &rows[i]
		}
		if rows[i].Name == "Waitlisted" {
			t.Fatal("student without a room listed as housed")
		}
	}
	require.NotNil(t, mine)
	assert.Equal(t, "F-201", mine.RoomNo)
	assert.Equal(t, "With Room Hostel", mine.HostelName)
	assert.NotEqual(t, uuid.Nil, mine.AllotmentID)
}
