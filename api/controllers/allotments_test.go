package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/campusworks/hosteldesk-backend/api/middleware"
	"github.com/campusworks/hosteldesk-backend/internal/allotments"
	"github.com/campusworks/hosteldesk-backend/pkg/db/models"
	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	pkgerrors "github.com/campusworks/hosteldesk-backend/pkg/errors"
)

type testAllotmentsService struct {
	allocateFn  func(ctx context.Context, input allotments.AllocateInput) (*models.RoomAllotment, error)
	applyFn     func(ctx context.Context, input allotments.ApplyInput) (*models.RoomAllotment, error)
	approveFn   func(ctx context.Context, allotmentID uuid.UUID) (*models.RoomAllotment, error)
	vacateFn    func(ctx context.Context, input allotments.VacateInput) (*models.RoomAllotment, error)
	recomputeFn func(ctx context.Context, roomID uuid.UUID) (enums.RoomStatus, error)
	reportFn    func(ctx context.Context) ([]allotments.OccupancyReportRow, error)
}

func (s *testAllotmentsService) Allocate(ctx context.Context, input allotments.AllocateInput) (*models.RoomAllotment, error) {
	if s.allocateFn != nil {
		return s.allocateFn(ctx, input)
	}
	return &models.RoomAllotment{}, nil
}

func (s *testAllotmentsService) Apply(ctx context.Context, input allotments.ApplyInput) (*models.RoomAllotment, error) {
	if s.applyFn != nil {
		return s.applyFn(ctx, input)
	}
	return &models.RoomAllotment{}, nil
}

func (s *testAllotmentsService) ApprovePending(ctx context.Context, allotmentID uuid.UUID) (*models.RoomAllotment, error) {
	if s.approveFn != nil {
		return s.approveFn(ctx, allotmentID)
	}
	return &models.RoomAllotment{ID: allotmentID}, nil
}

func (s *testAllotmentsService) Vacate(ctx context.Context, input allotments.VacateInput) (*models.RoomAllotment, error) {
	if s.vacateFn != nil {
		return s.vacateFn(ctx, input)
	}
	return &models.RoomAllotment{}, nil
}

func (s *testAllotmentsService) RecomputeRoomStatus(ctx context.Context, roomID uuid.UUID) (enums.RoomStatus, error) {
	if s.recomputeFn != nil {
		return s.recomputeFn(ctx, roomID)
	}
	return enums.RoomStatusVacant, nil
}

func (s *testAllotmentsService) FindActiveByStudent(ctx context.Context, studentID uuid.UUID) (*models.RoomAllotment, error) {
	return &models.RoomAllotment{StudentID: studentID}, nil
}

func (s *testAllotmentsService) FindActiveByHostel(ctx context.Context, hostelID uuid.UUID) ([]models.RoomAllotment, error) {
	return []models.RoomAllotment{}, nil
}

func (s *testAllotmentsService) FindHistoryByStudent(ctx context.Context, studentID uuid.UUID) ([]models.RoomAllotment, error) {
	return []models.RoomAllotment{}, nil
}

func (s *testAllotmentsService) FindPending(ctx context.Context) ([]models.RoomAllotment, error) {
	return []models.RoomAllotment{}, nil
}

func (s *testAllotmentsService) GetOccupancyReport(ctx context.Context) ([]allotments.OccupancyReportRow, error) {
	if s.reportFn != nil {
		return s.reportFn(ctx)
	}
	return []allotments.OccupancyReportRow{}, nil
}

func TestAllotmentAllocateSuccess(t *testing.T) {
	studentID := uuid.New()
	roomID := uuid.New()
	var captured allotments.AllocateInput
	svc := &testAllotmentsService{
		allocateFn: func(ctx context.Context, input allotments.AllocateInput) (*models.RoomAllotment, error) {
			captured = input
			return &models.RoomAllotment{ID: uuid.New(), StudentID: input.StudentID, RoomID: input.RoomID}, nil
		},
	}

	body := `{"student_id":"` + studentID.String() + `","room_id":"` + roomID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/warden/allotments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler := AllotmentAllocate(svc, testLogger())
	handler(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if captured.StudentID != studentID || captured.RoomID != roomID {
		t.Fatalf("input not forwarded: %+v", captured)
	}
}

func TestAllotmentAllocateConflictPropagates(t *testing.T) {
	svc := &testAllotmentsService{
		allocateFn: func(ctx context.Context, input allotments.AllocateInput) (*models.RoomAllotment, error) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "room full")
		},
	}

	body := `{"student_id":"` + uuid.NewString() + `","room_id":"` + uuid.NewString() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/warden/allotments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler := AllotmentAllocate(svc, testLogger())
	handler(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Error.Message != "room full" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
}

func TestAllotmentApplyUsesStudentContext(t *testing.T) {
	studentID := uuid.New()
	roomID := uuid.New()
	var captured allotments.ApplyInput
	svc := &testAllotmentsService{
		applyFn: func(ctx context.Context, input allotments.ApplyInput) (*models.RoomAllotment, error) {
			captured = input
			return &models.RoomAllotment{}, nil
		},
	}

	body := `{"room_id":"` + roomID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/student/allotments/apply", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithStudentID(req.Context(), studentID.String()))
	resp := httptest.NewRecorder()
	handler := AllotmentApply(svc, testLogger())
	handler(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if captured.StudentID != studentID || captured.RoomID != roomID {
		t.Fatalf("input not forwarded: %+v", captured)
	}
}

func TestAllotmentApplyMissingStudentContext(t *testing.T) {
	body := `{"room_id":"` + uuid.NewString() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/student/allotments/apply", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler := AllotmentApply(&testAllotmentsService{}, testLogger())
	handler(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestAllotmentApproveInvalidID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/warden/allotments/nope/approve", nil)
	req = addRouteParam(req, "allotmentId", "nope")
	resp := httptest.NewRecorder()
	handler := AllotmentApprove(&testAllotmentsService{}, testLogger())
	handler(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAllotmentVacateForwardsDate(t *testing.T) {
	allotmentID := uuid.New()
	vacated := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	var captured allotments.VacateInput
	svc := &testAllotmentsService{
		vacateFn: func(ctx context.Context, input allotments.VacateInput) (*models.RoomAllotment, error) {
			captured = input
			return &models.RoomAllotment{ID: input.AllotmentID}, nil
		},
	}

	body := `{"vacated_date":"2026-03-15T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/warden/allotments/"+allotmentID.String()+"/vacate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = addRouteParam(req, "allotmentId", allotmentID.String())
	resp := httptest.NewRecorder()
	handler := AllotmentVacate(svc, testLogger())
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if captured.AllotmentID != allotmentID {
		t.Fatalf("unexpected allotment %s", captured.AllotmentID)
	}
	if captured.VacatedDate == nil || !captured.VacatedDate.Equal(vacated) {
		t.Fatalf("unexpected vacated date %v", captured.VacatedDate)
	}
}

func TestRoomRecomputeReturnsStatus(t *testing.T) {
	roomID := uuid.New()
	svc := &testAllotmentsService{
		recomputeFn: func(ctx context.Context, id uuid.UUID) (enums.RoomStatus, error) {
			if id != roomID {
				t.Fatalf("unexpected room %s", id)
			}
			return enums.RoomStatusOccupied, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/rooms/"+roomID.String()+"/recompute", nil)
	req = addRouteParam(req, "roomId", roomID.String())
	resp := httptest.NewRecorder()
	handler := RoomRecompute(svc, testLogger())
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["status"] != string(enums.RoomStatusOccupied) {
		t.Fatalf("unexpected status %q", envelope.Data["status"])
	}
	if envelope.Data["room_id"] != roomID.String() {
		t.Fatalf("unexpected room id %q", envelope.Data["room_id"])
	}
}

func TestOccupancyReportWritesRows(t *testing.T) {
	hostelID := uuid.New()
	svc := &testAllotmentsService{
		reportFn: func(ctx context.Context) ([]allotments.OccupancyReportRow, error) {
			return []allotments.OccupancyReportRow{
				{HostelID: hostelID, HostelName: "North Block", TotalRooms: 10, TotalCapacity: 40, ActiveStudents: 30, OccupancyPercent: 75},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/reports/occupancy", nil)
	resp := httptest.NewRecorder()
	handler := OccupancyReport(svc, testLogger())
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data []allotments.OccupancyReportRow `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].HostelName != "North Block" {
		t.Fatalf("unexpected report %+v", envelope.Data)
	}
}
