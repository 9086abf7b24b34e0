package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/campusworks/hosteldesk-backend/api/middleware"
	"github.com/campusworks/hosteldesk-backend/internal/notifications"
	"github.com/campusworks/hosteldesk-backend/pkg/db/models"
	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	"github.com/campusworks/hosteldesk-backend/pkg/logger"
)

type testNotificationsService struct {
	sendFn        func(ctx context.Context, input notifications.SendInput) (*models.Notification, error)
	listFn        func(ctx context.Context, input notifications.ListInput) (*notifications.ListResult, error)
	markReadFn    func(ctx context.Context, userID, notificationID uuid.UUID) error
	markAllReadFn func(ctx context.Context, userID uuid.UUID) (int64, error)
	purgeOldFn    func(ctx context.Context, olderThanDays int) (int64, error)
}

func (s *testNotificationsService) Send(ctx context.Context, input notifications.SendInput) (*models.Notification, error) {
	if s.sendFn != nil {
		return s.sendFn(ctx, input)
	}
	return &models.Notification{}, nil
}

func (s *testNotificationsService) List(ctx context.Context, input notifications.ListInput) (*notifications.ListResult, error) {
	if s.listFn != nil {
		return s.listFn(ctx, input)
	}
	return &notifications.ListResult{}, nil
}

func (s *testNotificationsService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if s.markReadFn != nil {
		return s.markReadFn(ctx, userID, notificationID)
	}
	return nil
}

func (s *testNotificationsService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	if s.markAllReadFn != nil {
		return s.markAllReadFn(ctx, userID)
	}
	return 0, nil
}

func (s *testNotificationsService) PurgeOld(ctx context.Context, olderThanDays int) (int64, error) {
	if s.purgeOldFn != nil {
		return s.purgeOldFn(ctx, olderThanDays)
	}
	return 0, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func withViewer(req *http.Request, userID uuid.UUID, role enums.UserRole) *http.Request {
	ctx := middleware.WithUserID(req.Context(), userID.String())
	ctx = middleware.WithRole(ctx, string(role))
	return req.WithContext(ctx)
}

func addRouteParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestMarkNotificationReadSuccess(t *testing.T) {
	userID := uuid.New()
	notificationID := uuid.New()
	called := false
	svc := &testNotificationsService{
		markReadFn: func(ctx context.Context, uid, nid uuid.UUID) error {
			called = true
			if uid != userID {
				t.Fatalf("unexpected user %s", uid)
			}
			if nid != notificationID {
				t.Fatalf("unexpected notification %s", nid)
			}
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/"+notificationID.String()+"/read", nil)
	req = withViewer(req, userID, enums.UserRoleStudent)
	req = addRouteParam(req, "notificationId", notificationID.String())

	resp := httptest.NewRecorder()
	handler := MarkNotificationRead(svc, testLogger())
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !called {
		t.Fatal("expected service called")
	}
	var envelope struct {
		Data map[string]bool `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !envelope.Data["read"] {
		t.Fatal("response missing read flag")
	}
}

func TestMarkNotificationReadMissingUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/"+uuid.NewString()+"/read", nil)
	req = addRouteParam(req, "notificationId", uuid.NewString())
	resp := httptest.NewRecorder()
	handler := MarkNotificationRead(&testNotificationsService{}, testLogger())
	handler(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestMarkNotificationReadInvalidID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/invalid/read", nil)
	req = withViewer(req, uuid.New(), enums.UserRoleStudent)
	req = addRouteParam(req, "notificationId", "invalid")
	resp := httptest.NewRecorder()
	handler := MarkNotificationRead(&testNotificationsService{}, testLogger())
	handler(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestMarkAllNotificationsReadSuccess(t *testing.T) {
	userID := uuid.New()
	called := false
	svc := &testNotificationsService{
		markAllReadFn: func(ctx context.Context, uid uuid.UUID) (int64, error) {
			called = true
			if uid != userID {
				t.Fatalf("unexpected user %s", uid)
			}
			return 5, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/read-all", nil)
	req = withViewer(req, userID, enums.UserRoleStudent)
	resp := httptest.NewRecorder()
	handler := MarkAllNotificationsRead(svc, testLogger())
	handler(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !called {
		t.Fatal("expected service called")
	}
	var envelope struct {
		Data map[string]float64 `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["updated"] != 5 {
		t.Fatalf("expected updated=5 got %v", envelope.Data["updated"])
	}
}

func TestSendNotificationPassesSender(t *testing.T) {
	senderID := uuid.New()
	var captured notifications.SendInput
	svc := &testNotificationsService{
		sendFn: func(ctx context.Context, input notifications.SendInput) (*models.Notification, error) {
			captured = input
			return &models.Notification{ID: uuid.New()}, nil
		},
	}

	body := `{"audience":"role","receiver_role":"Student","title":"Mess closed","message":"Dinner moved to the annex hall."}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withViewer(req, senderID, enums.UserRoleWarden)

	resp := httptest.NewRecorder()
	handler := SendNotification(svc, testLogger())
	handler(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if captured.SenderID == nil || *captured.SenderID != senderID {
		t.Fatalf("expected sender %s got %v", senderID, captured.SenderID)
	}
	if captured.Audience != enums.NotificationAudienceRole {
		t.Fatalf("unexpected audience %s", captured.Audience)
	}
	if captured.ReceiverRole == nil || *captured.ReceiverRole != enums.UserRoleStudent {
		t.Fatalf("unexpected receiver role %v", captured.ReceiverRole)
	}
}

func TestPurgeNotificationsDefaultsOnEmptyBody(t *testing.T) {
	var captured int
	svc := &testNotificationsService{
		purgeOldFn: func(ctx context.Context, olderThanDays int) (int64, error) {
			captured = olderThanDays
			return 7, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/notifications/purge", nil)
	resp := httptest.NewRecorder()
	handler := PurgeNotifications(svc, testLogger())
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if captured != 0 {
		t.Fatalf("expected zero days for empty body got %d", captured)
	}
	var envelope struct {
		Data map[string]float64 `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["deleted"] != 7 {
		t.Fatalf("expected deleted=7 got %v", envelope.Data["deleted"])
	}
}

func TestPurgeNotificationsForwardsAge(t *testing.T) {
	var captured int
	svc := &testNotificationsService{
		purgeOldFn: func(ctx context.Context, olderThanDays int) (int64, error) {
			captured = olderThanDays
			return 0, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/notifications/purge", strings.NewReader(`{"days_old":90}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler := PurgeNotifications(svc, testLogger())
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if captured != 90 {
		t.Fatalf("expected 90 days got %d", captured)
	}
}

func TestListNotificationsRejectsBadLimit(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications?limit=zero", nil)
	req = withViewer(req, uuid.New(), enums.UserRoleStudent)
	resp := httptest.NewRecorder()
	handler := ListNotifications(&testNotificationsService{}, testLogger())
	handler(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestListNotificationsForwardsFilters(t *testing.T) {
	userID := uuid.New()
	var captured notifications.ListInput
	svc := &testNotificationsService{
		listFn: func(ctx context.Context, input notifications.ListInput) (*notifications.ListResult, error) {
			captured = input
			return &notifications.ListResult{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications?limit=10&unreadOnly=true&cursor=abc", nil)
	req = withViewer(req, userID, enums.UserRoleWarden)
	resp := httptest.NewRecorder()
	handler := ListNotifications(svc, testLogger())
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if captured.UserID != userID {
		t.Fatalf("unexpected user %s", captured.UserID)
	}
	if captured.Role != enums.UserRoleWarden {
		t.Fatalf("unexpected role %s", captured.Role)
	}
	if captured.Limit != 10 || !captured.UnreadOnly || captured.Cursor != "abc" {
		t.Fatalf("filters not forwarded: %+v", captured)
	}
}
