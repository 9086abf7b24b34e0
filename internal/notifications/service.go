package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/campusworks/hosteldesk-backend/pkg/db/models"
	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	pkgerrors "github.com/campusworks/hosteldesk-backend/pkg/errors"
	"github.com/campusworks/hosteldesk-backend/pkg/pagination"
	"github.com/google/uuid"
)

// SendInput addresses a notification at one user, one role, or everyone.
type SendInput struct {
	SenderID     *uuid.UUID
	Audience     enums.NotificationAudience
	ReceiverID   *uuid.UUID
	ReceiverRole *enums.UserRole
	Title        string
	Message      string
}

// ListInput carries the viewer identity and paging controls.
type ListInput struct {
	UserID     uuid.UUID
	Role       enums.UserRole
	Limit      int
	Cursor     string
	UnreadOnly bool
}

// ListResult bundles a page of notifications with the next cursor.
type ListResult struct {
	Notifications []models.Notification
	NextCursor    string
}

// Notifications older than this are eligible for purge when no explicit age
// is given.
const defaultPurgeAgeDays = 30

// Service defines notification operations consumed by controllers.
type Service interface {
	Send(ctx context.Context, input SendInput) (*models.Notification, error)
	List(ctx context.Context, input ListInput) (*ListResult, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	PurgeOld(ctx context.Context, olderThanDays int) (int64, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService constructs a notifications service over the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Send(ctx context.Context, input SendInput) (*models.Notification, error) {
	if !input.Audience.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid audience")
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message required")
	}

	switch input.Audience {
	case enums.NotificationAudienceUser:
		if input.ReceiverID == nil || *input.ReceiverID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "receiver id required for user audience")
		}
		input.ReceiverRole = nil
	case enums.NotificationAudienceRole:
		if input.ReceiverRole == nil || !input.ReceiverRole.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "receiver role required for role audience")
		}
		input.ReceiverID = nil
	case enums.NotificationAudienceAll:
		input.ReceiverID = nil
		input.ReceiverRole = nil
	}

	notification := &models.Notification{
		ID:           uuid.New(),
		SenderID:     input.SenderID,
		Audience:     input.Audience,
		ReceiverID:   input.ReceiverID,
		ReceiverRole: input.ReceiverRole,
		Title:        title,
		Message:      message,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create notification")
	}
	return notification, nil
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}
	cursor, err := pagination.ParseCursor(input.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	list, next, err := s.repo.List(ctx, listNotificationsParams{
		UserID:     input.UserID,
		Role:       input.Role,
		Limit:      input.Limit,
		Cursor:     cursor,
		UnreadOnly: input.UnreadOnly,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}

	result := &ListResult{Notifications: list}
	if next != nil {
		result.NextCursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

func (s *service) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if userID == uuid.Nil || notificationID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id and notification id required")
	}

	mark, err := s.repo.MarkRead(ctx, userID, notificationID, s.now())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read")
	}
	if !mark.Found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	updated, err := s.repo.MarkAllRead(ctx, userID, s.now())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notifications read")
	}
	return updated, nil
}

// PurgeOld deletes notifications older than the given number of days and
// returns how many were removed. Zero days means the thirty day default.
func (s *service) PurgeOld(ctx context.Context, olderThanDays int) (int64, error) {
	if olderThanDays < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "retention age must be positive")
	}
	if olderThanDays == 0 {
		olderThanDays = defaultPurgeAgeDays
	}

	cutoff := s.now().AddDate(0, 0, -olderThanDays)
	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "purge notifications")
	}
	return deleted, nil
}
