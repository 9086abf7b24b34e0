package notifications

import (
	"context"
	"fmt"

	"github.com/campusworks/hosteldesk-backend/pkg/db/models"
	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	"github.com/campusworks/hosteldesk-backend/pkg/logger"
	"github.com/google/uuid"
)

type studentDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Student, error)
}

// StudentNotifier delivers domain events to students as direct
// notifications. Delivery failures are logged, never returned.
type StudentNotifier struct {
	svc      Service
	students studentDirectory
	logg     *logger.Logger
}

// NewStudentNotifier builds a notifier over the notifications service and a
// student lookup.
func NewStudentNotifier(svc Service, students studentDirectory, logg *logger.Logger) (*StudentNotifier, error) {
	if svc == nil {
		return nil, fmt.Errorf("notifications service required")
	}
	if students == nil {
		return nil, fmt.Errorf("student directory required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &StudentNotifier{svc: svc, students: students, logg: logg}, nil
}

// NotifyStudent resolves the student's user account and sends them a direct
// notification.
func (n *StudentNotifier) NotifyStudent(ctx context.Context, studentID uuid.UUID, title, message string) {
	student, err := n.students.FindByID(ctx, studentID)
	if err != nil {
		n.logg.Error(ctx, "resolve student for notification", err)
		return
	}

	receiver := student.UserID
	if _, err := n.svc.Send(ctx, SendInput{
		Audience:   enums.NotificationAudienceUser,
		ReceiverID: &receiver,
		Title:      title,
		Message:    message,
	}); err != nil {
		n.logg.Error(ctx, "send student notification", err)
	}
}
