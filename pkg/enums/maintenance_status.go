package enums

import "fmt"

// MaintenanceStatus describes the allowed values for the `status` column in maintenance_requests.
type MaintenanceStatus string

const (
	MaintenanceStatusPending    MaintenanceStatus = "Pending"
	MaintenanceStatusInProgress MaintenanceStatus = "In Progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "Completed"
)

var validMaintenanceStatuses = []MaintenanceStatus{
	MaintenanceStatusPending,
	MaintenanceStatusInProgress,
	MaintenanceStatusCompleted,
}

// IsValid reports whether the value matches the canonical maintenance status enum.
func (m MaintenanceStatus) IsValid() bool {
	for _, candidate := range validMaintenanceStatuses {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMaintenanceStatus converts the raw string to MaintenanceStatus.
func ParseMaintenanceStatus(value string) (MaintenanceStatus, error) {
	for _, candidate := range validMaintenanceStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid maintenance status %q", value)
}

// CanTransitionTo reports whether the status machine allows moving to next.
func (m MaintenanceStatus) CanTransitionTo(next MaintenanceStatus) bool {
	switch m {
	case MaintenanceStatusPending:
		return next == MaintenanceStatusInProgress || next == MaintenanceStatusCompleted
	case MaintenanceStatusInProgress:
		return next == MaintenanceStatusCompleted
	default:
		return false
	}
}
