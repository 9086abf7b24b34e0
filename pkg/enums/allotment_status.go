package enums

import "fmt"

// AllotmentStatus describes the allowed values for the `status` column in room_allotments.
type AllotmentStatus string

const (
	AllotmentStatusPending AllotmentStatus = "Pending"
	AllotmentStatusActive  AllotmentStatus = "Active"
	AllotmentStatusVacated AllotmentStatus = "Vacated"
)

var validAllotmentStatuses = []AllotmentStatus{
	AllotmentStatusPending,
	AllotmentStatusActive,
	AllotmentStatusVacated,
}

// IsValid reports whether the value matches the canonical allotment status enum.
func (a AllotmentStatus) IsValid() bool {
	for _, candidate := range validAllotmentStatuses {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAllotmentStatus converts the raw string to AllotmentStatus.
func ParseAllotmentStatus(value string) (AllotmentStatus, error) {
	for _, candidate := range validAllotmentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid allotment status %q", value)
}
