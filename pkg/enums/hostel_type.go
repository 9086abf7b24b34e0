package enums

import "fmt"

// HostelType describes the allowed values for the `hostel_type` column in hostels.
type HostelType string

const (
	HostelTypeBoys  HostelType = "Boys"
	HostelTypeGirls HostelType = "Girls"
)

var validHostelTypes = []HostelType{
	HostelTypeBoys,
	HostelTypeGirls,
}

// IsValid reports whether the value matches the canonical hostel type enum.
func (h HostelType) IsValid() bool {
	for _, candidate := range validHostelTypes {
		if candidate == h {
			return true
		}
	}
	return false
}

// ParseHostelType converts the raw string to HostelType.
func ParseHostelType(value string) (HostelType, error) {
	for _, candidate := range validHostelTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid hostel type %q", value)
}
