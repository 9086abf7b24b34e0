package enums

import "fmt"

// MaintenanceCategory describes the allowed values for the `category` column in maintenance_requests.
type MaintenanceCategory string

const (
	MaintenanceCategoryElectrical MaintenanceCategory = "Electrical"
	MaintenanceCategoryPlumbing   MaintenanceCategory = "Plumbing"
	MaintenanceCategoryCarpentry  MaintenanceCategory = "Carpentry"
	MaintenanceCategoryCleaning   MaintenanceCategory = "Cleaning"
	MaintenanceCategoryOther      MaintenanceCategory = "Other"
)

var validMaintenanceCategories = []MaintenanceCategory{
	MaintenanceCategoryElectrical,
	MaintenanceCategoryPlumbing,
	MaintenanceCategoryCarpentry,
	MaintenanceCategoryCleaning,
	MaintenanceCategoryOther,
}

// IsValid reports whether the value matches the canonical maintenance category enum.
func (m MaintenanceCategory) IsValid() bool {
	for _, candidate := range validMaintenanceCategories {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMaintenanceCategory converts the raw string to MaintenanceCategory.
func ParseMaintenanceCategory(value string) (MaintenanceCategory, error) {
	for _, candidate := range validMaintenanceCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid maintenance category %q", value)
}
