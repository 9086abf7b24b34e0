package enums

import "fmt"

// NotificationAudience describes who a notification row targets.
type NotificationAudience string

const (
	NotificationAudienceUser NotificationAudience = "user"
	NotificationAudienceRole NotificationAudience = "role"
	NotificationAudienceAll  NotificationAudience = "all"
)

var validNotificationAudiences = []NotificationAudience{
	NotificationAudienceUser,
	NotificationAudienceRole,
	NotificationAudienceAll,
}

// IsValid reports whether the value matches the canonical notification audience enum.
func (n NotificationAudience) IsValid() bool {
	for _, candidate := range validNotificationAudiences {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationAudience converts the raw string to NotificationAudience.
func ParseNotificationAudience(value string) (NotificationAudience, error) {
	for _, candidate := range validNotificationAudiences {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification audience %q", value)
}
