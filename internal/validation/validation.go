package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"choreboard/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidateName checks if a user display name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) > 100 {
		return ValidationError{Field: "name", Message: "name must be at most 100 characters"}
	}
	return nil
}

// ValidateTitle checks if a task or shopping item title is valid
func ValidateTitle(field, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ValidationError{Field: field, Message: field + " is required"}
	}
	if len(title) > 255 {
		return ValidationError{Field: field, Message: field + " must be at most 255 characters"}
	}
	return nil
}

// ValidateDate checks a calendar date in YYYY-MM-DD form
func ValidateDate(date string) error {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return ValidationError{Field: "dueDate", Message: "date must be in YYYY-MM-DD format"}
	}
	return nil
}

// ValidateTimeOfDay checks an optional HH:MM time. The round-trip check
// rejects non-canonical spellings like "9:30" that time.Parse tolerates.
func ValidateTimeOfDay(value string) error {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(models.TimeLayout, value)
	if err != nil || parsed.Format(models.TimeLayout) != value {
		return ValidationError{Field: "time", Message: "time must be in HH:MM format"}
	}
	return nil
}

// ValidateWeekdays checks a recurrence set of weekday indices (0=Sunday..6=Saturday)
func ValidateWeekdays(days []int) error {
	seen := make(map[int]bool, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			return ValidationError{Field: "recurrenceDays", Message: "weekday indices must be between 0 and 6"}
		}
		if seen[d] {
			return ValidationError{Field: "recurrenceDays", Message: "weekday indices must be unique"}
		}
		seen[d] = true
	}
	return nil
}
