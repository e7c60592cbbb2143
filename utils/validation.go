// utils/validation.go
package utils

import (
	"regexp"
	"strings"
	"time"
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Regular expression for international phone numbers
	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

// ValidateRating checks that a review rating is an integer between 1 and 5
func ValidateRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

// ValidateTimeRange checks that a reservation time range is well formed
func ValidateTimeRange(start, end time.Time) bool {
	return !start.IsZero() && !end.IsZero() && start.Before(end)
}

// ValidateAmounts checks booking money fields: both non-negative and the
// discount never exceeding the total.
func ValidateAmounts(total, discount float64) bool {
	return total >= 0 && discount >= 0 && discount <= total
}
