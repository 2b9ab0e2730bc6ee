package model

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`(?i)^[^@\s]+@[^@\s]+\.[^@\s]{2,}$`)

// FieldError is a validation failure bound to one form field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidateContact checks the name/email pair shared by the prediction and
// RSVP forms.
func ValidateContact(name, email string) error {
	if strings.TrimSpace(name) == "" {
		return &FieldError{Field: "name", Message: "Name is required"}
	}
	if strings.TrimSpace(email) == "" {
		return &FieldError{Field: "email", Message: "Email is required"}
	}
	if !emailPattern.MatchString(email) {
		return &FieldError{Field: "email", Message: "Invalid email address"}
	}
	return nil
}

type Attendance string

const (
	Attending    Attendance = "yes"
	NotAttending Attendance = "no"
)

const MaxExtraGuests = 5

type RSVP struct {
	Name                string
	Email               string
	Attending           Attendance
	DietaryRestrictions string
	GuestCount          int
}

type PredictionSubmission struct {
	Name        string
	Email       string
	Predictions []Prediction
}

// RelayResult is what the form relay reported back.
type RelayResult struct {
	Success bool
	Message string
}
