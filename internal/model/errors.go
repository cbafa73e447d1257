package model

import "fmt"

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Entity string
	ID     int
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// ValidationError describes a field invariant or business-rule violation.
type ValidationError struct {
	Field       string
	Description string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Description
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Description)
}

// ConflictError reports a write that clashes with current state.
type ConflictError struct {
	Entity      string
	Description string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Description)
}
