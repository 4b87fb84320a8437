package core

import "errors"

// Core errors that can occur across the system
var (
	// Storage errors
	ErrInsightNotFound = errors.New("insight not found")
	ErrMigrationFailed = errors.New("migration failed")

	// Credential errors
	ErrNoAPIKey = errors.New("API key not configured")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)
