// Package validation checks user input before it reaches storage or the
// AI provider.
package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/moodtracker/moodtracker/internal/core"
)

// Result of validating one piece of user input.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

func result(errs []string) Result {
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// MoodEntryInput is the user-supplied part of a mood entry.
type MoodEntryInput struct {
	Emoji     string
	MoodType  string
	Intensity int
	Note      string
	Tags      []string
}

// ValidateMoodEntry checks a mood entry against the field contract.
// Note truncation is not applied here; SanitizeNote is a separate,
// explicit step.
func ValidateMoodEntry(in MoodEntryInput) Result {
	var errs []string

	if in.Emoji == "" || in.MoodType == "" {
		errs = append(errs, "Please select a mood emoji")
	}
	if in.Intensity == 0 {
		errs = append(errs, "Please set an intensity level")
	} else if in.Intensity < core.IntensityMin || in.Intensity > core.IntensityMax {
		errs = append(errs, "Intensity must be between 1 and 10")
	}
	if utf8.RuneCountInString(in.Note) > core.NoteMaxLength {
		errs = append(errs, "Note must be 200 characters or less")
	}
	if len(in.Tags) > core.TagsMax {
		errs = append(errs, "Maximum 10 tags allowed")
	}

	return result(errs)
}

// SanitizeNote trims whitespace and caps the note at the storage limit.
// Idempotent: sanitizing an already-sanitized note is a no-op.
func SanitizeNote(note string) string {
	trimmed := strings.TrimSpace(note)
	if runes := []rune(trimmed); len(runes) > core.NoteMaxLength {
		trimmed = strings.TrimSpace(string(runes[:core.NoteMaxLength]))
	}
	return trimmed
}

// API key format requirements for the OpenAI-style provider.
const (
	apiKeyPrefix    = "sk-"
	apiKeyMinLength = 20
)

// ValidateAPIKey checks the shape of a provider credential before it is
// persisted. It does not verify the key against the provider.
func ValidateAPIKey(apiKey string) Result {
	var errs []string

	if strings.TrimSpace(apiKey) == "" {
		errs = append(errs, "API key is required")
		return result(errs)
	}
	if !strings.HasPrefix(apiKey, apiKeyPrefix) {
		errs = append(errs, "Invalid OpenAI API key format")
	}
	if len(apiKey) < apiKeyMinLength {
		errs = append(errs, "API key appears to be too short")
	}

	return result(errs)
}
