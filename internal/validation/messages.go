package validation

import "strings"

// StoreErrorMessage maps a persistence failure to a user-facing message.
// Write failures are still propagated as errors by the storage layer; this
// only decides what the UI shows.
func StoreErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "no such table"):
		return "Database not properly initialized. Please restart the app."
	case strings.Contains(msg, "UNIQUE constraint"):
		return "This entry already exists."
	case strings.Contains(msg, "disk full") || strings.Contains(msg, "database or disk is full"):
		return "Not enough storage space available."
	default:
		return "A database error occurred. Please try again."
	}
}

// NetworkErrorMessage maps an AI-provider failure to a user-facing message.
// Only the credential-save path surfaces these; the insight pipeline
// degrades to the local fallback instead.
func NetworkErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host"):
		return "No internet connection available."
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return "Request timed out. Please check your connection."
	case strings.Contains(msg, "401"):
		return "Invalid API key. Please check your OpenAI API key."
	case strings.Contains(msg, "429"):
		return "API rate limit exceeded. Please try again later."
	case strings.Contains(msg, "500"):
		return "Server error. Please try again later."
	default:
		return "Network error. Please check your connection and try again."
	}
}
