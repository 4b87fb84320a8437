package insights

import (
	"fmt"
	"strings"

	"github.com/moodtracker/moodtracker/internal/core"
)

// BuildPrompt renders the weekly mood data into the completion prompt.
// Returns "" for an empty window; callers never reach the remote path in
// that case.
func BuildPrompt(entries []*core.MoodEntry) string {
	if len(entries) == 0 {
		return ""
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		var tags, note string
		if len(entry.Tags) > 0 {
			tags = fmt.Sprintf(" (%s)", strings.Join(entry.Tags, ", "))
		}
		if entry.Note != "" {
			note = fmt.Sprintf(" - %q", entry.Note)
		}
		lines = append(lines, fmt.Sprintf("%s %s (%d/10)%s%s",
			entry.Emoji, entry.MoodType, entry.Intensity, tags, note))
	}

	return fmt.Sprintf(`System: You are a supportive mental wellness assistant analyzing mood patterns.
Context: Weekly mood data with emojis, intensity, and optional notes.
Task: Generate 1-2 encouraging insights about mood patterns.
Tone: Warm, supportive, and actionable.
Length: Maximum 100 characters per insight.

User's mood data from the past week:
%s

Please provide 1-2 encouraging insights about their mood patterns. Focus on positive trends, correlations with activities, or supportive observations. Keep each insight under 100 characters.`,
		strings.Join(lines, "\n"))
}

// ParseInsightLines splits a completion body into insight candidates:
// one per line, trimmed, empty and over-length lines dropped, capped at two.
func ParseInsightLines(content string) []string {
	var insights []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len([]rune(line)) > 100 {
			continue
		}
		insights = append(insights, line)
		if len(insights) == maxInsights {
			break
		}
	}
	return insights
}
