// Package insights implements the AI insight pipeline and its local
// heuristic fallback.
package insights

import (
	"fmt"

	"github.com/moodtracker/moodtracker/internal/core"
)

// maxInsights caps how many insights a single generation produces.
const maxInsights = 2

// LocalFallback produces up to two deterministic insights from a batch of
// mood entries without any network access. Candidates are built in priority
// order (consistency, intensity tier, recurring tag) and the overflow is
// dropped from the end.
func LocalFallback(entries []*core.MoodEntry) []string {
	if len(entries) == 0 {
		return []string{"Start logging your moods to get personalized insights! 🌟"}
	}

	var insights []string

	if len(entries) >= 3 {
		insights = append(insights, fmt.Sprintf(
			"You've been consistent with tracking - %d entries this week! 📊", len(entries)))
	}

	var total int
	for _, entry := range entries {
		total += entry.Intensity
	}
	avg := float64(total) / float64(len(entries))

	switch {
	case avg >= 7:
		insights = append(insights, "Your mood has been quite positive this week! 😊")
	case avg >= 5:
		insights = append(insights, "You're maintaining balanced emotions. Keep it up! ⚖️")
	default:
		insights = append(insights, "Remember: it's okay to have challenging days. You're not alone 💙")
	}

	if tag, count := mostFrequentTag(entries); count >= 2 {
		insights = append(insights, fmt.Sprintf("%s seems to be a recurring theme this week 🔄", tag))
	}

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}

// mostFrequentTag flattens all tags across entries and returns the most
// frequent one. Ties break in favor of the tag encountered first in the
// flattened order, which keeps the result deterministic for a given input
// order.
func mostFrequentTag(entries []*core.MoodEntry) (string, int) {
	counts := make(map[string]int)
	var order []string

	for _, entry := range entries {
		for _, tag := range entry.Tags {
			if counts[tag] == 0 {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	best := ""
	bestCount := 0
	for _, tag := range order {
		if counts[tag] > bestCount {
			best = tag
			bestCount = counts[tag]
		}
	}

	return best, bestCount
}
