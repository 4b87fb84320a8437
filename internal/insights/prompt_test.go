package insights

import (
	"reflect"
	"strings"
	"testing"

	"github.com/moodtracker/moodtracker/internal/core"
)

func TestBuildPromptEmpty(t *testing.T) {
	if got := BuildPrompt(nil); got != "" {
		t.Errorf("got %q, want empty prompt for no entries", got)
	}
}

func TestBuildPrompt(t *testing.T) {
	entries := []*core.MoodEntry{
		{Emoji: "😊", MoodType: "happy", Intensity: 8, Tags: []string{"Exercise", "Friends"}, Note: "great run"},
		{Emoji: "😔", MoodType: "sad", Intensity: 3},
	}

	prompt := BuildPrompt(entries)

	for _, want := range []string{
		"supportive mental wellness assistant",
		`😊 happy (8/10) (Exercise, Friends) - "great run"`,
		"😔 sad (3/10)",
		"Keep each insight under 100 characters.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\n%s", want, prompt)
		}
	}
}

func TestParseInsightLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			"two lines",
			"First insight 😊\nSecond insight ⚖️",
			[]string{"First insight 😊", "Second insight ⚖️"},
		},
		{
			"trims and drops blanks",
			"  spaced  \n\n\n  second  ",
			[]string{"spaced", "second"},
		},
		{
			"caps at two",
			"one\ntwo\nthree",
			[]string{"one", "two"},
		},
		{
			"drops over-length lines",
			strings.Repeat("x", 101) + "\nshort",
			[]string{"short"},
		},
		{
			"all blank",
			"\n\n  \n",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseInsightLines(tt.content)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
