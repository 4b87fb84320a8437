package core

import "testing"

func TestIntensityBucket(t *testing.T) {
	tests := []struct {
		intensity int
		want      string
	}{
		{10, "high"},
		{8, "high"},
		{7, "medium"},
		{6, "medium"},
		{5, "low"},
		{4, "low"},
		{3, "very_low"},
		{1, "very_low"},
	}

	for _, tt := range tests {
		if got := IntensityBucket(tt.intensity); got != tt.want {
			t.Errorf("IntensityBucket(%d) = %q, want %q", tt.intensity, got, tt.want)
		}
	}
}

func TestMoodVocabulary(t *testing.T) {
	if len(MoodOptions) != 10 {
		t.Errorf("MoodOptions = %d, want 10", len(MoodOptions))
	}
	seen := make(map[string]bool)
	for _, opt := range MoodOptions {
		if opt.Emoji == "" || opt.Label == "" || opt.Type == "" {
			t.Errorf("incomplete option %+v", opt)
		}
		if seen[opt.Type] {
			t.Errorf("duplicate mood type %q", opt.Type)
		}
		seen[opt.Type] = true
	}

	if len(ActivityTags) != 10 {
		t.Errorf("ActivityTags = %d, want 10", len(ActivityTags))
	}
}
