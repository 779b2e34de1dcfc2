package intent

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"lowercases", "Open Spotify", "open spotify"},
		{"strips wake word", "aria open spotify", "open spotify"},
		{"wake word case insensitive", "ARIA what time is it", "what time is it"},
		{"verb typo open", "opn spotify", "open spotify"},
		{"verb typo play", "ply some jazz", "play some jazz"},
		{"verb typo google", "gogle cats", "google cats"},
		{"unrelated first word untouched", "weather in tokyo", "weather in tokyo"},
		{"distant word untouched", "pantomime for me", "pantomime for me"},
		{"wake word mid-sentence untouched", "tell aria something", "tell aria something"},
		{"whitespace trimmed", "  open spotify  ", "open spotify"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.raw, "aria")
			if got.Text != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.raw, got.Text, tc.want)
			}
			if got.WakeWordOnly {
				t.Errorf("Normalize(%q) unexpectedly flagged wake-word-only", tc.raw)
			}
		})
	}
}

func TestNormalizeWakeWordOnly(t *testing.T) {
	got := Normalize("Aria", "aria")
	if !got.WakeWordOnly {
		t.Error("bare wake word must set WakeWordOnly")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"opn spotify", "aria ply jazz", "what time is it"}
	for _, raw := range inputs {
		once := Normalize(raw, "aria")
		twice := Normalize(once.Text, "aria")
		if once.Text != twice.Text {
			t.Errorf("Normalize not idempotent for %q: %q then %q", raw, once.Text, twice.Text)
		}
	}
}

func TestNormalizeEmpty(t *testing.T) {
	got := Normalize("   ", "aria")
	if got.Text != "" || got.WakeWordOnly {
		t.Errorf("blank input should normalize to empty, got %+v", got)
	}
}

func TestSimilarity(t *testing.T) {
	if s := Similarity("open", "open"); s != 1 {
		t.Errorf("identical strings must score 1, got %f", s)
	}
	if s := Similarity("opn", "open"); s < 0.75 {
		t.Errorf("opn/open should clear the open threshold, got %f", s)
	}
	if s := Similarity("zebra", "open"); s >= 0.75 {
		t.Errorf("zebra/open should be far apart, got %f", s)
	}
	if s := Similarity("", ""); s != 1 {
		t.Errorf("two empty strings must score 1, got %f", s)
	}
}

func TestCleanForFastPath(t *testing.T) {
	cases := map[string]string{
		"what time is it?":           "what time is it",
		"check battery, please":      "check battery",
		"  show   desktop  ":         "show desktop",
		"minimize everything please": "minimize everything",
	}
	for in, want := range cases {
		if got := cleanForFastPath(in); got != want {
			t.Errorf("cleanForFastPath(%q) = %q, want %q", in, got, want)
		}
	}
}
