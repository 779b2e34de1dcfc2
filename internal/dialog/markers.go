package dialog

import (
	"strconv"
	"strings"
)

// Marker phrases are matched against the normalized (lowercased) turn.
// New-request markers are checked before affirmative/negative ones so
// that "send another email to Bob" supersedes the open draft instead of
// confirming it.
var (
	newRequestMarkers = []string{"send mail", "send email", "send an email", "draft email", "draft an email", "compose email", "compose an email"}
	affirmativeWords  = []string{"yes", "yeah", "yep", "send", "confirm", "okay", "ok", "sure"}
	negativeMarkers   = []string{"don't send", "dont send", "do not send"}
	negativeWords     = []string{"no", "cancel", "stop", "discard"}
)

// IsNewEmailRequest reports whether the turn starts a fresh email
// command rather than answering the open confirmation.
func IsNewEmailRequest(text string) bool {
	for _, m := range newRequestMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// IsAffirmative reports whether the turn contains a confirmation word.
func IsAffirmative(text string) bool {
	return containsWord(text, affirmativeWords)
}

// IsNegative reports whether the turn declines the open confirmation.
func IsNegative(text string) bool {
	for _, m := range negativeMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return containsWord(text, negativeWords)
}

// containsWord matches whole tokens so "no" does not fire on "now".
func containsWord(text string, words []string) bool {
	for _, tok := range strings.Fields(text) {
		tok = strings.Trim(tok, ".,!?")
		for _, w := range words {
			if tok == w {
				return true
			}
		}
	}
	return false
}

// ordinalWords maps number word forms to 1-based ordinals.
var ordinalWords = map[string]int{
	"first": 1, "one": 1, "1st": 1,
	"second": 2, "two": 2, "2nd": 2,
	"third": 3, "three": 3, "3rd": 3,
	"fourth": 4, "four": 4, "4th": 4,
	"fifth": 5, "five": 5, "5th": 5,
}

// ParseOrdinal scans the turn left to right for a digit or number word
// and returns the first 1-based ordinal found that lies in [1, n].
func ParseOrdinal(text string, n int) (int, bool) {
	for _, tok := range strings.Fields(text) {
		tok = strings.Trim(tok, ".,!?")
		if v, err := strconv.Atoi(tok); err == nil {
			if v >= 1 && v <= n {
				return v, true
			}
			continue
		}
		if v, ok := ordinalWords[tok]; ok && v <= n {
			return v, true
		}
	}
	return 0, false
}
