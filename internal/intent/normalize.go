package intent

import (
	"regexp"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// knownVerbs are the command verbs the first word of a turn is corrected
// against, absorbing transcription typos like "opn" or "ply".
var knownVerbs = []struct {
	verb      string
	threshold float64
}{
	{"open", 0.75},
	{"play", 0.75},
	{"google", 0.80},
	{"search", 0.80},
}

var punctuation = regexp.MustCompile(`[^\w\s]`)

// NormalizedInput is the result of one normalization pass over a raw turn.
type NormalizedInput struct {
	// Text is the case-folded, wake-word-stripped, verb-corrected turn.
	Text string
	// WakeWordOnly is set when the turn was exactly the wake word.
	WakeWordOnly bool
}

// Normalize case-folds the turn, strips a leading wake-word token, and
// corrects the first word against the known verb set. It is idempotent
// and must run exactly once per turn, before state-machine dispatch.
func Normalize(raw, wakeWord string) NormalizedInput {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return NormalizedInput{}
	}

	wake := strings.ToLower(strings.TrimSpace(wakeWord))
	if wake != "" {
		if text == wake {
			return NormalizedInput{Text: text, WakeWordOnly: true}
		}
		if strings.HasPrefix(text, wake+" ") {
			text = strings.TrimSpace(text[len(wake):])
		}
	}

	words := strings.Fields(text)
	if len(words) > 0 {
		for _, kv := range knownVerbs {
			if Similarity(words[0], kv.verb) >= kv.threshold {
				words[0] = kv.verb
				break
			}
		}
		text = strings.Join(words, " ")
	}

	return NormalizedInput{Text: text}
}

// Similarity returns an edit-distance-based ratio in [0,1]; 1 means equal.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	distance := dmp.DiffLevenshtein(diffs)
	return 1 - float64(distance)/float64(longest)
}

// cleanForFastPath prepares text for exact fast-path lookup: courtesy
// words and punctuation removed, whitespace collapsed.
func cleanForFastPath(text string) string {
	cleaned := strings.ReplaceAll(text, "please", "")
	cleaned = punctuation.ReplaceAllString(cleaned, "")
	return strings.Join(strings.Fields(cleaned), " ")
}
