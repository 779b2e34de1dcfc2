package command

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"aria/internal/intent"
)

// knownSites maps spoken site names to URLs for fallback extraction.
var knownSites = map[string]string{
	"youtube":       "https://youtube.com",
	"gmail":         "https://mail.google.com",
	"google":        "https://google.com",
	"github":        "https://github.com",
	"reddit":        "https://reddit.com",
	"twitter":       "https://twitter.com",
	"netflix":       "https://netflix.com",
	"stackoverflow": "https://stackoverflow.com",
}

func (d *Dispatcher) handleWebOpen(req Request) Response {
	target := req.Result.Param("url")
	name := req.Result.Param("name")
	if name == "" {
		name = stripVerb(req.Text, "open")
	}
	if target == "" {
		key := strings.ReplaceAll(strings.ToLower(name), " ", "")
		if u, ok := knownSites[key]; ok {
			target = u
		} else if strings.Contains(name, ".") {
			target = "https://" + name
		}
	}
	if target == "" {
		return Response{Text: "Which website would you like me to open?"}
	}
	if name == "" {
		name = target
	}
	return Response{
		Text:     fmt.Sprintf("Opening %s.", name),
		UIAction: &UIAction{Type: "open_url", Payload: map[string]any{"url": target}},
	}
}

func (d *Dispatcher) handleAppOpen(ctx context.Context, req Request) Response {
	app := req.Result.Param("app_name")
	if app == "" {
		app = stripVerb(req.Text, "open")
	}
	if app == "" {
		return Response{Text: "Which application should I open?"}
	}
	if d.col.Launcher == nil {
		return Response{Text: "Sorry, I can't open applications on this device."}
	}
	cctx, cancel := d.callCtx(ctx)
	defer cancel()
	if err := d.col.Launcher.Open(cctx, app); err != nil {
		d.logger.Warn("app open %q failed: %v", app, err)
		return Response{Text: fmt.Sprintf("Sorry, I couldn't open %s.", app)}
	}
	return Response{Text: fmt.Sprintf("Opening %s.", app)}
}

func (d *Dispatcher) handleWebSearch(req Request) Response {
	query := req.Result.Param("query")
	if query == "" {
		query = stripVerb(req.Text, "search for", "search", "google", "look up")
	}
	if query == "" {
		return Response{Text: "What would you like me to search for?"}
	}
	return Response{
		Text: fmt.Sprintf("Searching the web for %s.", query),
		UIAction: &UIAction{Type: "open_url", Payload: map[string]any{
			"url": "https://www.google.com/search?q=" + url.QueryEscape(query),
		}},
	}
}

// musicMatchThreshold is the minimum similarity for a library hit.
const musicMatchThreshold = 0.6

func (d *Dispatcher) handleMusicPlay(req Request) Response {
	song := req.Result.Param("song")
	if song == "" {
		song = stripVerb(req.Text, "play")
	}
	if song == "" {
		return Response{Text: "What would you like me to play?"}
	}

	if title, ok := d.matchLibrary(song); ok {
		return Response{
			Text:     fmt.Sprintf("Playing %s.", title),
			UIAction: &UIAction{Type: "play_music", Payload: map[string]any{"title": title}},
		}
	}

	// Not in the local library; hand off to a search instead.
	return Response{
		Text: fmt.Sprintf("I couldn't find %s in your library, searching online instead.", song),
		UIAction: &UIAction{Type: "open_url", Payload: map[string]any{
			"url": "https://www.youtube.com/results?search_query=" + url.QueryEscape(song),
		}},
	}
}

// matchLibrary finds the best fuzzy library match for the requested title.
func (d *Dispatcher) matchLibrary(song string) (string, bool) {
	want := strings.ToLower(song)
	best := ""
	bestScore := 0.0
	for _, title := range d.library {
		score := intent.Similarity(want, strings.ToLower(title))
		if score > bestScore {
			best, bestScore = title, score
		}
	}
	if bestScore >= musicMatchThreshold {
		return best, true
	}
	return "", false
}

// stripVerb removes the first matching leading verb phrase from text,
// the documented fallback when the classifier supplied no parameter.
func stripVerb(text string, verbs ...string) string {
	for _, v := range verbs {
		if strings.HasPrefix(text, v+" ") {
			return strings.TrimSpace(text[len(v):])
		}
	}
	return ""
}
