package command

import (
	"context"
	"fmt"
	"strings"

	"aria/internal/ports"
)

func (d *Dispatcher) handleNotesQuery(ctx context.Context, req Request) Response {
	if d.col.Notes == nil {
		return Response{Text: "Sorry, your notes aren't connected."}
	}

	query := req.Result.Param("query")
	if query == "" {
		query = stripVerb(req.Text, "summarize", "find", "search")
	}
	if query == "" {
		return Response{Text: "Which notes should I look for?"}
	}

	cctx, cancel := d.callCtx(ctx)
	defer cancel()
	candidates, err := d.col.Notes.Search(cctx, query)
	if err != nil {
		d.logger.Warn("notes search %q failed: %v", query, err)
		return Response{Text: "Sorry, I couldn't search your notes just now."}
	}

	switch len(candidates) {
	case 0:
		return Response{Text: fmt.Sprintf("I couldn't find any notes matching %q.", query)}
	case 1:
		return d.Summarize(ctx, candidates[0])
	default:
		req.Session.SetPendingSelection(candidates)
		var b strings.Builder
		fmt.Fprintf(&b, "I found %d matching notes:\n", len(candidates))
		for i, c := range candidates {
			fmt.Fprintf(&b, "%d. %s\n", i+1, c.Title)
		}
		b.WriteString("Which one would you like?")
		return Response{Text: b.String()}
	}
}

// Summarize fetches one candidate's content and condenses it. Also
// called by the orchestrator when the user resolves a selection.
func (d *Dispatcher) Summarize(ctx context.Context, candidate ports.Candidate) Response {
	if d.col.Notes == nil {
		return Response{Text: "Sorry, your notes aren't connected."}
	}
	cctx, cancel := d.callCtx(ctx)
	defer cancel()
	content, err := d.col.Notes.Fetch(cctx, candidate.ID)
	if err != nil {
		d.logger.Warn("notes fetch %s failed: %v", candidate.ID, err)
		return Response{Text: fmt.Sprintf("Sorry, I couldn't open %q.", candidate.Title)}
	}

	if d.modelUp() {
		prompt := fmt.Sprintf("Summarize this note in two or three sentences.\n\nTITLE: %s\n\n%s", content.Title, content.Content)
		summary, err := d.col.Model.Complete(cctx, completionText("You summarize documents plainly and briefly.", prompt))
		if err == nil && strings.TrimSpace(summary) != "" {
			return Response{Text: fmt.Sprintf("%s: %s", content.Title, strings.TrimSpace(summary))}
		}
		d.logger.Warn("note summarization failed, falling back to excerpt: %v", err)
	}

	// Without a model, an excerpt beats nothing.
	excerpt := content.Content
	if len(excerpt) > 300 {
		excerpt = excerpt[:300] + "..."
	}
	return Response{Text: fmt.Sprintf("%s: %s", content.Title, excerpt)}
}

func (d *Dispatcher) handleNotesCreate(ctx context.Context, req Request) Response {
	if d.col.Notes == nil {
		return Response{Text: "Sorry, your notes aren't connected."}
	}

	title := req.Result.Param("title")
	body := req.Result.Param("content")
	if body == "" {
		body = stripVerb(req.Text, "note down", "add a note", "note")
	}
	if title == "" && body == "" {
		return Response{Text: "What should the note say?"}
	}
	if title == "" {
		title = fmt.Sprintf("Note from %s", d.now().Format("Jan 2"))
	}

	cctx, cancel := d.callCtx(ctx)
	defer cancel()
	if _, err := d.col.Notes.Create(cctx, title, body); err != nil {
		d.logger.Warn("note creation failed: %v", err)
		return Response{Text: "Sorry, I couldn't save that note."}
	}
	return Response{Text: fmt.Sprintf("Saved a note titled %q.", title)}
}
