package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aria/internal/ports"
)

// queryEventLimit caps how many events a schedule answer lists.
const queryEventLimit = 5

func (d *Dispatcher) handleCalendarQuery(ctx context.Context) Response {
	if d.col.Calendar == nil {
		return Response{Text: "Sorry, your calendar isn't connected."}
	}
	cctx, cancel := d.callCtx(ctx)
	defer cancel()

	events, err := d.col.Calendar.UpcomingEvents(cctx, queryEventLimit)
	if err != nil {
		d.logger.Warn("calendar query failed: %v", err)
		return Response{Text: "Sorry, I couldn't reach your calendar just now."}
	}
	if len(events) == 0 {
		return Response{Text: "Your calendar is clear, nothing coming up."}
	}

	var b strings.Builder
	b.WriteString("Here's what's coming up:\n")
	for _, e := range events {
		if e.AllDay {
			fmt.Fprintf(&b, "- %s (%s, all day)\n", e.Summary, e.Start.Format("Mon Jan 2"))
			continue
		}
		fmt.Fprintf(&b, "- %s at %s on %s\n", e.Summary, e.Start.Format("3:04 PM"), e.Start.Format("Mon Jan 2"))
	}
	return Response{Text: strings.TrimRight(b.String(), "\n")}
}

const extractEventSystem = "You extract calendar event fields from a user command. Return ONLY JSON."

type eventFields struct {
	Summary string `json:"summary"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

func (d *Dispatcher) handleCalendarCreate(ctx context.Context, req Request) Response {
	if d.col.Calendar == nil {
		return Response{Text: "Sorry, your calendar isn't connected."}
	}
	if !d.modelUp() {
		return Response{Text: "I need my language model to schedule events, and it's unavailable right now."}
	}

	prompt := fmt.Sprintf(`Extract the event from this command.

CURRENT DATE AND TIME: %s
COMMAND: %q

Return ONLY a JSON object:
{"summary": "...", "start": "RFC3339 timestamp", "end": "RFC3339 timestamp"}
If no end time is stated, make the event one hour long. Use "" for a
missing summary or start.`, d.now().Format(time.RFC3339), req.Text)

	cctx, cancel := d.callCtx(ctx)
	defer cancel()
	raw, err := d.col.Model.Complete(cctx, completionJSON(extractEventSystem, prompt))
	if err != nil {
		d.logger.Warn("event extraction failed: %v", err)
		return Response{Text: "Sorry, I couldn't work out the event details."}
	}

	var fields eventFields
	if err := decodeModelJSON(raw, &fields); err != nil {
		d.logger.Warn("event extraction unparseable: %v", err)
		return Response{Text: "Sorry, I couldn't work out the event details."}
	}
	if fields.Summary == "" || fields.Start == "" {
		return Response{Text: "What should the event be called, and when is it?"}
	}

	start, err := time.Parse(time.RFC3339, fields.Start)
	if err != nil {
		return Response{Text: "I couldn't pin down the event time, could you give me a specific time?"}
	}
	end := start.Add(time.Hour)
	if fields.End != "" {
		if parsed, err := time.Parse(time.RFC3339, fields.End); err == nil && parsed.After(start) {
			end = parsed
		}
	}

	event := ports.TrackedEvent{Summary: fields.Summary, Start: start, End: end}
	if err := d.col.Calendar.CreateEvent(cctx, event); err != nil {
		d.logger.Warn("event creation failed: %v", err)
		return Response{Text: "Sorry, I couldn't add that to your calendar."}
	}
	return Response{Text: fmt.Sprintf("Added %q to your calendar for %s.", fields.Summary, start.Format("Monday at 3:04 PM"))}
}
