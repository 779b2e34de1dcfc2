// Package ports defines the narrow collaborator interfaces the assistant
// core consumes. Implementations live elsewhere (internal/llm, the host
// application); the core only depends on these contracts.
package ports

import (
	"context"
	"time"
)

// CompletionRequest is a single request to the language model collaborator.
type CompletionRequest struct {
	System    string
	Prompt    string
	ForceJSON bool
}

// LanguageModel is the LLM collaborator. Unavailability is reported via
// Available, never by panicking mid-call; Complete returns an error when
// the model cannot answer.
type LanguageModel interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Available() bool
}

// TrackedEvent is a read-only view of one calendar event, refreshed every
// poll. All-day events have AllDay set and zero Start/End times of day.
type TrackedEvent struct {
	ID      string
	Summary string
	Start   time.Time
	End     time.Time
	AllDay  bool
}

// CalendarSource supplies upcoming events, already time-ordered, and
// accepts new ones.
type CalendarSource interface {
	UpcomingEvents(ctx context.Context, limit int) ([]TrackedEvent, error)
	CreateEvent(ctx context.Context, event TrackedEvent) error
}

// MailSender delivers a composed email.
type MailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// MailChecker reports inbox state for status queries.
type MailChecker interface {
	UnreadCount(ctx context.Context) (int, error)
}

// Candidate is one of several ambiguous matches offered for ordinal selection.
type Candidate struct {
	ID    string
	Title string
}

// NoteContent is the full content of a fetched note.
type NoteContent struct {
	Title     string
	Content   string
	WordCount int
}

// NotesStore searches, fetches, and creates notes (Notion-like
// collaborator). Create returns the new note's id.
type NotesStore interface {
	Search(ctx context.Context, query string) ([]Candidate, error)
	Fetch(ctx context.Context, id string) (NoteContent, error)
	Create(ctx context.Context, title, content string) (string, error)
}

// SystemControl performs do-not-disturb and window side effects.
type SystemControl interface {
	SetDoNotDisturb(ctx context.Context, enabled bool) error
	MinimizeAllWindows(ctx context.Context) error
}

// Speech queues text for speaking. Fire-and-forget: callers must not
// assume the text has been spoken when Say returns.
type Speech interface {
	Say(text string)
}

// WeatherSource reports current conditions.
type WeatherSource interface {
	Current(ctx context.Context, city string) (string, error)
	Summary(ctx context.Context) (string, error)
}

// AppLauncher opens a desktop application by name.
type AppLauncher interface {
	Open(ctx context.Context, name string) error
}

// BatteryStatus is a point-in-time battery reading. Present is false on
// machines without a battery.
type BatteryStatus struct {
	Percent int
	Plugged bool
	Present bool
}

// SystemStats reports host resource usage for health alerts and status
// queries.
type SystemStats interface {
	Battery(ctx context.Context) (BatteryStatus, error)
	CPUPercent(ctx context.Context) (float64, error)
	MemoryPercent(ctx context.Context) (float64, error)
}
