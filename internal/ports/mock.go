package ports

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// ScriptedModel implements LanguageModel with canned responses, consumed
// in order. Useful for deterministic tests and dry runs.
type ScriptedModel struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	Down      bool
	Prompts   []CompletionRequest
	next      int
}

// Complete returns the next scripted response.
func (m *ScriptedModel) Complete(_ context.Context, req CompletionRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, req)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "", fmt.Errorf("scripted model: no responses configured")
	}
	resp := m.Responses[m.next%len(m.Responses)]
	m.next++
	return resp, nil
}

// Available reports the scripted availability flag.
func (m *ScriptedModel) Available() bool {
	return !m.Down
}

// StaticCalendar implements CalendarSource over a fixed event slice and
// records created events.
type StaticCalendar struct {
	mu      sync.Mutex
	Events  []TrackedEvent
	Created []TrackedEvent
	Err     error
}

// UpcomingEvents returns up to limit configured events.
func (c *StaticCalendar) UpcomingEvents(_ context.Context, limit int) ([]TrackedEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	if limit > 0 && limit < len(c.Events) {
		return c.Events[:limit], nil
	}
	return c.Events, nil
}

// SetEvents swaps the configured events, for tests that mutate the
// calendar while loops are polling it.
func (c *StaticCalendar) SetEvents(events []TrackedEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Events = events
}

// SetErr swaps the configured failure.
func (c *StaticCalendar) SetErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Err = err
}

// CreateEvent records the event or returns the configured failure.
func (c *StaticCalendar) CreateEvent(_ context.Context, event TrackedEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.Created = append(c.Created, event)
	return nil
}

// RecordingMail implements MailSender and MailChecker, recording every
// send.
type RecordingMail struct {
	mu     sync.Mutex
	Sent   []SentMail
	Fail   error
	Calls  int
	Unread int
}

// SentMail is one recorded MailSender.Send call.
type SentMail struct {
	To      string
	Subject string
	Body    string
}

// Send records the message or returns the configured failure.
func (m *RecordingMail) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Fail != nil {
		return m.Fail
	}
	m.Sent = append(m.Sent, SentMail{To: to, Subject: subject, Body: body})
	return nil
}

// UnreadCount returns the configured unread total.
func (m *RecordingMail) UnreadCount(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return 0, m.Fail
	}
	return m.Unread, nil
}

// StaticNotes implements NotesStore over fixed candidates and contents.
type StaticNotes struct {
	mu         sync.Mutex
	Candidates []Candidate
	Contents   map[string]NoteContent
	CreatedIDs []string
	SearchErr  error
	FetchErr   error
	CreateErr  error
}

// Search returns the configured candidates.
func (n *StaticNotes) Search(_ context.Context, _ string) ([]Candidate, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.SearchErr != nil {
		return nil, n.SearchErr
	}
	return n.Candidates, nil
}

// Fetch returns the content registered for id.
func (n *StaticNotes) Fetch(_ context.Context, id string) (NoteContent, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.FetchErr != nil {
		return NoteContent{}, n.FetchErr
	}
	content, ok := n.Contents[id]
	if !ok {
		return NoteContent{}, fmt.Errorf("note not found: %s", id)
	}
	return content, nil
}

// Create registers a new note and returns a synthetic id.
func (n *StaticNotes) Create(_ context.Context, title, content string) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.CreateErr != nil {
		return "", n.CreateErr
	}
	id := fmt.Sprintf("note-%d", len(n.CreatedIDs)+1)
	n.CreatedIDs = append(n.CreatedIDs, id)
	if n.Contents == nil {
		n.Contents = map[string]NoteContent{}
	}
	n.Contents[id] = NoteContent{Title: title, Content: content, WordCount: len(strings.Fields(content))}
	return id, nil
}

// RecordingControl implements SystemControl and counts side effects.
type RecordingControl struct {
	mu           sync.Mutex
	DNDCalls     []bool
	MinimizeHits int
	Err          error
}

// SetDoNotDisturb records the requested state.
func (c *RecordingControl) SetDoNotDisturb(_ context.Context, enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.DNDCalls = append(c.DNDCalls, enabled)
	return nil
}

// MinimizeAllWindows records the call.
func (c *RecordingControl) MinimizeAllWindows(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.MinimizeHits++
	return nil
}

// RecordingSpeech implements Speech and captures spoken lines.
type RecordingSpeech struct {
	mu    sync.Mutex
	Lines []string
}

// Say records the line.
func (s *RecordingSpeech) Say(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Lines = append(s.Lines, text)
}

// Spoken returns a snapshot of everything said so far.
func (s *RecordingSpeech) Spoken() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.Lines))
	copy(out, s.Lines)
	return out
}

// StaticWeather implements WeatherSource with fixed reports.
type StaticWeather struct {
	Report     string
	SummaryMsg string
	Err        error
}

// Current returns the configured report.
func (w *StaticWeather) Current(_ context.Context, city string) (string, error) {
	if w.Err != nil {
		return "", w.Err
	}
	return fmt.Sprintf("%s in %s", w.Report, city), nil
}

// Summary returns the configured summary.
func (w *StaticWeather) Summary(_ context.Context) (string, error) {
	if w.Err != nil {
		return "", w.Err
	}
	return w.SummaryMsg, nil
}

// RecordingLauncher implements AppLauncher and records opened apps.
type RecordingLauncher struct {
	mu     sync.Mutex
	Opened []string
	Err    error
}

// Open records the app name.
func (l *RecordingLauncher) Open(_ context.Context, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return l.Err
	}
	l.Opened = append(l.Opened, name)
	return nil
}

// StaticStats implements SystemStats with fixed readings.
type StaticStats struct {
	BatteryStatus BatteryStatus
	CPU           float64
	Memory        float64
	Err           error
}

// Battery returns the configured reading.
func (s *StaticStats) Battery(_ context.Context) (BatteryStatus, error) {
	if s.Err != nil {
		return BatteryStatus{}, s.Err
	}
	return s.BatteryStatus, nil
}

// CPUPercent returns the configured reading.
func (s *StaticStats) CPUPercent(_ context.Context) (float64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return s.CPU, nil
}

// MemoryPercent returns the configured reading.
func (s *StaticStats) MemoryPercent(_ context.Context) (float64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return s.Memory, nil
}
