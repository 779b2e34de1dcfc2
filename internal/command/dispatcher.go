// Package command maps classified intents to handlers. Every handler
// returns a user-visible response string; collaborator failures become
// apologetic text and never escape as errors or panics.
package command

import (
	"context"
	"fmt"
	"time"

	"aria/internal/dialog"
	"aria/internal/intent"
	"aria/internal/logging"
	"aria/internal/ports"
)

// defaultCallTimeout bounds every collaborator call made by a handler.
const defaultCallTimeout = 15 * time.Second

// UIAction is one structured payload the front end may act on alongside
// the response text.
type UIAction struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Response is what a handler produces for one turn.
type Response struct {
	Text     string    `json:"text"`
	UIAction *UIAction `json:"ui_action,omitempty"`
}

// Request carries one classified turn into a handler.
type Request struct {
	// Text is the normalized turn text, for fallback extraction.
	Text    string
	Result  intent.Result
	Session *dialog.Session
}

// Collaborators groups the external systems handlers may call. Any
// field may be nil; the matching handlers degrade to an apology.
type Collaborators struct {
	Model    ports.LanguageModel
	Calendar ports.CalendarSource
	Mail     ports.MailSender
	Inbox    ports.MailChecker
	Notes    ports.NotesStore
	Control  ports.SystemControl
	Weather  ports.WeatherSource
	Launcher ports.AppLauncher
	Stats    ports.SystemStats
}

// Dispatcher routes intents to handlers.
type Dispatcher struct {
	col     Collaborators
	library []string
	logger  logging.Logger
	now     func() time.Time
	timeout time.Duration
}

// NewDispatcher creates a Dispatcher. library lists locally playable
// song titles for fuzzy matching; it may be empty.
func NewDispatcher(col Collaborators, library []string, logger logging.Logger) *Dispatcher {
	return &Dispatcher{
		col:     col,
		library: library,
		logger:  logging.OrNop(logger),
		now:     time.Now,
		timeout: defaultCallTimeout,
	}
}

// Dispatch runs the handler for the classified intent. It never panics
// past its own boundary.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("dispatch: handler panic for %s: %v", req.Result.Intent, r)
			resp = Response{Text: "Sorry, something went wrong handling that."}
		}
	}()

	switch req.Result.Intent {
	case intent.WebOpen:
		return d.handleWebOpen(req)
	case intent.AppOpen:
		return d.handleAppOpen(ctx, req)
	case intent.WebSearch:
		return d.handleWebSearch(req)
	case intent.MusicPlay:
		return d.handleMusicPlay(req)
	case intent.EmailSend:
		return d.handleEmailSend(ctx, req)
	case intent.EmailCheck:
		return d.handleEmailCheck(ctx)
	case intent.WeatherCheck:
		return d.handleWeather(ctx, req)
	case intent.CalendarQuery:
		return d.handleCalendarQuery(ctx)
	case intent.CalendarCreate:
		return d.handleCalendarCreate(ctx, req)
	case intent.NotesQuery:
		return d.handleNotesQuery(ctx, req)
	case intent.NotesCreate:
		return d.handleNotesCreate(ctx, req)
	case intent.TimeCheck:
		return Response{Text: fmt.Sprintf("It's %s.", d.now().Format("3:04 PM"))}
	case intent.DateCheck:
		return Response{Text: fmt.Sprintf("Today is %s.", d.now().Format("Monday, January 2, 2006"))}
	case intent.BatteryCheck:
		return d.handleBattery(ctx)
	case intent.CPUCheck:
		return d.handleCPU(ctx)
	case intent.RAMCheck:
		return d.handleRAM(ctx)
	case intent.SystemStats:
		return d.handleSystemStats(ctx)
	case intent.FocusModeOn:
		return d.handleFocus(ctx, true)
	case intent.FocusModeOff:
		return d.handleFocus(ctx, false)
	case intent.MinimizeAll:
		return d.handleMinimize(ctx)
	default:
		return d.handleGeneralChat(ctx, req)
	}
}

// callCtx bounds one collaborator call.
func (d *Dispatcher) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d.timeout)
}

func (d *Dispatcher) modelUp() bool {
	return d.col.Model != nil && d.col.Model.Available()
}

func completionJSON(system, prompt string) ports.CompletionRequest {
	return ports.CompletionRequest{System: system, Prompt: prompt, ForceJSON: true}
}

func completionText(system, prompt string) ports.CompletionRequest {
	return ports.CompletionRequest{System: system, Prompt: prompt}
}
