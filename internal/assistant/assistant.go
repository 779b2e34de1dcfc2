// Package assistant wires normalization, dialogue state, classification,
// and dispatch into the single interpret operation the delivery layer
// calls.
package assistant

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"aria/internal/command"
	"aria/internal/dialog"
	"aria/internal/intent"
	"aria/internal/logging"
	"aria/internal/metrics"
	"aria/internal/proactive"
)

// Assistant is the conversation core: one Interpret call per user turn.
type Assistant struct {
	classifier *intent.Classifier
	dispatcher *command.Dispatcher
	sessions   *dialog.Manager
	monitor    *proactive.Monitor
	metrics    *metrics.Metrics
	logger     logging.Logger
	maxTries   int
	now        func() time.Time
}

// Options configures a new Assistant. Monitor and Metrics may be nil.
type Options struct {
	Classifier        *intent.Classifier
	Dispatcher        *command.Dispatcher
	Sessions          *dialog.Manager
	Monitor           *proactive.Monitor
	Metrics           *metrics.Metrics
	Logger            logging.Logger
	SelectionMaxTries int
}

// New creates an Assistant.
func New(opts Options) *Assistant {
	return &Assistant{
		classifier: opts.Classifier,
		dispatcher: opts.Dispatcher,
		sessions:   opts.Sessions,
		monitor:    opts.Monitor,
		metrics:    opts.Metrics,
		logger:     logging.OrNop(opts.Logger),
		maxTries:   opts.SelectionMaxTries,
		now:        time.Now,
	}
}

// StartMonitor launches the proactive loops, if a monitor is wired.
func (a *Assistant) StartMonitor() {
	if a.monitor != nil {
		a.monitor.Start()
	}
}

// StopMonitor stops the proactive loops.
func (a *Assistant) StopMonitor() {
	if a.monitor != nil {
		a.monitor.Stop()
	}
}

var wakeWordChange = regexp.MustCompile(`^(?:change|set) (?:my |the )?wake word to (\w+)$`)

// Interpret processes one user turn for the session and returns the
// response. It never returns an error: every failure mode maps to
// user-visible text.
func (a *Assistant) Interpret(ctx context.Context, sessionID, text string) command.Response {
	session := a.sessions.Session(sessionID)
	session.LockTurn()
	defer session.UnlockTurn()

	norm := intent.Normalize(text, session.WakeWord())
	if norm.WakeWordOnly {
		return command.Response{Text: Greeting(a.now())}
	}
	if norm.Text == "" {
		return command.Response{Text: "I didn't catch that. Could you say it again?"}
	}

	if m := wakeWordChange.FindStringSubmatch(norm.Text); m != nil {
		session.SetWakeWord(m[1])
		return command.Response{Text: fmt.Sprintf("Done. From now on, call me %s.", m[1])}
	}

	pending := session.Pending()
	resolution := dialog.Resolve(pending, norm.Text, a.maxTries)
	switch resolution.Action {
	case dialog.SendDraft:
		session.ClearPending()
		resp := a.dispatcher.SendDraft(ctx, pending.Draft)
		a.record(session, norm.Text, resp)
		return resp

	case dialog.DiscardDraft:
		session.ClearPending()
		return command.Response{Text: "Okay, I've discarded the draft."}

	case dialog.Supersede:
		session.ClearPending()
		// Fall through to classification for this same turn.

	case dialog.Select:
		session.ClearPending()
		resp := a.dispatcher.Summarize(ctx, pending.Candidates[resolution.Index])
		a.record(session, norm.Text, resp)
		return resp

	case dialog.Reprompt:
		if pending.Kind == dialog.KindSelection {
			session.RecordTry()
			return command.Response{Text: fmt.Sprintf("Please pick a number between 1 and %d.", len(pending.Candidates))}
		}
		return command.Response{Text: "Should I send the email? Yes or no."}

	case dialog.Abandon:
		session.ClearPending()
		return command.Response{Text: "No problem, let's leave it for now. Ask me again anytime."}
	}

	result := a.classifier.Classify(ctx, norm.Text, toExchanges(session.History()))
	if a.metrics != nil {
		a.metrics.Classifications.WithLabelValues(string(result.Intent), result.Source).Inc()
		a.metrics.Dispatches.WithLabelValues(string(result.Intent)).Inc()
	}
	a.logger.Debug("session %s: %s via %s", session.ID, result.Intent, result.Source)

	resp := a.dispatcher.Dispatch(ctx, command.Request{
		Text:    norm.Text,
		Result:  result,
		Session: session,
	})
	a.record(session, norm.Text, resp)
	return resp
}

func (a *Assistant) record(session *dialog.Session, userText string, resp command.Response) {
	session.AppendHistory("user", userText)
	session.AppendHistory("assistant", resp.Text)
}

func toExchanges(history []dialog.Exchange) []intent.Exchange {
	out := make([]intent.Exchange, len(history))
	for i, h := range history {
		out[i] = intent.Exchange{Role: h.Role, Content: h.Content}
	}
	return out
}
