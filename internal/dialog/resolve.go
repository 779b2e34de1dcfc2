package dialog

// Action is what the caller must do with the current turn.
type Action int

const (
	// Classify means no pending interaction intercepted the turn.
	Classify Action = iota
	// SendDraft means the user confirmed; send Pending.Draft and clear.
	SendDraft
	// DiscardDraft means the user declined; acknowledge and clear.
	DiscardDraft
	// Supersede means the turn starts a fresh email request; clear the
	// draft and classify this same turn.
	Supersede
	// Select means a candidate was chosen; Index is its 0-based position.
	Select
	// Reprompt means the turn did not resolve the interaction; keep it.
	Reprompt
	// Abandon means selection retries are exhausted; apologize and clear.
	Abandon
)

// Resolution is the outcome of routing one turn through the open
// pending interaction.
type Resolution struct {
	Action Action
	// Index is the 0-based candidate index for Select.
	Index int
}

// Resolve applies the transition table for the open interaction to the
// normalized turn text. It is pure: state updates and collaborator
// calls are the caller's job. maxTries bounds selection re-prompts;
// maxTries <= 0 means unbounded.
func Resolve(p Pending, text string, maxTries int) Resolution {
	switch p.Kind {
	case KindEmailConfirmation:
		if IsNewEmailRequest(text) {
			return Resolution{Action: Supersede}
		}
		if IsNegative(text) {
			return Resolution{Action: DiscardDraft}
		}
		if IsAffirmative(text) {
			return Resolution{Action: SendDraft}
		}
		return Resolution{Action: Reprompt}

	case KindSelection:
		if ord, ok := ParseOrdinal(text, len(p.Candidates)); ok {
			return Resolution{Action: Select, Index: ord - 1}
		}
		if maxTries > 0 && p.Tries+1 >= maxTries {
			return Resolution{Action: Abandon}
		}
		return Resolution{Action: Reprompt}

	default:
		return Resolution{Action: Classify}
	}
}
