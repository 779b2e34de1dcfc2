// Package dialog owns per-session conversation state: the single open
// pending interaction, the wake word, and recent history. Resolution
// decisions are pure; side effects stay with the caller.
package dialog

import "aria/internal/ports"

// Kind discriminates the pending-interaction union.
type Kind int

const (
	// KindNone means no interaction is open; turns classify normally.
	KindNone Kind = iota
	// KindEmailConfirmation means a drafted email awaits yes/no.
	KindEmailConfirmation
	// KindSelection means the user must pick one of several candidates.
	KindSelection
)

// EmailDraft is a composed, not-yet-sent email held for confirmation.
type EmailDraft struct {
	To      string
	Subject string
	Body    string
}

// Pending is the tagged union of open interactions. At most one field
// beyond Kind is meaningful: Draft for KindEmailConfirmation,
// Candidates for KindSelection.
type Pending struct {
	Kind       Kind
	Draft      EmailDraft
	Candidates []ports.Candidate
	// Tries counts failed resolution attempts for KindSelection.
	Tries int
}

// None reports whether no interaction is open.
func (p Pending) None() bool { return p.Kind == KindNone }
