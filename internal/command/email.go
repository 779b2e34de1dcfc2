package command

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"aria/internal/dialog"
)

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// decodeModelJSON extracts and decodes the first JSON object in raw,
// repairing common model formatting damage before giving up.
func decodeModelJSON(raw string, out any) error {
	match := jsonObjectPattern.FindString(raw)
	if match == "" {
		return fmt.Errorf("no JSON object in model output")
	}
	if err := json.Unmarshal([]byte(match), out); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(match)
		if repairErr != nil {
			return fmt.Errorf("decode model output: %w", err)
		}
		if err := json.Unmarshal([]byte(repaired), out); err != nil {
			return fmt.Errorf("decode repaired model output: %w", err)
		}
	}
	return nil
}

const extractEmailSystem = "You extract email fields from a user command. Return ONLY JSON."

// handleEmailSend drafts an email and opens a confirmation; it never
// sends as a direct effect of classification.
func (d *Dispatcher) handleEmailSend(ctx context.Context, req Request) Response {
	if d.col.Mail == nil {
		return Response{Text: "Sorry, email isn't set up on this device."}
	}
	if !d.modelUp() {
		return Response{Text: "I need my language model to draft emails, and it's unavailable right now."}
	}

	to := req.Result.Param("to")
	subject := req.Result.Param("subject")
	bodyContext := req.Result.Param("body")

	if to == "" || subject == "" {
		extracted, err := d.extractEmailFields(ctx, req.Text)
		if err != nil {
			d.logger.Warn("email field extraction failed: %v", err)
		} else {
			if to == "" {
				to = extracted.To
			}
			if subject == "" {
				subject = extracted.Subject
			}
			if bodyContext == "" {
				bodyContext = extracted.Context
			}
		}
	}

	if to == "" {
		return Response{Text: "Who should I send the email to?"}
	}
	if subject == "" {
		subject = "Quick note"
	}

	body, err := d.draftEmailBody(ctx, to, subject, bodyContext)
	if err != nil {
		d.logger.Warn("email drafting failed: %v", err)
		return Response{Text: "Sorry, I couldn't draft that email right now."}
	}

	draft := dialog.EmailDraft{To: to, Subject: subject, Body: body}
	req.Session.SetPendingEmail(draft)

	return Response{
		Text: fmt.Sprintf("I've drafted an email to %s with the subject %q. Should I send it?", to, subject),
		UIAction: &UIAction{Type: "email_preview", Payload: map[string]any{
			"to": to, "subject": subject, "body": body,
		}},
	}
}

type emailFields struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Context string `json:"context"`
}

func (d *Dispatcher) extractEmailFields(ctx context.Context, text string) (emailFields, error) {
	prompt := fmt.Sprintf(`Extract the recipient, subject, and body context from this email command.

COMMAND: %q

Return ONLY a JSON object: {"to": "...", "subject": "...", "context": "..."}
Use "" for anything the command does not state.`, text)

	cctx, cancel := d.callCtx(ctx)
	defer cancel()
	raw, err := d.col.Model.Complete(cctx, completionJSON(extractEmailSystem, prompt))
	if err != nil {
		return emailFields{}, fmt.Errorf("extract email fields: %w", err)
	}
	var fields emailFields
	if err := decodeModelJSON(raw, &fields); err != nil {
		return emailFields{}, err
	}
	fields.To = strings.TrimSpace(fields.To)
	fields.Subject = strings.TrimSpace(fields.Subject)
	fields.Context = strings.TrimSpace(fields.Context)
	return fields, nil
}

func (d *Dispatcher) draftEmailBody(ctx context.Context, to, subject, bodyContext string) (string, error) {
	prompt := fmt.Sprintf(`Write a short, polite email body.

RECIPIENT: %s
SUBJECT: %s
CONTEXT: %s

Return only the body text, no subject line, no signature placeholders.`, to, subject, bodyContext)

	cctx, cancel := d.callCtx(ctx)
	defer cancel()
	body, err := d.col.Model.Complete(cctx, completionText("You draft concise professional emails.", prompt))
	if err != nil {
		return "", fmt.Errorf("draft email body: %w", err)
	}
	return strings.TrimSpace(body), nil
}

// SendDraft delivers a confirmed draft. Called by the orchestrator when
// the user answers yes to an open email confirmation.
func (d *Dispatcher) SendDraft(ctx context.Context, draft dialog.EmailDraft) Response {
	if d.col.Mail == nil {
		return Response{Text: "Sorry, email isn't set up on this device."}
	}
	cctx, cancel := d.callCtx(ctx)
	defer cancel()
	if err := d.col.Mail.Send(cctx, draft.To, draft.Subject, draft.Body); err != nil {
		d.logger.Warn("mail send to %s failed: %v", draft.To, err)
		return Response{Text: "Sorry, I couldn't send the email. It has been discarded."}
	}
	return Response{Text: fmt.Sprintf("Done, the email to %s is on its way.", draft.To)}
}

func (d *Dispatcher) handleEmailCheck(ctx context.Context) Response {
	if d.col.Inbox == nil {
		return Response{Text: "Sorry, I can't check your inbox on this device."}
	}
	cctx, cancel := d.callCtx(ctx)
	defer cancel()
	unread, err := d.col.Inbox.UnreadCount(cctx)
	if err != nil {
		d.logger.Warn("unread count failed: %v", err)
		return Response{Text: "Sorry, I couldn't reach your inbox just now."}
	}
	switch unread {
	case 0:
		return Response{Text: "Your inbox is all caught up, no unread emails."}
	case 1:
		return Response{Text: "You have 1 unread email."}
	default:
		return Response{Text: fmt.Sprintf("You have %d unread emails.", unread)}
	}
}
