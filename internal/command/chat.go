package command

import (
	"context"
	"strings"
)

const chatSystem = "You are Aria, a friendly and concise voice assistant. " +
	"Answer in one or two short sentences suitable for being read aloud."

// cannedChat keeps general conversation alive when the model is down.
var cannedChat = []string{
	"I'm not sure how to help with that one.",
	"I didn't quite catch that. Could you rephrase?",
}

func (d *Dispatcher) handleGeneralChat(ctx context.Context, req Request) Response {
	if !d.modelUp() {
		return Response{Text: cannedChat[len(req.Text)%len(cannedChat)]}
	}

	cctx, cancel := d.callCtx(ctx)
	defer cancel()
	reply, err := d.col.Model.Complete(cctx, completionText(chatSystem, req.Text))
	if err != nil || strings.TrimSpace(reply) == "" {
		d.logger.Warn("chat completion failed: %v", err)
		return Response{Text: cannedChat[0]}
	}
	return Response{Text: strings.TrimSpace(reply)}
}
