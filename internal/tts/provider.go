// Package tts implements the Speech collaborator: a queued, asynchronous
// speaker over pluggable synthesis providers.
package tts

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// Request is one synthesis request.
type Request struct {
	Text  string
	Voice string
}

// ProviderResult carries synthesized audio back from a provider.
type ProviderResult struct {
	Audio       []byte
	ContentType string
	Duration    time.Duration
}

// Provider synthesizes speech audio from text.
type Provider interface {
	Name() string
	Synthesize(ctx context.Context, req Request) (ProviderResult, error)
}

// Playback consumes synthesized audio. The host application supplies a
// real audio sink; tests supply a recorder.
type Playback func(result ProviderResult)

var (
	markdownEmphasis = regexp.MustCompile(`[\*_]{1,3}`)
	markdownHeader   = regexp.MustCompile(`(?m)^#+\s*`)
	markdownLink     = regexp.MustCompile(`\[([^\]]+)\]\([^\)]+\)`)
	markdownBullet   = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
)

// CleanForAudio strips markdown formatting that reads poorly when spoken.
func CleanForAudio(text string) string {
	text = markdownLink.ReplaceAllString(text, "$1")
	text = markdownEmphasis.ReplaceAllString(text, "")
	text = markdownHeader.ReplaceAllString(text, "")
	text = markdownBullet.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "`", "")
	return strings.TrimSpace(text)
}
