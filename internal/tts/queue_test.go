package tts

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestCleanForAudio(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"**bold** and _italic_", "bold and italic"},
		{"## Header\nbody", "Header\nbody"},
		{"see [the docs](https://example.com) now", "see the docs now"},
		{"- item one\n- item two", "item one\nitem two"},
		{"`code`", "code"},
		{"  plain  ", "plain"},
	}
	for _, tc := range cases {
		if got := CleanForAudio(tc.in); got != tc.want {
			t.Errorf("CleanForAudio(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

type countingProvider struct {
	mu    sync.Mutex
	texts []string
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) Synthesize(_ context.Context, req Request) (ProviderResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.texts = append(p.texts, req.Text)
	return ProviderResult{Audio: []byte{1}, ContentType: "audio/wav"}, nil
}

func (p *countingProvider) snapshot() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.texts...)
}

func TestQueueSpeaksInOrder(t *testing.T) {
	provider := &countingProvider{}
	var played int
	var mu sync.Mutex

	queue := NewQueue(provider, func(ProviderResult) {
		mu.Lock()
		played++
		mu.Unlock()
	}, "", nil)
	queue.Start()

	queue.Say("first")
	queue.Say("second")
	queue.Say("")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(provider.snapshot()) == 2 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	queue.Stop()

	texts := provider.snapshot()
	if len(texts) != 2 {
		t.Fatalf("expected 2 synthesized items, got %d", len(texts))
	}
	if texts[0] != "first" || texts[1] != "second" {
		t.Errorf("unexpected order: %v", texts)
	}
	mu.Lock()
	defer mu.Unlock()
	if played != 2 {
		t.Errorf("expected playback for both items, got %d", played)
	}
}

func TestMockProviderGeneratesWAV(t *testing.T) {
	result, err := MockProvider{}.Synthesize(context.Background(), Request{Text: "hello there"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(result.Audio[:4]) != "RIFF" {
		t.Error("expected RIFF header")
	}
	if result.Duration < 2*time.Second {
		t.Errorf("expected minimum 2s duration, got %v", result.Duration)
	}
}
