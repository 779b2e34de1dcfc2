package notify

import (
	"testing"
	"time"

	"aria/internal/ports"
)

func TestPublishSpeaksAndStores(t *testing.T) {
	speech := &ports.RecordingSpeech{}
	c := NewCenter(speech, nil)

	published := c.Publish(Notification{Kind: KindReminder, Title: "Heads up", Body: "Standup in 5 minutes"})

	if published.ID == "" {
		t.Error("published notification must carry an id")
	}
	if published.CreatedAt.IsZero() {
		t.Error("published notification must be timestamped")
	}
	spoken := speech.Spoken()
	if len(spoken) != 1 || spoken[0] != "Standup in 5 minutes" {
		t.Errorf("speech fanout wrong: %v", spoken)
	}
	history := c.History()
	if len(history) != 1 || history[0].Kind != KindReminder {
		t.Errorf("history wrong: %v", history)
	}
}

func TestSubscribeReceivesLive(t *testing.T) {
	c := NewCenter(nil, nil)
	ch, cancel := c.Subscribe()
	defer cancel()

	c.Publish(Notification{Kind: KindFocus, Body: "Focus mode on"})

	select {
	case n := <-ch:
		if n.Kind != KindFocus {
			t.Errorf("got kind %q", n.Kind)
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber never received the notification")
	}
}

func TestPublishNeverBlocksOnSlowSubscriber(t *testing.T) {
	c := NewCenter(nil, nil)
	_, cancel := c.Subscribe()
	defer cancel()

	// Fill the subscriber buffer and keep publishing; Publish must
	// return promptly every time.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			c.Publish(Notification{Kind: KindHealth, Body: "alert"})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
}

func TestHistoryBounded(t *testing.T) {
	c := NewCenter(nil, nil)
	for i := 0; i < historySize+10; i++ {
		c.Publish(Notification{Kind: KindHealth, Body: "alert"})
	}
	if got := len(c.History()); got != historySize {
		t.Errorf("history must cap at %d, got %d", historySize, got)
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	c := NewCenter(nil, nil)
	_, cancel := c.Subscribe()
	cancel()
	cancel()
}
