package tts

import (
	"context"
	"sync"
	"time"

	"aria/internal/logging"
)

// Queue is a fire-and-forget speaker. Say enqueues text and returns
// immediately; a single worker synthesizes and plays items in order.
// Queue implements ports.Speech.
type Queue struct {
	provider Provider
	playback Playback
	voice    string
	logger   logging.Logger

	items chan string
	stop  chan struct{}
	done  chan struct{}
	once  sync.Once
}

// NewQueue creates a speaker queue. playback may be nil, in which case
// synthesized audio is discarded (useful when only the text surface matters).
func NewQueue(provider Provider, playback Playback, voice string, logger logging.Logger) *Queue {
	return &Queue{
		provider: provider,
		playback: playback,
		voice:    voice,
		logger:   logging.OrNop(logger),
		items:    make(chan string, 32),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the worker goroutine.
func (q *Queue) Start() {
	go q.worker()
}

// Stop drains nothing further and waits for the in-flight item to finish.
func (q *Queue) Stop() {
	q.once.Do(func() { close(q.stop) })
	<-q.done
}

// Say queues text for speaking. When the queue is full the item is
// dropped rather than blocking the caller.
func (q *Queue) Say(text string) {
	clean := CleanForAudio(text)
	if clean == "" {
		return
	}
	select {
	case q.items <- clean:
	default:
		q.logger.Warn("tts: queue full, dropping item")
	}
}

func (q *Queue) worker() {
	defer close(q.done)
	for {
		select {
		case <-q.stop:
			return
		case text := <-q.items:
			q.speak(text)
		}
	}
}

func (q *Queue) speak(text string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := q.provider.Synthesize(ctx, Request{Text: text, Voice: q.voice})
	if err != nil {
		q.logger.Warn("tts: synthesis failed via %s: %v", q.provider.Name(), err)
		return
	}
	if q.playback != nil {
		q.playback(result)
	}
}
