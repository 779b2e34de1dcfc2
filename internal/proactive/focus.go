package proactive

import (
	"context"
	"fmt"
	"strings"

	"aria/internal/notify"
	"aria/internal/ports"
)

// pollFocus recomputes focus-mode state from scratch: active exactly
// when a keyword-matching event's window contains now. Side effects
// fire only on edges.
func (m *Monitor) pollFocus(ctx context.Context) error {
	if m.calendar == nil {
		return nil
	}
	now := m.now()
	events, err := m.calendar.UpcomingEvents(ctx, m.cfg.EventLimit)
	if err != nil {
		return fmt.Errorf("fetch events for focus check: %w", err)
	}

	var active bool
	var current ports.TrackedEvent
	for _, event := range events {
		if event.AllDay || !m.isFocusEvent(event.Summary) {
			continue
		}
		if !now.Before(event.Start) && now.Before(event.End) {
			active = true
			current = event
			break
		}
	}

	m.mu.Lock()
	was := m.focusActive
	m.focusActive = active
	m.mu.Unlock()

	switch {
	case active && !was:
		m.enterFocus(ctx, current)
	case !active && was:
		m.exitFocus(ctx)
	}
	return nil
}

func (m *Monitor) isFocusEvent(summary string) bool {
	summary = strings.ToLower(summary)
	for _, kw := range m.cfg.FocusKeywords {
		if strings.Contains(summary, kw) {
			return true
		}
	}
	return false
}

func (m *Monitor) enterFocus(ctx context.Context, event ports.TrackedEvent) {
	if m.control != nil {
		if err := m.control.SetDoNotDisturb(ctx, true); err != nil {
			m.logger.Warn("focus: enabling do-not-disturb failed: %v", err)
		}
		if err := m.control.MinimizeAllWindows(ctx); err != nil {
			m.logger.Warn("focus: minimizing windows failed: %v", err)
		}
	}
	m.center.Publish(notify.Notification{
		Kind:  notify.KindFocus,
		Title: "Focus mode on",
		Body:  fmt.Sprintf("Starting %s. Notifications are silenced until %s.", event.Summary, event.End.Format("3:04 PM")),
	})
	if m.metrics != nil {
		m.metrics.FocusTransitions.Inc()
		m.metrics.FocusActive.Set(1)
	}
}

func (m *Monitor) exitFocus(ctx context.Context) {
	if m.control != nil {
		if err := m.control.SetDoNotDisturb(ctx, false); err != nil {
			m.logger.Warn("focus: disabling do-not-disturb failed: %v", err)
		}
	}
	m.center.Publish(notify.Notification{
		Kind:  notify.KindFocus,
		Title: "Focus mode off",
		Body:  "Focus session over. Notifications are back on.",
	})
	if m.metrics != nil {
		m.metrics.FocusTransitions.Inc()
		m.metrics.FocusActive.Set(0)
	}
}
