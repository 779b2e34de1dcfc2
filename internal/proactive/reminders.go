package proactive

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aria/internal/notify"
	"aria/internal/ports"
)

// meetingApps maps keywords in an event summary to the app worth
// launching just before it starts.
var meetingApps = []struct {
	keyword string
	app     string
}{
	{"zoom", "Zoom"},
	{"teams", "Microsoft Teams"},
	{"meet", "Google Chrome"},
	{"discord", "Discord"},
	{"standup", "Zoom"},
}

// pollReminders is one pass of the reminder loop: fetch events, fire
// any due thresholds, and handle the morning briefing.
func (m *Monitor) pollReminders(ctx context.Context) error {
	if m.calendar == nil {
		return nil
	}
	now := m.now()
	events, err := m.calendar.UpcomingEvents(ctx, m.cfg.EventLimit)
	if err != nil {
		return fmt.Errorf("fetch upcoming events: %w", err)
	}

	if m.quietHours(now) {
		return nil
	}

	if m.cfg.MorningBriefing {
		m.maybeMorningBriefing(ctx, now)
	}

	for _, event := range events {
		if event.AllDay || event.ID == "" {
			continue
		}
		minutes := event.Start.Sub(now).Minutes()
		switch {
		case minutes > 0 && minutes <= 5:
			m.fireReminder(ctx, event, levelUrgent, minutes)
		case minutes > 5 && minutes <= 30:
			m.fireReminder(ctx, event, levelStandard, minutes)
		}
	}
	return nil
}

// fireReminder emits at most one notification per (event, level).
// Firing the urgent level also marks the standard one so a stale
// half-hour notice never follows the five-minute one.
func (m *Monitor) fireReminder(ctx context.Context, event ports.TrackedEvent, level string, minutes float64) {
	key := reminderKey{eventID: event.ID, level: level}

	m.mu.Lock()
	if _, seen := m.reminded[key]; seen {
		m.mu.Unlock()
		return
	}
	m.reminded[key] = struct{}{}
	if level == levelUrgent {
		m.reminded[reminderKey{eventID: event.ID, level: levelStandard}] = struct{}{}
	}
	m.mu.Unlock()

	body := m.reminderMessage(ctx, event, level, minutes)
	m.center.Publish(notify.Notification{
		Kind:  notify.KindReminder,
		Title: event.Summary,
		Body:  body,
	})
	if m.metrics != nil {
		m.metrics.RemindersFired.WithLabelValues(level).Inc()
	}

	if level == levelUrgent {
		m.launchMeetingApp(ctx, event)
	}
}

// reminderMessage asks the model for a short friendly reminder, falling
// back to a deterministic template when it is unavailable or fails.
func (m *Monitor) reminderMessage(ctx context.Context, event ports.TrackedEvent, level string, minutes float64) string {
	template := fmt.Sprintf("Heads up: %s starts in %d minutes.", event.Summary, int(minutes))
	if level == levelUrgent {
		template = fmt.Sprintf("%s starts in %d minutes, time to get ready.", event.Summary, int(minutes))
	}

	if m.model == nil || !m.model.Available() {
		return template
	}
	prompt := fmt.Sprintf(
		"Write one short spoken reminder that the meeting %q starts in %d minutes. One sentence, no emoji.",
		event.Summary, int(minutes))
	reply, err := m.model.Complete(ctx, ports.CompletionRequest{
		System: "You write brief, friendly spoken reminders.",
		Prompt: prompt,
	})
	if err != nil || strings.TrimSpace(reply) == "" {
		m.logger.Warn("reminder message generation failed: %v", err)
		return template
	}
	return strings.TrimSpace(reply)
}

// launchMeetingApp opens the app implied by the event summary, if any.
func (m *Monitor) launchMeetingApp(ctx context.Context, event ports.TrackedEvent) {
	if m.launcher == nil {
		return
	}
	summary := strings.ToLower(event.Summary)
	for _, entry := range meetingApps {
		if strings.Contains(summary, entry.keyword) {
			if err := m.launcher.Open(ctx, entry.app); err != nil {
				m.logger.Warn("launching %s for %q failed: %v", entry.app, event.Summary, err)
			}
			return
		}
	}
}

// maybeMorningBriefing publishes one weather briefing per day before
// 11:00. A failed weather call leaves the day unmarked so a later poll
// retries.
func (m *Monitor) maybeMorningBriefing(ctx context.Context, now time.Time) {
	if now.Hour() >= 11 || m.weather == nil {
		return
	}
	day := now.Format("2006-01-02")

	m.mu.Lock()
	done := m.lastBriefing == day
	m.mu.Unlock()
	if done {
		return
	}

	summary, err := m.weather.Summary(ctx)
	if err != nil {
		m.logger.Warn("morning briefing weather failed: %v", err)
		return
	}

	m.mu.Lock()
	m.lastBriefing = day
	m.mu.Unlock()

	m.center.Publish(notify.Notification{
		Kind:  notify.KindBriefing,
		Title: "Good morning",
		Body:  fmt.Sprintf("Good morning! %s", summary),
	})
}
