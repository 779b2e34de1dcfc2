package proactive

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"aria/internal/config"
	"aria/internal/notify"
	"aria/internal/ports"
)

var baseNow = time.Date(2025, time.March, 14, 14, 0, 0, 0, time.UTC)

type fixture struct {
	monitor  *Monitor
	center   *notify.Center
	speech   *ports.RecordingSpeech
	calendar *ports.StaticCalendar
	control  *ports.RecordingControl
	launcher *ports.RecordingLauncher
	stats    *ports.StaticStats
}

func newFixture(cfg config.MonitorConfig) *fixture {
	f := &fixture{
		speech:   &ports.RecordingSpeech{},
		calendar: &ports.StaticCalendar{},
		control:  &ports.RecordingControl{},
		launcher: &ports.RecordingLauncher{},
		stats:    &ports.StaticStats{},
	}
	f.center = notify.NewCenter(f.speech, nil)
	f.monitor = NewMonitor(cfg, Collaborators{
		Calendar: f.calendar,
		Launcher: f.launcher,
		Control:  f.control,
		Stats:    f.stats,
	}, f.center, nil, nil)
	f.monitor.now = func() time.Time { return baseNow }
	return f
}

func testConfig() config.MonitorConfig {
	cfg := config.DefaultMonitorConfig()
	cfg.MorningBriefing = false
	return cfg
}

func event(id, summary string, startsIn time.Duration) ports.TrackedEvent {
	start := baseNow.Add(startsIn)
	return ports.TrackedEvent{ID: id, Summary: summary, Start: start, End: start.Add(30 * time.Minute)}
}

func remindersOf(c *notify.Center) []notify.Notification {
	var out []notify.Notification
	for _, n := range c.History() {
		if n.Kind == notify.KindReminder {
			out = append(out, n)
		}
	}
	return out
}

func TestUrgentReminderFiresOnce(t *testing.T) {
	f := newFixture(testConfig())
	f.calendar.Events = []ports.TrackedEvent{event("e1", "Design review", 3*time.Minute)}

	for i := 0; i < 4; i++ {
		if err := f.monitor.pollReminders(context.Background()); err != nil {
			t.Fatalf("poll %d: %v", i, err)
		}
	}

	got := remindersOf(f.center)
	if len(got) != 1 {
		t.Fatalf("expected exactly one reminder across polls, got %d", len(got))
	}
	if !strings.Contains(got[0].Body, "3 minutes") {
		t.Errorf("template message wrong: %q", got[0].Body)
	}
}

func TestUrgentSuppressesLaterStandard(t *testing.T) {
	f := newFixture(testConfig())
	// Event ends in 3 minutes' time from its start; first seen inside
	// the urgent window.
	f.calendar.Events = []ports.TrackedEvent{event("e1", "Design review", 3*time.Minute)}
	if err := f.monitor.pollReminders(context.Background()); err != nil {
		t.Fatal(err)
	}

	// A later poll that would classify the event as standard (clock
	// moved back is impossible; simulate by re-filing the event 20
	// minutes out under the same id, as a rescheduled meeting would).
	f.calendar.Events = []ports.TrackedEvent{event("e1", "Design review", 20*time.Minute)}
	if err := f.monitor.pollReminders(context.Background()); err != nil {
		t.Fatal(err)
	}

	if got := remindersOf(f.center); len(got) != 1 {
		t.Errorf("urgent must retroactively mark standard, got %d reminders", len(got))
	}
}

func TestStandardThenUrgentBothFire(t *testing.T) {
	f := newFixture(testConfig())
	f.calendar.Events = []ports.TrackedEvent{event("e1", "Standup", 25*time.Minute)}
	if err := f.monitor.pollReminders(context.Background()); err != nil {
		t.Fatal(err)
	}

	f.calendar.Events = []ports.TrackedEvent{event("e1", "Standup", 4*time.Minute)}
	if err := f.monitor.pollReminders(context.Background()); err != nil {
		t.Fatal(err)
	}

	if got := remindersOf(f.center); len(got) != 2 {
		t.Errorf("expected standard then urgent, got %d reminders", len(got))
	}
}

func TestEventsOutsideWindowsIgnored(t *testing.T) {
	f := newFixture(testConfig())
	f.calendar.Events = []ports.TrackedEvent{
		event("far", "Planning", 2*time.Hour),
		event("past", "Yesterday", -time.Hour),
		{ID: "allday", Summary: "Conference", Start: baseNow, End: baseNow.Add(24 * time.Hour), AllDay: true},
	}
	if err := f.monitor.pollReminders(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := remindersOf(f.center); len(got) != 0 {
		t.Errorf("no reminder should fire, got %d", len(got))
	}
}

func TestQuietHoursSuppressReminders(t *testing.T) {
	f := newFixture(testConfig())
	night := time.Date(2025, time.March, 14, 2, 0, 0, 0, time.UTC)
	f.monitor.now = func() time.Time { return night }
	start := night.Add(3 * time.Minute)
	f.calendar.Events = []ports.TrackedEvent{{ID: "e1", Summary: "Red-eye call", Start: start, End: start.Add(time.Hour)}}

	if err := f.monitor.pollReminders(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := remindersOf(f.center); len(got) != 0 {
		t.Errorf("quiet hours must suppress reminders, got %d", len(got))
	}
}

func TestUrgentReminderLaunchesMeetingApp(t *testing.T) {
	f := newFixture(testConfig())
	f.calendar.Events = []ports.TrackedEvent{event("e1", "Zoom sync with design", 2*time.Minute)}

	if err := f.monitor.pollReminders(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(f.launcher.Opened) != 1 || f.launcher.Opened[0] != "Zoom" {
		t.Errorf("expected Zoom launch, got %v", f.launcher.Opened)
	}
}

func TestReminderUsesModelWhenAvailable(t *testing.T) {
	f := newFixture(testConfig())
	f.monitor.model = &ports.ScriptedModel{Responses: []string{"Design review kicks off in three minutes, grab your notes."}}
	f.calendar.Events = []ports.TrackedEvent{event("e1", "Design review", 3*time.Minute)}

	if err := f.monitor.pollReminders(context.Background()); err != nil {
		t.Fatal(err)
	}
	got := remindersOf(f.center)
	if len(got) != 1 || !strings.Contains(got[0].Body, "grab your notes") {
		t.Errorf("model-generated message not used: %v", got)
	}
}

func TestFocusModeEdgeTriggered(t *testing.T) {
	f := newFixture(testConfig())
	session := ports.TrackedEvent{
		ID: "f1", Summary: "Deep work block",
		Start: baseNow.Add(-10 * time.Minute), End: baseNow.Add(50 * time.Minute),
	}
	f.calendar.Events = []ports.TrackedEvent{session}

	for i := 0; i < 3; i++ {
		if err := f.monitor.pollFocus(context.Background()); err != nil {
			t.Fatal(err)
		}
	}

	if !f.monitor.FocusActive() {
		t.Fatal("focus mode should be active during the session")
	}
	if len(f.control.DNDCalls) != 1 || !f.control.DNDCalls[0] {
		t.Errorf("DND-on must fire exactly once, got %v", f.control.DNDCalls)
	}
	if f.control.MinimizeHits != 1 {
		t.Errorf("minimize must fire exactly once, got %d", f.control.MinimizeHits)
	}

	// Session over: the single exit edge fires DND-off once.
	f.calendar.Events = nil
	for i := 0; i < 3; i++ {
		if err := f.monitor.pollFocus(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if f.monitor.FocusActive() {
		t.Error("focus mode should be inactive after the session")
	}
	if len(f.control.DNDCalls) != 2 || f.control.DNDCalls[1] {
		t.Errorf("DND-off must fire exactly once, got %v", f.control.DNDCalls)
	}
}

func TestFocusIgnoresNonKeywordEvents(t *testing.T) {
	f := newFixture(testConfig())
	f.calendar.Events = []ports.TrackedEvent{{
		ID: "m1", Summary: "Quarterly review",
		Start: baseNow.Add(-5 * time.Minute), End: baseNow.Add(time.Hour),
	}}
	if err := f.monitor.pollFocus(context.Background()); err != nil {
		t.Fatal(err)
	}
	if f.monitor.FocusActive() {
		t.Error("non-keyword event must not activate focus mode")
	}
}

func TestLowBatteryAlertWithCooldown(t *testing.T) {
	f := newFixture(testConfig())
	f.stats.BatteryStatus = ports.BatteryStatus{Percent: 20, Plugged: false, Present: true}

	for i := 0; i < 3; i++ {
		if err := f.monitor.pollHealth(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if got := len(f.center.History()); got != 1 {
		t.Fatalf("cooldown must gate repeat alerts, got %d", got)
	}

	// Past the cooldown the alert may fire again.
	f.monitor.now = func() time.Time { return baseNow.Add(10 * time.Minute) }
	if err := f.monitor.pollHealth(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := len(f.center.History()); got != 2 {
		t.Errorf("expected second alert after cooldown, got %d", got)
	}
}

func TestChannelWideCooldownGatesOtherConditions(t *testing.T) {
	f := newFixture(testConfig())
	f.stats.BatteryStatus = ports.BatteryStatus{Percent: 20, Plugged: false, Present: true}
	if err := f.monitor.pollHealth(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Battery recovers but CPU spikes inside the cooldown window: the
	// shared timestamp keeps the channel quiet.
	f.stats.BatteryStatus = ports.BatteryStatus{Percent: 90, Plugged: true, Present: true}
	f.stats.CPU = 97
	if err := f.monitor.pollHealth(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := len(f.center.History()); got != 1 {
		t.Errorf("cooldown is channel-wide, got %d alerts", got)
	}
}

func TestHighCPUAlert(t *testing.T) {
	f := newFixture(testConfig())
	f.stats.BatteryStatus = ports.BatteryStatus{Percent: 90, Plugged: true, Present: true}
	f.stats.CPU = 95

	if err := f.monitor.pollHealth(context.Background()); err != nil {
		t.Fatal(err)
	}
	history := f.center.History()
	if len(history) != 1 || !strings.Contains(history[0].Body, "CPU") {
		t.Errorf("expected CPU alert, got %v", history)
	}
}

func TestPluggedInBatteryDoesNotAlert(t *testing.T) {
	f := newFixture(testConfig())
	f.stats.BatteryStatus = ports.BatteryStatus{Percent: 10, Plugged: true, Present: true}
	if err := f.monitor.pollHealth(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := len(f.center.History()); got != 0 {
		t.Errorf("plugged-in battery must not alert, got %d", got)
	}
}

func TestMorningBriefingOncePerDay(t *testing.T) {
	cfg := testConfig()
	cfg.MorningBriefing = true
	f := newFixture(cfg)
	f.monitor.weather = &ports.StaticWeather{SummaryMsg: "Clear skies, 18 degrees."}
	morning := time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)
	f.monitor.now = func() time.Time { return morning }

	for i := 0; i < 3; i++ {
		if err := f.monitor.pollReminders(context.Background()); err != nil {
			t.Fatal(err)
		}
	}

	var briefings int
	for _, n := range f.center.History() {
		if n.Kind == notify.KindBriefing {
			briefings++
		}
	}
	if briefings != 1 {
		t.Errorf("expected one briefing per day, got %d", briefings)
	}
}

func TestCollaboratorFailureDoesNotKillLoop(t *testing.T) {
	cfg := testConfig()
	cfg.ReminderInterval = 5 * time.Millisecond
	cfg.FocusInterval = 5 * time.Millisecond
	cfg.HealthInterval = 5 * time.Millisecond
	cfg.ErrorBackoff = time.Millisecond

	f := newFixture(cfg)
	f.calendar.SetErr(errors.New("calendar offline"))
	f.stats.Err = errors.New("sensors offline")

	f.monitor.Start()
	time.Sleep(50 * time.Millisecond)
	f.calendar.SetErr(nil)
	f.calendar.SetEvents([]ports.TrackedEvent{event("e1", "Standup", 3*time.Minute)})
	time.Sleep(50 * time.Millisecond)
	f.monitor.Stop()

	if got := remindersOf(f.center); len(got) != 1 {
		t.Errorf("loop should recover and fire the reminder once, got %d", len(got))
	}
}

func TestStopIsIdempotent(t *testing.T) {
	f := newFixture(testConfig())
	f.monitor.Start()
	f.monitor.Stop()
	f.monitor.Stop()
}
