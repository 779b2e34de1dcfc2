// Package proactive runs the background loops that watch the calendar
// and the host: meeting reminders, focus-mode control, and health
// alerts. Each loop is independent, cancellable, and survives any
// collaborator failure.
package proactive

import (
	"context"
	"sync"
	"time"

	"aria/internal/config"
	"aria/internal/logging"
	"aria/internal/metrics"
	"aria/internal/notify"
	"aria/internal/ports"
)

// reminderKey dedups one (event, threshold) pair for the process
// lifetime.
type reminderKey struct {
	eventID string
	level   string
}

// Reminder threshold levels.
const (
	levelUrgent   = "urgent"
	levelStandard = "standard"
)

// Monitor owns the three background loops. All mutable state is
// written only by the loops themselves; readers go through snapshot
// accessors.
type Monitor struct {
	cfg      config.MonitorConfig
	calendar ports.CalendarSource
	model    ports.LanguageModel
	launcher ports.AppLauncher
	control  ports.SystemControl
	stats    ports.SystemStats
	weather  ports.WeatherSource
	center   *notify.Center
	metrics  *metrics.Metrics
	logger   logging.Logger
	now      func() time.Time

	mu              sync.Mutex
	reminded        map[reminderKey]struct{}
	focusActive     bool
	lastHealthAlert time.Time
	lastBriefing    string

	stopOnce sync.Once
	cancel   context.CancelFunc
	started  bool
	wg       sync.WaitGroup
}

// Collaborators groups the external systems the monitor polls and
// drives. Any field may be nil; the matching behavior is skipped.
type Collaborators struct {
	Calendar ports.CalendarSource
	Model    ports.LanguageModel
	Launcher ports.AppLauncher
	Control  ports.SystemControl
	Stats    ports.SystemStats
	Weather  ports.WeatherSource
}

// NewMonitor creates a Monitor publishing through center.
func NewMonitor(cfg config.MonitorConfig, col Collaborators, center *notify.Center, m *metrics.Metrics, logger logging.Logger) *Monitor {
	return &Monitor{
		cfg:      cfg,
		calendar: col.Calendar,
		model:    col.Model,
		launcher: col.Launcher,
		control:  col.Control,
		stats:    col.Stats,
		weather:  col.Weather,
		center:   center,
		metrics:  m,
		logger:   logging.OrNop(logger),
		now:      time.Now,
		reminded: make(map[reminderKey]struct{}),
	}
}

// Start launches the reminder, focus, and health loops. It is a no-op
// when already started.
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	m.wg.Add(3)
	go m.loop(ctx, "reminder", m.cfg.ReminderInterval, m.pollReminders)
	go m.loop(ctx, "focus", m.cfg.FocusInterval, m.pollFocus)
	go m.loop(ctx, "health", m.cfg.HealthInterval, m.pollHealth)
	m.logger.Info("proactive monitor started")
}

// Stop interrupts the loops and waits for them to exit.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() {
		if m.cancel != nil {
			m.cancel()
		}
		m.wg.Wait()
		m.logger.Info("proactive monitor stopped")
	})
}

// loop polls immediately, then on every interval tick. A poll error is
// logged and shortens the next sleep to the error backoff; the loop
// only exits when ctx is cancelled.
func (m *Monitor) loop(ctx context.Context, name string, interval time.Duration, poll func(context.Context) error) {
	defer m.wg.Done()
	for {
		next := interval
		if err := poll(ctx); err != nil && ctx.Err() == nil {
			m.logger.Warn("%s loop: %v", name, err)
			if m.metrics != nil {
				m.metrics.MonitorErrors.WithLabelValues(name).Inc()
			}
			if m.cfg.ErrorBackoff > 0 && m.cfg.ErrorBackoff < next {
				next = m.cfg.ErrorBackoff
			}
		}

		timer := time.NewTimer(next)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// FocusActive reports the current focus-mode state.
func (m *Monitor) FocusActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.focusActive
}

// quietHours reports whether proactive reminders are suppressed at t.
func (m *Monitor) quietHours(t time.Time) bool {
	hour := t.Hour()
	return hour < m.cfg.QuietHourStart || hour >= m.cfg.QuietHourEnd
}
