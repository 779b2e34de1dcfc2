package proactive

import (
	"context"
	"fmt"
	"time"

	"aria/internal/notify"
)

// pollHealth checks battery and CPU. One cooldown timestamp gates the
// whole channel: after any alert, every condition stays quiet for the
// cooldown window.
func (m *Monitor) pollHealth(ctx context.Context) error {
	if m.stats == nil {
		return nil
	}
	now := m.now()

	m.mu.Lock()
	cooling := !m.lastHealthAlert.IsZero() && now.Sub(m.lastHealthAlert) < m.cfg.AlertCooldown
	m.mu.Unlock()
	if cooling {
		return nil
	}

	battery, err := m.stats.Battery(ctx)
	if err != nil {
		return fmt.Errorf("read battery: %w", err)
	}
	if battery.Present && !battery.Plugged && battery.Percent <= m.cfg.BatteryThreshold {
		m.healthAlert(now, "Low battery",
			fmt.Sprintf("Battery is down to %d%%. You might want to plug in.", battery.Percent))
		return nil
	}

	cpu, err := m.stats.CPUPercent(ctx)
	if err != nil {
		return fmt.Errorf("read cpu: %w", err)
	}
	if cpu >= m.cfg.CPUThreshold {
		m.healthAlert(now, "High CPU usage",
			fmt.Sprintf("CPU usage has been at %.0f%% for a while. Something may be stuck.", cpu))
	}
	return nil
}

func (m *Monitor) healthAlert(now time.Time, title, body string) {
	m.mu.Lock()
	m.lastHealthAlert = now
	m.mu.Unlock()

	m.center.Publish(notify.Notification{Kind: notify.KindHealth, Title: title, Body: body})
	if m.metrics != nil {
		m.metrics.HealthAlerts.Inc()
	}
}
