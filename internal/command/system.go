package command

import (
	"context"
	"fmt"
)

func (d *Dispatcher) handleBattery(ctx context.Context) Response {
	if d.col.Stats == nil {
		return Response{Text: "Sorry, I can't read system stats on this device."}
	}
	cctx, cancel := d.callCtx(ctx)
	defer cancel()
	battery, err := d.col.Stats.Battery(cctx)
	if err != nil {
		d.logger.Warn("battery read failed: %v", err)
		return Response{Text: "Sorry, I couldn't read the battery status."}
	}
	if !battery.Present {
		return Response{Text: "This machine doesn't have a battery."}
	}
	state := "on battery power"
	if battery.Plugged {
		state = "plugged in"
	}
	return Response{Text: fmt.Sprintf("Battery is at %d%%, %s.", battery.Percent, state)}
}

func (d *Dispatcher) handleCPU(ctx context.Context) Response {
	if d.col.Stats == nil {
		return Response{Text: "Sorry, I can't read system stats on this device."}
	}
	cctx, cancel := d.callCtx(ctx)
	defer cancel()
	cpu, err := d.col.Stats.CPUPercent(cctx)
	if err != nil {
		d.logger.Warn("cpu read failed: %v", err)
		return Response{Text: "Sorry, I couldn't read the CPU usage."}
	}
	return Response{Text: fmt.Sprintf("CPU usage is at %.0f%%.", cpu)}
}

func (d *Dispatcher) handleRAM(ctx context.Context) Response {
	if d.col.Stats == nil {
		return Response{Text: "Sorry, I can't read system stats on this device."}
	}
	cctx, cancel := d.callCtx(ctx)
	defer cancel()
	mem, err := d.col.Stats.MemoryPercent(cctx)
	if err != nil {
		d.logger.Warn("memory read failed: %v", err)
		return Response{Text: "Sorry, I couldn't read the memory usage."}
	}
	return Response{Text: fmt.Sprintf("Memory usage is at %.0f%%.", mem)}
}

func (d *Dispatcher) handleSystemStats(ctx context.Context) Response {
	if d.col.Stats == nil {
		return Response{Text: "Sorry, I can't read system stats on this device."}
	}
	cctx, cancel := d.callCtx(ctx)
	defer cancel()

	parts := ""
	if battery, err := d.col.Stats.Battery(cctx); err == nil && battery.Present {
		parts += fmt.Sprintf("Battery %d%%", battery.Percent)
		if battery.Plugged {
			parts += " (plugged in)"
		}
	}
	if cpu, err := d.col.Stats.CPUPercent(cctx); err == nil {
		if parts != "" {
			parts += ", "
		}
		parts += fmt.Sprintf("CPU %.0f%%", cpu)
	}
	if mem, err := d.col.Stats.MemoryPercent(cctx); err == nil {
		if parts != "" {
			parts += ", "
		}
		parts += fmt.Sprintf("memory %.0f%%", mem)
	}
	if parts == "" {
		return Response{Text: "Sorry, I couldn't read any system stats just now."}
	}
	return Response{Text: parts + "."}
}

func (d *Dispatcher) handleFocus(ctx context.Context, on bool) Response {
	if d.col.Control == nil {
		return Response{Text: "Sorry, I can't change system settings on this device."}
	}
	cctx, cancel := d.callCtx(ctx)
	defer cancel()
	if err := d.col.Control.SetDoNotDisturb(cctx, on); err != nil {
		d.logger.Warn("dnd toggle failed: %v", err)
		return Response{Text: "Sorry, I couldn't change focus mode."}
	}
	if on {
		if err := d.col.Control.MinimizeAllWindows(cctx); err != nil {
			d.logger.Warn("minimize during focus on failed: %v", err)
		}
		return Response{Text: "Focus mode is on. Notifications are silenced."}
	}
	return Response{Text: "Focus mode is off. Welcome back."}
}

func (d *Dispatcher) handleMinimize(ctx context.Context) Response {
	if d.col.Control == nil {
		return Response{Text: "Sorry, I can't control windows on this device."}
	}
	cctx, cancel := d.callCtx(ctx)
	defer cancel()
	if err := d.col.Control.MinimizeAllWindows(cctx); err != nil {
		d.logger.Warn("minimize failed: %v", err)
		return Response{Text: "Sorry, I couldn't minimize your windows."}
	}
	return Response{Text: "Done, showing your desktop."}
}
