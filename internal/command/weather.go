package command

import (
	"context"
	"fmt"
)

func (d *Dispatcher) handleWeather(ctx context.Context, req Request) Response {
	if d.col.Weather == nil {
		return Response{Text: "Sorry, weather lookups aren't available right now."}
	}
	cctx, cancel := d.callCtx(ctx)
	defer cancel()

	city := req.Result.Param("city")
	if city == "" {
		summary, err := d.col.Weather.Summary(cctx)
		if err != nil {
			d.logger.Warn("weather summary failed: %v", err)
			return Response{Text: "Sorry, I couldn't fetch the weather just now."}
		}
		return Response{Text: summary}
	}

	report, err := d.col.Weather.Current(cctx, city)
	if err != nil {
		d.logger.Warn("weather for %q failed: %v", city, err)
		return Response{Text: fmt.Sprintf("Sorry, I couldn't get the weather for %s.", city)}
	}
	return Response{Text: report}
}
