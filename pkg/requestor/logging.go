package requestor

import (
	"github.com/rs/zerolog"

	"opensearch/internal/transport"
)

// LogRequest records the outcome and latency of a request. Statuses below
// 400 log at info, 4xx at warn and 5xx at error.
func LogRequest(logger zerolog.Logger, resp *transport.Response) {
	if resp == nil {
		return
	}

	var event *zerolog.Event
	switch {
	case !resp.IsError():
		event = logger.Info()
	case resp.StatusCode < 500:
		event = logger.Warn()
	default:
		event = logger.Error()
	}

	ms := resp.ElapsedMillis()
	event.
		Int("status", resp.StatusCode).
		Str("url", resp.EffectiveURL).
		Float64("elapsed_ms", ms).
		Msgf("%d %s %.2fms", resp.StatusCode, resp.EffectiveURL, ms)
}
