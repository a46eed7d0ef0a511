package metrics

import "time"

// ObservePoll records one run of the named poller that began at started.
func ObservePoll(poller string, started time.Time, err error) {
	status := Success
	if err != nil {
		status = Error
	}
	pollerDurationHistogram.WithLabelValues(poller, status.String()).Observe(time.Since(started).Seconds())

	if err == nil {
		pollerLastSuccessGauge.WithLabelValues(poller).SetToCurrentTime()
	}
}
