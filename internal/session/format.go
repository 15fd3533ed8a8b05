package session

import (
	"fmt"
	"time"

	"justapengu.in/racetelemetry/pkg/f1udp"
)

// FormatLapTime renders a lap as M:SS.sss.
func FormatLapTime(d time.Duration) string {
	if !f1udp.KnownDuration(d) || d == 0 {
		return "-:--.---"
	}

	minutes := int(d / time.Minute)
	seconds := (d % time.Minute).Seconds()

	return fmt.Sprintf("%d:%06.3f", minutes, seconds)
}

// FormatSectorTime renders a sector as SS.sss.
func FormatSectorTime(d time.Duration) string {
	if !f1udp.KnownDuration(d) || d == 0 {
		return "--.---"
	}

	return fmt.Sprintf("%06.3f", d.Seconds())
}

// FormatGap renders a gap to the car ahead or the leader. The car in P1 is
// always "Leader".
func FormatGap(d DriverState, gap time.Duration) string {
	if d.Position == 1 {
		return "Leader"
	}

	if !f1udp.KnownDuration(gap) {
		return "-"
	}

	if gap < time.Minute {
		return fmt.Sprintf("+%.3fs", gap.Seconds())
	}

	return "+" + FormatLapTime(gap)
}
