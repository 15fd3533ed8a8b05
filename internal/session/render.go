package session

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderLeaderboard writes the classified drivers of s as a text table.
func RenderLeaderboard(w io.Writer, s *Snapshot, now time.Time) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle(leaderboardTitle(s, now))

	t.AppendHeader(table.Row{"Pos", "Driver", "Lap", "Last", "Best", "S1", "S2", "S3", "Gap", "Pit", "Tyre", "Status"})

	fastest, hasFastest := s.FastestLap()

	for _, d := range s.Leaderboard() {
		best := FormatLapTime(d.Timing.BestLap)

		if hasFastest && fastest.Slot == d.Slot {
			best += " *"
		}

		t.AppendRow(table.Row{
			position(d.Position),
			d.DisplayName(),
			d.CurrentLap,
			FormatLapTime(d.Timing.LastLap),
			best,
			FormatSectorTime(d.Timing.Sector1),
			FormatSectorTime(d.Timing.Sector2),
			FormatSectorTime(d.Timing.Sector3),
			FormatGap(d, d.Timing.GapToLeader),
			d.PitStatus.String(),
			fmt.Sprintf("%s (%d)", d.Car.VisualCompound, d.Car.TyresAgeLaps),
			d.ResultStatus.String(),
		})
	}

	t.AppendFooter(table.Row{"", "", "", "", "", "", "", "", "", "", "packets", humanize.Comma(int64(s.Counters.Received))})

	t.Render()
}

func leaderboardTitle(s *Snapshot, now time.Time) string {
	title := fmt.Sprintf("Session %x (%s)", s.SessionID, s.ConnectionStatus(now))

	if s.Session.Received {
		title += fmt.Sprintf(" %s, %d laps", s.Session.Type, s.Session.TotalLaps)

		if s.Session.TimeLeft > 0 {
			title += ", " + durafmt.Parse(s.Session.TimeLeft).LimitFirstN(2).String() + " left"
		}
	}

	return title
}

func position(pos int) string {
	if pos == 0 {
		return "-"
	}

	return strconv.Itoa(pos)
}
