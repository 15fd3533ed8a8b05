package f1udp

import (
	"time"

	"github.com/pkg/errors"
)

// UnknownDuration marks a timing that was zero, negative or otherwise not
// usable on the wire.
const UnknownDuration time.Duration = -1

func KnownDuration(d time.Duration) bool {
	return d >= 0
}

type LapDataRecord struct {
	Index int

	LastLapTime    time.Duration
	CurrentLapTime time.Duration
	Sector1Time    time.Duration
	Sector2Time    time.Duration
	Sector3Time    time.Duration
	GapToFront     time.Duration
	GapToLeader    time.Duration
	PitLaneTime    time.Duration
	PitStopTime    time.Duration

	LapDistance    float32
	TotalDistance  float32
	SafetyCarDelta float32

	// Position is 1..MaxSlots, 0 when unknown.
	Position              int
	CurrentLap            int
	PitStatus             PitStatus
	PitStops              int
	Sector                int
	LapInvalid            bool
	Penalties             int
	Warnings              int
	CornerCutWarnings     int
	UnservedDriveThroughs int
	UnservedStopGos       int
	GridPosition          int
	DriverStatus          DriverStatus
	ResultStatus          ResultStatus
	RawResultStatus       uint8
	PitLaneTimerActive    bool
	ShouldServePenalty    bool
	SpeedTrapFastest      float32
	SpeedTrapFastestLap   int
}

func (LapDataRecord) PacketType() PacketType {
	return PacketTypeLapData
}

func (r LapDataRecord) Slot() int {
	return r.Index
}

// DecodeLapData decodes all MaxSlots lap records. The payload must hold every
// slot or nothing is returned.
func DecodeLapData(payload []byte, _ Envelope) ([]Record, error) {
	var rows [MaxSlots]LapDataWire

	if err := readSlots(payload, LapDataWidth, "lap data", &rows); err != nil {
		return nil, err
	}

	records := make([]Record, 0, MaxSlots)

	for i, w := range rows {
		records = append(records, newLapDataRecord(i, w))
	}

	return records, nil
}

func newLapDataRecord(index int, w LapDataWire) LapDataRecord {
	r := LapDataRecord{
		Index:                 index,
		LastLapTime:           millis(w.LastLapTimeMS),
		CurrentLapTime:        millis(w.CurrentLapTimeMS),
		Sector1Time:           splitTime(w.Sector1TimeMinutes, w.Sector1TimeMS),
		Sector2Time:           splitTime(w.Sector2TimeMinutes, w.Sector2TimeMS),
		GapToFront:            splitTime(w.DeltaToCarInFrontMinutes, w.DeltaToCarInFrontMS),
		GapToLeader:           splitTime(w.DeltaToRaceLeaderMinutes, w.DeltaToRaceLeaderMS),
		PitLaneTime:           millis(uint32(w.PitLaneTimeInLaneMS)),
		PitStopTime:           millis(uint32(w.PitStopTimerMS)),
		LapDistance:           w.LapDistance,
		TotalDistance:         w.TotalDistance,
		SafetyCarDelta:        w.SafetyCarDelta,
		Position:              position(w.CarPosition),
		CurrentLap:            int(w.CurrentLapNum),
		PitStatus:             pitStatusFromWire(w.PitStatus),
		PitStops:              int(w.NumPitStops),
		Sector:                int(w.Sector),
		LapInvalid:            w.CurrentLapInvalid != 0,
		Penalties:             int(w.Penalties),
		Warnings:              int(w.TotalWarnings),
		CornerCutWarnings:     int(w.CornerCuttingWarnings),
		UnservedDriveThroughs: int(w.NumUnservedDriveThroughPens),
		UnservedStopGos:       int(w.NumUnservedStopGoPens),
		GridPosition:          position(w.GridPosition),
		DriverStatus:          driverStatusFromWire(w.DriverStatus),
		ResultStatus:          resultStatusFromWire(w.ResultStatus),
		RawResultStatus:       w.ResultStatus,
		PitLaneTimerActive:    w.PitLaneTimerActive != 0,
		ShouldServePenalty:    w.PitStopShouldServePen != 0,
		SpeedTrapFastest:      w.SpeedTrapFastestSpeed,
		SpeedTrapFastestLap:   int(w.SpeedTrapFastestLap),
	}

	r.Sector3Time = Sector3(r.LastLapTime, r.Sector1Time, r.Sector2Time)

	return r
}

// Sector3 derives the final sector from the last lap. Stale sector data can
// make the difference negative, which clamps to zero.
func Sector3(lastLap, sector1, sector2 time.Duration) time.Duration {
	if lastLap <= 0 || sector1 <= 0 || sector2 <= 0 {
		return UnknownDuration
	}

	s3 := lastLap - sector1 - sector2

	if s3 < 0 {
		return 0
	}

	return s3
}

func millis(ms uint32) time.Duration {
	if ms == 0 {
		return UnknownDuration
	}

	return time.Duration(ms) * time.Millisecond
}

// splitTime combines the minute and millisecond parts the game sends for
// sector and delta times.
func splitTime(minutes uint8, ms uint16) time.Duration {
	d := time.Duration(minutes)*time.Minute + time.Duration(ms)*time.Millisecond

	if d <= 0 {
		return UnknownDuration
	}

	return d
}

func position(raw uint8) int {
	if raw == 0 || raw > MaxSlots {
		return 0
	}

	return int(raw)
}

// readSlots reads the fixed per-slot array into rows after checking the whole
// array is present.
func readSlots(payload []byte, width int, what string, rows interface{}) error {
	need := MaxSlots * width

	if len(payload) < need {
		return errors.Wrapf(ErrTruncated, "%s: need %d bytes, got %d", what, need, len(payload))
	}

	if err := NewPacket(payload[:need]).Read(rows); err != nil {
		return errors.Wrap(err, what)
	}

	return nil
}
