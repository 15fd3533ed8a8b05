package livefeed

import (
	"strconv"
	"time"

	"justapengu.in/racetelemetry/internal/session"
	"justapengu.in/racetelemetry/pkg/f1udp"
)

// Durations are seconds; unknown values are null.

type SnapshotView struct {
	SessionID   string                   `json:"session_id"`
	Sequence    uint64                   `json:"sequence"`
	Status      session.ConnectionStatus `json:"status"`
	UpdatedAt   *time.Time               `json:"updated_at"`
	PlayerSlot  *int                     `json:"player_slot"`
	SessionTime float32                  `json:"session_time"`
	FastestLap  *int                     `json:"fastest_lap_slot"`
	Session     *SessionView             `json:"session"`
	Drivers     []DriverView             `json:"drivers"`
	Counters    session.Counters         `json:"counters"`
}

type SessionView struct {
	Type             string   `json:"type"`
	Weather          string   `json:"weather"`
	TrackID          int      `json:"track_id"`
	TrackLength      int      `json:"track_length"`
	TrackTemperature int      `json:"track_temperature"`
	AirTemperature   int      `json:"air_temperature"`
	TotalLaps        int      `json:"total_laps"`
	TimeLeft         *float64 `json:"time_left"`
	SafetyCar        string   `json:"safety_car"`
	Paused           bool     `json:"paused"`
}

type DriverView struct {
	Slot         int    `json:"slot"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	RaceNumber   int    `json:"race_number"`
	Position     *int   `json:"position"`
	GridPosition *int   `json:"grid_position"`
	CurrentLap   int    `json:"current_lap"`

	CurrentLapTime *float64 `json:"current_lap_time"`
	LastLap        *float64 `json:"last_lap"`
	BestLap        *float64 `json:"best_lap"`
	Sector1        *float64 `json:"sector1"`
	Sector2        *float64 `json:"sector2"`
	Sector3        *float64 `json:"sector3"`
	GapToLeader    *float64 `json:"gap_to_leader"`
	GapToFront     *float64 `json:"gap_to_front"`
	Gap            string   `json:"gap"`

	PitStatus    string `json:"pit_status"`
	PitStops     int    `json:"pit_stops"`
	LapInvalid   bool   `json:"lap_invalid"`
	Penalties    int    `json:"penalties"`
	Warnings     int    `json:"warnings"`
	ResultStatus string `json:"result_status"`
	DriverStatus string `json:"driver_status"`

	Speed    uint16  `json:"speed"`
	Gear     int8    `json:"gear"`
	Throttle float32 `json:"throttle"`
	Brake    float32 `json:"brake"`
	RPM      uint16  `json:"rpm"`
	DRS      bool    `json:"drs"`

	Tyre       string  `json:"tyre"`
	Compound   string  `json:"compound"`
	TyreAge    uint8   `json:"tyre_age"`
	Fuel       float32 `json:"fuel"`
	FuelLaps   float32 `json:"fuel_laps"`
	ERSPercent float32 `json:"ers_percent"`

	LastUpdate *time.Time `json:"last_update"`
}

const ersCapacity = 4e6 // joules

func newSnapshotView(s *session.Snapshot, drivers []session.DriverState, now time.Time) SnapshotView {
	view := SnapshotView{
		SessionID:   strconv.FormatUint(s.SessionID, 16),
		Sequence:    s.Sequence,
		Status:      s.ConnectionStatus(now),
		UpdatedAt:   timestamp(s.UpdatedAt),
		SessionTime: s.SessionTime,
		Counters:    s.Counters,
		Drivers:     make([]DriverView, 0, len(drivers)),
	}

	if player, ok := s.Player(); ok {
		view.PlayerSlot = &player.Slot
	}

	if fastest, ok := s.FastestLap(); ok {
		view.FastestLap = &fastest.Slot
	}

	if s.Session.Received {
		view.Session = newSessionView(s.Session)
	}

	for _, d := range drivers {
		view.Drivers = append(view.Drivers, newDriverView(d))
	}

	return view
}

func newSessionView(info session.SessionInfo) *SessionView {
	return &SessionView{
		Type:             info.Type.String(),
		Weather:          info.Weather.String(),
		TrackID:          int(info.TrackID),
		TrackLength:      int(info.TrackLength),
		TrackTemperature: int(info.TrackTemperature),
		AirTemperature:   int(info.AirTemperature),
		TotalLaps:        int(info.TotalLaps),
		TimeLeft:         seconds(info.TimeLeft),
		SafetyCar:        info.SafetyCar.String(),
		Paused:           info.Paused,
	}
}

func newDriverView(d session.DriverState) DriverView {
	return DriverView{
		Slot:           d.Slot,
		Name:           d.Name,
		Code:           d.DisplayName(),
		RaceNumber:     d.RaceNumber,
		Position:       position(d.Position),
		GridPosition:   position(d.GridPosition),
		CurrentLap:     d.CurrentLap,
		CurrentLapTime: seconds(d.Timing.CurrentLap),
		LastLap:        seconds(d.Timing.LastLap),
		BestLap:        seconds(d.Timing.BestLap),
		Sector1:        seconds(d.Timing.Sector1),
		Sector2:        seconds(d.Timing.Sector2),
		Sector3:        seconds(d.Timing.Sector3),
		GapToLeader:    seconds(d.Timing.GapToLeader),
		GapToFront:     seconds(d.Timing.GapToFront),
		Gap:            session.FormatGap(d, d.Timing.GapToLeader),
		PitStatus:      d.PitStatus.String(),
		PitStops:       d.PitStops,
		LapInvalid:     d.LapInvalid,
		Penalties:      d.Penalties,
		Warnings:       d.Warnings,
		ResultStatus:   d.ResultStatus.String(),
		DriverStatus:   d.DriverStatus.String(),
		Speed:          d.Telemetry.Speed,
		Gear:           d.Telemetry.Gear,
		Throttle:       d.Telemetry.Throttle,
		Brake:          d.Telemetry.Brake,
		RPM:            d.Telemetry.EngineRPM,
		DRS:            d.Telemetry.DRS == 1,
		Tyre:           d.Car.VisualCompound.String(),
		Compound:       d.Car.ActualCompound.Actual(),
		TyreAge:        d.Car.TyresAgeLaps,
		Fuel:           d.Car.FuelInTank,
		FuelLaps:       d.Car.FuelRemainingLaps,
		ERSPercent:     d.Car.ERSStoreEnergy / ersCapacity * 100,
		LastUpdate:     timestamp(d.LastUpdate),
	}
}

func seconds(d time.Duration) *float64 {
	if !f1udp.KnownDuration(d) {
		return nil
	}

	s := d.Seconds()

	return &s
}

func position(pos int) *int {
	if pos == 0 {
		return nil
	}

	return &pos
}

func timestamp(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}

	return &t
}
