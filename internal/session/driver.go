package session

import (
	"time"

	"justapengu.in/racetelemetry/pkg/f1udp"
)

// DriverState is everything known about one car slot. It holds no slices,
// maps or pointers, so assigning it copies it fully.
type DriverState struct {
	Slot int

	Name         string
	Code         string
	RaceNumber   int
	TeamID       int
	Nationality  int
	AIControlled bool

	// Position is 1..MaxSlots, 0 when unknown.
	Position     int
	GridPosition int
	CurrentLap   int
	Sector       int
	LapDistance  float32

	Timing Timing

	PitStatus    f1udp.PitStatus
	PitStops     int
	LapInvalid   bool
	Penalties    int
	Warnings     int
	ResultStatus f1udp.ResultStatus
	DriverStatus f1udp.DriverStatus

	Telemetry Telemetry
	Car       CarStatus

	LastUpdate time.Time
}

// Timing values are f1udp.UnknownDuration until the game reports them.
type Timing struct {
	CurrentLap  time.Duration
	LastLap     time.Duration
	BestLap     time.Duration
	Sector1     time.Duration
	Sector2     time.Duration
	Sector3     time.Duration
	GapToLeader time.Duration
	GapToFront  time.Duration
}

type Telemetry struct {
	Speed                   uint16
	Throttle                float32
	Brake                   float32
	Steer                   float32
	Gear                    int8
	EngineRPM               uint16
	DRS                     uint8
	EngineTemperature       uint16
	BrakesTemperature       [4]uint16
	TyresSurfaceTemperature [4]uint8
	TyresInnerTemperature   [4]uint8
	TyresPressure           [4]float32
}

type CarStatus struct {
	FuelInTank        float32
	FuelRemainingLaps float32
	VisualCompound    f1udp.TyreCompound
	ActualCompound    f1udp.TyreCompound
	TyresAgeLaps      uint8
	ERSStoreEnergy    float32
	ERSDeployMode     uint8
	DRSAllowed        uint8
	PitLimiter        uint8
	FIAFlag           f1udp.FIAFlag
}

func newDriverState(slot int) DriverState {
	return DriverState{
		Slot:         slot,
		PitStatus:    f1udp.PitStatusUnknown,
		DriverStatus: f1udp.DriverStatusUnknown,
		Timing: Timing{
			CurrentLap:  f1udp.UnknownDuration,
			LastLap:     f1udp.UnknownDuration,
			BestLap:     f1udp.UnknownDuration,
			Sector1:     f1udp.UnknownDuration,
			Sector2:     f1udp.UnknownDuration,
			Sector3:     f1udp.UnknownDuration,
			GapToLeader: f1udp.UnknownDuration,
			GapToFront:  f1udp.UnknownDuration,
		},
	}
}

// seen reports whether any packet has touched the slot this session.
func (d DriverState) seen() bool {
	return !d.LastUpdate.IsZero()
}

// DisplayName is the short code, or the name when no code is known yet.
func (d DriverState) DisplayName() string {
	if d.Code != "" {
		return d.Code
	}

	if d.Name != "" {
		return d.Name
	}

	return "-"
}

func (d *DriverState) applyLapData(r f1udp.LapDataRecord) {
	d.Position = r.Position
	d.GridPosition = r.GridPosition
	d.CurrentLap = r.CurrentLap
	d.Sector = r.Sector
	d.LapDistance = r.LapDistance
	d.PitStatus = r.PitStatus
	d.PitStops = r.PitStops
	d.LapInvalid = r.LapInvalid
	d.Penalties = r.Penalties
	d.Warnings = r.Warnings
	d.ResultStatus = r.ResultStatus
	d.DriverStatus = r.DriverStatus

	d.Timing.CurrentLap = r.CurrentLapTime
	d.Timing.LastLap = r.LastLapTime
	d.Timing.Sector1 = r.Sector1Time
	d.Timing.Sector2 = r.Sector2Time
	d.Timing.Sector3 = r.Sector3Time
	d.Timing.GapToLeader = r.GapToLeader
	d.Timing.GapToFront = r.GapToFront

	if f1udp.KnownDuration(r.LastLapTime) && r.LastLapTime > 0 {
		if !f1udp.KnownDuration(d.Timing.BestLap) || r.LastLapTime < d.Timing.BestLap {
			d.Timing.BestLap = r.LastLapTime
		}
	}
}

func (d *DriverState) applyParticipant(r f1udp.ParticipantRecord) {
	d.Name = r.Name
	d.Code = r.Code
	d.RaceNumber = r.RaceNumber
	d.TeamID = r.TeamID
	d.Nationality = r.Nationality
	d.AIControlled = r.AIControlled
}

func (d *DriverState) applyTelemetry(r f1udp.CarTelemetryRecord) {
	t := &d.Telemetry

	r.Speed.ApplyTo(&t.Speed)
	r.Throttle.ApplyTo(&t.Throttle)
	r.Brake.ApplyTo(&t.Brake)
	r.Steer.ApplyTo(&t.Steer)
	r.Gear.ApplyTo(&t.Gear)
	r.EngineRPM.ApplyTo(&t.EngineRPM)
	r.DRS.ApplyTo(&t.DRS)
	r.EngineTemperature.ApplyTo(&t.EngineTemperature)

	for i := 0; i < 4; i++ {
		r.BrakesTemperature[i].ApplyTo(&t.BrakesTemperature[i])
		r.TyresSurfaceTemperature[i].ApplyTo(&t.TyresSurfaceTemperature[i])
		r.TyresInnerTemperature[i].ApplyTo(&t.TyresInnerTemperature[i])
		r.TyresPressure[i].ApplyTo(&t.TyresPressure[i])
	}
}

func (d *DriverState) applyCarStatus(r f1udp.CarStatusRecord) {
	c := &d.Car

	r.FuelInTank.ApplyTo(&c.FuelInTank)
	r.FuelRemainingLaps.ApplyTo(&c.FuelRemainingLaps)
	r.VisualCompound.ApplyTo(&c.VisualCompound)
	r.ActualCompound.ApplyTo(&c.ActualCompound)
	r.TyresAgeLaps.ApplyTo(&c.TyresAgeLaps)
	r.ERSStoreEnergy.ApplyTo(&c.ERSStoreEnergy)
	r.ERSDeployMode.ApplyTo(&c.ERSDeployMode)
	r.DRSAllowed.ApplyTo(&c.DRSAllowed)
	r.PitLimiter.ApplyTo(&c.PitLimiter)
	r.FIAFlag.ApplyTo(&c.FIAFlag)
}
