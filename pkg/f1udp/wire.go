package f1udp

import "encoding/binary"

// Wire layouts pinned to the F1 24 UDP format. Each struct is read with a
// single binary.Read, so field order and widths are the contract.

type LapDataWire struct {
	LastLapTimeMS               uint32
	CurrentLapTimeMS            uint32
	Sector1TimeMS               uint16
	Sector1TimeMinutes          uint8
	Sector2TimeMS               uint16
	Sector2TimeMinutes          uint8
	DeltaToCarInFrontMS         uint16
	DeltaToCarInFrontMinutes    uint8
	DeltaToRaceLeaderMS         uint16
	DeltaToRaceLeaderMinutes    uint8
	LapDistance                 float32
	TotalDistance               float32
	SafetyCarDelta              float32
	CarPosition                 uint8
	CurrentLapNum               uint8
	PitStatus                   uint8
	NumPitStops                 uint8
	Sector                      uint8
	CurrentLapInvalid           uint8
	Penalties                   uint8
	TotalWarnings               uint8
	CornerCuttingWarnings       uint8
	NumUnservedDriveThroughPens uint8
	NumUnservedStopGoPens       uint8
	GridPosition                uint8
	DriverStatus                uint8
	ResultStatus                uint8
	PitLaneTimerActive          uint8
	PitLaneTimeInLaneMS         uint16
	PitStopTimerMS              uint16
	PitStopShouldServePen       uint8
	SpeedTrapFastestSpeed       float32
	SpeedTrapFastestLap         uint8
}

type ParticipantWire struct {
	AIControlled    uint8
	DriverID        uint8
	NetworkID       uint8
	TeamID          uint8
	MyTeam          uint8
	RaceNumber      uint8
	Nationality     uint8
	Name            [48]byte
	YourTelemetry   uint8
	ShowOnlineNames uint8
	TechLevel       uint16
	Platform        uint8
}

// Wheel arrays are ordered rear left, rear right, front left, front right.
type CarTelemetryWire struct {
	Speed                   uint16
	Throttle                float32
	Steer                   float32
	Brake                   float32
	Clutch                  uint8
	Gear                    int8
	EngineRPM               uint16
	DRS                     uint8
	RevLightsPercent        uint8
	RevLightsBitValue       uint16
	BrakesTemperature       [4]uint16
	TyresSurfaceTemperature [4]uint8
	TyresInnerTemperature   [4]uint8
	EngineTemperature       uint16
	TyresPressure           [4]float32
	SurfaceType             [4]uint8
}

type CarStatusWire struct {
	TractionControl         uint8
	AntiLockBrakes          uint8
	FuelMix                 uint8
	FrontBrakeBias          uint8
	PitLimiterStatus        uint8
	FuelInTank              float32
	FuelCapacity            float32
	FuelRemainingLaps       float32
	MaxRPM                  uint16
	IdleRPM                 uint16
	MaxGears                uint8
	DRSAllowed              uint8
	DRSActivationDistance   uint16
	ActualTyreCompound      uint8
	VisualTyreCompound      uint8
	TyresAgeLaps            uint8
	VehicleFIAFlags         int8
	EnginePowerICE          float32
	EnginePowerMGUK         float32
	ERSStoreEnergy          float32
	ERSDeployMode           uint8
	ERSHarvestedThisLapMGUK float32
	ERSHarvestedThisLapMGUH float32
	ERSDeployedThisLap      float32
	NetworkPaused           uint8
}

type MarshalZoneWire struct {
	ZoneStart float32
	ZoneFlag  int8
}

// SessionWire is the leading, version-stable part of the session payload.
// The forecast samples and assist settings that follow are not decoded.
type SessionWire struct {
	Weather             uint8
	TrackTemperature    int8
	AirTemperature      int8
	TotalLaps           uint8
	TrackLength         uint16
	SessionType         uint8
	TrackID             int8
	Formula             uint8
	SessionTimeLeft     uint16
	SessionDuration     uint16
	PitSpeedLimit       uint8
	GamePaused          uint8
	IsSpectating        uint8
	SpectatorCarIndex   uint8
	SLIProNativeSupport uint8
	NumMarshalZones     uint8
	MarshalZones        [21]MarshalZoneWire
	SafetyCarStatus     uint8
	NetworkGame         uint8
}

var (
	LapDataWidth      = binary.Size(LapDataWire{})
	ParticipantWidth  = binary.Size(ParticipantWire{})
	CarTelemetryWidth = binary.Size(CarTelemetryWire{})
	CarStatusWidth    = binary.Size(CarStatusWire{})
	SessionWidth      = binary.Size(SessionWire{})
)
