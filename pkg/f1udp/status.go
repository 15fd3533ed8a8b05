package f1udp

import "fmt"

// ResultStatus collapses the game's eight raw result codes into the set the
// leaderboard cares about. The raw code stays on LapDataRecord.
type ResultStatus uint8

const (
	ResultUnknown ResultStatus = iota
	ResultInactive
	ResultActive
	ResultFinished
	ResultDNF
)

func resultStatusFromWire(raw uint8) ResultStatus {
	switch raw {
	case 1:
		return ResultInactive
	case 2:
		return ResultActive
	case 3:
		return ResultFinished
	case 4, 5, 6, 7: // did not finish, disqualified, not classified, retired
		return ResultDNF
	default:
		return ResultUnknown
	}
}

// Classified reports whether a car with this status belongs on a leaderboard.
func (r ResultStatus) Classified() bool {
	return r == ResultActive || r == ResultFinished || r == ResultDNF
}

func (r ResultStatus) String() string {
	switch r {
	case ResultInactive:
		return "inactive"
	case ResultActive:
		return "active"
	case ResultFinished:
		return "finished"
	case ResultDNF:
		return "dnf"
	default:
		return "unknown"
	}
}

type PitStatus uint8

const (
	PitStatusTrack   PitStatus = 0
	PitStatusPitting PitStatus = 1
	PitStatusPitLane PitStatus = 2
	PitStatusUnknown PitStatus = 255
)

func pitStatusFromWire(raw uint8) PitStatus {
	if raw > uint8(PitStatusPitLane) {
		return PitStatusUnknown
	}

	return PitStatus(raw)
}

func (p PitStatus) String() string {
	switch p {
	case PitStatusTrack:
		return "Track"
	case PitStatusPitting:
		return "Pitting"
	case PitStatusPitLane:
		return "Pit Lane"
	default:
		return "Unknown"
	}
}

type DriverStatus uint8

const (
	DriverInGarage DriverStatus = iota
	DriverFlyingLap
	DriverInLap
	DriverOutLap
	DriverOnTrack
	DriverStatusUnknown DriverStatus = 255
)

func driverStatusFromWire(raw uint8) DriverStatus {
	if raw > uint8(DriverOnTrack) {
		return DriverStatusUnknown
	}

	return DriverStatus(raw)
}

func (s DriverStatus) String() string {
	switch s {
	case DriverInGarage:
		return "Garage"
	case DriverFlyingLap:
		return "Flying Lap"
	case DriverInLap:
		return "In Lap"
	case DriverOutLap:
		return "Out Lap"
	case DriverOnTrack:
		return "On Track"
	default:
		return "Unknown"
	}
}

type TyreCompound uint8

// actualTyreCompounds are the physical compounds; visualTyreCompounds are
// what the game shows (soft/medium/hard for the weekend allocation).
var actualTyreCompounds = map[TyreCompound]string{
	7:  "Inter",
	8:  "Wet",
	9:  "Dry",
	10: "Wet",
	11: "Super Soft",
	12: "Soft",
	13: "Medium",
	14: "Hard",
	15: "Wet",
	16: "C5",
	17: "C4",
	18: "C3",
	19: "C2",
	20: "C1",
	21: "C0",
	22: "C6",
}

var visualTyreCompounds = map[TyreCompound]string{
	7:  "Inter",
	8:  "Wet",
	15: "Wet",
	16: "Soft",
	17: "Medium",
	18: "Hard",
	19: "Super Soft",
	20: "Soft",
	21: "Medium",
	22: "Hard",
}

func (t TyreCompound) String() string {
	if name, ok := visualTyreCompounds[t]; ok {
		return name
	}

	return "-"
}

// Actual names the physical compound (C0..C6 for modern F1).
func (t TyreCompound) Actual() string {
	if name, ok := actualTyreCompounds[t]; ok {
		return name
	}

	return "-"
}

type SessionType uint8

var sessionTypeNames = map[SessionType]string{
	0:  "Unknown",
	1:  "Practice 1",
	2:  "Practice 2",
	3:  "Practice 3",
	4:  "Short Practice",
	5:  "Qualifying 1",
	6:  "Qualifying 2",
	7:  "Qualifying 3",
	8:  "Short Qualifying",
	9:  "One-Shot Qualifying",
	10: "Sprint Shootout 1",
	11: "Sprint Shootout 2",
	12: "Sprint Shootout 3",
	13: "Short Sprint Shootout",
	14: "One-Shot Sprint Shootout",
	15: "Race",
	16: "Race 2",
	17: "Race 3",
	18: "Time Trial",
}

func (s SessionType) String() string {
	if name, ok := sessionTypeNames[s]; ok {
		return name
	}

	return fmt.Sprintf("Unknown(%d)", uint8(s))
}

func (s SessionType) IsRace() bool {
	return s >= 15 && s <= 17
}

type Weather uint8

var weatherNames = map[Weather]string{
	0: "Clear",
	1: "Light Cloud",
	2: "Overcast",
	3: "Light Rain",
	4: "Heavy Rain",
	5: "Storm",
}

func (w Weather) String() string {
	if name, ok := weatherNames[w]; ok {
		return name
	}

	return "Unknown"
}

type SafetyCarStatus uint8

var safetyCarNames = map[SafetyCarStatus]string{
	0: "None",
	1: "Full",
	2: "Virtual",
	3: "Formation Lap",
}

func (s SafetyCarStatus) String() string {
	if name, ok := safetyCarNames[s]; ok {
		return name
	}

	return "Unknown"
}

type FIAFlag int8

var fiaFlagNames = map[FIAFlag]string{
	-1: "Unknown",
	0:  "None",
	1:  "Green",
	2:  "Blue",
	3:  "Yellow",
	4:  "Red",
}

func (f FIAFlag) String() string {
	if name, ok := fiaFlagNames[f]; ok {
		return name
	}

	return "Invalid"
}
