package session

import (
	"time"

	"justapengu.in/racetelemetry/pkg/f1udp"
)

type SessionInfo struct {
	Weather          f1udp.Weather
	TrackTemperature int8
	AirTemperature   int8
	TotalLaps        uint8
	TrackLength      uint16
	Type             f1udp.SessionType
	TrackID          int8
	TimeLeft         time.Duration
	Duration         time.Duration
	PitSpeedLimit    uint8
	Paused           bool
	SafetyCar        f1udp.SafetyCarStatus
	NetworkGame      bool

	// Received is false until the first session packet arrives.
	Received bool
}

func (s *SessionInfo) apply(r f1udp.SessionRecord) {
	r.Weather.ApplyTo(&s.Weather)
	r.TrackTemperature.ApplyTo(&s.TrackTemperature)
	r.AirTemperature.ApplyTo(&s.AirTemperature)
	r.TotalLaps.ApplyTo(&s.TotalLaps)
	r.TrackLength.ApplyTo(&s.TrackLength)
	r.SessionType.ApplyTo(&s.Type)
	r.TrackID.ApplyTo(&s.TrackID)
	r.TimeLeft.ApplyTo(&s.TimeLeft)
	r.Duration.ApplyTo(&s.Duration)
	r.PitSpeedLimit.ApplyTo(&s.PitSpeedLimit)
	r.SafetyCar.ApplyTo(&s.SafetyCar)

	if paused, ok := r.Paused.Get(); ok {
		s.Paused = paused != 0
	}

	if network, ok := r.NetworkGame.Get(); ok {
		s.NetworkGame = network != 0
	}

	s.Received = true
}

// Counters are cumulative for the process, not reset with the session.
// Received is every datagram that reached the aggregator; Dropped ones never
// did.
type Counters struct {
	Received           uint64 `json:"received"`
	Accepted           uint64 `json:"accepted"`
	Rejected           uint64 `json:"rejected"`
	Ignored            uint64 `json:"ignored"`
	Dropped            uint64 `json:"dropped"`
	ProtocolMismatches uint64 `json:"protocol_mismatches"`
	Truncated          uint64 `json:"truncated"`
}

// Snapshot is an immutable view of the session. Consumers must not modify it.
type Snapshot struct {
	SessionID   uint64
	Sequence    uint64
	PlayerSlot  uint8
	SessionTime float32
	FrameID     uint32

	Session SessionInfo

	// Drivers holds every slot seen this session, in leaderboard order.
	Drivers []DriverState

	Counters  Counters
	UpdatedAt time.Time
}

// Leaderboard is the classified subset of Drivers (active, finished, DNF), in
// order.
func (s *Snapshot) Leaderboard() []DriverState {
	out := make([]DriverState, 0, len(s.Drivers))

	for _, d := range s.Drivers {
		if d.ResultStatus.Classified() {
			out = append(out, d)
		}
	}

	return out
}

func (s *Snapshot) Driver(slot int) (DriverState, bool) {
	for _, d := range s.Drivers {
		if d.Slot == slot {
			return d, true
		}
	}

	return DriverState{}, false
}

// Player is the locally controlled car, if the game reported one.
func (s *Snapshot) Player() (DriverState, bool) {
	if s.PlayerSlot >= f1udp.MaxSlots {
		return DriverState{}, false
	}

	return s.Driver(int(s.PlayerSlot))
}

// FastestLap returns the driver holding the best lap of the session.
func (s *Snapshot) FastestLap() (DriverState, bool) {
	var (
		fastest DriverState
		found   bool
	)

	for _, d := range s.Drivers {
		if !f1udp.KnownDuration(d.Timing.BestLap) || d.Timing.BestLap == 0 {
			continue
		}

		if !found || d.Timing.BestLap < fastest.Timing.BestLap {
			fastest = d
			found = true
		}
	}

	return fastest, found
}

type ConnectionStatus string

const (
	Connected    ConnectionStatus = "connected"
	Warning      ConnectionStatus = "warning"
	Disconnected ConnectionStatus = "disconnected"
)

const (
	connectedWithin = 2 * time.Second
	warningWithin   = 5 * time.Second
)

// ConnectionStatus grades how fresh the snapshot is at now.
func (s *Snapshot) ConnectionStatus(now time.Time) ConnectionStatus {
	if s.UpdatedAt.IsZero() {
		return Disconnected
	}

	switch age := now.Sub(s.UpdatedAt); {
	case age < connectedWithin:
		return Connected
	case age < warningWithin:
		return Warning
	default:
		return Disconnected
	}
}
