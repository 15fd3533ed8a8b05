package f1udp

import (
	"time"

	"github.com/pkg/errors"
)

type SessionRecord struct {
	Weather          Reading[Weather]
	TrackTemperature Reading[int8] // °C
	AirTemperature   Reading[int8]
	TotalLaps        Reading[uint8]
	TrackLength      Reading[uint16] // metres
	SessionType      Reading[SessionType]
	TrackID          Reading[int8]
	Formula          Reading[uint8]
	TimeLeft         Reading[time.Duration]
	Duration         Reading[time.Duration]
	PitSpeedLimit    Reading[uint8] // km/h
	Paused           Reading[uint8]
	Spectating       Reading[uint8]
	SpectatorSlot    int
	MarshalZones     Reading[uint8]
	SafetyCar        Reading[SafetyCarStatus]
	NetworkGame      Reading[uint8]

	outOfRange []string
}

func (SessionRecord) PacketType() PacketType {
	return PacketTypeSession
}

func (r SessionRecord) OutOfRange() []string {
	return r.outOfRange
}

// DecodeSession decodes the leading part of the session payload. Trailing
// bytes (forecast, assists) are tolerated and skipped.
func DecodeSession(payload []byte, _ Envelope) ([]Record, error) {
	if len(payload) < SessionWidth {
		return nil, errors.Wrapf(ErrTruncated, "session: need %d bytes, have %d", SessionWidth, len(payload))
	}

	var w SessionWire

	if err := NewPacket(payload[:SessionWidth]).Read(&w); err != nil {
		return nil, errors.Wrap(err, "session")
	}

	return []Record{newSessionRecord(w)}, nil
}

func newSessionRecord(w SessionWire) SessionRecord {
	var c fieldCheck

	r := SessionRecord{
		Weather:          inSet(&c, "weather", Weather(w.Weather), weatherNames),
		TrackTemperature: inRange(&c, "track_temperature", w.TrackTemperature, -30, 80),
		AirTemperature:   inRange(&c, "air_temperature", w.AirTemperature, -30, 60),
		TotalLaps:        inRange(&c, "total_laps", w.TotalLaps, 0, 200),
		TrackLength:      inRange(&c, "track_length", w.TrackLength, 0, 20000),
		SessionType:      inSet(&c, "session_type", SessionType(w.SessionType), sessionTypeNames),
		TrackID:          inRange(&c, "track_id", w.TrackID, -1, 40),
		Formula:          inRange(&c, "formula", w.Formula, 0, 11),
		TimeLeft:         Valid(time.Duration(w.SessionTimeLeft) * time.Second),
		Duration:         Valid(time.Duration(w.SessionDuration) * time.Second),
		PitSpeedLimit:    inRange(&c, "pit_speed_limit", w.PitSpeedLimit, 0, 120),
		Paused:           inRange(&c, "game_paused", w.GamePaused, 0, 1),
		Spectating:       inRange(&c, "is_spectating", w.IsSpectating, 0, 1),
		SpectatorSlot:    int(w.SpectatorCarIndex),
		MarshalZones:     inRange(&c, "num_marshal_zones", w.NumMarshalZones, 0, 21),
		SafetyCar:        inSet(&c, "safety_car_status", SafetyCarStatus(w.SafetyCarStatus), safetyCarNames),
		NetworkGame:      inRange(&c, "network_game", w.NetworkGame, 0, 1),
	}

	r.outOfRange = c.outOfRange

	return r
}
