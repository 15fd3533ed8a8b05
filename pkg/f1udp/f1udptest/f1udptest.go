// Package f1udptest builds well formed F1 24 datagrams for tests.
package f1udptest

import (
	"justapengu.in/racetelemetry/pkg/f1udp"
)

// Envelope returns a valid F1 24 envelope for the given packet type.
func Envelope(t f1udp.PacketType, sessionID uint64) f1udp.Envelope {
	return f1udp.Envelope{
		FormatTag:           f1udp.FormatTag,
		GameYear:            24,
		GameMajor:           1,
		GameMinor:           14,
		PacketVersion:       1,
		PacketType:          t,
		SessionID:           sessionID,
		SessionTime:         12.5,
		FrameID:             100,
		OverallFrameID:      100,
		PlayerSlot:          0,
		SecondaryPlayerSlot: f1udp.NoSlot,
	}
}

func build(env f1udp.Envelope, body ...interface{}) []byte {
	p := f1udp.NewPacket(nil)

	p.Write(env)

	for _, b := range body {
		p.Write(b)
	}

	return p.Bytes()
}

func LapData(env f1udp.Envelope, rows [f1udp.MaxSlots]f1udp.LapDataWire) []byte {
	env.PacketType = f1udp.PacketTypeLapData

	// time trial personal best and rival slots
	return build(env, rows, [2]uint8{f1udp.NoSlot, f1udp.NoSlot})
}

func Participants(env f1udp.Envelope, numActive uint8, rows [f1udp.MaxSlots]f1udp.ParticipantWire) []byte {
	env.PacketType = f1udp.PacketTypeParticipants

	return build(env, numActive, rows)
}

func CarTelemetry(env f1udp.Envelope, rows [f1udp.MaxSlots]f1udp.CarTelemetryWire) []byte {
	env.PacketType = f1udp.PacketTypeCarTelemetry

	// MFD panel indices and suggested gear
	return build(env, rows, [2]uint8{255, 255}, int8(0))
}

func CarStatus(env f1udp.Envelope, rows [f1udp.MaxSlots]f1udp.CarStatusWire) []byte {
	env.PacketType = f1udp.PacketTypeCarStatus

	return build(env, rows)
}

func Session(env f1udp.Envelope, s f1udp.SessionWire) []byte {
	env.PacketType = f1udp.PacketTypeSession

	return build(env, s)
}

// Raw builds a datagram of the given type with an arbitrary payload.
func Raw(env f1udp.Envelope, t f1udp.PacketType, payload []byte) []byte {
	env.PacketType = t

	if len(payload) == 0 {
		return build(env)
	}

	return build(env, payload)
}

// Name encodes s into the fixed NUL padded name field.
func Name(s string) [48]byte {
	var out [48]byte

	copy(out[:47], s)

	return out
}

// Participant is an AI controlled participant row.
func Participant(name string, team uint8, raceNumber uint8) f1udp.ParticipantWire {
	return f1udp.ParticipantWire{
		AIControlled:  1,
		TeamID:        team,
		RaceNumber:    raceNumber,
		Name:          Name(name),
		YourTelemetry: 1,
	}
}

// CleanTelemetry is a telemetry row with every field inside its plausible
// range.
func CleanTelemetry(speed uint16, gear int8) f1udp.CarTelemetryWire {
	return f1udp.CarTelemetryWire{
		Speed:                   speed,
		Throttle:                1,
		Brake:                   0,
		Gear:                    gear,
		EngineRPM:               11000,
		RevLightsPercent:        50,
		BrakesTemperature:       [4]uint16{500, 500, 520, 520},
		TyresSurfaceTemperature: [4]uint8{95, 95, 98, 98},
		TyresInnerTemperature:   [4]uint8{100, 100, 102, 102},
		EngineTemperature:       110,
		TyresPressure:           [4]float32{22.5, 22.5, 24.1, 24.1},
	}
}

// CleanStatus is a status row with every field inside its plausible range.
func CleanStatus(fuel float32, visual uint8, age uint8) f1udp.CarStatusWire {
	return f1udp.CarStatusWire{
		TractionControl:    0,
		AntiLockBrakes:     0,
		FuelMix:            1,
		FrontBrakeBias:     55,
		FuelInTank:         fuel,
		FuelCapacity:       110,
		FuelRemainingLaps:  2.5,
		MaxRPM:             13000,
		IdleRPM:            4000,
		MaxGears:           8,
		ActualTyreCompound: 18,
		VisualTyreCompound: visual,
		TyresAgeLaps:       age,
		VehicleFIAFlags:    0,
		ERSStoreEnergy:     2e6,
		ERSDeployMode:      1,
	}
}
