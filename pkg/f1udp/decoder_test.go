package f1udp_test

import (
	"math"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"justapengu.in/racetelemetry/pkg/f1udp"
	"justapengu.in/racetelemetry/pkg/f1udp/f1udptest"
)

func TestDecodeEnvelope(t *testing.T) {
	env := f1udptest.Envelope(f1udp.PacketTypeLapData, 0xDEADBEEF)
	env.SessionTime = 123.456

	datagram := f1udptest.Raw(env, f1udp.PacketTypeMotion, nil)

	t.Run("round trip", func(t *testing.T) {
		got, err := f1udp.DecodeEnvelope(datagram)

		if err != nil {
			t.Fatal(err)
		}

		env.PacketType = f1udp.PacketTypeMotion

		if got != env {
			t.Errorf("envelope mismatch\nwant: %s\ngot:  %s", spew.Sdump(env), spew.Sdump(got))
		}
	})

	t.Run("short buffer", func(t *testing.T) {
		_, err := f1udp.DecodeEnvelope(datagram[:f1udp.EnvelopeSize-1])

		if !errors.Is(err, f1udp.ErrTruncated) {
			t.Errorf("expected ErrTruncated, got %v", err)
		}
	})

	t.Run("wrong format tag", func(t *testing.T) {
		old := f1udptest.Envelope(f1udp.PacketTypeLapData, 1)
		old.FormatTag = 1999

		got, err := f1udp.DecodeEnvelope(f1udptest.Raw(old, f1udp.PacketTypeLapData, nil))

		if !errors.Is(err, f1udp.ErrProtocolMismatch) {
			t.Errorf("expected ErrProtocolMismatch, got %v", err)
		}

		if got.FormatTag != 1999 {
			t.Errorf("expected parsed format tag to be returned, got %d", got.FormatTag)
		}
	})
}

func TestDecodeLapData(t *testing.T) {
	var rows [f1udp.MaxSlots]f1udp.LapDataWire

	rows[3] = f1udp.LapDataWire{
		LastLapTimeMS:       90_000,
		CurrentLapTimeMS:    12_345,
		Sector1TimeMS:       30_000,
		Sector2TimeMS:       31_000,
		DeltaToCarInFrontMS: 1_250,
		LapDistance:         1234.5678,
		CarPosition:         2,
		CurrentLapNum:       5,
		PitStatus:           2,
		ResultStatus:        2,
		DriverStatus:        4,
	}

	_, records, err := f1udp.DefaultDecoder.Decode(f1udptest.LapData(f1udptest.Envelope(0, 1), rows))

	if err != nil {
		t.Fatal(err)
	}

	if len(records) != f1udp.MaxSlots {
		t.Fatalf("expected %d records, got %d", f1udp.MaxSlots, len(records))
	}

	r := records[3].(f1udp.LapDataRecord)

	if r.Slot() != 3 {
		t.Errorf("expected slot 3, got %d", r.Slot())
	}

	if r.LastLapTime != 90*time.Second || r.Sector3Time != 29*time.Second {
		t.Errorf("unexpected lap timing: last %s, sector 3 %s", r.LastLapTime, r.Sector3Time)
	}

	if r.GapToFront != 1250*time.Millisecond {
		t.Errorf("expected gap 1.25s, got %s", r.GapToFront)
	}

	if r.GapToLeader != f1udp.UnknownDuration {
		t.Errorf("expected unknown gap to leader, got %s", r.GapToLeader)
	}

	if r.Position != 2 || r.CurrentLap != 5 || r.PitStatus != f1udp.PitStatusPitLane {
		t.Errorf("unexpected record: %s", spew.Sdump(r))
	}

	if r.LapDistance != float32(1234.5678) {
		t.Errorf("lap distance not bit exact: %v", r.LapDistance)
	}

	empty := records[0].(f1udp.LapDataRecord)

	if empty.Position != 0 || empty.LastLapTime != f1udp.UnknownDuration || empty.Sector3Time != f1udp.UnknownDuration {
		t.Errorf("empty slot should decode to unknowns: %s", spew.Sdump(empty))
	}
}

func TestDecodeTruncatedPayload(t *testing.T) {
	var rows [f1udp.MaxSlots]f1udp.LapDataWire

	datagram := f1udptest.LapData(f1udptest.Envelope(0, 1), rows)
	half := datagram[:f1udp.EnvelopeSize+(len(datagram)-f1udp.EnvelopeSize)/2]

	env, records, err := f1udp.DefaultDecoder.Decode(half)

	if !errors.Is(err, f1udp.ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}

	if records != nil {
		t.Errorf("truncated packet must not yield records, got %d", len(records))
	}

	if env.PacketType != f1udp.PacketTypeLapData {
		t.Errorf("expected envelope to be returned, got %s", env.PacketType)
	}
}

func TestDecodeParticipants(t *testing.T) {
	var rows [f1udp.MaxSlots]f1udp.ParticipantWire

	rows[0] = f1udptest.Participant("Max Verstappen", 2, 1)
	rows[1] = f1udptest.Participant("", 3, 99)
	rows[2] = f1udptest.Participant("Charles Leclerc", 1, 16)

	_, records, err := f1udp.DefaultDecoder.Decode(f1udptest.Participants(f1udptest.Envelope(0, 1), 2, rows))

	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 2 {
		t.Fatalf("expected only active cars to be emitted, got %d", len(records))
	}

	tests := []struct {
		slot int
		name string
		code string
	}{
		{0, "Max Verstappen", "VER"},
		{1, "", "slot-1"},
	}

	for _, test := range tests {
		p := records[test.slot].(f1udp.ParticipantRecord)

		if p.Name != test.name || p.Code != test.code {
			t.Errorf("slot %d: expected %q/%q, got %q/%q", test.slot, test.name, test.code, p.Name, p.Code)
		}
	}

	if records[0].(f1udp.ParticipantRecord).RaceNumber != 1 {
		t.Error("race number not decoded")
	}
}

func TestDecodeParticipantsCustomCodes(t *testing.T) {
	var rows [f1udp.MaxSlots]f1udp.ParticipantWire

	rows[0] = f1udptest.Participant("Jane Doeson", 0, 7)

	decoder := f1udp.NewDecoder(f1udp.DefaultNameCodes.With(map[string]string{"Doeson": "JDN"}))

	_, records, err := decoder.Decode(f1udptest.Participants(f1udptest.Envelope(0, 1), 1, rows))

	if err != nil {
		t.Fatal(err)
	}

	if code := records[0].(f1udp.ParticipantRecord).Code; code != "JDN" {
		t.Errorf("expected JDN, got %q", code)
	}
}

func TestDecodeCarTelemetryOutOfRange(t *testing.T) {
	var rows [f1udp.MaxSlots]f1udp.CarTelemetryWire

	rows[0] = f1udptest.CleanTelemetry(500, 7)
	rows[1] = f1udptest.CleanTelemetry(301, 7)
	rows[1].Throttle = float32(math.NaN())

	_, records, err := f1udp.DefaultDecoder.Decode(f1udptest.CarTelemetry(f1udptest.Envelope(0, 1), rows))

	if err != nil {
		t.Fatal(err)
	}

	fast := records[0].(f1udp.CarTelemetryRecord)

	if fast.Speed.OK {
		t.Error("speed 500 must be voided")
	}

	if gear, ok := fast.Gear.Get(); !ok || gear != 7 {
		t.Errorf("gear should survive a bad speed, got %d (%v)", gear, ok)
	}

	if got := fast.OutOfRange(); len(got) != 1 || got[0] != "speed" {
		t.Errorf("expected only speed flagged, got %v", got)
	}

	nan := records[1].(f1udp.CarTelemetryRecord)

	if nan.Throttle.OK || !nan.Speed.OK {
		t.Errorf("expected throttle voided and speed kept: %s", spew.Sdump(nan))
	}

	if pressure, _ := nan.TyresPressure[f1udp.WheelFrontLeft].Get(); pressure != float32(24.1) {
		t.Errorf("tyre pressure not bit exact: %v", pressure)
	}
}

func TestDecodeCarStatus(t *testing.T) {
	var rows [f1udp.MaxSlots]f1udp.CarStatusWire

	rows[0] = f1udptest.CleanStatus(42.5, 16, 3)
	rows[1] = f1udptest.CleanStatus(200, 99, 3)

	_, records, err := f1udp.DefaultDecoder.Decode(f1udptest.CarStatus(f1udptest.Envelope(0, 1), rows))

	if err != nil {
		t.Fatal(err)
	}

	good := records[0].(f1udp.CarStatusRecord)

	if len(good.OutOfRange()) != 0 {
		t.Errorf("expected clean record, got %v", good.OutOfRange())
	}

	if compound, _ := good.VisualCompound.Get(); compound.String() != "Soft" {
		t.Errorf("expected Soft, got %s", compound)
	}

	bad := records[1].(f1udp.CarStatusRecord)

	if bad.FuelInTank.OK || bad.VisualCompound.OK {
		t.Errorf("expected fuel and compound voided: %v", bad.OutOfRange())
	}

	if age, ok := bad.TyresAgeLaps.Get(); !ok || age != 3 {
		t.Errorf("tyre age should survive, got %d (%v)", age, ok)
	}
}

func TestDecodeSession(t *testing.T) {
	s := f1udp.SessionWire{
		Weather:          1,
		TrackTemperature: 34,
		AirTemperature:   24,
		TotalLaps:        57,
		TrackLength:      5412,
		SessionType:      15,
		TrackID:          3,
		SessionTimeLeft:  3600,
		SessionDuration:  7200,
		PitSpeedLimit:    80,
		SafetyCarStatus:  9,
	}

	_, records, err := f1udp.DefaultDecoder.Decode(f1udptest.Session(f1udptest.Envelope(0, 1), s))

	if err != nil {
		t.Fatal(err)
	}

	r := records[0].(f1udp.SessionRecord)

	if laps, _ := r.TotalLaps.Get(); laps != 57 {
		t.Errorf("expected 57 laps, got %d", laps)
	}

	if left, _ := r.TimeLeft.Get(); left != time.Hour {
		t.Errorf("expected an hour left, got %s", left)
	}

	if st, _ := r.SessionType.Get(); !st.IsRace() {
		t.Errorf("expected race session, got %s", st)
	}

	if r.SafetyCar.OK {
		t.Error("safety car status 9 must be voided")
	}
}

func TestDecodeIgnoredPacketTypes(t *testing.T) {
	for _, pt := range []f1udp.PacketType{
		f1udp.PacketTypeMotion,
		f1udp.PacketTypeEvent,
		f1udp.PacketTypeCarDamage,
		f1udp.PacketTypeLapPositions,
		f1udp.PacketType(200),
	} {
		t.Run(pt.String(), func(t *testing.T) {
			if f1udp.Decodes(pt) {
				t.Errorf("%s should not be decoded", pt)
			}

			env, records, err := f1udp.DefaultDecoder.Decode(f1udptest.Raw(f1udptest.Envelope(0, 1), pt, make([]byte, 64)))

			if !errors.Is(err, f1udp.ErrIgnoredPacketType) {
				t.Errorf("expected ErrIgnoredPacketType, got %v", err)
			}

			if records != nil || env.PacketType != pt {
				t.Errorf("unexpected result: %v %s", records, env.PacketType)
			}
		})
	}
}
