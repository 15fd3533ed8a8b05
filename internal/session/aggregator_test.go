package session

import (
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"justapengu.in/racetelemetry/pkg/f1udp"
	"justapengu.in/racetelemetry/pkg/f1udp/f1udptest"
)

var testClock = time.Date(2024, 7, 7, 14, 0, 0, 0, time.UTC)

func newTestAggregator() (*Aggregator, *Publisher) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	publisher := NewPublisher()
	aggregator := NewAggregator(publisher, logger)
	aggregator.SetClock(func() time.Time { return testClock })

	return aggregator, publisher
}

func decode(t *testing.T, datagram []byte) (f1udp.Envelope, []f1udp.Record) {
	t.Helper()

	env, records, err := f1udp.DefaultDecoder.Decode(datagram)

	if err != nil {
		t.Fatalf("could not decode test datagram: %v", err)
	}

	return env, records
}

type lapPosition struct {
	slot     int
	position uint8
}

func lapDataPacket(sessionID uint64, positions ...lapPosition) []byte {
	var rows [f1udp.MaxSlots]f1udp.LapDataWire

	for _, p := range positions {
		rows[p.slot] = f1udp.LapDataWire{
			LastLapTimeMS:    uint32(90_000 + p.slot),
			CurrentLapTimeMS: 10_000,
			Sector1TimeMS:    30_000,
			Sector2TimeMS:    30_000,
			CarPosition:      p.position,
			CurrentLapNum:    3,
			ResultStatus:     2,
			DriverStatus:     4,
		}
	}

	return f1udptest.LapData(f1udptest.Envelope(0, sessionID), rows)
}

func order(s *Snapshot) []int {
	var slots []int

	for _, d := range s.Drivers {
		slots = append(slots, d.Slot)
	}

	return slots
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func TestApplyIsIdempotent(t *testing.T) {
	aggregator, _ := newTestAggregator()

	env, records := decode(t, lapDataPacket(1, lapPosition{0, 1}, lapPosition{3, 2}))

	once := aggregator.Apply(env, records)
	twice := aggregator.Apply(env, records)

	if !equalInts(order(once), order(twice)) {
		t.Fatalf("order changed: %v vs %v", order(once), order(twice))
	}

	for i := range once.Drivers {
		if once.Drivers[i] != twice.Drivers[i] {
			t.Errorf("driver state changed on reapply\nonce:  %s\ntwice: %s", spew.Sdump(once.Drivers[i]), spew.Sdump(twice.Drivers[i]))
		}
	}
}

func TestSessionChangeResetsDrivers(t *testing.T) {
	aggregator, publisher := newTestAggregator()

	var participants [f1udp.MaxSlots]f1udp.ParticipantWire
	participants[5] = f1udptest.Participant("Lewis Hamilton", 0, 44)

	aggregator.Apply(decode(t, f1udptest.Participants(f1udptest.Envelope(0, 1), 6, participants)))
	aggregator.Apply(decode(t, lapDataPacket(1, lapPosition{5, 1}, lapPosition{7, 2})))

	if d, _ := publisher.Get().Driver(5); d.Code != "HAM" {
		t.Fatalf("expected HAM in slot 5, got %q", d.Code)
	}

	s := aggregator.Apply(decode(t, lapDataPacket(2, lapPosition{1, 1})))

	if s.SessionID != 2 {
		t.Errorf("expected session 2, got %d", s.SessionID)
	}

	leaderboard := s.Leaderboard()

	if len(leaderboard) != 1 || leaderboard[0].Slot != 1 {
		t.Fatalf("stale drivers survived the session change: %s", spew.Sdump(leaderboard))
	}

	if leaderboard[0].Timing.BestLap != 90_001*time.Millisecond {
		t.Errorf("unexpected best lap after reset: %s", leaderboard[0].Timing.BestLap)
	}

	if d, _ := s.Driver(5); d.Name != "" || d.Code != "" || d.Position != 0 {
		t.Errorf("slot 5 kept data from the previous session: %s", spew.Sdump(d))
	}
}

func TestPositionChangeReordersLeaderboard(t *testing.T) {
	aggregator, _ := newTestAggregator()

	aggregator.Apply(decode(t, lapDataPacket(1,
		lapPosition{0, 1},
		lapPosition{1, 2},
		lapPosition{2, 3},
		lapPosition{3, 5},
		lapPosition{4, 4},
	)))

	s := aggregator.Apply(decode(t, lapDataPacket(1,
		lapPosition{0, 1},
		lapPosition{1, 3},
		lapPosition{2, 4},
		lapPosition{3, 2},
		lapPosition{4, 5},
	)))

	want := []int{0, 3, 1, 2, 4}

	if got := order(s); !equalInts(got[:5], want) {
		t.Errorf("expected order %v, got %v", want, got)
	}

	slot3, _ := s.Driver(3)

	if slot3.Position != 2 {
		t.Errorf("expected slot 3 in P2, got P%d", slot3.Position)
	}
}

func TestUnknownPositionsSortLast(t *testing.T) {
	drivers := []DriverState{
		{Slot: 4, Position: 0},
		{Slot: 2, Position: 2},
		{Slot: 1, Position: 0},
		{Slot: 3, Position: 1},
		{Slot: 0, Position: 2},
	}

	sortDrivers(drivers, byPosition)

	var got []int

	for _, d := range drivers {
		got = append(got, d.Slot)
	}

	if want := []int{3, 0, 2, 1, 4}; !equalInts(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestOutOfRangeFieldLeavesValueUnchanged(t *testing.T) {
	aggregator, _ := newTestAggregator()

	var rows [f1udp.MaxSlots]f1udp.CarTelemetryWire

	rows[0] = f1udptest.CleanTelemetry(280, 6)
	aggregator.Apply(decode(t, f1udptest.CarTelemetry(f1udptest.Envelope(0, 1), rows)))

	rows[0] = f1udptest.CleanTelemetry(500, 7)
	s := aggregator.Apply(decode(t, f1udptest.CarTelemetry(f1udptest.Envelope(0, 1), rows)))

	d, ok := s.Driver(0)

	if !ok {
		t.Fatal("slot 0 missing")
	}

	if d.Telemetry.Speed != 280 {
		t.Errorf("out of range speed overwrote value, got %d", d.Telemetry.Speed)
	}

	if d.Telemetry.Gear != 7 {
		t.Errorf("gear should have updated to 7, got %d", d.Telemetry.Gear)
	}
}

func TestPacketTypesMergeIndependently(t *testing.T) {
	aggregator, _ := newTestAggregator()

	var participants [f1udp.MaxSlots]f1udp.ParticipantWire
	participants[0] = f1udptest.Participant("Max Verstappen", 2, 1)

	var status [f1udp.MaxSlots]f1udp.CarStatusWire
	status[0] = f1udptest.CleanStatus(30, 17, 9)

	aggregator.Apply(decode(t, f1udptest.Participants(f1udptest.Envelope(0, 1), 1, participants)))
	aggregator.Apply(decode(t, lapDataPacket(1, lapPosition{0, 1})))
	s := aggregator.Apply(decode(t, f1udptest.CarStatus(f1udptest.Envelope(0, 1), status)))

	d, _ := s.Driver(0)

	if d.Code != "VER" || d.Position != 1 || d.Car.FuelInTank != 30 || d.Car.VisualCompound.String() != "Medium" {
		t.Errorf("fields from separate packets did not merge: %s", spew.Sdump(d))
	}

	if !d.LastUpdate.Equal(testClock) {
		t.Errorf("expected last update %s, got %s", testClock, d.LastUpdate)
	}
}

func TestBestLapKeepsFastest(t *testing.T) {
	d := newDriverState(0)

	for _, lap := range []uint32{92_000, 90_500, 91_000} {
		var rows [f1udp.MaxSlots]f1udp.LapDataWire
		rows[0].LastLapTimeMS = lap

		records, err := f1udp.DecodeLapData(encodeRows(rows), f1udp.Envelope{})

		if err != nil {
			t.Fatal(err)
		}

		d.applyLapData(records[0].(f1udp.LapDataRecord))
	}

	if d.Timing.BestLap != 90_500*time.Millisecond {
		t.Errorf("expected best lap 1:30.500, got %s", FormatLapTime(d.Timing.BestLap))
	}
}

func encodeRows(rows [f1udp.MaxSlots]f1udp.LapDataWire) []byte {
	p := f1udp.NewPacket(nil)
	p.Write(rows)

	return p.Bytes()
}

func TestRejectAndIgnoreKeepDrivers(t *testing.T) {
	aggregator, publisher := newTestAggregator()

	before := aggregator.Apply(decode(t, lapDataPacket(1, lapPosition{0, 1})))

	rejected := aggregator.Reject(RejectProtocolMismatch)
	ignored := aggregator.Ignore()
	aggregator.Drop()

	if len(rejected.Drivers) != len(before.Drivers) {
		t.Fatalf("reject changed the driver count: %d vs %d", len(rejected.Drivers), len(before.Drivers))
	}

	for i := range before.Drivers {
		if rejected.Drivers[i] != before.Drivers[i] {
			t.Errorf("reject changed driver state: %s", spew.Sdump(rejected.Drivers[i]))
		}
	}

	counters := aggregator.Counters()

	want := Counters{
		Received:           3,
		Accepted:           1,
		Rejected:           1,
		Ignored:            1,
		Dropped:            1,
		ProtocolMismatches: 1,
	}

	if counters != want {
		t.Errorf("unexpected counters\nwant: %+v\ngot:  %+v", want, counters)
	}

	if publisher.Get() != ignored {
		t.Error("publisher should hold the latest snapshot")
	}
}

func TestApplyIgnoresSlotsOutOfRange(t *testing.T) {
	aggregator, _ := newTestAggregator()

	records := []f1udp.Record{
		f1udp.LapDataRecord{Index: 3, Position: 1, ResultStatus: f1udp.ResultActive},
		f1udp.LapDataRecord{Index: f1udp.MaxSlots, Position: 2, ResultStatus: f1udp.ResultActive},
		f1udp.ParticipantRecord{Index: -1, Code: "BAD"},
		f1udp.CarTelemetryRecord{Index: f1udp.MaxSlots + 5},
	}

	s := aggregator.Apply(f1udptest.Envelope(f1udp.PacketTypeLapData, 1), records)

	if got := order(s); !equalInts(got, []int{3}) {
		t.Fatalf("expected only slot 3 to be merged, got %v", got)
	}

	if d := s.Drivers[0]; d.Position != 1 || d.Code != "" {
		t.Errorf("unexpected driver: %s", spew.Sdump(d))
	}
}
