package session

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"justapengu.in/racetelemetry/pkg/f1udp"
)

type RejectReason int

const (
	RejectProtocolMismatch RejectReason = iota
	RejectTruncated
	RejectMalformed
)

func (r RejectReason) String() string {
	switch r {
	case RejectProtocolMismatch:
		return "protocol_mismatch"
	case RejectTruncated:
		return "truncated"
	default:
		return "malformed"
	}
}

// Aggregator owns the per-slot driver table for the current session. All
// mutation happens under one mutex; readers only ever see published
// snapshots.
type Aggregator struct {
	mutex sync.Mutex

	publisher *Publisher
	logger    Logger
	now       func() time.Time

	haveSession bool
	envelope    f1udp.Envelope
	info        SessionInfo
	drivers     [f1udp.MaxSlots]DriverState
	counters    Counters
	sequence    uint64
	updatedAt   time.Time
}

func NewAggregator(publisher *Publisher, logger Logger) *Aggregator {
	a := &Aggregator{
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}

	a.resetSlots()

	return a
}

// SetClock replaces the wall clock used to stamp updates.
func (a *Aggregator) SetClock(now func() time.Time) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.now = now
}

func (a *Aggregator) resetSlots() {
	for i := range a.drivers {
		a.drivers[i] = newDriverState(i)
	}

	a.info = SessionInfo{}
}

// Apply merges one decoded packet into the table and publishes the result.
// A new session id clears every slot first.
func (a *Aggregator) Apply(env f1udp.Envelope, records []f1udp.Record) *Snapshot {
	a.mutex.Lock()

	if !a.haveSession || env.SessionID != a.envelope.SessionID {
		if a.haveSession {
			a.logger.WithFields(logrus.Fields{
				"previous": a.envelope.SessionID,
				"session":  env.SessionID,
			}).Info("New session detected, resetting drivers")
		}

		a.resetSlots()
		a.haveSession = true
	}

	now := a.now()

	a.envelope = env
	a.updatedAt = now
	a.counters.Received++
	a.counters.Accepted++

	for _, record := range records {
		if r, ok := record.(f1udp.SessionRecord); ok {
			a.info.apply(r)
			continue
		}

		slotRecord, ok := record.(f1udp.SlotRecord)

		if !ok {
			a.logger.Debugf("No merge for record of type %s", record.PacketType())
			continue
		}

		d := a.slot(slotRecord.Slot())

		if d == nil {
			continue
		}

		switch r := record.(type) {
		case f1udp.LapDataRecord:
			d.applyLapData(r)
		case f1udp.ParticipantRecord:
			d.applyParticipant(r)
		case f1udp.CarTelemetryRecord:
			d.applyTelemetry(r)
		case f1udp.CarStatusRecord:
			d.applyCarStatus(r)
		default:
			a.logger.Debugf("No merge for record of type %s", record.PacketType())
			continue
		}

		d.LastUpdate = now
	}

	snapshot := a.snapshot()

	a.mutex.Unlock()

	a.publisher.Publish(snapshot)

	return snapshot
}

func (a *Aggregator) slot(index int) *DriverState {
	if index < 0 || index >= f1udp.MaxSlots {
		return nil
	}

	return &a.drivers[index]
}

// Reject counts a datagram that could not be decoded. Driver state is left
// alone but a snapshot is published so the counters are visible.
func (a *Aggregator) Reject(reason RejectReason) *Snapshot {
	return a.count(func(c *Counters) {
		c.Rejected++

		switch reason {
		case RejectProtocolMismatch:
			c.ProtocolMismatches++
		case RejectTruncated:
			c.Truncated++
		}
	})
}

// Ignore counts a well formed datagram whose packet type is not decoded.
func (a *Aggregator) Ignore() *Snapshot {
	return a.count(func(c *Counters) {
		c.Ignored++
	})
}

// Drop counts a datagram discarded before decoding. Drops happen under
// pressure, so no snapshot is published for them.
func (a *Aggregator) Drop() {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.counters.Dropped++
}

func (a *Aggregator) count(fn func(c *Counters)) *Snapshot {
	a.mutex.Lock()

	a.counters.Received++
	fn(&a.counters)

	snapshot := a.snapshot()

	a.mutex.Unlock()

	a.publisher.Publish(snapshot)

	return snapshot
}

// Counters returns the current counter values.
func (a *Aggregator) Counters() Counters {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	return a.counters
}

// snapshot must be called with the mutex held.
func (a *Aggregator) snapshot() *Snapshot {
	a.sequence++

	drivers := make([]DriverState, 0, f1udp.MaxSlots)

	for _, d := range a.drivers {
		if d.seen() {
			drivers = append(drivers, d)
		}
	}

	sortDrivers(drivers, byPosition)

	return &Snapshot{
		SessionID:   a.envelope.SessionID,
		Sequence:    a.sequence,
		PlayerSlot:  a.envelope.PlayerSlot,
		SessionTime: a.envelope.SessionTime,
		FrameID:     a.envelope.FrameID,
		Session:     a.info,
		Drivers:     drivers,
		Counters:    a.counters,
		UpdatedAt:   a.updatedAt,
	}
}
