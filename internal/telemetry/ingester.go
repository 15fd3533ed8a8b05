package telemetry

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"justapengu.in/racetelemetry/internal/session"
	"justapengu.in/racetelemetry/pkg/f1udp"
)

// Ingester decodes datagrams and feeds the aggregator. Decode failures are
// counted and logged at debug level; none of them stop ingestion.
type Ingester struct {
	decoder    *f1udp.Decoder
	aggregator *session.Aggregator
	metrics    *Metrics
	logger     Logger
}

func NewIngester(decoder *f1udp.Decoder, aggregator *session.Aggregator, metrics *Metrics, logger Logger) *Ingester {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}

	return &Ingester{
		decoder:    decoder,
		aggregator: aggregator,
		metrics:    metrics,
		logger:     logger,
	}
}

func (i *Ingester) Handle(datagram []byte) {
	start := time.Now()
	defer func() {
		i.metrics.DecodeDuration.Observe(time.Since(start).Seconds())
	}()

	i.metrics.Packets.WithLabelValues(resultReceived).Inc()

	env, records, err := i.decoder.Decode(datagram)

	switch {
	case err == nil:
		i.countOutOfRange(env.PacketType, records)

		snapshot := i.aggregator.Apply(env, records)

		i.metrics.Packets.WithLabelValues(resultAccepted).Inc()
		i.metrics.Drivers.Set(float64(len(snapshot.Leaderboard())))
	case errors.Is(err, f1udp.ErrIgnoredPacketType):
		i.aggregator.Ignore()
		i.metrics.Packets.WithLabelValues(resultIgnored).Inc()
	default:
		reason := rejectReason(err)

		i.logger.WithError(err).WithFields(logrus.Fields{
			"reason": reason,
			"length": len(datagram),
		}).Debug("Rejected datagram")

		i.aggregator.Reject(reason)
		i.metrics.Packets.WithLabelValues(resultRejected).Inc()
		i.metrics.Rejections.WithLabelValues(reason.String()).Inc()
	}
}

// Dropped records a datagram discarded before it reached Handle.
func (i *Ingester) Dropped() {
	i.aggregator.Drop()
	i.metrics.Packets.WithLabelValues(resultDropped).Inc()
}

func (i *Ingester) countOutOfRange(packetType f1udp.PacketType, records []f1udp.Record) {
	var n int

	for _, record := range records {
		if v, ok := record.(f1udp.FieldValidator); ok {
			n += len(v.OutOfRange())
		}
	}

	if n > 0 {
		i.metrics.OutOfRange.WithLabelValues(packetType.String()).Add(float64(n))
		i.logger.Debugf("%d %s fields out of range", n, packetType)
	}
}

func rejectReason(err error) session.RejectReason {
	switch {
	case errors.Is(err, f1udp.ErrProtocolMismatch):
		return session.RejectProtocolMismatch
	case errors.Is(err, f1udp.ErrTruncated):
		return session.RejectTruncated
	default:
		return session.RejectMalformed
	}
}
