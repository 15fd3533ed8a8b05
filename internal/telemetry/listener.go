package telemetry

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"
)

// PacketHandler consumes datagrams from the listener. Handle is only ever
// called from one goroutine, in receive order.
type PacketHandler interface {
	Handle(datagram []byte)
	Dropped()
}

// Listener receives game datagrams on a UDP socket. It never looks inside a
// datagram; everything is handed to the PacketHandler through a bounded
// queue so the socket keeps draining under bursts.
type Listener struct {
	config  ListenerConfig
	handler PacketHandler
	metrics *Metrics
	logger  Logger

	mutex sync.Mutex
	conn  *net.UDPConn

	stats statistics
}

func NewListener(config ListenerConfig, handler PacketHandler, metrics *Metrics, logger Logger) *Listener {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}

	return &Listener{
		config:  config,
		handler: handler,
		metrics: metrics,
		logger:  logger,
	}
}

// Bind opens the socket. Listen binds on its own if Bind was not called.
func (l *Listener) Bind() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.conn != nil {
		return nil
	}

	addr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(l.config.BindAddress, strconv.Itoa(l.config.Port)))

	if err != nil {
		return &TransportError{Op: "resolve", Err: err}
	}

	conn, err := net.ListenUDP("udp", addr)

	if err != nil {
		return &TransportError{Op: "listen", Err: err}
	}

	if l.config.ReceiveBufferSize > 0 {
		checkReceiveBuffer(l.config.ReceiveBufferSize, l.logger)

		if err := conn.SetReadBuffer(l.config.ReceiveBufferSize); err != nil {
			l.logger.WithError(err).Warnf("Could not set UDP receive buffer to %d bytes", l.config.ReceiveBufferSize)
		}
	}

	l.conn = conn

	return nil
}

// LocalAddr is the bound address, or nil before Bind.
func (l *Listener) LocalAddr() net.Addr {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.conn == nil {
		return nil
	}

	return l.conn.LocalAddr()
}

// Listen receives until ctx is cancelled, then drains queued datagrams and
// returns nil. A socket failure returns a *TransportError.
func (l *Listener) Listen(ctx context.Context) error {
	if err := l.Bind(); err != nil {
		return err
	}

	l.mutex.Lock()
	conn := l.conn
	l.mutex.Unlock()

	l.logger.Infof("Telemetry listener receiving on udp %s", conn.LocalAddr())

	queue := make(chan []byte, l.config.QueueSize)
	processed := make(chan struct{})

	go func() {
		defer close(processed)

		for datagram := range queue {
			l.metrics.QueueDepth.Set(float64(len(queue)))
			l.handler.Handle(datagram)
		}
	}()

	stopped := make(chan struct{})

	go func() {
		select {
		case <-ctx.Done():
		case <-stopped:
		}

		// unblocks a pending read
		_ = conn.Close()
	}()

	err := l.receive(ctx, conn, queue)

	close(stopped)
	close(queue)
	<-processed

	l.mutex.Lock()
	l.conn = nil
	l.mutex.Unlock()

	l.logger.Infof("Closing telemetry listener")
	l.stats.print(l.logger)

	return err
}

func (l *Listener) receive(ctx context.Context, conn *net.UDPConn, queue chan<- []byte) error {
	buf := make([]byte, l.config.MaxDatagramSize)

	for {
		if ctx.Err() != nil {
			return nil
		}

		if err := conn.SetReadDeadline(time.Now().Add(l.config.ReadTimeout)); err != nil {
			if ctx.Err() != nil {
				return nil
			}

			l.logger.WithError(err).Error("Could not set UDP read deadline")

			return &TransportError{Op: "set deadline", Err: err}
		}

		n, _, err := conn.ReadFromUDP(buf)

		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				continue
			}

			if ctx.Err() != nil {
				return nil
			}

			l.logger.WithError(err).Error("Could not read from udp socket")

			return &TransportError{Op: "read", Err: err}
		}

		l.stats.received(n)

		datagram := make([]byte, n)
		copy(datagram, buf[:n])

		select {
		case queue <- datagram:
		default:
			l.stats.dropped()
			l.handler.Dropped()
		}
	}
}
