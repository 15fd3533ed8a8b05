package livefeed

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi"
	"github.com/go-http-utils/etag"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/netutil"

	"justapengu.in/racetelemetry/internal/session"
)

type Logger = logrus.FieldLogger

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server exposes published snapshots over HTTP and websockets. It only
// reads from the publisher.
type Server struct {
	config    Config
	publisher *session.Publisher
	gatherer  prometheus.Gatherer
	logger    Logger
	now       func() time.Time
}

func NewServer(config Config, publisher *session.Publisher, gatherer prometheus.Gatherer, logger Logger) *Server {
	return &Server{
		config:    config,
		publisher: publisher,
		gatherer:  gatherer,
		logger:    logger,
		now:       time.Now,
	}
}

// Listen serves until ctx is cancelled.
func (s *Server) Listen(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Address)

	if err != nil {
		return err
	}

	if s.config.MaxConnections > 0 {
		listener = netutil.LimitListener(listener, s.config.MaxConnections)
	}

	return s.Serve(ctx, listener)
}

func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	s.logger.Infof("HTTP server listening on: %s", listener.Addr())

	errCh := make(chan error, 1)

	go func() {
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Infof("Closing HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Method(http.MethodGet, "/api/snapshot", etag.Handler(http.HandlerFunc(s.Snapshot), false))
	router.Method(http.MethodGet, "/api/leaderboard", etag.Handler(http.HandlerFunc(s.Leaderboard), false))
	router.Method(http.MethodGet, "/api/leaderboard.txt", etag.Handler(http.HandlerFunc(s.LeaderboardText), false))
	router.Get("/ws", s.WebSocket)

	if s.gatherer != nil {
		router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debugf("Could not find HTTP response for URL: %s", r.URL.String())

		http.NotFound(w, r)
	})

	return router
}

func (s *Server) Snapshot(w http.ResponseWriter, r *http.Request) {
	snapshot := s.publisher.Get()

	s.writeJSON(w, newSnapshotView(snapshot, snapshot.Drivers, s.now()))
}

func (s *Server) Leaderboard(w http.ResponseWriter, r *http.Request) {
	snapshot := s.publisher.Get()

	s.writeJSON(w, newSnapshotView(snapshot, snapshot.Leaderboard(), s.now()))
}

func (s *Server) LeaderboardText(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	session.RenderLeaderboard(w, s.publisher.Get(), s.now())
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Add("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("Could not encode JSON response")
	}
}

// WebSocket pushes one message per published snapshot, starting with the
// current one. A slow client skips snapshots rather than queueing them.
// ?format=cbor sends binary CBOR frames instead of JSON text.
func (s *Server) WebSocket(w http.ResponseWriter, r *http.Request) {
	encode, messageType := json.Marshal, websocket.TextMessage

	if r.URL.Query().Get("format") == "cbor" {
		encode, messageType = cbor.Marshal, websocket.BinaryMessage
	}

	c, err := upgrader.Upgrade(w, r, nil)

	if err != nil {
		s.logger.WithError(err).Debug("Could not upgrade websocket")
		return
	}

	defer c.Close()

	snapshots, cancel := s.publisher.Subscribe()
	defer cancel()

	closed := make(chan struct{})

	go func() {
		defer close(closed)

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func(snapshot *session.Snapshot) bool {
		b, err := encode(newSnapshotView(snapshot, snapshot.Drivers, s.now()))

		if err != nil {
			s.logger.WithError(err).Error("Could not encode snapshot")
			return false
		}

		_ = c.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))

		if err := c.WriteMessage(messageType, b); err != nil {
			s.logger.WithError(err).Debug("Could not write to websocket")
			return false
		}

		return true
	}

	if !send(s.publisher.Get()) {
		return
	}

	for {
		select {
		case snapshot, ok := <-snapshots:
			if !ok || !send(snapshot) {
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}
