package main

import (
	"bytes"
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/raven-go"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"justapengu.in/racetelemetry/internal/config"
	"justapengu.in/racetelemetry/internal/livefeed"
	"justapengu.in/racetelemetry/internal/session"
	"justapengu.in/racetelemetry/internal/telemetry"
	"justapengu.in/racetelemetry/pkg/f1udp"
)

var configPath string

func init() {
	flag.StringVar(&configPath, "c", "", "config path (optional, RACETELEMETRY_* env vars override it)")
	flag.Parse()
}

func main() {
	conf, err := config.Load(configPath)

	if err != nil {
		logrus.WithError(err).Fatalf("Could not read config at %q", configPath)
	}

	logger := conf.NewLogger()

	logger.Infof("Starting racetelemetry, F1 %d UDP format on port %d", f1udp.FormatTag, conf.Listener.Port)

	if conf.Sentry.DSN != "" {
		if err := raven.SetDSN(conf.Sentry.DSN); err != nil {
			logger.WithError(err).Error("Could not configure error reporting")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metrics := telemetry.NewMetrics(registry)
	publisher := session.NewPublisher()
	aggregator := session.NewAggregator(publisher, logger)
	ingester := telemetry.NewIngester(f1udp.NewDecoder(conf.NameCodes()), aggregator, metrics, logger)
	listener := telemetry.NewListener(conf.Listener, ingester, metrics, logger)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return listener.Listen(ctx)
	})

	if conf.HTTP.Enabled {
		server := livefeed.NewServer(conf.HTTP, publisher, registry, logger)

		g.Go(func() error {
			return server.Listen(ctx)
		})
	}

	if conf.Leaderboard.PrintInterval > 0 {
		g.Go(func() error {
			printLeaderboard(ctx, publisher, conf.Leaderboard.PrintInterval, logger)
			return nil
		})
	}

	err = g.Wait()

	publisher.Close()

	var transportErr *telemetry.TransportError

	if errors.As(err, &transportErr) {
		raven.CaptureErrorAndWait(err, map[string]string{"component": "listener", "op": transportErr.Op})
		logger.WithError(err).Fatal("Lost the telemetry socket")
	} else if err != nil {
		raven.CaptureErrorAndWait(err, nil)
		logger.WithError(err).Fatal("Could not run racetelemetry")
	}

	logger.Infof("Stopped. Exiting")
}

func printLeaderboard(ctx context.Context, publisher *session.Publisher, interval time.Duration, logger logrus.FieldLogger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastSequence uint64

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snapshot := publisher.Get()

			if snapshot.Sequence == lastSequence {
				continue
			}

			lastSequence = snapshot.Sequence

			var buf bytes.Buffer

			session.RenderLeaderboard(&buf, snapshot, time.Now())

			logger.Info("Leaderboard\n" + buf.String())
		}
	}
}
