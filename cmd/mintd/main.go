package main

import (
	"context"
	stderrs "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wavesplatform/gomint/pkg/api"
	"github.com/wavesplatform/gomint/pkg/broadcast"
	"github.com/wavesplatform/gomint/pkg/escrow"
	"github.com/wavesplatform/gomint/pkg/events"
	"github.com/wavesplatform/gomint/pkg/ledger"
	"github.com/wavesplatform/gomint/pkg/logging"
	"github.com/wavesplatform/gomint/pkg/metrics"
	"github.com/wavesplatform/gomint/pkg/payout"
	"github.com/wavesplatform/gomint/pkg/settings"
	"github.com/wavesplatform/gomint/pkg/storage"
)

const natsConnectTimeout = 15 * time.Second

func main() {
	os.Exit(realMain()) // for more info see https://github.com/golang/go/issues/42078
}

func realMain() int {
	c := new(config)
	if err := c.parse(os.Args[1:]); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			_, _ = fmt.Fprintf(os.Stderr, "Failed to parse application parameters: %v\n", err)
		}
		return 2
	}
	logger, restore := logging.NewLogger(c.lp)
	defer restore()
	defer func() {
		_ = logger.Sync()
	}()
	logger.Debug("Starting with parameters", zap.Stringer("parameters", c))

	s, err := settings.Load(afero.NewOsFs(), c.cfgPath)
	if err != nil {
		logger.Error("Failed to load settings", zap.Error(err))
		return 1
	}
	c.apply(s)
	if err := s.Validate(); err != nil {
		logger.Error("Invalid settings", zap.Error(err))
		return 1
	}

	if err := run(s, logger); err != nil {
		logger.Error("Failed to run mint", zap.Error(err))
		return 1
	}
	return 0
}

func run(s *settings.Settings, logger *zap.Logger) (retErr error) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	stor, err := openStorage(s.Service)
	if err != nil {
		return err
	}
	defer func() {
		retErr = closeAndJoin(stor, retErr, "failed to close storage")
	}()

	var nc *nats.Conn
	if s.Service.NATS.Enabled() {
		conn, ns, err := connectNATS(s.Service.NATS)
		if err != nil {
			return err
		}
		defer func() {
			if err := conn.Flush(); err != nil {
				logger.Warn("Failed to flush NATS connection", zap.Error(err))
			}
			conn.Close()
			if ns != nil {
				broadcast.ShutdownServer(ns)
			}
		}()
		nc = conn
	}

	book := payout.NewBook()
	var transferer escrow.Transferer = book
	if s.Service.NATS.Payouts {
		if s.Service.NATS.Embedded {
			sub, err := payout.Serve(nc, book, logging.Namespace(logger, "payouts"))
			if err != nil {
				return errors.Wrap(err, "failed to serve payouts")
			}
			defer func() {
				_ = sub.Unsubscribe()
			}()
		}
		transferer = payout.NewNATSTransferer(nc, s.Service.NATS.PayoutTimeout.Duration())
	}

	feed := events.NewFeed(logging.Namespace(logger, "events"))
	collector := metrics.NewCollector()
	if err := collector.Register(prometheus.DefaultRegisterer); err != nil {
		return errors.Wrap(err, "failed to register metrics")
	}
	if err := collector.Attach(feed); err != nil {
		return err
	}
	if nc != nil {
		if err := broadcast.NewPublisher(nc, logging.Namespace(logger, "broadcast")).Attach(feed); err != nil {
			return err
		}
	}

	params, opts, err := ledgerConfig(s.Collection)
	if err != nil {
		return err
	}
	opts.Storage = stor
	opts.Transferer = transferer
	opts.Logger = logging.Namespace(logger, "ledger")
	opts.Publisher = feed
	l, err := ledger.New(params, opts)
	if err != nil {
		return errors.Wrap(err, "failed to create ledger")
	}
	collector.Init(uint64(l.UnitPrice()), l.Paused())
	info := l.Info()
	logger.Info("Mint ledger is ready",
		zap.String("name", info.Name), zap.String("symbol", info.Symbol),
		zap.Uint64("supply", info.Supply), zap.Uint64("supplyCap", info.SupplyCap),
		zap.Stringer("operator", info.Operator))

	app, err := api.NewApp(s.Service.API.APIKey, l)
	if err != nil {
		return errors.Wrap(err, "failed to create API application")
	}
	mintAPI := api.NewMintApi(app, logging.Namespace(logger, "api"))

	eg, ctx := errgroup.WithContext(ctx)
	// The feed outlives the API server so that the events of in-flight requests are delivered.
	feedCtx, stopFeed := context.WithCancel(context.Background())
	defer stopFeed()
	eg.Go(func() error {
		defer stopFeed()
		return api.Run(ctx, s.Service.API.Address, mintAPI, runOptions(s.Service.API))
	})
	eg.Go(func() error {
		return feed.Run(feedCtx)
	})
	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("User termination in progress...")
	return nil
}

func openStorage(s settings.Service) (*storage.Storage, error) {
	if s.InMemory {
		return storage.OpenInMemory()
	}
	path, err := filepath.Abs(s.DataDir)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid data directory '%s'", s.DataDir)
	}
	return storage.Open(path)
}

func connectNATS(s settings.NATS) (*nats.Conn, *server.Server, error) {
	url := s.URL
	var ns *server.Server
	if s.Embedded {
		var err error
		ns, err = broadcast.StartEmbeddedServer(broadcast.ServerOptions{Host: s.Host, Port: s.Port})
		if err != nil {
			return nil, nil, err
		}
		url = ns.ClientURL()
	}
	var nc *nats.Conn
	err := retry(natsConnectTimeout, func() error {
		var cErr error
		nc, cErr = nats.Connect(url)
		return cErr
	})
	if err != nil {
		if ns != nil {
			broadcast.ShutdownServer(ns)
		}
		return nil, nil, errors.Wrapf(err, "failed to connect to NATS server '%s'", url)
	}
	return nc, ns, nil
}

func retry(timeout time.Duration, f func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Millisecond
	bo.MaxInterval = 2 * time.Second
	bo.MaxElapsedTime = timeout
	if err := backoff.Retry(f, bo); err != nil {
		if bo.NextBackOff() == backoff.Stop {
			return errors.Wrap(err, "reached retry deadline")
		}
		return err
	}
	return nil
}

func ledgerConfig(c settings.Collection) (ledger.Parameters, ledger.Options, error) {
	price, err := c.UnitPrice()
	if err != nil {
		return ledger.Parameters{}, ledger.Options{}, err
	}
	operator, err := c.OperatorAddress()
	if err != nil {
		return ledger.Parameters{}, ledger.Options{}, err
	}
	mode, err := ledger.NewBatchPointerModeFromString(c.BatchPointers)
	if err != nil {
		return ledger.Parameters{}, ledger.Options{}, err
	}
	params := ledger.Parameters{
		Name:      c.Name,
		Symbol:    c.Symbol,
		Base:      c.Base,
		Price:     price,
		SupplyCap: c.SupplyCap,
		Operator:  operator,
	}
	return params, ledger.Options{BatchPointers: mode, MaxBatchSize: c.MaxBatchSize}, nil
}

func runOptions(s settings.API) *api.RunOptions {
	opts := api.DefaultRunOptions()
	opts.LogHttpRequestOpts = s.LogRequests
	if rl := s.RateLimit; rl != nil {
		cacheSize := rl.MemoryCacheSize
		if cacheSize <= 0 {
			cacheSize = api.DefaultRateLimiterStorageSize
		}
		opts.RateLimiterOpts = &api.RateLimiterOptions{
			MemoryCacheSize:      cacheSize,
			MaxRequestsPerSecond: rl.MaxRequestsPerSecond,
			MaxBurst:             rl.MaxBurst,
		}
	} else {
		opts.RateLimiterOpts = nil
	}
	return opts
}

func closeAndJoin(closer io.Closer, retErr error, msg string) error {
	if clErr := closer.Close(); clErr != nil {
		return stderrs.Join(retErr, errors.Wrap(clErr, msg))
	}
	return retErr
}
