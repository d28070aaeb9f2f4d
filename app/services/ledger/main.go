package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/ardanlabs/fraudledger/app/services/ledger/handlers"
	"github.com/ardanlabs/fraudledger/app/services/ledger/handlers/v1/public"
	"github.com/ardanlabs/fraudledger/business/core/predict"
	"github.com/ardanlabs/fraudledger/business/sys/publish"
	"github.com/ardanlabs/fraudledger/foundation/events"
	"github.com/ardanlabs/fraudledger/foundation/ledger/analytics"
	"github.com/ardanlabs/fraudledger/foundation/ledger/genesis"
	"github.com/ardanlabs/fraudledger/foundation/ledger/state"
	"github.com/ardanlabs/fraudledger/foundation/logger"
	"github.com/ardanlabs/fraudledger/foundation/nameservice"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("LEDGER")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	// A .env file is optional. Values already set in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg := struct {
		conf.Version
		Web struct {
			ReadTimeout     time.Duration `conf:"default:5s"`
			WriteTimeout    time.Duration `conf:"default:10s"`
			IdleTimeout     time.Duration `conf:"default:120s"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
			APIHost         string        `conf:"default:0.0.0.0:3000"`
			DebugHost       string        `conf:"default:0.0.0.0:4000"`
			CorsOrigin      string        `conf:"default:*"`
		}
		Ledger struct {
			GenesisPath     string
			NamesFolder     string `conf:"default:zledger/accounts/"`
			StrictAddresses bool   `conf:"default:false"`
		}
		Predict struct {
			URL     string
			Timeout time.Duration `conf:"default:2s"`
		}
		Kafka struct {
			Brokers      []string
			Topic        string        `conf:"default:ledger-events"`
			BatchSize    int           `conf:"default:100"`
			BatchTimeout time.Duration `conf:"default:50ms"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "fraud scoring ledger",
		},
	}

	const prefix = "LEDGER"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Name Service Support

	ns, err := nameservice.New(cfg.Ledger.NamesFolder)
	if err != nil {
		return fmt.Errorf("unable to load account name service: %w", err)
	}

	for address, name := range ns.Copy() {
		log.Infow("startup", "status", "nameservice", "name", name, "address", address)
	}

	// =========================================================================
	// Event Publishing Support

	evts := events.New()
	publishers := []publish.Publisher{publish.NewEvents(evts)}

	if len(cfg.Kafka.Brokers) > 0 {
		log.Infow("startup", "status", "kafka publisher enabled", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
		publishers = append(publishers, publish.NewKafka(publish.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			BatchSize:    cfg.Kafka.BatchSize,
			BatchTimeout: cfg.Kafka.BatchTimeout,
		}))
	}

	// The ledger packages accept a function of this signature to allow the
	// application to log.
	ev := func(v string, args ...any) {
		log.Infow(fmt.Sprintf(v, args...), "traceid", "00000000-0000-0000-0000-000000000000")
	}

	worker := publish.Run(ev, publishers...)
	defer worker.Shutdown()

	// =========================================================================
	// Ledger Support

	gen, err := genesis.Load(cfg.Ledger.GenesisPath)
	if err != nil {
		return fmt.Errorf("unable to load genesis: %w", err)
	}
	log.Infow("startup", "status", "genesis loaded", "date", gen.Date, "actors", len(gen.Actors))

	st := state.New(state.Config{
		Genesis:   gen,
		EvHandler: ev,
		OnCommit:  worker.Signal,
	})

	anl := analytics.New(analytics.Config{
		Ledger: st,
	})

	var predictor public.Predictor
	if cfg.Predict.URL != "" {
		log.Infow("startup", "status", "prediction service enabled", "url", cfg.Predict.URL)
		predictor = predict.New(cfg.Predict.URL, cfg.Predict.Timeout)
	}

	// =========================================================================
	// Start Debug Service

	log.Infow("startup", "status", "debug v1 router started", "host", cfg.Web.DebugHost)

	debugMux := handlers.DebugMux(build, log, st)

	// Not concerned with shutting this down with load shedding.
	go func() {
		if err := http.ListenAndServe(cfg.Web.DebugHost, debugMux); err != nil {
			log.Errorw("shutdown", "status", "debug v1 router closed", "host", cfg.Web.DebugHost, "ERROR", err)
		}
	}()

	// =========================================================================
	// Start API Service

	log.Infow("startup", "status", "initializing V1 API support")

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	apiMux := handlers.APIMux(handlers.MuxConfig{
		Shutdown:   shutdown,
		Log:        log,
		State:      st,
		Analytics:  anl,
		NS:         ns,
		Predict:    predictor,
		Strict:     cfg.Ledger.StrictAddresses,
		Evts:       evts,
		CorsOrigin: cfg.Web.CorsOrigin,
	})

	api := http.Server{
		Addr:         cfg.Web.APIHost,
		Handler:      apiMux,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     zap.NewStdLog(log.Desugar()),
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Infow("startup", "status", "api router started", "host", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		// Release any web sockets that are currently active.
		log.Infow("shutdown", "status", "shutdown web socket channels")
		evts.Shutdown()

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
