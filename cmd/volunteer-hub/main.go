package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"volunteerHub/internal/config"
	"volunteerHub/internal/events"
	"volunteerHub/internal/http-server/handlers/occurrence/createOccurrence"
	"volunteerHub/internal/http-server/handlers/occurrence/deleteOccurrence"
	"volunteerHub/internal/http-server/handlers/occurrence/getOccurrence"
	"volunteerHub/internal/http-server/handlers/occurrence/listOccurrences"
	"volunteerHub/internal/http-server/handlers/registration/createRegistration"
	"volunteerHub/internal/http-server/handlers/registration/deleteRegistration"
	"volunteerHub/internal/http-server/handlers/registration/updateRegistration"
	"volunteerHub/internal/http-server/middleware/mwlogger"
	"volunteerHub/internal/lib/logger/handlers/slogpretty"
	"volunteerHub/internal/lib/logger/sl"
	"volunteerHub/internal/metrics"
	"volunteerHub/internal/models"
	"volunteerHub/internal/service/attendance"
	"volunteerHub/internal/service/registration"
	"volunteerHub/internal/service/schedule"
	"volunteerHub/internal/storage"
	"volunteerHub/internal/storage/memory"
	"volunteerHub/internal/storage/postgres"
	"volunteerHub/internal/worker/reconciler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

type store interface {
	WithinTx(ctx context.Context, fn storage.TxFunc) error
	GetOccurrence(ctx context.Context, key models.OccurrenceKey) (*models.EventOccurrence, error)
	ListOccurrences(ctx context.Context) ([]models.EventOccurrence, error)
	ListRegistrations(ctx context.Context, key models.OccurrenceKey) ([]models.Registration, error)
	ReconcileRegisteredCounts(ctx context.Context) (int64, error)
	Close() error
}

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting volunteer hub", slog.String("env", cfg.Env), slog.String("storage", cfg.Storage))
	log.Debug("debug messages are enabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	st, err := setupStorage(ctx, cfg)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(promRegistry)

	bus := events.NewGoChannel(log)
	publisher := events.NewPublisher(log, bus)

	registrar := registration.New(log, st,
		registration.WithMetrics(m),
		registration.WithNotifier(publisher),
	)
	transitions := attendance.New(log, st,
		attendance.WithMetrics(m),
		attendance.WithNotifier(publisher),
	)
	scheduler := schedule.New(log, st)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)

	router.Post("/register", createRegistration.New(log, registrar))
	router.Post("/registration/update", updateRegistration.New(log, transitions))
	router.Patch("/registration", updateRegistration.New(log, transitions))
	router.Delete("/registration", deleteRegistration.New(log, transitions))

	router.Route("/occurrences", func(r chi.Router) {
		r.Post("/", createOccurrence.New(log, scheduler))
		r.Get("/", listOccurrences.New(log, scheduler))
		r.Get("/{eventID}/{start}", getOccurrence.New(log, scheduler))
		r.Delete("/{eventID}/{start}", deleteOccurrence.New(log, scheduler))
	})

	router.Handle("/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, "ok")
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return reconciler.New(log, st, cfg.Reconciler.Interval, m).Run(gctx)
	})

	g.Go(func() error {
		return events.RunAuditLog(gctx, log, bus)
	})

	g.Go(func() error {
		<-gctx.Done()

		log.Info("application stopping")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to shutdown server", sl.Err(err))
		}

		return bus.Close()
	})

	if err = g.Wait(); err != nil {
		log.Error("application stopped with error", sl.Err(err))
	} else {
		log.Info("application stopped")
	}

	if err = st.Close(); err != nil {
		log.Error("failed to close storage", sl.Err(err))
	}

	log.Info("storage closed")
}

func setupStorage(ctx context.Context, cfg *config.Config) (store, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return memory.New(), nil
	default:
		pg, err := postgres.InitDB(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}
		return pg, nil
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
