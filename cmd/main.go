package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/seawatch/internal/boundary"
	"github.com/UnknownOlympus/seawatch/internal/classifier"
	"github.com/UnknownOlympus/seawatch/internal/config"
	"github.com/UnknownOlympus/seawatch/internal/locator"
	"github.com/UnknownOlympus/seawatch/internal/metrics"
	"github.com/UnknownOlympus/seawatch/internal/notify"
	"github.com/UnknownOlympus/seawatch/internal/repository"
	"github.com/UnknownOlympus/seawatch/internal/service"
	"github.com/UnknownOlympus/seawatch/internal/transport/httpapi"
	"github.com/UnknownOlympus/seawatch/internal/transport/mqtt"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// locatorRateLimit is the request budget shared by alert place lookups.
const locatorRateLimit = 1

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)
	if cfg.Env != envLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	geofence, err := config.LoadGeofence(cfg.Geofence.File, cfg.Geofence.SafeDistanceKm)
	if err != nil {
		log.Fatalf("Failed to load geofence: %v", err)
	}
	store := boundary.NewStore(geofence)

	clf, err := classifier.New(classifier.Config{
		Type:      classifier.Type(cfg.Classifier.Type),
		URL:       cfg.Classifier.URL,
		ModelPath: cfg.Classifier.ModelPath,
		Retries:   cfg.Classifier.Retries,
		RateLimit: cfg.Classifier.RateLimit,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to create classifier: %v", err)
	}
	if clf == nil {
		logger.WarnContext(ctx, "No behavioral classifier configured, results are geometry only")
	}

	notifier, err := notify.New(notify.Config{
		Type: notify.Type(cfg.Notifier.Type),
		Twilio: notify.TwilioConfig{
			AccountSID: cfg.Notifier.Twilio.AccountSID,
			AuthToken:  cfg.Notifier.Twilio.AuthToken,
			From:       cfg.Notifier.Twilio.From,
			To:         cfg.Notifier.Twilio.To,
		},
		RabbitMQURL: cfg.Notifier.RabbitMQURL,
		Logger:      logger,
	})
	if err != nil {
		log.Fatalf("Failed to create notifier: %v", err)
	}
	if closer, ok := notifier.(io.Closer); ok {
		defer closer.Close()
	}

	place, err := locator.NewProvider(locator.ProviderConfig{
		Type:      locator.ProviderType(cfg.Locator.Type),
		APIKey:    cfg.Locator.APIKey,
		RateLimit: locatorRateLimit,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to create locator: %v", err)
	}

	monitor := service.NewMonitorService(logger, store, clf, notifier, cfg.Notifier.Type, appMetrics, cfg.Workers).
		WithClassifierTimeout(cfg.Classifier.Timeout).
		WithLocator(place)

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password})
		defer rdb.Close()
		monitor.WithCooldown(notify.NewCooldown(rdb, cfg.Redis.Cooldown))
		logger.InfoContext(ctx, "Alert cooldown enabled", "window", cfg.Redis.Cooldown)
	}

	var (
		dtb  *pgxpool.Pool
		repo repository.Interface
	)
	if cfg.Database.Host != "" {
		dtb, err = repository.NewDatabase(
			cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
		)
		if err != nil {
			log.Fatalf("Failed to connect to DB: %v", err)
		}
		defer dtb.Close()

		pgRepo := repository.NewRepository(dtb, logger)
		if err = pgRepo.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to prepare alert log: %v", err)
		}
		repo = pgRepo
		monitor.WithRepository(repo)
	}

	logger.InfoContext(ctx, "Boundary monitor initialized",
		"classifier", cfg.Classifier.Type,
		"notifier", cfg.Notifier.Type,
		"locator", cfg.Locator.Type,
		"safe_distance_km", geofence.SafeDistanceKm(),
	)

	api := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           httpapi.NewRouter(logger, httpapi.NewHandler(logger, monitor, store, repo)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	grp, gctx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		monitor.Run(gctx)
		return nil
	})

	grp.Go(func() error {
		logger.InfoContext(gctx, "Starting API server", "port", cfg.HTTPPort)
		if errServe := api.ListenAndServe(); errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			return fmt.Errorf("api server: %w", errServe)
		}
		return nil
	})

	grp.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), 10*time.Second)
		defer cancel()
		return api.Shutdown(shutdownCtx)
	})

	grp.Go(func() error {
		watchGeofenceReload(gctx, logger, cfg.Geofence, store, appMetrics)
		return nil
	})

	if cfg.MQTT.Broker != "" {
		client, errConnect := mqtt.Connect(cfg.MQTT.Broker, cfg.MQTT.ClientID)
		if errConnect != nil {
			log.Fatalf("Failed to connect to MQTT broker: %v", errConnect)
		}
		feed := mqtt.NewPositionSubscriber(client, cfg.MQTT.Topic, monitor, logger)
		if err = feed.Start(gctx); err != nil {
			log.Fatalf("Failed to subscribe to position feed: %v", err)
		}
		defer feed.Stop()
	}

	// Start the monitoring server in a goroutine to allow main to listen for signals.
	go startMonitoringServer(ctx, logger, reg, dtb, cfg.HealthPort)

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	if err = grp.Wait(); err != nil {
		logger.ErrorContext(ctx, "Application stopped with error", "error", err)
		return
	}

	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// startMonitoringServer starts an HTTP server that provides health check and metrics endpoints.
// It listens on the specified port and logs the server's status and any errors encountered.
//
// Parameters:
// - ctx: A context.Context for managing cancellation and timeouts.
// - log: A logger for logging server events and errors.
// - reg: A registry with Prometheus collectors.
// - dtb: A pgxpool connector for database methods (ping), nil when the audit log is disabled.
// - port: The port number on which the server will listen.
func startMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	dtb *pgxpool.Pool,
	port int,
) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, _ *http.Request) {
		log.DebugContext(ctx, "Performing health checks...")
		status, body := http.StatusOK, "OK"
		if dtb != nil {
			if err := dtb.Ping(ctx); err != nil {
				status, body = http.StatusServiceUnavailable, "DB ping failed"
			}
		}
		writer.WriteHeader(status)
		_, err := writer.Write([]byte(body))
		if err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}

		log.DebugContext(ctx, "Health checks completed", "status", status)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	log.InfoContext(ctx, "Starting monitoring server", "port", port)
	readTimeout := 5
	writeTimeout := 10
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		log.ErrorContext(ctx, "Monitoring server failed", "error", err)
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelWarn,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelError,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
