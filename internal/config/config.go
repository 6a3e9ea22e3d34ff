package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	StoreAPIAddress   string
	StoreAPITimeout   time.Duration
	StoreServiceToken string
	SessionSecret     string
	SessionTTL        time.Duration
	AMQPURL           string
	EventsExchange    string
	ReconcileInterval time.Duration
	ReconcileBatch    int
	WorkerPoolSize    int
	ShutdownTimeout   time.Duration
	LogLevel          slog.Level
}

const (
	defaultRunAddress        = ":8080"
	defaultStoreAPITimeout   = 10 * time.Second
	defaultSessionSecret     = "change-me-in-production"
	defaultSessionTTL        = 12 * time.Hour
	defaultEventsExchange    = "mirae.admin.events"
	defaultReconcileInterval = 30 * time.Second
	defaultReconcileBatch    = 16
	defaultWorkerPoolSize    = 2
	defaultShutdownTimeout   = 10 * time.Second
	defaultLogLevel          = "info"
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		StoreAPIAddress:   getString(lookup, "STORE_API_ADDRESS", ""),
		StoreAPITimeout:   getDuration(lookup, "STORE_API_TIMEOUT", defaultStoreAPITimeout),
		StoreServiceToken: getString(lookup, "STORE_SERVICE_TOKEN", ""),
		SessionSecret:     getString(lookup, "SESSION_SECRET", defaultSessionSecret),
		SessionTTL:        getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		AMQPURL:           getString(lookup, "AMQP_URL", ""),
		EventsExchange:    getString(lookup, "EVENTS_EXCHANGE", defaultEventsExchange),
		ReconcileInterval: getDuration(lookup, "RECONCILE_INTERVAL", defaultReconcileInterval),
		ReconcileBatch:    getInt(lookup, "RECONCILE_BATCH", defaultReconcileBatch),
		WorkerPoolSize:    getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("mirae-admin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		storeTimeoutStr      = cfg.StoreAPITimeout.String()
		sessionTTLStr        = cfg.SessionTTL.String()
		reconcileIntervalStr = cfg.ReconcileInterval.String()
		shutdownTimeoutStr   = cfg.ShutdownTimeout.String()
		logLevelStr          = getString(lookup, "LOG_LEVEL", defaultLogLevel)
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.StoreAPIAddress, "s", cfg.StoreAPIAddress, "Store API base URL")
	fs.StringVar(&storeTimeoutStr, "store-timeout", storeTimeoutStr, "Store API request timeout")
	fs.StringVar(&cfg.StoreServiceToken, "service-token", cfg.StoreServiceToken, "Store API token used by the reconciler")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Secret for signing admin sessions")
	fs.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Admin session lifetime")
	fs.StringVar(&cfg.AMQPURL, "amqp-url", cfg.AMQPURL, "AMQP broker URL")
	fs.StringVar(&cfg.EventsExchange, "events-exchange", cfg.EventsExchange, "Exchange for status events")
	fs.StringVar(&reconcileIntervalStr, "reconcile-interval", reconcileIntervalStr, "Interval between reconciliation polls")
	fs.IntVar(&cfg.ReconcileBatch, "reconcile-batch", cfg.ReconcileBatch, "Maximum journal entries per poll")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reconciliation workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&logLevelStr, "log-level", logLevelStr, "Log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.StoreAPITimeout, err = time.ParseDuration(storeTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid store timeout: %w", err)
	}

	if cfg.SessionTTL, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	if cfg.ReconcileInterval, err = time.ParseDuration(reconcileIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reconcile interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(strings.TrimSpace(logLevelStr))); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	if secretFile, ok := lookup("SESSION_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read session secret file: %w", err)
		}
		cfg.SessionSecret = strings.TrimSpace(string(content))
	}

	if cfg.StoreAPITimeout <= 0 {
		cfg.StoreAPITimeout = defaultStoreAPITimeout
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = defaultReconcileInterval
	}

	if cfg.ReconcileBatch <= 0 {
		cfg.ReconcileBatch = defaultReconcileBatch
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.EventsExchange == "" {
		cfg.EventsExchange = defaultEventsExchange
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.StoreAPIAddress == "" {
		return nil, fmt.Errorf("store API address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
