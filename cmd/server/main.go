package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/stacksolutions/estimator/internal/config"
	"github.com/stacksolutions/estimator/internal/handler"
	"github.com/stacksolutions/estimator/internal/logging"
	"github.com/stacksolutions/estimator/internal/metrics"
	"github.com/stacksolutions/estimator/internal/ratefile"
	"github.com/stacksolutions/estimator/internal/repository"
	"github.com/stacksolutions/estimator/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 料金表（未設定の場合は組み込みの料金表を使う）
	store := ratefile.NewStore(nil)
	if cfg.Rates.File != "" {
		table, err := ratefile.Load(cfg.Rates.File)
		if err != nil {
			logging.Fatal("failed to load rate table", "path", cfg.Rates.File, "error", err)
		}
		store.Replace(table)
		slog.Info("rate table loaded", "path", cfg.Rates.File)

		if cfg.Rates.Watch {
			w, err := ratefile.NewWatcher(cfg.Rates.File, store, 0)
			if err != nil {
				logging.Fatal("failed to watch rate table", "path", cfg.Rates.File, "error", err)
			}
			go func() {
				if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					slog.Error("rate table watcher stopped", "error", err)
				}
			}()
		}
	}

	deps := map[string]repository.DB{}

	var estimateRepo repository.EstimateRepository
	var bookingRepo repository.BookingRepository
	var contactRepo repository.ContactRepository
	if cfg.Database.URL != "" {
		pool, err := repository.NewPool(ctx, cfg.Database.Pool())
		if err != nil {
			logging.Fatal("failed to connect to database", "error", err)
		}
		defer pool.Close()
		if missing, err := repository.MissingTables(ctx, pool); err != nil {
			logging.Fatal("failed to inspect database schema", "error", err)
		} else if len(missing) > 0 {
			logging.Fatal("database is not migrated, run cmd/migrate", "missing_tables", missing)
		}
		deps["database"] = pool
		estimateRepo = repository.NewPgEstimateRepository(pool)
		bookingRepo = repository.NewPgBookingRepository(pool)
		contactRepo = repository.NewPgContactRepository(pool)
	} else {
		slog.Warn("DATABASE_URL not set, keeping estimate history, bookings and contact messages in memory")
		estimateRepo = repository.NewMemoryEstimateRepository()
		bookingRepo = repository.NewMemoryBookingRepository()
		contactRepo = repository.NewMemoryContactRepository()
	}

	var cache repository.CacheRepository
	if cfg.Cache.RedisAddr != "" {
		redisCache := repository.NewRedisCache(cfg.Cache.RedisAddr)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			// 計算はキャッシュなしでも継続できる
			slog.Warn("redis unreachable, estimates will be computed uncached", "addr", cfg.Cache.RedisAddr, "error", err)
		}
		deps["cache"] = redisCache
		cache = redisCache
	} else {
		memCache := repository.NewMemoryCache(cfg.Cache.MaxEntries)
		go memCache.Run(ctx, cfg.Cache.SweepInterval)
		cache = memCache
	}

	estimateService := service.NewEstimateService(store, estimateRepo, cache, cfg.Cache.TTL)
	catalogService := service.NewCatalogService(store)
	consultationService := service.NewConsultationService(bookingRepo)
	contactService := service.NewContactService(contactRepo)

	h := handler.New(deps, cfg.Server.FrontendURL)
	estimateHandler := handler.NewEstimateHandler(estimateService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	consultationHandler := handler.NewConsultationHandler(consultationService)
	contactHandler := handler.NewContactHandler(contactService)

	// 送信系エンドポイントのみクライアント単位でレート制限する
	limiter := handler.NewRateLimiter(cfg.Server.RateLimitPerMinute, cfg.Server.TrustedProxies)
	go limiter.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("GET /api/catalog", catalogHandler.Catalog)

	// 見積もり API
	mux.Handle("POST /api/estimates/project", limiter.LimitFunc(estimateHandler.Project))
	mux.Handle("POST /api/estimates/roi", limiter.LimitFunc(estimateHandler.ROI))
	mux.HandleFunc("GET /api/estimates", estimateHandler.List)
	mux.HandleFunc("GET /api/estimates/{id}", estimateHandler.Get)

	// 相談予約 API
	mux.HandleFunc("GET /api/consultation/dates", consultationHandler.Dates)
	mux.HandleFunc("GET /api/consultation/slots", consultationHandler.Slots)
	mux.Handle("POST /api/consultation/bookings", limiter.LimitFunc(consultationHandler.Book))

	// お問い合わせ
	mux.Handle("POST /api/contact", limiter.LimitFunc(contactHandler.Submit))

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      handler.RequestLogger(handler.SecurityHeaders(h.CORS(handler.Instrument(mux)))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("GET /metrics", metrics.Handler())
	metricsServer := &http.Server{
		Addr:              cfg.Server.MetricsAddress,
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()
	go func() {
		slog.Info("metrics listening", "addr", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("metrics shutdown error", "error", err)
	}
}
