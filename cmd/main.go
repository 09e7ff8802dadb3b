package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/avikde21/videotube-backend/internal/facades"
	"github.com/avikde21/videotube-backend/internal/handlers"
	appjwt "github.com/avikde21/videotube-backend/internal/jwt"
	"github.com/avikde21/videotube-backend/internal/logger"
	"github.com/avikde21/videotube-backend/internal/middlewares"
	"github.com/avikde21/videotube-backend/internal/repositories"
	"github.com/avikde21/videotube-backend/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title videotube-backend API
// @version 1.0.0
// @description Identity and relationship service for the videotube platform
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// config holds all application, database, Redis, Kafka, media host,
// logging, and JWT configuration. Loaded once at startup, immutable
// thereafter.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	PgHost         string
	PgPort         int
	PgUser         string
	PgPassword     string
	PgDB           string
	PgMaxOpenConns int
	PgMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	KafkaAddr  string
	KafkaTopic string

	MediaGatewayURL string

	AccessSecret     string
	AccessExpSecond  int
	RefreshSecret    string
	RefreshExpSecond int

	ProfileCacheExpSecond int
	WatchHistoryDedupe    bool
	WatchHistoryMax       int
}

// parseConfig loads environment variables from a file and returns the
// application configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.PgHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PgUser = getEnv("POSTGRES_USER", "user")
	cfg.PgPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PgDB = getEnv("POSTGRES_DB", "videotube")
	if cfg.PgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if cfg.PgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if cfg.PgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.RedisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPoolSize, err = strconv.Atoi(getEnv("REDIS_POOL_SIZE", "10")); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = strconv.Atoi(getEnv("REDIS_MIN_IDLE_CONNS", "2")); err != nil {
		return
	}

	// Kafka config
	cfg.KafkaAddr = getEnv("KAFKA_ADDR", "localhost:9092")
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "videotube-events")

	// Media host config
	cfg.MediaGatewayURL = getEnv("MEDIA_GATEWAY_URL", "http://localhost:9000")

	// JWT config
	cfg.AccessSecret = getEnv("JWT_ACCESS_SECRET_KEY", "access_secret_key")
	cfg.RefreshSecret = getEnv("JWT_REFRESH_SECRET_KEY", "refresh_secret_key")
	if cfg.AccessExpSecond, err = strconv.Atoi(getEnv("JWT_ACCESS_EXP_SECOND", "900")); err != nil {
		return
	}
	if cfg.RefreshExpSecond, err = strconv.Atoi(getEnv("JWT_REFRESH_EXP_SECOND", "864000")); err != nil {
		return
	}

	// Aggregation config
	if cfg.ProfileCacheExpSecond, err = strconv.Atoi(getEnv("PROFILE_CACHE_EXP_SECOND", "60")); err != nil {
		return
	}
	if cfg.WatchHistoryDedupe, err = strconv.ParseBool(getEnv("WATCH_HISTORY_DEDUPE", "false")); err != nil {
		return
	}
	if cfg.WatchHistoryMax, err = strconv.Atoi(getEnv("WATCH_HISTORY_MAX", "0")); err != nil {
		return
	}

	return cfg, nil
}

// run initializes the logger, database, Redis, Kafka writer, and HTTP
// server. It sets up routes, applies middleware, and handles graceful
// shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	log, err := logger.Initialize(cfg.LogLevel)
	if err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer log.Sync()
	log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PgUser, cfg.PgPassword, cfg.PgHost, cfg.PgPort, cfg.PgDB)
	log.Infof("Connecting to PostgreSQL: %s:%d/%s", cfg.PgHost, cfg.PgPort, cfg.PgDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		log.Fatal("PostgreSQL connection error:", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PgMaxOpenConns)
	db.SetMaxIdleConns(cfg.PgMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		log.Fatal("PostgreSQL ping failed:", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection error:", err)
	}
	defer rdb.Close()

	// Kafka writer for domain events
	kafkaWriter := &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaAddr),
		Topic:    cfg.KafkaTopic,
		Balancer: &kafka.LeastBytes{},
	}
	defer kafkaWriter.Close()

	// Initialize token service
	accessExp := time.Duration(cfg.AccessExpSecond) * time.Second
	refreshExp := time.Duration(cfg.RefreshExpSecond) * time.Second
	tokens := appjwt.New(cfg.AccessSecret, cfg.RefreshSecret, accessExp, refreshExp)

	// Media host facade
	media := facades.NewMediaUploadFacade(cfg.MediaGatewayURL)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	channelReadRepo := repositories.NewChannelReadRepository(db)
	subReadRepo := repositories.NewSubscriptionReadRepository(db)
	subWriteRepo := repositories.NewSubscriptionWriteRepository(db)
	videoReadRepo := repositories.NewVideoReadRepository(db)
	historyReadRepo := repositories.NewWatchHistoryReadRepository(db)
	historyWriteRepo := repositories.NewWatchHistoryWriteRepository(
		db, middlewares.GetTxFromContext, cfg.WatchHistoryDedupe, cfg.WatchHistoryMax)
	profileCache := repositories.NewChannelProfileCacheRepository(
		rdb, time.Duration(cfg.ProfileCacheExpSecond)*time.Second)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, tokens, media, kafkaWriter)
	userService := services.NewUserService(userReadRepo, userWriteRepo, media, profileCache)
	channelService := services.NewChannelService(
		userReadRepo, channelReadRepo, profileCache,
		subReadRepo, subWriteRepo,
		historyReadRepo, historyWriteRepo, videoReadRepo,
		kafkaWriter)

	// Initialize handlers
	registerHandler := handlers.NewRegisterHandler(authService)
	loginHandler := handlers.NewLoginHandler(authService, accessExp, refreshExp)
	logoutHandler := handlers.NewLogoutHandler(authService)
	refreshHandler := handlers.NewRefreshHandler(authService, tokens, accessExp, refreshExp)
	changePasswordHandler := handlers.NewChangePasswordHandler(authService)
	currentUserHandler := handlers.NewCurrentUserHandler(userService)
	updateProfileHandler := handlers.NewUpdateProfileHandler(userService)
	updateAvatarHandler := handlers.NewUpdateAvatarHandler(userService)
	updateCoverImageHandler := handlers.NewUpdateCoverImageHandler(userService)
	channelProfileHandler := handlers.NewChannelProfileHandler(channelService)
	watchHistoryHandler := handlers.NewWatchHistoryHandler(channelService)
	recordWatchHandler := handlers.NewRecordWatchHandler(channelService)
	toggleSubscriptionHandler := handlers.NewToggleSubscriptionHandler(channelService)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(log))

	authMiddleware := middlewares.AuthMiddleware(tokens, userReadRepo)
	txMiddleware := middlewares.TxMiddleware(db)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			// Public routes
			r.Post("/register", registerHandler)
			r.Post("/login", loginHandler)
			r.Post("/refresh-token", refreshHandler)

			// Protected routes
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware)
				r.Post("/logout", logoutHandler)
				r.Post("/change-password", changePasswordHandler)
				r.Get("/current-user", currentUserHandler)
				r.Patch("/update-user", updateProfileHandler)
				r.Patch("/update-avatar", updateAvatarHandler)
				r.Patch("/update-cover-image", updateCoverImageHandler)
				r.Get("/profile/{username}", channelProfileHandler)
				r.Get("/history", watchHistoryHandler)
				r.With(txMiddleware).Post("/history/{videoID}", recordWatchHandler)
			})
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/{channelID}/toggle", toggleSubscriptionHandler)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}

	log.Info("HTTP server stopped gracefully")
	return nil
}
