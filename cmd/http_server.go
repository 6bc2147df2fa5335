package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/unilearn/lms-backend/internal"
	"github.com/unilearn/lms-backend/internal/auth"
	authPostgres "github.com/unilearn/lms-backend/internal/auth/postgres"
	"github.com/unilearn/lms-backend/internal/content"
	contentPostgres "github.com/unilearn/lms-backend/internal/content/postgres"
	"github.com/unilearn/lms-backend/internal/core/events"
	"github.com/unilearn/lms-backend/internal/course"
	coursePostgres "github.com/unilearn/lms-backend/internal/course/postgres"
	"github.com/unilearn/lms-backend/internal/department"
	departmentPostgres "github.com/unilearn/lms-backend/internal/department/postgres"
	"github.com/unilearn/lms-backend/internal/filestore"
	"github.com/unilearn/lms-backend/internal/mailer"
	"github.com/unilearn/lms-backend/internal/transport/rest"
	"github.com/unilearn/lms-backend/internal/user"
	userPostgres "github.com/unilearn/lms-backend/internal/user/postgres"
	"github.com/unilearn/lms-backend/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	log := logger.L()

	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// GORM rides on the already-open pgx connection so both layers share
	// one pool.
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	files, err := filestore.NewDiskStore(cfg.Storage.UploadDir, cfg.Storage.MaxUploadBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file store: %w", err)
	}

	bus := events.NewEventBus(log)
	var sender mailer.Sender
	if cfg.Mail.Provider == "sendgrid" {
		sender = mailer.NewSendgridSender(cfg.Mail.SendgridKey, cfg.Mail.AppName, cfg.Mail.FromEmail)
	} else {
		sender = mailer.NewConsoleSender(cfg.Mail.AppName, log)
	}
	mailer.SubscribeCredentialMail(bus, sender, log)

	loginIDs := auth.NewLoginIDGenerator(cfg.Security.LoginIDMaxAttempts)
	tokens := auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.TokenTTL)

	authRepo := authPostgres.NewRepository(gormDB)
	authService := auth.NewService(authRepo, tokens, loginIDs, cfg.Security.BCryptCost, log)
	authHandler := auth.NewHandler(authService)
	authz := auth.NewRoleAuthorization(authService, log)

	userRepo := userPostgres.NewRepository(gormDB)
	userService := user.NewService(userRepo, loginIDs, cfg.Security.BCryptCost, bus, log)
	userHandler := user.NewHandler(userService)

	deptRepo := departmentPostgres.NewRepository(gormDB)
	deptService := department.NewService(deptRepo, log)
	deptHandler := department.NewHandler(deptService)

	courseRepo := coursePostgres.NewRepository(gormDB)
	courseService := course.NewService(courseRepo, log)
	courseHandler := course.NewHandler(courseService)

	contentRepo := contentPostgres.NewRepository(gormDB)
	contentService := content.NewService(contentRepo, files, log)
	contentHandler := content.NewHandler(contentService)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, rest.Handlers{
		Auth:       authHandler,
		User:       userHandler,
		Department: deptHandler,
		Course:     courseHandler,
		Content:    contentHandler,
	}, authz, cfg.Server.AllowedOrigins, cfg.Storage.UploadDir, log)

	return &Dependencies{
		Config: cfg,
		DB:     db,
		Router: router,
		Logger: log,
	}, nil
}

// initDB opens the pgx stdlib connection pool used by both sqlx and GORM.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
