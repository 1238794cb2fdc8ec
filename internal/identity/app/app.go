package app

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

	httpapi "github.com/aussiebroadwan/roster/internal/identity/http"
	"github.com/aussiebroadwan/roster/internal/identity/service"
	"github.com/aussiebroadwan/roster/internal/identity/store"
	"github.com/aussiebroadwan/roster/internal/identity/store/drivers/sqlite"
	"github.com/aussiebroadwan/roster/pkg/cryptox"
	"github.com/aussiebroadwan/roster/pkg/jwtx"
	"github.com/aussiebroadwan/roster/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application encapsulates the identity service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	codec  *jwtx.Codec
	hasher *cryptox.PasswordHasher
	box    *cryptox.SecretBox

	// Services
	auditService        *service.AuditService
	housekeepingService *service.HousekeepingService
	bootstrapService    *service.BootstrapService
	ledger              *service.InvitationLedger
	registrar           *service.Registrar
	sessionIssuer       *service.SessionIssuer
	accountService      *service.AccountService
	passwordReset       *service.PasswordResetService
	mfaService          *service.MFAService
	tenantService       *service.TenantService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "identity-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initCrypto(); err != nil {
		return nil, err
	}
	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.auditService.Start()
	app.housekeepingService.Start()

	app.logger.Info("identity service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.stopWorkers()
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down identity service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Workers stop after the server so in-flight requests can still audit.
	app.stopWorkers()

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("identity service stopped")
	return nil
}

func (app *Application) stopWorkers() {
	app.housekeepingService.Stop()
	app.auditService.Stop()
}

// initCrypto loads the pepper, the TOTP master key and the JWT secret.
func (app *Application) initCrypto() error {
	pepper, err := cryptox.LoadOrCreatePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}
	app.hasher, err = cryptox.NewPasswordHasher(pepper, app.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	masterKey, ephemeral, err := cryptox.LoadMasterKey(app.cfg.MasterKeyPath)
	if err != nil {
		return err
	}
	if ephemeral {
		app.logger.Warn("no master key configured, TOTP enrollments will not survive a restart")
	}
	app.box, err = cryptox.NewSecretBox(masterKey)
	if err != nil {
		return err
	}

	secret := []byte(app.cfg.JWTSecret)
	if len(secret) == 0 {
		if !app.cfg.IsDev() {
			return errors.New("JWT_SECRET is required outside the dev environment")
		}
		generated, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return err
		}
		secret = []byte(generated)
		app.logger.Warn("no JWT secret configured, using a random one; tokens will not survive a restart")
	}

	app.codec, err = jwtx.NewCodec(jwtx.CodecConfig{
		Secret: secret,
		Issuer: app.cfg.JWTIssuer,
		TTL:    app.cfg.JWTTTL,
		Leeway: 30 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize token codec: %w", err)
	}
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.FileDSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.auditService = service.NewAuditService(app.db, app.logger, app.cfg.AuditBuffer)
	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.AuditRetention,
	)

	app.bootstrapService = &service.BootstrapService{Email: app.cfg.SystemAccountEmail}
	app.ledger = &service.InvitationLedger{
		Store:          app.db,
		Audit:          app.auditService,
		DefaultTTLDays: app.cfg.InvitationTTLDays,
		SystemEmail:    app.cfg.SystemAccountEmail,
	}
	app.registrar = &service.Registrar{
		Store:     app.db,
		Ledger:    app.ledger,
		Bootstrap: app.bootstrapService,
		Hasher:    app.hasher,
		Audit:     app.auditService,
	}
	app.mfaService = &service.MFAService{
		Store:  app.db,
		Box:    app.box,
		Issuer: app.cfg.MFAIssuer,
		Audit:  app.auditService,
	}
	app.sessionIssuer = &service.SessionIssuer{
		Store:    app.db,
		Hasher:   app.hasher,
		Tokens:   app.codec,
		Selector: service.FirstJoined{},
		MFA:      app.mfaService,
		Audit:    app.auditService,
	}
	app.accountService = &service.AccountService{Store: app.db}
	app.passwordReset = &service.PasswordResetService{
		Store:    app.db,
		Hasher:   app.hasher,
		Notifier: service.LogNotifier{Reveal: app.cfg.IsDev()},
		Audit:    app.auditService,
	}
	app.tenantService = &service.TenantService{
		Store:     app.db,
		Ledger:    app.ledger,
		Bootstrap: app.bootstrapService,
		Audit:     app.auditService,
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.codec, app.db, BuildVersion, app.logger)

	// Wire services to router
	router.Sessions = app.sessionIssuer
	router.Registrar = app.registrar
	router.Accounts = app.accountService
	router.Ledger = app.ledger
	router.PasswordReset = app.passwordReset
	router.MFA = app.mfaService
	router.Tenants = app.tenantService
	router.ProvisioningToken = app.cfg.ProvisioningToken
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
