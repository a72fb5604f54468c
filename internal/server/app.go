// Package server initializes and runs the account server. It opens storage,
// applies migrations, wires the account service to the HTTP API and handles
// graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/mediaxis/internal/logging"
	"github.com/dmitrijs2005/mediaxis/internal/server/config"
	"github.com/dmitrijs2005/mediaxis/internal/server/httpapi"
	"github.com/dmitrijs2005/mediaxis/internal/server/notify"
	"github.com/dmitrijs2005/mediaxis/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mediaxis/internal/server/services"
)

const startupTimeout = 30 * time.Second

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	accountService *services.AccountService
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	db, rm, err := openStorage(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("migration error: %w", err)
	}

	var notifier notify.Notifier
	if c.MailEnabled() {
		notifier = notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:     c.SMTPHost,
			Port:     c.SMTPPort,
			Username: c.SMTPUsername,
			Password: c.SMTPPassword,
			From:     c.MailFrom,
		})
	} else {
		logger.Warn(ctx, "SMTP credentials not set, mail will only be logged")
		notifier = notify.NewLogNotifier(logger)
	}

	as := services.NewAccountService(rm, notifier, logger, c)

	return &App{config: c, logger: logger, db: db, accountService: as}, nil
}

// openStorage opens the configured database and returns the matching
// repository manager. The returned *sql.DB is nil for the memory driver.
func openStorage(ctx context.Context, c *config.Config) (*sql.DB, repomanager.RepositoryManager, error) {
	if c.DatabaseDriver == repomanager.DriverMemory {
		return nil, repomanager.NewMemoryRepositoryManager(), nil
	}

	db, err := sql.Open(c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		closeDB(db)
		return nil, nil, fmt.Errorf("db ping error: %w", err)
	}

	rm, err := repomanager.New(c.DatabaseDriver, db)
	if err != nil {
		closeDB(db)
		return nil, nil, err
	}

	return db, rm, nil
}

func closeDB(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.HTTPAddr, app.logger, app.accountService, app.config.AllowedOrigins)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the database.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	closeDB(app.db)
	app.logger.Info(context.Background(), "App stopped")
}
