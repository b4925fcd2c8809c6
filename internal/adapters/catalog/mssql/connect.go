package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/microsoft/go-mssqldb"

	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
	"github.com/olusolaa/sqlschema-compare/internal/core/ports"
	"github.com/olusolaa/sqlschema-compare/internal/errors"
)

// Opener opens a database handle; sql.Open by default.
type Opener func(driverName, dsn string) (*sql.DB, error)

// Sleeper waits between connection attempts and returns early on cancellation.
type Sleeper func(ctx context.Context, d time.Duration) error

type connector struct {
	open  Opener
	sleep Sleeper
}

type Option func(*connector)

func WithOpener(open Opener) Option {
	return func(c *connector) { c.open = open }
}

func WithSleeper(sleep Sleeper) Option {
	return func(c *connector) { c.sleep = sleep }
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Connect opens a validated connection, retrying transient failures up to
// cfg.MaxRetries attempts with a fixed delay between them.
func Connect(ctx context.Context, params domain.ConnectionParams, cfg Config, logger ports.Logger, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()
	conn := &connector{open: sql.Open, sleep: sleepContext}
	for _, opt := range opts {
		opt(conn)
	}

	label := params.Label()
	log := logger.WithFields(map[string]any{"endpoint": label})

	dsn, err := BuildDSN(params, cfg)
	if err != nil {
		_, suggestion, _ := errors.GetUserFacingMessage(err)
		return nil, errors.WrapUserFacing(err, errors.CodeConnectionError, fmt.Sprintf("invalid connection parameters for %s", label), suggestion)
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), errors.CodeConnectionError, fmt.Sprintf("connecting to %s cancelled", label))
		}

		log.Debugf(ctx, "Connecting (attempt %d of %d)", attempt, cfg.MaxRetries)
		db, err := conn.open(driverName, dsn)
		if err != nil {
			// The driver parses the DSN on open; a failure here is a configuration error.
			log.Errorf(ctx, err, "Connection string rejected by driver")
			return nil, errors.Wrap(err, errors.CodeConnectionError, fmt.Sprintf("invalid connection string for %s", label))
		}

		if err := validate(ctx, db, cfg.ConnectTimeout); err != nil {
			_ = db.Close()
			lastErr = err
			if !IsTransient(err) {
				log.Errorf(ctx, err, "Connection failed permanently")
				return nil, connectionError(err, label, attempt)
			}
			if attempt < cfg.MaxRetries {
				log.Warnf(ctx, "Transient connection failure (attempt %d of %d), retrying in %s: %v", attempt, cfg.MaxRetries, cfg.RetryDelay, err)
				if serr := conn.sleep(ctx, cfg.RetryDelay); serr != nil {
					return nil, errors.Wrap(serr, errors.CodeConnectionError, fmt.Sprintf("connecting to %s cancelled", label))
				}
			}
			continue
		}

		db.SetMaxOpenConns(maxOpenConns)
		log.Infof(ctx, "Connected after %d attempt(s)", attempt)
		return NewClient(db, label, cfg, logger), nil
	}

	log.Errorf(ctx, lastErr, "Connection failed after %d attempts", cfg.MaxRetries)
	return nil, connectionError(lastErr, label, cfg.MaxRetries)
}

const maxOpenConns = 8

// validate pings the server and runs SELECT 1 within the connect timeout.
func validate(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	vctx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		vctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := db.PingContext(vctx); err != nil {
		return err
	}
	var one int
	return db.QueryRowContext(vctx, "SELECT 1").Scan(&one)
}

func connectionError(err error, label string, attempts int) error {
	suggestion := "Check the server address, port and network access"
	if n := errorNumber(err); n == 18456 || n == 18452 {
		suggestion = "Check the username, password and auth_mode"
	} else if n == 4060 {
		suggestion = "Check the database name and that the login can access it"
	}
	return errors.WrapUserFacing(err, errors.CodeConnectionError,
		fmt.Sprintf("failed to connect to %s after %d attempt(s)", label, attempts), suggestion)
}
