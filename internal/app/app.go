package app

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/olusolaa/sqlschema-compare/internal/adapters/catalog/mssql"
	"github.com/olusolaa/sqlschema-compare/internal/config"
	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
	"github.com/olusolaa/sqlschema-compare/internal/core/ports"
	"github.com/olusolaa/sqlschema-compare/internal/errors"
)

// Connector opens a catalog client for one side of the comparison.
type Connector func(ctx context.Context, params domain.ConnectionParams, cfg mssql.Config, logger ports.Logger) (*mssql.Client, error)

func defaultConnector(ctx context.Context, params domain.ConnectionParams, cfg mssql.Config, logger ports.Logger) (*mssql.Client, error) {
	return mssql.Connect(ctx, params, cfg, logger)
}

// Application compares the configured source schema against the target schema.
type Application struct {
	Differ   ports.SchemaComparer
	Reporter ports.Reporter
	Logger   ports.Logger
	Config   *config.Config

	connect Connector
}

// Run connects to both sides concurrently, compares them and reports. Every
// opened connection is closed before Run returns.
func (a *Application) Run(ctx context.Context) error {
	a.Logger.Infof(ctx, "Starting schema comparison: %s -> %s", a.Config.Source.Label(), a.Config.Target.Label())
	start := time.Now()

	var clients [2]*mssql.Client
	defer func() {
		for _, c := range clients {
			if c == nil {
				continue
			}
			if err := c.Close(); err != nil {
				a.Logger.Warnf(ctx, "Failed to close connection to %s: %v", c.Label(), err)
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	for i, params := range []domain.ConnectionParams{a.Config.Source, a.Config.Target} {
		i, params := i, params
		g.Go(func() error {
			client, err := a.connect(gctx, params, a.Config.Catalog, a.Logger)
			if err != nil {
				return err
			}
			clients[i] = client
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		a.Logger.Errorf(ctx, err, "Failed to open catalog connections")
		return err
	}

	source := mssql.NewCatalog(clients[0], a.Logger)
	target := mssql.NewCatalog(clients[1], a.Logger)

	results, err := a.Differ.CompareSchemas(ctx, source, target)
	if err != nil {
		a.Logger.Errorf(ctx, err, "Schema comparison failed")
		return err
	}

	if err := a.Reporter.Report(ctx, results); err != nil {
		a.Logger.Errorf(ctx, err, "Failed to write report")
		return errors.Wrap(err, errors.CodeReportError, "failed to write report")
	}

	a.Logger.Infof(ctx, "Schema comparison completed in %s", time.Since(start).Round(time.Millisecond))
	return nil
}

// ListDatabases connects to one side and returns its user databases.
func ListDatabases(ctx context.Context, cfg *config.Config, side string, logger ports.Logger, connect Connector) ([]string, error) {
	params, ok := cfg.Side(side)
	if !ok {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			"unknown side '"+side+"'", "Use --side source or --side target")
	}
	if err := validateStruct(ctx, params, logger); err != nil {
		return nil, err
	}
	if connect == nil {
		connect = defaultConnector
	}

	client, err := connect(ctx, params, cfg.Catalog, logger)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Warnf(ctx, "Failed to close connection to %s: %v", client.Label(), err)
		}
	}()
	return mssql.ListDatabases(ctx, client)
}
