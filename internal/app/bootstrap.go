package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/olusolaa/sqlschema-compare/internal/adapters/matching/identity"
	"github.com/olusolaa/sqlschema-compare/internal/config"
	"github.com/olusolaa/sqlschema-compare/internal/core/ports"
	"github.com/olusolaa/sqlschema-compare/internal/core/service"
	"github.com/olusolaa/sqlschema-compare/internal/errors"
	"github.com/olusolaa/sqlschema-compare/internal/log"
	jsonreporter "github.com/olusolaa/sqlschema-compare/internal/reporting/json"
	"github.com/olusolaa/sqlschema-compare/internal/reporting/text"
	"github.com/olusolaa/sqlschema-compare/internal/resources/constraint"
	"github.com/olusolaa/sqlschema-compare/internal/resources/routine"
	"github.com/olusolaa/sqlschema-compare/internal/resources/table"
	"github.com/olusolaa/sqlschema-compare/internal/textdiff"
)

type bootstrapOptions struct {
	connect Connector
	output  io.Writer
	logOut  io.Writer
}

type Option func(*bootstrapOptions)

func WithConnector(c Connector) Option {
	return func(o *bootstrapOptions) { o.connect = c }
}

// WithOutput redirects the report; stdout by default.
func WithOutput(w io.Writer) Option {
	return func(o *bootstrapOptions) { o.output = w }
}

// WithLogOutput redirects log records; stderr by default.
func WithLogOutput(w io.Writer) Option {
	return func(o *bootstrapOptions) { o.logOut = w }
}

// LoadConfig decodes the viper state over the defaults and applies command-line overrides.
func LoadConfig(v *viper.Viper) (*config.Config, error) {
	cfg := config.DefaultConfig()
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	))
	if err := v.Unmarshal(cfg, hook); err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigParseError, "failed to unmarshal configuration",
			"Check value types in the configuration file and SCHEMA_COMPARE_* variables")
	}

	types, err := parseTypesOverride(v.GetString("types"))
	if err != nil {
		return nil, err
	}
	if len(types) > 0 {
		cfg.Filter.ObjectTypes = types
	}
	if names := parseNamesOverride(v.GetString("names")); len(names) > 0 {
		cfg.Filter.Names = names
	}
	return cfg, nil
}

// NewLogger builds the configured logger, writing to w.
func NewLogger(cfg *config.Config, w io.Writer) (ports.Logger, error) {
	logger, err := log.NewLoggerWithWriter(log.Config{Level: cfg.Settings.LogLevel, Format: cfg.Settings.LogFormat}, w)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "logger initialization failed")
	}
	return logger, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateStruct(ctx context.Context, s any, logger ports.Logger) error {
	err := validate.StructCtx(ctx, s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !stderrors.As(err, &validationErrors) {
		return errors.Wrap(err, errors.CodeConfigValidation, "configuration validation failed")
	}
	var details strings.Builder
	details.WriteString("Configuration validation failed:")
	for _, fe := range validationErrors {
		value := fe.Value()
		if strings.EqualFold(fe.Field(), "Password") {
			value = "***"
		}
		details.WriteString(fmt.Sprintf("\n - Field '%s': Failed on '%s' validation (value: '%v')", fe.Namespace(), fe.Tag(), value))
	}
	wrapped := errors.NewUserFacing(errors.CodeConfigValidation, details.String(), "Please check your configuration file, environment or flags.")
	logger.Errorf(ctx, wrapped, "Configuration validation failed")
	return wrapped
}

// BuildApplicationFromViper wires the comparison pipeline from configuration.
func BuildApplicationFromViper(ctx context.Context, v *viper.Viper, opts ...Option) (*Application, error) {
	o := bootstrapOptions{connect: defaultConnector, output: os.Stdout, logOut: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	cfg, err := LoadConfig(v)
	if err != nil {
		return nil, err
	}
	logger, err := NewLogger(cfg, o.logOut)
	if err != nil {
		return nil, err
	}
	logger.Infof(ctx, "Logger initialized (Level: %s, Format: %s)", cfg.Settings.LogLevel, cfg.Settings.LogFormat)
	if v.ConfigFileUsed() != "" {
		logger.Debugf(ctx, "Using configuration file: %s", v.ConfigFileUsed())
	}

	if err := validateStruct(ctx, cfg, logger); err != nil {
		return nil, err
	}
	logger.Debugf(ctx, "Configuration validated successfully")

	registry := service.NewComparerRegistry()
	for _, comparer := range []ports.ObjectComparer{
		table.NewComparer(logger.WithFields(map[string]any{"component": "comparer", "type": "table"})),
		routine.NewComparer(logger.WithFields(map[string]any{"component": "comparer", "type": "routine"})),
		constraint.NewComparer(logger.WithFields(map[string]any{"component": "comparer", "type": "constraint"})),
	} {
		if err := registry.Register(comparer); err != nil {
			return nil, err
		}
		logger.Debugf(ctx, "Registered comparer for: %v", comparer.Types())
	}

	var matcher ports.Matcher
	switch cfg.Settings.MatcherType {
	case identity.MatcherTypeIdentity:
		matcher = identity.NewMatcher(logger.WithFields(map[string]any{"component": "matcher", "type": identity.MatcherTypeIdentity}))
	default:
		return nil, errors.NewUserFacing(errors.CodeConfigValidation, fmt.Sprintf("unsupported matcher type: %s", cfg.Settings.MatcherType), "Supported: identity")
	}

	engine, err := textdiff.New(cfg.Diff.Policy, textdiff.WithAlgorithm(cfg.Diff.Algorithm))
	if err != nil {
		return nil, err
	}

	reporter, err := newReporter(ctx, cfg, engine, o.output, logger)
	if err != nil {
		return nil, err
	}

	differ, err := service.NewSchemaDiffer(registry, matcher, logger.WithFields(map[string]any{"component": "differ"}),
		cfg.Settings.Concurrency, service.Filter{Types: cfg.Filter.ObjectTypes, Names: cfg.Filter.Names})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize schema differ")
	}

	logger.Infof(ctx, "Application bootstrap complete")
	return &Application{Differ: differ, Reporter: reporter, Logger: logger, Config: cfg, connect: o.connect}, nil
}

func newReporter(ctx context.Context, cfg *config.Config, engine *textdiff.Engine, out io.Writer, logger ports.Logger) (ports.Reporter, error) {
	reportLog := logger.WithFields(map[string]any{"component": "reporter", "type": cfg.Settings.ReporterType})
	switch cfg.Settings.ReporterType {
	case text.ReporterTypeText:
		textCfg := text.Config{}
		if cfg.Settings.Reporter.Text != nil {
			textCfg = *cfg.Settings.Reporter.Text
		}
		r, err := text.NewReporter(textCfg, reportLog,
			text.WithWriter(out), text.WithDiffEngine(engine), text.WithIncludeIdentical(cfg.Settings.IncludeIdentical))
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize Text reporter")
		}
		reportLog.Infof(ctx, "Using Text reporter (Color: %t, Diff: %t)", !textCfg.NoColor, textCfg.ShowDiff)
		return r, nil
	case jsonreporter.ReporterTypeJSON:
		jsonCfg := jsonreporter.Config{}
		if cfg.Settings.Reporter.JSON != nil {
			jsonCfg = *cfg.Settings.Reporter.JSON
		}
		r, err := jsonreporter.NewReporter(jsonCfg, reportLog,
			jsonreporter.WithWriter(out), jsonreporter.WithIncludeIdentical(cfg.Settings.IncludeIdentical))
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize JSON reporter")
		}
		reportLog.Infof(ctx, "Using JSON reporter")
		return r, nil
	default:
		return nil, errors.NewUserFacing(errors.CodeConfigValidation, fmt.Sprintf("unsupported reporter type: %s", cfg.Settings.ReporterType), "Supported: text, json")
	}
}
