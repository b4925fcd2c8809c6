package config

import (
	"github.com/olusolaa/sqlschema-compare/internal/adapters/catalog/mssql"
	"github.com/olusolaa/sqlschema-compare/internal/adapters/matching/identity"
	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
	"github.com/olusolaa/sqlschema-compare/internal/log"
	jsonreporter "github.com/olusolaa/sqlschema-compare/internal/reporting/json"
	"github.com/olusolaa/sqlschema-compare/internal/reporting/text"
	"github.com/olusolaa/sqlschema-compare/internal/textdiff"
)

type Config struct {
	Settings SettingsConfig          `yaml:"settings" mapstructure:"settings"`
	Source   domain.ConnectionParams `yaml:"source" mapstructure:"source"`
	Target   domain.ConnectionParams `yaml:"target" mapstructure:"target"`
	Catalog  mssql.Config            `yaml:"catalog" mapstructure:"catalog"`
	Diff     DiffConfig              `yaml:"diff" mapstructure:"diff"`
	Filter   FilterConfig            `yaml:"filter" mapstructure:"filter"`
}

type SettingsConfig struct {
	LogLevel         log.Level       `yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat        log.Format      `yaml:"log_format" mapstructure:"log_format" validate:"omitempty,oneof=text json"`
	Concurrency      int             `yaml:"concurrency" mapstructure:"concurrency" validate:"min=1,max=64"`
	MatcherType      string          `yaml:"matcher" mapstructure:"matcher" validate:"oneof=identity"`
	ReporterType     string          `yaml:"reporter" mapstructure:"reporter" validate:"oneof=text json"`
	Reporter         ReporterConfigs `yaml:"reporter_config" mapstructure:"reporter_config"`
	IncludeIdentical bool            `yaml:"include_identical" mapstructure:"include_identical"`
}

type ReporterConfigs struct {
	Text *text.Config         `yaml:"text,omitempty" mapstructure:"text"`
	JSON *jsonreporter.Config `yaml:"json,omitempty" mapstructure:"json"`
}

// DiffConfig is the normalization policy applied to definition diffs plus the alignment algorithm.
type DiffConfig struct {
	textdiff.Policy `yaml:",inline" mapstructure:",squash"`
	Algorithm       textdiff.Algorithm `yaml:"algorithm" mapstructure:"algorithm" validate:"omitempty,oneof=default minimal fast none"`
}

type FilterConfig struct {
	ObjectTypes []domain.ObjectType `yaml:"object_types" mapstructure:"object_types"`
	Names       []string            `yaml:"names" mapstructure:"names"`
}

// Side returns the connection parameters for "source" or "target".
func (c *Config) Side(name string) (domain.ConnectionParams, bool) {
	switch name {
	case "source":
		return c.Source, true
	case "target":
		return c.Target, true
	}
	return domain.ConnectionParams{}, false
}

func DefaultConfig() *Config {
	return &Config{
		Settings: SettingsConfig{
			LogLevel:     log.LevelInfo,
			LogFormat:    log.FormatText,
			Concurrency:  4,
			MatcherType:  identity.MatcherTypeIdentity,
			ReporterType: text.ReporterTypeText,
			Reporter: ReporterConfigs{
				Text: &text.Config{NoColor: false},
				JSON: &jsonreporter.Config{},
			},
		},
		Source:  domain.ConnectionParams{AuthMode: domain.AuthIntegrated},
		Target:  domain.ConnectionParams{AuthMode: domain.AuthIntegrated},
		Catalog: mssql.DefaultConfig(),
		Diff: DiffConfig{
			Policy:    textdiff.DefaultPolicy(),
			Algorithm: textdiff.AlgorithmDefault,
		},
	}
}
