package mssql

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
	"github.com/olusolaa/sqlschema-compare/internal/errors"
)

const driverName = "sqlserver"

// BuildDSN renders connection parameters as a sqlserver:// URL. Integrated
// authentication leaves out the user so the driver negotiates SSPI or Kerberos.
func BuildDSN(params domain.ConnectionParams, cfg Config) (string, error) {
	if params.Server == "" {
		return "", errors.NewUserFacing(errors.CodeConfigValidation, "server is required", "Set the server host name")
	}
	if params.Database == "" {
		return "", errors.NewUserFacing(errors.CodeConfigValidation, "database is required", "Set the database name")
	}

	u := &url.URL{Scheme: driverName, Host: params.Server}
	if params.Port > 0 {
		u.Host = fmt.Sprintf("%s:%d", params.Server, params.Port)
	}

	switch params.AuthMode {
	case domain.AuthIntegrated, "":
	case domain.AuthCredentialed:
		if params.Username == "" {
			return "", errors.NewUserFacing(errors.CodeConfigValidation,
				fmt.Sprintf("username is required for credentialed login to %s", params.Label()),
				"Set a username or switch auth_mode to integrated")
		}
		u.User = url.UserPassword(params.Username, params.Password)
	default:
		return "", errors.New(errors.CodeConfigValidation, fmt.Sprintf("unsupported auth mode '%s'", params.AuthMode))
	}

	q := url.Values{}
	q.Set("database", params.Database)
	q.Set("app name", "schema-compare")
	if params.Encrypt != "" {
		q.Set("encrypt", params.Encrypt)
	}
	if params.TrustServerCertificate {
		q.Set("TrustServerCertificate", "true")
	}
	if cfg.ConnectTimeout > 0 {
		q.Set("connection timeout", strconv.Itoa(int(cfg.ConnectTimeout.Seconds())))
		q.Set("dial timeout", strconv.Itoa(int(cfg.ConnectTimeout.Seconds())))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
