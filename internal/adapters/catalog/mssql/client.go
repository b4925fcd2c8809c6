package mssql

import (
	"context"
	"database/sql"
	stderrs "errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/olusolaa/sqlschema-compare/internal/core/ports"
	"github.com/olusolaa/sqlschema-compare/internal/errors"
)

// Record is one result row keyed by column name.
type Record map[string]any

func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

func (r Record) Int64(key string) int64 {
	switch v := r[key].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int16:
		return int64(v)
	case int:
		return int64(v)
	case uint8:
		return int64(v)
	case float64:
		return int64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case []byte:
		n, _ := strconv.ParseInt(strings.TrimSpace(string(v)), 10, 64)
		return n
	case string:
		n, _ := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n
	}
	return 0
}

func (r Record) Int(key string) int {
	return int(r.Int64(key))
}

func (r Record) Bool(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case nil:
		return false
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return r.Int64(key) != 0
}

// BoolOr returns def when the column is NULL.
func (r Record) BoolOr(key string, def bool) bool {
	if r[key] == nil {
		return def
	}
	return r.Bool(key)
}

func (r Record) Time(key string) time.Time {
	if t, ok := r[key].(time.Time); ok {
		return t
	}
	return time.Time{}
}

func (r Record) IsNull(key string) bool {
	return r[key] == nil
}

// Client runs read-only catalog queries against one database.
type Client struct {
	db      *sql.DB
	label   string
	cfg     Config
	limiter *rate.Limiter
	logger  ports.Logger
}

// NewClient wraps an open database handle. Connect is the usual entry point.
func NewClient(db *sql.DB, label string, cfg Config, logger ports.Logger) *Client {
	return &Client{
		db:      db,
		label:   label,
		cfg:     cfg,
		limiter: newThrottle(cfg.QueriesPerSecond, label, logger),
		logger:  logger.WithFields(map[string]any{"catalog": label}),
	}
}

func (c *Client) Label() string {
	return c.label
}

// Execute runs a parameterized query and maps each row positionally onto its column names.
func (c *Client) Execute(ctx context.Context, query string, args ...any) ([]Record, error) {
	if err := c.wait(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CodeQueryError, fmt.Sprintf("query throttle on %s", c.label))
	}

	qctx := ctx
	if c.cfg.QueryTimeout > 0 {
		var cancel context.CancelFunc
		qctx, cancel = context.WithTimeout(ctx, c.cfg.QueryTimeout)
		defer cancel()
	}

	start := time.Now()
	rows, err := c.db.QueryContext(qctx, query, args...)
	if err != nil {
		return nil, c.queryError(qctx, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, c.queryError(qctx, err)
	}

	var records []Record
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, c.queryError(qctx, err)
		}
		rec := make(Record, len(cols))
		for i, col := range cols {
			rec[col] = values[i]
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, c.queryError(qctx, err)
	}

	c.logger.Debugf(ctx, "Query returned %d rows in %s", len(records), time.Since(start))
	return records, nil
}

func (c *Client) queryError(qctx context.Context, err error) error {
	if stderrs.Is(err, context.DeadlineExceeded) || stderrs.Is(qctx.Err(), context.DeadlineExceeded) {
		return errors.WrapUserFacing(err, errors.CodeTimeout,
			fmt.Sprintf("catalog query on %s timed out", c.label),
			"Increase catalog.query_timeout or narrow the comparison with filter settings")
	}
	if n := errorNumber(err); n != 0 {
		return errors.Wrap(err, errors.CodeQueryError, fmt.Sprintf("catalog query on %s failed with server error %d", c.label, n))
	}
	return errors.Wrap(err, errors.CodeQueryError, fmt.Sprintf("catalog query on %s failed", c.label))
}

func (c *Client) Close() error {
	if c.db == nil {
		return nil
	}
	if err := c.db.Close(); err != nil {
		return errors.Wrap(err, errors.CodeConnectionError, fmt.Sprintf("closing connection to %s", c.label))
	}
	c.logger.Debugf(context.Background(), "Connection closed")
	return nil
}
