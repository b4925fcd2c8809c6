package mssql

import (
	"context"
	"database/sql/driver"
	stderrs "errors"
	"io"
	"net"
	"strings"

	mssql "github.com/microsoft/go-mssqldb"
)

// Error numbers the server reports for conditions that clear on their own
// (Azure SQL failover, throttling and resource governance).
var transientNumbers = map[int32]bool{
	4221:  true,
	10928: true,
	10929: true,
	40197: true,
	40501: true,
	40613: true,
	49918: true,
	49919: true,
	49920: true,
}

// Login and database-access failures never succeed on retry.
var permanentNumbers = map[int32]bool{
	4060:  true,
	18452: true,
	18456: true,
}

var transientMessages = []string{
	"unable to open tcp connection",
	"connection reset",
	"connection refused",
	"i/o timeout",
	"broken pipe",
	"no such host",
	"server closed the connection",
}

// IsTransient reports whether a connection attempt that failed with err may
// succeed when repeated.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.Canceled) {
		return false
	}

	var sqlErr mssql.Error
	if stderrs.As(err, &sqlErr) {
		if permanentNumbers[sqlErr.Number] {
			return false
		}
		return transientNumbers[sqlErr.Number]
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "login failed") || strings.Contains(msg, "cannot open database") {
		return false
	}

	var netErr net.Error
	if stderrs.As(err, &netErr) {
		return true
	}
	if stderrs.Is(err, io.EOF) || stderrs.Is(err, io.ErrUnexpectedEOF) || stderrs.Is(err, driver.ErrBadConn) {
		return true
	}
	if stderrs.Is(err, context.DeadlineExceeded) {
		return true
	}

	for _, m := range transientMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// errorNumber extracts the server error number, or zero when err did not come from the server.
func errorNumber(err error) int32 {
	var sqlErr mssql.Error
	if stderrs.As(err, &sqlErr) {
		return sqlErr.Number
	}
	return 0
}
