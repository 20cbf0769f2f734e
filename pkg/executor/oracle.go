package executor

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/pkg/errors"
	go_ora "github.com/sijms/go-ora/v2"
)

// ConnectParams identifies the database to audit.
type ConnectParams struct {
	User     string
	Password string
	Host     string
	Port     int
	Service  string
	Protocol string // tcp or tcps
}

// Open establishes and verifies the audit connection. The returned handle
// is ready for rule execution; callers own closing it.
func Open(ctx context.Context, params ConnectParams) (*sql.DB, error) {
	urlOptions := map[string]string{}
	if params.Protocol == "tcps" {
		urlOptions["ssl"] = "true"
	}

	dsn := go_ora.BuildUrl(params.Host, params.Port, params.Service, params.User, params.Password, urlOptions)
	db, err := sql.Open("oracle", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open oracle connection")
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to connect to %s:%d/%s", params.Host, params.Port, params.Service)
	}

	slog.Debug("Connected to database", "host", params.Host, "port", params.Port, "service", params.Service)
	return db, nil
}
