package app

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/footmate/internal/config"
	"github.com/riskibarqy/footmate/internal/infrastructure/repository/postgres"
)

const maxTracedQueryLen = 512

// openDB opens the traced Postgres pool. Queries are recorded on spans in a
// single-line form and pool stats are exported as metrics.
func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := postgres.DSN(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(postgres.DatabaseName(dsn)),
		otelsql.WithQueryFormatter(traceableQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	otelsql.ReportDBStatsMetrics(db.DB)
	return db, nil
}

func traceableQuery(query string) string {
	out := strings.Join(strings.Fields(query), " ")
	if len(out) <= maxTracedQueryLen {
		return out
	}
	cut := maxTracedQueryLen
	for cut > 0 && out[cut]&0xC0 == 0x80 {
		cut--
	}
	return out[:cut] + "..."
}
