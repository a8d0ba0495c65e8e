package postgres

import (
	"net/url"
	"strings"

	"github.com/lib/pq"
)

const preparedBinaryParam = "disable_prepared_binary_result"

// DSN prepares a postgres:// URL for use behind a transaction-mode pooler
// by asking for text results. An explicit value in the URL wins and
// key=value connection strings are returned unchanged.
func DSN(raw string, disablePreparedBinary bool) string {
	raw = strings.TrimSpace(raw)
	if !disablePreparedBinary || !strings.Contains(raw, "://") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Has(preparedBinaryParam) {
		return raw
	}
	q.Set(preparedBinaryParam, "yes")
	u.RawQuery = q.Encode()
	return u.String()
}

// DatabaseName reads dbname from a postgres:// URL or a key=value string.
func DatabaseName(dsn string) string {
	conninfo := strings.TrimSpace(dsn)
	if strings.Contains(conninfo, "://") {
		parsed, err := pq.ParseURL(conninfo)
		if err != nil {
			return ""
		}
		conninfo = parsed
	}
	for _, field := range strings.Fields(conninfo) {
		if name, ok := strings.CutPrefix(field, "dbname="); ok {
			return strings.Trim(name, `'"`)
		}
	}
	return ""
}
