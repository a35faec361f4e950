// Package dsn normalizes Postgres connection strings shared by the worker and
// the migration command.
package dsn

import (
	"net/url"
	"strings"

	"github.com/lib/pq"
)

const preparedBinaryResultParam = "disable_prepared_binary_result"

// Normalize adds disable_prepared_binary_result=yes to a URL-style DSN when
// disable is set and the caller has not chosen a value. Key/value DSNs and
// unparsable input are returned unchanged.
func Normalize(raw string, disable bool) string {
	if !disable || !isURL(raw) {
		return raw
	}

	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}

	query := parsed.Query()
	if query.Get(preparedBinaryResultParam) != "" {
		return raw
	}
	query.Set(preparedBinaryResultParam, "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// DatabaseName returns the dbname of a URL or key/value DSN, or "".
func DatabaseName(raw string) string {
	raw = strings.TrimSpace(raw)
	if isURL(raw) {
		converted, err := pq.ParseURL(raw)
		if err != nil {
			return ""
		}
		raw = converted
	}

	for _, token := range strings.Fields(raw) {
		name, ok := strings.CutPrefix(token, "dbname=")
		if !ok {
			continue
		}
		if name = strings.Trim(name, `"'`); name != "" {
			return name
		}
	}
	return ""
}

func isURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	return strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://")
}
