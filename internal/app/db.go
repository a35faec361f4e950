package app

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/fantasy-statline/internal/config"
	"github.com/riskibarqy/fantasy-statline/internal/platform/dsn"
)

const maxTracedQueryLength = 512

var (
	queryWhitespaceRegex = regexp.MustCompile(`\s+`)
	// A batched upsert renders one "($1, $2, ...)" tuple per row after VALUES.
	valuesListRegex = regexp.MustCompile(`(?i)\bVALUES (\(\$\d+(?:, \$\d+)*\))((?:, \(\$\d+(?:, \$\d+)*\))+)`)
)

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", dsn.Normalize(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBName(dsn.DatabaseName(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(max(cfg.FetchConcurrency, 4))
	db.SetMaxIdleConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// formatDBQueryForTrace collapses whitespace, folds the row tuples of a batched
// insert into the first tuple plus a count, and caps the length.
func formatDBQueryForTrace(query string) string {
	query = queryWhitespaceRegex.ReplaceAllString(strings.TrimSpace(query), " ")
	if query == "" {
		return query
	}

	if m := valuesListRegex.FindStringSubmatchIndex(query); m != nil {
		extra := strings.Count(query[m[4]:m[5]], "(")
		query = query[:m[3]] + fmt.Sprintf(" /* +%d rows */", extra) + query[m[5]:]
	}

	if len(query) <= maxTracedQueryLength {
		return query
	}
	cut := maxTracedQueryLength
	for cut > 0 && !utf8.RuneStart(query[cut]) {
		cut--
	}
	return query[:cut] + "..."
}
