package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-statline/internal/domain/ruleset"
	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	qb "github.com/riskibarqy/fantasy-statline/internal/platform/querybuilder"
)

var rulesetColumns = []string{"id", "sport", "name", "schema_version", "weights", "fingerprint", "created_at"}

type RulesetRepository struct {
	db *sqlx.DB
}

func NewRulesetRepository(db *sqlx.DB) *RulesetRepository {
	return &RulesetRepository{db: db}
}

func (r *RulesetRepository) GetByID(ctx context.Context, id int64) (ruleset.Ruleset, bool, error) {
	query, args, err := qb.Select(rulesetColumns...).From("rulesets").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return ruleset.Ruleset{}, false, fmt.Errorf("build get ruleset by id query: %w", err)
	}
	return r.getOne(ctx, query, args, fmt.Sprintf("id=%d", id))
}

func (r *RulesetRepository) FindByFingerprint(ctx context.Context, s sport.Sport, fingerprint string) (ruleset.Ruleset, bool, error) {
	query, args, err := qb.Select(rulesetColumns...).From("rulesets").
		Where(
			qb.Eq("sport", string(s)),
			qb.Eq("fingerprint", fingerprint),
		).
		ToSQL()
	if err != nil {
		return ruleset.Ruleset{}, false, fmt.Errorf("build find ruleset by fingerprint query: %w", err)
	}
	return r.getOne(ctx, query, args, fmt.Sprintf("sport=%s fingerprint=%s", s, fingerprint))
}

// Insert relies on the (sport, fingerprint) unique constraint: a losing
// concurrent insert returns no row and falls back to reading the winner.
func (r *RulesetRepository) Insert(ctx context.Context, rs ruleset.Ruleset) (ruleset.Ruleset, bool, error) {
	weights, err := encodeJSON(rs.Weights)
	if err != nil {
		return ruleset.Ruleset{}, false, fmt.Errorf("encode ruleset weights: %w", err)
	}

	query, args, err := qb.InsertModel("rulesets", rulesetInsertModel{
		Sport:         string(rs.Sport),
		Name:          rs.Name,
		SchemaVersion: rs.SchemaVersion,
		Weights:       weights,
		Fingerprint:   rs.Fingerprint,
	}, "ON CONFLICT (sport, fingerprint) DO NOTHING RETURNING "+joinColumns(rulesetColumns))
	if err != nil {
		return ruleset.Ruleset{}, false, fmt.Errorf("build insert ruleset query: %w", err)
	}

	var row rulesetTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if !isNotFound(err) {
			return ruleset.Ruleset{}, false, fmt.Errorf("insert ruleset: %w", err)
		}
		existing, found, findErr := r.FindByFingerprint(ctx, rs.Sport, rs.Fingerprint)
		if findErr != nil {
			return ruleset.Ruleset{}, false, findErr
		}
		if !found {
			return ruleset.Ruleset{}, false, fmt.Errorf("ruleset sport=%s fingerprint=%s conflicted but was not found", rs.Sport, rs.Fingerprint)
		}
		return existing, false, nil
	}

	stored, err := rulesetFromRow(row)
	if err != nil {
		return ruleset.Ruleset{}, false, err
	}
	return stored, true, nil
}

func (r *RulesetRepository) getOne(ctx context.Context, query string, args []any, label string) (ruleset.Ruleset, bool, error) {
	var row rulesetTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return ruleset.Ruleset{}, false, nil
		}
		return ruleset.Ruleset{}, false, fmt.Errorf("get ruleset %s: %w", label, err)
	}

	out, err := rulesetFromRow(row)
	if err != nil {
		return ruleset.Ruleset{}, false, err
	}
	return out, true, nil
}

func rulesetFromRow(row rulesetTableModel) (ruleset.Ruleset, error) {
	weights, err := decodeWeights(row.Weights)
	if err != nil {
		return ruleset.Ruleset{}, fmt.Errorf("ruleset id=%d: %w", row.ID, err)
	}
	return ruleset.Ruleset{
		ID:            row.ID,
		Sport:         sport.Sport(row.Sport),
		Name:          row.Name,
		SchemaVersion: row.SchemaVersion,
		Weights:       weights,
		Fingerprint:   row.Fingerprint,
		CreatedAt:     row.CreatedAt,
	}, nil
}
