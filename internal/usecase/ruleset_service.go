package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/fantasy-statline/internal/domain/ruleset"
	"github.com/riskibarqy/fantasy-statline/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	"github.com/riskibarqy/fantasy-statline/internal/domain/statline"
	"github.com/riskibarqy/fantasy-statline/internal/platform/logging"
)

type RulesetService struct {
	rulesets  ruleset.Repository
	validator *validator.Validate
	logger    *logging.Logger
	now       func() time.Time
}

type CreateRulesetInput struct {
	Sport   string             `validate:"required"`
	Name    string             `validate:"required,max=120"`
	Weights map[string]float64 `validate:"required,min=1,dive,keys,required,endkeys"`
}

type PreviewInput struct {
	Sport string
	// RulesetID selects a stored ruleset; zero scores with the sport defaults.
	RulesetID int64
	Stats     statline.Line
}

type PreviewResult struct {
	RulesetID int64
	Points    float64
	Breakdown scoring.Breakdown
	Stale     bool
}

func NewRulesetService(rulesets ruleset.Repository, logger *logging.Logger) *RulesetService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RulesetService{
		rulesets:  rulesets,
		validator: validator.New(),
		logger:    logger,
		now:       time.Now,
	}
}

// CreateOrGet stores a ruleset unless one with identical weights exists for the
// sport. created is false when an existing row is returned.
func (s *RulesetService) CreateOrGet(ctx context.Context, input CreateRulesetInput) (ruleset.Ruleset, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RulesetService.CreateOrGet")
	defer span.End()

	if err := s.validator.StructCtx(ctx, input); err != nil {
		return ruleset.Ruleset{}, false, fmt.Errorf("%w: validation failed: %v", ErrInvalidInput, err)
	}

	sp, err := sport.Parse(input.Sport)
	if err != nil {
		return ruleset.Ruleset{}, false, fmt.Errorf("%w: %w", ErrInvalidSport, err)
	}
	if unknown := ruleset.UnknownFactors(sp, input.Weights); len(unknown) > 0 {
		return ruleset.Ruleset{}, false, fmt.Errorf("%w: unknown %s factors: %s", ErrInvalidInput, sp, strings.Join(unknown, ", "))
	}

	fingerprint := ruleset.Fingerprint(sp, input.Weights)
	existing, found, err := s.rulesets.FindByFingerprint(ctx, sp, fingerprint)
	if err != nil {
		return ruleset.Ruleset{}, false, fmt.Errorf("find ruleset by fingerprint: %w", err)
	}
	if found {
		s.logger.InfoContext(ctx, "ruleset dedup hit", "sport", sp, "ruleset_id", existing.ID)
		return existing, false, nil
	}

	weights := make(map[string]float64, len(input.Weights))
	for factor, weight := range input.Weights {
		if weight != 0 {
			weights[factor] = weight
		}
	}

	stored, created, err := s.rulesets.Insert(ctx, ruleset.Ruleset{
		Sport:         sp,
		Name:          strings.TrimSpace(input.Name),
		SchemaVersion: ruleset.SchemaVersionFor(sp),
		Weights:       weights,
		Fingerprint:   fingerprint,
		CreatedAt:     s.now().UTC(),
	})
	if err != nil {
		return ruleset.Ruleset{}, false, fmt.Errorf("insert ruleset: %w", err)
	}
	if !created {
		s.logger.InfoContext(ctx, "ruleset dedup hit on insert", "sport", sp, "ruleset_id", stored.ID)
	}
	return stored, created, nil
}

// Preview scores a stat line without side effects.
func (s *RulesetService) Preview(ctx context.Context, input PreviewInput) (PreviewResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RulesetService.Preview")
	defer span.End()

	sp, err := sport.Parse(input.Sport)
	if err != nil {
		return PreviewResult{}, fmt.Errorf("%w: %w", ErrInvalidSport, err)
	}

	weights := ruleset.Defaults(sp)
	var result PreviewResult
	if input.RulesetID > 0 {
		rs, found, err := s.rulesets.GetByID(ctx, input.RulesetID)
		if err != nil {
			return PreviewResult{}, fmt.Errorf("get ruleset: %w", err)
		}
		if !found {
			return PreviewResult{}, fmt.Errorf("%w: ruleset id=%d", ErrNotFound, input.RulesetID)
		}
		if rs.Sport != sp {
			return PreviewResult{}, fmt.Errorf("%w: ruleset id=%d belongs to %s", ErrInvalidInput, rs.ID, rs.Sport)
		}
		weights = rs.Weights
		result.RulesetID = rs.ID
		result.Stale = rs.Stale()
	}

	breakdown, err := scoring.Explain(sp, input.Stats, weights)
	if err != nil {
		return PreviewResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	result.Breakdown = breakdown
	result.Points = breakdown.Total
	return result, nil
}
