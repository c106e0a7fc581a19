package usecase

import (
	"context"
	"strings"

	"github.com/foodcheck/web/internal/domain"
	"github.com/foodcheck/web/internal/logging"
	"go.uber.org/zap"
)

// ComplianceService checks ingredient names against the drug-label database
type ComplianceService struct {
	registry domain.DrugLabelRegistry
	logger   *zap.Logger
}

// NewComplianceService creates a new compliance service with dependencies
func NewComplianceService(registry domain.DrugLabelRegistry, logger *zap.Logger) *ComplianceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComplianceService{
		registry: registry,
		logger:   logger,
	}
}

// Check returns one verdict per ingredient, in input order. Each ingredient
// is queried on its own, duplicates included, and a failed query only
// affects its own verdict.
func (s *ComplianceService) Check(ctx context.Context, ingredients []string) []domain.ComplianceVerdict {
	log := logging.FromContext(ctx, s.logger).With(zap.String("op", "compliance_check"))

	verdicts := make([]domain.ComplianceVerdict, 0, len(ingredients))
	for _, ingredient := range ingredients {
		name := strings.TrimSpace(ingredient)
		if name == "" {
			verdicts = append(verdicts, domain.NewNotFoundVerdict(ingredient, false))
			continue
		}

		found, err := s.registry.HasActiveIngredient(ctx, name)
		switch {
		case err != nil:
			log.Warn("drug label lookup failed", zap.String("ingredient", name), zap.Error(err))
			verdicts = append(verdicts, domain.NewNotFoundVerdict(ingredient, true))
		case found:
			verdicts = append(verdicts, domain.NewApprovedVerdict(ingredient))
		default:
			verdicts = append(verdicts, domain.NewNotFoundVerdict(ingredient, false))
		}
	}

	log.Debug("compliance check done", zap.Int("ingredients", len(ingredients)))
	return verdicts
}
