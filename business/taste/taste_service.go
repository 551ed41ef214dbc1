package taste

import (
	"context"
	"errors"
	"fmt"

	"homeMatch/domain"
	"homeMatch/pkg/logger"
)

// ---- Repository interfaces ----

type TasteConfigRepository interface {
	// FindByTraits matches all five representative attributes against
	// active rows. Returns domain.ErrTasteNotFound on no match.
	FindByTraits(ctx context.Context, profile domain.TasteProfile) (*domain.TasteConfig, error)
	// FindByTraitsIgnoringPriority matches the remaining four
	// attributes, first row by ascending taste_id.
	FindByTraitsIgnoringPriority(ctx context.Context, profile domain.TasteProfile) (*domain.TasteConfig, error)
	FindAllActive(ctx context.Context) ([]domain.TasteConfig, error)
	FindByID(ctx context.Context, tasteID uint64) (*domain.TasteConfig, error)
}

// ---- Usecase / Service ----

type Service struct {
	repo TasteConfigRepository
}

func NewService(repo TasteConfigRepository) *Service {
	return &Service{repo: repo}
}

// Classify maps a raw onboarding answer to its taste archetype. The
// lookup cascades: exact match on all five representative attributes,
// then a match that drops priority, then a weighted similarity sweep
// over every active archetype. domain.ErrNoArchetype means the table
// is empty.
func (s *Service) Classify(ctx context.Context, answer domain.OnboardingAnswer) (*domain.TasteConfig, error) {
	profile, err := NormalizeAnswer(answer)
	if err != nil {
		return nil, err
	}

	return s.ClassifyProfile(ctx, profile)
}

// ClassifyProfile runs the cascade on an already-normalized profile.
func (s *Service) ClassifyProfile(ctx context.Context, profile domain.TasteProfile) (*domain.TasteConfig, error) {
	exact, err := s.repo.FindByTraits(ctx, profile)
	if err == nil {
		classificationsTotal.WithLabelValues(classifyPathExact).Inc()
		return exact, nil
	}
	if !errors.Is(err, domain.ErrTasteNotFound) {
		return nil, fmt.Errorf("exact taste lookup: %w", err)
	}

	partial, err := s.repo.FindByTraitsIgnoringPriority(ctx, profile)
	if err == nil {
		classificationsTotal.WithLabelValues(classifyPathPartial).Inc()
		logger.Debug("taste classified without priority",
			"taste_id", partial.TasteID, "vibe", profile.Vibe)
		return partial, nil
	}
	if !errors.Is(err, domain.ErrTasteNotFound) {
		return nil, fmt.Errorf("partial taste lookup: %w", err)
	}

	return s.classifyBySimilarity(ctx, profile)
}

// Similarity weights for the last-resort sweep.
const (
	simVibeWeight      = 30
	simHouseholdWeight = 20
	simPriorityWeight  = 25
	simBudgetWeight    = 25
)

func (s *Service) classifyBySimilarity(ctx context.Context, profile domain.TasteProfile) (*domain.TasteConfig, error) {
	active, err := s.repo.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("active taste sweep: %w", err)
	}
	if len(active) == 0 {
		classificationsTotal.WithLabelValues(classifyPathNone).Inc()
		return nil, domain.ErrNoArchetype
	}

	var best *domain.TasteConfig
	bestScore := 0

	for i := range active {
		candidate := &active[i]
		score := 0
		if candidate.RepresentativeVibe == profile.Vibe {
			score += simVibeWeight
		}
		if diff := candidate.RepresentativeHousehold - profile.HouseholdSize; diff >= -1 && diff <= 1 {
			score += simHouseholdWeight
		}
		if candidate.RepresentativePriority == profile.Priority {
			score += simPriorityWeight
		}
		if candidate.RepresentativeBudgetLevel == profile.BudgetLevel {
			score += simBudgetWeight
		}

		if score > bestScore || (score == bestScore && best != nil && candidate.TasteID < best.TasteID) {
			bestScore = score
			best = candidate
		}
	}

	// Nothing overlapped at all: fall back to the lowest-id active row.
	if best == nil || bestScore == 0 {
		best = &active[0]
		for i := range active {
			if active[i].TasteID < best.TasteID {
				best = &active[i]
			}
		}
	}

	classificationsTotal.WithLabelValues(classifyPathSimilarity).Inc()
	logger.Debug("taste classified by similarity",
		"taste_id", best.TasteID, "similarity", bestScore)

	return best, nil
}

// ListActive returns every active archetype, unordered.
func (s *Service) ListActive(ctx context.Context) ([]domain.TasteConfig, error) {
	return s.repo.FindAllActive(ctx)
}

// Get loads one archetype by id, active or not.
func (s *Service) Get(ctx context.Context, tasteID uint64) (*domain.TasteConfig, error) {
	config, err := s.repo.FindByID(ctx, tasteID)
	if err != nil {
		return nil, err
	}

	return config, nil
}
