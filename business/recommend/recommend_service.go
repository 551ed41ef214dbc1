package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"homeMatch/business/scoring"
	"homeMatch/business/taste"
	"homeMatch/domain"
	"homeMatch/pkg/logger"
)

// ---- Repository interfaces ----

type ProductRepository interface {
	// CandidatesByCategory returns on-sale products of the category
	// with their common spec rows materialized, price ascending then
	// product_id ascending.
	CandidatesByCategory(ctx context.Context, category string, limit int) ([]domain.CandidateProduct, error)
}

type TasteConfigWriter interface {
	// UpdateRecommendedProducts persists the precomputed top products
	// for one archetype in a single transaction.
	UpdateRecommendedProducts(ctx context.Context, tasteID uint64, products map[string][]uint64, scores map[string][]int) error
}

// TasteReader is the slice of the taste service the pipeline consumes.
type TasteReader interface {
	ClassifyProfile(ctx context.Context, profile domain.TasteProfile) (*domain.TasteConfig, error)
	Get(ctx context.Context, tasteID uint64) (*domain.TasteConfig, error)
	ListActive(ctx context.Context) ([]domain.TasteConfig, error)
}

// ---- Usecase / Service ----

type Config struct {
	TopKDefault   int
	TopKMax       int
	CandidateCap  int
	MinScoreFloor bool
}

func DefaultConfig() Config {
	return Config{TopKDefault: 3, TopKMax: 10, CandidateCap: 100, MinScoreFloor: true}
}

type Service struct {
	tastes   TasteReader
	products ProductRepository
	writer   TasteConfigWriter
	scorer   *scoring.Scorer
	cfg      Config
}

func NewService(tastes TasteReader, products ProductRepository, writer TasteConfigWriter, scorer *scoring.Scorer, cfg Config) *Service {
	return &Service{
		tastes:   tastes,
		products: products,
		writer:   writer,
		scorer:   scorer,
		cfg:      cfg,
	}
}

// Options tune one live recommendation call.
type Options struct {
	// Categories restricts the result to an explicit list. Empty means
	// the archetype's own recommended categories.
	Categories []string
	TopK       int
	UseCache   bool
}

// Recommend runs the live path: classify, select categories, then per
// category either read the precomputed cache or score the catalog.
func (s *Service) Recommend(ctx context.Context, answer domain.OnboardingAnswer, opts Options) (*domain.RecommendationResult, error) {
	profile, err := taste.NormalizeAnswer(answer)
	if err != nil {
		return nil, err
	}

	config, err := s.tastes.ClassifyProfile(ctx, profile)
	if errors.Is(err, domain.ErrNoArchetype) {
		logger.Warn("no taste archetype matched, returning empty recommendation",
			"trace_id", TraceIDFromContext(ctx),
			"vibe", profile.Vibe, "budget_level", profile.BudgetLevel)
		return &domain.RecommendationResult{
			Success:    false,
			Categories: []domain.CategoryRecommendation{},
		}, nil
	}
	if err != nil {
		return nil, err
	}

	topK := s.clampTopK(opts.TopK)
	categories := selectCategories(config, opts.Categories)
	categoryScores := config.CategoryScores.Data()
	traits := traitsOf(config)

	result := &domain.RecommendationResult{
		TasteID:    config.TasteID,
		Success:    true,
		FromCache:  opts.UseCache,
		Categories: make([]domain.CategoryRecommendation, 0, len(categories)),
	}

	for _, category := range categories {
		entry := domain.CategoryRecommendation{
			Category:      category,
			CategoryScore: categoryScores[category],
			TopProducts:   []domain.ProductScore{},
		}

		if opts.UseCache {
			ids, scores, ok, cacheErr := config.CachedRecommendation(category)
			if cacheErr != nil {
				// Mismatched lists: drop this category's cache and
				// score live. Repair belongs to the batch job.
				logger.Warn("recommended product cache inconsistent",
					"trace_id", TraceIDFromContext(ctx),
					"taste_id", config.TasteID, "category", category)
				cacheInconsistenciesTotal.Inc()
			} else if ok {
				for i := range ids {
					if i >= topK {
						break
					}
					entry.TopProducts = append(entry.TopProducts, domain.ProductScore{ProductID: ids[i], Score: scores[i]})
				}
				recommendationsTotal.WithLabelValues(sourceCache).Inc()
				result.Categories = append(result.Categories, entry)
				continue
			}
		}

		result.FromCache = false
		scored, err := s.scoreCategory(ctx, traits, category, topK)
		if err != nil {
			return nil, err
		}
		for _, p := range scored {
			entry.TopProducts = append(entry.TopProducts, domain.ProductScore{ProductID: p.ProductID, Score: p.Score})
		}
		recommendationsTotal.WithLabelValues(sourceLive).Inc()
		result.Categories = append(result.Categories, entry)
	}

	return result, nil
}

// ScoreProductsForTaste scores one category's catalog for an existing
// archetype. An empty slice is a valid result; an unknown taste_id is
// an error.
func (s *Service) ScoreProductsForTaste(ctx context.Context, tasteID uint64, category string, limit int) ([]domain.ScoredProduct, error) {
	config, err := s.tastes.Get(ctx, tasteID)
	if err != nil {
		return nil, err
	}

	return s.scoreCategory(ctx, traitsOf(config), category, s.clampTopK(limit))
}

// scoreCategory is the shared inner loop of the live and batch paths.
func (s *Service) scoreCategory(ctx context.Context, traits scoring.TasteTraits, category string, topK int) ([]domain.ScoredProduct, error) {
	candidates, err := s.products.CandidatesByCategory(ctx, category, s.cfg.CandidateCap)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCatalogUnavailable, category, err)
	}

	scored := make([]domain.ScoredProduct, 0, len(candidates))
	for _, candidate := range candidates {
		score := s.scorer.Score(candidate, category, traits)
		if score == 0 && candidate.Price > 0 && s.cfg.MinScoreFloor {
			score = s.scorer.FloorScore(candidate.Price, traits.BudgetLevel)
		}
		scored = append(scored, domain.ScoredProduct{
			ProductID:   candidate.ProductID,
			ModelCode:   candidate.ModelCode,
			ProductName: candidate.ProductName,
			Price:       candidate.Price,
			Score:       score,
		})
	}

	sortScored(scored)
	if len(scored) > topK {
		scored = scored[:topK]
	}

	productsScoredTotal.Add(float64(len(candidates)))

	return scored, nil
}

// sortScored orders by score descending, then price ascending, then
// product_id ascending.
func sortScored(scored []domain.ScoredProduct) {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].Price != scored[j].Price {
			return scored[i].Price < scored[j].Price
		}
		return scored[i].ProductID < scored[j].ProductID
	})
}

func (s *Service) clampTopK(topK int) int {
	if topK <= 0 {
		topK = s.cfg.TopKDefault
	}
	if topK > s.cfg.TopKMax {
		topK = s.cfg.TopKMax
	}

	return topK
}

// selectCategories filters the archetype's recommended list, or an
// explicit request, against the ill-suited set. Order is preserved.
func selectCategories(config *domain.TasteConfig, explicit []string) []string {
	if len(explicit) == 0 {
		return config.SelectedCategories()
	}

	banned := make(map[string]struct{}, len(config.IllSuitedCategories))
	for _, c := range config.IllSuitedCategories {
		banned[c] = struct{}{}
	}

	selected := make([]string, 0, len(explicit))
	for _, c := range explicit {
		if _, skip := banned[c]; skip {
			continue
		}
		selected = append(selected, c)
	}

	return selected
}

func traitsOf(config *domain.TasteConfig) scoring.TasteTraits {
	return scoring.TasteTraits{
		TasteID:       config.TasteID,
		Vibe:          config.RepresentativeVibe,
		HouseholdSize: config.RepresentativeHousehold,
		HasPet:        config.RepresentativeHasPet,
		Priority:      config.RepresentativePriority,
		BudgetLevel:   config.RepresentativeBudgetLevel,
	}
}
