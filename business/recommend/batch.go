package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"homeMatch/domain"
	"homeMatch/pkg/logger"
)

// ProgressRecord is emitted after each archetype during a cache
// rebuild.
type ProgressRecord struct {
	TasteID           uint64  `json:"taste_id"`
	ElapsedSeconds    float64 `json:"elapsed_seconds"`
	CategoriesWritten int     `json:"categories_written"`
	ETASeconds        float64 `json:"eta_seconds"`
}

type ProgressSink interface {
	Record(record ProgressRecord)
}

// LogProgressSink reports rebuild progress through the process logger.
type LogProgressSink struct{}

func (LogProgressSink) Record(r ProgressRecord) {
	logger.Info("cache rebuild progress",
		"taste_id", r.TasteID,
		"elapsed_seconds", fmt.Sprintf("%.2f", r.ElapsedSeconds),
		"categories_written", r.CategoriesWritten,
		"eta_seconds", fmt.Sprintf("%.1f", r.ETASeconds),
	)
}

// BatchOptions restrict a rebuild to a taste_id range. Zero values
// mean unbounded.
type BatchOptions struct {
	TasteFrom uint64
	TasteTo   uint64
	Sink      ProgressSink
}

type BatchReport struct {
	Processed int
	Failed    int
	Duration  time.Duration
}

// RebuildCache recomputes recommended_products and
// recommended_product_scores for every archetype in range. One
// archetype's failure is recorded and the rebuild continues; the
// context is only checked at archetype boundaries, so an archetype's
// write is never torn by cancellation.
func (s *Service) RebuildCache(ctx context.Context, opts BatchOptions) (*BatchReport, error) {
	tastes, err := s.tastes.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list archetypes: %w", err)
	}

	sort.Slice(tastes, func(i, j int) bool { return tastes[i].TasteID < tastes[j].TasteID })

	inRange := tastes[:0]
	for i := range tastes {
		id := tastes[i].TasteID
		if opts.TasteFrom > 0 && id < opts.TasteFrom {
			continue
		}
		if opts.TasteTo > 0 && id > opts.TasteTo {
			continue
		}
		inRange = append(inRange, tastes[i])
	}

	sink := opts.Sink
	if sink == nil {
		sink = LogProgressSink{}
	}

	report := &BatchReport{}
	start := time.Now()
	var elapsedTotal time.Duration

	for i := range inRange {
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(start)
			return report, fmt.Errorf("rebuild cancelled after %d archetypes: %w", report.Processed, err)
		}

		config := &inRange[i]
		stepStart := time.Now()

		written, err := s.rebuildArchetype(ctx, config)
		stepElapsed := time.Since(stepStart)
		elapsedTotal += stepElapsed

		if err != nil {
			report.Failed++
			batchArchetypesTotal.WithLabelValues(statusFailed).Inc()
			logger.Error("archetype rebuild failed",
				"taste_id", config.TasteID, "error", err)
		} else {
			report.Processed++
			batchArchetypesTotal.WithLabelValues(statusOK).Inc()
		}

		done := i + 1
		avg := elapsedTotal / time.Duration(done)
		remaining := len(inRange) - done
		sink.Record(ProgressRecord{
			TasteID:           config.TasteID,
			ElapsedSeconds:    stepElapsed.Seconds(),
			CategoriesWritten: written,
			ETASeconds:        (avg * time.Duration(remaining)).Seconds(),
		})
	}

	report.Duration = time.Since(start)
	logger.Info("cache rebuild finished",
		"processed", report.Processed, "failed", report.Failed,
		"duration", report.Duration.String())

	return report, nil
}

// rebuildArchetype scores every selected category and writes the two
// parallel mappings back in one transaction. Categories with zero
// candidates keep empty lists; they are never dropped from the map.
func (s *Service) rebuildArchetype(ctx context.Context, config *domain.TasteConfig) (int, error) {
	traits := traitsOf(config)
	products := make(map[string][]uint64)
	scores := make(map[string][]int)

	for _, category := range config.SelectedCategories() {
		scored, err := s.scoreCategory(ctx, traits, category, s.cfg.TopKDefault)
		if err != nil {
			return 0, fmt.Errorf("score category %s: %w", category, err)
		}

		ids := make([]uint64, 0, len(scored))
		scoreList := make([]int, 0, len(scored))
		for _, p := range scored {
			ids = append(ids, p.ProductID)
			scoreList = append(scoreList, p.Score)
		}
		products[category] = ids
		scores[category] = scoreList
	}

	if err := s.writer.UpdateRecommendedProducts(ctx, config.TasteID, products, scores); err != nil {
		return 0, fmt.Errorf("write taste config: %w", err)
	}

	return len(products), nil
}
