package scoring

import (
	"math"

	"homeMatch/domain"
)

// Scorer turns one candidate product into an integer match score in
// [0, 100] for a taste and category.
type Scorer struct {
	builder *Builder
	cfg     Config
}

func NewScorer(builder *Builder, cfg Config) *Scorer {
	return &Scorer{builder: builder, cfg: cfg}
}

// Score runs the full blend: weighted feature sub-scores from the spec
// bag, a price sub-score from the budget band, and bounded diversity
// bonuses. An empty spec bag scores 0.
func (s *Scorer) Score(product domain.CandidateProduct, category string, traits TasteTraits) int {
	if len(product.CommonFeatures) == 0 {
		return 0
	}

	specKeys := make([]string, 0, len(product.CommonFeatures))
	for key := range product.CommonFeatures {
		specKeys = append(specKeys, key)
	}

	criteria := s.builder.Build(traits, category, specKeys)
	keyToFeature := MapSpecKeys(specKeys, category)

	anyWeighted := false
	for _, key := range specKeys {
		if feature, ok := keyToFeature[key]; ok {
			if _, weighted := criteria.FeatureWeights[feature]; weighted {
				anyWeighted = true
				break
			}
		}
	}

	totalScore := 0.0
	totalWeight := 0.0
	var matchedScores []float64

	if anyWeighted {
		for key, value := range product.CommonFeatures {
			feature, ok := keyToFeature[key]
			if !ok {
				continue
			}
			weight, ok := criteria.FeatureWeights[feature]
			if !ok {
				continue
			}

			var idealRange *Range
			if r, has := criteria.IdealRanges[feature]; has {
				idealRange = &r
			}

			sub := NormalizeSpecValue(key, value, feature, idealRange, traits.HouseholdSize, category)
			totalScore += sub * weight
			totalWeight += weight
			matchedScores = append(matchedScores, sub)
		}
	} else {
		// No weighted feature at all: every key contributes a small
		// baseline so products still differentiate.
		basicWeight := 0.1 / float64(len(product.CommonFeatures))
		for key, value := range product.CommonFeatures {
			sub := NormalizeSpecValue(key, value, FeatureBasic, nil, traits.HouseholdSize, category)
			totalScore += sub * basicWeight
			totalWeight += basicWeight
		}
	}

	var featureAvg float64
	switch {
	case totalWeight > 0:
		featureAvg = totalScore / totalWeight
	default:
		featureAvg = 0.4
	}

	priceScore := PriceScore(product.Price, traits.BudgetLevel)

	var final float64
	if featureAvg == 0 {
		final = maxf(0.1, priceScore*0.5)
	} else {
		final = s.cfg.FeatureBlend*featureAvg + s.cfg.PriceBlend*priceScore
	}

	if len(matchedScores) > 0 {
		final = s.applyBonuses(final, matchedScores)
	}

	return quantize(final)
}

// FloorScore is the price-only fallback for products whose features
// could not be scored at all: at least 10, at most 30.
func (s *Scorer) FloorScore(price float64, budgetLevel string) int {
	return int(maxf(10, math.Round(PriceScore(price, budgetLevel)*30)))
}

func (s *Scorer) applyBonuses(final float64, subs []float64) float64 {
	if len(subs) > 1 {
		bonus := stdev(subs) * s.cfg.StdevBonusScale
		if bonus > s.cfg.StdevBonusCap {
			bonus = s.cfg.StdevBonusCap
		}
		final = minf(1.0, final+bonus)
	}

	maxSub := subs[0]
	for _, v := range subs[1:] {
		if v > maxSub {
			maxSub = v
		}
	}
	if maxSub >= s.cfg.MaxFeatureThreshold {
		final = minf(1.0, final+s.cfg.MaxFeatureBonus)
	}

	if len(subs) >= s.cfg.CountThreshold {
		final = minf(1.0, final+s.cfg.CountBonus)
	}

	return final
}

// stdev is the sample standard deviation.
func stdev(values []float64) float64 {
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}

	return math.Sqrt(sum / float64(len(values)-1))
}

func quantize(final float64) int {
	score := int(math.Round(final * 100))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}

	return score
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}

	return b
}
