package scoring

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"sync"
)

// TasteTraits are the representative attributes of one taste archetype,
// the only inputs the criteria builder reads.
type TasteTraits struct {
	TasteID       uint64
	Vibe          string
	HouseholdSize int
	HasPet        bool
	Priority      string
	BudgetLevel   string
}

// Criteria is the memoized weighting bundle for one
// (taste, category, available-spec-keys) triple.
type Criteria struct {
	FeatureWeights    map[string]float64
	IdealRanges       map[string]Range
	FeaturePriorities []string
}

// Builder produces and caches criteria bundles. Cached values are
// immutable after insertion; callers must not mutate them.
type Builder struct {
	mu    sync.RWMutex
	cache map[string]*Criteria
}

func NewBuilder() *Builder {
	return &Builder{cache: make(map[string]*Criteria)}
}

// Build returns the criteria bundle for the taste and category given
// the spec keys actually present on the candidate set. The cache key
// absorbs the spec-key set, so products with different spec shapes get
// different weightings.
func (b *Builder) Build(traits TasteTraits, category string, availableSpecKeys []string) *Criteria {
	key := cacheKey(traits.TasteID, category, availableSpecKeys)

	b.mu.RLock()
	cached, ok := b.cache[key]
	b.mu.RUnlock()
	if ok {
		return cached
	}

	built := buildCriteria(traits, category, availableSpecKeys)

	b.mu.Lock()
	b.cache[key] = built
	b.mu.Unlock()

	return built
}

// Reset drops all cached bundles. Call on configuration change.
func (b *Builder) Reset() {
	b.mu.Lock()
	b.cache = make(map[string]*Criteria)
	b.mu.Unlock()
}

func cacheKey(tasteID uint64, category string, specKeys []string) string {
	sorted := make([]string, len(specKeys))
	copy(sorted, specKeys)
	sort.Strings(sorted)

	h := fnv.New64a()
	for _, k := range sorted {
		h.Write([]byte(k))
		h.Write([]byte{0})
	}

	return fmt.Sprintf("%d|%s|%x", tasteID, category, h.Sum64())
}

func buildCriteria(traits TasteTraits, category string, availableSpecKeys []string) *Criteria {
	base := baseWeights(category, availableSpecKeys)
	adjusted := adjustWeights(base, traits)

	return &Criteria{
		FeatureWeights:    adjusted,
		IdealRanges:       idealRanges(category, traits.HouseholdSize),
		FeaturePriorities: topFeatures(adjusted, 5),
	}
}

// MapSpecKeys resolves raw spec keys to canonical features for a
// category: exact table lookup first, then substring fallback against
// the canonical vocabulary. Unresolvable keys are absent from the
// result.
func MapSpecKeys(specKeys []string, category string) map[string]string {
	exact := specKeyCanonical[category]
	mapping := make(map[string]string, len(specKeys))

	for _, key := range specKeys {
		if feature, ok := exact[key]; ok {
			mapping[key] = feature
			continue
		}
		for _, feature := range substringVocabulary {
			if strings.Contains(key, feature) {
				mapping[key] = feature
				break
			}
		}
	}

	return mapping
}

// baseWeights assigns (N-i)/sum(1..N) to each priority feature that is
// reachable through the available spec keys. With no key information
// the full priority list is weighted; with no match at all the static
// fallback applies.
func baseWeights(category string, availableSpecKeys []string) map[string]float64 {
	priorities := categoryPriorities[category]
	weights := make(map[string]float64)

	if len(priorities) > 0 {
		total := 0
		for i := 1; i <= len(priorities); i++ {
			total += i
		}

		if len(availableSpecKeys) > 0 {
			matched := make(map[string]struct{})
			for _, feature := range MapSpecKeys(availableSpecKeys, category) {
				matched[feature] = struct{}{}
			}

			for i, feature := range priorities {
				if _, ok := matched[feature]; ok {
					weights[feature] = float64(len(priorities)-i) / float64(total)
				}
			}
			normalize(weights)
		} else {
			for i, feature := range priorities {
				weights[feature] = float64(len(priorities)-i) / float64(total)
			}
		}
	}

	if len(weights) == 0 {
		for k, v := range fallbackWeights {
			weights[k] = v
		}
	}

	return weights
}

func adjustWeights(base map[string]float64, traits TasteTraits) map[string]float64 {
	adjusted := make(map[string]float64, len(base))
	for k, v := range base {
		adjusted[k] = v
	}

	scale := func(feature string, factor float64) {
		if _, ok := adjusted[feature]; ok {
			adjusted[feature] *= factor
		}
	}

	switch traits.Priority {
	case "design":
		scale(FeatureDesign, 1.5)
		scale(FeatureStyle, 1.3)
	case "tech":
		scale(FeatureSmart, 1.5)
		scale(FeatureFunction, 1.3)
	case "eco":
		scale(FeatureEnergyGrade, 1.5)
		scale(FeaturePowerUse, 1.3)
	case "value":
		scale(FeaturePrice, 1.5)
		scale(FeatureValue, 1.3)
	}

	if traits.HouseholdSize >= 4 {
		scale(FeatureCapacity, 1.3)
		scale(FeatureSize, 1.2)
	} else if traits.HouseholdSize == 1 {
		scale(FeatureCapacity, 0.8)
		scale(FeatureSize, 0.8)
	}

	switch traits.BudgetLevel {
	case "high", "premium", "luxury":
		scale(FeaturePrice, 0.5)
		scale(FeaturePremium, 1.3)
	case "low":
		scale(FeaturePrice, 1.5)
		scale(FeaturePremium, 0.5)
	}

	if traits.HasPet {
		scale(FeatureFilterFn, 1.3)
		scale(FeatureCleanFn, 1.2)
	}

	normalize(adjusted)

	return adjusted
}

func normalize(weights map[string]float64) {
	total := 0.0
	for _, v := range weights {
		total += v
	}
	if total <= 0 {
		return
	}

	for k, v := range weights {
		weights[k] = v / total
	}
}

// idealRanges picks numeric target intervals for capacity-like
// features by household size.
func idealRanges(category string, householdSize int) map[string]Range {
	ranges := make(map[string]Range, 1)

	switch category {
	case CategoryRefrigerator:
		switch {
		case householdSize >= 4:
			ranges[FeatureCapacity] = Range{400, 1000}
		case householdSize == 2:
			ranges[FeatureCapacity] = Range{200, 400}
		default:
			ranges[FeatureCapacity] = Range{100, 300}
		}
	case CategoryWasher, CategoryLaundry:
		switch {
		case householdSize >= 4:
			ranges[FeatureCapacity] = Range{15, 25}
		case householdSize == 2:
			ranges[FeatureCapacity] = Range{10, 15}
		default:
			ranges[FeatureCapacity] = Range{8, 12}
		}
	case CategoryTV:
		switch {
		case householdSize >= 4:
			ranges[FeatureScreenSize] = Range{65, 85}
		case householdSize == 2:
			ranges[FeatureScreenSize] = Range{55, 65}
		default:
			ranges[FeatureScreenSize] = Range{43, 55}
		}
	}

	return ranges
}

func topFeatures(weights map[string]float64, n int) []string {
	type kv struct {
		feature string
		weight  float64
	}

	entries := make([]kv, 0, len(weights))
	for k, v := range weights {
		entries = append(entries, kv{k, v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].weight != entries[j].weight {
			return entries[i].weight > entries[j].weight
		}
		return entries[i].feature < entries[j].feature
	})

	if len(entries) > n {
		entries = entries[:n]
	}

	features := make([]string, len(entries))
	for i, e := range entries {
		features[i] = e.feature
	}

	return features
}
