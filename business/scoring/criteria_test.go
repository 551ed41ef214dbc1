package scoring

import (
	"math"
	"testing"
)

func weightSum(weights map[string]float64) float64 {
	total := 0.0
	for _, v := range weights {
		total += v
	}

	return total
}

func TestMapSpecKeys_ExactAndSubstring(t *testing.T) {
	keys := []string{
		"해상도",
		"화면 사이즈 (베젤 미포함)",
		"ThinQ(Wi-Fi)",
		"패널 주사율 지원", // substring fallback
		"받침대 형태",    // unmatched
	}

	mapping := MapSpecKeys(keys, CategoryTV)

	want := map[string]string{
		"해상도":             FeatureResolution,
		"화면 사이즈 (베젤 미포함)": FeatureScreenSize,
		"ThinQ(Wi-Fi)":    FeatureSmart,
		"패널 주사율 지원":       FeatureRefreshRate,
	}
	if len(mapping) != len(want) {
		t.Fatalf("got %d mapped keys, want %d: %v", len(mapping), len(want), mapping)
	}
	for k, feature := range want {
		if mapping[k] != feature {
			t.Errorf("key %q: got %q, want %q", k, mapping[k], feature)
		}
	}
}

func TestBuild_WeightsNormalized(t *testing.T) {
	b := NewBuilder()
	traits := TasteTraits{TasteID: 1, Vibe: "modern", HouseholdSize: 2, Priority: "tech", BudgetLevel: "medium"}

	criteria := b.Build(traits, CategoryTV, []string{"해상도", "주사율", "ThinQ"})

	if got := weightSum(criteria.FeatureWeights); math.Abs(got-1.0) > 1e-6 {
		t.Errorf("weight sum: got %v, want 1.0", got)
	}
	for _, feature := range []string{FeatureResolution, FeatureRefreshRate, FeatureSmart} {
		if _, ok := criteria.FeatureWeights[feature]; !ok {
			t.Errorf("missing weight for %q", feature)
		}
	}
	if _, ok := criteria.FeatureWeights[FeatureScreenSize]; ok {
		t.Error("화면크기 weighted despite no matching spec key")
	}
}

func TestBuild_TechPriorityBoostsSmart(t *testing.T) {
	b := NewBuilder()
	keys := []string{"해상도", "ThinQ"}

	base := b.Build(TasteTraits{TasteID: 1, HouseholdSize: 2, Priority: "design", BudgetLevel: "medium"}, CategoryTV, keys)
	tech := b.Build(TasteTraits{TasteID: 2, HouseholdSize: 2, Priority: "tech", BudgetLevel: "medium"}, CategoryTV, keys)

	if tech.FeatureWeights[FeatureSmart] <= base.FeatureWeights[FeatureSmart] {
		t.Errorf("tech priority should boost 스마트기능: %v vs %v",
			tech.FeatureWeights[FeatureSmart], base.FeatureWeights[FeatureSmart])
	}
}

func TestBuild_NoMatchFallsBackToStaticWeights(t *testing.T) {
	b := NewBuilder()
	criteria := b.Build(TasteTraits{TasteID: 3, HouseholdSize: 2, BudgetLevel: "medium"}, CategoryTV, []string{"받침대 형태"})

	if _, ok := criteria.FeatureWeights[FeatureFunction]; !ok {
		t.Fatalf("expected static fallback weights, got %v", criteria.FeatureWeights)
	}
	if got := weightSum(criteria.FeatureWeights); math.Abs(got-1.0) > 1e-6 {
		t.Errorf("fallback weight sum: got %v, want 1.0", got)
	}
}

func TestBuild_IdealRangesByHousehold(t *testing.T) {
	b := NewBuilder()

	tests := []struct {
		category  string
		household int
		feature   string
		want      Range
	}{
		{CategoryRefrigerator, 4, FeatureCapacity, Range{400, 1000}},
		{CategoryRefrigerator, 2, FeatureCapacity, Range{200, 400}},
		{CategoryRefrigerator, 1, FeatureCapacity, Range{100, 300}},
		{CategoryWasher, 5, FeatureCapacity, Range{15, 25}},
		{CategoryTV, 2, FeatureScreenSize, Range{55, 65}},
	}
	for i, tc := range tests {
		traits := TasteTraits{TasteID: uint64(10 + i), HouseholdSize: tc.household, BudgetLevel: "medium"}
		criteria := b.Build(traits, tc.category, []string{"용량", "화면크기"})
		if got := criteria.IdealRanges[tc.feature]; got != tc.want {
			t.Errorf("%s household %d: got %v, want %v", tc.category, tc.household, got, tc.want)
		}
	}
}

func TestBuild_CacheKeyAbsorbsSpecKeys(t *testing.T) {
	b := NewBuilder()
	traits := TasteTraits{TasteID: 7, HouseholdSize: 2, Priority: "value", BudgetLevel: "low"}

	full := b.Build(traits, CategoryTV, []string{"해상도", "주사율"})
	partial := b.Build(traits, CategoryTV, []string{"해상도"})

	if _, ok := partial.FeatureWeights[FeatureRefreshRate]; ok {
		t.Error("bundle built from fewer keys should not weight 주사율")
	}
	if _, ok := full.FeatureWeights[FeatureRefreshRate]; !ok {
		t.Error("bundle built from full keys should weight 주사율")
	}

	// Same key set returns the identical cached bundle.
	again := b.Build(traits, CategoryTV, []string{"주사율", "해상도"})
	if again != full {
		t.Error("expected cached bundle for the same key set")
	}
}

func TestBuild_LowBudgetHalvesPremium(t *testing.T) {
	b := NewBuilder()

	low := b.Build(TasteTraits{TasteID: 20, HouseholdSize: 2, BudgetLevel: "low"}, "와인셀러", nil)
	high := b.Build(TasteTraits{TasteID: 21, HouseholdSize: 2, BudgetLevel: "high"}, "와인셀러", nil)

	// Unknown categories use the static fallback, which carries 가격.
	if low.FeatureWeights[FeaturePrice] <= high.FeatureWeights[FeaturePrice] {
		t.Errorf("low budget should weight 가격 above high budget: %v vs %v",
			low.FeatureWeights[FeaturePrice], high.FeatureWeights[FeaturePrice])
	}
}

func TestBuild_FeaturePrioritiesFollowWeights(t *testing.T) {
	b := NewBuilder()
	criteria := b.Build(TasteTraits{TasteID: 9, HouseholdSize: 2, Priority: "tech", BudgetLevel: "medium"}, CategoryTV, nil)

	if len(criteria.FeaturePriorities) == 0 {
		t.Fatal("expected non-empty feature priorities")
	}
	if len(criteria.FeaturePriorities) > 5 {
		t.Fatalf("priorities capped at 5, got %d", len(criteria.FeaturePriorities))
	}
	for i := 1; i < len(criteria.FeaturePriorities); i++ {
		prev := criteria.FeatureWeights[criteria.FeaturePriorities[i-1]]
		cur := criteria.FeatureWeights[criteria.FeaturePriorities[i]]
		if prev < cur {
			t.Errorf("priorities out of weight order at %d: %v < %v", i, prev, cur)
		}
	}
}
