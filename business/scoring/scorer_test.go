package scoring

import (
	"fmt"
	"testing"

	"homeMatch/domain"
)

func newTestScorer() *Scorer {
	return NewScorer(NewBuilder(), DefaultConfig())
}

func TestScore_EmptyFeatures(t *testing.T) {
	s := newTestScorer()
	product := domain.CandidateProduct{ProductID: 1, Price: 1_500_000}

	if got := s.Score(product, CategoryTV, TasteTraits{TasteID: 1, HouseholdSize: 2, BudgetLevel: "medium"}); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}

func TestScore_RefrigeratorFamilyOfFour(t *testing.T) {
	s := newTestScorer()
	product := domain.CandidateProduct{
		ProductID: 10,
		Price:     1_500_000,
		CommonFeatures: map[string]string{
			"용량": "410L",
		},
	}
	traits := TasteTraits{TasteID: 5, Vibe: "modern", HouseholdSize: 4, Priority: "value", BudgetLevel: "medium"}

	// Capacity 410 sits inside the household-4 ideal range [400, 1000]
	// and price sits inside the medium band, so the blend is exactly
	// 1.0 before bonuses and stays 100 after.
	if got := s.Score(product, CategoryRefrigerator, traits); got != 100 {
		t.Errorf("got %d, want 100", got)
	}
}

func TestScore_TVResolutionAndRefresh(t *testing.T) {
	s := newTestScorer()
	product := domain.CandidateProduct{
		ProductID: 11,
		Price:     4_000_000,
		CommonFeatures: map[string]string{
			"해상도": "4K UHD 3840x2160",
			"주사율": "120Hz",
		},
	}
	traits := TasteTraits{TasteID: 6, Vibe: "modern", HouseholdSize: 2, Priority: "tech", BudgetLevel: "high"}

	if got := s.Score(product, CategoryTV, traits); got != 100 {
		t.Errorf("got %d, want 100", got)
	}
}

func TestScore_Bounds(t *testing.T) {
	s := newTestScorer()
	traits := TasteTraits{TasteID: 7, HouseholdSize: 3, Priority: "eco", BudgetLevel: "low"}

	products := []domain.CandidateProduct{
		{ProductID: 1, Price: 500_000, CommonFeatures: map[string]string{"에너지소비효율등급": "1등급"}},
		{ProductID: 2, Price: 45_000_000, CommonFeatures: map[string]string{"에너지소비효율등급": "5등급", "소음": "55dB"}},
		{ProductID: 3, Price: 900_000, CommonFeatures: map[string]string{"받침대": "스탠드형"}},
		{ProductID: 4, Price: 100, CommonFeatures: map[string]string{"용량": "nan"}},
	}
	for _, p := range products {
		got := s.Score(p, CategoryWasher, traits)
		if got < 0 || got > 100 {
			t.Errorf("product %d: score %d out of [0, 100]", p.ProductID, got)
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	s := newTestScorer()
	product := domain.CandidateProduct{
		ProductID: 20,
		Price:     2_200_000,
		CommonFeatures: map[string]string{
			"해상도":   "4K",
			"주사율":   "60Hz",
			"ThinQ": "지원",
			"HDR":   "지원",
			"받침대":   "벽걸이",
		},
	}
	traits := TasteTraits{TasteID: 8, Vibe: "cozy", HouseholdSize: 2, Priority: "design", BudgetLevel: "medium"}

	first := s.Score(product, CategoryTV, traits)
	for i := 0; i < 50; i++ {
		if got := s.Score(product, CategoryTV, traits); got != first {
			t.Fatalf("iteration %d: got %d, want %d", i, got, first)
		}
	}
}

func TestScore_BasicFallbackDifferentiates(t *testing.T) {
	s := newTestScorer()
	traits := TasteTraits{TasteID: 9, HouseholdSize: 2, BudgetLevel: "medium"}

	rich := domain.CandidateProduct{
		ProductID:      30,
		Price:          2_000_000,
		CommonFeatures: map[string]string{"도어 방식": "양문형 완전 자동 지원"},
	}
	poor := domain.CandidateProduct{
		ProductID:      31,
		Price:          2_000_000,
		CommonFeatures: map[string]string{"도어 방식": "없음"},
	}

	richScore := s.Score(rich, CategoryRefrigerator, traits)
	poorScore := s.Score(poor, CategoryRefrigerator, traits)
	if richScore <= poorScore {
		t.Errorf("positive unmatched value should outscore negative: %d vs %d", richScore, poorScore)
	}
	if poorScore == 0 {
		t.Error("non-empty spec bag should never score 0")
	}
}

func TestScore_MatchedCountBonus(t *testing.T) {
	s := newTestScorer()
	traits := TasteTraits{TasteID: 12, HouseholdSize: 2, Priority: "tech", BudgetLevel: "medium"}

	features := map[string]string{
		"해상도":   "4K",
		"주사율":   "120Hz",
		"HDR":   "지원",
		"ThinQ": "지원",
		"화면크기":  "60",
	}
	product := domain.CandidateProduct{ProductID: 40, Price: 2_000_000, CommonFeatures: features}

	// Five matched features, all scoring at least 0.9, so both the max
	// bonus and the count bonus apply and the cap holds at 100.
	if got := s.Score(product, CategoryTV, traits); got != 100 {
		t.Errorf("got %d, want 100", got)
	}
}

func TestFloorScore(t *testing.T) {
	s := newTestScorer()

	tests := []struct {
		price  float64
		budget string
		want   int
	}{
		{600_000, "low", 30},      // price score 1.0
		{2_000_000, "low", 15},    // price score 0.5
		{30_000_000, "low", 10},   // price score ~0.03, floored
		{2_000_000, "medium", 30}, // inside band
	}
	for _, tc := range tests {
		if got := s.FloorScore(tc.price, tc.budget); got != tc.want {
			t.Errorf("price %v budget %s: got %d, want %d", tc.price, tc.budget, got, tc.want)
		}
	}
}

func TestScore_ZeroFeatureAvgUsesPriceOnly(t *testing.T) {
	s := newTestScorer()
	traits := TasteTraits{TasteID: 13, HouseholdSize: 2, BudgetLevel: "medium"}

	// Every value is a sentinel, so the weighted average collapses to 0
	// and the blend switches to the price-only form.
	product := domain.CandidateProduct{
		ProductID:      50,
		Price:          2_000_000,
		CommonFeatures: map[string]string{"용량": "nan", "에너지소비효율등급": ""},
	}

	if got := s.Score(product, CategoryRefrigerator, traits); got != 50 {
		t.Errorf("got %d, want 50", got)
	}
}

func ExampleScorer_Score() {
	s := NewScorer(NewBuilder(), DefaultConfig())
	product := domain.CandidateProduct{
		ProductID:      1,
		Price:          1_500_000,
		CommonFeatures: map[string]string{"용량": "410L"},
	}
	traits := TasteTraits{TasteID: 1, HouseholdSize: 4, Priority: "value", BudgetLevel: "medium"}

	fmt.Println(s.Score(product, CategoryRefrigerator, traits))
	// Output: 100
}
