package taste

import (
	"context"
	"errors"
	"sort"
	"testing"

	"homeMatch/domain"
)

// fakeTasteRepo serves archetypes from memory using the same matching
// rules as the SQL implementation.
type fakeTasteRepo struct {
	rows []domain.TasteConfig
}

func (f *fakeTasteRepo) FindByTraits(_ context.Context, p domain.TasteProfile) (*domain.TasteConfig, error) {
	for i := range f.rows {
		r := &f.rows[i]
		if r.IsActive && r.Traits() == p {
			return r, nil
		}
	}

	return nil, domain.ErrTasteNotFound
}

func (f *fakeTasteRepo) FindByTraitsIgnoringPriority(_ context.Context, p domain.TasteProfile) (*domain.TasteConfig, error) {
	matches := make([]*domain.TasteConfig, 0)
	for i := range f.rows {
		r := &f.rows[i]
		if r.IsActive &&
			r.RepresentativeVibe == p.Vibe &&
			r.RepresentativeHousehold == p.HouseholdSize &&
			r.RepresentativeHasPet == p.HasPet &&
			r.RepresentativeBudgetLevel == p.BudgetLevel {
			matches = append(matches, r)
		}
	}
	if len(matches) == 0 {
		return nil, domain.ErrTasteNotFound
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].TasteID < matches[j].TasteID })

	return matches[0], nil
}

func (f *fakeTasteRepo) FindAllActive(_ context.Context) ([]domain.TasteConfig, error) {
	active := make([]domain.TasteConfig, 0, len(f.rows))
	for _, r := range f.rows {
		if r.IsActive {
			active = append(active, r)
		}
	}

	return active, nil
}

func (f *fakeTasteRepo) FindByID(_ context.Context, tasteID uint64) (*domain.TasteConfig, error) {
	for i := range f.rows {
		if f.rows[i].TasteID == tasteID {
			return &f.rows[i], nil
		}
	}

	return nil, domain.ErrTasteNotFound
}

func archetype(id uint64, vibe string, household int, pet bool, priority, budget string) domain.TasteConfig {
	return domain.TasteConfig{
		TasteID:                   id,
		RepresentativeVibe:        vibe,
		RepresentativeHousehold:   household,
		RepresentativeHasPet:      pet,
		RepresentativePriority:    priority,
		RepresentativeBudgetLevel: budget,
		IsActive:                  true,
	}
}

func answer(vibe string, household int, pet bool, priority, budget string) domain.OnboardingAnswer {
	return domain.OnboardingAnswer{
		Vibe:          vibe,
		HouseholdSize: household,
		HasPet:        pet,
		Priority:      domain.FlexStrings{priority},
		BudgetLevel:   budget,
	}
}

func TestClassify_ExactMatch(t *testing.T) {
	repo := &fakeTasteRepo{rows: []domain.TasteConfig{
		archetype(1, "modern", 2, false, "tech", "medium"),
		archetype(2, "modern", 2, false, "design", "medium"),
	}}
	svc := NewService(repo)

	got, err := svc.Classify(context.Background(), answer("modern", 2, false, "tech", "medium"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TasteID != 1 {
		t.Errorf("got taste %d, want 1", got.TasteID)
	}
}

func TestClassify_ExactMatchNeverCrossesAttributes(t *testing.T) {
	repo := &fakeTasteRepo{rows: []domain.TasteConfig{
		archetype(1, "modern", 2, false, "tech", "medium"),
	}}
	svc := NewService(repo)

	// Same answer except has_pet must not reach the exact row.
	got, err := svc.Classify(context.Background(), answer("modern", 2, true, "tech", "medium"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Traits() == (domain.TasteProfile{Vibe: "modern", HouseholdSize: 2, HasPet: true, Priority: "tech", BudgetLevel: "medium"}) {
		t.Error("no row matches all five attributes, exact path must not fire")
	}
}

func TestClassify_PriorityFallback(t *testing.T) {
	repo := &fakeTasteRepo{rows: []domain.TasteConfig{
		archetype(4, "modern", 2, false, "tech", "medium"),
		archetype(9, "modern", 2, false, "eco", "medium"),
	}}
	svc := NewService(repo)

	got, err := svc.Classify(context.Background(), answer("modern", 2, false, "design", "medium"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TasteID != 4 {
		t.Errorf("got taste %d, want 4 (lowest id among priority-agnostic matches)", got.TasteID)
	}
}

func TestClassify_SimilarityFallback(t *testing.T) {
	repo := &fakeTasteRepo{rows: []domain.TasteConfig{
		archetype(10, "cozy", 4, false, "eco", "low"),
		archetype(11, "modern", 3, false, "tech", "high"),
		archetype(12, "modern", 5, true, "value", "luxury"),
	}}
	svc := NewService(repo)

	// vibe+household+priority match row 11: 30+20+25 = 75.
	got, err := svc.Classify(context.Background(), answer("modern", 2, false, "tech", "medium"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TasteID != 11 {
		t.Errorf("got taste %d, want 11", got.TasteID)
	}
}

func TestClassify_SimilarityTieBreaksOnLowestID(t *testing.T) {
	repo := &fakeTasteRepo{rows: []domain.TasteConfig{
		archetype(22, "modern", 2, true, "eco", "low"),
		archetype(21, "modern", 2, true, "eco", "low"),
	}}
	svc := NewService(repo)

	got, err := svc.Classify(context.Background(), answer("modern", 2, false, "design", "luxury"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TasteID != 21 {
		t.Errorf("got taste %d, want 21", got.TasteID)
	}
}

func TestClassify_ZeroSimilarityUsesLowestActiveID(t *testing.T) {
	repo := &fakeTasteRepo{rows: []domain.TasteConfig{
		archetype(31, "cozy", 5, true, "eco", "low"),
		archetype(30, "pop", 5, true, "design", "luxury"),
	}}
	svc := NewService(repo)

	// Nothing overlaps: modern/1/value/high scores 0 against both rows.
	got, err := svc.Classify(context.Background(), answer("modern", 1, false, "value", "high"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TasteID != 30 {
		t.Errorf("got taste %d, want 30", got.TasteID)
	}
}

func TestClassify_EmptyTable(t *testing.T) {
	svc := NewService(&fakeTasteRepo{})

	_, err := svc.Classify(context.Background(), answer("modern", 2, false, "tech", "medium"))
	if !errors.Is(err, domain.ErrNoArchetype) {
		t.Errorf("got %v, want ErrNoArchetype", err)
	}
}

func TestClassify_MalformedAnswerSkipsLookup(t *testing.T) {
	svc := NewService(&fakeTasteRepo{rows: []domain.TasteConfig{
		archetype(1, "modern", 2, false, "tech", "medium"),
	}})

	_, err := svc.Classify(context.Background(), answer("brutalist", 2, false, "tech", "medium"))
	if !errors.Is(err, domain.ErrMalformedAnswer) {
		t.Errorf("got %v, want ErrMalformedAnswer", err)
	}
}

func TestClassify_DeterministicAcrossAliases(t *testing.T) {
	repo := &fakeTasteRepo{rows: []domain.TasteConfig{
		archetype(7, "cozy", 3, true, "eco", "medium"),
	}}
	svc := NewService(repo)

	first, err := svc.Classify(context.Background(), answer("natural", 3, true, "energy", "standard"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Classify(context.Background(), answer("cozy", 3, true, "eco", "medium"))
	if err != nil {
		t.Fatal(err)
	}
	if first.TasteID != second.TasteID {
		t.Errorf("aliased answers classified differently: %d vs %d", first.TasteID, second.TasteID)
	}
}

func TestSelectedCategories_RemovesIllSuited(t *testing.T) {
	cfg := domain.TasteConfig{
		RecommendedCategories: []string{"TV", "냉장고", "에어컨", "세탁기"},
		IllSuitedCategories:   []string{"에어컨"},
	}

	got := cfg.SelectedCategories()
	want := []string{"TV", "냉장고", "세탁기"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q, want %q (order must be preserved)", i, got[i], want[i])
		}
	}
}
