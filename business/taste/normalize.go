package taste

import (
	"fmt"

	"homeMatch/domain"
)

// Alias maps collapse legacy questionnaire values into the canonical
// enums used by the taste_config table.
var (
	vibeAliases = map[string]string{
		"modern":  domain.VibeModern,
		"cozy":    domain.VibeCozy,
		"natural": domain.VibeCozy,
		"pop":     domain.VibePop,
		"unique":  domain.VibePop,
		"luxury":  domain.VibeLuxury,
	}

	priorityAliases = map[string]string{
		"design":         domain.PriorityDesign,
		"tech":           domain.PriorityTech,
		"ai_smart":       domain.PriorityTech,
		"eco":            domain.PriorityEco,
		"energy":         domain.PriorityEco,
		"value":          domain.PriorityValue,
		"cost_effective": domain.PriorityValue,
	}

	budgetAliases = map[string]string{
		"low":      domain.BudgetLow,
		"budget":   domain.BudgetLow,
		"medium":   domain.BudgetMedium,
		"standard": domain.BudgetMedium,
		"high":     domain.BudgetHigh,
		"premium":  domain.BudgetHigh,
		"luxury":   domain.BudgetLuxury,
	}
)

// NormalizeAnswer collapses aliases and clamps the household size so
// every field of the result is canonical. A value that stays
// unrecognized after aliasing fails with ErrMalformedAnswer.
func NormalizeAnswer(answer domain.OnboardingAnswer) (domain.TasteProfile, error) {
	vibe, ok := vibeAliases[answer.Vibe]
	if !ok {
		return domain.TasteProfile{}, fmt.Errorf("%w: vibe %q", domain.ErrMalformedAnswer, answer.Vibe)
	}

	if len(answer.Priority) == 0 {
		return domain.TasteProfile{}, fmt.Errorf("%w: priority missing", domain.ErrMalformedAnswer)
	}
	priority, ok := priorityAliases[answer.Priority[0]]
	if !ok {
		return domain.TasteProfile{}, fmt.Errorf("%w: priority %q", domain.ErrMalformedAnswer, answer.Priority[0])
	}

	budget, ok := budgetAliases[answer.BudgetLevel]
	if !ok {
		return domain.TasteProfile{}, fmt.Errorf("%w: budget_level %q", domain.ErrMalformedAnswer, answer.BudgetLevel)
	}

	household := answer.HouseholdSize
	if household < 1 {
		household = 1
	} else if household > 5 {
		household = 5
	}

	return domain.TasteProfile{
		Vibe:          vibe,
		HouseholdSize: household,
		HasPet:        answer.HasPet,
		Priority:      priority,
		BudgetLevel:   budget,
	}, nil
}
