package domain

import (
	"encoding/json"
	"fmt"
)

// Canonical enum values for a normalized onboarding answer.
const (
	VibeModern = "modern"
	VibeCozy   = "cozy"
	VibePop    = "pop"
	VibeLuxury = "luxury"

	PriorityDesign = "design"
	PriorityTech   = "tech"
	PriorityEco    = "eco"
	PriorityValue  = "value"

	BudgetLow    = "low"
	BudgetMedium = "medium"
	BudgetHigh   = "high"
	BudgetLuxury = "luxury"
)

// FlexStrings accepts either a JSON string or an array of strings.
// Questionnaire exports are inconsistent about list-valued answers.
type FlexStrings []string

func (f *FlexStrings) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*f = nil
		} else {
			*f = FlexStrings{single}
		}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected string or array of strings: %w", err)
	}
	*f = FlexStrings(many)

	return nil
}

// OnboardingAnswer is a completed questionnaire record as received from
// the onboarding service. Fields are raw; use taste.NormalizeAnswer to
// obtain a canonical profile before classification.
type OnboardingAnswer struct {
	Vibe          string      `json:"vibe" validate:"required"`
	HouseholdSize int         `json:"household_size" validate:"required,min=1"`
	HasPet        bool        `json:"has_pet"`
	HousingType   string      `json:"housing_type"`
	Pyung         int         `json:"pyung"`
	MainSpace     FlexStrings `json:"main_space"`
	Cooking       string      `json:"cooking"`
	Laundry       string      `json:"laundry"`
	Media         string      `json:"media"`
	Priority      FlexStrings `json:"priority" validate:"required"`
	BudgetLevel   string      `json:"budget_level" validate:"required"`
}

// TasteProfile is an OnboardingAnswer after alias normalization. Every
// field holds a canonical enum value and household size is clamped to
// the classification range [1, 5].
type TasteProfile struct {
	Vibe          string
	HouseholdSize int
	HasPet        bool
	Priority      string
	BudgetLevel   string
}
