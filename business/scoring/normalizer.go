package scoring

import (
	"regexp"
	"strconv"
	"strings"
)

// Range is a closed numeric interval for one canonical feature.
type Range struct {
	Lo float64
	Hi float64
}

var numberPattern = regexp.MustCompile(`[\d.]+`)

// NormalizeSpecValue converts one raw spec value into a sub-score in
// [0.0, 1.0]. The dispatch order is fixed: empty sentinel, numeric
// branches, then text branches. Unparseable values score 0.3 so one
// bad row never sinks a product.
func NormalizeSpecValue(specKey, specValue, canonicalFeature string, idealRange *Range, householdSize int, category string) float64 {
	value := strings.TrimSpace(specValue)
	if value == "" || strings.EqualFold(value, "nan") {
		return 0.0
	}

	if raw := numberPattern.FindString(value); raw != "" {
		num, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0.3
		}

		return clamp01(scoreNumeric(specKey, value, num, idealRange, householdSize, category))
	}

	return clamp01(scoreText(specKey, value, canonicalFeature))
}

func scoreNumeric(specKey, value string, num float64, idealRange *Range, householdSize int, category string) float64 {
	if idealRange != nil {
		switch {
		case idealRange.Lo <= num && num <= idealRange.Hi:
			return 1.0
		case num < idealRange.Lo:
			return max03(num / idealRange.Lo)
		default:
			return max03(idealRange.Hi / num)
		}
	}

	if strings.Contains(value, "등급") || strings.Contains(strings.ToLower(value), "grade") {
		switch num {
		case 1:
			return 1.0
		case 2:
			return 0.8
		case 3:
			return 0.6
		default:
			return 0.4
		}
	}

	if strings.Contains(specKey, "용량") || strings.Contains(specKey, "크기") || strings.Contains(specKey, "사이즈") {
		switch category {
		case CategoryRefrigerator, CategoryLaundry, CategoryWasher:
			return capacityScore(num, householdSize)
		case CategoryTV:
			return screenSizeScore(num, householdSize)
		}
	}

	if strings.Contains(specKey, "해상도") {
		return resolutionScore(value)
	}

	if strings.Contains(specKey, "주사율") {
		return refreshRateScore(num)
	}

	return 0.5
}

// capacityScore compares against household size x 100 as the ideal.
func capacityScore(num float64, householdSize int) float64 {
	ideal := float64(householdSize) * 100
	diff := abs(num-ideal) / ideal
	if diff < 0.2 {
		return 1.0
	}

	return maxf(0.5, 1.0-diff/2)
}

func screenSizeScore(num float64, householdSize int) float64 {
	var ideal float64
	switch {
	case householdSize == 1:
		ideal = 50
	case householdSize == 2:
		ideal = 60
	case householdSize <= 4:
		ideal = 70
	default:
		ideal = 80
	}

	ratio := abs(num-ideal) / ideal
	switch {
	case ratio < 0.1:
		return 1.0
	case ratio < 0.2:
		return 0.9
	case ratio < 0.3:
		return 0.8
	case ratio < 0.5:
		return 0.7
	default:
		return maxf(0.5, 0.7-ratio*0.3)
	}
}

func resolutionScore(value string) float64 {
	upper := strings.ToUpper(value)
	switch {
	case strings.Contains(upper, "4K"), strings.Contains(upper, "UHD"), strings.Contains(upper, "3840"):
		return 1.0
	case strings.Contains(upper, "FULL HD"), strings.Contains(upper, "FHD"), strings.Contains(upper, "1920"):
		return 0.8
	case strings.Contains(upper, "HD"), strings.Contains(upper, "1366"):
		return 0.6
	default:
		return 0.5
	}
}

func refreshRateScore(num float64) float64 {
	switch {
	case num >= 120:
		return 1.0
	case num >= 60:
		return 0.8
	case num >= 30:
		return 0.6
	default:
		return 0.4
	}
}

var (
	positiveTokens = []string{"예", "있음", "지원", "가능", "o", "y", "yes", "true", "○"}
	hedgedTokens   = []string{"부분", "일부", "제한"}
	negativeTokens = []string{"아니오", "없음", "미지원", "x", "n", "no", "불가능"}
)

func scoreText(specKey, value, canonicalFeature string) float64 {
	lower := strings.ToLower(value)

	if strings.Contains(canonicalFeature, "스마트") || strings.Contains(specKey, "ThinQ") || strings.Contains(specKey, "Wi-Fi") {
		switch {
		case containsAnyToken(lower, positiveTokens):
			return 1.0
		case containsAnyToken(lower, hedgedTokens):
			return 0.6
		default:
			return 0.0
		}
	}

	if strings.Contains(canonicalFeature, "필터") {
		switch {
		case strings.Contains(lower, "헤파"), strings.Contains(strings.ToUpper(value), "HEPA"):
			return 1.0
		case strings.Contains(lower, "필터"):
			return 0.7
		default:
			return 0.3
		}
	}

	if containsAnyToken(lower, positiveTokens) {
		switch {
		case strings.Contains(lower, "완전"), strings.Contains(lower, "전체"), strings.Contains(lower, "모든"):
			return 1.0
		case strings.Contains(lower, "부분"), strings.Contains(lower, "일부"):
			return 0.8
		default:
			return 0.9
		}
	}

	if containsAnyToken(lower, negativeTokens) {
		return 0.2
	}

	// Unknown but present values still differentiate products a little.
	switch n := len([]rune(lower)); {
	case n > 10:
		return 0.6
	case n > 5:
		return 0.5
	default:
		return 0.4
	}
}

// containsAnyToken does substring matching for multi-rune tokens but
// exact matching for single letters, so "no" never matches "o".
func containsAnyToken(lower string, tokens []string) bool {
	for _, tok := range tokens {
		if len([]rune(tok)) == 1 && len(tok) == 1 {
			if lower == tok {
				return true
			}
			continue
		}
		if strings.Contains(lower, tok) {
			return true
		}
	}

	return false
}

// PriceScore compares a product price against the ideal interval for
// the budget level. Inside the band is 1.0, cheaper degrades gently,
// pricier degrades proportionally.
func PriceScore(price float64, budgetLevel string) float64 {
	if price <= 0 {
		return 0.0
	}

	lo, hi := BudgetRange(budgetLevel)
	switch {
	case lo <= price && price <= hi:
		return 1.0
	case price < lo:
		return maxf(0.7, price/lo)
	default:
		return maxf(0.0, hi/price)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}

	return v
}

func max03(v float64) float64 {
	return maxf(0.3, v)
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}

	return b
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}
