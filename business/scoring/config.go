package scoring

// Canonical feature names. Raw spec keys from the catalog map into this
// vocabulary per category before any weighting happens.
const (
	FeatureCapacity    = "용량"
	FeatureScreenSize  = "화면크기"
	FeatureResolution  = "해상도"
	FeatureRefreshRate = "주사율"
	FeatureHDR         = "HDR"
	FeatureSmart       = "스마트기능"
	FeatureEnergyGrade = "에너지효율"
	FeatureCoolingMode = "냉각방식"
	FeatureCoolingPwr  = "냉방능력"
	FeatureCleanArea   = "청정면적"
	FeatureFilterFn    = "필터기능"
	FeatureFilterType  = "필터타입"
	FeatureNoise       = "소음"
	FeatureDesign      = "디자인"
	FeaturePrice       = "가격"
	FeaturePremium     = "프리미엄기능"
	FeatureValue       = "가성비"
	FeatureStyle       = "스타일"
	FeatureFunction    = "기능"
	FeaturePowerUse    = "전력소비"
	FeatureSize        = "크기"
	FeatureCleanFn     = "청정기능"
	FeaturePerf        = "성능"
	FeatureBasic       = "기본"
)

const (
	CategoryTV           = "TV"
	CategoryRefrigerator = "냉장고"
	CategoryLaundry      = "세탁"
	CategoryWasher       = "세탁기"
	CategoryAircon       = "에어컨"
	CategoryAirPurifier  = "공기청정기"
	CategoryVacuum       = "청소기"
)

// budgetRanges maps budget level to the ideal price interval in KRW.
var budgetRanges = map[string][2]float64{
	"low":     {0, 1_000_000},
	"medium":  {1_000_000, 3_000_000},
	"high":    {3_000_000, 7_000_000},
	"premium": {7_000_000, 15_000_000},
	"luxury":  {15_000_000, 50_000_000},
}

var defaultBudgetRange = [2]float64{1_000_000, 3_000_000}

// categoryPriorities lists canonical features per category, most
// important first. Base weights derive from the position in this list.
var categoryPriorities = map[string][]string{
	CategoryTV:           {FeatureResolution, FeatureScreenSize, FeatureRefreshRate, FeatureHDR, FeatureSmart},
	CategoryRefrigerator: {FeatureCapacity, FeatureEnergyGrade, FeatureCoolingMode, FeatureSmart},
	CategoryLaundry:      {FeatureCapacity, FeatureEnergyGrade, FeatureSmart, FeatureNoise},
	CategoryWasher:       {FeatureCapacity, FeatureEnergyGrade, FeatureSmart, FeatureNoise},
	CategoryAircon:       {FeatureCoolingPwr, FeatureEnergyGrade, FeatureFilterFn, FeatureSmart},
	CategoryAirPurifier:  {FeatureCleanArea, FeatureFilterType, FeatureSmart, FeatureNoise},
	CategoryVacuum:       {"청정세기", "필터", FeatureSmart, FeatureNoise},
}

// specKeyCanonical maps exact raw spec keys to canonical features, per
// category. Keys not found here fall back to substring matching against
// substringVocabulary.
var specKeyCanonical = map[string]map[string]string{
	CategoryTV: {
		"해상도":                     FeatureResolution,
		"화면 사이즈 (베젤 미포함)":         FeatureScreenSize,
		"화면 사이즈":                  FeatureScreenSize,
		"화면크기":                    FeatureScreenSize,
		"주사율":                     FeatureRefreshRate,
		"HDR (High Dynamic Range)": FeatureHDR,
		"HDR":                      FeatureHDR,
		"ThinQ":                    FeatureSmart,
		"ThinQ (Wi-Fi)":            FeatureSmart,
		"ThinQ(Wi-Fi)":             FeatureSmart,
		"Wi-Fi":                    FeatureSmart,
		"Bluetooth 지원":             FeatureSmart,
		"블루투스":                    FeatureSmart,
	},
	CategoryRefrigerator: {
		"냉장 용량 (L)":    FeatureCapacity,
		"냉동 용량 (L)":    FeatureCapacity,
		"전체 용량 (L)":    FeatureCapacity,
		"용량 (가용용량)(L)": FeatureCapacity,
		"용량":           FeatureCapacity,
		"에너지소비효율등급":    FeatureEnergyGrade,
		"에너지 소비효율등급":   FeatureEnergyGrade,
		"냉각방식":         FeatureCoolingMode,
		"냉각 방식":        FeatureCoolingMode,
		"ThinQ":        FeatureSmart,
		"Wi-Fi":        FeatureSmart,
	},
	CategoryLaundry: {
		"세탁 용량 (kg)": FeatureCapacity,
		"용량":         FeatureCapacity,
		"에너지소비효율등급":  FeatureEnergyGrade,
		"소음":         FeatureNoise,
		"ThinQ":      FeatureSmart,
		"Wi-Fi":      FeatureSmart,
	},
	CategoryWasher: {
		"세탁 용량 (kg)": FeatureCapacity,
		"용량":         FeatureCapacity,
		"에너지소비효율등급":  FeatureEnergyGrade,
		"소음":         FeatureNoise,
		"ThinQ":      FeatureSmart,
		"Wi-Fi":      FeatureSmart,
	},
	CategoryAircon: {
		"냉방능력(정격/최소)(W)": FeatureCoolingPwr,
		"표준사용면적 (㎡)":     FeatureCoolingPwr,
		"에너지소비효율등급":      FeatureEnergyGrade,
		"공기청정 필터":        FeatureFilterFn,
		"필터":             FeatureFilterFn,
		"ThinQ":          FeatureSmart,
		"Wi-Fi":          FeatureSmart,
	},
	CategoryAirPurifier: {
		"표준사용면적 (㎡)": FeatureCleanArea,
		"필터":         FeatureFilterType,
		"공기청정 필터":    FeatureFilterType,
		"ThinQ":      FeatureSmart,
		"Wi-Fi":      FeatureSmart,
	},
	CategoryVacuum: {
		"청정세기":  "청정세기",
		"필터":    "필터",
		"ThinQ": FeatureSmart,
		"Wi-Fi": FeatureSmart,
	},
}

// substringVocabulary drives the fallback match when an exact spec key
// is unknown. Order matters, the first canonical name found inside the
// raw key wins.
var substringVocabulary = []string{
	FeatureCapacity,
	FeatureEnergyGrade,
	FeatureSmart,
	FeatureNoise,
	"필터",
	FeatureResolution,
	FeatureScreenSize,
	"화면 사이즈",
	FeatureRefreshRate,
	FeatureHDR,
}

// fallbackWeights is returned when no candidate spec key maps to any
// priority feature of the category.
var fallbackWeights = map[string]float64{
	FeatureFunction:    0.30,
	FeaturePerf:        0.25,
	FeatureEnergyGrade: 0.20,
	FeatureDesign:      0.15,
	FeaturePrice:       0.10,
}

// Config bounds the blend and the diversity bonuses.
type Config struct {
	FeatureBlend float64
	PriceBlend   float64

	StdevBonusScale     float64
	StdevBonusCap       float64
	MaxFeatureBonus     float64
	MaxFeatureThreshold float64
	CountBonus          float64
	CountThreshold      int

	// MinScoreFloor tags zero-feature products with a price-derived
	// floor instead of a flat zero.
	MinScoreFloor bool
}

func DefaultConfig() Config {
	return Config{
		FeatureBlend:        0.9,
		PriceBlend:          0.1,
		StdevBonusScale:     0.15,
		StdevBonusCap:       0.05,
		MaxFeatureBonus:     0.03,
		MaxFeatureThreshold: 0.9,
		CountBonus:          0.02,
		CountThreshold:      5,
		MinScoreFloor:       true,
	}
}

// BudgetRange returns the ideal price interval for a budget level.
func BudgetRange(budgetLevel string) (float64, float64) {
	r, ok := budgetRanges[budgetLevel]
	if !ok {
		r = defaultBudgetRange
	}

	return r[0], r[1]
}
