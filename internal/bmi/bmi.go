// Package bmi computes body-mass index, its weight band and the UI theme
// derived from that band.
package bmi

// Category is one of the four weight bands
type Category string

const (
	CategoryUnderweight Category = "abaixo"
	CategoryIdeal       Category = "ideal"
	CategoryAbove       Category = "acima"
	CategoryOverweight  Category = "sobrepeso"
)

// Band boundaries; each lower bound is inclusive.
const (
	idealLowerBound      = 18.5
	aboveLowerBound      = 25.0
	overweightLowerBound = 30.0
)

// WeightCategory describes a band for display
type WeightCategory struct {
	Category    Category `json:"category"`
	Label       string   `json:"label"`
	Color       string   `json:"color"`
	BgColor     string   `json:"bgColor"`
	BorderColor string   `json:"borderColor"`
}

var weightCategories = map[Category]WeightCategory{
	CategoryUnderweight: {
		Category:    CategoryUnderweight,
		Label:       "Abaixo do Peso",
		Color:       "text-purple-600",
		BgColor:     "bg-purple-50",
		BorderColor: "border-purple-200",
	},
	CategoryIdeal: {
		Category:    CategoryIdeal,
		Label:       "Peso Ideal",
		Color:       "text-green-600",
		BgColor:     "bg-green-50",
		BorderColor: "border-green-200",
	},
	CategoryAbove: {
		Category:    CategoryAbove,
		Label:       "Acima do Peso",
		Color:       "text-orange-600",
		BgColor:     "bg-orange-50",
		BorderColor: "border-orange-200",
	},
	CategoryOverweight: {
		Category:    CategoryOverweight,
		Label:       "Sobrepeso",
		Color:       "text-red-600",
		BgColor:     "bg-red-50",
		BorderColor: "border-red-200",
	},
}

var descriptions = map[Category]string{
	CategoryUnderweight: "Seu IMC indica que você está abaixo do peso ideal. Considere consultar um nutricionista para um plano alimentar adequado.",
	CategoryIdeal:       "Parabéns! Seu IMC está na faixa considerada saudável. Continue mantendo hábitos saudáveis.",
	CategoryAbove:       "Seu IMC indica que você está acima do peso ideal. Foque em exercícios regulares e alimentação equilibrada.",
	CategoryOverweight:  "Seu IMC indica sobrepeso. Recomendamos consultar um profissional de saúde para orientações personalizadas.",
}

// Calculate returns weight / (height in metres)^2.
// Inputs are not validated: a zero height yields +Inf or NaN.
func Calculate(weightKg, heightCm float64) float64 {
	heightM := heightCm / 100
	return weightKg / (heightM * heightM)
}

// CategoryFor maps a BMI value to its band. NaN lands in the last band.
func CategoryFor(value float64) Category {
	switch {
	case value < idealLowerBound:
		return CategoryUnderweight
	case value >= idealLowerBound && value < aboveLowerBound:
		return CategoryIdeal
	case value >= aboveLowerBound && value < overweightLowerBound:
		return CategoryAbove
	default:
		return CategoryOverweight
	}
}

// Classify returns the display band for a weight and height
func Classify(weightKg, heightCm float64) WeightCategory {
	return weightCategories[CategoryFor(Calculate(weightKg, heightCm))]
}

// Describe returns the fixed explanatory sentence for a BMI value
func Describe(value float64) string {
	return descriptions[CategoryFor(value)]
}
