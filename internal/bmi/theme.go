package bmi

import (
	"encoding/json"
	"strconv"
)

// Palette holds the ten shades 50, 100, 200 ... 900 in order
type Palette [10]string

// Shade returns the colour for a Tailwind-style step (50, 100, ..., 900)
func (p Palette) Shade(step int) (string, bool) {
	if step == 50 {
		return p[0], true
	}
	if step < 100 || step > 900 || step%100 != 0 {
		return "", false
	}
	return p[step/100], true
}

// MarshalJSON renders the palette keyed by shade step
func (p Palette) MarshalJSON() ([]byte, error) {
	shades := make(map[string]string, len(p))
	shades["50"] = p[0]
	for i := 1; i < len(p); i++ {
		shades[strconv.Itoa(i*100)] = p[i]
	}
	return json.Marshal(shades)
}

// Theme is the colour scheme that follows the user's weight band
type Theme struct {
	Primary    Palette `json:"primary"`
	Accent     Palette `json:"accent"`
	Gradient   string  `json:"gradient"`
	CardBg     string  `json:"cardBg"`
	CardBorder string  `json:"cardBorder"`
}

var (
	purple  = Palette{"#faf5ff", "#f3e8ff", "#e9d5ff", "#d8b4fe", "#c084fc", "#a855f7", "#9333ea", "#7c3aed", "#6b21a8", "#581c87"}
	fuchsia = Palette{"#fdf4ff", "#fae8ff", "#f5d0fe", "#f0abfc", "#e879f9", "#d946ef", "#c026d3", "#a21caf", "#86198f", "#701a75"}
	green   = Palette{"#f0fdf4", "#dcfce7", "#bbf7d0", "#86efac", "#4ade80", "#22c55e", "#16a34a", "#15803d", "#166534", "#14532d"}
	orange  = Palette{"#fff7ed", "#ffedd5", "#fed7aa", "#fdba74", "#fb923c", "#f97316", "#ea580c", "#c2410c", "#9a3412", "#7c2d12"}
	red     = Palette{"#fef2f2", "#fee2e2", "#fecaca", "#fca5a5", "#f87171", "#ef4444", "#dc2626", "#b91c1c", "#991b1b", "#7f1d1d"}
	pink    = Palette{"#fdf2f8", "#fce7f3", "#fbcfe8", "#f9a8d4", "#f472b6", "#ec4899", "#db2777", "#be185d", "#9d174d", "#831843"}
)

var themes = map[Category]Theme{
	CategoryUnderweight: {
		Primary:    purple,
		Accent:     fuchsia,
		Gradient:   "from-purple-500 to-purple-700",
		CardBg:     "bg-purple-50",
		CardBorder: "border-purple-200",
	},
	CategoryIdeal: {
		Primary:    green,
		Accent:     orange,
		Gradient:   "from-green-500 to-green-700",
		CardBg:     "bg-green-50",
		CardBorder: "border-green-200",
	},
	CategoryAbove: {
		Primary:    orange,
		Accent:     red,
		Gradient:   "from-orange-500 to-orange-700",
		CardBg:     "bg-orange-50",
		CardBorder: "border-orange-200",
	},
	CategoryOverweight: {
		Primary:    red,
		Accent:     pink,
		Gradient:   "from-red-500 to-red-700",
		CardBg:     "bg-red-50",
		CardBorder: "border-red-200",
	},
}

// ThemeForCategory returns the theme of a band. Unknown bands get the last one.
func ThemeForCategory(category Category) Theme {
	theme, ok := themes[category]
	if !ok {
		return themes[CategoryOverweight]
	}
	return theme
}

// ThemeForWeight selects the theme for a weight and height
func ThemeForWeight(weightKg, heightCm float64) Theme {
	return ThemeForCategory(CategoryFor(Calculate(weightKg, heightCm)))
}
