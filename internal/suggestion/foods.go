package suggestion

import (
	"math"

	"github.com/vcscsvcscs/fitflow/apps/backend/pkg/model"
)

var mealTypeFoods = map[model.MealType][]model.Food{
	model.MealBreakfast: {
		{Name: "Ovos mexidos", Quantity: 2, Unit: "un", Calories: 140, Protein: 12, Carbs: 1, Fat: 10},
		{Name: "Pão integral", Quantity: 50, Unit: "g", Calories: 120, Protein: 4, Carbs: 22, Fat: 1},
		{Name: "Fruta", Quantity: 80, Unit: "g", Calories: 50, Protein: 0.5, Carbs: 12, Fat: 0.2},
		{Name: "Iogurte natural", Quantity: 100, Unit: "g", Calories: 60, Protein: 4, Carbs: 6, Fat: 2},
	},
	model.MealLunch: {
		{Name: "Arroz integral", Quantity: 100, Unit: "g", Calories: 111, Protein: 2.6, Carbs: 23, Fat: 0.9},
		{Name: "Feijão", Quantity: 100, Unit: "g", Calories: 76, Protein: 4.7, Carbs: 14, Fat: 0.5},
		{Name: "Frango grelhado", Quantity: 120, Unit: "g", Calories: 132, Protein: 26, Carbs: 0, Fat: 2.7},
		{Name: "Salada", Quantity: 80, Unit: "g", Calories: 20, Protein: 1, Carbs: 4, Fat: 0.2},
	},
	model.MealSnack: {
		{Name: "Banana", Quantity: 80, Unit: "g", Calories: 70, Protein: 0.8, Carbs: 18, Fat: 0.2},
		{Name: "Barra de cereal", Quantity: 30, Unit: "g", Calories: 110, Protein: 2, Carbs: 20, Fat: 2},
		{Name: "Iogurte", Quantity: 100, Unit: "g", Calories: 60, Protein: 4, Carbs: 6, Fat: 2},
	},
	model.MealDinner: {
		{Name: "Peixe grelhado", Quantity: 120, Unit: "g", Calories: 110, Protein: 22, Carbs: 0, Fat: 2},
		{Name: "Legumes cozidos", Quantity: 100, Unit: "g", Calories: 40, Protein: 2, Carbs: 8, Fat: 0.3},
		{Name: "Batata doce", Quantity: 80, Unit: "g", Calories: 68, Protein: 1, Carbs: 16, Fat: 0.1},
	},
}

// SuggestFoodsForMealType returns the static food list for a meal type.
// The profile only gates the result; nil or an unknown meal type gives an empty list.
func SuggestFoodsForMealType(profile *model.UserProfile, mealType model.MealType) []model.Food {
	if profile == nil {
		return []model.Food{}
	}
	foods, ok := mealTypeFoods[mealType]
	if !ok {
		return []model.Food{}
	}
	out := make([]model.Food, len(foods))
	copy(out, foods)
	return out
}

type macroAdjustment struct {
	protein, carbs, fat float64
}

var bodyTypeAdjustments = map[model.BodyTypeGoal]macroAdjustment{
	model.BodyTypeAthletic: {1.2, 1.1, 0.9},
	model.BodyTypeLean:     {1.3, 0.8, 0.7},
	model.BodyTypeMuscular: {1.4, 1.2, 1.0},
	model.BodyTypeToned:    {1.1, 1.0, 0.9},
	model.BodyTypeFlexible: {1.0, 1.1, 0.8},
}

var (
	chickenBreast = model.Food{Name: "Peito de Frango", Quantity: 150, Unit: "g", Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6}
	brownRice     = model.Food{Name: "Arroz Integral", Quantity: 100, Unit: "g", Calories: 111, Protein: 2.6, Carbs: 23, Fat: 0.9}
	broccoli      = model.Food{Name: "Brócolis", Quantity: 100, Unit: "g", Calories: 34, Protein: 2.8, Carbs: 7, Fat: 0.4}
	boiledEgg     = model.Food{Name: "Ovo Cozido", Quantity: 50, Unit: "g", Calories: 78, Protein: 6.3, Carbs: 0.6, Fat: 5.3}
	tofu          = model.Food{Name: "Tofu", Quantity: 150, Unit: "g", Calories: 144, Protein: 18, Carbs: 3, Fat: 8}
	quinoa        = model.Food{Name: "Quinoa", Quantity: 100, Unit: "g", Calories: 120, Protein: 4.4, Carbs: 22, Fat: 1.9}
	lentils       = model.Food{Name: "Lentilhas", Quantity: 100, Unit: "g", Calories: 116, Protein: 9, Carbs: 20, Fat: 0.4}
	amaranth      = model.Food{Name: "Amaranto", Quantity: 100, Unit: "g", Calories: 103, Protein: 4, Carbs: 19, Fat: 1.6}
	avocado       = model.Food{Name: "Abacate", Quantity: 100, Unit: "g", Calories: 160, Protein: 2, Carbs: 9, Fat: 15}
	eggs          = model.Food{Name: "Ovos", Quantity: 100, Unit: "g", Calories: 155, Protein: 13, Carbs: 1.1, Fat: 11}
	oliveOil      = model.Food{Name: "Azeite de Oliva", Quantity: 15, Unit: "ml", Calories: 135, Protein: 0, Carbs: 0, Fat: 15}
	sweetPotato   = model.Food{Name: "Batata Doce", Quantity: 100, Unit: "g", Calories: 86, Protein: 1.6, Carbs: 20, Fat: 0.1}
	spinach       = model.Food{Name: "Espinafre", Quantity: 100, Unit: "g", Calories: 23, Protein: 2.9, Carbs: 3.6, Fat: 0.4}
	salmonLarge   = model.Food{Name: "Salmão", Quantity: 200, Unit: "g", Calories: 412, Protein: 44, Carbs: 0, Fat: 24}
	sweetPotatoXL = model.Food{Name: "Batata Doce", Quantity: 150, Unit: "g", Calories: 135, Protein: 3, Carbs: 31, Fat: 0.2}
	oats          = model.Food{Name: "Aveia", Quantity: 100, Unit: "g", Calories: 389, Protein: 17, Carbs: 66, Fat: 6.9}
	banana        = model.Food{Name: "Banana", Quantity: 120, Unit: "g", Calories: 105, Protein: 1.3, Carbs: 27, Fat: 0.4}
	tuna          = model.Food{Name: "Atum", Quantity: 150, Unit: "g", Calories: 184, Protein: 33, Carbs: 0, Fat: 4.5}
	coconutYogurt = model.Food{Name: "Iogurte de Coco", Quantity: 170, Unit: "g", Calories: 100, Protein: 17, Carbs: 6, Fat: 0.5}
)

var goalDietFoods = map[model.Goal]map[model.DietaryPreference][]model.Food{
	model.GoalLose: {
		model.DietNone:       {chickenBreast, brownRice, broccoli, boiledEgg},
		model.DietVegetarian: {tofu, quinoa, lentils, {Name: "Chia", Quantity: 30, Unit: "g", Calories: 138, Protein: 4.7, Carbs: 12, Fat: 8.6}},
		model.DietVegan: {
			{Name: "Tempeh", Quantity: 150, Unit: "g", Calories: 225, Protein: 24, Carbs: 9, Fat: 12},
			amaranth,
			{Name: "Sementes de Abóbora", Quantity: 50, Unit: "g", Calories: 267, Protein: 14, Carbs: 4, Fat: 23},
			{Name: "Espirulina", Quantity: 10, Unit: "g", Calories: 26, Protein: 5.7, Carbs: 2.4, Fat: 0.4},
		},
		model.DietGlutenFree: {
			{Name: "Frango Orgânico", Quantity: 150, Unit: "g", Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6},
			{Name: "Arroz Selvagem", Quantity: 100, Unit: "g", Calories: 101, Protein: 4, Carbs: 21, Fat: 0.3},
			sweetPotato,
			avocado,
		},
		model.DietLactoseFree: {
			{Name: "Frango", Quantity: 150, Unit: "g", Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6},
			brownRice, broccoli, boiledEgg,
		},
		model.DietKeto: {
			{Name: "Salmão", Quantity: 150, Unit: "g", Calories: 309, Protein: 46.5, Carbs: 0, Fat: 13.5},
			avocado, eggs, oliveOil,
		},
		model.DietPaleo: {
			{Name: "Carne Bovina", Quantity: 150, Unit: "g", Calories: 225, Protein: 45, Carbs: 0, Fat: 4.5},
			sweetPotato, spinach,
			{Name: "Nozes", Quantity: 30, Unit: "g", Calories: 180, Protein: 4.5, Carbs: 3, Fat: 18},
		},
	},
	model.GoalGain: {
		model.DietNone: {salmonLarge, sweetPotatoXL, oats, banana},
		model.DietVegetarian: {
			{Name: "Seitan", Quantity: 150, Unit: "g", Calories: 225, Protein: 45, Carbs: 6, Fat: 1.5},
			{Name: "Grão-de-bico", Quantity: 150, Unit: "g", Calories: 246, Protein: 15, Carbs: 41, Fat: 4.3},
			oats,
			{Name: "Manteiga de Amendoim", Quantity: 50, Unit: "g", Calories: 294, Protein: 12, Carbs: 8, Fat: 25},
		},
		model.DietVegan: {
			{Name: "Lentilhas Vermelhas", Quantity: 150, Unit: "g", Calories: 174, Protein: 13.5, Carbs: 30, Fat: 0.6},
			amaranth,
			{Name: "Sementes de Chia", Quantity: 50, Unit: "g", Calories: 230, Protein: 8, Carbs: 20, Fat: 14},
			{Name: "Leite de Coco", Quantity: 100, Unit: "ml", Calories: 230, Protein: 2.3, Carbs: 3.3, Fat: 24},
		},
		model.DietGlutenFree: {
			salmonLarge, sweetPotatoXL,
			{Name: "Aveia Sem Glúten", Quantity: 100, Unit: "g", Calories: 389, Protein: 17, Carbs: 66, Fat: 6.9},
			banana,
		},
		model.DietLactoseFree: {salmonLarge, sweetPotatoXL, oats, banana},
		model.DietKeto: {
			salmonLarge,
			{Name: "Abacate", Quantity: 150, Unit: "g", Calories: 240, Protein: 3, Carbs: 13.5, Fat: 22.5},
			{Name: "Ovos", Quantity: 150, Unit: "g", Calories: 232.5, Protein: 19.5, Carbs: 1.65, Fat: 16.5},
			{Name: "Manteiga Ghee", Quantity: 30, Unit: "g", Calories: 270, Protein: 0, Carbs: 0, Fat: 30},
		},
		model.DietPaleo: {salmonLarge, sweetPotatoXL, oats, banana},
	},
	model.GoalMaintain: {
		model.DietNone: {
			tuna, quinoa, spinach,
			{Name: "Iogurte Grego", Quantity: 170, Unit: "g", Calories: 100, Protein: 17, Carbs: 6, Fat: 0.5},
		},
		model.DietVegetarian: {
			eggs, quinoa,
			{Name: "Feijão Preto", Quantity: 100, Unit: "g", Calories: 132, Protein: 8.9, Carbs: 23, Fat: 0.5},
			{Name: "Iogurte Natural", Quantity: 170, Unit: "g", Calories: 100, Protein: 17, Carbs: 6, Fat: 0.5},
		},
		model.DietVegan: {
			tofu, amaranth, lentils,
			{Name: "Leite de Amêndoas", Quantity: 100, Unit: "ml", Calories: 17, Protein: 0.6, Carbs: 0.6, Fat: 1.5},
		},
		model.DietGlutenFree:  {tuna, quinoa, spinach, coconutYogurt},
		model.DietLactoseFree: {tuna, quinoa, spinach, coconutYogurt},
		model.DietKeto:        {tuna, avocado, eggs, oliveOil},
		model.DietPaleo:       {tuna, quinoa, spinach, coconutYogurt},
	},
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// SuggestMealFoods proposes four foods for the profile's goal and dietary
// preference, with macros scaled for the body-type goal
func SuggestMealFoods(profile *model.UserProfile) []model.Food {
	if profile == nil {
		return []model.Food{}
	}

	adjustment, ok := bodyTypeAdjustments[profile.BodyTypeGoal]
	if !ok {
		adjustment = bodyTypeAdjustments[model.BodyTypeToned]
	}

	byPreference, ok := goalDietFoods[profile.Goal]
	if !ok {
		byPreference = goalDietFoods[model.GoalMaintain]
	}

	base, ok := byPreference[profile.DietaryPreferences]
	if !ok {
		base = byPreference[model.DietNone]
	}

	calorieFactor := adjustment.protein*0.4 + adjustment.carbs*0.4 + adjustment.fat*0.2

	out := make([]model.Food, len(base))
	for i, food := range base {
		food.Protein = roundTenth(food.Protein * adjustment.protein)
		food.Carbs = roundTenth(food.Carbs * adjustment.carbs)
		food.Fat = roundTenth(food.Fat * adjustment.fat)
		food.Calories = math.Round(food.Calories * calorieFactor)
		out[i] = food
	}
	return out
}
