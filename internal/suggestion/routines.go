package suggestion

import "github.com/vcscsvcscs/fitflow/apps/backend/pkg/model"

// Weekday labels indexed by time.Weekday
var weekdayLabels = [7]string{"Domingo", "Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado"}

// RoutineDay is one day of a gym split
type RoutineDay struct {
	Day       string
	Focus     string
	Exercises []string
}

// Routine is a weekly split; the first entry doubles as the fallback day
type Routine []RoutineDay

type routineKey struct {
	gender model.Gender
	goal   model.Goal
}

var routines = map[routineKey]Routine{
	{model.GenderMale, model.GoalGain}: {
		{"Segunda", "Peito e Tríceps", []string{"Supino reto", "Supino inclinado", "Crossover", "Tríceps pulley", "Mergulho"}},
		{"Terça", "Costas e Bíceps", []string{"Puxada frente", "Remada baixa", "Remada unilateral", "Rosca direta", "Rosca alternada"}},
		{"Quarta", "Pernas completo", []string{"Agachamento", "Leg press", "Cadeira extensora", "Cadeira flexora", "Panturrilha"}},
		{"Quinta", "Ombro e Abdômen", []string{"Desenvolvimento", "Elevação lateral", "Elevação frontal", "Abdominal", "Prancha"}},
		{"Sexta", "Peito e Costas", []string{"Supino reto", "Puxada frente", "Remada curvada", "Crossover", "Tríceps banco"}},
		{"Sábado", "Pernas e Abdômen", []string{"Agachamento", "Leg press", "Abdominal", "Prancha", "Panturrilha"}},
		{"Domingo", "Descanso ou cardio leve", []string{"Caminhada", "Bicicleta", "Alongamento"}},
	},
	{model.GenderMale, model.GoalMaintain}: {
		{"Segunda", "Full Body", []string{"Supino reto", "Agachamento", "Remada baixa", "Desenvolvimento", "Abdominal"}},
		{"Terça", "Cardio e Core", []string{"Corrida", "HIIT", "Prancha", "Abdominal"}},
		{"Quarta", "Pernas e Ombro", []string{"Agachamento", "Leg press", "Desenvolvimento", "Elevação lateral"}},
		{"Quinta", "Costas e Bíceps", []string{"Remada curvada", "Puxada frente", "Rosca direta", "Rosca alternada"}},
		{"Sexta", "Peito e Tríceps", []string{"Supino reto", "Supino inclinado", "Tríceps pulley", "Mergulho"}},
		{"Sábado", "Cardio leve", []string{"Caminhada", "Bicicleta", "Alongamento"}},
		{"Domingo", "Descanso", []string{}},
	},
	{model.GenderFemale, model.GoalGain}: {
		{"Segunda", "Quadríceps", []string{"Agachamento", "Cadeira extensora", "Leg press", "Afundo", "Avanço"}},
		{"Terça", "Posterior e Glúteo", []string{"Cadeira flexora", "Stiff", "Glúteo máquina", "Elevação pélvica", "Abdução"}},
		{"Quarta", "Superior completo", []string{"Desenvolvimento", "Puxada frente", "Remada baixa", "Rosca direta", "Tríceps pulley"}},
		{"Quinta", "Quadríceps e Abdômen", []string{"Agachamento", "Leg press", "Abdominal", "Prancha", "Cadeira extensora"}},
		{"Sexta", "Posterior/Glúteo e Abdômen", []string{"Stiff", "Glúteo máquina", "Abdução", "Abdominal", "Prancha"}},
		{"Sábado", "Superior completo", []string{"Desenvolvimento", "Puxada frente", "Remada curvada", "Rosca alternada", "Tríceps banco"}},
		{"Domingo", "Descanso ou cardio leve", []string{"Caminhada", "Bicicleta", "Alongamento"}},
	},
	{model.GenderFemale, model.GoalMaintain}: {
		{"Segunda", "Full Body", []string{"Agachamento", "Desenvolvimento", "Remada baixa", "Abdominal", "Prancha"}},
		{"Terça", "Cardio e Core", []string{"Corrida", "HIIT", "Prancha", "Abdominal"}},
		{"Quarta", "Glúteo e Posterior", []string{"Stiff", "Glúteo máquina", "Abdução", "Cadeira flexora"}},
		{"Quinta", "Quadríceps e Ombro", []string{"Agachamento", "Cadeira extensora", "Desenvolvimento", "Elevação lateral"}},
		{"Sexta", "Superior completo", []string{"Desenvolvimento", "Puxada frente", "Remada curvada", "Rosca alternada", "Tríceps banco"}},
		{"Sábado", "Cardio leve", []string{"Caminhada", "Bicicleta", "Alongamento"}},
		{"Domingo", "Descanso", []string{}},
	},
}

// RoutineFor returns the weekly split for a gender and goal.
// Anything other than male uses the female tables; a goal without its own
// table falls back to that gender's gain split.
func RoutineFor(gender model.Gender, goal model.Goal) Routine {
	if gender != model.GenderMale {
		gender = model.GenderFemale
	}
	if routine, ok := routines[routineKey{gender, goal}]; ok {
		return routine
	}
	return routines[routineKey{gender, model.GoalGain}]
}

// LookupRoutineDay finds the entry for a weekday label, or the first entry
func LookupRoutineDay(routine Routine, label string) RoutineDay {
	for _, day := range routine {
		if day.Day == label {
			return day
		}
	}
	return routine[0]
}
