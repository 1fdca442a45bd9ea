package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/vcscsvcscs/fitflow/apps/backend/pkg/model"
)

// PDFGenerator renders the progress report
type PDFGenerator struct {
	logger *zap.Logger
}

// NewPDFGenerator creates a new PDFGenerator
func NewPDFGenerator(logger *zap.Logger) *PDFGenerator {
	return &PDFGenerator{
		logger: logger,
	}
}

// ReportData contains all data needed for report generation
type ReportData struct {
	UserName    string
	DateRange   string
	GeneratedAt time.Time

	Profile  *model.UserProfile
	BMI      float64
	BMILabel string
	Diet     *model.DietSuggestion
	Stats    *model.ProgressStats

	Workouts     []model.Workout
	Meals        []model.Meal
	Progress     []model.ProgressSnapshot
	Achievements []model.Achievement
}

// Generate creates a PDF report from the provided data
func (g *PDFGenerator) Generate(data *ReportData) ([]byte, error) {
	if data == nil {
		return nil, fmt.Errorf("failed to generate PDF: no report data")
	}

	g.logger.Info("generating PDF report",
		zap.String("user_name", data.UserName),
		zap.String("date_range", data.DateRange),
	)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	// core fonts are cp1252; Portuguese labels need translating
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	generatedAt := data.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}
	g.addTitle(pdf, tr, "FitFlow - Relatório de Progresso", data.UserName, data.DateRange, generatedAt)

	g.addProfileSummary(pdf, tr, data)
	g.addProgressStats(pdf, tr, data.Stats)
	g.addWorkoutLog(pdf, tr, data.Workouts)
	g.addMealLog(pdf, tr, data.Meals)
	g.addMeasurements(pdf, tr, data.Progress)
	g.addAchievements(pdf, tr, data.Achievements)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		g.logger.Error("failed to generate PDF", zap.Error(err))
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	g.logger.Info("PDF report generated successfully",
		zap.Int("size_bytes", buf.Len()),
	)

	return buf.Bytes(), nil
}

// addTitle adds the report title and header information
func (g *PDFGenerator) addTitle(pdf *gofpdf.Fpdf, tr func(string) string, title, userName, dateRange string, generatedAt time.Time) {
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Usuário: %s", userName)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Período: %s", dateRange)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Gerado em: %s", generatedAt.Format("2006-01-02 15:04"))), "", 1, "L", false, 0, "")
	pdf.Ln(10)
}

// addSectionHeader adds a section header
func (g *PDFGenerator) addSectionHeader(pdf *gofpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", true, 0, "")
	pdf.Ln(3)
	pdf.SetFont("Arial", "", 10)
}

func (g *PDFGenerator) addEmpty(pdf *gofpdf.Fpdf, tr func(string) string, msg string) {
	pdf.CellFormat(0, 8, tr(msg), "", 1, "L", false, 0, "")
	pdf.Ln(5)
}

// addProfileSummary adds body metrics and the diet target
func (g *PDFGenerator) addProfileSummary(pdf *gofpdf.Fpdf, tr func(string) string, data *ReportData) {
	g.addSectionHeader(pdf, tr, "Perfil")

	p := data.Profile
	if p == nil {
		g.addEmpty(pdf, tr, "Perfil não configurado.")
		return
	}

	lines := []string{
		fmt.Sprintf("Idade: %d anos", p.Age),
		fmt.Sprintf("Peso: %.1f kg    Altura: %.0f cm", p.Weight, p.Height),
		fmt.Sprintf("IMC: %.1f (%s)", data.BMI, data.BMILabel),
		fmt.Sprintf("Objetivo: %s    Local de treino: %s", p.Goal, p.WorkoutLocation),
		fmt.Sprintf("Experiência: %s    Tempo disponível: %s", p.ExperienceLevel, p.AvailableTime),
	}
	if data.Diet != nil {
		lines = append(lines, fmt.Sprintf("Meta calórica diária: %d kcal (%s)", data.Diet.DailyCalories, data.Diet.Focus))
	}
	for _, line := range lines {
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

// addProgressStats adds the change between the first and latest snapshot
func (g *PDFGenerator) addProgressStats(pdf *gofpdf.Fpdf, tr func(string) string, stats *model.ProgressStats) {
	g.addSectionHeader(pdf, tr, "Evolução")

	if stats == nil {
		g.addEmpty(pdf, tr, "São necessários pelo menos dois registros de progresso.")
		return
	}

	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Peso: %+.1f kg (%.1f%%) em %d dias", stats.WeightChange, stats.WeightChangePercent, stats.TotalDays)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Cintura: %+.1f cm (%.1f%%) em %d dias", stats.WaistChange, stats.WaistChangePercent, stats.TotalDays)), "", 1, "L", false, 0, "")
	pdf.Ln(5)
}

// addWorkoutLog adds a table of logged workouts
func (g *PDFGenerator) addWorkoutLog(pdf *gofpdf.Fpdf, tr func(string) string, workouts []model.Workout) {
	g.addSectionHeader(pdf, tr, "Treinos")

	if len(workouts) == 0 {
		g.addEmpty(pdf, tr, "Nenhum treino registrado.")
		return
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 7, "Data", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 7, "Tipo", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 7, tr("Duração (min)"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 7, tr("Exercícios"), "1", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)

	total := 0
	for _, w := range workouts {
		total += w.Duration
		pdf.CellFormat(40, 6, w.Date.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, string(w.Type), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%d", w.Duration), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%d", len(w.Exercises)), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(2)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Total: %d treinos, %d minutos", len(workouts), total)), "", 1, "L", false, 0, "")
	pdf.Ln(5)
}

// addMealLog adds one line per meal with its calorie total
func (g *PDFGenerator) addMealLog(pdf *gofpdf.Fpdf, tr func(string) string, meals []model.Meal) {
	g.addSectionHeader(pdf, tr, "Refeições")

	if len(meals) == 0 {
		g.addEmpty(pdf, tr, "Nenhuma refeição registrada.")
		return
	}

	for _, m := range meals {
		var calories, protein float64
		for _, f := range m.Foods {
			calories += f.Calories
			protein += f.Protein
		}
		line := fmt.Sprintf("%s  %s: %.0f kcal, %.1f g proteína (%d alimentos)",
			m.Date.Format("2006-01-02"), m.Type, calories, protein, len(m.Foods))
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

// addMeasurements adds a table of body measurements
func (g *PDFGenerator) addMeasurements(pdf *gofpdf.Fpdf, tr func(string) string, snapshots []model.ProgressSnapshot) {
	g.addSectionHeader(pdf, tr, "Medidas Corporais")

	if len(snapshots) == 0 {
		g.addEmpty(pdf, tr, "Nenhuma medida registrada.")
		return
	}

	headers := []string{"Data", "Peso", "Peito", "Cintura", "Quadril", "Braços", "Coxas"}
	pdf.SetFont("Arial", "B", 10)
	for i, h := range headers {
		ln := 0
		if i == len(headers)-1 {
			ln = 1
		}
		pdf.CellFormat(24, 7, tr(h), "1", ln, "C", false, 0, "")
	}
	pdf.SetFont("Arial", "", 10)

	for _, s := range snapshots {
		m := s.Measurements
		pdf.CellFormat(24, 6, s.Date.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		for i, v := range []float64{s.Weight, m.Chest, m.Waist, m.Hips, m.Arms, m.Thighs} {
			ln := 0
			if i == 5 {
				ln = 1
			}
			pdf.CellFormat(24, 6, fmt.Sprintf("%.1f", v), "1", ln, "C", false, 0, "")
		}
	}
	pdf.Ln(5)
}

// addAchievements lists every badge with its progress
func (g *PDFGenerator) addAchievements(pdf *gofpdf.Fpdf, tr func(string) string, achievements []model.Achievement) {
	g.addSectionHeader(pdf, tr, "Conquistas")

	if len(achievements) == 0 {
		g.addEmpty(pdf, tr, "Nenhuma conquista disponível.")
		return
	}

	for _, a := range achievements {
		status := fmt.Sprintf("%d/%d", a.Progress, a.MaxProgress)
		if a.Unlocked {
			pdf.SetFont("Arial", "B", 10)
			status = "desbloqueada"
		} else {
			pdf.SetFont("Arial", "", 10)
		}
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s - %s (%s)", a.Title, a.Description, status)), "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Arial", "", 10)
	pdf.Ln(5)
}
