// Package coach builds the language-model prompts: recipes, motivation,
// audits, meal ideas and the weekly review.
package coach

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"beast-hub/internal/apperr"
	"beast-hub/internal/body"
	"beast-hub/internal/catalog"
	"beast-hub/internal/habits"
	"beast-hub/internal/llm"
	"beast-hub/internal/logging"
	"beast-hub/internal/settings"
	"beast-hub/internal/shared"
	"beast-hub/internal/summary"

	"github.com/sirupsen/logrus"
)

//go:embed recipe_prompt.md
var recipePrompt string

//go:embed motivation_prompt.md
var motivationPrompt string

//go:embed audit_prompt.md
var auditPrompt string

//go:embed suggest_prompt.md
var suggestPrompt string

//go:embed weekly_prompt.md
var weeklyPrompt string

const (
	recipeSystem = `You are an expert meal prep coach for busy fathers focused on physique transformation.
Create detailed, practical recipes that are:
- High in protein (key macro)
- Simple to prep in bulk
- Family-friendly with modular serving options
- Include specific cooking instructions and prep time
- List exact measurements and macros per serving`

	motivationSystem = `You are a stoic, no-nonsense strength coach for a 30-year-old father of two young kids.
Your style is direct, powerful, and legacy-focused. You speak to the 'beast within' and remind him why he started.
Keep responses under 100 words. Be impactful, not flowery.`

	auditSystem = `You are a brutally honest bio-coach auditing physique progress toward 12% body fat.
Analyze data objectively. Give hard truths. Provide actionable adjustments.
Focus on: protein intake, training consistency, body fat trends, and lifestyle factors.`

	suggestSystem = `You are a nutrition coach specializing in high-protein meal prep for busy fathers.
Suggest simple, delicious, family-friendly meals that hit macro targets.`

	weeklySystem = `You are a direct, supportive transformation coach for a working father chasing 12% body fat.
You review one week of data at a time and turn it into a short, concrete plan.`
)

const (
	ServingsIndividual = "individual"
	ServingsFamily     = "family"

	defaultMotivationContext = "I'm tempted to skip today's workout"
	defaultMacroTarget       = "500 cal, 40g protein"

	auditMetrics      = 10
	auditTrend        = 5
	expectedWorkouts  = 4
	defaultFamilySize = 4
)

var macroTargets = map[catalog.Category]string{
	catalog.Breakfast: "450 cal, 35-40g protein",
	catalog.Lunch:     "550 cal, 50-55g protein",
	catalog.Dinner:    "700 cal, 60g protein",
}

// UsageRecorder stores token usage of a model call.
type UsageRecorder interface {
	RecordMeta(ctx context.Context, meta shared.AgentMeta) error
}

// RecipeInput asks for a full recipe of a meal.
type RecipeInput struct {
	MealName      string `json:"meal_name" binding:"required"`
	MealBlueprint string `json:"meal_blueprint" binding:"required"`
	Category      string `json:"category" binding:"required"`
	Servings      string `json:"servings" binding:"omitempty,oneof=individual family"`
	MealID        string `json:"meal_id"`
}

// RecipeResult is the generated recipe.
type RecipeResult struct {
	Recipe       string `json:"recipe"`
	Servings     string `json:"servings"`
	ServingCount int    `json:"serving_count"`
}

// MotivationInput carries an optional situation to respond to.
type MotivationInput struct {
	Prompt  string  `json:"prompt"`
	Context *string `json:"context"`
}

// WeeklyCoaching is the review of the current week.
type WeeklyCoaching struct {
	Coaching string          `json:"coaching"`
	Summary  *summary.Weekly `json:"summary"`
}

// Service runs the coaching prompts.
type Service struct {
	textGen  llm.TextGenerator
	recorder UsageRecorder
	catalog  *catalog.Catalog
	habits   *habits.Service
	settings *settings.Repository
	body     *body.Service
	summary  *summary.Service
	logger   logrus.FieldLogger
	now      func() time.Time
}

// Deps are the read paths the prompts draw on.
type Deps struct {
	Catalog  *catalog.Catalog
	Habits   *habits.Service
	Settings *settings.Repository
	Body     *body.Service
	Summary  *summary.Service
}

// NewService creates a new coach. recorder may be nil.
func NewService(textGen llm.TextGenerator, recorder UsageRecorder, deps Deps, logger logrus.FieldLogger) *Service {
	return &Service{
		textGen:  textGen,
		recorder: recorder,
		catalog:  deps.Catalog,
		habits:   deps.Habits,
		settings: deps.Settings,
		body:     deps.Body,
		summary:  deps.Summary,
		logger:   logger.WithField("module", "coach"),
		now:      time.Now,
	}
}

// Recipe writes a recipe sized for one person or the family. Serving counts
// come from the catalog meal when MealID is known.
func (s *Service) Recipe(ctx context.Context, in RecipeInput) (*RecipeResult, error) {
	servings := in.Servings
	if servings == "" {
		servings = ServingsIndividual
	}
	if servings != ServingsIndividual && servings != ServingsFamily {
		return nil, apperr.Validation("servings must be %s or %s", ServingsIndividual, ServingsFamily)
	}

	count := 1
	if servings == ServingsFamily {
		count = defaultFamilySize
	}
	if meal, ok := s.catalog.Meal(in.MealID); ok {
		if servings == ServingsFamily && meal.FamilyServings > 0 {
			count = meal.FamilyServings
		} else if servings == ServingsIndividual && meal.IndividualServings > 0 {
			count = meal.IndividualServings
		}
	}

	prompt, err := render("recipe", recipePrompt, map[string]any{
		"MealName":     in.MealName,
		"Blueprint":    in.MealBlueprint,
		"Category":     in.Category,
		"Servings":     servings,
		"ServingCount": count,
	})
	if err != nil {
		return nil, err
	}

	text, err := s.generate(ctx, "Recipe", recipeSystem, prompt)
	if err != nil {
		return nil, err
	}
	return &RecipeResult{Recipe: text, Servings: servings, ServingCount: count}, nil
}

// Motivation returns a short pep talk.
func (s *Service) Motivation(ctx context.Context, in MotivationInput) (string, error) {
	situation := defaultMotivationContext
	if in.Context != nil && strings.TrimSpace(*in.Context) != "" {
		situation = *in.Context
	}
	prompt, err := render("motivation", motivationPrompt, map[string]any{
		"Context": situation,
		"Prompt":  strings.TrimSpace(in.Prompt),
	})
	if err != nil {
		return "", err
	}
	return s.generate(ctx, "Motivation", motivationSystem, prompt)
}

// Audit reviews the latest measurements and the last week of check-ins.
func (s *Service) Audit(ctx context.Context, userID string) (string, error) {
	metrics, err := s.body.List(ctx, userID, auditMetrics)
	if err != nil {
		return "", err
	}
	st, err := s.settings.Load(ctx, userID)
	if err != nil {
		return "", err
	}
	log, err := s.habits.Log(ctx, userID)
	if err != nil {
		return "", err
	}

	today := s.now()
	data := map[string]any{
		"Metrics":           metrics,
		"Trend":             metrics[:min(auditTrend, len(metrics))],
		"ProteinTarget":     st.ProteinTarget,
		"WorkoutsCompleted": habits.CompletedBetween(log, today.AddDate(0, 0, -6), today),
		"Latest":            (*body.Metric)(nil),
	}
	if len(metrics) > 0 {
		data["Latest"] = &metrics[0]
	}
	prompt, err := render("audit", auditPrompt, data)
	if err != nil {
		return "", err
	}
	return s.generate(ctx, "Audit", auditSystem, prompt)
}

// SuggestRecipes asks for three new meals of a category.
func (s *Service) SuggestRecipes(ctx context.Context, category string) (string, error) {
	target, ok := macroTargets[catalog.Category(category)]
	if !ok {
		target = defaultMacroTarget
	}
	prompt, err := render("suggest", suggestPrompt, map[string]any{
		"Category": category,
		"Target":   target,
	})
	if err != nil {
		return "", err
	}
	return s.generate(ctx, "SuggestRecipes", suggestSystem, prompt)
}

// WeeklyCoaching reviews the current weekly summary.
func (s *Service) WeeklyCoaching(ctx context.Context, userID string) (*WeeklyCoaching, error) {
	week, err := s.summary.Weekly(ctx, userID)
	if err != nil {
		return nil, err
	}
	prompt, err := render("weekly", weeklyPrompt, week)
	if err != nil {
		return nil, err
	}
	text, err := s.generate(ctx, "WeeklyCoaching", weeklySystem, prompt)
	if err != nil {
		return nil, err
	}
	return &WeeklyCoaching{Coaching: text, Summary: week}, nil
}

// generate calls the model and records its usage. Model failures become
// Upstream errors.
func (s *Service) generate(ctx context.Context, agent, system, prompt string) (string, error) {
	start := time.Now()
	resp, err := s.textGen.GenerateContent(ctx, system, prompt)
	if err != nil {
		logging.LogError(s.logger, "coach", agent, "generate content", nil, err)
		if errors.Is(err, llm.ErrNotConfigured) {
			return "", apperr.Upstream(llm.ErrNotConfigured.Error(), nil)
		}
		return "", apperr.Upstream("AI service error", err)
	}

	if s.recorder != nil {
		meta := shared.AgentMeta{AgentName: agent, Usage: resp.Usage, Latency: time.Since(start)}
		if err := s.recorder.RecordMeta(ctx, meta); err != nil {
			s.logger.WithError(err).WithField("agent", agent).Warn("failed to record usage")
		}
	}
	return resp.Content, nil
}

var funcs = template.FuncMap{
	"deref": func(v *float64) float64 {
		if v == nil {
			return 0
		}
		return *v
	},
}

func render(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Funcs(funcs).Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s prompt: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", name, err)
	}
	return buf.String(), nil
}
