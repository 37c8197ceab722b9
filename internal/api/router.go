// Package api exposes the services over HTTP with gin.
package api

import (
	"context"
	"net/http"

	"beast-hub/internal/body"
	"beast-hub/internal/catalog"
	"beast-hub/internal/coach"
	"beast-hub/internal/habits"
	"beast-hub/internal/inventory"
	"beast-hub/internal/metrics"
	"beast-hub/internal/planner"
	"beast-hub/internal/schedule"
	"beast-hub/internal/settings"
	"beast-hub/internal/shopping"
	"beast-hub/internal/summary"
	"beast-hub/internal/supplements"
	"beast-hub/internal/workouts"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UsageReader reads aggregated model usage.
type UsageReader interface {
	GetDailyUsage(ctx context.Context, days int) ([]metrics.DailyUsage, error)
}

// Deps holds everything the handlers call into.
type Deps struct {
	UserID      string
	DataPath    string
	CORSOrigins []string
	Logger      logrus.FieldLogger

	Catalog     *catalog.Catalog
	Habits      *habits.Service
	Body        *body.Service
	Settings    *settings.Service
	Supplements *supplements.Service
	Schedule    *schedule.Service
	Planner     *planner.Service
	Shopping    *shopping.Service
	Inventory   *inventory.Service
	Workouts    *workouts.Service
	Summary     *summary.Service
	Coach       *coach.Service
	Usage       UsageReader
}

// Handler serves the API for the single configured profile.
type Handler struct {
	Deps
}

// NewRouter builds the gin engine with every route under /api.
func NewRouter(deps Deps) *gin.Engine {
	h := &Handler{Deps: deps}

	r := gin.New()
	r.Use(requestID())
	r.Use(requestLogger(deps.Logger))
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(deps.CORSOrigins) == 0 || (len(deps.CORSOrigins) == 1 && deps.CORSOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = deps.CORSOrigins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AddAllowMethods(http.MethodOptions)
	corsConfig.AddAllowHeaders("Authorization", requestIDHeader)
	corsConfig.AddExposeHeaders(requestIDHeader, "Content-Disposition")
	r.Use(cors.New(corsConfig))

	g := r.Group("/api")
	g.GET("/", h.root)
	g.GET("/health", h.health)

	g.GET("/habits", h.getHabits)
	g.POST("/habits/toggle", h.toggleHabit)
	g.GET("/habits/streak", h.getStreak)

	g.GET("/metrics", h.listMetrics)
	g.POST("/metrics", h.addMetric)

	g.GET("/settings", h.getSettings)
	g.POST("/settings", h.updateSettings)
	g.POST("/settings/protein/add", h.addProtein)
	g.POST("/settings/protein/subtract", h.subtractProtein)
	g.POST("/settings/water/add", h.addWater)
	g.POST("/settings/alcohol/add", h.addAlcohol)
	g.POST("/settings/reset-weekly", h.resetWeekly)

	g.GET("/supplements", h.listSupplements)
	g.POST("/supplements/toggle", h.toggleSupplement)
	g.POST("/supplements/add", h.addSupplement)
	g.DELETE("/supplements/:index", h.deleteSupplement)

	g.GET("/meals/library", h.mealLibrary)
	g.GET("/meals/library/extended", h.extendedMealLibrary)
	g.POST("/meals/select", h.selectMeal)

	g.GET("/planner", h.getPlanner)
	g.POST("/planner", h.updatePlanner)
	g.GET("/schedule", h.getSchedule)
	g.GET("/schedule/today", h.todaySchedule)

	g.POST("/meal-plan/generate", h.generatePlan)
	g.POST("/meal-plan/save", h.savePlan)
	g.GET("/meal-plan", h.getPlan)
	g.POST("/meal-plan/substitute", h.substituteMeal)
	g.GET("/meal-plan/prep-tasks", h.prepTasks)
	g.GET("/meal-plan/prep-alerts", h.prepAlerts)
	g.POST("/meal-plan/mark-prepped", h.markPrepped)
	g.GET("/meal-plan/today", h.todayMeals)

	g.GET("/shopping-list/generate", h.generateShoppingList)
	g.POST("/shopping-list/save", h.saveShoppingList)
	g.GET("/shopping-list", h.getShoppingList)
	g.POST("/shopping-list/toggle-purchased", h.togglePurchased)
	g.GET("/shopping-list/export", h.exportShoppingList)

	g.GET("/inventory", h.listInventory)
	g.POST("/inventory/add", h.addInventory)
	g.POST("/inventory/update", h.updateInventory)
	g.DELETE("/inventory/:item", h.deleteInventory)

	g.GET("/workouts", h.listWorkouts)
	g.GET("/workouts/progress/:exercise", h.exerciseProgress)
	g.GET("/workouts/:date", h.getWorkout)
	g.POST("/workouts", h.saveWorkout)
	g.POST("/workouts/:date/exercise", h.addExercise)
	g.DELETE("/workouts/:date", h.deleteWorkout)

	g.GET("/summary/weekly", h.weeklySummary)

	g.POST("/ai/recipe", h.recipe)
	g.POST("/ai/motivation", h.motivation)
	g.POST("/ai/audit", h.audit)
	g.POST("/ai/suggest-recipes", h.suggestRecipes)
	g.POST("/ai/weekly-coaching", h.weeklyCoaching)
	g.GET("/ai/usage", h.usage)

	return r
}

func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Beast Transformation Hub API", "status": "online"})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "system": metrics.GetSysHealth(h.DataPath)})
}
