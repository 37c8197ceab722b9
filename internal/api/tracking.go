package api

import (
	"context"
	"net/http"

	"beast-hub/internal/body"
	"beast-hub/internal/habits"
	"beast-hub/internal/schedule"
	"beast-hub/internal/settings"
	"beast-hub/internal/supplements"

	"github.com/gin-gonic/gin"
)

func (h *Handler) getHabits(c *gin.Context) {
	log, err := h.Habits.Log(c.Request.Context(), h.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"habits": log})
}

func (h *Handler) toggleHabit(c *gin.Context) {
	var in habits.ToggleInput
	if !bindJSON(c, &in) {
		return
	}
	if err := h.Habits.Toggle(c.Request.Context(), h.UserID, in); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "date": in.Date, "completed": in.Completed})
}

func (h *Handler) getStreak(c *gin.Context) {
	streak, err := h.Habits.Streak(c.Request.Context(), h.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, streak)
}

func (h *Handler) listMetrics(c *gin.Context) {
	list, err := h.Body.List(c.Request.Context(), h.UserID, body.ListLimit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) addMetric(c *gin.Context) {
	var in body.AddInput
	if !bindJSON(c, &in) {
		return
	}
	m, err := h.Body.Add(c.Request.Context(), h.UserID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handler) getSettings(c *gin.Context) {
	st, err := h.Settings.Get(c.Request.Context(), h.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) updateSettings(c *gin.Context) {
	var in settings.UpdateInput
	if !bindJSON(c, &in) {
		return
	}
	if _, err := h.Settings.Update(c.Request.Context(), h.UserID, in); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) addProtein(c *gin.Context) {
	h.changeProtein(c, h.Settings.AddProtein)
}

func (h *Handler) subtractProtein(c *gin.Context) {
	h.changeProtein(c, h.Settings.SubtractProtein)
}

func (h *Handler) changeProtein(c *gin.Context, op func(context.Context, string, int) (int, error)) {
	amount, err := queryInt(c, "amount", settings.DefaultProteinStep)
	if err != nil {
		respondError(c, err)
		return
	}
	current, err := op(c.Request.Context(), h.UserID, amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"protein_current": current})
}

func (h *Handler) addWater(c *gin.Context) {
	liters, err := h.Settings.AddWater(c.Request.Context(), h.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"water_liters": liters})
}

func (h *Handler) addAlcohol(c *gin.Context) {
	count, err := h.Settings.AddAlcohol(c.Request.Context(), h.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alcohol_count": count})
}

func (h *Handler) resetWeekly(c *gin.Context) {
	if err := h.Settings.ResetWeekly(c.Request.Context(), h.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) listSupplements(c *gin.Context) {
	list, err := h.Supplements.List(c.Request.Context(), h.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"supplements": list})
}

func (h *Handler) toggleSupplement(c *gin.Context) {
	index, err := requiredQueryInt(c, "index")
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := h.Supplements.Toggle(c.Request.Context(), h.UserID, index)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"supplements": list})
}

func (h *Handler) addSupplement(c *gin.Context) {
	var in supplements.Supplement
	if !bindJSON(c, &in) {
		return
	}
	list, err := h.Supplements.Add(c.Request.Context(), h.UserID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"supplements": list})
}

func (h *Handler) deleteSupplement(c *gin.Context) {
	index, err := pathInt(c, "index")
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := h.Supplements.Delete(c.Request.Context(), h.UserID, index)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"supplements": list})
}

func (h *Handler) getPlanner(c *gin.Context) {
	overrides, err := h.Schedule.Overrides(c.Request.Context(), h.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"planner": overrides})
}

func (h *Handler) updatePlanner(c *gin.Context) {
	var in schedule.OverrideInput
	if !bindJSON(c, &in) {
		return
	}
	if err := h.Schedule.SetOverride(c.Request.Context(), h.UserID, in); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) getSchedule(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"schedule": schedule.Week()})
}

func (h *Handler) todaySchedule(c *gin.Context) {
	day, err := h.Schedule.Today(c.Request.Context(), h.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}
