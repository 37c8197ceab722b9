package api

import (
	"net/http"

	"beast-hub/internal/workouts"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listWorkouts(c *gin.Context) {
	limit, err := queryInt(c, "limit", workouts.DefaultListLimit)
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := h.Workouts.List(c.Request.Context(), h.UserID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workouts": list})
}

func (h *Handler) getWorkout(c *gin.Context) {
	w, err := h.Workouts.Get(c.Request.Context(), h.UserID, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workout": w})
}

func (h *Handler) saveWorkout(c *gin.Context) {
	var in workouts.Workout
	if !bindJSON(c, &in) {
		return
	}
	w, err := h.Workouts.Upsert(c.Request.Context(), h.UserID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "workout": w})
}

func (h *Handler) addExercise(c *gin.Context) {
	var in workouts.Exercise
	if !bindJSON(c, &in) {
		return
	}
	w, err := h.Workouts.AddExercise(c.Request.Context(), h.UserID, c.Param("date"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "workout": w})
}

func (h *Handler) deleteWorkout(c *gin.Context) {
	if err := h.Workouts.Delete(c.Request.Context(), h.UserID, c.Param("date")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) exerciseProgress(c *gin.Context) {
	name := c.Param("exercise")
	progress, err := h.Workouts.Progress(c.Request.Context(), h.UserID, name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exercise": name, "progress": progress})
}

func (h *Handler) weeklySummary(c *gin.Context) {
	week, err := h.Summary.Weekly(c.Request.Context(), h.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, week)
}
