package api

import (
	"net/http"

	"beast-hub/internal/coach"

	"github.com/gin-gonic/gin"
)

const defaultUsageDays = 7

func (h *Handler) recipe(c *gin.Context) {
	var in coach.RecipeInput
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.Coach.Recipe(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) motivation(c *gin.Context) {
	var in coach.MotivationInput
	if c.Request.ContentLength != 0 && !bindJSON(c, &in) {
		return
	}
	msg, err := h.Coach.Motivation(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func (h *Handler) audit(c *gin.Context) {
	text, err := h.Coach.Audit(c.Request.Context(), h.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"audit": text})
}

func (h *Handler) suggestRecipes(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": "category is required"})
		return
	}
	text, err := h.Coach.SuggestRecipes(c.Request.Context(), category)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": text})
}

func (h *Handler) weeklyCoaching(c *gin.Context) {
	res, err := h.Coach.WeeklyCoaching(c.Request.Context(), h.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) usage(c *gin.Context) {
	days, err := queryInt(c, "days", defaultUsageDays)
	if err != nil {
		respondError(c, err)
		return
	}
	if days < 1 {
		days = defaultUsageDays
	}
	usage, err := h.Usage.GetDailyUsage(c.Request.Context(), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "usage": usage})
}
