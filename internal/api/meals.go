package api

import (
	"bytes"
	"net/http"

	"beast-hub/internal/apperr"
	"beast-hub/internal/catalog"
	"beast-hub/internal/inventory"
	"beast-hub/internal/planner"
	"beast-hub/internal/settings"
	"beast-hub/internal/shopping"

	"github.com/gin-gonic/gin"
)

const exportFilename = "shopping-list.xlsx"

type generatePlanRequest struct {
	Weeks     *int   `json:"weeks"`
	StartDate string `json:"start_date"`
}

type substituteRequest struct {
	Date     string `json:"date" binding:"required"`
	MealType string `json:"meal_type" binding:"required"`
	MealID   string `json:"meal_id" binding:"required"`
}

type updateInventoryRequest struct {
	Item   string `json:"item" binding:"required"`
	Amount string `json:"amount"`
}

func (h *Handler) mealLibrary(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.SummaryLibrary())
}

func (h *Handler) extendedMealLibrary(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.Library())
}

func (h *Handler) selectMeal(c *gin.Context) {
	var in settings.SelectMealInput
	if !bindJSON(c, &in) {
		return
	}
	selected, err := h.Settings.SelectMeal(c.Request.Context(), h.UserID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "selected_meals": selected})
}

func (h *Handler) generatePlan(c *gin.Context) {
	var req generatePlanRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	weeks := 1
	if req.Weeks != nil {
		weeks = *req.Weeks
	}
	plan, err := h.Planner.Generate(weeks, req.StartDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *Handler) savePlan(c *gin.Context) {
	weeks, err := queryInt(c, "weeks", 1)
	if err != nil {
		respondError(c, err)
		return
	}
	var entries []planner.PlanEntry
	if !bindJSON(c, &entries) {
		return
	}
	plan, err := h.Planner.Save(c.Request.Context(), h.UserID, weeks, entries)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "meal_plan": plan})
}

func (h *Handler) getPlan(c *gin.Context) {
	plan, err := h.Planner.Get(c.Request.Context(), h.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal_plan": plan})
}

func (h *Handler) substituteMeal(c *gin.Context) {
	var req substituteRequest
	if !bindJSON(c, &req) {
		return
	}
	slot, err := catalog.ParseCategory(req.MealType)
	if err != nil {
		respondError(c, apperr.Validation("%v", err))
		return
	}
	plan, err := h.Planner.Substitute(c.Request.Context(), h.UserID, req.Date, slot, req.MealID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "meal_plan": plan})
}

func (h *Handler) prepTasks(c *gin.Context) {
	tasks, err := h.Planner.PrepTasks(c.Request.Context(), h.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prep_tasks": tasks})
}

func (h *Handler) prepAlerts(c *gin.Context) {
	feed, err := h.Planner.PrepAlerts(c.Request.Context(), h.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

func (h *Handler) markPrepped(c *gin.Context) {
	mealID := c.Query("meal_id")
	if mealID == "" {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": "meal_id is required"})
		return
	}
	var dates []string
	if !bindJSON(c, &dates) {
		return
	}
	res, err := h.Planner.MarkPrepped(c.Request.Context(), h.UserID, mealID, dates)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) todayMeals(c *gin.Context) {
	today, err := h.Planner.Today(c.Request.Context(), h.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, today)
}

func (h *Handler) generateShoppingList(c *gin.Context) {
	items, err := h.Shopping.Generate(c.Request.Context(), h.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shopping_list": items})
}

func (h *Handler) saveShoppingList(c *gin.Context) {
	var items []shopping.SaveItem
	if !bindJSON(c, &items) {
		return
	}
	list, err := h.Shopping.Save(c.Request.Context(), h.UserID, items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "items": list.Items})
}

func (h *Handler) getShoppingList(c *gin.Context) {
	list, err := h.Shopping.Get(c.Request.Context(), h.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": list.Items})
}

func (h *Handler) togglePurchased(c *gin.Context) {
	index, err := requiredQueryInt(c, "item_index")
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := h.Shopping.TogglePurchased(c.Request.Context(), h.UserID, index)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": list.Items})
}

func (h *Handler) exportShoppingList(c *gin.Context) {
	list, err := h.Shopping.Get(c.Request.Context(), h.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := shopping.Export(&buf, list.Items); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	c.Data(http.StatusOK, shopping.XLSXContentType, buf.Bytes())
}

func (h *Handler) listInventory(c *gin.Context) {
	items, err := h.Inventory.List(c.Request.Context(), h.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inventory": items})
}

func (h *Handler) addInventory(c *gin.Context) {
	var in inventory.AddInput
	if !bindJSON(c, &in) {
		return
	}
	items, err := h.Inventory.Add(c.Request.Context(), h.UserID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "inventory": items})
}

func (h *Handler) updateInventory(c *gin.Context) {
	var req updateInventoryRequest
	if !bindJSON(c, &req) {
		return
	}
	items, err := h.Inventory.UpdateAmount(c.Request.Context(), h.UserID, req.Item, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "inventory": items})
}

func (h *Handler) deleteInventory(c *gin.Context) {
	items, err := h.Inventory.Delete(c.Request.Context(), h.UserID, c.Param("item"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "inventory": items})
}
