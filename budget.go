package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type CategoryTotal struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type BudgetSummary struct {
	TotalBudget          float64         `json:"total_budget"`
	TotalAllocated       float64         `json:"total_allocated"`
	TotalSpent           float64         `json:"total_spent"`
	Remaining            float64         `json:"remaining"`
	AllocationPercentage float64         `json:"allocation_percentage"`
	SpentPercentage      float64         `json:"spent_percentage"`
	Categories           []CategoryTotal `json:"categories"`
}

// Summarize totals an event's budget items. Remaining is measured against
// what was spent, not what was allocated, and percentages are 0 for an
// event without a budget.
func Summarize(ev *Event, items []BudgetItem) BudgetSummary {
	s := BudgetSummary{TotalBudget: ev.Budget, Categories: []CategoryTotal{}}

	index := make(map[string]int)
	for _, item := range items {
		s.TotalAllocated += item.Amount
		if item.Status == BudgetSpent {
			s.TotalSpent += item.Amount
		}
		i, ok := index[item.Category]
		if !ok {
			i = len(s.Categories)
			index[item.Category] = i
			s.Categories = append(s.Categories, CategoryTotal{Name: item.Category})
		}
		s.Categories[i].Value += item.Amount
	}

	s.Remaining = s.TotalBudget - s.TotalSpent
	if s.TotalBudget > 0 {
		s.AllocationPercentage = (s.TotalAllocated / s.TotalBudget) * 100
		s.SpentPercentage = (s.TotalSpent / s.TotalBudget) * 100
	}
	return s
}

// -----------------------------
// Budget items
// -----------------------------

func (a *API) GetBudgetItems(c *gin.Context) {
	eventID, ok := idParam(c, "eventId", "event")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := RequireEvent(ctx, a.store, eventID); err != nil {
		respondError(c, "list budget items", err)
		return
	}
	items, err := a.store.BudgetItemsForEvent(ctx, eventID)
	if err != nil {
		respondError(c, "list budget items", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (a *API) GetBudgetSummary(c *gin.Context) {
	eventID, ok := idParam(c, "eventId", "event")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	ev, err := RequireEvent(ctx, a.store, eventID)
	if err != nil {
		respondError(c, "budget summary", err)
		return
	}
	items, err := a.store.BudgetItemsForEvent(ctx, eventID)
	if err != nil {
		respondError(c, "budget summary", err)
		return
	}
	c.JSON(http.StatusOK, Summarize(ev, items))
}

// CreateBudgetItem resolves the event before the organizer check, so an
// unknown event is a 404 for everyone.
func (a *API) CreateBudgetItem(c *gin.Context) {
	eventID, ok := idParam(c, "eventId", "event")
	if !ok {
		return
	}
	var body BudgetItemInput
	if !bindJSON(c, &body) {
		return
	}

	ctx := c.Request.Context()
	ev, err := RequireEvent(ctx, a.store, eventID)
	if err != nil {
		respondError(c, "create budget item", err)
		return
	}
	if err := Authorize(currentPrincipal(c), ActionCreate, BudgetItemTarget(ev)); err != nil {
		respondError(c, "create budget item", err)
		return
	}
	if err := required("name", body.Name, "category", body.Category); err != nil {
		respondError(c, "create budget item", err)
		return
	}
	if body.Amount == nil {
		respondError(c, "create budget item", badRequest("amount is required"))
		return
	}

	item := BudgetItem{Status: BudgetPlanned, EventID: ev.ID}
	if err := body.apply(&item); err != nil {
		respondError(c, "create budget item", err)
		return
	}
	if err := a.store.Create(ctx, &item); err != nil {
		respondError(c, "create budget item", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (a *API) UpdateBudgetItem(c *gin.Context) {
	id, ok := idParam(c, "id", "budget item")
	if !ok {
		return
	}
	var body BudgetItemInput
	if !bindJSON(c, &body) {
		return
	}

	ctx := c.Request.Context()
	item, owner, err := a.budgetItemWithOwner(c, id)
	if err != nil {
		respondError(c, "update budget item", err)
		return
	}
	if err := Authorize(currentPrincipal(c), ActionUpdate, BudgetItemTarget(owner)); err != nil {
		respondError(c, "update budget item", err)
		return
	}
	if err := body.apply(item); err != nil {
		respondError(c, "update budget item", err)
		return
	}
	if err := a.store.Save(ctx, item); err != nil {
		respondError(c, "update budget item", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (a *API) DeleteBudgetItem(c *gin.Context) {
	id, ok := idParam(c, "id", "budget item")
	if !ok {
		return
	}

	item, owner, err := a.budgetItemWithOwner(c, id)
	if err != nil {
		respondError(c, "delete budget item", err)
		return
	}
	if err := Authorize(currentPrincipal(c), ActionDelete, BudgetItemTarget(owner)); err != nil {
		respondError(c, "delete budget item", err)
		return
	}
	if err := a.store.Remove(c.Request.Context(), item); err != nil {
		respondError(c, "delete budget item", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "budget item removed"})
}

// budgetItemWithOwner loads an item and the event that owns it. An item
// whose event has been deleted reports "associated event not found".
func (a *API) budgetItemWithOwner(c *gin.Context, id uint) (*BudgetItem, *Event, error) {
	ctx := c.Request.Context()
	item, err := a.store.FindBudgetItem(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	owner, err := a.store.FindEvent(ctx, item.EventID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, notFound("associated event")
		}
		return nil, nil, err
	}
	return item, owner, nil
}
