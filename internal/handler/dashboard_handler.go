package handler

import (
	"net/http"

	"tasktracker/internal/render"
	"tasktracker/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/now"
	"go.uber.org/zap"
)

const recentTasksLimit = 5

type DashboardHandler struct {
	tasks  repository.TaskRepositoryInterface
	render render.Renderer
	clock  Clock
	log    *zap.Logger
}

func NewDashboardHandler(tasks repository.TaskRepositoryInterface, renderer render.Renderer, clock Clock, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{tasks: tasks, render: renderer, clock: clock, log: log}
}

// Home godoc
// @Summary      Dashboard
// @Description  All of the user's tasks with the recent five, today's pending deadlines and the completion statistics.
// @Tags         Tasks
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      302  "not signed in"
// @Router       / [get]
func (h *DashboardHandler) Home(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	t := h.clock()

	tasks, err := h.tasks.ListForOwner(ctx, user.ID)
	if err != nil {
		internalError(c, h.log, "Failed to list tasks", err)
		return
	}

	recent, err := h.tasks.Recent(ctx, user.ID, recentTasksLimit)
	if err != nil {
		internalError(c, h.log, "Failed to list recent tasks", err)
		return
	}

	day := now.With(t)
	dueToday, err := h.tasks.DueBetween(ctx, user.ID, day.BeginningOfDay(), day.EndOfDay())
	if err != nil {
		internalError(c, h.log, "Failed to list tasks due today", err)
		return
	}

	stats, err := h.tasks.Stats(ctx, user.ID)
	if err != nil {
		internalError(c, h.log, "Failed to compute statistics", err)
		return
	}

	h.render.Page(c, http.StatusOK, render.PageHome, gin.H{
		"user":                newUserResponse(user),
		"tasks":               newTaskResponses(tasks, t),
		"recent_tasks":        newTaskResponses(recent, t),
		"due_today":           newTaskResponses(dueToday, t),
		"total_tasks":         stats.Total,
		"completed_tasks":     stats.Completed,
		"pending_tasks":       stats.Pending,
		"high_priority_tasks": stats.HighPriorityPending,
		"completion_rate":     stats.CompletionRate(),
	})
}
