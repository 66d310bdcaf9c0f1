package handler

import (
	"errors"
	"net/http"

	"tasktracker/internal/flash"
	"tasktracker/internal/form"
	"tasktracker/internal/middleware"
	"tasktracker/internal/model"
	"tasktracker/internal/render"
	"tasktracker/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TaskHandler struct {
	tasks  repository.TaskRepositoryInterface
	render render.Renderer
	clock  Clock
	log    *zap.Logger
}

func NewTaskHandler(tasks repository.TaskRepositoryInterface, renderer render.Renderer, clock Clock, log *zap.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, render: renderer, clock: clock, log: log}
}

func taskFormState(in form.TaskInput, errs form.Errors) FormState {
	return FormState{Fields: form.TaskFields, Values: in, Errors: errs}
}

// ownTask loads the task named in the path, scoped to the current user.
// Tasks of other users are reported as missing.
func (h *TaskHandler) ownTask(c *gin.Context, user *model.User) (*model.Task, bool) {
	id, ok := taskID(c)
	if !ok {
		return nil, false
	}
	task, err := h.tasks.GetForOwner(c.Request.Context(), id, user.ID)
	if errors.Is(err, repository.ErrTaskNotFound) {
		notFound(c)
		return nil, false
	}
	if err != nil {
		internalError(c, h.log, "Failed to retrieve task", err)
		return nil, false
	}
	return task, true
}

// bindTask reads and validates a task submission. On failure the form is
// rendered again and ok is false.
func (h *TaskHandler) bindTask(c *gin.Context, page string, extra gin.H) (form.TaskData, bool) {
	var in form.TaskInput
	status := http.StatusOK
	errs := form.Errors{}
	var data form.TaskData

	if err := c.ShouldBind(&in); err != nil {
		status = http.StatusBadRequest
		errs.Add(form.NonFieldErrors, "Invalid request")
	} else {
		data, errs = form.ValidateTask(in, h.clock().Location())
	}
	if !errs.Any() {
		return data, true
	}

	ctx := gin.H{"form": taskFormState(in, errs)}
	for k, v := range extra {
		ctx[k] = v
	}
	h.render.Page(c, status, page, ctx)
	return form.TaskData{}, false
}

// AddForm godoc
// @Summary      New task page
// @Tags         Tasks
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /task/add/ [get]
func (h *TaskHandler) AddForm(c *gin.Context) {
	in := form.TaskInput{Priority: string(model.PriorityMedium), Status: string(model.StatusOpen)}
	h.render.Page(c, http.StatusOK, render.PageAddTask, gin.H{"form": taskFormState(in, form.Errors{})})
}

// Add godoc
// @Summary      Create a task
// @Tags         Tasks
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  false  "Description"
// @Param        due_date     formData  string  false  "Due date, YYYY-MM-DDTHH:MM"
// @Param        priority     formData  string  false  "low, medium or high"
// @Param        status       formData  string  false  "open, in_progress or done"
// @Success      302
// @Success      200  {object}  map[string]interface{}  "form with errors"
// @Router       /task/add/ [post]
func (h *TaskHandler) Add(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	data, ok := h.bindTask(c, render.PageAddTask, nil)
	if !ok {
		return
	}

	task := &model.Task{UserID: user.ID}
	data.Apply(task)
	if err := h.tasks.Create(c.Request.Context(), task); err != nil {
		internalError(c, h.log, "Failed to create task", err)
		return
	}

	h.log.Debug("task created", zap.Stringer("task_id", task.ID), zap.Stringer("user_id", user.ID))
	flash.Add(c, flash.Success, "Task created successfully!")
	c.Redirect(http.StatusFound, middleware.HomePath)
}

// EditForm godoc
// @Summary      Edit task page
// @Tags         Tasks
// @Produce      json
// @Param        id   path  string  true  "Task ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /task/{id}/edit/ [get]
func (h *TaskHandler) EditForm(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	task, ok := h.ownTask(c, user)
	if !ok {
		return
	}

	loc := h.clock().Location()
	h.render.Page(c, http.StatusOK, render.PageEditTask, gin.H{
		"task": newTaskResponse(task, h.clock()),
		"form": taskFormState(form.TaskInputFrom(task, loc), form.Errors{}),
	})
}

// Edit godoc
// @Summary      Update a task
// @Tags         Tasks
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        id           path      string  true   "Task ID"
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  false  "Description"
// @Param        due_date     formData  string  false  "Due date, YYYY-MM-DDTHH:MM"
// @Param        priority     formData  string  false  "low, medium or high"
// @Param        status       formData  string  false  "open, in_progress or done"
// @Success      302
// @Success      200  {object}  map[string]interface{}  "form with errors"
// @Failure      404  {object}  map[string]string
// @Router       /task/{id}/edit/ [post]
func (h *TaskHandler) Edit(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	task, ok := h.ownTask(c, user)
	if !ok {
		return
	}
	data, ok := h.bindTask(c, render.PageEditTask, gin.H{"task": newTaskResponse(task, h.clock())})
	if !ok {
		return
	}

	data.Apply(task)
	if err := h.tasks.Update(c.Request.Context(), task); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			notFound(c)
			return
		}
		internalError(c, h.log, "Failed to update task", err)
		return
	}

	flash.Add(c, flash.Success, "Task updated successfully!")
	c.Redirect(http.StatusFound, middleware.HomePath)
}

// DeleteConfirm godoc
// @Summary      Delete confirmation page
// @Tags         Tasks
// @Produce      json
// @Param        id   path  string  true  "Task ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /task/{id}/delete/ [get]
func (h *TaskHandler) DeleteConfirm(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	task, ok := h.ownTask(c, user)
	if !ok {
		return
	}
	h.render.Page(c, http.StatusOK, render.PageDeleteTask, gin.H{"task": newTaskResponse(task, h.clock())})
}

// Delete godoc
// @Summary      Delete a task
// @Tags         Tasks
// @Param        id   path  string  true  "Task ID"
// @Success      302
// @Failure      404  {object}  map[string]string
// @Router       /task/{id}/delete/ [post]
func (h *TaskHandler) Delete(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := taskID(c)
	if !ok {
		return
	}

	if err := h.tasks.DeleteForOwner(c.Request.Context(), id, user.ID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			notFound(c)
			return
		}
		internalError(c, h.log, "Failed to delete task", err)
		return
	}

	h.log.Debug("task deleted", zap.Stringer("task_id", id), zap.Stringer("user_id", user.ID))
	flash.Add(c, flash.Success, "Task deleted successfully!")
	c.Redirect(http.StatusFound, middleware.HomePath)
}

// Toggle godoc
// @Summary      Flip a task's completion
// @Description  Asynchronous endpoint used by the dashboard checkboxes.
// @Tags         Tasks
// @Produce      json
// @Param        id   path  string  true  "Task ID"
// @Success      200  {object}  ToggleResponse
// @Failure      404  {object}  map[string]string
// @Router       /task/{id}/toggle/ [post]
func (h *TaskHandler) Toggle(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	task, ok := h.ownTask(c, user)
	if !ok {
		return
	}

	task.Toggle(h.clock())
	if err := h.tasks.Update(c.Request.Context(), task); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			notFound(c)
			return
		}
		internalError(c, h.log, "Failed to update task", err)
		return
	}

	c.JSON(http.StatusOK, ToggleResponse{
		Success:     true,
		IsCompleted: task.IsCompleted,
		CompletedAt: formatTime(task.CompletedAt),
	})
}

// ToggleNotAllowed answers non-POST requests to the toggle endpoint.
func (h *TaskHandler) ToggleNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"success": false})
}
