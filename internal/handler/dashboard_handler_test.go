package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tasktracker/internal/handler"
	"tasktracker/internal/model"
	"tasktracker/internal/render"
	"tasktracker/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupDashboard(user *model.User) (*gin.Engine, *MockTaskRepository) {
	gin.SetMode(gin.TestMode)
	tasks := new(MockTaskRepository)
	h := handler.NewDashboardHandler(tasks, render.JSON{}, fixedClock, zap.NewNop())

	r := gin.New()
	r.GET("/", signedIn(user, nil), h.Home)
	return r, tasks
}

func at(hour, minute int) *time.Time {
	t := time.Date(2024, 5, 10, hour, minute, 0, 0, time.UTC)
	return &t
}

func TestHome(t *testing.T) {
	// Arrange
	user := testUser()
	router, tasks := setupDashboard(user)

	dueTonight := model.Task{ID: uuid.New(), UserID: user.ID, Title: "Pay rent", DueDate: at(23, 59), Priority: model.PriorityHigh, Status: model.StatusOpen}
	overdue := model.Task{ID: uuid.New(), UserID: user.ID, Title: "Call mom", DueDate: at(9, 0), Priority: model.PriorityMedium, Status: model.StatusOpen}
	done := model.Task{ID: uuid.New(), UserID: user.ID, Title: "Buy milk", IsCompleted: true, CompletedAt: at(8, 0), Priority: model.PriorityLow, Status: model.StatusDone}
	all := []model.Task{dueTonight, overdue, done}

	startOfDay := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	endOfDay := time.Date(2024, 5, 10, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)

	tasks.On("ListForOwner", mock.Anything, user.ID).Return(all, nil)
	tasks.On("Recent", mock.Anything, user.ID, 5).Return(all, nil)
	tasks.On("DueBetween", mock.Anything, user.ID, startOfDay, endOfDay).Return([]model.Task{overdue, dueTonight}, nil)
	tasks.On("Stats", mock.Anything, user.ID).Return(repository.TaskStats{Total: 4, Completed: 3, Pending: 1, HighPriorityPending: 1}, nil)

	// Act
	resp := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(resp, req)

	// Assert
	require.Equal(t, http.StatusOK, resp.Code)
	body := decodePage(t, resp)
	assert.Equal(t, render.PageHome, body.Page)

	ctx := body.Context
	assert.EqualValues(t, 4, ctx["total_tasks"])
	assert.EqualValues(t, 3, ctx["completed_tasks"])
	assert.EqualValues(t, 1, ctx["pending_tasks"])
	assert.EqualValues(t, 1, ctx["high_priority_tasks"])
	assert.EqualValues(t, 75, ctx["completion_rate"])

	listed, ok := ctx["tasks"].([]any)
	require.True(t, ok)
	require.Len(t, listed, 3)
	first := listed[0].(map[string]any)
	assert.Equal(t, "Pay rent", first["title"])
	assert.Equal(t, false, first["is_overdue"])
	assert.Equal(t, true, listed[1].(map[string]any)["is_overdue"])
	assert.Equal(t, false, listed[2].(map[string]any)["is_overdue"])

	assert.Len(t, ctx["recent_tasks"], 3)
	assert.Len(t, ctx["due_today"], 2)
	assert.Equal(t, "ada", ctx["user"].(map[string]any)["username"])
	tasks.AssertExpectations(t)
}

func TestHome_NoTasks(t *testing.T) {
	user := testUser()
	router, tasks := setupDashboard(user)

	tasks.On("ListForOwner", mock.Anything, user.ID).Return([]model.Task{}, nil)
	tasks.On("Recent", mock.Anything, user.ID, 5).Return([]model.Task{}, nil)
	tasks.On("DueBetween", mock.Anything, user.ID, mock.Anything, mock.Anything).Return([]model.Task{}, nil)
	tasks.On("Stats", mock.Anything, user.ID).Return(repository.TaskStats{}, nil)

	resp := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	ctx := decodePage(t, resp).Context
	assert.EqualValues(t, 0, ctx["total_tasks"])
	assert.EqualValues(t, 0, ctx["completion_rate"])
	assert.Equal(t, []any{}, ctx["tasks"])
	assert.Equal(t, []any{}, ctx["due_today"])
}

func TestHome_RepositoryError(t *testing.T) {
	user := testUser()
	router, tasks := setupDashboard(user)

	tasks.On("ListForOwner", mock.Anything, user.ID).Return(nil, errors.New("connection reset"))

	resp := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	tasks.AssertNotCalled(t, "Stats", mock.Anything, mock.Anything)
}
