package render_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tasktracker/internal/flash"
	"tasktracker/internal/render"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestJSON_Page(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)

	flash.Add(c, flash.Success, "Task created successfully!")
	render.JSON{}.Page(c, http.StatusOK, render.PageHome, gin.H{"total_tasks": 1})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"page": "tasks/home",
		"context": {"total_tasks": 1},
		"messages": [{"level": "success", "text": "Task created successfully!"}]
	}`, w.Body.String())
}

func TestJSON_PageWithoutContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/login/", nil)

	render.JSON{}.Page(c, http.StatusOK, render.PageLogin, nil)

	assert.JSONEq(t, `{"page": "tasks/login", "context": {}, "messages": []}`, w.Body.String())
}
