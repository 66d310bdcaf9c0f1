package render

import (
	"tasktracker/internal/flash"

	"github.com/gin-gonic/gin"
)

// Renderer is the presentation layer: it turns a named page and its context
// into a response, surfacing any pending notifications.
type Renderer interface {
	Page(c *gin.Context, status int, page string, data gin.H)
}

// Page names used by the handlers.
const (
	PageHome       = "tasks/home"
	PageLogin      = "tasks/login"
	PageRegister   = "tasks/register"
	PageProfile    = "tasks/profile"
	PageAddTask    = "tasks/add_task"
	PageEditTask   = "tasks/edit_task"
	PageDeleteTask = "tasks/delete_task"
)

// JSON renders the context bundle as a JSON document.
type JSON struct{}

var _ Renderer = JSON{}

func (JSON) Page(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	messages := flash.Pop(c)
	if messages == nil {
		messages = []flash.Message{}
	}
	c.JSON(status, gin.H{
		"page":     page,
		"context":  data,
		"messages": messages,
	})
}
