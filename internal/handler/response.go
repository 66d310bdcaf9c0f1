package handler

import (
	"net/http"
	"time"

	"tasktracker/internal/middleware"
	"tasktracker/internal/model"
	"tasktracker/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Clock returns the current time. Handlers take one so tests can pin "today".
type Clock func() time.Time

// TaskResponse is a task as the presentation layer sees it
type TaskResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	IsCompleted bool    `json:"is_completed"`
	IsOverdue   bool    `json:"is_overdue"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
	CompletedAt *string `json:"completed_at"`
}

// UserResponse is the public part of an account
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

type ProfileResponse struct {
	Bio               string  `json:"bio"`
	ProfilePicture    string  `json:"profile_picture"`
	ProfilePictureURL string  `json:"profile_picture_url"`
	DateOfBirth       *string `json:"date_of_birth"`
	PhoneNumber       string  `json:"phone_number"`
}

// ToggleResponse is the body of the asynchronous completion toggle
type ToggleResponse struct {
	Success     bool    `json:"success"`
	IsCompleted bool    `json:"is_completed"`
	CompletedAt *string `json:"completed_at"`
}

// FormState is a form as handed to the presentation layer: its widgets,
// the submitted (or pre-filled) values and the errors per field.
type FormState struct {
	Fields any `json:"fields"`
	Values any `json:"values"`
	Errors any `json:"errors"`
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func newTaskResponse(task *model.Task, now time.Time) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		DueDate:     formatTime(task.DueDate),
		Priority:    string(task.Priority),
		Status:      string(task.Status),
		IsCompleted: task.IsCompleted,
		IsOverdue:   task.IsOverdue(now),
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.Format(time.RFC3339),
		CompletedAt: formatTime(task.CompletedAt),
	}
}

func newTaskResponses(tasks []model.Task, now time.Time) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, newTaskResponse(&tasks[i], now))
	}
	return out
}

func newUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		FullName:  user.FullName(),
	}
}

func newProfileResponse(profile *model.UserProfile) ProfileResponse {
	resp := ProfileResponse{
		Bio:               profile.Bio,
		ProfilePicture:    profile.ProfilePicture,
		ProfilePictureURL: storage.URL(profile.ProfilePicture),
		PhoneNumber:       profile.PhoneNumber,
	}
	if profile.DateOfBirth != nil {
		dob := profile.DateOfBirth.Format("2006-01-02")
		resp.DateOfBirth = &dob
	}
	return resp
}

// requireUser returns the signed-in user. Routes behind LoginRequired always
// have one; anything else is a wiring mistake.
func requireUser(c *gin.Context) (*model.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil, false
	}
	return user, true
}

// taskID parses the :id path segment. A malformed id is treated like a
// missing task.
func taskID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		notFound(c)
		return uuid.Nil, false
	}
	return id, true
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}

func internalError(c *gin.Context, log *zap.Logger, msg string, err error) {
	log.Error(msg, zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
