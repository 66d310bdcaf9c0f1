package form

import (
	"strings"
	"time"

	"tasktracker/internal/model"
)

type TaskInput struct {
	Title       string `form:"title" json:"title" validate:"required,max=200"`
	Description string `form:"description" json:"description"`
	DueDate     string `form:"due_date" json:"due_date"`
	Priority    string `form:"priority" json:"priority" validate:"omitempty,oneof=low medium high"`
	Status      string `form:"status" json:"status" validate:"omitempty,oneof=open in_progress done"`
}

// DueDateLayout matches the datetime-local input.
const DueDateLayout = "2006-01-02T15:04"

var dueDateLayouts = []string{
	DueDateLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

var TaskFields = []Widget{
	text("title", "Title", true),
	{Name: "description", Label: "Description", Type: "textarea", Class: inputClass, Rows: 3},
	{Name: "due_date", Label: "Due date", Type: "datetime-local", Class: inputClass, Format: DueDateLayout},
	{Name: "priority", Label: "Priority", Type: "select", Class: inputClass, Choices: []Choice{
		{Value: string(model.PriorityLow), Label: "Low"},
		{Value: string(model.PriorityMedium), Label: "Medium"},
		{Value: string(model.PriorityHigh), Label: "High"},
	}},
	{Name: "status", Label: "Status", Type: "select", Class: inputClass, Choices: []Choice{
		{Value: string(model.StatusOpen), Label: "Open"},
		{Value: string(model.StatusInProgress), Label: "In progress"},
		{Value: string(model.StatusDone), Label: "Done"},
	}},
}

type TaskData struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    model.Priority
	Status      model.Status
}

// ValidateTask checks a task submission. Due dates without an offset are
// read in loc, the server's zone.
func ValidateTask(in TaskInput, loc *time.Location) (TaskData, Errors) {
	in.Title = strings.TrimSpace(in.Title)
	in.DueDate = strings.TrimSpace(in.DueDate)
	in.Priority = strings.TrimSpace(in.Priority)
	in.Status = strings.TrimSpace(in.Status)

	errs := check(in)
	data := TaskData{
		Title:       in.Title,
		Description: in.Description,
		Priority:    model.Priority(in.Priority),
		Status:      model.Status(in.Status),
	}
	if data.Priority == "" {
		data.Priority = model.PriorityMedium
	}
	if data.Status == "" {
		data.Status = model.StatusOpen
	}

	if in.DueDate != "" {
		due, ok := parseDueDate(in.DueDate, loc)
		if !ok {
			errs.Add("due_date", "Enter a valid date/time.")
		} else {
			data.DueDate = &due
		}
	}
	return data, errs
}

func parseDueDate(raw string, loc *time.Location) (time.Time, bool) {
	for _, layout := range dueDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Apply copies the editable fields onto task. Owner and timestamps are left
// alone.
func (d TaskData) Apply(task *model.Task) {
	task.Title = d.Title
	task.Description = d.Description
	task.DueDate = d.DueDate
	task.Priority = d.Priority
	task.Status = d.Status
}

// TaskInputFrom pre-fills the edit form from a stored task.
func TaskInputFrom(task *model.Task, loc *time.Location) TaskInput {
	in := TaskInput{
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
		Status:      string(task.Status),
	}
	if task.DueDate != nil {
		in.DueDate = task.DueDate.In(loc).Format(DueDateLayout)
	}
	return in
}
