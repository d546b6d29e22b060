package service

import (
	"time"

	"task-manager/internal/models"
)

// TaskView is the client-facing projection of a task: camelCase fields, due
// date as an RFC 3339 UTC string, tag ids flattened from the join table.
type TaskView struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	DueDate     string              `json:"dueDate"`
	IsCompleted bool                `json:"isCompleted"`
	UserID      *uint               `json:"userId"`
	CategoryID  *uint               `json:"categoryId"`
	Notes       string              `json:"notes"`
	Progress    int                 `json:"progress"`
	Priority    models.TaskPriority `json:"priority"`
	TagIDs      []uint              `json:"tagIds"`
}

// TaskPage is one page of a task listing. Total counts the whole filtered
// set, not just this page.
type TaskPage struct {
	Tasks []TaskView `json:"tasks"`
	Total int64      `json:"total"`
	Page  int        `json:"page"`
}

// TaskInput is the request payload for creating or updating a task.
type TaskInput struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	DueDate     string              `json:"dueDate"`
	IsCompleted bool                `json:"isCompleted"`
	UserID      *uint               `json:"userId"`
	CategoryID  *uint               `json:"categoryId"`
	Notes       string              `json:"notes"`
	Progress    int                 `json:"progress"`
	Priority    models.TaskPriority `json:"priority"`
	TagIDs      []uint              `json:"tagIds"`
}

// CommentInput is the request payload for creating a comment.
type CommentInput struct {
	TaskID  uint   `json:"taskId"`
	Content string `json:"comment"`
}

// NoteInput is the request payload for creating or updating a note.
type NoteInput struct {
	ID      uint   `json:"id"`
	TaskID  uint   `json:"taskId"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UserView is the safe projection of a user for the directory endpoints.
type UserView struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func taskView(t *models.Task, tagIDs []uint) TaskView {
	if tagIDs == nil {
		tagIDs = []uint{}
	}
	return TaskView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate.UTC().Format(time.RFC3339),
		IsCompleted: t.IsCompleted,
		UserID:      t.UserID,
		CategoryID:  t.CategoryID,
		Notes:       t.Notes,
		Progress:    t.Progress,
		Priority:    t.Priority,
		TagIDs:      tagIDs,
	}
}

// parseDueDate accepts the date formats clients actually send and
// normalizes the result to UTC.
func parseDueDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
