package models

import (
	"time"
)

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "High"
	PriorityMedium TaskPriority = "Medium"
	PriorityLow    TaskPriority = "Low"
)

// ValidPriority reports whether p is one of the three priority literals.
func ValidPriority(p TaskPriority) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Task represents a task in the system. UserID is the assigned user; both it
// and CategoryID are optional foreign keys.
type Task struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Title       string       `json:"title" gorm:"size:100;not null"`
	Description string       `json:"description" gorm:"size:500"`
	DueDate     time.Time    `json:"dueDate" gorm:"not null"`
	IsCompleted bool         `json:"isCompleted"`
	UserID      *uint        `json:"userId" gorm:"column:user_id;index"`
	CategoryID  *uint        `json:"categoryId" gorm:"column:category_id;index"`
	Notes       string       `json:"notes" gorm:"size:1000"`
	Progress    int          `json:"progress" gorm:"default:0"`
	Priority    TaskPriority `json:"priority" gorm:"default:'Medium'"`
	TaskTags    []TaskTag    `json:"-"`
	Comments    []Comment    `json:"-"`
	NoteList    []Note       `json:"-"`
}

// TableName specifies the table name for the Task model
func (Task) TableName() string {
	return "tasks"
}

// TaskTag links a task to a tag. The pair is the primary key.
type TaskTag struct {
	TaskID uint `json:"taskId" gorm:"primaryKey;autoIncrement:false"`
	TagID  uint `json:"tagId" gorm:"primaryKey;autoIncrement:false"`
}

// TableName specifies the table name for the TaskTag join model
func (TaskTag) TableName() string {
	return "task_tags"
}
