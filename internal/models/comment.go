package models

import "time"

// Comment is an authored remark on a task. Comments are removed together
// with their task.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TaskID    uint      `json:"taskId" gorm:"not null;index"`
	UserID    uint      `json:"userId" gorm:"not null"`
	Content   string    `json:"comment" gorm:"size:500;not null"`
	CreatedAt time.Time `json:"timestamp"`
}

// TableName specifies the table name for the Comment model
func (Comment) TableName() string {
	return "comments"
}
