package models

// Tag labels tasks through the task_tags join table.
type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:50;not null"`
}

// TableName specifies the table name for the Tag model
func (Tag) TableName() string {
	return "tags"
}
