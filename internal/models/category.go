package models

// Category groups tasks. Deleting a category that still has tasks is
// rejected rather than cascaded.
type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:50;not null"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
