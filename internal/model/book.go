package model

// Book is a catalog entry.
type Book struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Author string `json:"author" gorm:"size:255;not null"`
	Title  string `json:"title" gorm:"size:255;not null"`
}
