package models

import "time"

const BookTable = "lib_books"

type Book struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Author    string    `gorm:"size:200;not null" json:"author"`
	Category  string    `gorm:"size:120;not null" json:"category"`
	Available bool      `gorm:"not null;default:true" json:"isAvailable"` // false iff an open transaction references this book
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Book) TableName() string { return BookTable }
