package models

import "time"

const TransactionTable = "lib_transactions"

type Transaction struct {
	ID         string     `gorm:"type:uuid;primaryKey" json:"id"`
	BookID     string     `gorm:"type:uuid;index;not null" json:"bookId"`
	MemberID   string     `gorm:"type:uuid;index;not null" json:"memberId"`
	BorrowedAt time.Time  `gorm:"index;not null" json:"borrowedDate"`
	DueAt      time.Time  `gorm:"index;not null" json:"dueDate"`
	ReturnedAt *time.Time `gorm:"index" json:"returnedDate,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (Transaction) TableName() string { return TransactionTable }

// Open reports whether the book has not been returned yet.
func (t *Transaction) Open() bool { return t.ReturnedAt == nil }

// OverdueAt reports whether the transaction is open and past due at the
// given instant.
func (t *Transaction) OverdueAt(now time.Time) bool {
	return t.Open() && t.DueAt.Before(now)
}
