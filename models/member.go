package models

import "time"

const MemberTable = "lib_members"

type Member struct {
	ID                 string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name               string    `gorm:"size:200;not null" json:"name"`
	BorrowedBooksCount int       `gorm:"not null;default:0" json:"borrowedBooksCount"` // count of open transactions for this member
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (Member) TableName() string { return MemberTable }
