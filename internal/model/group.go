package model

// Group is a numbered, named collection that owns bills
type Group struct {
	ID     int    `json:"id" gorm:"primaryKey"`
	Number int    `json:"number" gorm:"not null"`
	Name   string `json:"name" gorm:"not null"`
}
