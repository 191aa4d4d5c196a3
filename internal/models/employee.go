package models

import "time"

type Employee struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FullName  string `gorm:"size:100;not null" json:"full_name"`
	Specialty string `gorm:"size:100" json:"specialty"`
	Phone     string `gorm:"size:30" json:"phone"`
	Email     string `gorm:"size:100" json:"email"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
