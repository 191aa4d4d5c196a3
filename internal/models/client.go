package models

import "time"

type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FullName string     `gorm:"size:100;not null" json:"full_name"`
	Phone    string     `gorm:"size:30" json:"phone"`
	Email    string     `gorm:"size:100" json:"email"`
	Birthday *time.Time `gorm:"type:date" json:"birthday"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
