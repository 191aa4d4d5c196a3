package models

import "time"

// Times are stored in UTC only. The composite index backs the
// per-employee overlap checks that run on every booking attempt.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"not null" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`

	EmployeeID uint     `gorm:"not null;index:idx_appointments_employee_time,priority:1" json:"employee_id"`
	Employee   Employee `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"employee"`

	StartAtUtc time.Time `gorm:"type:timestamptz;not null;index:idx_appointments_employee_time,priority:2" json:"start_at_utc"`
	EndAtUtc   time.Time `gorm:"type:timestamptz;not null;index:idx_appointments_employee_time,priority:3" json:"end_at_utc"`

	Title *string `gorm:"size:200" json:"title"`
	Notes *string `gorm:"size:500" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
