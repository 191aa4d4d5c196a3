package dto

import "time"

// EventView is shaped for direct consumption by the calendar widget.
type EventView struct {
	ID            uint               `json:"id"`
	Title         string             `json:"title"`
	Start         time.Time          `json:"start"`
	End           time.Time          `json:"end"`
	ExtendedProps EventExtendedProps `json:"extendedProps"`
}

type EventExtendedProps struct {
	Client     string `json:"client"`
	Employee   string `json:"employee"`
	EmployeeID uint   `json:"employeeId"`
	ClientID   uint   `json:"clientId"`
}
