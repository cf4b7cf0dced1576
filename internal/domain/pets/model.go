package pets

import "time"

// Pet representa una mascota registrada por su dueño.
type Pet struct {
	ID          string
	OwnerUserID string

	Name    string
	Species string
	Breed   string
	Notes   string

	CreatedAt time.Time
	UpdatedAt time.Time
}
