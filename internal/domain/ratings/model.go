package ratings

import "time"

// Rating es la calificación (inmutable) de una solicitud entregada.
type Rating struct {
	ID        string
	RequestID string
	UserID    string
	GuideID   string
	Stars     int
	Comment   string
	CreatedAt time.Time
}

// Stats es el agregado de calificaciones recibidas por un guía.
type Stats struct {
	Avg   float64
	Count int
}

type GuideProfile struct {
	GuideID     string
	Username    string
	FullName    string
	RatingAvg   float64
	RatingCount int
}
